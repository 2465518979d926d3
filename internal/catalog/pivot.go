package catalog

// Pivot turns a flat data-query row into the Article shape: the fixed
// per-warehouse columns become a name-keyed stock map and the supplier
// alternate-key columns become the altCodes map. Every configured warehouse
// is present in the map, 0 when no stock row exists; the branch warehouse
// starts at 0 and is filled in by the reconciler.
func Pivot(row ArticleRow, cfg Config) Article {
	stock := make(map[string]float64, len(cfg.Warehouses)+1)
	for i, w := range cfg.Warehouses {
		var qty float64
		if i < len(row.WarehouseQty) {
			qty = row.WarehouseQty[i]
		}
		stock[w.Name] = qty
	}
	stock[cfg.BranchWarehouse.Name] = 0

	alt := make(map[string]string, len(cfg.Suppliers))
	for i, s := range cfg.Suppliers {
		if i < len(row.AltKeys) && row.AltKeys[i] != nil {
			alt[s.Label] = *row.AltKeys[i]
		}
	}

	return Article{
		Code:           row.Code,
		Description:    row.Description,
		Unit:           row.Unit,
		Line:           row.Line,
		LastCost:       row.LastCost,
		LastPurchase:   row.LastPurchase,
		Family:         row.Family,
		Placement:      row.Placement,
		Genre:          row.Genre,
		Profile:        row.Profile,
		Classification: row.Classification,
		InnerDiameter:  row.InnerDiameter,
		OuterDiameter:  row.OuterDiameter,
		Height:         row.Height,
		Section:        row.Section,
		Price:          row.Price,
		AltCodes:       alt,
		Stock:          stock,
	}
}
