package catalog

import "time"

// Article is the denormalized per-product view returned to the frontend.
// One Article per article key; per-warehouse stock and the selected price
// list are already pivoted in.
type Article struct {
	Code           string             `json:"code"`
	Description    string             `json:"description"`
	Unit           string             `json:"unit"`
	Line           string             `json:"line"`
	LastCost       float64            `json:"lastCost"`
	LastPurchase   *time.Time         `json:"lastPurchase"`
	Family         string             `json:"family"`
	Placement      string             `json:"placement"`
	Genre          string             `json:"genre"`
	Profile        string             `json:"profile"`
	Classification string             `json:"classification"`
	InnerDiameter  string             `json:"innerDiameter"`
	OuterDiameter  string             `json:"outerDiameter"`
	Height         string             `json:"height"`
	Section        string             `json:"section"`
	Price          float64            `json:"price"`
	AltCodes       map[string]string  `json:"altCodes"`
	Stock          map[string]float64 `json:"stock"`
}

// ArticleRow is the flat shape produced by the data query: one row per
// article with fixed pivot columns. AltKeys and WarehouseQty are aligned
// with Config.Suppliers and Config.Warehouses respectively.
type ArticleRow struct {
	Code           string
	Description    string
	Unit           string
	Line           string
	LastCost       float64
	LastPurchase   *time.Time
	Family         string
	Placement      string
	Genre          string
	Profile        string
	Classification string
	InnerDiameter  string
	OuterDiameter  string
	Height         string
	Section        string
	Price          float64
	AltKeys        []*string
	WarehouseQty   []float64
}

// StockEntry is one (article, warehouse) stock figure from the primary store.
type StockEntry struct {
	Code        string  `json:"code"`
	WarehouseID int     `json:"warehouseId"`
	Warehouse   string  `json:"warehouse"`
	Quantity    float64 `json:"quantity"`
}
