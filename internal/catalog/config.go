package catalog

// Warehouse maps a legacy warehouse id to the name the frontend shows.
type Warehouse struct {
	ID   int
	Name string
}

// SupplierCode identifies one supplier whose alternate article code is
// pivoted onto the article row. The ids are fixed in the legacy data and are
// rendered into the SQL as literals, not bound parameters.
type SupplierCode struct {
	ID    int
	Label string
}

// Config carries the fixed catalog topology. It is injected at construction
// time so tests can substitute alternate mappings; extending warehouse
// coverage means extending this table, not querying the store.
type Config struct {
	// Warehouses served by the primary store, in pivot-column order.
	Warehouses []Warehouse

	// BranchWarehouse is served by the branch store only.
	BranchWarehouse Warehouse

	// BranchPriceList is the price list resolved against the branch store
	// instead of the primary one.
	BranchPriceList int

	// DefaultPriceList is used when the caller supplies no branch.
	DefaultPriceList int

	Suppliers []SupplierCode

	// FamilyDenylist holds attribute-table family values that are known not
	// to be product families (legacy free-form data).
	FamilyDenylist []string

	// Tolerance for dimensional attribute comparison. The attributes are
	// stored as comma-decimal text; the tolerance absorbs the float
	// round-trip error of that representation.
	Tolerance float64

	DefaultLimit int
	SearchLimit  int
}

// DefaultConfig returns the production catalog topology.
func DefaultConfig() Config {
	return Config{
		Warehouses: []Warehouse{
			{ID: 1, Name: "CASA CENTRAL"},
			{ID: 2, Name: "DEPOSITO NORTE"},
			{ID: 3, Name: "DEPOSITO SUR"},
			{ID: 4, Name: "TRANSITO"},
		},
		BranchWarehouse:  Warehouse{ID: 60, Name: "SUCURSAL"},
		BranchPriceList:  5,
		DefaultPriceList: 1,
		Suppliers: []SupplierCode{
			{ID: 501, Label: "skf"},
			{ID: 502, Label: "nbr"},
		},
		FamilyDenylist: []string{"VARIOS", "SIN FAMILIA", "CONSUMIBLES", "SERVICIOS"},
		Tolerance:      1e-5,
		DefaultLimit:   50,
		SearchLimit:    1000,
	}
}
