package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
)

// BranchStore is the secondary ("sucursal") store contract. The branch runs
// its own database; the only thing it shares with the primary store is the
// article key, so results come back keyed by trimmed key for the in-memory
// merge.
type BranchStore interface {
	StockByKeys(ctx context.Context, warehouseID int, keys []string) (map[string]float64, error)
	PricesByKeys(ctx context.Context, priceListID int, keys []string) (map[string]float64, error)
}

// BranchRepository reads the branch SQL Server store.
type BranchRepository struct {
	db *sql.DB
}

// NewBranchRepository constructs BranchRepository.
func NewBranchRepository(db *sql.DB) *BranchRepository {
	return &BranchRepository{db: db}
}

// keyParams renders one named placeholder per key (@k0, @k1, ...) and the
// matching argument list, mirroring how the driver expects IN lists.
func keyParams(keys []string) (string, []any) {
	placeholders := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, key := range keys {
		name := fmt.Sprintf("k%d", i)
		placeholders[i] = "@" + name
		args[i] = sql.Named(name, key)
	}
	return strings.Join(placeholders, ", "), args
}

func (r *BranchRepository) StockByKeys(ctx context.Context, warehouseID int, keys []string) (map[string]float64, error) {
	if len(keys) == 0 {
		return map[string]float64{}, nil
	}
	placeholders, args := keyParams(keys)
	query := fmt.Sprintf(`SELECT RTRIM(ARTICULO), CANTIDAD FROM STOCK_SUC
WHERE DEPOSITO = @deposito AND RTRIM(ARTICULO) IN (%s)`, placeholders)
	args = append(args, sql.Named("deposito", warehouseID))

	return r.queryKeyed(ctx, query, args)
}

func (r *BranchRepository) PricesByKeys(ctx context.Context, priceListID int, keys []string) (map[string]float64, error) {
	if len(keys) == 0 {
		return map[string]float64{}, nil
	}
	placeholders, args := keyParams(keys)
	query := fmt.Sprintf(`SELECT RTRIM(ARTICULO), PRECIO FROM PRECIOS_SUC
WHERE LISTA = @lista AND RTRIM(ARTICULO) IN (%s)`, placeholders)
	args = append(args, sql.Named("lista", priceListID))

	return r.queryKeyed(ctx, query, args)
}

func (r *BranchRepository) queryKeyed(ctx context.Context, query string, args []any) (map[string]float64, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("catalog: branch query: %w", err)
	}
	defer rows.Close()

	out := map[string]float64{}
	for rows.Next() {
		var key string
		var value sql.NullFloat64
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("catalog: branch scan: %w", err)
		}
		out[strings.TrimSpace(key)] = value.Float64
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: branch query: %w", err)
	}
	return out, nil
}

// Reconciler merges branch-store figures into a page of articles already
// fetched from the primary store. Enrichment is best-effort: primary data
// always wins, and a branch failure degrades to zero stock (and the primary
// price) instead of failing the request.
type Reconciler struct {
	store  BranchStore
	cfg    Config
	logger *slog.Logger
}

// NewReconciler constructs Reconciler.
func NewReconciler(store BranchStore, cfg Config, logger *slog.Logger) *Reconciler {
	return &Reconciler{store: store, cfg: cfg, logger: logger}
}

// Enrich fills the branch warehouse stock for every article on the page and,
// when the caller selected the branch price list, overrides the price with
// the branch figure. Never returns an error; degradation is logged.
func (r *Reconciler) Enrich(ctx context.Context, priceList int, articles []Article) {
	if len(articles) == 0 || r.store == nil {
		return
	}

	keys := make([]string, len(articles))
	for i := range articles {
		keys[i] = articles[i].Code
	}

	stock, err := r.store.StockByKeys(ctx, r.cfg.BranchWarehouse.ID, keys)
	if err != nil {
		r.logger.Warn("branch stock unavailable, defaulting to zero", slog.Any("error", err))
		stock = nil
	}
	for i := range articles {
		// Absent key means zero stock at the branch, not an error.
		articles[i].Stock[r.cfg.BranchWarehouse.Name] = stock[articles[i].Code]
	}

	if priceList != r.cfg.BranchPriceList {
		return
	}
	prices, err := r.store.PricesByKeys(ctx, priceList, keys)
	if err != nil {
		r.logger.Warn("branch prices unavailable, keeping primary price", slog.Any("error", err))
		return
	}
	for i := range articles {
		if price, ok := prices[articles[i].Code]; ok {
			articles[i].Price = price
		}
	}
}
