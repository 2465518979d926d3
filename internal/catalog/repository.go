package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the primary-store access contract used by the service layer.
type Store interface {
	CountArticles(ctx context.Context, q *ArticleQuery) (int, error)
	Articles(ctx context.Context, q *ArticleQuery, limit, offset int) ([]ArticleRow, error)
	StockByKeys(ctx context.Context, keys []string, warehouseIDs []int) ([]StockEntry, error)
	Families(ctx context.Context, denylist []string) ([]string, error)
}

// Repository reads the primary catalog store via PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
	cfg  Config
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool, cfg Config) *Repository {
	return &Repository{pool: pool, cfg: cfg}
}

func (r *Repository) CountArticles(ctx context.Context, q *ArticleQuery) (int, error) {
	sql, args := q.CountSQL()
	var total int
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("catalog: count articles: %w", err)
	}
	return total, nil
}

func (r *Repository) Articles(ctx context.Context, q *ArticleQuery, limit, offset int) ([]ArticleRow, error) {
	sql, args := q.DataSQL(limit, offset)
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("catalog: query articles: %w", err)
	}
	defer rows.Close()

	out := []ArticleRow{}
	for rows.Next() {
		row := ArticleRow{
			AltKeys:      make([]*string, len(r.cfg.Suppliers)),
			WarehouseQty: make([]float64, len(r.cfg.Warehouses)),
		}
		dests := []any{
			&row.Code, &row.Description, &row.Unit, &row.Line, &row.LastCost, &row.LastPurchase,
			&row.Family, &row.Placement, &row.Genre, &row.Profile, &row.Classification,
			&row.InnerDiameter, &row.OuterDiameter, &row.Height, &row.Section,
			&row.Price,
		}
		for i := range row.AltKeys {
			dests = append(dests, &row.AltKeys[i])
		}
		for i := range row.WarehouseQty {
			dests = append(dests, &row.WarehouseQty[i])
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, fmt.Errorf("catalog: scan article: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: query articles: %w", err)
	}
	return out, nil
}

func (r *Repository) StockByKeys(ctx context.Context, keys []string, warehouseIDs []int) ([]StockEntry, error) {
	rows, err := r.pool.Query(ctx, `SELECT TRIM(code), warehouse_id, COALESCE(qty, 0)
FROM article_stock
WHERE TRIM(code) = ANY($1) AND warehouse_id = ANY($2)
ORDER BY TRIM(code) ASC, warehouse_id ASC`, keys, warehouseIDs)
	if err != nil {
		return nil, fmt.Errorf("catalog: query stock: %w", err)
	}
	defer rows.Close()

	entries := []StockEntry{}
	for rows.Next() {
		var e StockEntry
		if err := rows.Scan(&e.Code, &e.WarehouseID, &e.Quantity); err != nil {
			return nil, fmt.Errorf("catalog: scan stock: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: query stock: %w", err)
	}
	return entries, nil
}

func (r *Repository) Families(ctx context.Context, denylist []string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT UPPER(TRIM(family)) AS family
FROM article_specs
WHERE COALESCE(TRIM(family), '') <> '' AND UPPER(TRIM(family)) <> ALL($1)
ORDER BY family ASC`, denylist)
	if err != nil {
		return nil, fmt.Errorf("catalog: query families: %w", err)
	}
	defer rows.Close()

	families := []string{}
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, fmt.Errorf("catalog: scan family: %w", err)
		}
		families = append(families, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: query families: %w", err)
	}
	return families, nil
}
