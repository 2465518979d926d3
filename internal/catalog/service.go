package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/rodamax/rodamax-catalog/internal/platform/httpx"
	"github.com/rodamax/rodamax-catalog/internal/shared"
)

// FamilyLister hides the cache layer from the service.
type FamilyLister interface {
	Families(ctx context.Context) ([]string, error)
}

// Service orchestrates the read pipeline: predicates, the count/data query
// pair, the warehouse pivot, branch reconciliation and pagination. It holds
// no mutable state; every request builds its own query from scratch.
type Service struct {
	store      Store
	reconciler *Reconciler
	families   FamilyLister
	cfg        Config
	logger     *slog.Logger
}

// NewService constructs Service.
func NewService(store Store, reconciler *Reconciler, families FamilyLister, cfg Config, logger *slog.Logger) *Service {
	return &Service{store: store, reconciler: reconciler, families: families, cfg: cfg, logger: logger}
}

// ListResult is the paginated envelope for filtered listings.
type ListResult struct {
	Data       []Article         `json:"data"`
	Pagination shared.Pagination `json:"pagination"`
}

// ListArticles runs the filtered, paginated listing. Count and data queries
// share one predicate set; they are independent, so they run concurrently.
// The branch reconciliation needs the page's keys and runs after.
func (s *Service) ListArticles(ctx context.Context, f Filters) (ListResult, error) {
	preds := BuildPredicates(f, s.cfg)
	query := NewArticleQuery(s.cfg, preds, f.PriceList)

	var (
		total int
		rows  []ArticleRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.store.CountArticles(gctx, query)
		return err
	})
	g.Go(func() error {
		var err error
		rows, err = s.store.Articles(gctx, query, f.Limit, f.Offset)
		return err
	})
	if err := g.Wait(); err != nil {
		return ListResult{}, err
	}

	articles := s.assemble(ctx, rows, f.PriceList)
	return ListResult{
		Data:       articles,
		Pagination: shared.NewPagination(f.Limit, f.Offset, total),
	}, nil
}

// GetArticle returns the single article for a key, or ErrNotFound.
func (s *Service) GetArticle(ctx context.Context, key string, priceList int) (Article, error) {
	key = NormalizeText(key)
	if key == "" {
		return Article{}, fmt.Errorf("%w: article key is required", httpx.ErrInvalidInput)
	}

	preds := BuildPredicates(Filters{Key: key}, s.cfg)
	query := NewArticleQuery(s.cfg, preds, priceList)
	rows, err := s.store.Articles(ctx, query, 1, 0)
	if err != nil {
		return Article{}, err
	}
	if len(rows) == 0 {
		return Article{}, fmt.Errorf("%w: article %s", httpx.ErrNotFound, key)
	}

	articles := s.assemble(ctx, rows, priceList)
	return articles[0], nil
}

// SearchArticles is the legacy search endpoint: a bare array, capped at the
// search limit, no pagination envelope. A non-empty term that matches
// nothing is NotFound; an empty term with an empty base set is a plain
// empty result. The two cases must not be conflated.
func (s *Service) SearchArticles(ctx context.Context, f Filters) ([]Article, error) {
	if f.Limit <= 0 || f.Limit > s.cfg.SearchLimit {
		f.Limit = s.cfg.SearchLimit
	}

	preds := BuildPredicates(f, s.cfg)
	query := NewArticleQuery(s.cfg, preds, f.PriceList)
	rows, err := s.store.Articles(ctx, query, f.Limit, f.Offset)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		if f.Query != "" {
			return nil, fmt.Errorf("%w: no articles match %q", httpx.ErrNotFound, f.Query)
		}
		return []Article{}, nil
	}

	return s.assemble(ctx, rows, f.PriceList), nil
}

// StockByKeys is the bulk stock lookup over the primary warehouse set.
func (s *Service) StockByKeys(ctx context.Context, keys []string) ([]StockEntry, error) {
	cleaned := make([]string, 0, len(keys))
	for _, key := range keys {
		if key = strings.TrimSpace(key); key != "" {
			cleaned = append(cleaned, strings.ToUpper(key))
		}
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("%w: keys must be a non-empty array", httpx.ErrInvalidInput)
	}

	ids := make([]int, len(s.cfg.Warehouses))
	names := make(map[int]string, len(s.cfg.Warehouses))
	for i, w := range s.cfg.Warehouses {
		ids[i] = w.ID
		names[w.ID] = w.Name
	}

	entries, err := s.store.StockByKeys(ctx, cleaned, ids)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Warehouse = names[entries[i].WarehouseID]
	}
	return entries, nil
}

// Families returns the distinct family names through the cache layer.
func (s *Service) Families(ctx context.Context) ([]string, error) {
	return s.families.Families(ctx)
}

// assemble pivots the raw rows and runs the best-effort branch enrichment.
func (s *Service) assemble(ctx context.Context, rows []ArticleRow, priceList int) []Article {
	articles := make([]Article, len(rows))
	for i, row := range rows {
		articles[i] = Pivot(row, s.cfg)
	}
	s.reconciler.Enrich(ctx, priceList, articles)
	return articles
}
