package catalog

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeStore serves a fixed row set, applying limit/offset the way the data
// query would.
type fakeStore struct {
	rows     []ArticleRow
	stock    []StockEntry
	families []string
	fail     bool

	lastStockKeys []string
	lastStockWhs  []int
}

var errStoreDown = errors.New("store down")

func (f *fakeStore) CountArticles(_ context.Context, _ *ArticleQuery) (int, error) {
	if f.fail {
		return 0, errStoreDown
	}
	return len(f.rows), nil
}

func (f *fakeStore) Articles(_ context.Context, _ *ArticleQuery, limit, offset int) ([]ArticleRow, error) {
	if f.fail {
		return nil, errStoreDown
	}
	if offset >= len(f.rows) {
		return []ArticleRow{}, nil
	}
	end := offset + limit
	if end > len(f.rows) {
		end = len(f.rows)
	}
	return f.rows[offset:end], nil
}

func (f *fakeStore) StockByKeys(_ context.Context, keys []string, warehouseIDs []int) ([]StockEntry, error) {
	if f.fail {
		return nil, errStoreDown
	}
	f.lastStockKeys = keys
	f.lastStockWhs = warehouseIDs
	return f.stock, nil
}

func (f *fakeStore) Families(_ context.Context, _ []string) ([]string, error) {
	if f.fail {
		return nil, errStoreDown
	}
	return f.families, nil
}

type fakeBranch struct {
	stock      map[string]float64
	prices     map[string]float64
	stockErr   error
	pricesErr  error
	stockCalls int
}

func (f *fakeBranch) StockByKeys(_ context.Context, _ int, _ []string) (map[string]float64, error) {
	f.stockCalls++
	if f.stockErr != nil {
		return nil, f.stockErr
	}
	return f.stock, nil
}

func (f *fakeBranch) PricesByKeys(_ context.Context, _ int, _ []string) (map[string]float64, error) {
	if f.pricesErr != nil {
		return nil, f.pricesErr
	}
	return f.prices, nil
}

type staticFamilies struct{ families []string }

func (s staticFamilies) Families(_ context.Context) ([]string, error) { return s.families, nil }

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestService(store *fakeStore, branch BranchStore) *Service {
	cfg := testConfig()
	reconciler := NewReconciler(branch, cfg, testLogger())
	return NewService(store, reconciler, staticFamilies{}, cfg, testLogger())
}

func sampleRows() []ArticleRow {
	return []ArticleRow{
		{Code: "A-001", Description: "RETEN 25X40X7", Price: 100, WarehouseQty: []float64{5, 0}, AltKeys: []*string{nil, nil}},
		{Code: "A-002", Description: "RETEN 30X45X8", Price: 200, WarehouseQty: []float64{0, 3}, AltKeys: []*string{nil, nil}},
		{Code: "A-003", Description: "RODAMIENTO 6204", Price: 300, WarehouseQty: []float64{1, 1}, AltKeys: []*string{nil, nil}},
	}
}

func TestListArticles(t *testing.T) {
	store := &fakeStore{rows: sampleRows()}
	branch := &fakeBranch{stock: map[string]float64{"A-001": 7}}
	svc := newTestService(store, branch)

	res, err := svc.ListArticles(context.Background(), Filters{Limit: 2, Offset: 0, PriceList: 1})
	require.NoError(t, err)

	require.Len(t, res.Data, 2)
	require.LessOrEqual(t, len(res.Data), 2)
	require.Equal(t, 3, res.Pagination.TotalRecords)
	require.Equal(t, 2, res.Pagination.TotalPages)
	require.Equal(t, 1, res.Pagination.CurrentPage)

	require.Equal(t, 7.0, res.Data[0].Stock["SUCURSAL"])
	require.Equal(t, 0.0, res.Data[1].Stock["SUCURSAL"])
}

func TestListArticlesIdempotent(t *testing.T) {
	store := &fakeStore{rows: sampleRows()}
	svc := newTestService(store, &fakeBranch{})

	first, err := svc.ListArticles(context.Background(), Filters{Limit: 10, PriceList: 1})
	require.NoError(t, err)
	second, err := svc.ListArticles(context.Background(), Filters{Limit: 10, PriceList: 1})
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestListArticlesUpstreamError(t *testing.T) {
	svc := newTestService(&fakeStore{fail: true}, &fakeBranch{})

	_, err := svc.ListArticles(context.Background(), Filters{Limit: 10, PriceList: 1})
	require.ErrorIs(t, err, errStoreDown)
}

func TestBranchDegradation(t *testing.T) {
	store := &fakeStore{rows: sampleRows()}
	branch := &fakeBranch{stockErr: errors.New("branch unreachable")}
	svc := newTestService(store, branch)

	res, err := svc.ListArticles(context.Background(), Filters{Limit: 10, PriceList: 1})
	require.NoError(t, err, "branch failure must not fail the request")

	for _, art := range res.Data {
		require.Equal(t, 0.0, art.Stock["SUCURSAL"])
	}
}

func TestBranchPriceOverride(t *testing.T) {
	store := &fakeStore{rows: sampleRows()}
	branch := &fakeBranch{prices: map[string]float64{"A-001": 999}}
	svc := newTestService(store, branch)

	// branch price list selected: branch figures win where present
	res, err := svc.ListArticles(context.Background(), Filters{Limit: 10, PriceList: 5})
	require.NoError(t, err)
	require.Equal(t, 999.0, res.Data[0].Price)
	require.Equal(t, 200.0, res.Data[1].Price, "missing branch price keeps primary")

	// non-branch list: branch prices never consulted
	res, err = svc.ListArticles(context.Background(), Filters{Limit: 10, PriceList: 1})
	require.NoError(t, err)
	require.Equal(t, 100.0, res.Data[0].Price)
}

func TestBranchPriceFailureKeepsPrimary(t *testing.T) {
	store := &fakeStore{rows: sampleRows()}
	branch := &fakeBranch{pricesErr: errors.New("branch unreachable")}
	svc := newTestService(store, branch)

	res, err := svc.ListArticles(context.Background(), Filters{Limit: 10, PriceList: 5})
	require.NoError(t, err)
	require.Equal(t, 100.0, res.Data[0].Price)
}

func TestGetArticle(t *testing.T) {
	store := &fakeStore{rows: sampleRows()[:1]}
	svc := newTestService(store, &fakeBranch{})

	art, err := svc.GetArticle(context.Background(), "a-001", 1)
	require.NoError(t, err)
	require.Equal(t, "A-001", art.Code)

	store.rows = nil
	_, err = svc.GetArticle(context.Background(), "MISSING", 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "MISSING")
}

func TestSearchSemantics(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, &fakeBranch{})

	// empty term, naturally empty base set: plain empty array
	out, err := svc.SearchArticles(context.Background(), Filters{PriceList: 1})
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Empty(t, out)

	// non-empty term with zero matches: not found, message names the term
	_, err = svc.SearchArticles(context.Background(), Filters{Query: "ABC123", PriceList: 1})
	require.Error(t, err)
	require.Contains(t, err.Error(), "ABC123")
}

func TestStockByKeys(t *testing.T) {
	store := &fakeStore{stock: []StockEntry{
		{Code: "A-001", WarehouseID: 1, Quantity: 5},
		{Code: "A-001", WarehouseID: 2, Quantity: 2},
	}}
	svc := newTestService(store, &fakeBranch{})

	entries, err := svc.StockByKeys(context.Background(), []string{" a-001 ", ""})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "CENTRAL", entries[0].Warehouse)
	require.Equal(t, "NORTE", entries[1].Warehouse)

	require.Equal(t, []string{"A-001"}, store.lastStockKeys, "keys are trimmed, folded, blanks dropped")
	require.Equal(t, []int{1, 2}, store.lastStockWhs, "fixed primary warehouse subset")
}

func TestStockByKeysRejectsEmpty(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeBranch{})

	_, err := svc.StockByKeys(context.Background(), nil)
	require.Error(t, err)

	_, err = svc.StockByKeys(context.Background(), []string{"  ", ""})
	require.Error(t, err)
}
