package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCountSQL(t *testing.T) {
	cfg := testConfig()
	preds := BuildPredicates(Filters{Family: "RETEN"}, cfg)
	q := NewArticleQuery(cfg, preds, 1)

	sql, args := q.CountSQL()

	require.True(t, strings.HasPrefix(sql, "SELECT COUNT(DISTINCT a.code)"))
	require.Contains(t, sql, "JOIN article_suppliers sup ON sup.code = a.code AND sup.kind = 'P'")
	require.Contains(t, sql, "LEFT JOIN article_specs sp")
	require.NotContains(t, sql, "article_prices", "count must not join price data")
	require.Equal(t, []any{"%RETEN%"}, args)
}

func TestDataSQLParameterOrder(t *testing.T) {
	cfg := testConfig()
	height := 7.0
	preds := BuildPredicates(Filters{Family: "RETEN", Height: &height}, cfg)
	q := NewArticleQuery(cfg, preds, 3)

	sql, args := q.DataSQL(10, 20)

	// price list id first (join), filters next, paging last
	require.Equal(t, []any{3, "%RETEN%", 7.0, 1e-5, 10, 20}, args)
	require.Contains(t, sql, "p.price_list_id = $1")
	require.Contains(t, sql, "LIKE $2")
	require.Contains(t, sql, "LIMIT $5 OFFSET $6")
}

func TestDataSQLShape(t *testing.T) {
	cfg := testConfig()
	q := NewArticleQuery(cfg, nil, 1)

	sql, args := q.DataSQL(50, 0)

	require.Contains(t, sql, "ORDER BY a.code ASC")
	require.Contains(t, sql, "GROUP BY "+strings.Join(scalarColumns, ", "))

	// pivot columns for every configured warehouse, zero-defaulted
	require.Contains(t, sql, "COALESCE(MAX(CASE WHEN s.warehouse_id = 1 THEN s.qty END), 0) AS wh_1")
	require.Contains(t, sql, "COALESCE(MAX(CASE WHEN s.warehouse_id = 2 THEN s.qty END), 0) AS wh_2")

	// alternate keys pivoted for the fixed supplier ids, as literals
	require.Contains(t, sql, "CASE WHEN sup.supplier_id = 501 THEN TRIM(sup.alt_key) END")
	require.Contains(t, sql, "CASE WHEN sup.supplier_id = 502 THEN TRIM(sup.alt_key) END")

	// left joins for one-to-many data, required join for supplier kind
	require.Contains(t, sql, "LEFT JOIN article_stock s ON s.code = a.code")
	require.Contains(t, sql, "LEFT JOIN article_prices p ON p.code = a.code")

	require.Equal(t, []any{1, 50, 0}, args)
}

func TestCountAndDataShareWhereClause(t *testing.T) {
	cfg := testConfig()
	inner := 25.4
	preds := BuildPredicates(Filters{Query: "6204", InnerDiameter: &inner}, cfg)
	q := NewArticleQuery(cfg, preds, 1)

	countSQL, countArgs := q.CountSQL()
	dataSQL, dataArgs := q.DataSQL(10, 0)

	require.Contains(t, countSQL, "WHERE ")
	require.Contains(t, dataSQL, "WHERE ")
	// data carries the same filter args, shifted by the leading price list id
	require.Equal(t, countArgs, dataArgs[1:len(countArgs)+1])
}
