package catalog

import (
	"fmt"
	"strings"
)

// ArticleQuery assembles the count and data statements for one request.
// Both share the same predicate set; rendering is per-statement so the
// placeholder numbering of the shared WHERE clause is always consistent
// with that statement's own parameter list.
type ArticleQuery struct {
	cfg       Config
	preds     []Predicate
	priceList int
}

// NewArticleQuery builds the query pair for the given predicates and
// caller-selected price list.
func NewArticleQuery(cfg Config, preds []Predicate, priceList int) *ArticleQuery {
	return &ArticleQuery{cfg: cfg, preds: preds, priceList: priceList}
}

// The supplier join is required: the catalog only exposes articles that
// carry at least one provider-type alternate key. Attribute, stock and
// price joins are LEFT so missing side data never drops the article row.
const countJoins = `
FROM articles a
JOIN article_suppliers sup ON sup.code = a.code AND sup.kind = 'P'
LEFT JOIN article_specs sp ON sp.code = a.code`

// CountSQL renders the COUNT statement. It shares the WHERE clause with
// DataSQL but carries only the filter parameters.
func (q *ArticleQuery) CountSQL() (string, []any) {
	a := &ArgList{}
	where := renderWhere(q.preds, a)
	return "SELECT COUNT(DISTINCT a.code)" + countJoins + where, a.Args()
}

// DataSQL renders the paginated data statement. Parameter order: the price
// list id first (its placeholder sits in the price join, which renders
// before the WHERE clause), then the filter parameters, then limit/offset.
func (q *ArticleQuery) DataSQL(limit, offset int) (string, []any) {
	a := &ArgList{}

	var sb strings.Builder
	sb.WriteString("SELECT\n  ")
	sb.WriteString(strings.Join(q.projection(), ",\n  "))
	sb.WriteString(countJoins)
	sb.WriteString("\nLEFT JOIN article_stock s ON s.code = a.code")
	fmt.Fprintf(&sb, "\nLEFT JOIN article_prices p ON p.code = a.code AND p.price_list_id = %s", a.Bind(q.priceList))
	sb.WriteString(renderWhere(q.preds, a))
	sb.WriteString("\nGROUP BY ")
	sb.WriteString(strings.Join(scalarColumns, ", "))
	sb.WriteString("\nORDER BY a.code ASC")
	fmt.Fprintf(&sb, "\nLIMIT %s OFFSET %s", a.Bind(limit), a.Bind(offset))

	return sb.String(), a.Args()
}

// scalarColumns are every non-aggregated selected column; the GROUP BY must
// list all of them so conditional aggregation collapses the one-to-many
// stock, price and supplier rows into exactly one row per article key.
var scalarColumns = []string{
	"a.code", "a.description", "a.unit", "a.line", "a.last_cost", "a.last_purchase",
	"sp.family", "sp.placement", "sp.genre", "sp.profile", "sp.classification",
	"sp.inner_diameter", "sp.outer_diameter", "sp.height", "sp.section",
}

func (q *ArticleQuery) projection() []string {
	cols := []string{
		"TRIM(a.code) AS code",
		"COALESCE(a.description, '') AS description",
		"COALESCE(a.unit, '') AS unit",
		"COALESCE(a.line, '') AS line",
		"COALESCE(a.last_cost, 0) AS last_cost",
		"a.last_purchase",
		"COALESCE(sp.family, '') AS family",
		"COALESCE(sp.placement, '') AS placement",
		"COALESCE(sp.genre, '') AS genre",
		"COALESCE(sp.profile, '') AS profile",
		"COALESCE(sp.classification, '') AS classification",
		"COALESCE(TRIM(sp.inner_diameter), '') AS inner_diameter",
		"COALESCE(TRIM(sp.outer_diameter), '') AS outer_diameter",
		"COALESCE(TRIM(sp.height), '') AS height",
		"COALESCE(TRIM(sp.section), '') AS section",
		// The price join is already restricted to the selected list, so a
		// plain MAX collapses it.
		"COALESCE(MAX(p.price), 0) AS price",
	}
	for i, s := range q.cfg.Suppliers {
		cols = append(cols, fmt.Sprintf(
			"MAX(CASE WHEN sup.supplier_id = %d THEN TRIM(sup.alt_key) END) AS alt_%d", s.ID, i))
	}
	for _, w := range q.cfg.Warehouses {
		cols = append(cols, fmt.Sprintf(
			"COALESCE(MAX(CASE WHEN s.warehouse_id = %d THEN s.qty END), 0) AS wh_%d", w.ID, w.ID))
	}
	return cols
}
