package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// ArgList accumulates bound parameters. Bind hands back the placeholder for
// the argument it just appended, so placeholder numbering always matches the
// argument's position in the final list regardless of how many parameters
// any earlier clause consumed.
type ArgList struct {
	args []any
}

// Bind appends v and returns its positional placeholder ($1, $2, ...).
func (l *ArgList) Bind(v any) string {
	l.args = append(l.args, v)
	return "$" + strconv.Itoa(len(l.args))
}

// Args returns the accumulated parameters in bind order.
func (l *ArgList) Args() []any {
	return l.args
}

// Predicate renders one WHERE fragment, binding its parameters as it goes.
// Predicates are rendered in slice order, so construction order fixes
// parameter order.
type Predicate func(args *ArgList) string

// TolerantNumeric compares a dimensional attribute stored as comma-decimal
// text against target within an absolute tolerance. Blank and NULL values
// are coalesced to '0' before the cast so legacy rows never break the query.
func TolerantNumeric(col string, target, tolerance float64) Predicate {
	return func(a *ArgList) string {
		expr := fmt.Sprintf(
			"CAST(COALESCE(NULLIF(REPLACE(TRIM(%s), ',', '.'), ''), '0') AS DOUBLE PRECISION)", col)
		return fmt.Sprintf("ABS(%s - %s) <= %s", expr, a.Bind(target), a.Bind(tolerance))
	}
}

// FoldedContains is a NULL-safe, case-folded substring match.
func FoldedContains(col, term string) Predicate {
	return func(a *ArgList) string {
		return fmt.Sprintf("UPPER(TRIM(COALESCE(%s, ''))) LIKE %s", col, a.Bind("%"+term+"%"))
	}
}

// KeyEquals matches the trimmed article key exactly.
func KeyEquals(col, key string) Predicate {
	return func(a *ArgList) string {
		return fmt.Sprintf("TRIM(%s) = %s", col, a.Bind(key))
	}
}

// DescriptionOrKey matches the free-text search term against either the
// article description or the key itself.
func DescriptionOrKey(descCol, keyCol, term string) Predicate {
	return func(a *ArgList) string {
		pattern := "%" + term + "%"
		return fmt.Sprintf("(UPPER(TRIM(COALESCE(%s, ''))) LIKE %s OR UPPER(TRIM(%s)) LIKE %s)",
			descCol, a.Bind(pattern), keyCol, a.Bind(pattern))
	}
}

// renderWhere renders predicates in order into a WHERE clause. Empty set
// renders to nothing.
func renderWhere(preds []Predicate, a *ArgList) string {
	if len(preds) == 0 {
		return ""
	}
	parts := make([]string, 0, len(preds))
	for _, p := range preds {
		parts = append(parts, p(a))
	}
	return "\nWHERE " + strings.Join(parts, "\n  AND ")
}

// BuildPredicates converts the normalized filter set into ordered predicate
// objects. The order here is the order parameters appear in the rendered
// SQL for both the count and the data query.
func BuildPredicates(f Filters, cfg Config) []Predicate {
	var preds []Predicate

	if f.Key != "" {
		preds = append(preds, KeyEquals("a.code", f.Key))
	}
	if f.Query != "" {
		preds = append(preds, DescriptionOrKey("a.description", "a.code", f.Query))
	}

	text := []struct {
		col   string
		value string
	}{
		{"sp.family", f.Family},
		{"sp.placement", f.Placement},
		{"a.line", f.Line},
		{"sp.classification", f.Classification},
		{"sp.profile", f.Profile},
		{"sp.genre", f.Genre},
	}
	for _, t := range text {
		if t.value != "" {
			preds = append(preds, FoldedContains(t.col, t.value))
		}
	}

	numeric := []struct {
		col   string
		value *float64
	}{
		{"sp.inner_diameter", f.InnerDiameter},
		{"sp.outer_diameter", f.OuterDiameter},
		{"sp.height", f.Height},
		{"sp.section", f.Section},
	}
	for _, n := range numeric {
		if n.value != nil {
			preds = append(preds, TolerantNumeric(n.col, *n.value, cfg.Tolerance))
		}
	}

	return preds
}
