package catalog

import (
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Filters is the normalized filter set for one request. Pointer fields are
// nil when the caller did not supply the filter (or supplied an unparseable
// value, which is dropped rather than rejected).
type Filters struct {
	Query          string
	Key            string
	Family         string
	Placement      string
	Line           string
	Classification string
	Profile        string
	Genre          string

	InnerDiameter *float64
	OuterDiameter *float64
	Height        *float64
	Section       *float64

	PriceList int
	Limit     int
	Offset    int
}

var unaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeText canonicalizes a raw text filter: trims, undoes the
// form-encoded '+' space artifact, strips diacritics (the legacy data is
// Spanish and stored unaccented) and uppercases. Empty means absent.
func NormalizeText(raw string) string {
	s := strings.TrimSpace(strings.ReplaceAll(raw, "+", " "))
	if folded, _, err := transform.String(unaccent, s); err == nil {
		s = folded
	}
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeNumber parses a comma-decimal numeric filter. nil means the
// filter is absent or unparseable; callers drop it silently either way.
func NormalizeNumber(raw string) *float64 {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParseFilters builds the normalized filter set from raw query parameters.
// Pure: no side effects, no store access.
func ParseFilters(values url.Values, cfg Config) Filters {
	f := Filters{
		Query:          NormalizeText(values.Get("q")),
		Family:         NormalizeText(values.Get("family")),
		Placement:      NormalizeText(values.Get("placement")),
		Line:           NormalizeText(values.Get("line")),
		Classification: NormalizeText(values.Get("classification")),
		Profile:        NormalizeText(values.Get("profile")),
		Genre:          NormalizeText(values.Get("genre")),

		InnerDiameter: NormalizeNumber(values.Get("innerDiameter")),
		OuterDiameter: NormalizeNumber(values.Get("outerDiameter")),
		Height:        NormalizeNumber(values.Get("height")),
		Section:       NormalizeNumber(values.Get("section")),

		PriceList: parsePriceList(values.Get("branch"), cfg),
		Limit:     parseBounded(values.Get("limit"), cfg.DefaultLimit),
		Offset:    parseBounded(values.Get("offset"), 0),
	}
	if f.Limit < 1 {
		f.Limit = 1
	}
	return f
}

func parsePriceList(raw string, cfg Config) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return cfg.DefaultPriceList
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return cfg.DefaultPriceList
	}
	return id
}

func parseBounded(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
