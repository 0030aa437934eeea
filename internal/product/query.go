package product

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Query describes the optional filters and pagination for listing products.
// The zero value matches every product and returns all of them.
type Query struct {
	Search   string
	MinPrice *float64
	MaxPrice *float64
	Page     int // 1-based; values below 1 mean the first page
	Limit    int // values below 1 mean no pagination
}

// ParseQuery builds a Query from URL query parameters. Empty or malformed
// numeric values are treated as if the parameter were absent.
func ParseQuery(v url.Values) Query {
	q := Query{
		Search: v.Get("search"),
		Page:   1,
	}
	if f, ok := parseFloat(v.Get("minPrice")); ok {
		q.MinPrice = &f
	}
	if f, ok := parseFloat(v.Get("maxPrice")); ok {
		q.MaxPrice = &f
	}
	if n, err := strconv.Atoi(strings.TrimSpace(v.Get("page"))); err == nil && n > 0 {
		q.Page = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(v.Get("limit"))); err == nil && n > 0 {
		q.Limit = n
	}
	return q
}

// Apply filters ps and returns the requested page. ps is never modified.
func (q Query) Apply(ps []Product) []Product {
	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		if q.matches(p) {
			out = append(out, p)
		}
	}
	return q.paginate(out)
}

func (q Query) matches(p Product) bool {
	if q.Search != "" {
		name, ok := p.Name()
		if !ok || !strings.Contains(strings.ToLower(name), strings.ToLower(q.Search)) {
			return false
		}
	}
	if q.MinPrice == nil && q.MaxPrice == nil {
		return true
	}
	price, ok := p.Price()
	if !ok {
		return false
	}
	if q.MinPrice != nil && price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && price > *q.MaxPrice {
		return false
	}
	return true
}

// paginate returns the slice [(page-1)*limit, (page-1)*limit+limit),
// clamped to the bounds of ps.
func (q Query) paginate(ps []Product) []Product {
	limit := q.Limit
	if limit < 1 {
		limit = len(ps)
	}
	page := max(q.Page, 1)
	if len(ps) == 0 || page-1 > (len(ps)-1)/limit {
		return ps[:0]
	}
	start := (page - 1) * limit
	end := min(start+limit, len(ps))
	return ps[start:end]
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
