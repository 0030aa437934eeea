// Package product defines the catalog record served by the API and the
// list query (search, price bounds, pagination) applied to it.
//
// A Product carries an integer ID plus an open set of attributes. Only
// "name" and "price" have meaning to the service; every other attribute is
// stored and returned as the client sent it.
package product

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Attribute keys with meaning to the service.
const (
	KeyID    = "id"
	KeyName  = "name"
	KeyPrice = "price"
)

// Product is a single catalog record.
type Product struct {
	ID    int
	Attrs map[string]any
}

// New returns a Product with the given ID and the attributes merged in.
func New(id int, attrs map[string]any) Product {
	p := Product{ID: id, Attrs: make(map[string]any, len(attrs))}
	p.Merge(attrs)
	return p
}

// Merge shallow-merges attrs onto the product. Existing attributes that are
// absent from attrs are kept. An "id" attribute replaces the ID when it holds
// an integral number; any other "id" value is ignored.
func (p *Product) Merge(attrs map[string]any) {
	if p.Attrs == nil {
		p.Attrs = make(map[string]any, len(attrs))
	}
	for k, v := range attrs {
		if k == KeyID {
			if id, ok := toInt(v); ok {
				p.ID = id
			}
			continue
		}
		p.Attrs[k] = v
	}
}

// Clone returns a copy whose attribute map is independent of p's.
func (p Product) Clone() Product {
	attrs := make(map[string]any, len(p.Attrs))
	for k, v := range p.Attrs {
		attrs[k] = v
	}
	return Product{ID: p.ID, Attrs: attrs}
}

// Name returns the "name" attribute when it is a string.
func (p Product) Name() (string, bool) {
	s, ok := p.Attrs[KeyName].(string)
	return s, ok
}

// Price returns the "price" attribute as a number. Numeric strings are
// accepted; any other type reports false.
func (p Product) Price() (float64, bool) {
	return toFloat(p.Attrs[KeyPrice])
}

// MarshalJSON flattens the product into a single object with "id" alongside
// the attributes.
func (p Product) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Attrs)+1)
	for k, v := range p.Attrs {
		out[k] = v
	}
	out[KeyID] = p.ID
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (p *Product) UnmarshalJSON(data []byte) error {
	var attrs map[string]any
	if err := json.Unmarshal(data, &attrs); err != nil {
		return err
	}
	*p = New(0, attrs)
	return nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case float64:
		// float64(math.MaxInt) rounds up to 2^63, which does not fit in an int.
		if n != math.Trunc(n) || math.IsInf(n, 0) || n >= math.MaxInt || n < math.MinInt {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}
