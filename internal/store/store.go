// Package store holds the product collection for the lifetime of the process.
//
// The Store interface is what handlers depend on; Memory is the only
// implementation. Every read returns copies so callers never alias the
// records held by the store.
package store

import (
	"errors"
	"fmt"

	"github.com/menezmethod/vitrina/internal/product"
)

// ErrNotFound is returned when no product has the requested ID.
var ErrNotFound = errors.New("product not found")

// Store is an ordered collection of products.
type Store interface {
	// All returns every product in insertion order.
	All() []product.Product

	// Get returns the first product with the given ID.
	Get(id int) (product.Product, error)

	// Create appends a new product built from attrs and returns it.
	Create(attrs map[string]any) product.Product

	// Update shallow-merges attrs onto the product with the given ID.
	Update(id int, attrs map[string]any) (product.Product, error)

	// Delete removes the product with the given ID.
	Delete(id int) error

	// Len returns the number of stored products.
	Len() int
}

// SizeObserver is implemented by stores that report their size each time it
// changes. The callback runs while the store is locked, so successive calls
// see sizes in the order the mutations happened; it must not call back into
// the store.
type SizeObserver interface {
	OnResize(fn func(n int))
}

// IDStrategy selects how Create assigns IDs.
type IDStrategy string

const (
	// IDLength assigns len+1. Deleting and then creating can reuse an ID
	// that is still held by another product.
	IDLength IDStrategy = "length"

	// IDSequence assigns from a counter that only grows.
	IDSequence IDStrategy = "sequence"
)

// ParseIDStrategy validates s as an IDStrategy.
func ParseIDStrategy(s string) (IDStrategy, error) {
	switch IDStrategy(s) {
	case IDLength, IDSequence:
		return IDStrategy(s), nil
	}
	return "", fmt.Errorf("unknown id strategy %q", s)
}
