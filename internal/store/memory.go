package store

import (
	"slices"
	"sync"

	"github.com/menezmethod/vitrina/internal/product"
)

// Memory is a Store backed by a slice guarded by a single RWMutex.
type Memory struct {
	mu       sync.RWMutex
	items    []product.Product
	strategy IDStrategy
	next     int // next ID under IDSequence
	onResize func(n int)
}

// NewMemory creates a Memory store holding copies of seed, in order.
func NewMemory(strategy IDStrategy, seed ...product.Product) *Memory {
	if strategy == "" {
		strategy = IDLength
	}
	m := &Memory{
		items:    make([]product.Product, 0, len(seed)),
		strategy: strategy,
		next:     1,
	}
	for _, p := range seed {
		m.items = append(m.items, p.Clone())
		if p.ID >= m.next {
			m.next = p.ID + 1
		}
	}
	return m
}

// All returns a copy of every product in insertion order.
func (m *Memory) All() []product.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]product.Product, len(m.items))
	for i, p := range m.items {
		out[i] = p.Clone()
	}
	return out
}

// Get returns the first product whose ID matches.
func (m *Memory) Get(id int) (product.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.index(id)
	if i < 0 {
		return product.Product{}, ErrNotFound
	}
	return m.items[i].Clone(), nil
}

// Create appends a product built from attrs. An integral "id" attribute
// overrides the assigned ID.
func (m *Memory) Create(attrs map[string]any) product.Product {
	m.mu.Lock()
	defer m.mu.Unlock()

	var id int
	switch m.strategy {
	case IDSequence:
		id = m.next
		m.next++
	default:
		id = len(m.items) + 1
	}

	p := product.New(id, attrs)
	if p.ID >= m.next {
		m.next = p.ID + 1
	}
	m.items = append(m.items, p)
	m.resized()
	return p.Clone()
}

// Update merges attrs onto the first product whose ID matches, in place.
func (m *Memory) Update(id int, attrs map[string]any) (product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return product.Product{}, ErrNotFound
	}
	m.items[i].Merge(attrs)
	if m.items[i].ID >= m.next {
		m.next = m.items[i].ID + 1
	}
	return m.items[i].Clone(), nil
}

// Delete removes the first product whose ID matches, keeping the order of
// the rest.
func (m *Memory) Delete(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return ErrNotFound
	}
	m.items = slices.Delete(m.items, i, i+1)
	m.resized()
	return nil
}

// Len returns the number of stored products.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// OnResize registers fn to receive the store size after every create and
// delete. fn is called once immediately with the current size.
func (m *Memory) OnResize(fn func(n int)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onResize = fn
	m.resized()
}

// resized reports the current size to the observer. The caller must hold m.mu.
func (m *Memory) resized() {
	if m.onResize != nil {
		m.onResize(len(m.items))
	}
}

// index returns the position of the first product with id, or -1.
// The caller must hold m.mu.
func (m *Memory) index(id int) int {
	return slices.IndexFunc(m.items, func(p product.Product) bool {
		return p.ID == id
	})
}
