package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/menezmethod/vitrina/internal/product"
)

// DefaultSeed returns the products a fresh store starts with.
func DefaultSeed() []product.Product {
	return []product.Product{
		product.New(1, map[string]any{"name": "Phone", "price": 800.0}),
		product.New(2, map[string]any{"name": "Laptop", "price": 1500.0}),
	}
}

// LoadSeed reads a YAML sequence of product mappings from path. Entries
// without an integral id are numbered by position, starting at 1.
func LoadSeed(path string) ([]product.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var entries []map[string]any
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	out := make([]product.Product, 0, len(entries))
	for i, attrs := range entries {
		out = append(out, product.New(i+1, attrs))
	}
	return out, nil
}
