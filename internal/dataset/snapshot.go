// Package dataset owns the in-memory sales dataset: an immutable snapshot of
// categories, products and monthly sales rows with id-keyed indexes, loaded
// from a backend and swapped atomically on reload.
package dataset

import (
	"sort"

	"pharmakpi/internal/core"
)

// FallbackCategoryLabel is displayed when a product references a category
// that is missing from the snapshot. Dangling references are tolerated, not
// rejected at load time.
const FallbackCategoryLabel = "Catégorie"

// Snapshot is one fully built dataset generation. It is never mutated after
// construction; readers capture a reference once and use it for the whole
// request.
type Snapshot struct {
	Categories []core.Category
	Products   []core.Product
	Sales      []core.SalesRow

	ProductByID  map[string]core.Product
	CategoryByID map[string]core.Category
}

// Counts reports how many records a snapshot holds.
type Counts struct {
	Categories int `json:"categories"`
	Products   int `json:"products"`
	Sales      int `json:"sales"`
}

// NewSnapshot builds the two lookup indexes over the given record streams.
func NewSnapshot(categories []core.Category, products []core.Product, sales []core.SalesRow) *Snapshot {
	s := &Snapshot{
		Categories:   categories,
		Products:     products,
		Sales:        sales,
		ProductByID:  make(map[string]core.Product, len(products)),
		CategoryByID: make(map[string]core.Category, len(categories)),
	}
	for _, p := range products {
		s.ProductByID[p.ID] = p
	}
	for _, c := range categories {
		s.CategoryByID[c.ID] = c
	}
	return s
}

// Counts returns the record counts of this snapshot.
func (s *Snapshot) Counts() Counts {
	return Counts{
		Categories: len(s.Categories),
		Products:   len(s.Products),
		Sales:      len(s.Sales),
	}
}

// CategoryLabel resolves a category id to its display name, falling back to
// the generic label for dangling references.
func (s *Snapshot) CategoryLabel(id string) string {
	if c, ok := s.CategoryByID[id]; ok {
		return c.Name
	}
	return FallbackCategoryLabel
}

// Years returns the distinct sale years in ascending order.
func (s *Snapshot) Years() []int {
	seen := make(map[int]struct{})
	for _, r := range s.Sales {
		seen[r.Year] = struct{}{}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
