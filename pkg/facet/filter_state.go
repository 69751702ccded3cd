package facet

import (
	"fmt"

	"github.com/matst80/slask-discovery/pkg/types"
)

// FilterState holds the current selection of every facet. Every mutating
// method reports whether the selection changed so callers know when to
// reset paging and fetch again.
type FilterState struct {
	brands         *types.OrderedSet[string]
	categories     *types.OrderedSet[string]
	prices         *types.OrderedSet[types.PriceRange]
	ratings        *types.OrderedSet[int]
	hideOutOfStock bool
}

func NewFilterState() *FilterState {
	return &FilterState{
		brands:     types.NewOrderedSet[string](),
		categories: types.NewOrderedSet[string](),
		prices:     types.NewOrderedSet[types.PriceRange](),
		ratings:    types.NewOrderedSet[int](),
	}
}

// FromFilters rebuilds a state from a snapshot, invalid entries are dropped.
func FromFilters(f types.Filters) *FilterState {
	s := NewFilterState()
	s.hideOutOfStock = f.HideOutOfStock
	for _, b := range f.Brands {
		s.Add(types.Brand(b))
	}
	for _, c := range f.Categories {
		s.Add(types.Category(c))
	}
	for _, p := range f.Prices {
		s.Add(types.Price(p))
	}
	for _, r := range f.Ratings {
		s.Add(types.Rating(r))
	}
	return s
}

// Toggle adds the selection when absent and removes it when present.
// Toggling stock flips hideOutOfStock.
func (s *FilterState) Toggle(sel types.Selection) (bool, error) {
	if err := sel.Validate(); err != nil {
		return false, err
	}
	switch v := sel.(type) {
	case types.Brand:
		s.brands.Toggle(string(v))
	case types.Category:
		s.categories.Toggle(string(v))
	case types.Price:
		s.prices.Toggle(types.PriceRange(v))
	case types.Rating:
		s.ratings.Toggle(int(v))
	case types.Stock:
		s.hideOutOfStock = !s.hideOutOfStock
	default:
		return false, fmt.Errorf("unknown selection %T", sel)
	}
	return true, nil
}

// Add is a no-op when the selection is already present, price ranges are
// compared by their exact min/max pair.
func (s *FilterState) Add(sel types.Selection) (bool, error) {
	if err := sel.Validate(); err != nil {
		return false, err
	}
	switch v := sel.(type) {
	case types.Brand:
		return s.brands.Add(string(v)), nil
	case types.Category:
		return s.categories.Add(string(v)), nil
	case types.Price:
		return s.prices.Add(types.PriceRange(v)), nil
	case types.Rating:
		return s.ratings.Add(int(v)), nil
	case types.Stock:
		changed := !s.hideOutOfStock
		s.hideOutOfStock = true
		return changed, nil
	}
	return false, fmt.Errorf("unknown selection %T", sel)
}

func (s *FilterState) Remove(sel types.Selection) (bool, error) {
	switch v := sel.(type) {
	case types.Brand:
		return s.brands.Remove(string(v)), nil
	case types.Category:
		return s.categories.Remove(string(v)), nil
	case types.Price:
		return s.prices.Remove(types.PriceRange(v)), nil
	case types.Rating:
		return s.ratings.Remove(int(v)), nil
	case types.Stock:
		changed := s.hideOutOfStock
		s.hideOutOfStock = false
		return changed, nil
	}
	return false, fmt.Errorf("unknown selection %T", sel)
}

// RemoveAll clears one dimension.
func (s *FilterState) RemoveAll(d types.Dimension) (bool, error) {
	switch d {
	case types.DimensionBrand:
		return s.brands.Clear(), nil
	case types.DimensionCategory:
		return s.categories.Clear(), nil
	case types.DimensionPrice:
		return s.prices.Clear(), nil
	case types.DimensionRating:
		return s.ratings.Clear(), nil
	case types.DimensionStock:
		changed := s.hideOutOfStock
		s.hideOutOfStock = false
		return changed, nil
	}
	return false, &types.ValidationError{Field: "dimension", Value: d}
}

// Clear drops every selection.
func (s *FilterState) Clear() bool {
	changed := s.brands.Clear()
	changed = s.categories.Clear() || changed
	changed = s.prices.Clear() || changed
	changed = s.ratings.Clear() || changed
	if s.hideOutOfStock {
		s.hideOutOfStock = false
		changed = true
	}
	return changed
}

func (s *FilterState) Has(sel types.Selection) bool {
	switch v := sel.(type) {
	case types.Brand:
		return s.brands.Has(string(v))
	case types.Category:
		return s.categories.Has(string(v))
	case types.Price:
		return s.prices.Has(types.PriceRange(v))
	case types.Rating:
		return s.ratings.Has(int(v))
	case types.Stock:
		return s.hideOutOfStock
	}
	return false
}

// Snapshot copies the current selections in insertion order.
func (s *FilterState) Snapshot() types.Filters {
	return types.Filters{
		HideOutOfStock: s.hideOutOfStock,
		Prices:         s.prices.Values(),
		Brands:         s.brands.Values(),
		Categories:     s.categories.Values(),
		Ratings:        s.ratings.Values(),
	}
}
