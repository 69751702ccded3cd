package facet

import (
	"reflect"
	"slices"
	"testing"

	"github.com/matst80/slask-discovery/pkg/types"
)

func sortedFilters(f types.Filters) types.Filters {
	slices.Sort(f.Brands)
	slices.Sort(f.Categories)
	slices.Sort(f.Ratings)
	slices.SortFunc(f.Prices, func(a, b types.PriceRange) int {
		if a.Min != b.Min {
			if a.Min < b.Min {
				return -1
			}
			return 1
		}
		if a.Max < b.Max {
			return -1
		}
		if a.Max > b.Max {
			return 1
		}
		return 0
	})
	return f
}

func TestToggleTwiceRestoresDimension(t *testing.T) {
	selections := []types.Selection{
		types.Brand("Acme"),
		types.Category("Laptops"),
		types.Price{Min: 100, Max: 500},
		types.Rating(4),
		types.Stock{},
	}
	for _, start := range []bool{false, true} {
		for _, sel := range selections {
			s := NewFilterState()
			s.Add(types.Brand("Beta"))
			s.Add(types.Rating(2))
			s.Add(types.Price{Min: 0, Max: 50})
			if start {
				s.Add(sel)
			}
			before := sortedFilters(s.Snapshot())
			if _, err := s.Toggle(sel); err != nil {
				t.Fatalf("toggle %v: %v", sel, err)
			}
			if s.Has(sel) == start {
				t.Errorf("toggle %v did not flip membership", sel)
			}
			s.Toggle(sel)
			if after := sortedFilters(s.Snapshot()); !reflect.DeepEqual(before, after) {
				t.Errorf("toggle %v twice: expected %+v, got %+v", sel, before, after)
			}
		}
	}
}

func TestAddPriceRangeDeduplicates(t *testing.T) {
	s := NewFilterState()
	changed, err := s.Add(types.Price{Min: 100, Max: 500})
	if err != nil || !changed {
		t.Fatalf("expected first add to change state, got %v %v", changed, err)
	}
	changed, _ = s.Add(types.Price{Min: 100, Max: 500})
	if changed {
		t.Error("expected second identical add to be a no-op")
	}
	s.Add(types.Price{Min: 100, Max: 600})
	got := s.Snapshot().Prices
	want := []types.PriceRange{{Min: 100, Max: 500}, {Min: 100, Max: 600}}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestInvalidSelectionsAreRejected(t *testing.T) {
	s := NewFilterState()
	for _, sel := range []types.Selection{types.Rating(0), types.Rating(6), types.Price{Min: 5, Max: 1}, types.Brand("")} {
		if _, err := s.Add(sel); !types.IsValidationError(err) {
			t.Errorf("add %v: expected validation error, got %v", sel, err)
		}
		if _, err := s.Toggle(sel); !types.IsValidationError(err) {
			t.Errorf("toggle %v: expected validation error, got %v", sel, err)
		}
	}
	if !s.Snapshot().IsEmpty() {
		t.Errorf("expected empty state, got %+v", s.Snapshot())
	}
}

func TestRemoveAllClearsOneDimension(t *testing.T) {
	s := NewFilterState()
	s.Add(types.Brand("Acme"))
	s.Add(types.Brand("Beta"))
	s.Add(types.Category("Phones"))
	s.Add(types.Stock{})
	changed, err := s.RemoveAll(types.DimensionBrand)
	if err != nil || !changed {
		t.Fatalf("expected brands to be cleared, got %v %v", changed, err)
	}
	snap := s.Snapshot()
	if len(snap.Brands) != 0 || !slices.Equal(snap.Categories, []string{"Phones"}) || !snap.HideOutOfStock {
		t.Errorf("unexpected state %+v", snap)
	}
	if changed, _ := s.RemoveAll(types.DimensionBrand); changed {
		t.Error("expected clearing an empty dimension to be a no-op")
	}
	if _, err := s.RemoveAll("color"); err == nil {
		t.Error("expected unknown dimension to fail")
	}
}

func TestSnapshotIsDeterministic(t *testing.T) {
	build := func() types.Filters {
		s := NewFilterState()
		s.Add(types.Brand("Zeta"))
		s.Add(types.Brand("Acme"))
		s.Add(types.Rating(5))
		s.Add(types.Rating(3))
		return s.Snapshot()
	}
	a, b := build(), build()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("expected identical snapshots, got %+v and %+v", a, b)
	}
	if !slices.Equal(a.Brands, []string{"Zeta", "Acme"}) {
		t.Errorf("expected insertion order, got %v", a.Brands)
	}
}

func TestFromFiltersDropsInvalid(t *testing.T) {
	s := FromFilters(types.Filters{
		Brands:  []string{"Acme", "", "Acme"},
		Ratings: []int{9, 4},
		Prices:  []types.PriceRange{{Min: 10, Max: 1}, {Min: 1, Max: 10}},
	})
	snap := s.Snapshot()
	if !slices.Equal(snap.Brands, []string{"Acme"}) || !slices.Equal(snap.Ratings, []int{4}) || len(snap.Prices) != 1 {
		t.Errorf("unexpected state %+v", snap)
	}
}
