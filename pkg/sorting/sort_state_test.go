package sorting

import (
	"testing"

	"github.com/matst80/slask-discovery/pkg/types"
)

func TestSetSortRejectsUnknownKey(t *testing.T) {
	s := NewSortState()
	if changed, err := s.SetSort("priceAsc"); err != nil || !changed {
		t.Fatalf("expected priceAsc to be accepted, got %v %v", changed, err)
	}
	changed, err := s.SetSort("cheapest")
	if !types.IsValidationError(err) || changed {
		t.Fatalf("expected validation error, got %v %v", changed, err)
	}
	if s.Sort() != types.SortPriceAsc {
		t.Errorf("expected prior key to be kept, got %s", s.Sort())
	}
	if changed, _ := s.SetSort("priceAsc"); changed {
		t.Error("expected same key to be a no-op")
	}
}

func TestSetShowPerPage(t *testing.T) {
	s := NewSortState()
	if s.PageSize() != types.DefaultPageSize {
		t.Fatalf("expected default page size, got %v", s.PageSize())
	}
	if _, err := s.SetShowPerPage(0); err != nil {
		t.Fatalf("expected all to be accepted: %v", err)
	}
	if _, err := s.SetShowPerPage(15); !types.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if s.PageSize() != types.PageSizeAll {
		t.Errorf("expected all to be kept, got %v", s.PageSize())
	}
}

func TestToggleDisplayMode(t *testing.T) {
	s := NewSortState()
	before := s.Snapshot()
	if m := s.ToggleDisplayMode(); m != types.DisplayList {
		t.Fatalf("expected list, got %s", m)
	}
	if m := s.ToggleDisplayMode(); m != types.DisplayGrid {
		t.Fatalf("expected grid, got %s", m)
	}
	if s.Snapshot() != before {
		t.Errorf("expected %+v, got %+v", before, s.Snapshot())
	}
}

func TestFromSettingsFallsBack(t *testing.T) {
	s := FromSettings(types.SortSettings{Sort: "bogus", PageSize: 7, Display: types.DisplayList})
	want := types.SortSettings{Sort: types.SortRelevance, PageSize: types.DefaultPageSize, Display: types.DisplayList}
	if s.Snapshot() != want {
		t.Errorf("expected %+v, got %+v", want, s.Snapshot())
	}
}
