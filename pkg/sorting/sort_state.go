package sorting

import "github.com/matst80/slask-discovery/pkg/types"

// SortState holds the sort key, page size and display mode. Invalid input
// is rejected with a ValidationError and the previous value is kept.
type SortState struct {
	sort     types.SortKey
	pageSize types.PageSize
	display  types.DisplayMode
}

func NewSortState() *SortState {
	d := types.DefaultSortSettings()
	return &SortState{sort: d.Sort, pageSize: d.PageSize, display: d.Display}
}

// FromSettings restores a snapshot, invalid fields fall back to defaults.
func FromSettings(s types.SortSettings) *SortState {
	st := NewSortState()
	st.SetSort(string(s.Sort))
	st.SetShowPerPage(int(s.PageSize))
	if d, err := types.ParseDisplayMode(string(s.Display)); err == nil {
		st.display = d
	}
	return st
}

// SetSort reports whether the key changed.
func (s *SortState) SetSort(key string) (bool, error) {
	k, err := types.ParseSortKey(key)
	if err != nil {
		return false, err
	}
	if k == s.sort {
		return false, nil
	}
	s.sort = k
	return true, nil
}

func (s *SortState) SetShowPerPage(n int) (bool, error) {
	p, err := types.ParsePageSize(n)
	if err != nil {
		return false, err
	}
	if p == s.pageSize {
		return false, nil
	}
	s.pageSize = p
	return true, nil
}

// ToggleDisplayMode flips between grid and list. It only affects how
// results are presented.
func (s *SortState) ToggleDisplayMode() types.DisplayMode {
	if s.display == types.DisplayGrid {
		s.display = types.DisplayList
	} else {
		s.display = types.DisplayGrid
	}
	return s.display
}

func (s *SortState) Sort() types.SortKey            { return s.sort }
func (s *SortState) PageSize() types.PageSize       { return s.pageSize }
func (s *SortState) DisplayMode() types.DisplayMode { return s.display }

func (s *SortState) Snapshot() types.SortSettings {
	return types.SortSettings{Sort: s.sort, PageSize: s.pageSize, Display: s.display}
}
