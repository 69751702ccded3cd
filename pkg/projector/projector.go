package projector

import (
	"slices"

	"github.com/matst80/slask-discovery/pkg/pagination"
	"github.com/matst80/slask-discovery/pkg/types"
)

// View is the display ready shape of a result set.
type View struct {
	Items      []types.Product `json:"items"`
	IsEmpty    bool            `json:"isEmpty"`
	IsLoading  bool            `json:"isLoading"`
	IsError    bool            `json:"isError"`
	TotalPages int             `json:"totalPages"`
	TotalCount int             `json:"totalCount"`
	// Truncated is set when showing all items hit the per request cap.
	Truncated bool              `json:"truncated,omitempty"`
	Display   types.DisplayMode `json:"display"`
}

// Project derives presentation flags from a result set. A failed result
// keeps the last fulfilled items so they can stay on screen.
func Project(rs types.ResultSet, display types.DisplayMode) View {
	items := slices.Clone(rs.Items)
	if items == nil {
		items = []types.Product{}
	}
	return View{
		Items:      items,
		IsEmpty:    rs.Status == types.StatusFulfilled && rs.TotalCount == 0,
		IsLoading:  rs.Status == types.StatusLoading,
		IsError:    rs.Status == types.StatusFailed,
		TotalPages: pagination.TotalPages(rs.TotalCount, rs.PageSize),
		TotalCount: rs.TotalCount,
		Truncated:  rs.PageSize == types.PageSizeAll && rs.TotalCount > types.MaxPageSize,
		Display:    display,
	}
}
