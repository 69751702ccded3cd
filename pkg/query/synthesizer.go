package query

import (
	"slices"

	"github.com/matst80/slask-discovery/pkg/types"
)

// Synthesize compiles the facet, sort and paging state into one request.
// It has no side effects: equal input always yields an equal request.
// Price ranges and the deals sort are sent together and compose with AND.
func Synthesize(filters types.Filters, sort types.SortSettings, page types.PageState, seq uint64) types.FilterRequest {
	req := types.FilterRequest{
		HideOutOfStock: filters.HideOutOfStock,
		Prices:         slices.Clone(filters.Prices),
		Brands:         slices.Clone(filters.Brands),
		Categories:     slices.Clone(filters.Categories),
		Ratings:        slices.Clone(filters.Ratings),
		Page:           page.Page,
		PageSize:       sort.PageSize.Limit(),
		Sort:           sort.Sort,
		Sequence:       seq,
	}
	req.Sanitize()
	return req
}
