package types

import (
	"strconv"
	"strings"
)

type SortKey string

const (
	SortRelevance      SortKey = "relevance"
	SortBrandAsc       SortKey = "brandAsc"
	SortBrandDesc      SortKey = "brandDesc"
	SortPriceAsc       SortKey = "priceAsc"
	SortPriceDesc      SortKey = "priceDesc"
	SortCustomerRating SortKey = "customerRating"
	SortDeals          SortKey = "deals"
)

var sortKeys = []SortKey{
	SortRelevance,
	SortBrandAsc,
	SortBrandDesc,
	SortPriceAsc,
	SortPriceDesc,
	SortCustomerRating,
	SortDeals,
}

func SortKeys() []SortKey {
	return append([]SortKey(nil), sortKeys...)
}

func ParseSortKey(s string) (SortKey, error) {
	for _, k := range sortKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", invalid("sort", s)
}

// PageSize is the number of items per page. PageSizeAll shows every item
// on a single page, up to MaxPageSize: a single request never asks for more,
// and items beyond the cap are not reachable while showing all. Views report
// this as Truncated.
type PageSize int

const (
	PageSizeAll PageSize = 0
	PageSize5   PageSize = 5
	PageSize10  PageSize = 10
	PageSize20  PageSize = 20

	DefaultPageSize = PageSize20
	// MaxPageSize caps what a single request asks for when showing all items.
	MaxPageSize = 1000
)

var pageSizes = []PageSize{PageSize5, PageSize10, PageSize20, PageSizeAll}

func PageSizes() []PageSize {
	return append([]PageSize(nil), pageSizes...)
}

func ParsePageSize(n int) (PageSize, error) {
	for _, p := range pageSizes {
		if int(p) == n {
			return p, nil
		}
	}
	return DefaultPageSize, invalid("pageSize", n)
}

// ParsePageSizeString accepts the url form: a number or "all".
func ParsePageSizeString(s string) (PageSize, error) {
	if strings.EqualFold(s, "all") {
		return PageSizeAll, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n == 0 {
		return DefaultPageSize, invalid("pageSize", s)
	}
	return ParsePageSize(n)
}

// Limit is the page size sent to the catalog.
func (p PageSize) Limit() int {
	if p == PageSizeAll {
		return MaxPageSize
	}
	return int(p)
}

func (p PageSize) String() string {
	if p == PageSizeAll {
		return "all"
	}
	return strconv.Itoa(int(p))
}

type DisplayMode string

const (
	DisplayGrid DisplayMode = "grid"
	DisplayList DisplayMode = "list"
)

func ParseDisplayMode(s string) (DisplayMode, error) {
	switch DisplayMode(s) {
	case DisplayGrid, DisplayList:
		return DisplayMode(s), nil
	}
	return DisplayGrid, invalid("display", s)
}

// SortSettings is a snapshot of the sort and display state.
type SortSettings struct {
	Sort     SortKey     `json:"sort"`
	PageSize PageSize    `json:"pageSize"`
	Display  DisplayMode `json:"display"`
}

func DefaultSortSettings() SortSettings {
	return SortSettings{
		Sort:     SortRelevance,
		PageSize: DefaultPageSize,
		Display:  DisplayGrid,
	}
}

// PageState is a snapshot of the pagination controller.
type PageState struct {
	Page       int `json:"page"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}
