// Package urlstate maps discovery state to and from query string parameters.
//
// List valued facets are joined with a comma after escaping each entry, an
// omitted parameter means the facet is unrestricted. Decoding never fails:
// unknown parameters and malformed values are dropped.
package urlstate

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/schema"
	"github.com/matst80/slask-discovery/pkg/types"
)

const (
	paramHideOutOfStock = "hideOutOfStock"
	paramBrands         = "brands"
	paramCategories     = "categories"
	paramPrices         = "prices"
	paramRatings        = "ratings"
	paramPage           = "page"
	paramSort           = "sort"
	paramSize           = "size"
	paramView           = "view"

	separator = ","
)

// State is everything the address bar carries.
type State struct {
	Filters types.Filters
	Sort    types.SortSettings
	Page    int
}

func DefaultState() State {
	return State{
		Filters: types.EmptyFilters(),
		Sort:    types.DefaultSortSettings(),
		Page:    1,
	}
}

type scalarParams struct {
	HideOutOfStock bool   `schema:"hideOutOfStock"`
	Page           int    `schema:"page"`
	Sort           string `schema:"sort"`
	Size           string `schema:"size"`
	View           string `schema:"view"`
}

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

func joinEscaped(items []string) string {
	escaped := make([]string, len(items))
	for i, s := range items {
		escaped[i] = url.QueryEscape(s)
	}
	return strings.Join(escaped, separator)
}

func splitEscaped(values []string) []string {
	ret := make([]string, 0)
	for _, v := range values {
		for _, part := range strings.Split(v, separator) {
			s, err := url.QueryUnescape(part)
			if err != nil {
				continue
			}
			if strings.TrimSpace(s) == "" {
				continue
			}
			ret = append(ret, s)
		}
	}
	return ret
}

// Encode writes only what differs from the defaults.
func Encode(st State) url.Values {
	q := url.Values{}
	f := st.Filters
	if f.HideOutOfStock {
		q.Set(paramHideOutOfStock, "true")
	}
	if len(f.Brands) > 0 {
		q.Set(paramBrands, joinEscaped(f.Brands))
	}
	if len(f.Categories) > 0 {
		q.Set(paramCategories, joinEscaped(f.Categories))
	}
	if len(f.Prices) > 0 {
		prices := make([]string, len(f.Prices))
		for i, p := range f.Prices {
			prices[i] = p.String()
		}
		q.Set(paramPrices, joinEscaped(prices))
	}
	if len(f.Ratings) > 0 {
		ratings := make([]string, len(f.Ratings))
		for i, r := range f.Ratings {
			ratings[i] = strconv.Itoa(r)
		}
		q.Set(paramRatings, joinEscaped(ratings))
	}
	if st.Page > 1 {
		q.Set(paramPage, strconv.Itoa(st.Page))
	}
	if st.Sort.Sort != "" && st.Sort.Sort != types.SortRelevance {
		q.Set(paramSort, string(st.Sort.Sort))
	}
	if st.Sort.PageSize != types.DefaultPageSize {
		q.Set(paramSize, st.Sort.PageSize.String())
	}
	if st.Sort.Display == types.DisplayList {
		q.Set(paramView, string(types.DisplayList))
	}
	return q
}

func EncodeString(st State) string {
	return Encode(st).Encode()
}

// Decode reads state from query parameters, anything it does not understand
// is left at its default.
func Decode(q url.Values) State {
	st := DefaultState()

	var p scalarParams
	// conversion errors only affect the offending field
	_ = decoder.Decode(&p, q)

	st.Filters.HideOutOfStock = p.HideOutOfStock
	if p.Page > 1 {
		st.Page = p.Page
	}
	if k, err := types.ParseSortKey(p.Sort); err == nil {
		st.Sort.Sort = k
	}
	if p.Size != "" {
		if size, err := types.ParsePageSizeString(p.Size); err == nil {
			st.Sort.PageSize = size
		}
	}
	if d, err := types.ParseDisplayMode(p.View); err == nil {
		st.Sort.Display = d
	}

	brands := types.NewOrderedSet[string]()
	for _, b := range splitEscaped(q[paramBrands]) {
		brands.Add(b)
	}
	st.Filters.Brands = brands.Values()

	categories := types.NewOrderedSet[string]()
	for _, c := range splitEscaped(q[paramCategories]) {
		categories.Add(c)
	}
	st.Filters.Categories = categories.Values()

	prices := types.NewOrderedSet[types.PriceRange]()
	for _, s := range splitEscaped(q[paramPrices]) {
		if r, err := types.ParsePriceRange(s); err == nil {
			prices.Add(r)
		}
	}
	st.Filters.Prices = prices.Values()

	ratings := types.NewOrderedSet[int]()
	for _, s := range splitEscaped(q[paramRatings]) {
		r, err := strconv.Atoi(s)
		if err != nil || types.Rating(r).Validate() != nil {
			continue
		}
		ratings.Add(r)
	}
	st.Filters.Ratings = ratings.Values()

	return st
}

// DecodeString parses a raw query string, with or without the leading '?'.
func DecodeString(raw string) State {
	return Decode(ParseQuery(raw))
}

// ParseQuery is url.ParseQuery without its all or nothing handling of bad
// escapes: a malformed list entry drops only that entry, a malformed key
// drops only that pair.
func ParseQuery(raw string) url.Values {
	q := url.Values{}
	for _, pair := range strings.Split(strings.TrimPrefix(raw, "?"), "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil || key == "" {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			value = salvageList(rawValue)
		}
		q.Add(key, value)
	}
	return q
}

// salvageList keeps the entries of a joined list value that unescape cleanly,
// in the form a well formed value would have after one round of unescaping.
func salvageList(rawValue string) string {
	kept := make([]string, 0)
	for _, part := range splitRawList(rawValue) {
		entry, err := url.QueryUnescape(part)
		if err != nil {
			continue
		}
		kept = append(kept, entry)
	}
	return strings.Join(kept, separator)
}

// splitRawList splits on the separator, literal or escaped as %2C.
func splitRawList(s string) []string {
	parts := make([]string, 0)
	start := 0
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == ',':
			parts = append(parts, s[start:i])
			start = i + 1
		case s[i] == '%' && i+2 < len(s) && s[i+1] == '2' && (s[i+2] == 'C' || s[i+2] == 'c'):
			parts = append(parts, s[start:i])
			start = i + 3
			i += 2
		}
	}
	return append(parts, s[start:])
}
