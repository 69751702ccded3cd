package types

// Filters is an immutable snapshot of every facet selection.
type Filters struct {
	HideOutOfStock bool         `json:"hideOutOfStock"`
	Prices         []PriceRange `json:"prices"`
	Brands         []string     `json:"brands"`
	Categories     []string     `json:"categories"`
	Ratings        []int        `json:"ratings"`
}

func EmptyFilters() Filters {
	return Filters{
		Prices:     []PriceRange{},
		Brands:     []string{},
		Categories: []string{},
		Ratings:    []int{},
	}
}

func (f Filters) IsEmpty() bool {
	return !f.HideOutOfStock && len(f.Prices) == 0 && len(f.Brands) == 0 && len(f.Categories) == 0 && len(f.Ratings) == 0
}
