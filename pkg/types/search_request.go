package types

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

// FilterRequest is the immutable request sent to the catalog. Sequence is
// carried out of band and is not part of the json body.
type FilterRequest struct {
	HideOutOfStock bool         `json:"hideOutOfStock"`
	Prices         []PriceRange `json:"prices" validate:"dive"`
	Brands         []string     `json:"brands" validate:"dive,required"`
	Categories     []string     `json:"categories" validate:"dive,required"`
	Ratings        []int        `json:"ratings" validate:"dive,min=1,max=5"`
	Page           int          `json:"page" validate:"min=1"`
	PageSize       int          `json:"pageSize" validate:"min=1,max=1000"`
	Sort           SortKey      `json:"sort" validate:"sortkey"`
	Sequence       uint64       `json:"-"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func requestValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterValidation("sortkey", func(fl validator.FieldLevel) bool {
			_, err := ParseSortKey(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// Validate checks the request shape before it leaves the process.
func (r *FilterRequest) Validate() error {
	return requestValidator().Struct(r)
}

func clamp[T int | float64](value, min, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Sanitize forces page and size into the ranges the catalog accepts.
func (r *FilterRequest) Sanitize() {
	r.Page = clamp(r.Page, 1, 10000)
	r.PageSize = clamp(r.PageSize, 1, MaxPageSize)
	if r.Sort == "" {
		r.Sort = SortRelevance
	}
	if r.Prices == nil {
		r.Prices = []PriceRange{}
	}
	if r.Brands == nil {
		r.Brands = []string{}
	}
	if r.Categories == nil {
		r.Categories = []string{}
	}
	if r.Ratings == nil {
		r.Ratings = []int{}
	}
}

// Offset is the zero based index of the first item on the requested page.
func (r *FilterRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}
