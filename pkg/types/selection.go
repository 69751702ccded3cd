package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Dimension identifies one facet.
type Dimension string

const (
	DimensionBrand    Dimension = "brand"
	DimensionCategory Dimension = "category"
	DimensionPrice    Dimension = "price"
	DimensionRating   Dimension = "rating"
	DimensionStock    Dimension = "stock"
)

const (
	MinRating = 1
	MaxRating = 5
)

func ParseDimension(s string) (Dimension, error) {
	switch d := Dimension(strings.ToLower(strings.TrimSpace(s))); d {
	case DimensionBrand, DimensionCategory, DimensionPrice, DimensionRating, DimensionStock:
		return d, nil
	}
	return "", invalid("dimension", s)
}

type PriceRange struct {
	Min float64 `json:"min" validate:"gte=0"`
	Max float64 `json:"max" validate:"gtefield=Min"`
}

func (p PriceRange) String() string {
	return strconv.FormatFloat(p.Min, 'f', -1, 64) + "-" + strconv.FormatFloat(p.Max, 'f', -1, 64)
}

// ParsePriceRange reads the "min-max" form used in urls.
func ParsePriceRange(s string) (PriceRange, error) {
	lo, hi, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return PriceRange{}, invalid("price", s)
	}
	min, err := strconv.ParseFloat(lo, 64)
	if err != nil {
		return PriceRange{}, invalid("price", s)
	}
	max, err := strconv.ParseFloat(hi, 64)
	if err != nil {
		return PriceRange{}, invalid("price", s)
	}
	r := PriceRange{Min: min, Max: max}
	return r, r.Validate()
}

func (p PriceRange) Validate() error {
	if math.IsNaN(p.Min) || math.IsNaN(p.Max) || math.IsInf(p.Max, 0) || p.Min < 0 || p.Max < p.Min {
		return invalid("price", p.String())
	}
	return nil
}

// Selection is one value in one facet. The concrete types below are the
// only implementations.
type Selection interface {
	Dimension() Dimension
	Validate() error
}

type Brand string

type Category string

type Rating int

// Stock stands for the hide-out-of-stock switch.
type Stock struct{}

type Price PriceRange

func (Brand) Dimension() Dimension    { return DimensionBrand }
func (Category) Dimension() Dimension { return DimensionCategory }
func (Rating) Dimension() Dimension   { return DimensionRating }
func (Stock) Dimension() Dimension    { return DimensionStock }
func (Price) Dimension() Dimension    { return DimensionPrice }

func (b Brand) Validate() error {
	if strings.TrimSpace(string(b)) == "" {
		return invalid("brand", string(b))
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(string(c)) == "" {
		return invalid("category", string(c))
	}
	return nil
}

func (r Rating) Validate() error {
	if r < MinRating || r > MaxRating {
		return invalid("rating", int(r))
	}
	return nil
}

func (Stock) Validate() error { return nil }

func (p Price) Validate() error { return PriceRange(p).Validate() }

// ParseSelection builds a selection from loosely typed input, as received by
// http handlers. Price values use the "min-max" form unless min/max are given.
func ParseSelection(dimension string, value string, min, max *float64) (Selection, error) {
	d, err := ParseDimension(dimension)
	if err != nil {
		return nil, err
	}
	var sel Selection
	switch d {
	case DimensionBrand:
		sel = Brand(strings.TrimSpace(value))
	case DimensionCategory:
		sel = Category(strings.TrimSpace(value))
	case DimensionRating:
		r, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, invalid("rating", value)
		}
		sel = Rating(r)
	case DimensionStock:
		sel = Stock{}
	case DimensionPrice:
		if min != nil && max != nil {
			sel = Price{Min: *min, Max: *max}
		} else {
			r, err := ParsePriceRange(value)
			if err != nil {
				return nil, err
			}
			sel = Price(r)
		}
	default:
		return nil, fmt.Errorf("unhandled dimension %s", d)
	}
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	return sel, nil
}
