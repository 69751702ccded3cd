package types

type Product struct {
	Id            string  `json:"id"`
	Title         string  `json:"title"`
	Brand         string  `json:"brand"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
	Rating        float64 `json:"rating"`
	Reviews       int     `json:"reviews,omitempty"`
	InStock       bool    `json:"inStock"`
	Image         string  `json:"image,omitempty"`
}

// Discount is the relative price reduction in percent, zero without an original price.
func (p *Product) Discount() float64 {
	if p.OriginalPrice <= 0 || p.Price >= p.OriginalPrice {
		return 0
	}
	return (p.OriginalPrice - p.Price) / p.OriginalPrice * 100
}

// CatalogResponse is what the catalog answers for one FilterRequest.
type CatalogResponse struct {
	Products   []Product `json:"products"`
	TotalCount int       `json:"totalCount"`
}

type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusFulfilled Status = "fulfilled"
	StatusFailed    Status = "failed"
)

// ResultSet holds the latest accepted response. On failure Items and
// TotalCount keep the last fulfilled data and Err is set.
type ResultSet struct {
	Items      []Product `json:"items"`
	TotalCount int       `json:"totalCount"`
	PageSize   PageSize  `json:"pageSize"`
	Status     Status    `json:"status"`
	Sequence   uint64    `json:"sequence"`
	Err        error     `json:"-"`
}

func NewResultSet() ResultSet {
	return ResultSet{
		Items:    []Product{},
		PageSize: DefaultPageSize,
		Status:   StatusIdle,
	}
}
