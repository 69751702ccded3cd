package catalog

import (
	"cmp"
	"context"
	"math"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/matst80/slask-discovery/pkg/common/jsoncompat"
	"github.com/matst80/slask-discovery/pkg/types"
)

// Memory is an in process catalog over a fixed product list. Values within
// one facet are OR:ed, facets are AND:ed. Relevance keeps the stored order.
type Memory struct {
	mu       sync.RWMutex
	products []types.Product
}

func NewMemory(products []types.Product) *Memory {
	return &Memory{products: slices.Clone(products)}
}

// LoadMemory reads a json array of products from path.
func LoadMemory(path string) (*Memory, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	products := make([]types.Product, 0)
	if err := jsoncompat.NewDecoder(file).Decode(&products); err != nil {
		return nil, err
	}
	return NewMemory(products), nil
}

func (m *Memory) Upsert(products ...types.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range products {
		i := slices.IndexFunc(m.products, func(existing types.Product) bool {
			return existing.Id == p.Id
		})
		if i >= 0 {
			m.products[i] = p
		} else {
			m.products = append(m.products, p)
		}
	}
}

func (m *Memory) Search(ctx context.Context, req types.FilterRequest) (*types.CatalogResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	matching := make([]types.Product, 0)
	for _, p := range m.products {
		if matches(&p, &req) {
			matching = append(matching, p)
		}
	}
	m.mu.RUnlock()

	sortProducts(matching, req.Sort)

	r := req
	r.Sanitize()
	start := min(r.Offset(), len(matching))
	end := min(start+r.PageSize, len(matching))
	return &types.CatalogResponse{
		Products:   slices.Clone(matching[start:end]),
		TotalCount: len(matching),
	}, nil
}

func matches(p *types.Product, req *types.FilterRequest) bool {
	if req.HideOutOfStock && !p.InStock {
		return false
	}
	if len(req.Brands) > 0 && !slices.ContainsFunc(req.Brands, func(b string) bool {
		return strings.EqualFold(b, p.Brand)
	}) {
		return false
	}
	if len(req.Categories) > 0 && !slices.ContainsFunc(req.Categories, func(c string) bool {
		return strings.EqualFold(c, p.Category)
	}) {
		return false
	}
	if len(req.Prices) > 0 && !slices.ContainsFunc(req.Prices, func(r types.PriceRange) bool {
		return p.Price >= r.Min && p.Price <= r.Max
	}) {
		return false
	}
	if len(req.Ratings) > 0 && !slices.Contains(req.Ratings, int(math.Floor(p.Rating))) {
		return false
	}
	return true
}

func sortProducts(products []types.Product, key types.SortKey) {
	var fn func(a, b types.Product) int
	switch key {
	case types.SortBrandAsc:
		fn = func(a, b types.Product) int {
			return strings.Compare(strings.ToLower(a.Brand), strings.ToLower(b.Brand))
		}
	case types.SortBrandDesc:
		fn = func(a, b types.Product) int {
			return strings.Compare(strings.ToLower(b.Brand), strings.ToLower(a.Brand))
		}
	case types.SortPriceAsc:
		fn = func(a, b types.Product) int { return cmp.Compare(a.Price, b.Price) }
	case types.SortPriceDesc:
		fn = func(a, b types.Product) int { return cmp.Compare(b.Price, a.Price) }
	case types.SortCustomerRating:
		fn = func(a, b types.Product) int {
			if c := cmp.Compare(b.Rating, a.Rating); c != 0 {
				return c
			}
			return cmp.Compare(b.Reviews, a.Reviews)
		}
	case types.SortDeals:
		fn = func(a, b types.Product) int { return cmp.Compare(b.Discount(), a.Discount()) }
	default:
		return
	}
	slices.SortStableFunc(products, fn)
}
