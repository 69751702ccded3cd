package urlstate

import (
	"net/url"
	"reflect"
	"slices"
	"testing"

	"github.com/matst80/slask-discovery/pkg/facet"
	"github.com/matst80/slask-discovery/pkg/types"
)

func TestEncodeExample(t *testing.T) {
	st := DefaultState()
	st.Filters.HideOutOfStock = true
	st.Filters.Brands = []string{"Acme", "Beta"}
	st.Filters.Prices = []types.PriceRange{{Min: 100, Max: 500}}
	st.Page = 2
	st.Sort.Sort = types.SortPriceAsc

	got := EncodeString(st)
	want := "brands=Acme%2CBeta&hideOutOfStock=true&page=2&prices=100-500&sort=priceAsc"
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestEncodeDefaultsIsEmpty(t *testing.T) {
	if s := EncodeString(DefaultState()); s != "" {
		t.Errorf("expected empty query, got %q", s)
	}
}

func TestDecodeExample(t *testing.T) {
	st := DecodeString("?hideOutOfStock=true&brands=Acme%2CBeta&prices=100-500&page=2&sort=priceAsc")
	if !st.Filters.HideOutOfStock || !slices.Equal(st.Filters.Brands, []string{"Acme", "Beta"}) {
		t.Errorf("unexpected filters %+v", st.Filters)
	}
	if !slices.Equal(st.Filters.Prices, []types.PriceRange{{Min: 100, Max: 500}}) {
		t.Errorf("unexpected prices %v", st.Filters.Prices)
	}
	if st.Page != 2 || st.Sort.Sort != types.SortPriceAsc || st.Sort.PageSize != types.DefaultPageSize {
		t.Errorf("unexpected paging %+v %d", st.Sort, st.Page)
	}
}

func TestDecodeDropsMalformed(t *testing.T) {
	q := url.Values{
		"brands":         {"Acme,,%zz,Beta"},
		"ratings":        {"0,4,x,5,9,4"},
		"prices":         {"500-100,abc,10-20"},
		"page":           {"-4"},
		"sort":           {"cheapest"},
		"size":           {"13"},
		"view":           {"cards"},
		"hideOutOfStock": {"maybe"},
		"unknown":        {"1"},
	}
	st := Decode(q)
	if !slices.Equal(st.Filters.Brands, []string{"Acme", "Beta"}) {
		t.Errorf("unexpected brands %v", st.Filters.Brands)
	}
	if !slices.Equal(st.Filters.Ratings, []int{4, 5}) {
		t.Errorf("unexpected ratings %v", st.Filters.Ratings)
	}
	if !slices.Equal(st.Filters.Prices, []types.PriceRange{{Min: 10, Max: 20}}) {
		t.Errorf("unexpected prices %v", st.Filters.Prices)
	}
	if st.Page != 1 || st.Sort != types.DefaultSortSettings() || st.Filters.HideOutOfStock {
		t.Errorf("expected defaults, got %+v page %d", st.Sort, st.Page)
	}
}

func TestDecodeNeverPanics(t *testing.T) {
	for _, raw := range []string{"", "?", "%", "a=%zz", "brands", "page=99999999999999999999", "size=all&view=list"} {
		st := DecodeString(raw)
		if st.Page < 1 {
			t.Errorf("%q: page below 1", raw)
		}
	}
	st := DecodeString("size=all&view=list")
	if st.Sort.PageSize != types.PageSizeAll || st.Sort.Display != types.DisplayList {
		t.Errorf("unexpected sort settings %+v", st.Sort)
	}
}

func TestFilterStateRoundTrip(t *testing.T) {
	brands := []types.Selection{types.Brand("Acme"), types.Brand("B&O, Inc."), types.Brand("Ünicode 100%")}
	categories := []types.Selection{types.Category("TV & Audio"), types.Category("a,b")}
	prices := []types.Selection{types.Price{Min: 0, Max: 99.5}, types.Price{Min: 100, Max: 500}}
	ratings := []types.Selection{types.Rating(1), types.Rating(5)}
	dims := [][]types.Selection{brands, categories, prices, ratings, {types.Stock{}}}

	for mask := 0; mask < 1<<len(dims); mask++ {
		f := facet.NewFilterState()
		for i, d := range dims {
			if mask&(1<<i) == 0 {
				continue
			}
			for _, sel := range d {
				f.Add(sel)
			}
		}
		st := DefaultState()
		st.Filters = f.Snapshot()
		decoded := Decode(Encode(st))
		got := facet.FromFilters(decoded.Filters).Snapshot()
		if !reflect.DeepEqual(got, st.Filters) {
			t.Errorf("mask %b: expected %+v, got %+v", mask, st.Filters, got)
		}
	}
}

func TestSortRoundTrip(t *testing.T) {
	for _, key := range types.SortKeys() {
		for _, size := range types.PageSizes() {
			st := DefaultState()
			st.Sort = types.SortSettings{Sort: key, PageSize: size, Display: types.DisplayList}
			st.Page = 3
			got := DecodeString(EncodeString(st))
			if got.Sort != st.Sort || got.Page != 3 {
				t.Errorf("expected %+v page 3, got %+v page %d", st.Sort, got.Sort, got.Page)
			}
		}
	}
}

func TestDecodeStringKeepsValidEntriesAroundBadEscapes(t *testing.T) {
	cases := []struct {
		raw    string
		brands []string
	}{
		{"brands=%zz,Ok", []string{"Ok"}},
		{"brands=%zz%2COk%2CBeta", []string{"Ok", "Beta"}},
		{"brands=Acme%2C%ZZ%2cBeta&page=2", []string{"Acme", "Beta"}},
		{"brands=A%2526B%2C%", []string{"A&B"}},
		{"%zz=1&brands=Acme", []string{"Acme"}},
	}
	for _, c := range cases {
		st := DecodeString(c.raw)
		if !slices.Equal(st.Filters.Brands, c.brands) {
			t.Errorf("%q: expected brands %v, got %v", c.raw, c.brands, st.Filters.Brands)
		}
	}
	st := DecodeString("brands=%zz,Ok&prices=100-500%2Cbad%&page=2&sort=priceAsc")
	if !slices.Equal(st.Filters.Prices, []types.PriceRange{{Min: 100, Max: 500}}) {
		t.Errorf("unexpected prices %v", st.Filters.Prices)
	}
	if st.Page != 2 || st.Sort.Sort != types.SortPriceAsc {
		t.Errorf("expected scalar params to survive, got page %d sort %s", st.Page, st.Sort.Sort)
	}
}

func TestParseQueryMatchesStdlibOnWellFormedInput(t *testing.T) {
	raw := EncodeString(State{
		Filters: types.Filters{
			Brands:     []string{"A&B", "Comma,Co", "Plus+"},
			Categories: []string{"Phones"},
			Prices:     []types.PriceRange{{Min: 1, Max: 2.5}},
			Ratings:    []int{3},
		},
		Sort: types.DefaultSortSettings(),
		Page: 3,
	})
	want, err := url.ParseQuery(raw)
	if err != nil {
		t.Fatal(err)
	}
	if got := ParseQuery("?" + raw); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if st := DecodeString(raw); !slices.Equal(st.Filters.Brands, []string{"A&B", "Comma,Co", "Plus+"}) {
		t.Errorf("unexpected brands %v", st.Filters.Brands)
	}
}
