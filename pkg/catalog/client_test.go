package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/matst80/slask-discovery/pkg/types"
)

func TestHTTPClientSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.Header.Get(SequenceHeader) != "7" {
			t.Errorf("expected sequence header 7, got %q", r.Header.Get(SequenceHeader))
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if _, ok := body["sequence"]; ok {
			t.Error("sequence must not be part of the body")
		}
		if body["sort"] != "priceAsc" {
			t.Errorf("expected priceAsc, got %v", body["sort"])
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"products":[{"id":"a","title":"A","price":10}],"totalCount":41}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second, zerolog.Nop())
	req := request(func(r *types.FilterRequest) { r.Sort = types.SortPriceAsc })
	req.Sequence = 7
	resp, err := c.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if resp.TotalCount != 41 || len(resp.Products) != 1 || resp.Products[0].Id != "a" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestHTTPClientNonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL, time.Second, zerolog.Nop()).Search(context.Background(), request(nil))
	var te *TransportError
	if !errors.As(err, &te) || te.StatusCode != http.StatusBadGateway {
		t.Errorf("expected transport error 502, got %v", err)
	}
}

func TestHTTPClientTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := NewHTTPClient(srv.URL, time.Second, zerolog.Nop()).Search(ctx, request(nil)); err == nil {
		t.Error("expected timeout error")
	}
}
