package storage

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreSaveLoad(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	ctx := context.Background()
	if _, err := s.Load(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Save(ctx, "sid", SessionState{Query: "brands=Acme"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	st, err := s.Load(ctx, "sid")
	if err != nil || st.Query != "brands=Acme" {
		t.Fatalf("expected saved state, got %+v (%v)", st, err)
	}
	s.Delete(ctx, "sid")
	if _, err := s.Load(ctx, "sid"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected deleted state to be gone, got %v", err)
	}
}

func TestMemoryStoreExpires(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	s.Save(context.Background(), "sid", SessionState{Query: "page=2"})
	now = now.Add(2 * time.Minute)
	if _, err := s.Load(context.Background(), "sid"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected expired state, got %v", err)
	}
}
