package storage

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session state not found")

// SessionState is what survives a restart: the encoded url state of a
// discovery session.
type SessionState struct {
	Query     string    `json:"query"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StateStore persists session state keyed by session id.
type StateStore interface {
	Save(ctx context.Context, sessionId string, state SessionState) error
	Load(ctx context.Context, sessionId string) (*SessionState, error)
	Delete(ctx context.Context, sessionId string) error
	Close() error
}
