package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/matst80/slask-discovery/pkg/common"
	"github.com/matst80/slask-discovery/pkg/discovery"
	"github.com/matst80/slask-discovery/pkg/storage"
)

type sessionEntry struct {
	session  *discovery.Session
	loaded   sync.Once
	mu       sync.Mutex
	lastSeen time.Time
	version  uint64
	saved    string
}

// changed records snap and reports whether its query differs from the
// last one handed to the store. Snapshots older than the last seen are ignored.
func (e *sessionEntry) changed(snap discovery.Snapshot) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if snap.Version <= e.version {
		return false
	}
	e.version = snap.Version
	if snap.Query == e.saved {
		return false
	}
	e.saved = snap.Query
	return true
}

type persistItem struct {
	sessionId string
	state     storage.SessionState
}

type RegistryOptions struct {
	Catalog  discovery.Catalog
	Store    storage.StateStore
	Tracking SearchTracker
	Logger   zerolog.Logger
	// Timeout bounds each catalog call.
	Timeout time.Duration
	// TTL is how long an untouched session is kept in memory.
	TTL time.Duration
}

// Registry holds one discovery session per browser session. Session state is
// written to the store in the background and read back when a session id
// is seen again after a restart or after being reaped.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	catalog  discovery.Catalog
	store    storage.StateStore
	tracking SearchTracker
	timeout  time.Duration
	ttl      time.Duration
	logger   zerolog.Logger
	queue    *common.QueueHandler[persistItem]
	now      func() time.Time
}

func NewRegistry(opts RegistryOptions) *Registry {
	r := &Registry{
		sessions: make(map[string]*sessionEntry),
		catalog:  opts.Catalog,
		store:    opts.Store,
		tracking: opts.Tracking,
		timeout:  opts.Timeout,
		ttl:      opts.TTL,
		logger:   opts.Logger.With().Str("component", "registry").Logger(),
		now:      time.Now,
	}
	if r.store == nil {
		r.store = storage.NewMemoryStore(r.ttl)
	}
	r.queue = common.NewQueueHandler(r.persist, 64, 500*time.Millisecond)
	return r
}

func (r *Registry) persist(items []persistItem) {
	for _, item := range items {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := r.store.Save(ctx, item.sessionId, item.state); err != nil {
			r.logger.Warn().Err(err).Str("session", item.sessionId).Msg("failed to save session state")
		}
		cancel()
	}
}

// Get returns the session for sessionId, creating it on first use. A new
// session starts from the stored state, or the defaults, and fetches.
func (r *Registry) Get(ctx context.Context, sessionId string) *discovery.Session {
	r.mu.Lock()
	e, ok := r.sessions[sessionId]
	if !ok {
		e = r.newEntry(sessionId)
		r.sessions[sessionId] = e
		activeSessions.Inc()
	}
	r.mu.Unlock()

	e.mu.Lock()
	e.lastSeen = r.now()
	e.mu.Unlock()

	e.loaded.Do(func() {
		query := r.restore(ctx, sessionId)
		e.mu.Lock()
		e.saved = query
		e.mu.Unlock()
		if err := e.session.LoadQuery(query); err != nil {
			r.logger.Warn().Err(err).Str("session", sessionId).Msg("failed to load session state")
		}
	})
	return e.session
}

func (r *Registry) newEntry(sessionId string) *sessionEntry {
	e := &sessionEntry{lastSeen: r.now()}
	e.session = discovery.NewSession(
		discovery.WithCatalog(r.catalog),
		discovery.WithTimeout(r.timeout),
		discovery.WithLogger(r.logger.With().Str("session", sessionId).Logger()),
		discovery.WithObserver(&sessionObserver{sessionId: sessionId, tracking: r.tracking}),
	)
	e.session.Subscribe(func(snap discovery.Snapshot) {
		if !e.changed(snap) {
			return
		}
		r.queue.Add(persistItem{
			sessionId: sessionId,
			state:     storage.SessionState{Query: snap.Query, UpdatedAt: r.now()},
		})
	})
	return e
}

func (r *Registry) restore(ctx context.Context, sessionId string) string {
	state, err := r.store.Load(ctx, sessionId)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			r.logger.Warn().Err(err).Str("session", sessionId).Msg("failed to read session state")
		}
		return ""
	}
	return state.Query
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Reap closes sessions not touched within the ttl and returns how many
// were removed. Their state stays in the store.
func (r *Registry) Reap() int {
	if r.ttl <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.ttl)
	r.mu.Lock()
	var expired []*sessionEntry
	for id, e := range r.sessions {
		e.mu.Lock()
		idle := e.lastSeen.Before(cutoff)
		e.mu.Unlock()
		if idle {
			delete(r.sessions, id)
			expired = append(expired, e)
		}
	}
	r.mu.Unlock()

	for _, e := range expired {
		e.session.Close()
		activeSessions.Dec()
	}
	if len(expired) > 0 {
		r.logger.Debug().Int("count", len(expired)).Msg("reaped idle sessions")
	}
	return len(expired)
}

// Run reaps idle sessions every interval until ctx is done. A non positive
// interval falls back to one minute.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Reap()
		}
	}
}

// RefreshAll re-issues the current request of every live session, used
// when the catalog announces changed products.
func (r *Registry) RefreshAll() int {
	r.mu.Lock()
	sessions := make([]*discovery.Session, 0, len(r.sessions))
	for _, e := range r.sessions {
		sessions = append(sessions, e.session)
	}
	r.mu.Unlock()

	refreshed := 0
	for _, s := range sessions {
		if err := s.Refresh(); err == nil {
			refreshed++
		}
	}
	return refreshed
}

// Close closes every session and writes pending state to the store.
func (r *Registry) Close() {
	r.mu.Lock()
	entries := make([]*sessionEntry, 0, len(r.sessions))
	for id, e := range r.sessions {
		entries = append(entries, e)
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	for _, e := range entries {
		e.session.Close()
		activeSessions.Dec()
	}
	r.queue.Close()
}
