// Package discovery holds the state container for one product discovery
// screen: facet selections, sorting, paging and the latest accepted result.
//
// Every state change that affects what the catalog should return produces
// exactly one request stamped with the next sequence number. Responses are
// committed only when their sequence is the latest issued one; anything
// older is dropped without touching the result set.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/matst80/slask-discovery/pkg/facet"
	"github.com/matst80/slask-discovery/pkg/pagination"
	"github.com/matst80/slask-discovery/pkg/projector"
	"github.com/matst80/slask-discovery/pkg/query"
	"github.com/matst80/slask-discovery/pkg/sorting"
	"github.com/matst80/slask-discovery/pkg/types"
	"github.com/matst80/slask-discovery/pkg/urlstate"
)

var (
	ErrClosed    = errors.New("session closed")
	ErrNoCatalog = errors.New("no catalog configured")
)

// Catalog answers filter requests, it owns timeouts and transport.
type Catalog interface {
	Search(ctx context.Context, req types.FilterRequest) (*types.CatalogResponse, error)
}

// Observer is told about every request lifecycle transition.
type Observer interface {
	Issued(req types.FilterRequest)
	Fulfilled(req types.FilterRequest, resp *types.CatalogResponse)
	Failed(req types.FilterRequest, err error)
	Discarded(seq uint64)
}

type Listener func(Snapshot)

// Snapshot is an immutable copy of the session state. Version increases with
// every change, listeners can use it to ignore snapshots delivered late.
type Snapshot struct {
	Filters  types.Filters      `json:"filters"`
	Sort     types.SortSettings `json:"sort"`
	Paging   types.PageState    `json:"paging"`
	Status   types.Status       `json:"status"`
	View     projector.View     `json:"view"`
	Query    string             `json:"query"`
	Sequence uint64             `json:"sequence"`
	Version  uint64             `json:"version"`
	Error    string             `json:"error,omitempty"`
}

type effect int

const (
	effectNone effect = iota
	effectRender
	effectFetch
)

type listenerEntry struct {
	id int
	fn Listener
}

type Session struct {
	mu        sync.Mutex
	filters   *facet.FilterState
	sorting   *sorting.SortState
	paging    *pagination.Pagination
	seq       query.Sequencer
	latest    types.FilterRequest
	result    types.ResultSet
	version   uint64
	closed    bool
	listeners []listenerEntry
	nextId    int

	catalog  Catalog
	observer Observer
	logger   zerolog.Logger
	timeout  time.Duration
	dispatch func(types.FilterRequest)
}

type Option func(*Session)

func WithCatalog(c Catalog) Option {
	return func(s *Session) { s.catalog = c }
}

func WithObserver(o Observer) Option {
	return func(s *Session) { s.observer = o }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.logger = l.With().Str("component", "discovery").Logger() }
}

// WithTimeout bounds each catalog call made by Execute.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) { s.timeout = d }
}

// WithDispatcher replaces how issued requests are sent. The default runs
// Execute in a new goroutine when a catalog is configured.
func WithDispatcher(fn func(types.FilterRequest)) Option {
	return func(s *Session) { s.dispatch = fn }
}

func NewSession(opts ...Option) *Session {
	s := &Session{
		filters:  facet.NewFilterState(),
		sorting:  sorting.NewSortState(),
		paging:   pagination.New(types.DefaultPageSize),
		result:   types.NewResultSet(),
		observer: nopObserver{},
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.dispatch == nil {
		s.dispatch = func(req types.FilterRequest) {
			if s.catalog != nil {
				go s.Execute(context.Background(), req)
			}
		}
	}
	return s
}

func (s *Session) Toggle(sel types.Selection) error {
	return s.mutate(func() (effect, error) {
		changed, err := s.filters.Toggle(sel)
		return s.filtersChanged(changed), err
	})
}

func (s *Session) Add(sel types.Selection) error {
	return s.mutate(func() (effect, error) {
		changed, err := s.filters.Add(sel)
		return s.filtersChanged(changed), err
	})
}

func (s *Session) Remove(sel types.Selection) error {
	return s.mutate(func() (effect, error) {
		changed, err := s.filters.Remove(sel)
		return s.filtersChanged(changed), err
	})
}

func (s *Session) RemoveAll(d types.Dimension) error {
	return s.mutate(func() (effect, error) {
		changed, err := s.filters.RemoveAll(d)
		return s.filtersChanged(changed), err
	})
}

func (s *Session) ClearFilters() error {
	return s.mutate(func() (effect, error) {
		return s.filtersChanged(s.filters.Clear()), nil
	})
}

func (s *Session) filtersChanged(changed bool) effect {
	if !changed {
		return effectNone
	}
	s.paging.Reset()
	return effectFetch
}

// SetSort keeps the previous key when key is not a known sort.
func (s *Session) SetSort(key string) error {
	return s.mutate(func() (effect, error) {
		changed, err := s.sorting.SetSort(key)
		if err != nil || !changed {
			return effectNone, err
		}
		s.paging.Reset()
		return effectFetch, nil
	})
}

func (s *Session) SetShowPerPage(n int) error {
	return s.mutate(func() (effect, error) {
		changed, err := s.sorting.SetShowPerPage(n)
		if err != nil || !changed {
			return effectNone, err
		}
		s.paging.SetPageSize(s.sorting.PageSize())
		return effectFetch, nil
	})
}

// ToggleDisplayMode only re-renders, it never issues a request.
func (s *Session) ToggleDisplayMode() error {
	return s.mutate(func() (effect, error) {
		s.sorting.ToggleDisplayMode()
		return effectRender, nil
	})
}

// SetCurrentPage navigates without touching any filter.
func (s *Session) SetCurrentPage(page int) error {
	return s.mutate(func() (effect, error) {
		if !s.paging.SetCurrentPage(page) {
			return effectNone, nil
		}
		return effectFetch, nil
	})
}

// Load replaces the whole state from url parameters, as on initial load or
// history navigation, and fetches.
func (s *Session) Load(q url.Values) error {
	st := urlstate.Decode(q)
	return s.mutate(func() (effect, error) {
		s.filters = facet.FromFilters(st.Filters)
		s.sorting = sorting.FromSettings(st.Sort)
		s.paging = pagination.New(s.sorting.PageSize())
		s.paging.SetCurrentPage(st.Page)
		return effectFetch, nil
	})
}

func (s *Session) LoadQuery(raw string) error {
	return s.Load(urlstate.ParseQuery(raw))
}

// Refresh issues a new request for the current state.
func (s *Session) Refresh() error {
	return s.mutate(func() (effect, error) {
		return effectFetch, nil
	})
}

func (s *Session) mutate(fn func() (effect, error)) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	eff, err := fn()
	if err != nil || eff == effectNone {
		s.mu.Unlock()
		return err
	}
	var req types.FilterRequest
	if eff == effectFetch {
		req = s.issueLocked()
	}
	s.version++
	snap := s.snapshotLocked()
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	if eff == effectFetch {
		s.observer.Issued(req)
	}
	notify(listeners, snap)
	if eff == effectFetch {
		if err := req.Validate(); err != nil {
			s.Commit(req.Sequence, nil, fmt.Errorf("invalid request: %w", err))
			return nil
		}
		s.dispatch(req)
	}
	return nil
}

func (s *Session) issueLocked() types.FilterRequest {
	req := query.Synthesize(s.filters.Snapshot(), s.sorting.Snapshot(), s.paging.Snapshot(), s.seq.Next())
	s.latest = req
	s.result.Status = types.StatusLoading
	s.result.Err = nil
	s.logger.Debug().Uint64("sequence", req.Sequence).Int("page", req.Page).Msg("request issued")
	return req
}

// Execute sends req to the catalog and commits the answer. Requests that
// were superseded before they left are discarded without a call.
func (s *Session) Execute(ctx context.Context, req types.FilterRequest) bool {
	if !s.isLatest(req.Sequence) {
		return s.Commit(req.Sequence, nil, types.ErrStaleResponse)
	}
	if s.catalog == nil {
		return s.Commit(req.Sequence, nil, ErrNoCatalog)
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	resp, err := s.catalog.Search(ctx, req)
	if err != nil {
		err = fmt.Errorf("catalog search: %w", err)
	}
	return s.Commit(req.Sequence, resp, err)
}

func (s *Session) isLatest(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && s.seq.IsLatest(seq)
}

// Commit settles the request with sequence seq. It reports false, and
// changes nothing, when seq is not the latest issued sequence or has
// already been settled.
func (s *Session) Commit(seq uint64, resp *types.CatalogResponse, err error) bool {
	s.mu.Lock()
	if s.closed || !s.seq.Settle(seq) {
		s.mu.Unlock()
		s.logger.Debug().Uint64("sequence", seq).Msg("response discarded")
		s.observer.Discarded(seq)
		return false
	}
	req := s.latest
	var next *types.FilterRequest
	if err != nil {
		s.result.Status = types.StatusFailed
		s.result.Err = err
		s.result.Sequence = seq
		s.logger.Warn().Err(err).Uint64("sequence", seq).Msg("request failed")
	} else {
		if resp == nil {
			resp = &types.CatalogResponse{}
		}
		items := slices.Clone(resp.Products)
		if items == nil {
			items = []types.Product{}
		}
		s.result = types.ResultSet{
			Items:      items,
			TotalCount: resp.TotalCount,
			PageSize:   s.sorting.PageSize(),
			Status:     types.StatusFulfilled,
			Sequence:   seq,
		}
		if s.paging.SetTotalItems(resp.TotalCount) {
			r := s.issueLocked()
			next = &r
		}
	}
	s.version++
	snap := s.snapshotLocked()
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	if err != nil {
		s.observer.Failed(req, err)
	} else {
		s.observer.Fulfilled(req, resp)
	}
	if next != nil {
		s.observer.Issued(*next)
	}
	notify(listeners, snap)
	if next != nil {
		s.dispatch(*next)
	}
	return true
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Query is the canonical url encoding of the current state.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.encodeLocked()
}

// Result returns a copy of the latest result set.
func (s *Session) Result() types.ResultSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	rs := s.result
	rs.Items = slices.Clone(rs.Items)
	return rs
}

func (s *Session) encodeLocked() string {
	return urlstate.EncodeString(urlstate.State{
		Filters: s.filters.Snapshot(),
		Sort:    s.sorting.Snapshot(),
		Page:    s.paging.CurrentPage(),
	})
}

func (s *Session) snapshotLocked() Snapshot {
	sort := s.sorting.Snapshot()
	snap := Snapshot{
		Filters:  s.filters.Snapshot(),
		Sort:     sort,
		Paging:   s.paging.Snapshot(),
		Status:   s.result.Status,
		View:     projector.Project(s.result, sort.Display),
		Query:    s.encodeLocked(),
		Sequence: s.seq.Current(),
		Version:  s.version,
	}
	if s.result.Err != nil {
		snap.Error = s.result.Err.Error()
	}
	return snap
}

// Subscribe registers fn for every future change. Listeners run after the
// state lock is released, in registration order.
func (s *Session) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextId++
	id := s.nextId
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.listeners = slices.DeleteFunc(s.listeners, func(e listenerEntry) bool {
			return e.id == id
		})
	}
}

// Close tears the session down, later responses are discarded and
// mutations fail with ErrClosed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.listeners = nil
}

func notify(listeners []listenerEntry, snap Snapshot) {
	for _, l := range listeners {
		l.fn(snap)
	}
}

type nopObserver struct{}

func (nopObserver) Issued(types.FilterRequest)                            {}
func (nopObserver) Fulfilled(types.FilterRequest, *types.CatalogResponse) {}
func (nopObserver) Failed(types.FilterRequest, error)                     {}
func (nopObserver) Discarded(uint64)                                      {}
