package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/matst80/slask-discovery/pkg/common"
	"github.com/matst80/slask-discovery/pkg/common/jsoncompat"
	"github.com/matst80/slask-discovery/pkg/discovery"
	"github.com/matst80/slask-discovery/pkg/types"
)

type WebServer struct {
	Sessions *Registry
	Tracking common.SessionTracker
	// WaitTimeout caps how long a request with ?wait=1 blocks for a settled result.
	WaitTimeout time.Duration
	logger      zerolog.Logger
}

func NewWebServer(sessions *Registry, tracking common.SessionTracker, logger zerolog.Logger) *WebServer {
	return &WebServer{
		Sessions:    sessions,
		Tracking:    tracking,
		WaitTimeout: 10 * time.Second,
		logger:      logger.With().Str("component", "webserver").Logger(),
	}
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, s *discovery.Session) error

// withSession resolves the caller's discovery session, runs fn and answers
// with the resulting snapshot.
func (ws *WebServer) withSession(fn sessionHandler) http.HandlerFunc {
	return common.JsonHandler(ws.Tracking, ws.logger, func(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
		s := ws.Sessions.Get(r.Context(), sessionId)
		if fn != nil {
			if err := fn(w, r, s); err != nil {
				return writeError(w, err)
			}
		}
		snap := s.Snapshot()
		if wantsWait(r) {
			ctx, cancel := context.WithTimeout(r.Context(), ws.WaitTimeout)
			defer cancel()
			snap = awaitSettled(ctx, s)
		}
		w.Header().Set("Cache-Control", "private, no-store")
		w.WriteHeader(http.StatusOK)
		return enc.Encode(snap)
	})
}

func wantsWait(r *http.Request) bool {
	switch r.URL.Query().Get("wait") {
	case "1", "true":
		return true
	}
	return false
}

// awaitSettled blocks until the session is no longer loading or ctx is done.
func awaitSettled(ctx context.Context, s *discovery.Session) discovery.Snapshot {
	settled := make(chan discovery.Snapshot, 1)
	unsubscribe := s.Subscribe(func(snap discovery.Snapshot) {
		if snap.Status == types.StatusLoading {
			return
		}
		select {
		case settled <- snap:
		default:
		}
	})
	defer unsubscribe()

	if snap := s.Snapshot(); snap.Status != types.StatusLoading {
		return snap
	}
	select {
	case snap := <-settled:
		return snap
	case <-ctx.Done():
		return s.Snapshot()
	}
}

type badRequest struct {
	err error
}

func (e *badRequest) Error() string { return e.err.Error() }
func (e *badRequest) Unwrap() error { return e.err }

func writeError(w http.ResponseWriter, err error) error {
	var br *badRequest
	switch {
	case types.IsValidationError(err), errors.As(err, &br):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil
	case errors.Is(err, discovery.ErrClosed):
		http.Error(w, err.Error(), http.StatusGone)
		return nil
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
	return err
}

func (ws *WebServer) Handle() *http.ServeMux {
	srv := http.NewServeMux()
	srv.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	srv.Handle("GET /metrics", promhttp.Handler())

	srv.HandleFunc("OPTIONS /api/discover/", common.RespondToOptions)
	srv.HandleFunc("GET /api/discover", ws.withSession(nil))
	srv.HandleFunc("POST /api/discover/load", ws.withSession(ws.Load))
	srv.HandleFunc("POST /api/discover/filter", ws.withSession(ws.Filter))
	srv.HandleFunc("POST /api/discover/sort", ws.withSession(ws.Sort))
	srv.HandleFunc("POST /api/discover/size", ws.withSession(ws.Size))
	srv.HandleFunc("POST /api/discover/page", ws.withSession(ws.Page))
	srv.HandleFunc("POST /api/discover/display", ws.withSession(ws.Display))
	srv.HandleFunc("POST /api/discover/refresh", ws.withSession(ws.Refresh))
	return srv
}
