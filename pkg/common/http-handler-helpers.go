package common

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/matst80/slask-discovery/pkg/common/jsoncompat"
)

// SessionTracker is notified the first time a visitor is given a session cookie.
type SessionTracker interface {
	TrackSession(sessionId string, r *http.Request)
}

func JsonHandler(trk SessionTracker, logger zerolog.Logger, fn func(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			RespondToOptions(w, r)
			return
		}
		sessionId := HandleSessionCookie(trk, w, r)
		w.Header().Set("Content-Type", "application/json")

		if err := fn(w, r, sessionId, jsoncompat.NewEncoder(w)); err != nil {
			logger.Error().Err(err).Str("path", r.URL.Path).Msg("error handling request")
		}
	}
}

func RespondToOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	origin := r.Header.Get("Origin")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Age", "0")
	w.WriteHeader(http.StatusAccepted)
}
