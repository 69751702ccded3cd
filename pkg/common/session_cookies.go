package common

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const SessionCookie = "sid"

func setSessionCookie(w http.ResponseWriter, r *http.Request, sessionId string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sessionId,
		Domain:   strings.TrimPrefix(r.Host, "."),
		SameSite: http.SameSiteNoneMode,
		HttpOnly: true,
		Secure:   true,
		MaxAge:   2592000,
		Path:     "/",
	})
}

// HandleSessionCookie returns the visitor's session id, issuing a new one
// when the cookie is missing or not a uuid.
func HandleSessionCookie(tracker SessionTracker, w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}
	sessionId := uuid.NewString()
	if tracker != nil {
		go tracker.TrackSession(sessionId, r)
	}
	setSessionCookie(w, r, sessionId)
	return sessionId
}
