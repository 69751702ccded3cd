package tracking

import (
	"net/http"

	"github.com/matst80/slask-discovery/pkg/types"
)

type Tracking interface {
	TrackSession(sessionId string, r *http.Request)
	TrackSearch(sessionId string, req types.FilterRequest, totalCount int)
	Close() error
}
