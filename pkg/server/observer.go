package server

import (
	"github.com/matst80/slask-discovery/pkg/types"
)

// SearchTracker receives every accepted search.
type SearchTracker interface {
	TrackSearch(sessionId string, req types.FilterRequest, totalCount int)
}

type sessionObserver struct {
	sessionId string
	tracking  SearchTracker
}

func (o *sessionObserver) Issued(types.FilterRequest) {
	requestsIssued.Inc()
}

func (o *sessionObserver) Fulfilled(req types.FilterRequest, resp *types.CatalogResponse) {
	responsesAccepted.Inc()
	if o.tracking != nil {
		go o.tracking.TrackSearch(o.sessionId, req, resp.TotalCount)
	}
}

func (o *sessionObserver) Failed(types.FilterRequest, error) {
	responsesFailed.Inc()
}

func (o *sessionObserver) Discarded(uint64) {
	responsesDiscarded.Inc()
}
