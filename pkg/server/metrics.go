package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskdiscovery_requests_total",
		Help: "The total number of catalog requests issued",
	})
	responsesAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskdiscovery_responses_accepted_total",
		Help: "The total number of catalog responses committed to a session",
	})
	responsesDiscarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskdiscovery_responses_discarded_total",
		Help: "The total number of stale catalog responses dropped",
	})
	responsesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskdiscovery_responses_failed_total",
		Help: "The total number of catalog requests that failed",
	})
	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slaskdiscovery_active_sessions",
		Help: "The number of discovery sessions held in memory",
	})
)
