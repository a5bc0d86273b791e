// Package metrics exposes Prometheus counters for the API's domain
// operations. The /metrics endpoint is mounted in bootstrap.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ClicksLogged counts click-affinity increments that persisted.
	ClicksLogged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eventsphere_clicks_logged_total",
		Help: "Click-affinity increments persisted.",
	})

	// RSVPsRegistered counts RSVP registrations by outcome:
	// "ok", "email_failed", "mirror_failed", "duplicate", "error".
	RSVPsRegistered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventsphere_rsvps_registered_total",
		Help: "RSVP registration attempts by outcome.",
	}, []string{"outcome"})

	// EventsCreated counts events created through the API.
	EventsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eventsphere_events_created_total",
		Help: "Events created.",
	})

	// RecommendationRequests counts recommendation-feed requests by result:
	// "ok", "not_found", "upstream_error".
	RecommendationRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventsphere_recommendation_requests_total",
		Help: "Recommendation feed requests by result.",
	}, []string{"result"})
)
