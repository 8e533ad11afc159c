// Package metrics defines the custom Prometheus metrics of the marketplace
// API. Metrics are registered on the default registry at package init through
// promauto, so importing the package is enough.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts signup and signin attempts.
// Labels:
//   - method: "signup", "signin" or "federated"
//   - result: "success" or a short failure reason (e.g. "wrong_password")
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by method and result.",
	},
	[]string{"method", "result"},
)

// ── Listing metrics ───────────────────────────────────────────────────────────

// ListingsCreatedTotal counts newly created listings.
var ListingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_created_total",
		Help:      "Total number of listings created, by property and transaction type.",
	},
	[]string{"property_type", "transaction_type"},
)

var ListingsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_deleted_total",
		Help:      "Total number of listings deleted.",
	},
)

// ListingSearchDuration measures the repository round trip of a search,
// including the total count.
var ListingSearchDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "listing_search_duration_seconds",
		Help:      "Duration of listing search queries.",
		Buckets:   prometheus.DefBuckets,
	},
)

// HomepageCacheTotal counts homepage cache lookups.
// Label:
//   - result: "hit" or "miss"
var HomepageCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "homepage_cache_total",
		Help:      "Total number of homepage cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Listing event metrics ─────────────────────────────────────────────────────

// ListingEventsTotal counts handled listing events.
// Labels:
//   - type: "listing.created", "listing.updated" or "listing.deleted"
//   - result: "published" or "publish_failed"
var ListingEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listing_events_total",
		Help:      "Total number of listing events handled, by type and result.",
	},
	[]string{"type", "result"},
)

// ListingEventsDroppedTotal counts events discarded because their worker
// channel was full.
var ListingEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listing_events_dropped_total",
		Help:      "Total number of listing events dropped because the dispatcher was saturated.",
	},
)

// ListingEventsQueueDepth tracks the number of events waiting in each worker channel.
var ListingEventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "listing_events_queue_depth",
		Help:      "Current number of listing events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ListingEventDuration measures dequeue-to-done time of one event.
var ListingEventDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "listing_event_duration_seconds",
		Help:      "Duration of listing event handling from dequeue to completion.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"type"},
)
