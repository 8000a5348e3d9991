// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

// Package metrics registers the Prometheus instruments exported at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequestsTotal counts handled HTTP requests.
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aitools_api_requests_total",
		Help: "Total API requests by method, path, and status code",
	}, []string{"method", "path", "status"})

	// APIRequestDuration observes request latency.
	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "aitools_api_request_duration_seconds",
		Help:    "API request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// ActiveRequests gauges in-flight requests.
	ActiveRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "aitools_api_active_requests",
		Help: "Number of in-flight API requests",
	})

	// RecommendationsTotal counts recommendation outcomes by source
	// (model or heuristic) so fallback rates are visible.
	RecommendationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aitools_recommendations_total",
		Help: "Recommendation requests by result source",
	}, []string{"source"})

	// TrendingFallbacksTotal counts trending responses served by the
	// rating-sort fallback.
	TrendingFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aitools_trending_fallbacks_total",
		Help: "Trending responses served by the rating-sort fallback",
	})

	// EmailsTotal counts transactional email sends by type and outcome.
	EmailsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aitools_emails_total",
		Help: "Transactional emails by type and outcome",
	}, []string{"type", "outcome"})

	// RateLimitRejectionsTotal counts 429s issued by the function endpoints.
	RateLimitRejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aitools_ratelimit_rejections_total",
		Help: "Requests rejected by per-IP rate limits, by endpoint",
	}, []string{"endpoint"})

	// ViewEventsPublished counts view events put on the bus.
	ViewEventsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aitools_view_events_published_total",
		Help: "View events published to the engagement bus",
	})
)

// TrackActiveRequest adjusts the in-flight gauge.
func TrackActiveRequest(start bool) {
	if start {
		ActiveRequests.Inc()
	} else {
		ActiveRequests.Dec()
	}
}

// RecordAPIRequest records one handled request.
func RecordAPIRequest(method, path, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, path, status).Inc()
	APIRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
