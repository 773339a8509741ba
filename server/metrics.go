// SPDX-License-Identifier: MIT

package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	limited   prometheus.Counter
	routes    *prometheus.CounterVec
	distance  prometheus.Histogram
	congested prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		// Labels: route, status
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "indoornav_http_requests_total",
			Help: "HTTP requests by route and status code",
		}, []string{"route", "status"}),

		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "indoornav_http_request_duration_seconds",
			Help:    "HTTP request duration by route",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"route"}),

		limited: f.NewCounter(prometheus.CounterOpts{
			Name: "indoornav_http_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		}),

		// Labels: "navigate", "search", "clarify", "location_not_found",
		// "no_path", "bad_congestion", "other"
		routes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "indoornav_route_results_total",
			Help: "Route computations by outcome",
		}, []string{"result"}),

		distance: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "indoornav_route_distance_meters",
			Help:    "Physical length of computed routes",
			Buckets: []float64{10, 25, 50, 100, 200, 400, 800},
		}),

		congested: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "indoornav_route_congested_segments",
			Help:    "Heavily congested segments per computed route",
			Buckets: []float64{0, 1, 2, 5, 10},
		}),
	}
}
