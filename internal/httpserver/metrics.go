package httpserver

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	chainRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chain_requests_total",
			Help: "Chain requests served, labeled by source (generated|fallback)",
		},
		[]string{"source"},
	)
	chainBuildSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chain_build_seconds",
			Help:    "Wall time spent building one chain, fallback included",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(chainRequests)
	prometheus.MustRegister(chainBuildSeconds)
}
