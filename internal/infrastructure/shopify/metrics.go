package shopify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "merchops_shopify_cache_hits_total",
		Help: "Number of upstream GET requests served from the response cache.",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "merchops_shopify_cache_misses_total",
		Help: "Number of upstream GET requests that required a network call.",
	})
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "merchops_shopify_upstream_requests_total",
		Help: "Outbound Shopify Admin API requests by method and status class.",
	}, []string{"method", "status"})
)
