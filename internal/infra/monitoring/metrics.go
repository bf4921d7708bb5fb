package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_client_requests_total",
			Help: "Total number of API requests issued by the client",
		},
		[]string{"method", "resource", "status"},
	)

	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_cache_hits_total",
			Help: "Query cache hits served without a network call",
		},
		[]string{"resource"},
	)

	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_cache_misses_total",
			Help: "Query cache misses or stale entries that triggered a fetch",
		},
		[]string{"resource"},
	)

	CacheInvalidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_cache_invalidations_total",
			Help: "Cache entries invalidated after successful mutations",
		},
		[]string{"resource"},
	)
)

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(CacheHits)
	prometheus.MustRegister(CacheMisses)
	prometheus.MustRegister(CacheInvalidations)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
