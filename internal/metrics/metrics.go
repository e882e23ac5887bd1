package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	WsConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "devmatch_ws_connections",
		Help: "Current number of active websocket connections",
	})
	ChatMessagesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "devmatch_chat_messages_total",
		Help: "Total number of chat messages persisted and fanned out",
	})
	LikesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "devmatch_likes_total",
		Help: "Total number of likes recorded",
	})
	MatchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "devmatch_matches_total",
		Help: "Total number of matches created",
	})
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "devmatch_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "devmatch_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)

func init() {
	prometheus.MustRegister(
		WsConnections,
		ChatMessagesTotal,
		LikesTotal,
		MatchesTotal,
		HTTPRequestsTotal,
		HTTPRequestDuration,
	)
}

// Middleware records request counts and latencies per route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		// Use the chi route pattern rather than the raw path to keep
		// label cardinality bounded.
		pattern := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			pattern = rctx.RoutePattern()
		}
		status := strconv.Itoa(ww.Status())
		HTTPRequestsTotal.WithLabelValues(r.Method, pattern, status).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, pattern, status).
			Observe(time.Since(start).Seconds())
	})
}
