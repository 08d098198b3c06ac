package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bizos_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bizos_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 10, 30},
		},
		[]string{"method", "route"},
	)

	MessagesPosted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bizos_chat_messages_posted_total",
		Help: "Total chat messages posted",
	})

	InvitationsAccepted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bizos_invitations_accepted_total",
			Help: "Invitation acceptance attempts by outcome",
		},
		[]string{"outcome"}, // joined|already_member|rejected
	)

	ImagesGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bizos_images_generated_total",
			Help: "Image generation requests by result",
		},
		[]string{"result"}, // ok|error
	)

	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bizos_rate_limit_hits_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"route"},
	)

	WebsocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bizos_ws_connections",
		Help: "Open websocket connections",
	})

	SweptRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bizos_sweep_rows_total",
			Help: "Rows touched by periodic sweeps",
		},
		[]string{"job"},
	)
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware считает запросы по шаблону маршрута chi, а не по сырому пути.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
