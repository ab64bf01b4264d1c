package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ebookmarket"

var (
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"method", "route"},
	)

	registrations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "users",
			Name:      "registrations_total",
			Help:      "Total number of registered users.",
		},
	)

	ebooksCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ebooks",
			Name:      "created_total",
			Help:      "Total number of created e-books.",
		},
		[]string{"category"},
	)

	purchases = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ebooks",
			Name:      "purchases_total",
			Help:      "Total number of completed purchases.",
		},
		[]string{"currency"},
	)

	commission = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ebooks",
			Name:      "commission_total",
			Help:      "Total commission credited to balances.",
		},
		[]string{"currency"},
	)

	withdrawals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "balance",
			Name:      "withdrawals_total",
			Help:      "Withdrawal requests by method and status.",
		},
		[]string{"method", "status"},
	)

	subscriptions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "subscriptions",
			Name:      "changes_total",
			Help:      "Subscription tier changes.",
		},
		[]string{"tier"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		registrations,
		ebooksCreated,
		purchases,
		commission,
		withdrawals,
		subscriptions,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func RecordRegistration() {
	registrations.Inc()
}

func RecordEbookCreated(category string) {
	ebooksCreated.WithLabelValues(category).Inc()
}

func RecordPurchase(currency string, credited float64) {
	purchases.WithLabelValues(currency).Inc()
	if credited > 0 {
		commission.WithLabelValues(currency).Add(credited)
	}
}

func RecordWithdrawal(method, status string) {
	withdrawals.WithLabelValues(method, status).Inc()
}

func RecordSubscription(tier string) {
	subscriptions.WithLabelValues(tier).Inc()
}

// InstrumentHandler records request counts and latency per chi route pattern.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		method := strings.ToUpper(r.Method)

		httpRequests.WithLabelValues(method, route, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
