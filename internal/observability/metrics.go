package observability

import (
	"strconv"
	"time"

	"github.com/mareknov/lab-strava/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lab_strava",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Number of HTTP requests by method, route pattern and status code.",
	}, []string{"method", "route", "status"})
	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lab_strava",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	usersCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lab_strava",
		Subsystem: "users",
		Name:      "created_total",
		Help:      "Number of users created.",
	})
	activitiesCreatedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lab_strava",
		Subsystem: "activities",
		Name:      "created_total",
		Help:      "Number of activities created by activity type.",
	}, []string{"type"})
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, usersCreatedTotal, activitiesCreatedTotal)
}

// RecordHTTPRequest observes a finished request. route is the chi route
// pattern, not the raw path, to keep label cardinality bounded.
func RecordHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordUserCreated increments the user creation counter.
func RecordUserCreated() {
	usersCreatedTotal.Inc()
}

// RecordActivityCreated increments the activity creation counter for the type.
func RecordActivityCreated(activityType domain.ActivityType) {
	activitiesCreatedTotal.WithLabelValues(string(activityType)).Inc()
}
