package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status_code"},
	)

	// Business metrics
	authAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"status"}, // success, failure
	)

	inquiriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inquiries_total",
			Help: "Total number of inquiries captured",
		},
	)

	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inquiry_notifications_total",
			Help: "Total number of inquiry notification deliveries per channel",
		},
		[]string{"channel", "status"}, // channel: email, whatsapp; status: success, failure
	)

	propertyLookupMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "property_lookup_misses_total",
			Help: "Total number of inquiry property lookups that found no row",
		},
	)

	// Database metrics
	dbConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	dbConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

// PrometheusMiddleware records request counts and latencies per route
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		// FullPath keeps the label cardinality bounded (route template, not raw path)
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, statusCode).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, endpoint, statusCode).Observe(duration)
	}
}

// RecordAuthAttempt records an authentication attempt
func RecordAuthAttempt(success bool) {
	status := "failure"
	if success {
		status = "success"
	}
	authAttemptsTotal.WithLabelValues(status).Inc()
}

// RecordInquiry records a captured inquiry
func RecordInquiry() {
	inquiriesTotal.Inc()
}

// RecordNotification records a notification delivery attempt for a channel
func RecordNotification(channel string, success bool) {
	status := "failure"
	if success {
		status = "success"
	}
	notificationsTotal.WithLabelValues(channel, status).Inc()
}

// RecordPropertyLookupMiss records an inquiry property reference that did not resolve
func RecordPropertyLookupMiss() {
	propertyLookupMisses.Inc()
}

// UpdateDBConnections updates database connection metrics
func UpdateDBConnections(active, idle int) {
	dbConnectionsActive.Set(float64(active))
	dbConnectionsIdle.Set(float64(idle))
}
