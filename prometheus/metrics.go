package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/welovit/lead-buddy-app/pkg/config"
)

// Counter metrics
var (
	// Login counters
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "leadapp_login_total",
			Help: "Total number of login attempts",
		},
	)

	// Registration counters
	RegisterCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "leadapp_register_total",
			Help: "Total number of user registrations",
		},
	)

	// Leads delivered counter
	LeadsDeliveredCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "leadapp_leads_delivered_total",
			Help: "Total number of leads delivered to users",
		},
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadapp_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Error counters
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadapp_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"}, // type can be "invalid_password", "invalid_token", "db_error" etc.
	)

	// Ledger mutation counter
	LedgerOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadapp_ledger_operations_total",
			Help: "Total number of lead status and note operations",
		},
		[]string{"operation"}, // operation can be "status_update", "note_append"
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "leadapp_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "leadapp_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // operation can be "query", "insert", "update", "delete"
	)

	// Daily allocation duration
	AllocationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "leadapp_allocation_duration_seconds",
			Help:    "Duration of daily lead allocation in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Gauge metrics
var (
	// Active sessions
	ActiveSessionsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "leadapp_active_sessions",
			Help: "Number of session tokens issued and not yet expired",
		},
	)

	// System info
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "leadapp_info",
			Help: "Information about the lead delivery service",
		},
		[]string{"version", "env"},
	)
)

func init() {
	// Register counters
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(RegisterCounter)
	prometheus.MustRegister(LeadsDeliveredCounter)
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(AuthErrorCounter)
	prometheus.MustRegister(LedgerOperationCounter)

	// Register histograms
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)
	prometheus.MustRegister(AllocationDuration)

	// Register gauges
	prometheus.MustRegister(ActiveSessionsGauge)
	prometheus.MustRegister(InfoGauge)
}

// InitMetrics sets the static service info labels
func InitMetrics(cfg *config.Config) {
	InfoGauge.With(prometheus.Labels{"version": "1.0.0", "env": cfg.Server.Env}).Set(1)
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Execute the request handler
			err := next(c)

			// Record request duration
			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			// Record metrics
			RequestDuration.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Observe(duration)

			HTTPRequestCounter.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Inc()

			return err
		}
	}
}

// IncreaseActiveSessions increments the active sessions gauge
func IncreaseActiveSessions() {
	ActiveSessionsGauge.Inc()
}

// DecreaseActiveSessions decrements the active sessions gauge
func DecreaseActiveSessions() {
	ActiveSessionsGauge.Dec()
}

// RecordAuthError records an authentication error by type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordLedgerOperation records a status or note mutation by type
func RecordLedgerOperation(operation string) {
	LedgerOperationCounter.With(prometheus.Labels{"operation": operation}).Inc()
}
