package prometheus

import (
	"time"

	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	LoginCounter      prometheus.Counter
	AuthErrorsCounter prometheus.CounterVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Report metrics
	ReportRequestsCounter prometheus.CounterVec
	ReportBuildDuration   prometheus.HistogramVec
	ReportExportsCounter  prometheus.CounterVec

	// Job metrics
	JobOperationsCounter prometheus.CounterVec

	// Inventory metrics
	ItemStockGauge prometheus.GaugeVec
	LowStockGauge  prometheus.Gauge
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP request duration
	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Authentication metrics
	LoginCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_login_attempts_total",
			Help: "Total number of login attempts",
		},
	)

	AuthErrorsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"reason"},
	)

	// Database operation metrics
	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	// Report metrics
	ReportRequestsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_report_requests_total",
			Help: "Total number of report requests by kind",
		},
		[]string{"report"},
	)

	ReportBuildDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_report_build_duration_seconds",
			Help:    "Time spent assembling report payloads",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"report"},
	)

	ReportExportsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_report_exports_total",
			Help: "Total number of PDF report exports by kind and outcome",
		},
		[]string{"report", "outcome"},
	)

	// Job metrics
	JobOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_job_operations_total",
			Help: "Total number of repair job operations",
		},
		[]string{"operation"},
	)

	// Inventory metrics
	ItemStockGauge = *promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: prefix + "_inventory_quantity",
			Help: "Current derived quantity for inventory items",
		},
		[]string{"item_id", "item_name"},
	)

	LowStockGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: prefix + "_inventory_low_stock_items",
			Help: "Number of items currently at or below their reorder threshold",
		},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordAuthError increments the counter for a failed authentication
func RecordAuthError(reason string) {
	AuthErrorsCounter.WithLabelValues(reason).Inc()
}

// RecordReportRequest increments the counter for report requests
func RecordReportRequest(report string) {
	ReportRequestsCounter.WithLabelValues(report).Inc()
}

// RecordReportExport increments the counter for report exports
func RecordReportExport(report, outcome string) {
	ReportExportsCounter.WithLabelValues(report, outcome).Inc()
}

// RecordJobOperation increments the counter for job operations
func RecordJobOperation(operation string) {
	JobOperationsCounter.WithLabelValues(operation).Inc()
}

// UpdateItemStock updates the gauge for a single inventory item
func UpdateItemStock(itemID, itemName string, quantity float64) {
	ItemStockGauge.WithLabelValues(itemID, itemName).Set(quantity)
}
