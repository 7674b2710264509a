// Package observability provides Prometheus metrics for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreOperations counts key-value store operations by driver and operation.
	StoreOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "psidiario_store_operations_total",
		Help: "Total number of key-value store operations by driver and operation",
	}, []string{"driver", "operation"})

	// StoreErrors counts key-value store failures by driver and operation.
	StoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "psidiario_store_errors_total",
		Help: "Total number of key-value store errors by driver and operation",
	}, []string{"driver", "operation"})

	// ReportBuilds counts report aggregations by filter period.
	ReportBuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "psidiario_report_builds_total",
		Help: "Total number of report aggregations by filter period",
	}, []string{"period"})

	// PDFExports counts PDF export attempts by outcome.
	PDFExports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "psidiario_pdf_exports_total",
		Help: "Total number of PDF export attempts by outcome",
	}, []string{"status"})
)
