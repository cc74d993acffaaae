// Package metrics exposes Prometheus instrumentation for the extraction
// pipeline and the HTTP surface.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	extractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "papermorph_extractions_total",
		Help: "Number of extraction operations by operation and outcome.",
	}, []string{"operation", "status"})

	extractionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "papermorph_extraction_duration_seconds",
		Help:    "Duration of extraction operations.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	uploadBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "papermorph_upload_bytes",
		Help:    "Size of accepted PDF uploads.",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
	})
)

// ObserveExtraction records one pipeline operation.
func ObserveExtraction(operation string, err error, started time.Time) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	extractionsTotal.WithLabelValues(operation, status).Inc()
	extractionDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// ObserveUpload records the size of an accepted upload.
func ObserveUpload(size int64) {
	uploadBytes.Observe(float64(size))
}

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
