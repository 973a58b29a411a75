package metrics

import "github.com/prometheus/client_golang/prometheus"

// Retrieval Prometheus metrics. The corpus scan is the hot path: these
// track how it grows with the stored document count.
var (
	RetrievalScanDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "ragchat",
			Name:      "retrieval_scan_duration_seconds",
			Help:      "Full corpus scan and ranking duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	RetrievalChunksScanned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "ragchat",
			Name:      "retrieval_chunks_scanned",
			Help:      "Chunks scored per query",
			Buckets:   prometheus.ExponentialBuckets(10, 4, 8),
		},
	)
)

var retrievalMetricsRegistered bool

// RegisterRetrievalMetrics registers retrieval metrics. Must be called once from main.
func RegisterRetrievalMetrics() {
	if retrievalMetricsRegistered {
		return
	}
	prometheus.MustRegister(RetrievalScanDuration)
	prometheus.MustRegister(RetrievalChunksScanned)
	retrievalMetricsRegistered = true
}
