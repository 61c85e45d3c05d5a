// Package metrics provides Prometheus metrics for the translate mock server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreEntries tracks the number of live entries per expiring store.
	StoreEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "translate_mock_store_entries",
			Help: "Number of live entries in an expiring store",
		},
		[]string{"store"},
	)

	// StoreEvictions tracks entries removed by idle expiry.
	StoreEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "translate_mock_store_evictions_total",
			Help: "Total number of entries evicted after their idle lifetime",
		},
		[]string{"store"},
	)

	// SweepDuration tracks the duration of a single sweep.
	SweepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "translate_mock_sweep_duration_seconds",
			Help:    "Duration of expiring store sweeps",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
		[]string{"store"},
	)

	// DocumentsCreated tracks accepted document uploads.
	DocumentsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "translate_mock_documents_created_total",
			Help: "Total number of documents accepted for translation",
		},
	)

	// DocumentTranslations tracks finished translation jobs by outcome.
	DocumentTranslations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "translate_mock_document_translations_total",
			Help: "Total number of document translation jobs by outcome",
		},
		[]string{"outcome"},
	)

	// CharactersTranslated tracks translated text volume.
	CharactersTranslated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "translate_mock_characters_translated_total",
			Help: "Total number of characters accepted by text translation",
		},
	)

	// QuotaRejections tracks requests refused by a quota class.
	QuotaRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "translate_mock_quota_rejections_total",
			Help: "Total number of requests rejected by quota",
		},
		[]string{"class"},
	)

	// ForcedFaults tracks faults injected through session control headers.
	ForcedFaults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "translate_mock_forced_faults_total",
			Help: "Total number of faults forced by session parameters",
		},
		[]string{"kind"},
	)

	// HTTPRequests tracks handled HTTP requests.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "translate_mock_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks HTTP request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "translate_mock_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordSweep records the result of one sweep of the named store.
func RecordSweep(store string, evicted, remaining int, seconds float64) {
	if evicted > 0 {
		StoreEvictions.WithLabelValues(store).Add(float64(evicted))
	}
	StoreEntries.WithLabelValues(store).Set(float64(remaining))
	SweepDuration.WithLabelValues(store).Observe(seconds)
}

// RecordStoreSize sets the live entry gauge of the named store.
func RecordStoreSize(store string, size int) {
	StoreEntries.WithLabelValues(store).Set(float64(size))
}

// RecordDocumentCreated increments the document creation counter.
func RecordDocumentCreated() {
	DocumentsCreated.Inc()
}

// RecordDocumentTranslation increments the outcome counter ("done" or "error").
func RecordDocumentTranslation(outcome string) {
	DocumentTranslations.WithLabelValues(outcome).Inc()
}

// RecordCharactersTranslated adds n to the translated character counter.
func RecordCharactersTranslated(n int) {
	CharactersTranslated.Add(float64(n))
}

// RecordQuotaRejection increments the rejection counter for class.
func RecordQuotaRejection(class string) {
	QuotaRejections.WithLabelValues(class).Inc()
}

// RecordForcedFault increments the forced fault counter for kind.
func RecordForcedFault(kind string) {
	ForcedFaults.WithLabelValues(kind).Inc()
}

// RecordHTTPRequest records one handled HTTP request.
func RecordHTTPRequest(method, route, status string, seconds float64) {
	HTTPRequests.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}
