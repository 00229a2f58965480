package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var documentsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "documents_ingested_total",
	Help: "Documents that finished ingestion, labelled by outcome",
}, []string{"outcome"})

var vectorStoreRecords = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "vector_store_records",
	Help: "Number of embedded chunks currently in the vector store",
})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) CaptureWriteHeaderMetrics(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func CountIngestOutcome(outcome string) {
	documentsIngested.WithLabelValues(outcome).Inc()
}

func SetVectorStoreRecords(count int) {
	vectorStoreRecords.Set(float64(count))
}

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "pipeline_duration_seconds",
	Help:    "Total time spent in the ingest and query pipelines.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30, 60, 120},
}, []string{"pipeline"})

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "dependency_latency_seconds",
	Help:    "Latency of external service calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10},
}, []string{"service"})

func CaptureExecutionMetrics(label string, timeElapsed time.Duration) {
	dependencyLatency.WithLabelValues(label).Observe(timeElapsed.Seconds())
}

func CapturePipelineMetrics(label string, timeElapsed time.Duration) {
	requestDuration.WithLabelValues(label).Observe(timeElapsed.Seconds())
}
