package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder collects the counters of one publisher run in a private registry
// so they can be written as a node exporter textfile when the run ends.
type Recorder struct {
	registry *prometheus.Registry

	FilesProcessed    prometheus.Counter
	FilesFailed       *prometheus.CounterVec
	RecordsParsed     prometheus.Counter
	RecordsKept       prometheus.Counter
	ProductsPublished prometheus.Gauge
	LastRun           prometheus.Gauge
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		FilesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catalog_files_processed_total",
			Help: "Catalog files fetched and parsed successfully",
		}),
		FilesFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_files_failed_total",
			Help: "Catalog files skipped because of an error",
		}, []string{"stage"}),
		RecordsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catalog_records_parsed_total",
			Help: "Product records parsed from catalog files",
		}),
		RecordsKept: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catalog_records_kept_total",
			Help: "Product records that passed the filter rules",
		}),
		ProductsPublished: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_products_published",
			Help: "Products written to the published feeds",
		}),
		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_last_run_timestamp_seconds",
			Help: "Unix time the last publisher run completed",
		}),
	}

	r.registry.MustRegister(
		r.FilesProcessed,
		r.FilesFailed,
		r.RecordsParsed,
		r.RecordsKept,
		r.ProductsPublished,
		r.LastRun,
	)

	return r
}

func (r *Recorder) FileProcessed(parsed, kept int) {
	r.FilesProcessed.Inc()
	r.RecordsParsed.Add(float64(parsed))
	r.RecordsKept.Add(float64(kept))
}

// FileFailed counts a skipped file; stage is "fetch" or "parse".
func (r *Recorder) FileFailed(stage string) {
	r.FilesFailed.WithLabelValues(stage).Inc()
}

func (r *Recorder) Published(count int, at time.Time) {
	r.ProductsPublished.Set(float64(count))
	r.LastRun.Set(float64(at.Unix()))
}

func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
