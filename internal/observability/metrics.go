package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "race_etl"

// Metrics holds the Prometheus counters, histograms, and gauges for a scrape run.
type Metrics struct {
	Registry *prometheus.Registry

	FragmentsSeen    prometheus.Counter
	RecordsExtracted prometheus.Counter
	RecordsDropped   *prometheus.CounterVec // labels: reason
	FilesWritten     *prometheus.CounterVec // labels: exporter
	RunFailures      *prometheus.CounterVec // labels: stage

	RunDuration        prometheus.Histogram
	LastSuccessSeconds prometheus.Gauge
	LastRecordCount    prometheus.Gauge
}

// NewMetrics creates run metrics on a private registry, so the command can
// push exactly this set and tests can build as many as they like.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		FragmentsSeen: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fragments_seen_total",
			Help:      "Competitor rows found on the ranking page.",
		}),
		RecordsExtracted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_extracted_total",
			Help:      "Rows that produced a valid position record.",
		}),
		RecordsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_dropped_total",
			Help:      "Rows dropped during extraction, by reason.",
		}, []string{"reason"}),
		FilesWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_written_total",
			Help:      "Output files written, by exporter.",
		}, []string{"exporter"}),
		RunFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "run_failures_total",
			Help:      "Runs aborted by a fatal error, by stage.",
		}, []string{"stage"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete fetch-extract-export run.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		LastSuccessSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last run that wrote both files.",
		}),
		LastRecordCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_record_count",
			Help:      "Records exported by the last successful run.",
		}),
	}

	m.Registry.MustRegister(
		m.FragmentsSeen,
		m.RecordsExtracted,
		m.RecordsDropped,
		m.FilesWritten,
		m.RunFailures,
		m.RunDuration,
		m.LastSuccessSeconds,
		m.LastRecordCount,
	)

	return m
}
