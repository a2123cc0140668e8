package metrics

import (
	"github.com/Rana718/skyseed/internal/seeder"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the fill metrics on a private registry so one run can be
// written out as a node_exporter textfile.
type Recorder struct {
	registry *prometheus.Registry

	RowsInserted *prometheus.CounterVec
	TableFills   *prometheus.CounterVec
	FillDuration *prometheus.GaugeVec
}

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		RowsInserted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skyseed_rows_inserted_total",
				Help: "Rows committed per table",
			},
			[]string{"table"},
		),
		TableFills: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skyseed_table_fills_total",
				Help: "Table fills by result (ok or failed)",
			},
			[]string{"table", "result"},
		),
		FillDuration: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "skyseed_table_fill_duration_seconds",
				Help: "Wall time of the last fill of each table",
			},
			[]string{"table"},
		),
	}
}

func (r *Recorder) Observe(report seeder.Report) {
	result := "ok"
	if !report.OK() {
		result = "failed"
	}
	r.RowsInserted.WithLabelValues(report.Table).Add(float64(report.Inserted))
	r.TableFills.WithLabelValues(report.Table, result).Inc()
	r.FillDuration.WithLabelValues(report.Table).Set(report.Duration.Seconds())
}

// WriteTextfile writes the current values in the Prometheus text format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
