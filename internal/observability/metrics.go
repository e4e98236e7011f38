// Package observability holds the service-wide Prometheus watermarks.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	passGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "exercise_resolver",
		Subsystem: "catalog",
		Name:      "last_pass_timestamp_seconds",
		Help:      "Unix timestamp of the most recent completed resolution or video pass.",
	})

	catalogWriteGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "exercise_resolver",
		Subsystem: "catalog",
		Name:      "last_catalog_write_timestamp_seconds",
		Help:      "Unix timestamp of the most recent catalog mutation.",
	})
)

func init() {
	prometheus.MustRegister(passGauge, catalogWriteGauge)
}

// RecordPass updates the pass watermark.
func RecordPass(ts time.Time) {
	if ts.IsZero() {
		return
	}
	passGauge.Set(float64(ts.Unix()))
}

// RecordCatalogWrite updates the catalog write watermark.
func RecordCatalogWrite(ts time.Time) {
	if ts.IsZero() {
		return
	}
	catalogWriteGauge.Set(float64(ts.Unix()))
}
