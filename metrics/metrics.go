// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics exposes Prometheus collectors for sync, writeback and email outcomes.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/allotdesk/models"
)

const namespace = "allotdesk"

// Metrics holds the collectors. A nil *Metrics records nothing.
type Metrics struct {
	syncRuns      *prometheus.CounterVec
	imported      *prometheus.CounterVec
	skipped       *prometheus.CounterVec
	writebackRuns *prometheus.CounterVec
	writebackRows *prometheus.CounterVec
	emails        *prometheus.CounterVec
	duration      *prometheus.HistogramVec
}

// New registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		syncRuns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_runs_total",
			Help:      "Registration sync invocations by round and result.",
		}, []string{"round", "result"}),
		imported: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_imported_total",
			Help:      "Registrations upserted by sync.",
		}, []string{"round"}),
		skipped: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_skipped_total",
			Help:      "Sheet rows dropped by sync for a blank email or a later duplicate.",
		}, []string{"round"}),
		writebackRuns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "writeback_runs_total",
			Help:      "Writeback invocations by result.",
		}, []string{"result"}),
		writebackRows: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "writeback_rows_total",
			Help:      "Delegates considered by writeback, by outcome.",
		}, []string{"outcome"}),
		emails: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_total",
			Help:      "Allotment emails by result.",
		}, []string{"result"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of sync and writeback invocations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// ObserveSync records one sync invocation. round should be the canonical
// round name, or "unknown" when it could not be resolved.
func (m *Metrics) ObserveSync(round string, res models.SyncResult, err error, d time.Duration) {
	if m == nil {
		return
	}
	m.syncRuns.WithLabelValues(round, result(err)).Inc()
	m.duration.WithLabelValues("sync").Observe(d.Seconds())
	if err != nil {
		return
	}
	m.imported.WithLabelValues(round).Add(float64(res.ImportedCount))
	m.skipped.WithLabelValues(round).Add(float64(res.SkippedCount))
}

func (m *Metrics) ObserveWriteback(res models.WritebackResult, err error, d time.Duration) {
	if m == nil {
		return
	}
	m.writebackRuns.WithLabelValues(result(err)).Inc()
	m.duration.WithLabelValues("writeback").Observe(d.Seconds())
	if err != nil {
		return
	}
	m.writebackRows.WithLabelValues("updated").Add(float64(res.UpdatedCount))
	m.writebackRows.WithLabelValues("unmatched").Add(float64(res.UnmatchedCount))
}

func (m *Metrics) ObserveEmail(err error) {
	if m == nil {
		return
	}
	m.emails.WithLabelValues(result(err)).Inc()
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
