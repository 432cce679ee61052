// Package metrics exposes Prometheus collectors for merge sessions and
// exports.
package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/AndyQiu2234/MergeSpec/internal/merge"
)

// Metrics holds all collectors.
type Metrics struct {
	gatherer prometheus.Gatherer

	recomputes       *prometheus.CounterVec // by mutation op
	assembledSamples prometheus.Gauge       // samples in the last recomputed spectrum
	exports          *prometheus.CounterVec // by reference and status
	bandLoadFailures *prometheus.CounterVec // by band
	activeSessions   prometheus.Gauge
}

// New registers the collectors on reg.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		recomputes: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mergespec_recomputes_total",
				Help: "Total number of spectrum recomputes by triggering operation",
			},
			[]string{"op"},
		),
		assembledSamples: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "mergespec_assembled_samples",
				Help: "Number of samples in the most recently assembled spectrum",
			},
		),
		exports: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mergespec_exports_total",
				Help: "Total number of spectrum exports by reference and status",
			},
			[]string{"reference", "status"},
		),
		bandLoadFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mergespec_band_load_failures_total",
				Help: "Total number of rejected band files by band",
			},
			[]string{"band"},
		),
		activeSessions: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "mergespec_active_sessions",
				Help: "Number of live merge sessions",
			},
		),
	}
}

// Observe subscribes to m and records every recompute. The returned
// function stops observing.
func (pm *Metrics) Observe(m *merge.Merger) (cancel func()) {
	return m.Subscribe(pm.RecordRecompute)
}

// RecordRecompute records one merger change notification.
func (pm *Metrics) RecordRecompute(ev merge.Event) {
	if pm == nil {
		return
	}
	pm.recomputes.WithLabelValues(ev.Op).Inc()
	pm.assembledSamples.Set(float64(ev.Samples))
}

// RecordExport records an export attempt. reference is "none" when no
// normalization was applied.
func (pm *Metrics) RecordExport(reference string, err error) {
	if pm == nil {
		return
	}
	if reference == "" {
		reference = "none"
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	pm.exports.WithLabelValues(reference, status).Inc()
}

// RecordBandLoadFailure records a rejected band file.
func (pm *Metrics) RecordBandLoadFailure(band merge.BandID) {
	if pm == nil {
		return
	}
	pm.bandLoadFailures.WithLabelValues(band.String()).Inc()
}

// SetActiveSessions records the number of live sessions.
func (pm *Metrics) SetActiveSessions(n int) {
	if pm == nil {
		return
	}
	pm.activeSessions.Set(float64(n))
}

// Gatherer returns the registry the collectors live on.
func (pm *Metrics) Gatherer() prometheus.Gatherer {
	return pm.gatherer
}

// Push sends the current values to a Pushgateway under job. Used by
// one-shot CLI runs that have no scrape endpoint.
func (pm *Metrics) Push(ctx context.Context, url, job string) error {
	if err := push.New(url, job).Gatherer(pm.gatherer).PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", url, err)
	}
	return nil
}
