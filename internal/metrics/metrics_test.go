package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndyQiu2234/MergeSpec/internal/merge"
)

func TestObserveRecordsRecomputes(t *testing.T) {
	pm := New(prometheus.NewRegistry())
	m := merge.New()
	cancel := pm.Observe(m)

	require.NoError(t, m.LoadBand(merge.THz, []float64{1, 2, 3}, []float64{0.5, 0.5, 0.5}, "thz"))
	require.NoError(t, m.SetScale(merge.THz, 0.1, 1))
	require.NoError(t, m.SetScale(merge.THz, 0.2, 1))

	assert.Equal(t, 1.0, testutil.ToFloat64(pm.recomputes.WithLabelValues("load_band")))
	assert.Equal(t, 2.0, testutil.ToFloat64(pm.recomputes.WithLabelValues("set_scale")))
	assert.Equal(t, 3.0, testutil.ToFloat64(pm.assembledSamples))

	cancel()
	require.NoError(t, m.ResetScale(merge.THz))
	assert.Equal(t, 0.0, testutil.ToFloat64(pm.recomputes.WithLabelValues("reset_scale")))
}

func TestRecordExport(t *testing.T) {
	pm := New(prometheus.NewRegistry())
	pm.RecordExport("", nil)
	pm.RecordExport("Au", nil)
	pm.RecordExport("Au", errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(pm.exports.WithLabelValues("none", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pm.exports.WithLabelValues("Au", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pm.exports.WithLabelValues("Au", "error")))
}

func TestRecordBandLoadFailureAndSessions(t *testing.T) {
	reg := prometheus.NewRegistry()
	pm := New(reg)
	pm.RecordBandLoadFailure(merge.MIR)
	pm.RecordBandLoadFailure(merge.MIR)
	pm.SetActiveSessions(4)

	expected := `
# HELP mergespec_band_load_failures_total Total number of rejected band files by band
# TYPE mergespec_band_load_failures_total counter
mergespec_band_load_failures_total{band="MIR"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "mergespec_band_load_failures_total"))
	assert.Equal(t, 4.0, testutil.ToFloat64(pm.activeSessions))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var pm *Metrics
	assert.NotPanics(t, func() {
		pm.RecordRecompute(merge.Event{Op: "x"})
		pm.RecordExport("Au", nil)
		pm.RecordBandLoadFailure(merge.VIS)
		pm.SetActiveSessions(1)
	})
}

func TestPush(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	pm := New(prometheus.NewRegistry())
	pm.RecordExport("Ag", nil)
	require.NoError(t, pm.Push(context.Background(), srv.URL, "mergespec"))
	assert.Equal(t, "/metrics/job/mergespec", gotPath)
}
