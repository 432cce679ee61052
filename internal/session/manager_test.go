package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndyQiu2234/MergeSpec/internal/merge"
	"github.com/AndyQiu2234/MergeSpec/internal/metrics"
	"github.com/AndyQiu2234/MergeSpec/internal/render"
)

func TestManagerLifecycle(t *testing.T) {
	sm := NewManager(nil, metrics.New(prometheus.NewRegistry()), time.Hour)

	s, err := sm.Create()
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, 1, sm.Count())

	got, err := sm.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, sm.Delete(s.ID))
	_, err = sm.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, sm.Delete(s.ID), ErrNotFound)
	assert.Equal(t, 0, sm.Count())
}

func TestSessionDoSerialises(t *testing.T) {
	sm := NewManager(nil, nil, 0)
	s, err := sm.Create()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Do(func(m *merge.Merger, _ *render.CurveList) error {
				return m.SetScale(merge.THz, float64(i%5)/10, 1)
			})
		}(i)
	}
	wg.Wait()

	err = s.Do(func(m *merge.Merger, overlays *render.CurveList) error {
		assert.NotNil(t, overlays)
		st, err := m.Band(merge.THz)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, st.Offset, 0.0)
		return nil
	})
	require.NoError(t, err)
}

func TestPrune(t *testing.T) {
	sm := NewManager(nil, nil, time.Minute)
	old, err := sm.Create()
	require.NoError(t, err)
	fresh, err := sm.Create()
	require.NoError(t, err)

	now := time.Now()
	old.mu.Lock()
	old.lastUsed = now.Add(-2 * time.Minute)
	old.mu.Unlock()

	assert.Equal(t, 1, sm.Prune(now))
	_, err = sm.Get(old.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = sm.Get(fresh.ID)
	assert.NoError(t, err)

	noExpiry := NewManager(nil, nil, 0)
	_, err = noExpiry.Create()
	require.NoError(t, err)
	assert.Equal(t, 0, noExpiry.Prune(now.Add(24*time.Hour)))
}

func TestRunJanitorStops(t *testing.T) {
	sm := NewManager(nil, nil, time.Nanosecond)
	_, err := sm.Create()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunJanitor(ctx, sm, time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return sm.Count() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
