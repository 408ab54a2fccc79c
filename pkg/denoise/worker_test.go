package denoise

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestWorker(t *testing.T, settings Settings) *Worker {
	t.Helper()
	stats := newStatistics(settings.WindowSize()/2 + 1)
	w, err := newWorker(settings, stats)
	require.NoError(t, err)
	return w
}

func TestWorkerProfileCountsFullWindowsOnly(t *testing.T) {
	settings := NewSettings(8000)
	w := newTestWorker(t, settings)

	// Exactly one window's worth of samples and no more: a single window,
	// no partial leftover to round up.
	windows, err := w.Profile(NewSliceInputTrack(make([]float32, settings.WindowSize())))
	require.NoError(t, err)
	require.Equal(t, 1, windows)
}

func TestWorkerReduceOnSilenceStaysSilent(t *testing.T) {
	settings := NewSettings(8000)
	w := newTestWorker(t, settings)

	_, err := w.Profile(NewSliceInputTrack(make([]float32, settings.WindowSize()*8)))
	require.NoError(t, err)

	out := &SliceOutputTrack{}
	err = w.Reduce(NewSliceInputTrack(make([]float32, settings.WindowSize()*8)), out)
	require.NoError(t, err)

	for i, s := range out.Samples {
		require.InDelta(t, 0, s, 1e-4, "sample %d should stay silent", i)
	}
}
