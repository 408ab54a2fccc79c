package denoise

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatisticsAccumulateAndFinishTrack(t *testing.T) {
	s := newStatistics(4)
	s.startTrack()
	s.accumulate([]float64{1, 2, 3, 4})
	s.accumulate([]float64{3, 2, 1, 0})
	s.finishTrack()

	require.Equal(t, 2, s.totalWindows)
	require.InDelta(t, 2, s.means[0], 1e-9)
	require.InDelta(t, 2, s.means[1], 1e-9)
	require.InDelta(t, 2, s.means[2], 1e-9)
	require.InDelta(t, 2, s.means[3], 1e-9)
}

func TestFinishTrackZerosSums(t *testing.T) {
	s := newStatistics(3)
	s.startTrack()
	s.accumulate([]float64{1, 2, 3})
	s.finishTrack()

	require.Equal(t, []float64{0, 0, 0}, s.sums, "sums must be all zeros after any sequence of profile_noise calls")
	require.Equal(t, 0, s.trackWindows)
}

func TestStatisticsAccumulatesAcrossTracks(t *testing.T) {
	s := newStatistics(1)
	s.startTrack()
	s.accumulate([]float64{2})
	s.finishTrack()

	s.startTrack()
	s.accumulate([]float64{4})
	s.finishTrack()

	require.Equal(t, 2, s.totalWindows)
	require.InDelta(t, 3, s.means[0], 1e-9)
}

func TestFinishTrackWithNoAccumulationIsNoop(t *testing.T) {
	s := newStatistics(2)
	s.startTrack()
	s.finishTrack()
	require.Equal(t, 0, s.totalWindows)
	require.Equal(t, []float64{0, 0}, s.means)
}

func TestAccumulateLegacyThresholdIsRunningMaxOfMins(t *testing.T) {
	s := newStatistics(1)
	h := newHistory(3, 1, 1, 0)

	h.at(0).spectrum[0] = 5
	h.at(1).spectrum[0] = 2
	h.at(2).spectrum[0] = 9
	s.accumulateLegacyThreshold(h) // min over neighborhood is 2

	require.InDelta(t, 2, s.noiseThreshold[0], 1e-9)

	h.at(0).spectrum[0] = 1
	h.at(1).spectrum[0] = 1
	h.at(2).spectrum[0] = 1
	s.accumulateLegacyThreshold(h) // min is 1, but the running max-of-mins stays at 2

	require.InDelta(t, 2, s.noiseThreshold[0], 1e-9)

	h.at(0).spectrum[0] = 10
	h.at(1).spectrum[0] = 8
	h.at(2).spectrum[0] = 10
	s.accumulateLegacyThreshold(h) // min is 8, raising the running max

	require.InDelta(t, 8, s.noiseThreshold[0], 1e-9)
}
