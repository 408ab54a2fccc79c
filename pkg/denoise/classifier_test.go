package denoise

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifySecondGreatest(t *testing.T) {
	stats := newStatistics(1)
	stats.means[0] = 1.0
	c := &classifier{method: SecondGreatest, stats: stats, newSensitivity: 1.0, windowsToExamine: 3}

	h := newHistory(3, 1, 1, 0)
	h.at(0).spectrum[0] = 5
	h.at(1).spectrum[0] = 5
	h.at(2).spectrum[0] = 0.1

	out := make([]bool, 1)
	c.classify(h, out)
	require.False(t, out[0], "second-greatest power (5) exceeds the mean, so the band reads as signal")

	h2 := newHistory(3, 1, 1, 0)
	h2.at(0).spectrum[0] = 0.1
	h2.at(1).spectrum[0] = 5
	h2.at(2).spectrum[0] = 0.1
	c.classify(h2, out)
	require.True(t, out[0], "second-greatest power (0.1) is below the mean, so the band reads as noise")
}

func TestClassifyMedian(t *testing.T) {
	stats := newStatistics(1)
	stats.means[0] = 1.0
	c := &classifier{method: Median, stats: stats, newSensitivity: 1.0, windowsToExamine: 3}

	h := newHistory(3, 1, 1, 0)
	h.at(0).spectrum[0] = 1
	h.at(1).spectrum[0] = 5
	h.at(2).spectrum[0] = 9

	out := make([]bool, 1)
	c.classify(h, out)
	require.False(t, out[0], "3-window median falls back to second-greatest (5), above the mean")
}

func TestClassifyMedianFiveWindowsUsesThirdGreatest(t *testing.T) {
	stats := newStatistics(1)
	stats.means[0] = 1.0
	c := &classifier{method: Median, stats: stats, newSensitivity: 1.0, windowsToExamine: 5}

	h := newHistory(5, 1, 2, 0)
	powers := []float64{10, 9, 8, 0.1, 0.1}
	for i, p := range powers {
		h.at(i).spectrum[0] = p
	}

	out := make([]bool, 1)
	c.classify(h, out)
	require.False(t, out[0], "third-greatest (8) is above the mean, so the band reads as signal")
}

func TestClassifyLegacyExaminesWholeNeighborhood(t *testing.T) {
	stats := newStatistics(1)
	stats.noiseThreshold[0] = 2.0
	c := &classifier{method: Legacy, stats: stats, oldSensitivity: 1.0, windowsToExamine: 3}

	h := newHistory(3, 1, 1, 0)
	h.at(0).spectrum[0] = 100
	h.at(1).spectrum[0] = 100
	h.at(2).spectrum[0] = 100
	out := make([]bool, 1)
	c.classify(h, out)
	require.False(t, out[0], "minimum over the neighborhood (100) is above threshold, so not noise")

	h.at(1).spectrum[0] = 1 // a single quiet window in the neighborhood is enough to flip it
	c.classify(h, out)
	require.True(t, out[0])
}
