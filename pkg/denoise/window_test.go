package denoise

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWindowLengths(t *testing.T) {
	w := newWindow(HannHann, 64, 4)
	require.Len(t, w.analysis, 64)
	require.Len(t, w.synthesis, 64)
	require.Greater(t, w.overlapAddScale, 0.0)
}

func TestRectHannAnalysisIsRectangular(t *testing.T) {
	w := newWindow(RectHann, 16, 2)
	for i, v := range w.analysis {
		require.InDelta(t, 1.0, v, 1e-9, "sample %d", i)
	}
}

func TestHammingInvHammingSynthesisIsReciprocal(t *testing.T) {
	w := newWindow(HammingInvHamming, 16, 2)
	for i := range w.analysis {
		require.InDelta(t, 1.0, w.analysis[i]*w.synthesis[i], 1e-9, "sample %d", i)
	}
}

func TestOverlapAddScaleShrinksWithMoreSteps(t *testing.T) {
	w2 := newWindow(HannHann, 64, 2)
	w4 := newWindow(HannHann, 64, 4)
	require.Greater(t, w2.overlapAddScale, w4.overlapAddScale)
}
