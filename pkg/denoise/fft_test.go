package denoise

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFFTRoundTrip(t *testing.T) {
	f, err := NewFFT(16)
	require.NoError(t, err)

	orig := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	buf := append([]float64(nil), orig...)

	f.Forward(buf)
	f.Inverse(buf)

	for i := range orig {
		require.InDelta(t, orig[i], buf[i], 1e-9, "sample %d", i)
	}
}

func TestFFTConstantSignalIsPureDC(t *testing.T) {
	f, err := NewFFT(8)
	require.NoError(t, err)

	buf := []float64{2, 2, 2, 2, 2, 2, 2, 2}
	f.Forward(buf)

	require.InDelta(t, 16, buf[0], 1e-9) // DC = sum of samples
	require.InDelta(t, 0, buf[1], 1e-9)  // Nyquist bin is silent for a DC signal

	for k := 1; k < f.half; k++ {
		off := f.bitReversed[k]
		require.InDelta(t, 0, buf[off], 1e-9, "bin %d real", k)
		require.InDelta(t, 0, buf[off+1], 1e-9, "bin %d imag", k)
	}
}

func TestFFTRejectsNonPowerOfTwo(t *testing.T) {
	_, err := NewFFT(10)
	require.Error(t, err)
}

func TestFFTBitReversedIsPermutation(t *testing.T) {
	f, err := NewFFT(32)
	require.NoError(t, err)

	seen := make(map[int]bool)
	for _, off := range f.BitReversed() {
		require.False(t, seen[off], "offset %d repeated", off)
		seen[off] = true
		require.True(t, off%2 == 0 && off < f.Size())
	}
}
