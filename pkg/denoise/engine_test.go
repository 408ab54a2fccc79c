package denoise

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func testSettings(sampleRate float64) Settings {
	return NewSettings(sampleRate)
}

func TestReduceNoiseBeforeProfileFails(t *testing.T) {
	e, err := NewEngine(testSettings(8000))
	require.NoError(t, err)

	in := NewSliceInputTrack(make([]float32, 4000))
	out := &SliceOutputTrack{}
	err = e.ReduceNoise(in, out)
	require.ErrorIs(t, err, ErrNoProfile)
}

func TestProfileNoiseTooShortFails(t *testing.T) {
	e, err := NewEngine(testSettings(8000))
	require.NoError(t, err)

	in := NewSliceInputTrack(make([]float32, 10)) // shorter than one window
	err = e.ProfileNoise(in)
	require.ErrorIs(t, err, ErrProfileTooShort)
}

func TestProfileThenReducePreservesLength(t *testing.T) {
	e, err := NewEngine(testSettings(8000))
	require.NoError(t, err)

	noise := make([]float32, 4000)
	require.NoError(t, e.ProfileNoise(NewSliceInputTrack(noise)))

	signal := make([]float32, 5000)
	for i := range signal {
		signal[i] = float32(0.5 * math.Sin(2*math.Pi*440*float64(i)/8000))
	}

	out := &SliceOutputTrack{}
	require.NoError(t, e.ReduceNoise(NewSliceInputTrack(signal), out))
	require.Len(t, out.Samples, len(signal))
}

func TestMultipleProfileCallsAccumulate(t *testing.T) {
	e, err := NewEngine(testSettings(8000))
	require.NoError(t, err)

	noise := make([]float32, 4000)
	require.NoError(t, e.ProfileNoise(NewSliceInputTrack(noise)))
	windowsAfterFirst := e.stats.totalWindows

	require.NoError(t, e.ProfileNoise(NewSliceInputTrack(noise)))
	require.Greater(t, e.stats.totalWindows, windowsAfterFirst)
}

func TestInvalidSettingsRejectedAtConstruction(t *testing.T) {
	s := testSettings(8000)
	s.NoiseGainDB = -1
	_, err := NewEngine(s)
	require.Error(t, err)
	var invalid *InvalidSettingsError
	require.ErrorAs(t, err, &invalid)
}
