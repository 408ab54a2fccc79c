package balance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAngleCenteredIsZero(t *testing.T) {
	block := StereoBlock{Left: []float32{0.5, -0.5, 0.5}, Right: []float32{0.5, -0.5, 0.5}}
	require.InDelta(t, 0.0, Angle(block), 1e-9)
}

func TestAnglePureLeftAndRight(t *testing.T) {
	left := StereoBlock{Left: []float32{1, -1, 1}, Right: []float32{0, 0, 0}}
	right := StereoBlock{Left: []float32{0, 0, 0}, Right: []float32{1, -1, 1}}
	require.InDelta(t, -MaxAngle, Angle(left), 1e-9)
	require.InDelta(t, MaxAngle, Angle(right), 1e-9)
}

func TestAngleSilenceIsZero(t *testing.T) {
	block := StereoBlock{Left: []float32{0, 0}, Right: []float32{0, 0}}
	require.Equal(t, 0.0, Angle(block))
}

func TestAngleIsOddSymmetricUnderChannelSwap(t *testing.T) {
	block := StereoBlock{Left: []float32{0.8, -0.3, 0.1}, Right: []float32{0.1, 0.2, -0.9}}
	swapped := StereoBlock{Left: block.Right, Right: block.Left}
	require.InDelta(t, -Angle(block), Angle(swapped), 1e-12)
}

func TestGatePassesThroughLoudBlock(t *testing.T) {
	block := StereoBlock{Left: []float32{1, -1, 1}, Right: []float32{1, -1, 1}}
	out, silent := Gate(block, -60)
	require.False(t, silent)
	require.Same(t, &block.Left[0], &out.Left[0])
}

func TestGateZeroesQuietBlock(t *testing.T) {
	block := StereoBlock{Left: []float32{0.0001, -0.0001}, Right: []float32{0.0001, -0.0001}}
	out, silent := Gate(block, -40)
	require.True(t, silent)
	require.Equal(t, []float32{0, 0}, out.Left)
	require.Equal(t, []float32{0, 0}, out.Right)
	require.NotEqual(t, block.Left[0], out.Left[0])
}

func TestGateOnSilentBlock(t *testing.T) {
	block := StereoBlock{Left: make([]float32, 4), Right: make([]float32, 4)}
	_, silent := Gate(block, -math.MaxFloat64/2)
	require.True(t, silent)
}
