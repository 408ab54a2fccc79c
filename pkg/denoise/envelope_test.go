package denoise

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDbToAmplitudeRatio(t *testing.T) {
	require.InDelta(t, 1.0, dbToAmplitudeRatio(0), 1e-9)
	// -20dB in amplitude is a factor of 0.1.
	require.InDelta(t, 0.1, dbToAmplitudeRatio(-20), 1e-9)
}

func TestApplyFrequencySmoothingNoopWhenZeroBands(t *testing.T) {
	e := &envelope{smoothingBands: 0}
	gains := []float64{0.1, 0.9, 0.1}
	before := append([]float64(nil), gains...)
	e.applyFrequencySmoothing(gains)
	require.Equal(t, before, gains)
}

func TestApplyFrequencySmoothingFlattensASpike(t *testing.T) {
	e := &envelope{smoothingBands: 2}
	gains := []float64{0.1, 0.1, 0.9, 0.1, 0.1}
	e.applyFrequencySmoothing(gains)
	require.Less(t, gains[2], 0.9, "the spike should be pulled down toward its neighbors")
}

func TestApplyGainReduceNoiseModeIsIdentity(t *testing.T) {
	e := &envelope{outputMode: ReduceNoiseMode}
	require.InDelta(t, 0.1, e.applyGain(0.1), 1e-9)
	require.InDelta(t, 1.0, e.applyGain(1.0), 1e-9)
}

func TestApplyGainLeaveResidueFlipsAroundUnity(t *testing.T) {
	e := &envelope{outputMode: LeaveResidueMode}
	require.InDelta(t, -0.9, e.applyGain(0.1), 1e-9)
	require.InDelta(t, 0.0, e.applyGain(1.0), 1e-9)
}

func TestSeedCenterGainReduceNoiseKeepsNoiseBandsAtPriorValue(t *testing.T) {
	e := &envelope{outputMode: ReduceNoiseMode, binHigh: 2, noiseAtten: 0.05}
	h := newHistory(3, 2, 1, 0.05)
	isNoise := []bool{true, false}

	e.seedCenterGain(h, isNoise)
	gains := h.centerFrame().gains
	require.InDelta(t, 0.05, gains[0], 1e-9, "noise band keeps its prior (reset) value")
	require.InDelta(t, 1.0, gains[1], 1e-9, "non-noise band opens to unity")
}

func TestSeedCenterGainIsolateNoiseZerosNonNoiseBands(t *testing.T) {
	e := &envelope{outputMode: IsolateNoiseMode, binHigh: 2}
	h := newHistory(3, 2, 1, 0.05)
	isNoise := []bool{true, false}

	e.seedCenterGain(h, isNoise)
	gains := h.centerFrame().gains
	require.InDelta(t, 1.0, gains[0], 1e-9, "noise band is isolated")
	require.InDelta(t, 0.0, gains[1], 1e-9, "non-noise band is suppressed")
}

func TestPropagateAttackReleaseRaisesOlderFrameTowardCenter(t *testing.T) {
	e := &envelope{outputMode: ReduceNoiseMode, noiseAtten: 0.05, oneBlockAttack: 0.5, oneBlockRelease: 0.5}
	h := newHistory(4, 1, 1, 0.05)
	h.centerFrame().gains[0] = 1.0 // just classified as signal

	e.propagateAttackRelease(h)

	require.InDelta(t, 0.5, h.at(2).gains[0], 1e-9, "attack floor is center's gain times oneBlockAttack")
	require.InDelta(t, 0.5, h.at(0).gains[0], 1e-9, "release raises the frame that will become center next tick")
}

func TestPropagateAttackReleaseStopsAtAnExistingHigherGain(t *testing.T) {
	e := &envelope{outputMode: ReduceNoiseMode, noiseAtten: 0.05, oneBlockAttack: 0.5, oneBlockRelease: 0.5}
	h := newHistory(5, 1, 1, 0.05)
	h.centerFrame().gains[0] = 1.0
	h.at(3).gains[0] = 0.9 // already higher than any floor this tick would impose

	e.propagateAttackRelease(h)

	require.InDelta(t, 0.5, h.at(2).gains[0], 1e-9)
	require.InDelta(t, 0.9, h.at(3).gains[0], 1e-9, "untouched: the attack walk stopped before reaching it")
	require.InDelta(t, 0.05, h.at(4).gains[0], 1e-9, "never visited past the break")
}

func TestPropagateAttackReleaseIsNoopForIsolateNoise(t *testing.T) {
	e := &envelope{outputMode: IsolateNoiseMode, noiseAtten: 0.05, oneBlockAttack: 0.5, oneBlockRelease: 0.5}
	h := newHistory(4, 1, 1, 0.05)
	h.centerFrame().gains[0] = 1.0

	e.propagateAttackRelease(h)

	require.InDelta(t, 0.05, h.at(2).gains[0], 1e-9, "no attack propagation in isolate mode")
	require.InDelta(t, 0.05, h.at(0).gains[0], 1e-9, "no release propagation in isolate mode")
}
