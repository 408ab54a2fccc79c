package denoise

import "math"

// envelope turns a per-band classification into the actual linear gain
// applied to a frame's spectrum: attack/release floor propagation across
// the history ring (so gain doesn't snap open/closed between adjacent
// frames) followed by geometric smoothing across neighboring bands in
// frequency (so the gain curve doesn't ring between bands a band-by-band
// decision would leave jagged).
type envelope struct {
	noiseAtten      float64 // linear floor gain, e.g. -25dB -> ~0.056
	oneBlockAttack  float64 // per-history-step attack decay factor, in (0, 1)
	oneBlockRelease float64 // per-history-step release decay factor, in (0, 1)
	smoothingBands  int
	outputMode      OutputMode
	binLow          int
	binHigh         int
}

// newEnvelope derives the envelope's constants from Settings. nAttackBlocks
// and nReleaseBlocks are the number of history steps the configured
// attack/release time should take to fully decay a band to noiseAtten.
func newEnvelope(s Settings, spectrumSize, nAttackBlocks, nReleaseBlocks int) *envelope {
	binLow, binHigh := s.BinLow, s.BinHigh
	if binHigh == 0 {
		binHigh = spectrumSize
	}
	noiseGainDB := -s.NoiseGainDB
	return &envelope{
		noiseAtten:      dbToAmplitudeRatio(noiseGainDB),
		oneBlockAttack:  dbToAmplitudeRatio(noiseGainDB / float64(nAttackBlocks)),
		oneBlockRelease: dbToAmplitudeRatio(noiseGainDB / float64(nReleaseBlocks)),
		smoothingBands:  s.FreqSmoothingBands,
		outputMode:      s.OutputMode,
		binLow:          binLow,
		binHigh:         binHigh,
	}
}

// dbToAmplitudeRatio converts a dB value to a linear amplitude ratio:
// 10^(db/20). Used for the envelope's amplitude-domain constants
// (noiseAttenFactor, one_block_attack/release).
func dbToAmplitudeRatio(db float64) float64 {
	return math.Pow(10, db/20)
}

// seedCenterGain writes the center frame's raw per-band gain from this
// tick's classification, honoring output mode and the IsolateNoiseMode
// sub-band restriction. It is the one place classification feeds the gain
// envelope; attack/release propagation and emission only ever read gains.
func (e *envelope) seedCenterGain(h *history, isNoise []bool) {
	gains := h.centerFrame().gains

	if e.outputMode == IsolateNoiseMode {
		for band := range gains {
			gains[band] = 0
		}
		for band := e.binLow; band < e.binHigh; band++ {
			if isNoise[band] {
				gains[band] = 1
			}
		}
		return
	}

	for band := 0; band < e.binLow; band++ {
		gains[band] = 1
	}
	for band := e.binHigh; band < len(gains); band++ {
		gains[band] = 1
	}
	for band := e.binLow; band < e.binHigh; band++ {
		if !isNoise[band] {
			gains[band] = 1
		}
		// Noise bands keep their prior value (noiseAttenFactor initially,
		// possibly already raised by an earlier release step).
	}
}

// propagateAttackRelease extends the gain decided at the center frame
// outward into the rest of the history ring: forward, toward older frames
// closer to emission, as an attack floor that stops as soon as it meets a
// previously-placed decay curve; and one step backward, toward the frame
// that will become center next tick, as a release floor. It is a no-op in
// IsolateNoiseMode, which has no time-domain smoothing.
func (e *envelope) propagateAttackRelease(h *history) {
	if e.outputMode == IsolateNoiseMode {
		return
	}
	center := h.center
	n := h.len()
	bands := len(h.centerFrame().gains)

	for band := 0; band < bands; band++ {
		for i := center + 1; i < n; i++ {
			floor := h.at(i-1).gains[band] * e.oneBlockAttack
			if floor < e.noiseAtten {
				floor = e.noiseAtten
			}
			if h.at(i).gains[band] < floor {
				h.at(i).gains[band] = floor
			} else {
				// The attack curve has intersected the decay curve of a
				// window processed on an earlier tick; stop raising it.
				break
			}
		}
	}

	prior := h.at(center - 1).gains
	cur := h.centerFrame().gains
	for band := 0; band < bands; band++ {
		floor := cur[band] * e.oneBlockRelease
		if floor < e.noiseAtten {
			floor = e.noiseAtten
		}
		if prior[band] < floor {
			prior[band] = floor
		}
	}
}

// applyFrequencySmoothing replaces each band's gain with the geometric mean
// (equivalently: the arithmetic mean in log space) of the bands within
// smoothingBands of it, which avoids introducing audible comb-filtering
// from a sharp per-band gain curve. A smoothingBands of 0 is a no-op.
func (e *envelope) applyFrequencySmoothing(gains []float64) {
	if e.smoothingBands <= 0 {
		return
	}
	n := len(gains)
	logGains := make([]float64, n)
	for i, g := range gains {
		logGains[i] = math.Log(math.Max(g, 1e-9))
	}
	smoothed := make([]float64, n)
	for i := range gains {
		lo := i - e.smoothingBands
		if lo < 0 {
			lo = 0
		}
		hi := i + e.smoothingBands
		if hi >= n {
			hi = n - 1
		}
		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += logGains[j]
		}
		smoothed[i] = math.Exp(sum / float64(hi-lo+1))
	}
	copy(gains, smoothed)
}

// applyGain maps a frame's final (attack/release- and frequency-smoothed)
// gain to the multiplier actually applied to that band's FFT bin:
// ReduceNoise and IsolateNoise apply it directly; LeaveResidue flips phase
// and keeps only the part reduction would otherwise have removed.
func (e *envelope) applyGain(g float64) float64 {
	if e.outputMode == LeaveResidueMode {
		return g - 1
	}
	return g
}
