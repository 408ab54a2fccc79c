package denoise

// readChunk is the size of the scratch buffer used to pull samples out of
// an InputTrack; it has no bearing on correctness, only on how many times
// InputTrack.Read is called.
const readChunk = 4096

// Worker runs one channel's profile or reduce pass: windowing, FFT,
// per-band classification against profiled statistics, attack/release and
// frequency-domain gain smoothing, and overlap-add reconstruction.
//
// A Worker is built around one Settings value and one shared *statistics
// accumulator; profiling several tracks through the same Worker folds all
// of their windows into that one accumulator, exactly as repeatedly
// selecting more noise and re-running "get noise profile" would.
type Worker struct {
	settings Settings

	fft   *FFT
	win   *window
	stats *statistics
	class *classifier
	env   *envelope

	windowSize     int
	stepSize       int
	stepsPerWindow int
	spectrumSize   int

	// windowsToExamine/center size the classifier's neighborhood: the
	// newest windowsToExamine frames of the ring straddle center, which is
	// the frame whose classification drives this tick's gain decision.
	windowsToExamine int
	center           int

	// reduceHistoryLen is the ring length used during Reduce: long enough
	// both for the classifier's neighborhood and for attack propagation to
	// reach center before the oldest frame is emitted (invariant 6).
	reduceHistoryLen int
}

func newWorker(settings Settings, stats *statistics) (*Worker, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}
	fft, err := NewFFT(settings.WindowSize())
	if err != nil {
		return nil, err
	}

	spectrumSize := fft.SpectrumSize()
	stepsPerWindow := settings.StepsPerWindow()
	windowSize := settings.WindowSize()
	stepSize := settings.stepSize()
	sampleRate := settings.SampleRate

	examine := windowsToExamine(settings.ClassificationMethod, stepsPerWindow, sampleRate, stepSize)
	if settings.ClassificationMethod == Median && examine > 5 {
		return nil, newInvalidSettings("median classification does not support a %d-window neighborhood (max 5)", examine)
	}
	center := examine / 2
	if center < 1 {
		return nil, newInvalidSettings("classifier center %d must be at least 1 (windows to examine: %d)", center, examine)
	}

	nAttackBlocks := attackReleaseBlocks(settings.AttackTime, sampleRate, stepSize)
	nReleaseBlocks := attackReleaseBlocks(settings.ReleaseTime, sampleRate, stepSize)

	reduceHistoryLen := examine
	if v := center + nAttackBlocks; v > reduceHistoryLen {
		reduceHistoryLen = v
	}

	return &Worker{
		settings:         settings,
		fft:              fft,
		win:              newWindow(settings.WindowType, windowSize, stepsPerWindow),
		stats:            stats,
		class:            newClassifier(settings.ClassificationMethod, stats, settings.NewSensitivity, settings.OldSensitivity, examine),
		env:              newEnvelope(settings, spectrumSize, nAttackBlocks, nReleaseBlocks),
		windowSize:       windowSize,
		stepSize:         stepSize,
		stepsPerWindow:   stepsPerWindow,
		spectrumSize:     spectrumSize,
		windowsToExamine: examine,
		center:           center,
		reduceHistoryLen: reduceHistoryLen,
	}, nil
}

// windowsToExamine returns the classifier neighborhood size for method:
// 1+stepsPerWindow for Median/SecondGreatest, or a minimum-signal-time
// derived count for Legacy.
func windowsToExamine(method ClassificationMethod, stepsPerWindow int, sampleRate float64, stepSize int) int {
	if method == Legacy {
		n := int(minSignalTime * sampleRate / float64(stepSize))
		if n < 2 {
			n = 2
		}
		return n
	}
	return 1 + stepsPerWindow
}

// attackReleaseBlocks converts a time constant in seconds into a count of
// history steps, the unit one_block_attack/one_block_release operate in.
func attackReleaseBlocks(seconds, sampleRate float64, stepSize int) int {
	return 1 + int(seconds*sampleRate/float64(stepSize))
}

// applyWindowAndTransform copies samples into buf scaled by winCoeff and
// runs the forward FFT on buf in place.
func (w *Worker) applyWindowAndTransform(samples, buf, winCoeff []float64) {
	for i, s := range samples {
		buf[i] = s * winCoeff[i]
	}
	w.fft.Forward(buf)
}

// unpack reads buf (in the FFT's packed, bit-reversed layout) into natural-
// order real/imag arrays of length spectrumSize.
func (w *Worker) unpack(buf, realOut, imagOut []float64) {
	last := w.spectrumSize - 1
	realOut[0], imagOut[0] = buf[0], 0
	realOut[last], imagOut[last] = buf[1], 0

	br := w.fft.BitReversed()
	for k := 1; k < last; k++ {
		off := br[k]
		realOut[k] = buf[off]
		imagOut[k] = buf[off+1]
	}
}

// pack writes natural-order real/imag arrays back into buf in the FFT's
// packed layout, ready for Inverse.
func (w *Worker) pack(buf, realIn, imagIn []float64) {
	last := w.spectrumSize - 1
	buf[0] = realIn[0]
	buf[1] = realIn[last]

	br := w.fft.BitReversed()
	for k := 1; k < last; k++ {
		off := br[k]
		buf[off] = realIn[k]
		buf[off+1] = imagIn[k]
	}
}

// Profile feeds track through the analysis window and FFT, accumulating
// the resulting power spectra into the worker's shared statistics. It
// returns the number of full windows it was able to extract.
func (w *Worker) Profile(track InputTrack) (int, error) {
	w.stats.startTrack()

	pending := make([]float64, 0, w.windowSize)
	chunk := make([]float32, readChunk)
	fftBuf := make([]float64, w.windowSize)
	realBuf := make([]float64, w.spectrumSize)
	imagBuf := make([]float64, w.spectrumSize)
	power := make([]float64, w.spectrumSize)

	// The Legacy method's noise threshold is a max-of-mins collected over
	// the same windowsToExamine-sized neighborhood the classifier will
	// later examine at reduce time; other methods don't need it.
	var legacyHist *history
	if w.settings.ClassificationMethod == Legacy {
		legacyHist = newHistory(w.windowsToExamine, w.spectrumSize, w.center, 0)
	}

	windows := 0
	for {
		n, err := track.Read(chunk)
		if err != nil {
			return windows, newTrackError("read", err)
		}
		if n == 0 {
			break
		}
		for _, s := range chunk[:n] {
			pending = append(pending, float64(s))
		}
		for len(pending) >= w.windowSize {
			w.applyWindowAndTransform(pending[:w.windowSize], fftBuf, w.win.analysis)
			w.unpack(fftBuf, realBuf, imagBuf)
			for i := range power {
				power[i] = realBuf[i]*realBuf[i] + imagBuf[i]*imagBuf[i]
			}
			w.stats.accumulate(power)
			if legacyHist != nil {
				f := legacyHist.rotate()
				copy(f.spectrum, power)
				w.stats.accumulateLegacyThreshold(legacyHist)
			}
			windows++
			pending = pending[w.stepSize:]
		}
	}

	w.stats.finishTrack()
	if windows == 0 {
		return 0, ErrProfileTooShort
	}
	return windows, nil
}

// Reduce runs track through the full reduce pipeline, writing denoised
// samples to out. It requires the worker's statistics to already hold at
// least one profiled window.
func (w *Worker) Reduce(track InputTrack, out OutputTrack) error {
	if w.stats.totalWindows == 0 {
		return ErrProfileTooShort
	}

	hist := newHistory(w.reduceHistoryLen, w.spectrumSize, w.center, w.env.noiseAtten)
	isNoise := make([]bool, w.spectrumSize)

	// Seed with windowSize-stepSize zeros so the very first real samples
	// immediately form a full, left-zero-padded window instead of being
	// withheld until enough real samples accumulate.
	pending := make([]float64, w.windowSize-w.stepSize, w.windowSize)
	fftBuf := make([]float64, w.windowSize)
	outAccum := make([]float64, w.windowSize)
	chunk := make([]float32, readChunk)

	gainedReal := make([]float64, w.spectrumSize)
	gainedImag := make([]float64, w.spectrumSize)
	gains := make([]float64, w.spectrumSize)

	stepsSeen := 0

	// The first steps emit nothing that belongs to the track: the ring has
	// to fill before its oldest frame holds real data, and the front zero
	// padding adds stepsPerWindow-1 more steps. Dropping them aligns output
	// sample i with input sample i.
	skipSteps := (w.reduceHistoryLen - 1) + (w.stepsPerWindow - 1)

	emit := func() error {
		buf32 := make([]float32, w.stepSize)
		for i := 0; i < w.stepSize; i++ {
			buf32[i] = float32(outAccum[i])
		}
		copy(outAccum, outAccum[w.stepSize:])
		for i := len(outAccum) - w.stepSize; i < len(outAccum); i++ {
			outAccum[i] = 0
		}
		if skipSteps > 0 {
			skipSteps--
			return nil
		}
		if err := out.Append(buf32, w.stepSize); err != nil {
			return newTrackError("append", err)
		}
		return nil
	}

	reduceStep := func(samples []float64) error {
		fr := hist.rotate()
		w.applyWindowAndTransform(samples, fftBuf, w.win.analysis)
		w.unpack(fftBuf, fr.real, fr.imag)
		for i := range fr.spectrum {
			fr.spectrum[i] = fr.real[i]*fr.real[i] + fr.imag[i]*fr.imag[i]
		}

		w.class.classify(hist, isNoise)
		w.env.seedCenterGain(hist, isNoise)
		w.env.propagateAttackRelease(hist)
		stepsSeen++

		if stepsSeen >= w.reduceHistoryLen {
			oldest := hist.at(w.reduceHistoryLen - 1)
			copy(gains, oldest.gains)
			w.env.applyFrequencySmoothing(gains)

			for band := range gains {
				g := w.env.applyGain(gains[band])
				gainedReal[band] = oldest.real[band] * g
				gainedImag[band] = oldest.imag[band] * g
			}
			w.pack(fftBuf, gainedReal, gainedImag)
			w.fft.Inverse(fftBuf)
			for i := 0; i < w.windowSize; i++ {
				outAccum[i] += fftBuf[i] * w.win.synthesis[i] * w.win.overlapAddScale
			}
		}

		return emit()
	}

	for {
		n, err := track.Read(chunk)
		if err != nil {
			return newTrackError("read", err)
		}
		if n == 0 {
			break
		}
		for _, s := range chunk[:n] {
			pending = append(pending, float64(s))
		}
		for len(pending) >= w.windowSize {
			if err := reduceStep(pending[:w.windowSize]); err != nil {
				return err
			}
			pending = pending[w.stepSize:]
		}
	}

	// Drain the leftover partial window plus the full lookahead depth of
	// the history ring so every real sample eventually reaches the oldest
	// position and is emitted.
	remaining := w.reduceHistoryLen*w.stepSize + w.windowSize
	for remaining > 0 {
		for len(pending) < w.windowSize {
			pending = append(pending, 0)
		}
		if err := reduceStep(pending[:w.windowSize]); err != nil {
			return err
		}
		pending = pending[w.stepSize:]
		remaining -= w.stepSize
	}

	return nil
}
