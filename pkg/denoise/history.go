package denoise

// frame holds one window's worth of spectral state as it moves through the
// history ring: the raw FFT pairs (needed to reconstruct the signal once a
// gain decision has been made for this frame) and the derived power and
// per-band noise/gain decisions layered on top of it.
type frame struct {
	real     []float64 // natural-order real parts, length spectrumSize
	imag     []float64 // natural-order imaginary parts, length spectrumSize
	spectrum []float64 // power spectrum, length spectrumSize

	// gains holds the gain decided for this frame, one value per band. It
	// starts at noiseAttenFactor when the frame is freshly transformed and
	// is raised toward 1 as classification and attack/release propagation
	// reach it, until the frame reaches the oldest position and is emitted.
	gains []float64
}

func newFrame(spectrumSize int) *frame {
	return &frame{
		real:     make([]float64, spectrumSize),
		imag:     make([]float64, spectrumSize),
		spectrum: make([]float64, spectrumSize),
		gains:    make([]float64, spectrumSize),
	}
}

// reset zeros the frame's spectral state and floors every band's gain at
// noiseAttenFactor, the default a freshly-recycled frame starts at before
// classification has had a chance to raise any of its bands.
func (f *frame) reset(noiseAttenFactor float64) {
	for i := range f.spectrum {
		f.real[i] = 0
		f.imag[i] = 0
		f.spectrum[i] = 0
		f.gains[i] = noiseAttenFactor
	}
}

// history is a fixed-length ring of frames. Index 0 is always the newest
// frame (the one most recently transformed); index len-1 is the oldest,
// about to be evicted and emitted by the next rotate. center identifies
// the frame currently being classified: it sits far enough behind the
// newest frame that the classifier can see both past and future context,
// and far enough ahead of the oldest frame that attack propagation has
// time to fully decay a band before that frame is emitted.
type history struct {
	frames           []*frame
	center           int
	noiseAttenFactor float64
}

func newHistory(length, spectrumSize, center int, noiseAttenFactor float64) *history {
	h := &history{
		frames:           make([]*frame, length),
		center:           center,
		noiseAttenFactor: noiseAttenFactor,
	}
	for i := range h.frames {
		h.frames[i] = newFrame(spectrumSize)
		h.frames[i].reset(noiseAttenFactor)
	}
	return h
}

func (h *history) len() int { return len(h.frames) }

// at returns the frame at position i in the ring, where 0 is newest.
func (h *history) at(i int) *frame { return h.frames[i] }

// centerFrame returns the frame currently positioned for classification.
func (h *history) centerFrame() *frame { return h.frames[h.center] }

// rotate recycles the oldest frame (index len-1, just emitted) into the
// newest slot, shifting every other frame one position toward the oldest
// end. It returns the recycled frame, reset and ready for the caller to
// fill with the next transformed window.
func (h *history) rotate() *frame {
	n := len(h.frames)
	oldest := h.frames[n-1]
	copy(h.frames[1:], h.frames[:n-1])
	h.frames[0] = oldest
	oldest.reset(h.noiseAttenFactor)
	return oldest
}
