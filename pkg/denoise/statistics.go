package denoise

// statistics is the per-band power accumulator shared by every profile and
// reduce pass of one Engine. It is mutated only during profile_noise calls
// and only read during reduce_noise.
type statistics struct {
	sums           []float64 // running sum of power per band, for the track in progress
	means          []float64 // windows-weighted mean power per band, across finished tracks
	noiseThreshold []float64 // per-band Legacy threshold: a running max-of-mins

	totalWindows int // windows accumulated across every finished profile track
	trackWindows int // windows accumulated in the track currently being profiled
}

// newStatistics allocates a statistics accumulator for a spectrum of the
// given size (bands).
func newStatistics(bands int) *statistics {
	return &statistics{
		sums:           make([]float64, bands),
		means:          make([]float64, bands),
		noiseThreshold: make([]float64, bands),
	}
}

// startTrack resets the per-track window counter; means persist across
// tracks so that multiple profile passes accumulate into one profile.
func (s *statistics) startTrack() {
	s.trackWindows = 0
}

// accumulate folds one window's per-band power spectrum into the running
// sums.
func (s *statistics) accumulate(power []float64) {
	for i, p := range power {
		s.sums[i] += p
	}
	s.trackWindows++
}

// accumulateLegacyThreshold folds the per-band minimum power observed over
// a classifier-neighborhood-sized window of history into the running
// max-of-mins noiseThreshold, which the Legacy classification method
// compares band power against at reduce time.
func (s *statistics) accumulateLegacyThreshold(h *history) {
	n := h.len()
	for band := range s.noiseThreshold {
		min := h.at(0).spectrum[band]
		for i := 1; i < n; i++ {
			if p := h.at(i).spectrum[band]; p < min {
				min = p
			}
		}
		if min > s.noiseThreshold[band] {
			s.noiseThreshold[band] = min
		}
	}
}

// finishTrack combines the track just profiled into means, weighted by how
// many windows have been seen so far, then resets sums and trackWindows to
// zero: after this call sums is all zeros, trackWindows is zero, and means
// holds the combined mean across every window any profile_noise call has
// accumulated to date.
func (s *statistics) finishTrack() {
	if s.trackWindows > 0 {
		prior := float64(s.totalWindows)
		denom := prior + float64(s.trackWindows)
		for i, sum := range s.sums {
			s.means[i] = (s.means[i]*prior + sum) / denom
			s.sums[i] = 0
		}
	}
	s.totalWindows += s.trackWindows
	s.trackWindows = 0
}

// bands returns the number of frequency bands this accumulator tracks.
func (s *statistics) bands() int { return len(s.sums) }
