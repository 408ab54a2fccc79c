package denoise

// Engine is the noise-reduction façade: construct one per channel with
// the settings that will govern both its profile and reduce passes, feed
// it noise with ProfileNoise (as many times as there are noise regions to
// learn from), then call ReduceNoise for every track that should be
// denoised against the accumulated profile.
type Engine struct {
	worker   *Worker
	stats    *statistics
	profiled bool
}

// NewEngine validates settings and builds an Engine ready to accept
// ProfileNoise calls.
func NewEngine(settings Settings) (*Engine, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}
	fft, err := NewFFT(settings.WindowSize())
	if err != nil {
		return nil, err
	}
	stats := newStatistics(fft.SpectrumSize())
	worker, err := newWorker(settings, stats)
	if err != nil {
		return nil, err
	}
	return &Engine{worker: worker, stats: stats}, nil
}

// ProfileNoise extends the engine's noise profile with one more reference
// track. It can be called multiple times; every call's windows accumulate
// into the same statistics. It returns ErrProfileTooShort if track yielded
// no complete windows.
func (e *Engine) ProfileNoise(track InputTrack) error {
	_, err := e.worker.Profile(track)
	e.profiled = true
	return err
}

// ReduceNoise runs track through the reduce pipeline, writing denoised
// samples to out and truncating out to track's original length once done.
// It returns ErrNoProfile if ProfileNoise was never called, and
// ErrProfileTooShort if ProfileNoise was called but never accumulated any
// windows.
func (e *Engine) ReduceNoise(track InputTrack, out OutputTrack) error {
	if !e.profiled {
		return ErrNoProfile
	}
	length := track.Length()
	if err := e.worker.Reduce(track, out); err != nil {
		return err
	}
	if err := out.SetEnd(length); err != nil {
		return newTrackError("setEnd", err)
	}
	return nil
}

// Settings returns the settings this engine was constructed with.
func (e *Engine) Settings() Settings { return e.worker.settings }
