package denoise

// InputTrack is an external sample source of known length, one channel at
// a time. The engine operates on a single channel; a stereo caller is
// responsible for de-interleaving before calling ProfileNoise/ReduceNoise
// once per channel.
type InputTrack interface {
	// Length returns the total number of samples in the track.
	Length() int
	// Read copies up to len(buf) samples into buf and returns how many
	// were written. A return of 0 signals end of track.
	Read(buf []float32) (int, error)
}

// OutputTrack is an external sample sink that accumulates denoised
// samples in order.
type OutputTrack interface {
	// Append adds buf (or its first n samples, if n < len(buf)) to the
	// track.
	Append(buf []float32, n int) error
	// SetEnd truncates the track to exactly length samples, discarding
	// the overlap-add tail the engine always produces.
	SetEnd(length int) error
}

// SliceInputTrack adapts an in-memory []float32 to InputTrack.
type SliceInputTrack struct {
	Samples []float32
	pos     int
}

// NewSliceInputTrack returns an InputTrack that reads samples in order.
func NewSliceInputTrack(samples []float32) *SliceInputTrack {
	return &SliceInputTrack{Samples: samples}
}

func (t *SliceInputTrack) Length() int { return len(t.Samples) }

func (t *SliceInputTrack) Read(buf []float32) (int, error) {
	n := copy(buf, t.Samples[t.pos:])
	t.pos += n
	return n, nil
}

// SliceOutputTrack accumulates denoised samples into an in-memory slice.
type SliceOutputTrack struct {
	Samples []float32
}

func (t *SliceOutputTrack) Append(buf []float32, n int) error {
	t.Samples = append(t.Samples, buf[:n]...)
	return nil
}

func (t *SliceOutputTrack) SetEnd(length int) error {
	if length < len(t.Samples) {
		t.Samples = t.Samples[:length]
	}
	return nil
}
