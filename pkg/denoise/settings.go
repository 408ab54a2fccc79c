// Package denoise implements a two-pass spectral noise-reduction engine:
// a profile pass gathers per-band power statistics from reference noise,
// and a reduce pass uses those statistics to gate a short-time Fourier
// transform of a target signal before reassembling it with overlap-add.
package denoise

import "math"

// WindowType selects the analysis/synthesis window pair and the minimum
// number of overlapping steps it requires per window.
type WindowType int

const (
	RectHann WindowType = iota
	HannRect
	HannHann
	BlackmanHann
	HammingRect
	HammingHann
	HammingInvHamming

	nWindowTypes
)

type windowTypeInfo struct {
	minSteps        int
	inCoefficients  [3]float64
	outCoefficients [3]float64
	productConstant float64
}

var windowTypesInfo = [nWindowTypes]windowTypeInfo{
	RectHann:          {2, [3]float64{1, 0, 0}, [3]float64{0.5, -0.5, 0}, 0.5},
	HannRect:          {2, [3]float64{0.5, -0.5, 0}, [3]float64{1, 0, 0}, 0.5},
	HannHann:          {4, [3]float64{0.5, -0.5, 0}, [3]float64{0.5, -0.5, 0}, 0.375},
	BlackmanHann:      {4, [3]float64{0.42, -0.5, 0.08}, [3]float64{0.5, -0.5, 0}, 0.335},
	HammingRect:       {2, [3]float64{0.54, -0.46, 0}, [3]float64{1, 0, 0}, 0.54},
	HammingHann:       {4, [3]float64{0.54, -0.46, 0}, [3]float64{0.5, -0.5, 0}, 0.385},
	HammingInvHamming: {2, [3]float64{0.54, -0.46, 0}, [3]float64{1, 0, 0}, 1.0},
}

// ClassificationMethod selects how the classifier decides whether a band,
// viewed across a neighborhood of history frames, is noise.
type ClassificationMethod int

const (
	SecondGreatest ClassificationMethod = iota
	Median
	Legacy
)

// OutputMode selects what ReduceNoise emits: the cleaned signal, the
// isolated noise, or the residue that reduction would otherwise remove.
type OutputMode int

const (
	ReduceNoiseMode OutputMode = iota
	IsolateNoiseMode
	LeaveResidueMode
)

const minSignalTime = 0.05 // seconds, used by the Legacy classification method

const (
	defaultWindowSizeChoice     = 8
	defaultStepsPerWindowChoice = 1
)

// Settings is the immutable configuration consumed by the engine. Zero
// value is not valid; use NewSettings to get the documented defaults.
type Settings struct {
	WindowType           WindowType
	WindowSizeChoice     int
	StepsPerWindowChoice int
	ClassificationMethod ClassificationMethod

	NewSensitivity float64 // base-10 log
	OldSensitivity float64 // base-10 log over power

	NoiseGainDB float64 // positive dB; residual floor is -NoiseGainDB

	AttackTime  float64 // seconds
	ReleaseTime float64 // seconds

	FreqSmoothingBands int

	OutputMode OutputMode

	SampleRate float64

	// BinLow/BinHigh restrict IsolateNoiseMode to a sub-band. Zero value
	// for both means "the whole spectrum" (resolved at Worker construction).
	BinLow  int
	BinHigh int
}

// NewSettings returns Settings populated with the documented defaults.
func NewSettings(sampleRate float64) Settings {
	return Settings{
		WindowType:           HannHann,
		WindowSizeChoice:     defaultWindowSizeChoice,
		StepsPerWindowChoice: defaultStepsPerWindowChoice,
		ClassificationMethod: SecondGreatest,
		NewSensitivity:       6.0,
		OldSensitivity:       0.0,
		NoiseGainDB:          25.0,
		AttackTime:           0.02,
		ReleaseTime:          0.10,
		FreqSmoothingBands:   0,
		OutputMode:           ReduceNoiseMode,
		SampleRate:           sampleRate,
	}
}

// WindowSize returns the STFT window length in samples.
func (s Settings) WindowSize() int {
	return 1 << (s.WindowSizeChoice + 3)
}

// StepsPerWindow returns the hop count per window (window_size / step_size).
func (s Settings) StepsPerWindow() int {
	return 1 << (s.StepsPerWindowChoice + 1)
}

func (s Settings) stepSize() int {
	return s.WindowSize() / s.StepsPerWindow()
}

// validate checks the invariants in §3/§7 of the spec that can be checked
// without constructing FFT tables. It does not check StepsPerWindow against
// the window type's minimum step requirement in isolation from WindowSize,
// since that check needs WindowSize() to be a power of two first.
func (s Settings) validate() error {
	ws := s.WindowSize()
	if ws <= 0 || ws&(ws-1) != 0 {
		return newInvalidSettings("window size %d is not a power of two", ws)
	}
	spw := s.StepsPerWindow()
	if int(s.WindowType) < 0 || int(s.WindowType) >= int(nWindowTypes) {
		return newInvalidSettings("unknown window type %d", s.WindowType)
	}
	info := windowTypesInfo[s.WindowType]
	if spw < info.minSteps {
		return newInvalidSettings("steps per window %d below minimum %d for window type %d", spw, info.minSteps, s.WindowType)
	}
	if ws%spw != 0 {
		return newInvalidSettings("window size %d is not divisible by steps per window %d", ws, spw)
	}
	if s.SampleRate <= 0 || math.IsNaN(s.SampleRate) {
		return newInvalidSettings("sample rate must be positive, got %v", s.SampleRate)
	}
	if s.NoiseGainDB <= 0 || math.IsNaN(s.NoiseGainDB) {
		return newInvalidSettings("noise gain dB must be positive, got %v", s.NoiseGainDB)
	}
	if s.AttackTime < 0 || s.ReleaseTime < 0 || math.IsNaN(s.AttackTime) || math.IsNaN(s.ReleaseTime) {
		return newInvalidSettings("attack/release time must be non-negative, got %v/%v", s.AttackTime, s.ReleaseTime)
	}
	if s.FreqSmoothingBands < 0 {
		return newInvalidSettings("frequency smoothing bands must be non-negative, got %d", s.FreqSmoothingBands)
	}
	if s.ClassificationMethod == Legacy && !legacyMethodAvailable {
		return ErrUnsupportedMethod
	}
	return nil
}

// legacyMethodAvailable mirrors the original's OLD_METHOD_AVAILABLE compile
// flag as a runtime constant, per the original spec's §9 design note: the
// Go port exposes Legacy as a runtime enum variant rather than gating it at
// compile time, but still fails fast if it were ever turned off.
const legacyMethodAvailable = true
