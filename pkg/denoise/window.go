package denoise

import "math"

// window holds the precomputed analysis and synthesis coefficients for one
// window size and window type, plus the scale factor that makes overlap-add
// reconstruction unity gain for a steady-state signal.
type window struct {
	analysis  []float64
	synthesis []float64
	// overlapAddScale multiplies every sample written by the synthesis
	// window during the final overlap-add pass.
	overlapAddScale float64
}

// newWindow builds the analysis/synthesis pair for windowType at size n,
// along with the overlap-add scale for the given hop count. RectHann's
// analysis window is the rectangular (all-ones, conceptually "no window")
// case; HammingInvHamming's synthesis window is the reciprocal of its
// analysis window rather than an independent shape.
func newWindow(windowType WindowType, n, stepsPerWindow int) *window {
	info := windowTypesInfo[windowType]

	analysis := make([]float64, n)
	synthesis := make([]float64, n)

	for i := 0; i < n; i++ {
		analysis[i] = raisedCosine(info.inCoefficients, i, n)
	}

	if windowType == HammingInvHamming {
		for i := 0; i < n; i++ {
			synthesis[i] = 1.0 / analysis[i]
		}
	} else {
		for i := 0; i < n; i++ {
			synthesis[i] = raisedCosine(info.outCoefficients, i, n)
		}
	}

	return &window{
		analysis:        analysis,
		synthesis:       synthesis,
		overlapAddScale: 1.0 / (info.productConstant * float64(stepsPerWindow)),
	}
}

// raisedCosine evaluates a 3-term raised-cosine window (the generalized
// Hann/Hamming/Blackman family) at sample i of an n-sample window using
// coefficients [a0, a1, a2] such that w(i) = a0 + a1*cos(theta) + a2*cos(2*theta),
// theta = 2*pi*i/n. A zero coefficient vector (none in windowTypesInfo) would
// degenerate to all-zero; the rectangular case instead uses [1,0,0].
func raisedCosine(coeff [3]float64, i, n int) float64 {
	theta := 2 * math.Pi * float64(i) / float64(n)
	return coeff[0] + coeff[1]*math.Cos(theta) + coeff[2]*math.Cos(2*theta)
}
