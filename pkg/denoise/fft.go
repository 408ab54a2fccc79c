package denoise

import (
	"math"
	"math/cmplx"
)

// FFT provides a real-input forward/inverse Fourier transform of a
// power-of-two window size, used by the frame engine to move between the
// time domain and a packed spectral representation.
//
// Forward leaves its buffer holding: buf[0] the real DC bin, buf[1] the
// real Nyquist bin, and for every other natural bin k in [1, SpectrumSize()-1)
// the pair (real_k, imag_k) at offset BitReversed()[k] in the buffer rather
// than at its natural offset 2k. Inverse expects a buffer in that same
// layout. BitReversed is exposed so the frame engine can write gain-adjusted
// bins back into the same slots before calling Inverse.
type FFT struct {
	n           int
	half        int
	bitReversed []int
	permutation []int
}

// NewFFT constructs an FFT for the given window size, which must be a
// power of two of at least 2.
func NewFFT(windowSize int) (*FFT, error) {
	if windowSize < 2 || windowSize&(windowSize-1) != 0 {
		return nil, newInvalidSettings("fft size %d is not a supported power of two", windowSize)
	}

	n := windowSize
	half := n / 2

	bits := 0
	for (1 << bits) < half {
		bits++
	}
	bitReversed := make([]int, half)
	for i := 0; i < half; i++ {
		bitReversed[i] = 2 * reverseBits(i, bits)
	}

	fullBits := 0
	for (1 << fullBits) < n {
		fullBits++
	}
	permutation := make([]int, n)
	for i := 0; i < n; i++ {
		permutation[i] = reverseBits(i, fullBits)
	}

	return &FFT{n: n, half: half, bitReversed: bitReversed, permutation: permutation}, nil
}

// Size returns the window size N this FFT was constructed for.
func (f *FFT) Size() int { return f.n }

// SpectrumSize returns N/2 + 1, the number of independent real-input FFT
// bins including DC and Nyquist.
func (f *FFT) SpectrumSize() int { return f.half + 1 }

// BitReversed returns the permutation table mapping a natural bin index
// k in [0, N/2) to its offset in the packed buffer used by Forward/Inverse.
func (f *FFT) BitReversed() []int { return f.bitReversed }

func reverseBits(x, bits int) int {
	r := 0
	for i := 0; i < bits; i++ {
		r = (r << 1) | (x & 1)
		x >>= 1
	}
	return r
}

// Forward computes the real-input FFT of buf (length N, time domain) and
// overwrites buf in place with the packed spectral layout described above.
func (f *FFT) Forward(buf []float64) {
	n := f.n
	data := make([]complex128, n)
	for i, v := range buf {
		data[i] = complex(v, 0)
	}
	f.transform(data, false)

	buf[0] = real(data[0])
	buf[1] = real(data[f.half])
	for k := 1; k < f.half; k++ {
		off := f.bitReversed[k]
		buf[off] = real(data[k])
		buf[off+1] = imag(data[k])
	}
}

// Inverse undoes Forward: buf must hold the packed spectral layout, and is
// overwritten with N time-domain samples.
func (f *FFT) Inverse(buf []float64) {
	n := f.n
	data := make([]complex128, n)
	data[0] = complex(buf[0], 0)
	data[f.half] = complex(buf[1], 0)
	for k := 1; k < f.half; k++ {
		off := f.bitReversed[k]
		data[k] = complex(buf[off], buf[off+1])
		data[n-k] = cmplx.Conj(data[k])
	}
	f.transform(data, true)
	for i := range buf {
		buf[i] = real(data[i])
	}
}

// transform runs an in-place iterative radix-2 Cooley-Tukey FFT over data
// (length N), forward unless inverse is true. Inverse output is scaled by
// 1/N.
func (f *FFT) transform(data []complex128, inverse bool) {
	n := f.n
	for i, j := range f.permutation {
		if j > i {
			data[i], data[j] = data[j], data[i]
		}
	}

	sign := -1.0
	if inverse {
		sign = 1.0
	}

	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		angleStep := sign * 2 * math.Pi / float64(size)
		wn := cmplx.Exp(complex(0, angleStep))
		for start := 0; start < n; start += size {
			w := complex(1.0, 0.0)
			for k := 0; k < half; k++ {
				t := w * data[start+k+half]
				data[start+k+half] = data[start+k] - t
				data[start+k] = data[start+k] + t
				w *= wn
			}
		}
	}

	if inverse {
		invN := complex(1/float64(n), 0)
		for i := range data {
			data[i] *= invN
		}
	}
}
