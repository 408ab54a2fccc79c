package audio

import (
	"encoding/binary"
	"io"
	"math"
)

// float32Source is anything that can decode into a slice of float32
// samples, such as an *oggvorbis.Reader.
type float32Source interface {
	Read(p []float32) (int, error)
}

// float32Reader adapts a float32Source into an io.Reader that emits the
// decoded samples as little-endian float32 bytes, matching
// PCMFormatFloat32LE.
type float32Reader struct {
	src      float32Source
	buf      []float32
	leftover []byte
	err      error
}

// newReaderFromFloat32Reader wraps src so it can be consumed as a byte
// stream in PCMFormatFloat32LE.
func newReaderFromFloat32Reader(src float32Source) io.Reader {
	return &float32Reader{src: src}
}

func (r *float32Reader) Read(p []byte) (int, error) {
	if len(r.leftover) == 0 && r.err == nil {
		if r.buf == nil {
			r.buf = make([]float32, 4096)
		}
		n, err := r.src.Read(r.buf)
		if n > 0 {
			encoded := make([]byte, n*4)
			for i := 0; i < n; i++ {
				binary.LittleEndian.PutUint32(encoded[i*4:], math.Float32bits(r.buf[i]))
			}
			r.leftover = encoded
		}
		r.err = err
	}

	n := copy(p, r.leftover)
	r.leftover = r.leftover[n:]
	if n == 0 && len(r.leftover) == 0 && r.err != nil {
		return 0, r.err
	}
	return n, nil
}
