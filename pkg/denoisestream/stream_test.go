package denoisestream

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/silverglade-labs/stereodenoise/pkg/denoise"
)

func newProfiledEngine(t *testing.T) *denoise.Engine {
	t.Helper()
	settings := denoise.NewSettings(8000)
	settings.WindowSizeChoice = 4 // window size 128
	engine, err := denoise.NewEngine(settings)
	require.NoError(t, err)
	require.NoError(t, engine.ProfileNoise(denoise.NewSliceInputTrack(make([]float32, 4096))))
	return engine
}

func TestStreamReducesSilenceToSilenceAndReportsSilentBalance(t *testing.T) {
	left := newProfiledEngine(t)
	right := newProfiledEngine(t)

	frames := 512
	input := make([]byte, frames*8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, err := New(ctx, &blockingReader{data: input}, left, right, StreamConfig{
		InputBufferSize:  1 << 16,
		OutputBufferSize: 1 << 16,
		BlockSize:        64,
		GateThresholdDB:  -50,
	})
	require.NoError(t, err)

	out := make([]byte, 64*8)
	deadline := time.Now().Add(5 * time.Second)
	total := 0
	for total < len(out) && time.Now().Before(deadline) {
		n, err := s.Read(out[total:])
		require.NoError(t, err)
		total += n
	}
	require.Equal(t, len(out), total)
	for _, b := range out {
		require.Equal(t, byte(0), b)
	}
	require.True(t, s.Balance().Silent)
}

// blockingReader serves data once, then blocks forever instead of
// returning io.EOF, so the reader pump does not tear the stream down
// mid-test while assertions are still draining the output buffer.
type blockingReader struct {
	data []byte
	done bool
	ch   chan struct{}
}

func (r *blockingReader) Read(p []byte) (int, error) {
	if !r.done {
		r.done = true
		n := copy(p, r.data)
		return n, nil
	}
	if r.ch == nil {
		r.ch = make(chan struct{})
	}
	<-r.ch
	return 0, io.EOF
}
