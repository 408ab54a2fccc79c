package types

import (
	"context"
	"io"
)

// RecorderPCM is the backend-specific half of a PCM recorder: something
// that can check it is reachable and open a capture stream writing raw PCM
// bytes to writer.
type RecorderPCM interface {
	io.Closer
	Ping(ctx context.Context) error
	RecordPCM(
		ctx context.Context,
		sampleRate SampleRate,
		channels Channel,
		format PCMFormat,
		writer io.Writer,
	) (RecordStream, error)
}
