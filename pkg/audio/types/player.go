package types

import (
	"context"
	"io"
	"time"
)

// PlayerPCM is the backend-specific half of a PCM player: something that
// can check it is reachable and open a playback stream. audio.Player wraps
// one of these with the format-agnostic Vorbis convenience path.
type PlayerPCM interface {
	io.Closer
	Ping(ctx context.Context) error
	PlayPCM(
		ctx context.Context,
		sampleRate SampleRate,
		channels Channel,
		format PCMFormat,
		bufferSize time.Duration,
		reader io.Reader,
	) (PlayStream, error)
}
