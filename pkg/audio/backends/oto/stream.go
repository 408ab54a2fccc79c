package oto

import (
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/silverglade-labs/stereodenoise/pkg/audio/types"
)

// stream adapts an oto.Player to types.PlayStream.
type stream struct {
	player *oto.Player
}

var _ types.PlayStream = (*stream)(nil)

func newStream(player *oto.Player) *stream {
	return &stream{player: player}
}

func (s *stream) Close() error {
	return s.player.Close()
}

// Drain blocks until oto has played out everything already buffered. oto
// has no blocking drain call, so this polls BufferedSize.
func (s *stream) Drain() error {
	for s.player.BufferedSize() > 0 {
		time.Sleep(10 * time.Millisecond)
	}
	return nil
}
