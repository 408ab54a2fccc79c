package oto

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

var (
	otoCtx     *oto.Context
	otoCtxOnce sync.Once
	otoCtxErr  error
)

// getOtoContext lazily creates the process-wide oto context. oto only
// supports one context per process, so every PlayerPCM shares this one and
// PlayPCM is responsible for resampling anything that doesn't match its
// fixed SampleRate/Channels/Format.
func getOtoContext() (*oto.Context, error) {
	otoCtxOnce.Do(func() {
		ctx, readyChan, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   int(SampleRate),
			ChannelCount: int(Channels),
			Format:       oto.FormatFloat32LE,
		})
		if err != nil {
			otoCtxErr = fmt.Errorf("unable to create an oto context: %w", err)
			return
		}
		<-readyChan
		otoCtx = ctx
	})
	return otoCtx, otoCtxErr
}
