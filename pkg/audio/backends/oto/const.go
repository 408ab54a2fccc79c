package oto

import (
	"time"

	"github.com/silverglade-labs/stereodenoise/pkg/audio/types"
)

// oto's player context cannot be reopened with different parameters once
// created, so every PlayPCM call is resampled to the fixed SampleRate,
// Channels and Format if it asks for anything else. A BufferSize other than
// this one is rejected with an error.
const (
	SampleRate = types.SampleRate(48000)
	Channels   = types.Channel(2)
	Format     = types.PCMFormatFloat32LE
	BufferSize = 100 * time.Millisecond
)
