package main

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"time"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"

	"github.com/silverglade-labs/stereodenoise/pkg/audio"
	_ "github.com/silverglade-labs/stereodenoise/pkg/audio/backends/oto"
	_ "github.com/silverglade-labs/stereodenoise/pkg/audio/backends/portaudio"
	"github.com/silverglade-labs/stereodenoise/pkg/denoise"
	"github.com/silverglade-labs/stereodenoise/pkg/denoisestream"
	"github.com/silverglade-labs/stereodenoise/pkg/noiseprofile"
	"github.com/xaionaro-go/observability"
)

func main() {
	loggerLevel := logger.LevelDebug
	pflag.Var(&loggerLevel, "log-level", "Log level")
	noiseDir := pflag.String("noise-profile-dir", "", "directory of tagged WAV noise recordings to learn the profile from")
	noiseTag := pflag.String("noise-tag", "", "only profile against recordings tagged with this (e.g. rain, thunder, night); empty means all")
	sampleRate := pflag.Float64("sample-rate", 48000, "capture/playback sample rate")
	noiseGainDB := pflag.Float64("noise-gain-db", 25, "residual noise floor below unity, in dB")
	gateThresholdDB := pflag.Float64("gate-threshold-db", -50, "silence gate threshold, in dBFS")
	blockSize := pflag.Int("block-size", 2048, "stereo frames processed per denoise block")
	pflag.Parse()

	if *noiseDir == "" {
		panic("missing required flag: --noise-profile-dir")
	}

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.Default = func() logger.Logger {
		return l
	}
	defer belt.Flush(ctx)

	logger.Infof(ctx, "starting...")

	library, err := noiseprofile.Load(*noiseDir)
	assertNoError(err)
	references := library.All()
	if *noiseTag != "" {
		references = library.ByTag(*noiseTag)
	}
	if len(references) == 0 {
		panic(fmt.Errorf("no noise references found under %q matching tag %q", *noiseDir, *noiseTag))
	}

	settings := denoise.NewSettings(*sampleRate)
	settings.NoiseGainDB = *noiseGainDB

	left, err := denoise.NewEngine(settings)
	assertNoError(err)
	right, err := denoise.NewEngine(settings)
	assertNoError(err)
	for _, ref := range references {
		logger.Debugf(ctx, "profiling noise reference %s (tags: %v)", ref.Path, ref.Tags)
		assertNoError(left.ProfileNoise(ref.Channel(0)))
		assertNoError(right.ProfileNoise(ref.Channel(1)))
	}

	recorder := audio.NewRecorderAuto(ctx)
	defer recorder.Close()

	player := audio.NewPlayerAuto(ctx)
	defer player.Close()

	var (
		r io.Reader
		w io.Writer
	)
	r, w = io.Pipe()

	logger.Tracef(ctx, "recorder.RecordPCM")
	streamRecord, err := recorder.RecordPCM(ctx, audio.SampleRate(*sampleRate), 2, audio.PCMFormatFloat32LE, w)
	logger.Tracef(ctx, "/recorder.RecordPCM: %v", err)
	assertNoError(err)
	defer func() {
		assertNoError(streamRecord.Close())
	}()

	logger.Tracef(ctx, "denoisestream.New")
	stream, err := denoisestream.New(ctx, r, left, right, denoisestream.StreamConfig{
		InputBufferSize:  1 << 20,
		OutputBufferSize: 1 << 20,
		BlockSize:        *blockSize,
		GateThresholdDB:  *gateThresholdDB,
	})
	logger.Tracef(ctx, "/denoisestream.New: %v", err)
	assertNoError(err)

	observability.Go(ctx, func(ctx context.Context) {
		logger.Tracef(ctx, "started the balance printer loop")
		t := time.NewTicker(time.Second)
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				reading := stream.Balance()
				logger.Debugf(ctx, "balance: angle=%.3f silent=%v", reading.AngleRadians, reading.Silent)
			}
		}
	})

	logger.Tracef(ctx, "player.PlayPCM")
	streamPlay, err := player.PlayPCM(ctx, audio.SampleRate(*sampleRate), 2, audio.PCMFormatFloat32LE, 300*time.Millisecond, stream)
	logger.Tracef(ctx, "/player.PlayPCM: %v", err)
	assertNoError(err)
	defer streamPlay.Close()

	logger.Infof(ctx, "started (%T -> denoise -> %T)", recorder.RecorderPCM, player.PlayerPCM)
	streamPlay.Drain()
	defer func() {
		assertNoError(streamPlay.Close())
	}()
	<-context.Background().Done()
}

func assertNoError(err error) {
	if err != nil {
		panic(err)
	}
}
