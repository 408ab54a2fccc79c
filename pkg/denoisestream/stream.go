// Package denoisestream adapts the one-shot denoise.Engine into a
// continuous io.Reader over live stereo PCM, decoupling the caller's
// read cadence from the engine's internal block size.
package denoisestream

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/iamcalledrob/circular"
	"github.com/xaionaro-go/observability"

	"github.com/silverglade-labs/stereodenoise/pkg/audio"
	"github.com/silverglade-labs/stereodenoise/pkg/audio/planar"
	"github.com/silverglade-labs/stereodenoise/pkg/balance"
	"github.com/silverglade-labs/stereodenoise/pkg/denoise"
)

const bytesPerSample = 4 // float32, little-endian

// StreamConfig sizes the two circular buffers sitting between the
// caller's Read cadence and the processing pump's block cadence.
type StreamConfig struct {
	InputBufferSize  uint
	OutputBufferSize uint
	// BlockSize is the number of stereo frames (samples per channel)
	// processed through the engines per pump iteration.
	BlockSize int
	// GateThresholdDB gates a processed block to silence when both
	// channels' RMS falls below it; see balance.Gate.
	GateThresholdDB float64
}

// Stream reduces noise from a live stereo float32LE PCM input, one block
// at a time, through a pair of mono denoise.Engines (left, right), and
// republishes the stereo balance reading for each block it processes.
type Stream struct {
	left  *denoise.Engine
	right *denoise.Engine
	cfg   StreamConfig

	inputBufferLocker sync.Mutex
	inputBuffer       *circular.Buffer

	outputBufferLocker sync.Mutex
	outputBuffer       *circular.Buffer

	balanceLocker sync.Mutex
	balance       balance.Reading

	resultError error
	readCtx     context.Context

	readProgressedCh    chan struct{}
	processProgressedCh chan struct{}
	outputProgressedCh  chan struct{}
}

var _ io.Reader = (*Stream)(nil)

// New starts the reader and processing pumps and returns a Stream ready
// to be drained with Read. left and right must already have a noise
// profile (ProfileNoise called at least once) before the first block is
// processed.
func New(
	ctx context.Context,
	input io.Reader,
	left, right *denoise.Engine,
	cfg StreamConfig,
) (*Stream, error) {
	if cfg.BlockSize <= 0 {
		return nil, fmt.Errorf("block size must be positive, got %d", cfg.BlockSize)
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &Stream{
		left:         left,
		right:        right,
		cfg:          cfg,
		inputBuffer:  circular.NewBuffer(int(cfg.InputBufferSize)),
		outputBuffer: circular.NewBuffer(int(cfg.OutputBufferSize)),
		readCtx:      ctx,

		readProgressedCh:    make(chan struct{}),
		processProgressedCh: make(chan struct{}),
		outputProgressedCh:  make(chan struct{}),
	}
	observability.Go(ctx, func() {
		defer cancel()
		err := s.readerLoop(ctx, input)
		s.inputBufferLocker.Lock()
		defer s.inputBufferLocker.Unlock()
		if err != nil && s.resultError == nil {
			s.resultError = fmt.Errorf("got an error from the reader loop: %w", err)
		}
	})
	observability.Go(ctx, func() {
		defer cancel()
		err := s.processLoop(ctx)
		s.inputBufferLocker.Lock()
		defer s.inputBufferLocker.Unlock()
		if err != nil && s.resultError == nil {
			s.resultError = fmt.Errorf("got an error from the process loop: %w", err)
		}
	})
	return s, nil
}

func (s *Stream) readerLoop(ctx context.Context, input io.Reader) (_err error) {
	logger.Tracef(ctx, "readerLoop")
	defer func() { logger.Tracef(ctx, "/readerLoop: %v", _err) }()

	readBuf := make([]byte, 65536)
	frameSize := 2 * bytesPerSample
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := input.Read(readBuf)
		if err != nil {
			return fmt.Errorf("unable to read the input: %w", err)
		}
		if n%frameSize != 0 {
			return fmt.Errorf("received %d bytes, not a multiple of the stereo frame size %d", n, frameSize)
		}

		if err := func() error {
			s.inputBufferLocker.Lock()
			defer s.inputBufferLocker.Unlock()
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				w, err := s.inputBuffer.Write(readBuf[:n])
				if err != nil {
					if errors.Is(err, circular.ErrNoSpace) {
						s.waitForProcessProgressed(ctx)
						continue
					}
					return fmt.Errorf("unable to write to the input buffer: %w", err)
				}
				if w != n {
					return fmt.Errorf("wrote != read: %d != %d", w, n)
				}
				break
			}
			var oldCh chan struct{}
			oldCh, s.readProgressedCh = s.readProgressedCh, make(chan struct{})
			close(oldCh)
			return nil
		}(); err != nil {
			return err
		}
	}
}

func (s *Stream) waitForProcessProgressed(ctx context.Context) {
	ch := s.processProgressedCh
	s.inputBufferLocker.Unlock()
	defer s.inputBufferLocker.Lock()
	select {
	case <-ctx.Done():
	case <-ch:
	}
}

func (s *Stream) processLoop(ctx context.Context) (_err error) {
	logger.Tracef(ctx, "processLoop")
	defer func() { logger.Tracef(ctx, "/processLoop: %v", _err) }()

	blockBytes := s.cfg.BlockSize * 2 * bytesPerSample
	inputBuf := make([]byte, blockBytes)
	leftBlock := make([]float32, s.cfg.BlockSize)
	rightBlock := make([]float32, s.cfg.BlockSize)
	outputBuf := make([]byte, blockBytes)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := s.fillBlock(ctx, inputBuf); err != nil {
			return err
		}
		deinterleave(inputBuf, leftBlock, rightBlock)

		leftOut, err := reduceChannel(s.left, leftBlock)
		if err != nil {
			return fmt.Errorf("unable to reduce the left channel: %w", err)
		}
		rightOut, err := reduceChannel(s.right, rightBlock)
		if err != nil {
			return fmt.Errorf("unable to reduce the right channel: %w", err)
		}

		block, silent := balance.Gate(balance.StereoBlock{Left: leftOut, Right: rightOut}, s.cfg.GateThresholdDB)
		reading := balance.Reading{AngleRadians: balance.Angle(block), Silent: silent}
		s.publishBalance(reading)

		interleave(block.Left, block.Right, outputBuf)
		if err := s.writeOutput(ctx, outputBuf); err != nil {
			return err
		}
	}
}

func (s *Stream) fillBlock(ctx context.Context, buf []byte) error {
	received := 0
	for received < len(buf) {
		var waitCh chan struct{}
		if err := func() error {
			s.inputBufferLocker.Lock()
			defer s.inputBufferLocker.Unlock()
			n, err := s.inputBuffer.Read(buf[received:])
			waitCh = s.readProgressedCh
			if err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("unable to read from the input buffer: %w", err)
			}
			received += n
			var oldCh chan struct{}
			oldCh, s.processProgressedCh = s.processProgressedCh, make(chan struct{})
			close(oldCh)
			return nil
		}(); err != nil {
			return err
		}
		if received >= len(buf) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-waitCh:
		}
	}
	return nil
}

func (s *Stream) writeOutput(ctx context.Context, buf []byte) error {
	s.outputBufferLocker.Lock()
	defer s.outputBufferLocker.Unlock()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		w, err := s.outputBuffer.Write(buf)
		if err != nil {
			if errors.Is(err, circular.ErrNoSpace) {
				s.waitForOutputRead(ctx)
				continue
			}
			return fmt.Errorf("unable to write to the output buffer: %w", err)
		}
		if w != len(buf) {
			return fmt.Errorf("wrote != read: %d != %d", w, len(buf))
		}
		var oldCh chan struct{}
		oldCh, s.outputProgressedCh = s.outputProgressedCh, make(chan struct{})
		close(oldCh)
		return nil
	}
}

func (s *Stream) waitForOutputRead(ctx context.Context) {
	ch := s.outputProgressedCh
	s.outputBufferLocker.Unlock()
	defer s.outputBufferLocker.Lock()
	select {
	case <-ctx.Done():
	case <-ch:
	}
}

// Read drains denoised, re-interleaved stereo PCM from the output buffer.
func (s *Stream) Read(p []byte) (_ret int, _err error) {
	s.outputBufferLocker.Lock()
	defer s.outputBufferLocker.Unlock()
	if s.resultError != nil {
		return 0, s.resultError
	}

	for {
		n, err := s.outputBuffer.Read(p)
		if err == nil {
			return n, nil
		}
		if !errors.Is(err, io.EOF) {
			return n, err
		}
		ch := s.outputProgressedCh
		s.outputBufferLocker.Unlock()
		select {
		case <-s.readCtx.Done():
			s.outputBufferLocker.Lock()
			return 0, s.readCtx.Err()
		case <-ch:
		}
		s.outputBufferLocker.Lock()
	}
}

// Balance returns the most recently published balance reading.
func (s *Stream) Balance() balance.Reading {
	s.balanceLocker.Lock()
	defer s.balanceLocker.Unlock()
	return s.balance
}

func (s *Stream) publishBalance(r balance.Reading) {
	s.balanceLocker.Lock()
	defer s.balanceLocker.Unlock()
	s.balance = r
}

func reduceChannel(engine *denoise.Engine, block []float32) ([]float32, error) {
	in := denoise.NewSliceInputTrack(block)
	out := &denoise.SliceOutputTrack{}
	if err := engine.ReduceNoise(in, out); err != nil {
		return nil, err
	}
	return out.Samples, nil
}

// deinterleave splits interleaved stereo float32LE bytes into two planar
// per-channel blocks, reusing the teacher's byte-shuffle (rather than a
// hand-rolled per-sample loop) for the interleaved/planar conversion.
func deinterleave(buf []byte, left, right []float32) {
	planarBuf := make([]byte, len(buf))
	if err := planar.Planarize(audio.Channel(2), bytesPerSample, planarBuf, buf); err != nil {
		panic(err) // buf is always a whole number of stereo frames by construction
	}
	half := len(planarBuf) / 2
	for i := range left {
		left[i] = math.Float32frombits(binary.LittleEndian.Uint32(planarBuf[i*bytesPerSample:]))
		right[i] = math.Float32frombits(binary.LittleEndian.Uint32(planarBuf[half+i*bytesPerSample:]))
	}
}

func interleave(left, right []float32, buf []byte) {
	planarBuf := make([]byte, len(buf))
	half := len(planarBuf) / 2
	for i := range left {
		binary.LittleEndian.PutUint32(planarBuf[i*bytesPerSample:], math.Float32bits(left[i]))
		binary.LittleEndian.PutUint32(planarBuf[half+i*bytesPerSample:], math.Float32bits(right[i]))
	}
	if err := planar.Unplanarize(audio.Channel(2), bytesPerSample, buf, planarBuf); err != nil {
		panic(err)
	}
}
