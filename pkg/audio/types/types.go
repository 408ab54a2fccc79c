// Package types holds the PCM format vocabulary shared by the audio
// backends, the registry, and the resampler, kept in its own leaf package
// so that backend implementations never need to import the audio package
// itself.
package types

// SampleRate is a PCM stream's sample rate in Hz.
type SampleRate int

// Channel is a PCM stream's channel count.
type Channel int

// PCMFormat identifies a PCM sample encoding: signedness, width, and byte
// order.
type PCMFormat int

const (
	PCMFormatU8 PCMFormat = iota
	PCMFormatS16LE
	PCMFormatS16BE
	PCMFormatS24LE
	PCMFormatS24BE
	PCMFormatS32LE
	PCMFormatS32BE
	PCMFormatS64LE
	PCMFormatS64BE
	PCMFormatFloat32LE
	PCMFormatFloat32BE
	PCMFormatFloat64LE
	PCMFormatFloat64BE
)

// Size returns the number of bytes one sample of this format occupies.
func (f PCMFormat) Size() int {
	switch f {
	case PCMFormatU8:
		return 1
	case PCMFormatS16LE, PCMFormatS16BE:
		return 2
	case PCMFormatS24LE, PCMFormatS24BE:
		return 3
	case PCMFormatS32LE, PCMFormatS32BE, PCMFormatFloat32LE, PCMFormatFloat32BE:
		return 4
	case PCMFormatS64LE, PCMFormatS64BE, PCMFormatFloat64LE, PCMFormatFloat64BE:
		return 8
	default:
		return 0
	}
}

func (f PCMFormat) String() string {
	switch f {
	case PCMFormatU8:
		return "u8"
	case PCMFormatS16LE:
		return "s16le"
	case PCMFormatS16BE:
		return "s16be"
	case PCMFormatS24LE:
		return "s24le"
	case PCMFormatS24BE:
		return "s24be"
	case PCMFormatS32LE:
		return "s32le"
	case PCMFormatS32BE:
		return "s32be"
	case PCMFormatS64LE:
		return "s64le"
	case PCMFormatS64BE:
		return "s64be"
	case PCMFormatFloat32LE:
		return "float32le"
	case PCMFormatFloat32BE:
		return "float32be"
	case PCMFormatFloat64LE:
		return "float64le"
	case PCMFormatFloat64BE:
		return "float64be"
	default:
		return "unknown"
	}
}
