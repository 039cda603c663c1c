// SPDX-License-Identifier: EPL-2.0

package playback

import "fmt"

// SampleFormat is the encoding of samples in a device buffer.
type SampleFormat int

const (
	SampleUnknown SampleFormat = iota
	SampleU8
	SampleS16
	SampleS24
	SampleS32
	SampleF32
)

func (f SampleFormat) String() string {
	switch f {
	case SampleU8:
		return "u8"
	case SampleS16:
		return "s16"
	case SampleS24:
		return "s24"
	case SampleS32:
		return "s32"
	case SampleF32:
		return "f32"
	default:
		return "unknown"
	}
}

// Size returns the bytes one sample occupies, or 0 for SampleUnknown.
func (f SampleFormat) Size() int {
	switch f {
	case SampleU8:
		return 1
	case SampleS16:
		return 2
	case SampleS24:
		return 3
	case SampleS32, SampleF32:
		return 4
	default:
		return 0
	}
}

// StreamConfig describes the buffers a device asks its callback to fill.
type StreamConfig struct {
	Channels   int
	SampleRate int
	Format     SampleFormat
}

// FrameSize returns the bytes in one interleaved frame.
func (c StreamConfig) FrameSize() int { return c.Channels * c.Format.Size() }

func (c StreamConfig) String() string {
	return fmt.Sprintf("%s %dHz %dch", c.Format, c.SampleRate, c.Channels)
}

func (c StreamConfig) validate() error {
	if c.Channels < 1 || c.SampleRate < 1 {
		return fmt.Errorf("%w: %s", ErrInvalidStreamConfig, c)
	}
	if c.Format.Size() == 0 {
		return fmt.Errorf("%w: %s", ErrUnsupportedSampleFormat, c.Format)
	}
	return nil
}

// Callback fills out with whole interleaved frames in the stream's format.
// It is invoked from the device's real-time thread and must not block.
type Callback func(out []byte)

// CallbackFactory builds the data callback once the device knows its
// native configuration.
type CallbackFactory func(cfg StreamConfig) (Callback, error)

// Device opens output streams.
type Device interface {
	// Open picks the device's configuration and calls build with it before
	// any data flows. The returned stream starts paused.
	Open(build CallbackFactory) (Stream, StreamConfig, error)
}

// Stream is an open output stream. Its methods are called from a single
// goroutine.
type Stream interface {
	Play() error
	Pause() error
	Close() error
}
