// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"time"
)

// Sample is a single normalized amplitude in [-1, 1].
type Sample = float32

// Format identifies the container/codec a stream was decoded from.
type Format int

const (
	FormatUnknown Format = iota
	Wav
	Ogg
	Mp3
	Flac
	Aiff
)

func (f Format) String() string {
	switch f {
	case Wav:
		return "WAV"
	case Ogg:
		return "OGG"
	case Mp3:
		return "MP3"
	case Flac:
		return "FLAC"
	case Aiff:
		return "AIFF"
	default:
		return "UNKNOWN"
	}
}

// Info describes an opened stream. It is produced once and never changes.
type Info struct {
	SampleRate int
	Channels   int
	Format     Format

	// Duration is only meaningful when HasDuration is true.
	Duration    time.Duration
	HasDuration bool
}

// Frames returns the number of frames implied by Duration, or 0 when the
// duration is unknown.
func (i Info) Frames() int64 {
	if !i.HasDuration || i.SampleRate <= 0 {
		return 0
	}

	return int64(i.Duration/time.Millisecond) * int64(i.SampleRate) / 1000
}

func (i Info) String() string {
	dur := "unknown"
	if i.HasDuration {
		dur = i.Duration.String()
	}

	return fmt.Sprintf("%s %dHz %dch duration=%s", i.Format, i.SampleRate, i.Channels, dur)
}

// DurationFromFrames converts a per-channel frame count at rate into a
// millisecond-granular duration.
func DurationFromFrames(frames int64, rate int) time.Duration {
	if rate <= 0 || frames <= 0 {
		return 0
	}

	return time.Duration(frames*1000/int64(rate)) * time.Millisecond
}

// MeasuredDuration converts an interleaved sample count into a duration
// using the channel count and rate from info.
func MeasuredDuration(samples int64, info Info) time.Duration {
	if info.Channels <= 0 {
		return 0
	}

	return DurationFromFrames(samples/int64(info.Channels), info.SampleRate)
}

// Source is a lazy, finite sequence of interleaved samples.
//
// Next returns io.EOF once the sequence is exhausted. Any other error is
// terminal: it is returned once, and every following call returns io.EOF.
// A Source never restarts.
type Source interface {
	Info() Info
	Next() (Sample, error)

	// Close releases decoder resources. It does not close the byte source
	// the Source was opened from.
	Close() error
}

// ReadSamples fills dst from src and returns the number of samples written.
// len(dst) must be a multiple of the channel count. When the sequence ends
// n may be non-zero alongside io.EOF.
func ReadSamples(src Source, dst []Sample) (int, error) {
	channels := src.Info().Channels
	if channels <= 0 || len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}

	for i := range dst {
		s, err := src.Next()
		if err != nil {
			return i, err
		}
		dst[i] = s
	}

	return len(dst), nil
}

// Samples returns an iterator over the remaining samples of src. Iteration
// stops after the first error; io.EOF is not yielded.
func Samples(src Source) iter.Seq2[Sample, error] {
	return func(yield func(Sample, error) bool) {
		for {
			s, err := src.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(s, err) || err != nil {
				return
			}
		}
	}
}

// Drain consumes src to the end and returns how many samples it produced.
func Drain(src Source) (int64, error) {
	var count int64
	for _, err := range Samples(src) {
		if err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}
