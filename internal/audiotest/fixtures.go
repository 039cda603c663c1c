// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"

	"github.com/ik5/vibe/utils"
)

// WAVSpec describes a synthetic WAV file.
type WAVSpec struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Frames     int

	// Float writes IEEE float samples (format tag 3). BitDepth must be 32.
	Float bool

	// Value returns the amplitude in [-1, 1] of a sample. Nil means silence.
	Value func(frame, channel int) float32
}

// Stereo16 is the canonical 16-bit stereo 44.1kHz layout.
func Stereo16(frames int) WAVSpec {
	return WAVSpec{SampleRate: 44100, Channels: 2, BitDepth: 16, Frames: frames, Value: Sine(44100, 440, 0.8)}
}

// Sine returns a Value func for a sine wave of the given amplitude.
func Sine(rate int, freq float64, amp float32) func(frame, channel int) float32 {
	return func(frame, _ int) float32 {
		return amp * float32(math.Sin(2*math.Pi*freq*float64(frame)/float64(rate)))
	}
}

// Encode converts an amplitude into the integer code the go-audio encoder
// expects for spec's bit depth.
func (spec WAVSpec) Encode(v float32) int {
	if spec.Float {
		return int(int32(math.Float32bits(v)))
	}

	switch spec.BitDepth {
	case 8:
		return int(utils.Float32ToUint8(v))
	case 16:
		return int(utils.Float32ToInt16(v))
	case 24:
		return int(utils.Float32ToInt24(v))
	default:
		return int(utils.Float32ToInt32(v))
	}
}

// WriteWAV encodes spec into a new file at path.
func WriteWAV(tb testing.TB, path string, spec WAVSpec) {
	tb.Helper()

	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	format := 1
	if spec.Float {
		format = 3
	}
	enc := wav.NewEncoder(f, spec.SampleRate, spec.BitDepth, spec.Channels, format)

	const chunkFrames = 1024
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: spec.Channels, SampleRate: spec.SampleRate},
		SourceBitDepth: spec.BitDepth,
	}
	for start := 0; start < spec.Frames; start += chunkFrames {
		end := min(start+chunkFrames, spec.Frames)
		buf.Data = buf.Data[:0]
		for frame := start; frame < end; frame++ {
			for ch := range spec.Channels {
				var v float32
				if spec.Value != nil {
					v = spec.Value(frame, ch)
				}
				buf.Data = append(buf.Data, spec.Encode(v))
			}
		}
		if err := enc.Write(buf); err != nil {
			tb.Fatalf("encode %s: %v", path, err)
		}
	}

	if err := enc.Close(); err != nil {
		tb.Fatalf("close encoder %s: %v", path, err)
	}
}

// WAVFile writes spec into tb's temp dir and returns the path.
func WAVFile(tb testing.TB, spec WAVSpec) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "fixture.wav")
	WriteWAV(tb, path, spec)

	return path
}

// WAVBytes returns the encoded bytes of spec.
func WAVBytes(tb testing.TB, spec WAVSpec) []byte {
	tb.Helper()

	data, err := os.ReadFile(WAVFile(tb, spec))
	if err != nil {
		tb.Fatalf("read fixture: %v", err)
	}

	return data
}

// FLACHeader returns a FLAC signature followed by a single STREAMINFO block
// and no audio frames.
func FLACHeader(sampleRate, channels, bitsPerSample int, totalSamples uint64) []byte {
	const streamInfoLen = 34

	out := make([]byte, 0, 4+4+streamInfoLen)
	out = append(out, "fLaC"...)

	// last-metadata-block flag set, block type 0 (STREAMINFO), 24-bit length
	out = append(out, 0x80, 0, 0, streamInfoLen)

	si := make([]byte, streamInfoLen)
	binary.BigEndian.PutUint16(si[0:2], 4096) // min block size
	binary.BigEndian.PutUint16(si[2:4], 4096) // max block size
	// min/max frame size left as 0 (unknown)

	packed := uint64(sampleRate)<<44 |
		uint64(channels-1)<<41 |
		uint64(bitsPerSample-1)<<36 |
		totalSamples&(1<<36-1)
	binary.BigEndian.PutUint64(si[10:18], packed)
	// MD5 left zeroed

	return append(out, si...)
}

// FLACBytes encodes spec as a FLAC stream with verbatim subframes of
// blockSize frames each. BitDepth must be 8, 16 or 24, and Float is ignored.
func FLACBytes(tb testing.TB, spec WAVSpec, blockSize int) []byte {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "fixture.flac")
	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("create %s: %v", path, err)
	}

	info := &meta.StreamInfo{
		SampleRate:    uint32(spec.SampleRate),
		NChannels:     uint8(spec.Channels),
		BitsPerSample: uint8(spec.BitDepth),
	}
	// Close rewrites STREAMINFO with the block sizes, total and MD5.
	enc, err := flac.NewEncoder(f, info)
	if err != nil {
		f.Close()
		tb.Fatalf("flac encoder: %v", err)
	}
	enc.EnablePredictionAnalysis(false)

	for start := 0; start < spec.Frames; start += blockSize {
		n := min(blockSize, spec.Frames-start)
		fr := &frame.Frame{
			Header: frame.Header{
				HasFixedBlockSize: true,
				BlockSize:         uint16(n),
				SampleRate:        uint32(spec.SampleRate),
				Channels:          frame.Channels(spec.Channels - 1),
				BitsPerSample:     uint8(spec.BitDepth),
			},
		}
		for ch := range spec.Channels {
			samples := make([]int32, n)
			for i := range samples {
				var v float32
				if spec.Value != nil {
					v = spec.Value(start+i, ch)
				}
				samples[i] = int32(spec.flacCode(v))
			}
			fr.Subframes = append(fr.Subframes, &frame.Subframe{
				SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
				Samples:   samples,
				NSamples:  n,
			})
		}
		if err := enc.WriteFrame(fr); err != nil {
			enc.Close()
			tb.Fatalf("encode flac frame at %d: %v", start, err)
		}
	}

	if err := enc.Close(); err != nil {
		tb.Fatalf("close flac encoder: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read fixture: %v", err)
	}
	return data
}

// flacCode is Encode for FLAC, where 8-bit samples are signed.
func (spec WAVSpec) flacCode(v float32) int {
	if spec.BitDepth == 8 {
		return spec.Encode(v) - 128
	}
	return spec.Encode(v)
}

// MPEGFrames returns count copies of an MPEG audio frame of size bytes
// that starts with header. The bodies are zero, which Layer III decodes to
// silence.
func MPEGFrames(header uint32, size, count int) []byte {
	out := make([]byte, size*count)
	for i := range count {
		binary.BigEndian.PutUint32(out[i*size:], header)
	}
	return out
}
