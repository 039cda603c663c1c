// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/vibe/audio"
)

// WAVE format tags
const (
	formatPCM        = 1
	formatIEEEFloat  = 3
	formatExtensible = 0xFFFE
)

// blockSamples is how many interleaved samples are pulled from the library
// per refill.
const blockSamples = 4096

// pcmReader is an interface for wav.Decoder to allow testing
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Decoder yields normalized samples from a RIFF/WAVE stream.
type Decoder struct {
	pcm       pcmReader
	info      audio.Info
	bitDepth  int
	normalize func(int) audio.Sample

	buf  *goaudio.IntBuffer
	pos  int
	n    int
	done bool
}

// Open reads the WAV headers from rs and positions it at the first sample.
// On failure rs is left where it was.
func Open(rs io.ReadSeeker) (*Decoder, error) {
	return audio.TryOpen(rs, open)
}

func open(rs io.ReadSeeker) (*Decoder, error) {
	base, err := audio.NewOffsetReadSeeker(rs)
	if err != nil {
		return nil, err
	}

	header := make([]byte, 12)
	if _, err := io.ReadFull(base, header); err != nil {
		return nil, ErrNotWavFile
	}
	if !bytes.HasPrefix(header[:4], []byte("RIFF")) || !bytes.HasPrefix(header[8:12], []byte("WAVE")) {
		return nil, ErrNotWavFile
	}
	if _, err := base.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	dec := wav.NewDecoder(base)
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, audio.Malformed(err)
	}
	if dec.NumChans < 1 || dec.SampleRate == 0 {
		return nil, audio.Malformed(ErrUnsupportedWavLayout)
	}

	normalize, err := normalizer(dec.WavAudioFormat, int(dec.BitDepth))
	if err != nil {
		return nil, err
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, audio.Malformed(fmt.Errorf("%w: %w", ErrNoPCMData, err))
	}
	if dec.PCMChunk == nil {
		return nil, audio.Malformed(ErrNoPCMData)
	}

	channels := int(dec.NumChans)
	rate := int(dec.SampleRate)
	frames := int64(dec.PCMSize) / int64(channels*int(dec.BitDepth)/8)

	return &Decoder{
		pcm: dec,
		info: audio.Info{
			SampleRate:  rate,
			Channels:    channels,
			Format:      audio.Wav,
			Duration:    audio.DurationFromFrames(frames, rate),
			HasDuration: true,
		},
		bitDepth:  int(dec.BitDepth),
		normalize: normalize,
		buf: &goaudio.IntBuffer{
			Format: &goaudio.Format{NumChannels: channels, SampleRate: rate},
			Data:   make([]int, blockSamples-blockSamples%channels),
		},
	}, nil
}

// normalizer picks the integer-to-float mapping for a format tag and bit
// depth. Integer PCM is divided by the signed maximum of its bit depth;
// 8-bit WAV is unsigned and centred on 128. 32-bit float passes through.
func normalizer(format uint16, bitDepth int) (func(int) audio.Sample, error) {
	switch format {
	case formatPCM, formatExtensible:
		switch bitDepth {
		case 8:
			maxVal := float32(goaudio.IntMaxSignedValue(8))
			return func(v int) audio.Sample { return float32(v-128) / maxVal }, nil
		case 16, 24:
			maxVal := float32(goaudio.IntMaxSignedValue(bitDepth))
			return func(v int) audio.Sample { return float32(v) / maxVal }, nil
		case 32:
			maxVal := float64(goaudio.IntMaxSignedValue(32))
			return func(v int) audio.Sample { return audio.Sample(float64(v) / maxVal) }, nil
		}
	case formatIEEEFloat:
		if bitDepth == 32 {
			return func(v int) audio.Sample { return math.Float32frombits(uint32(int32(v))) }, nil
		}
	}

	return nil, audio.Unsupported("WAV format tag %#x with %d-bit samples", format, bitDepth)
}

func (d *Decoder) Info() audio.Info { return d.info }

// BitDepth returns the declared bits per sample of the file.
func (d *Decoder) BitDepth() int { return d.bitDepth }

// Close is a no-op; the byte source belongs to the caller.
func (d *Decoder) Close() error { return nil }

func (d *Decoder) Next() (audio.Sample, error) {
	if d.done {
		return 0, io.EOF
	}

	if d.pos >= d.n {
		n, err := d.pcm.PCMBuffer(d.buf)
		if err != nil {
			d.done = true
			return 0, audio.Malformed(err)
		}
		if n == 0 {
			d.done = true
			return 0, io.EOF
		}
		d.pos, d.n = 0, n
	}

	s := d.normalize(d.buf.Data[d.pos])
	d.pos++

	return s, nil
}
