// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/vibe/audio"
)

const blockSamples = 4096

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Decoder yields normalized samples from an AIFF stream.
type Decoder struct {
	pcm      aiffReader
	info     audio.Info
	bitDepth int
	scale    float32

	buf  *goaudio.IntBuffer
	pos  int
	n    int
	done bool
}

// Open parses the FORM container and COMM chunk from rs. On failure rs is
// left where it was.
func Open(rs io.ReadSeeker) (*Decoder, error) {
	return audio.TryOpen(rs, open)
}

func open(rs io.ReadSeeker) (*Decoder, error) {
	base, err := audio.NewOffsetReadSeeker(rs)
	if err != nil {
		return nil, err
	}

	hdr := make([]byte, 12)
	if _, err := io.ReadFull(base, hdr); err != nil || string(hdr[:4]) != "FORM" {
		return nil, ErrNotAiffFile
	}
	if form := string(hdr[8:]); form != "AIFF" && form != "AIFC" {
		return nil, ErrNotAiffFile
	}
	if _, err := base.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	dec := aiff.NewDecoder(base)
	if !dec.IsValidFile() {
		return nil, audio.Malformed(ErrUnsupportedAiffLayout)
	}
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, audio.Malformed(err)
	}

	format := dec.Format()
	if format == nil {
		return nil, audio.Malformed(ErrUnsupportedAiffLayout)
	}

	return newDecoder(dec, format, int(dec.BitDepth), int64(dec.NumSampleFrames))
}

func newDecoder(pcm aiffReader, format *goaudio.Format, bitDepth int, frames int64) (*Decoder, error) {
	if format.NumChannels < 1 || format.SampleRate <= 0 {
		return nil, audio.Malformed(ErrUnsupportedAiffLayout)
	}

	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, audio.Unsupported("AIFF with %d bits per sample", bitDepth)
	}

	info := audio.Info{
		SampleRate: format.SampleRate,
		Channels:   format.NumChannels,
		Format:     audio.Aiff,
	}
	if frames > 0 {
		info.Duration = audio.DurationFromFrames(frames, format.SampleRate)
		info.HasDuration = true
	}

	size := blockSamples - blockSamples%format.NumChannels

	return &Decoder{
		pcm:      pcm,
		info:     info,
		bitDepth: bitDepth,
		scale:    float32(goaudio.IntMaxSignedValue(bitDepth)),
		buf: &goaudio.IntBuffer{
			Data:           make([]int, size),
			Format:         format,
			SourceBitDepth: bitDepth,
		},
	}, nil
}

func (d *Decoder) Info() audio.Info { return d.info }

// BitDepth returns the sample size declared in the COMM chunk.
func (d *Decoder) BitDepth() int { return d.bitDepth }

func (d *Decoder) Close() error { return nil }

func (d *Decoder) Next() (audio.Sample, error) {
	if d.done {
		return 0, io.EOF
	}

	if d.pos >= d.n {
		n, err := d.pcm.PCMBuffer(d.buf)
		d.pos, d.n = 0, n
		if n == 0 {
			d.done = true
			if err != nil && err != io.EOF {
				return 0, audio.Malformed(err)
			}
			return 0, io.EOF
		}
	}

	v := d.buf.Data[d.pos]
	if d.bitDepth == 8 {
		// go-audio hands 8-bit AIFF samples back as unsigned bytes
		v = int(int8(v))
	}
	s := audio.Sample(float32(v) / d.scale)
	d.pos++

	return s, nil
}
