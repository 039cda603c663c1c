// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/vibe/audio"
	"github.com/ik5/vibe/utils"
)

const packetSize = 4096

var (
	capturePattern = []byte("OggS")
	vorbisID       = []byte("\x01vorbis")
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Length() int64
	Read([]float32) (int, error)
}

// Decoder yields samples from an Ogg Vorbis stream, quantized to 16-bit
// precision.
type Decoder struct {
	dec  oggReader
	info audio.Info

	packet []float32
	pos    int
	n      int
	err    error // read error held back until packet is used up
	done   bool
}

// Open reads the Vorbis identification and setup headers from rs. On failure
// rs is left where it was.
func Open(rs io.ReadSeeker) (*Decoder, error) {
	return audio.TryOpen(rs, open)
}

func open(rs io.ReadSeeker) (*Decoder, error) {
	base, err := audio.NewOffsetReadSeeker(rs)
	if err != nil {
		return nil, err
	}

	if err := sniff(base); err != nil {
		return nil, err
	}
	if _, err := base.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	dec, err := oggvorbis.NewReader(base)
	if err != nil {
		return nil, audio.Malformed(err)
	}

	return newDecoder(dec)
}

// sniff checks the first Ogg page carries a Vorbis identification packet.
func sniff(r io.Reader) error {
	// capture pattern, version, flags, granule, serial, sequence, CRC, segment count
	const pageHeaderLen = 27

	hdr := make([]byte, pageHeaderLen)
	if _, err := io.ReadFull(r, hdr); err != nil || !bytes.Equal(hdr[:4], capturePattern) {
		return ErrNotVorbisFile
	}

	segments := make([]byte, int(hdr[26])+len(vorbisID))
	if _, err := io.ReadFull(r, segments); err != nil {
		return audio.Malformed(io.ErrUnexpectedEOF)
	}
	if !bytes.Equal(segments[hdr[26]:], vorbisID) {
		return audio.Unsupported("Ogg stream without a Vorbis identification header")
	}

	return nil
}

func newDecoder(dec oggReader) (*Decoder, error) {
	rate, channels := dec.SampleRate(), dec.Channels()
	if rate <= 0 || channels <= 0 {
		return nil, audio.Malformed(ErrInvalidHeader)
	}

	info := audio.Info{
		SampleRate: rate,
		Channels:   channels,
		Format:     audio.Ogg,
	}
	if length := dec.Length(); length > 0 {
		info.Duration = audio.DurationFromFrames(length, rate)
		info.HasDuration = true
	}

	return &Decoder{
		dec:    dec,
		info:   info,
		packet: make([]float32, packetSize-packetSize%channels),
	}, nil
}

func (d *Decoder) Info() audio.Info { return d.info }

// Close is a no-op: the Vorbis reader holds no resources besides the caller's
// reader, which is never closed here.
func (d *Decoder) Close() error { return nil }

func (d *Decoder) Next() (audio.Sample, error) {
	if d.done {
		return 0, io.EOF
	}

	for d.pos >= d.n {
		if err := d.advance(); err != nil {
			d.done = true
			return 0, err
		}
	}

	s := utils.Quantize16(d.packet[d.pos])
	d.pos++

	return s, nil
}

// advance decodes the next run of interleaved values. An error that
// arrives with data is held until that data has been delivered.
func (d *Decoder) advance() error {
	if d.err != nil {
		return d.fail()
	}

	n, err := d.dec.Read(d.packet)
	d.pos, d.n = 0, n
	d.err = err
	if n > 0 || err == nil {
		// err == nil with no data is an empty packet; try again
		return nil
	}
	return d.fail()
}

func (d *Decoder) fail() error {
	if errors.Is(d.err, io.EOF) {
		return io.EOF
	}
	return audio.Malformed(d.err)
}
