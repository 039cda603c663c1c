// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/vibe/audio"
	"github.com/ik5/vibe/utils"
)

const (
	// go-mp3 always emits 16-bit little-endian stereo.
	channels       = 2
	bytesPerSample = 2
	bytesPerFrame  = channels * bytesPerSample

	// Two MPEG-1 Layer III frames of 1152 samples.
	frameBufSize = 2 * 1152 * bytesPerFrame
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
	Length() int64
}

// Decoder yields normalized stereo samples from an MPEG audio stream.
type Decoder struct {
	dec  mp3Reader
	info audio.Info

	buf   []byte
	pos   int   // next sample within buf
	n     int   // whole samples in buf
	carry int   // odd trailing byte kept for the next read
	err   error // read error held back until buf is used up
	done  bool

	// change, when set, ends the stream where the frame layout changes;
	// go-mp3 would otherwise decode on with the first frame's parameters.
	change *formatChange
	read   int64 // PCM bytes taken from go-mp3
}

// Open locates the first MPEG frame in rs. On failure rs is left where it
// was. A stream without an ID3 tag or frame sync at its start that go-mp3
// cannot decode is reported as ErrNotMP3File.
func Open(rs io.ReadSeeker) (*Decoder, error) {
	return audio.TryOpen(rs, open)
}

func open(rs io.ReadSeeker) (*Decoder, error) {
	base, err := audio.NewOffsetReadSeeker(rs)
	if err != nil {
		return nil, err
	}

	head := make([]byte, 3)
	n, _ := io.ReadFull(base, head)
	if _, err := base.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	change := scanFormatChange(base)
	if _, err := base.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	dec, err := gomp3.NewDecoder(base)
	if err != nil {
		if looksLikeMP3(head[:n]) {
			return nil, audio.Malformed(err)
		}
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	return newDecoder(dec, change)
}

// looksLikeMP3 reports whether head starts with an ID3v2 tag or an MPEG
// frame sync.
func looksLikeMP3(head []byte) bool {
	if len(head) >= 3 && string(head[:3]) == "ID3" {
		return true
	}
	return len(head) >= 2 && head[0] == 0xFF && head[1]&0xE0 == 0xE0
}

func newDecoder(dec mp3Reader, change *formatChange) (*Decoder, error) {
	rate := dec.SampleRate()
	if rate <= 0 {
		return nil, audio.Malformed(ErrInvalidSampleRate)
	}

	info := audio.Info{
		SampleRate: rate,
		Channels:   channels,
		Format:     audio.Mp3,
	}
	if length := dec.Length(); length > 0 {
		info.Duration = audio.DurationFromFrames(length/bytesPerFrame, rate)
		info.HasDuration = true
	}

	return &Decoder{
		dec:    dec,
		info:   info,
		buf:    make([]byte, frameBufSize),
		change: change,
	}, nil
}

func (d *Decoder) Info() audio.Info { return d.info }

// Close is a no-op; the caller's reader is never closed.
func (d *Decoder) Close() error { return nil }

func (d *Decoder) Next() (audio.Sample, error) {
	if d.done {
		return 0, io.EOF
	}

	for d.pos >= d.n {
		if err := d.readFrame(); err != nil {
			d.done = true
			return 0, err
		}
	}

	off := d.pos * bytesPerSample
	v := int16(binary.LittleEndian.Uint16(d.buf[off : off+bytesPerSample]))
	d.pos++

	return utils.Int16ToFloat32(v), nil
}

// readFrame refills buf with the next decoded frame. Zero-length frames
// leave n at 0 so Next retries. An error that arrives with data is kept
// and returned by the following call.
func (d *Decoder) readFrame() error {
	if d.carry > 0 {
		d.buf[0] = d.buf[d.n*bytesPerSample]
	}
	if d.err != nil {
		return d.fail()
	}

	dst := d.buf[d.carry:]
	if d.change != nil {
		left := d.change.pcmBytes - d.read
		if left <= 0 {
			return audio.Malformed(d.change.err)
		}
		dst = dst[:min(int64(len(dst)), left)]
	}

	n, err := d.dec.Read(dst)
	d.read += int64(n)
	total := n + d.carry
	d.pos, d.n, d.carry = 0, total/bytesPerSample, total%bytesPerSample
	d.err = err

	if d.n > 0 || err == nil {
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
