// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"

	"github.com/ik5/vibe/audio"
)

var magic = []byte("fLaC")

// block is one decoded FLAC frame in the codec's channel-major layout:
// channels[c][i] is sample i of channel c.
type block struct {
	channels   [][]int32
	sampleRate int // 0 when the frame defers to STREAMINFO
	bitDepth   int // 0 when the frame defers to STREAMINFO
}

// blockReader is an interface over flac.Stream to allow testing
type blockReader interface {
	nextBlock() (block, error)
	Close() error
}

type streamBlocks struct {
	stream *flac.Stream
}

func (s streamBlocks) nextBlock() (block, error) {
	f, err := s.stream.ParseNext()
	if err != nil {
		return block{}, err
	}

	b := block{
		channels:   make([][]int32, len(f.Subframes)),
		sampleRate: int(f.SampleRate),
		bitDepth:   int(f.BitsPerSample),
	}
	for c, sub := range f.Subframes {
		b.channels[c] = sub.Samples
	}

	return b, nil
}

func (s streamBlocks) Close() error { return s.stream.Close() }

// Decoder yields normalized, frame-interleaved samples from a FLAC stream.
type Decoder struct {
	blocks   blockReader
	info     audio.Info
	bitDepth int
	scale    float64

	interleaved []int32 // current block, frame-major
	pos         int
	done        bool
}

// Open parses the FLAC signature and STREAMINFO from rs. On failure rs is
// left where it was.
func Open(rs io.ReadSeeker) (*Decoder, error) {
	return audio.TryOpen(rs, open)
}

func open(rs io.ReadSeeker) (*Decoder, error) {
	base, err := audio.NewOffsetReadSeeker(rs)
	if err != nil {
		return nil, err
	}

	sig := make([]byte, len(magic))
	if _, err := io.ReadFull(base, sig); err != nil || !bytes.Equal(sig, magic) {
		return nil, ErrNotFlacFile
	}
	if _, err := base.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	stream, err := flac.New(base)
	if err != nil {
		return nil, audio.Malformed(err)
	}

	si := stream.Info
	d, err := newDecoder(streamBlocks{stream: stream}, int(si.SampleRate), int(si.NChannels), int(si.BitsPerSample), si.NSamples)
	if err != nil {
		_ = stream.Close()
		return nil, err
	}

	return d, nil
}

func newDecoder(blocks blockReader, rate, channels, bitDepth int, totalSamples uint64) (*Decoder, error) {
	if rate <= 0 || channels <= 0 {
		return nil, audio.Malformed(ErrInvalidStreamInfo)
	}
	if bitDepth < 4 || bitDepth > 32 {
		return nil, audio.Unsupported("FLAC with %d bits per sample", bitDepth)
	}

	info := audio.Info{
		SampleRate: rate,
		Channels:   channels,
		Format:     audio.Flac,
	}
	if totalSamples > 0 {
		info.Duration = audio.DurationFromFrames(int64(totalSamples), rate)
		info.HasDuration = true
	}

	return &Decoder{
		blocks:   blocks,
		info:     info,
		bitDepth: bitDepth,
		// Largest magnitude of a signed bitDepth-bit sample.
		scale: float64(int64(1)<<(bitDepth-1) - 1),
	}, nil
}

func (d *Decoder) Info() audio.Info { return d.info }

// BitDepth returns the bits per sample declared in STREAMINFO.
func (d *Decoder) BitDepth() int { return d.bitDepth }

func (d *Decoder) Close() error {
	return d.blocks.Close()
}

func (d *Decoder) Next() (audio.Sample, error) {
	if d.done {
		return 0, io.EOF
	}

	for d.pos >= len(d.interleaved) {
		if err := d.load(); err != nil {
			d.done = true
			if errors.Is(err, io.EOF) {
				return 0, io.EOF
			}
			return 0, audio.Malformed(err)
		}
	}

	s := audio.Sample(float64(d.interleaved[d.pos]) / d.scale)
	d.pos++

	return s, nil
}

// load parses the next block and transposes it from channel-major to
// frame-major order.
func (d *Decoder) load() error {
	b, err := d.blocks.nextBlock()
	if err != nil {
		return err
	}

	if len(b.channels) != d.info.Channels {
		return fmt.Errorf("%w: %d channels, stream has %d", ErrFormatChanged, len(b.channels), d.info.Channels)
	}
	if b.sampleRate != 0 && b.sampleRate != d.info.SampleRate {
		return fmt.Errorf("%w: %dHz, stream has %dHz", ErrFormatChanged, b.sampleRate, d.info.SampleRate)
	}
	if b.bitDepth != 0 && b.bitDepth != d.bitDepth {
		return fmt.Errorf("%w: %d-bit, stream has %d-bit", ErrFormatChanged, b.bitDepth, d.bitDepth)
	}

	frames := len(b.channels[0])
	for _, ch := range b.channels[1:] {
		if len(ch) != frames {
			return ErrRaggedBlock
		}
	}

	channels := d.info.Channels
	n := frames * channels
	if cap(d.interleaved) < n {
		d.interleaved = make([]int32, n)
	}
	d.interleaved = d.interleaved[:n]
	for i := range n {
		d.interleaved[i] = b.channels[i%channels][i/channels]
	}
	d.pos = 0

	return nil
}
