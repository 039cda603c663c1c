// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/ik5/vibe/audio"
)

// filler pulls samples from a source into device buffers. It runs on the
// device thread: it never blocks, and it allocates nothing after
// construction.
type filler struct {
	src    audio.Source
	cfg    StreamConfig
	size   int // bytes per device sample
	fanOut bool
	mapper *audio.ChannelMapper

	in  []float32 // one source frame
	out []float32 // one device frame

	ended   atomic.Bool
	samples atomic.Int64 // source samples consumed
	drained chan struct{}

	log     *slog.Logger
	metrics *Metrics
}

func newFiller(src audio.Source, cfg StreamConfig, policy ChannelPolicy, log *slog.Logger, metrics *Metrics) (*filler, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	srcChannels := max(src.Info().Channels, 1)
	mapper := audio.NewChannelMapper(srcChannels, cfg.Channels)
	fanOut := policy == ChannelsFanOut
	if !fanOut && mapper.In() != mapper.Out() {
		log.Debug("mapping source channels to device", "in", mapper.In(), "out", mapper.Out())
	}

	return &filler{
		src:     src,
		cfg:     cfg,
		size:    cfg.Format.Size(),
		fanOut:  fanOut,
		mapper:  mapper,
		in:      make([]float32, srcChannels),
		out:     make([]float32, cfg.Channels),
		drained: make(chan struct{}, 1),
		log:     log,
		metrics: metrics,
	}, nil
}

// Drained is signalled once, when the source first runs out.
func (f *filler) Drained() <-chan struct{} { return f.drained }

// Samples returns the number of source samples played so far.
func (f *filler) Samples() int64 { return f.samples.Load() }

// fill is the device callback. Whatever the source does, out ends up
// entirely written.
func (f *filler) fill(out []byte) {
	frameSize := f.cfg.FrameSize()
	frames := len(out) / frameSize
	played := 0

	defer func() {
		if r := recover(); r != nil {
			f.finish(fmt.Errorf("%w: source panicked: %v", audio.ErrMalformedStream, r))
			fillSilence(out, f.cfg.Format)
			played = 0
		}
		f.metrics.addFrames(played, frames-played)
	}()

	for i := range frames {
		frame := out[i*frameSize : (i+1)*frameSize]
		if f.ended.Load() || !f.readFrame() {
			fillSilence(frame, f.cfg.Format)
			continue
		}

		for c, v := range f.out {
			putSample(frame[c*f.size:], f.cfg.Format, v)
		}
		played++
	}
	fillSilence(out[frames*frameSize:], f.cfg.Format)
}

// readFrame loads the next device frame into f.out. It reports false once
// the source is exhausted. A source ending mid-frame yields one last frame
// padded with zeros.
func (f *filler) readFrame() bool {
	if f.fanOut {
		s, err := f.src.Next()
		if err != nil {
			f.finish(err)
			return false
		}
		for c := range f.out {
			f.out[c] = s
		}
		f.samples.Add(1)
		return true
	}

	for c := range f.in {
		s, err := f.src.Next()
		if err != nil {
			f.finish(err)
			if c == 0 {
				return false
			}
			clear(f.in[c:])
			break
		}
		f.in[c] = s
		f.samples.Add(1)
	}
	f.mapper.Map(f.out, f.in)

	return true
}

// finish marks the source as exhausted. Decode errors are logged once and
// otherwise treated as the end of the stream.
func (f *filler) finish(err error) {
	if f.ended.Swap(true) {
		return
	}

	if !errors.Is(err, io.EOF) {
		f.log.Error("decoding failed, playing silence", "error", err)
		f.metrics.decodeError()
	}

	select {
	case f.drained <- struct{}{}:
	default:
	}
}
