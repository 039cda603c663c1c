// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"errors"
	"sync"
	"time"
)

var errNullStreamClosed = errors.New("null stream closed")

// NullDevice is an output device that plays nowhere. Tests drive its
// callback with Pump; with Realtime set it also pulls buffers on a ticker
// at the pace a real device would.
type NullDevice struct {
	// Config defaults to 44100Hz, 2 channels, f32.
	Config StreamConfig

	Realtime bool
	// Period is the ticker interval in Realtime mode, default 10ms.
	Period time.Duration

	// OpenErr and PlayErr make Open and Play fail.
	OpenErr error
	PlayErr error

	mu     sync.Mutex
	stream *nullStream
	events []string
}

func (d *NullDevice) Open(build CallbackFactory) (Stream, StreamConfig, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.OpenErr != nil {
		return nil, StreamConfig{}, d.OpenErr
	}

	cfg := d.Config
	if cfg.Channels == 0 {
		cfg.Channels = 2
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 44100
	}
	if cfg.Format == SampleUnknown {
		cfg.Format = SampleF32
	}

	cb, err := build(cfg)
	if err != nil {
		return nil, StreamConfig{}, err
	}

	period := d.Period
	if period <= 0 {
		period = 10 * time.Millisecond
	}

	d.stream = &nullStream{dev: d, cfg: cfg, cb: cb, period: period}
	d.events = append(d.events, "open")

	return d.stream, cfg, nil
}

// Pump runs the callback of the open stream for frames frames and returns
// the buffer it filled. It returns nil when no stream is playing.
func (d *NullDevice) Pump(frames int) []byte {
	d.mu.Lock()
	s := d.stream
	d.mu.Unlock()

	if s == nil {
		return nil
	}
	return s.pump(frames)
}

// Events returns the stream calls seen so far: "open", "play", "pause" and
// "close", in order.
func (d *NullDevice) Events() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]string(nil), d.events...)
}

func (d *NullDevice) record(event string) {
	d.mu.Lock()
	d.events = append(d.events, event)
	d.mu.Unlock()
}

type nullStream struct {
	dev    *NullDevice
	cfg    StreamConfig
	cb     Callback
	period time.Duration

	mu      sync.Mutex
	playing bool
	closed  bool

	stop   chan struct{}
	ticker sync.WaitGroup
}

// pump holds mu while the callback runs, so Pause and Close return only
// once no callback is in flight.
func (s *nullStream) pump(frames int) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.playing {
		return nil
	}

	buf := make([]byte, frames*s.cfg.FrameSize())
	s.cb(buf)
	return buf
}

func (s *nullStream) Play() error {
	if err := s.dev.PlayErr; err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errNullStreamClosed
	}
	s.playing = true
	s.mu.Unlock()

	s.dev.record("play")

	if s.dev.Realtime {
		s.stop = make(chan struct{})
		s.ticker.Go(s.tick)
	}

	return nil
}

func (s *nullStream) tick() {
	t := time.NewTicker(s.period)
	defer t.Stop()

	frames := max(1, int(int64(s.cfg.SampleRate)*int64(s.period)/int64(time.Second)))
	for {
		select {
		case <-s.stop:
			return
		case <-t.C:
			s.pump(frames)
		}
	}
}

func (s *nullStream) halt() {
	s.mu.Lock()
	s.playing = false
	s.mu.Unlock()

	if s.stop != nil {
		close(s.stop)
		s.ticker.Wait()
		s.stop = nil
	}
}

func (s *nullStream) Pause() error {
	s.halt()
	s.dev.record("pause")
	return nil
}

func (s *nullStream) Close() error {
	s.halt()

	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.dev.record("close")
	return nil
}
