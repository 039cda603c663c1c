// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/ik5/vibe/audio"
)

// Session plays one source through one output stream. Transport methods
// never block; they queue a command for the session's goroutine, which
// applies them in the order they were sent.
//
// The session owns the source once created and closes it when the stream
// is released.
type Session struct {
	id   string
	cfg  Config
	src  audio.Source
	info audio.Info
	log  *slog.Logger

	state    atomic.Int32
	queue    *commandQueue
	done     chan struct{}
	filler   *filler
	streamIn StreamConfig
}

func newSession(cfg Config, src audio.Source) *Session {
	id := uuid.NewString()
	info := src.Info()

	s := &Session{
		id:    id,
		cfg:   cfg,
		src:   src,
		info:  info,
		queue: newCommandQueue(),
		done:  make(chan struct{}),
		log: cfg.Logger.With(
			"component", "playback",
			"session_id", id,
			"format", info.Format.String(),
		),
	}
	s.state.Store(int32(Paused))

	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Info returns the metadata of the source being played.
func (s *Session) Info() audio.Info { return s.info }

// StreamConfig returns the configuration the device opened with.
func (s *Session) StreamConfig() StreamConfig { return s.streamIn }

// State returns the state most recently applied by the session.
func (s *Session) State() State { return State(s.state.Load()) }

// Elapsed returns how much of the source has been handed to the device.
func (s *Session) Elapsed() time.Duration {
	if s.filler == nil {
		return 0
	}
	return audio.MeasuredDuration(s.filler.Samples(), s.info)
}

func (s *Session) Play()  { s.Send(CmdPlay) }
func (s *Session) Pause() { s.Send(CmdPause) }
func (s *Session) Stop()  { s.Send(CmdStop) }

// Send queues c. Commands sent after the session stopped are ignored.
func (s *Session) Send(c Command) { s.queue.push(c) }

// Toggle queues the command that flips between playing and paused.
func (s *Session) Toggle() {
	if s.State() == Playing {
		s.Pause()
		return
	}
	s.Play()
}

// Done is closed once the session has stopped and released its stream.
func (s *Session) Done() <-chan struct{} { return s.done }

// Wait blocks until the session is done or ctx ends.
func (s *Session) Wait(ctx context.Context) error {
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// build is the CallbackFactory handed to the device.
func (s *Session) build(cfg StreamConfig) (Callback, error) {
	f, err := newFiller(s.src, cfg, s.cfg.Channels, s.log, s.cfg.Metrics)
	if err != nil {
		return nil, err
	}
	s.filler = f
	s.streamIn = cfg

	return f.fill, nil
}

// run owns the output stream for the whole life of the session. The result
// of opening (and, with Autoplay, starting) the stream is sent on ready.
func (s *Session) run(ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(s.done)

	stream, cfg, err := s.cfg.Device.Open(s.build)
	if err != nil {
		s.state.Store(int32(Stopped))
		ready <- fmt.Errorf("open output stream: %w", deviceError(err))
		return
	}

	if s.filler == nil {
		_ = stream.Close()
		s.state.Store(int32(Stopped))
		ready <- fmt.Errorf("%w: device opened without building a callback", ErrDevice)
		return
	}

	s.cfg.Metrics.sessionOpened()
	defer s.cfg.Metrics.sessionClosed()

	if cfg.SampleRate != s.info.SampleRate {
		s.log.Warn("device rate differs from source, playback speed will be off",
			"device_rate", cfg.SampleRate, "source_rate", s.info.SampleRate)
	}
	s.log.Debug("stream opened", "stream", cfg.String(), "source", s.info.String(), "channels", s.cfg.Channels.String())

	if s.cfg.Autoplay {
		if err := stream.Play(); err != nil {
			s.state.Store(int32(Stopped))
			if cerr := stream.Close(); cerr != nil {
				s.log.Warn("closing stream failed", "error", cerr)
			}
			ready <- fmt.Errorf("start output stream: %w", deviceError(err))
			return
		}
		s.transition(Playing)
	}

	ready <- nil
	s.loop(stream)
}

func (s *Session) loop(stream Stream) {
	var linger *time.Timer
	defer func() {
		if linger != nil {
			linger.Stop()
		}
	}()

	for {
		select {
		case <-s.queue.wake:
			for _, c := range s.queue.take() {
				if s.apply(stream, c) {
					return
				}
			}

		case <-s.filler.Drained():
			s.log.Debug("source drained", "elapsed", s.Elapsed())
			linger = time.NewTimer(s.cfg.Linger)

		case <-timerC(linger):
			s.shutdown(stream)
			return
		}
	}
}

// timerC returns t's channel, or nil (blocking forever) when t is nil.
func timerC(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

// apply performs c and reports whether the session has stopped.
func (s *Session) apply(stream Stream, c Command) bool {
	from := s.State()
	to := c.next(from)
	if to == from {
		return false
	}

	switch to {
	case Playing:
		if err := stream.Play(); err != nil {
			s.log.Error("starting stream failed", "error", err)
			return false
		}
	case Paused:
		if err := stream.Pause(); err != nil {
			s.log.Error("pausing stream failed", "error", err)
			return false
		}
	case Stopped:
		s.shutdown(stream)
		return true
	}

	s.transition(to)
	return false
}

// shutdown releases the stream and the source and enters Stopped.
func (s *Session) shutdown(stream Stream) {
	if err := stream.Close(); err != nil {
		s.log.Warn("closing stream failed", "error", err)
	}
	if err := s.src.Close(); err != nil {
		s.log.Warn("closing source failed", "error", err)
	}
	s.transition(Stopped)
}

func (s *Session) transition(to State) {
	from := State(s.state.Swap(int32(to)))

	s.cfg.Metrics.transition(to)
	s.log.Debug("transport state changed", "from", from.String(), "to", to.String())

	if s.cfg.OnTransition != nil {
		s.cfg.OnTransition(from, to)
	}
}
