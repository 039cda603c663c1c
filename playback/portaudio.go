// SPDX-License-Identifier: EPL-2.0

//go:build portaudio

package playback

import (
	"encoding/binary"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

const defaultFramesPerBuffer = 512

// PortAudioDevice plays s16 audio through the default PortAudio output.
// It is only functional in binaries built with -tags portaudio.
type PortAudioDevice struct {
	SampleRate      int // default 44100
	Channels        int // default 2
	FramesPerBuffer int // default 512
}

func (d *PortAudioDevice) Open(build CallbackFactory) (Stream, StreamConfig, error) {
	cfg := StreamConfig{Channels: d.Channels, SampleRate: d.SampleRate, Format: SampleS16}
	if cfg.Channels == 0 {
		cfg.Channels = 2
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 44100
	}
	frames := d.FramesPerBuffer
	if frames <= 0 {
		frames = defaultFramesPerBuffer
	}

	cb, err := build(cfg)
	if err != nil {
		return nil, StreamConfig{}, err
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, StreamConfig{}, fmt.Errorf("%w: failed to initialize portaudio: %w", ErrDevice, err)
	}

	scratch := make([]byte, frames*cfg.FrameSize())
	stream, err := portaudio.OpenDefaultStream(0, cfg.Channels, float64(cfg.SampleRate), frames, func(out []int16) {
		n := min(len(out), len(scratch)/2)
		b := scratch[:n*2]
		cb(b)
		for i := range n {
			out[i] = int16(binary.LittleEndian.Uint16(b[i*2:]))
		}
		clear(out[n:])
	})
	if err != nil {
		portaudio.Terminate()
		return nil, StreamConfig{}, fmt.Errorf("%w: failed to open stream: %w", ErrDevice, err)
	}

	return &portAudioStream{stream: stream}, cfg, nil
}

type portAudioStream struct {
	stream  *portaudio.Stream
	running bool
}

func (s *portAudioStream) Play() error {
	if err := s.stream.Start(); err != nil {
		return fmt.Errorf("%w: failed to start stream: %w", ErrDevice, err)
	}
	s.running = true
	return nil
}

func (s *portAudioStream) Pause() error {
	if err := s.stream.Stop(); err != nil {
		return fmt.Errorf("%w: failed to stop stream: %w", ErrDevice, err)
	}
	s.running = false
	return nil
}

func (s *portAudioStream) Close() error {
	if s.running {
		if err := s.Pause(); err != nil {
			return err
		}
	}
	if err := s.stream.Close(); err != nil {
		return err
	}
	return portaudio.Terminate()
}
