// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// oto allows a single context per process; the first OtoDevice to open
// fixes its configuration.
var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoCfg  StreamConfig
	otoErr  error
)

// OtoDevice plays through ebitengine/oto. It defaults to 44100Hz stereo
// f32; only u8, s16 and f32 are available.
type OtoDevice struct {
	SampleRate int
	Channels   int
	Format     SampleFormat

	// BufferSize is the player latency, oto's default when zero.
	BufferSize time.Duration
}

func (d *OtoDevice) config() StreamConfig {
	cfg := StreamConfig{Channels: d.Channels, SampleRate: d.SampleRate, Format: d.Format}
	if cfg.Channels == 0 {
		cfg.Channels = 2
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 44100
	}
	if cfg.Format == SampleUnknown {
		cfg.Format = SampleF32
	}
	return cfg
}

func toOtoFormat(f SampleFormat) (oto.Format, error) {
	switch f {
	case SampleU8:
		return oto.FormatUnsignedInt8, nil
	case SampleS16:
		return oto.FormatSignedInt16LE, nil
	case SampleF32:
		return oto.FormatFloat32LE, nil
	default:
		return 0, fmt.Errorf("%w: oto cannot play %s", ErrUnsupportedSampleFormat, f)
	}
}

func (d *OtoDevice) context() (*oto.Context, StreamConfig, error) {
	want := d.config()

	otoOnce.Do(func() {
		format, err := toOtoFormat(want.Format)
		if err != nil {
			otoErr = err
			return
		}

		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   want.SampleRate,
			ChannelCount: want.Channels,
			Format:       format,
			BufferSize:   d.BufferSize,
		})
		if err != nil {
			otoErr = fmt.Errorf("%w: failed to create oto context: %w", ErrDevice, err)
			return
		}
		<-ready

		otoCtx, otoCfg = ctx, want
	})

	if otoErr != nil {
		return nil, StreamConfig{}, otoErr
	}
	if otoCfg != want {
		slog.Warn("oto context already running with another configuration",
			"component", "oto", "requested", want.String(), "using", otoCfg.String())
	}

	return otoCtx, otoCfg, nil
}

func (d *OtoDevice) Open(build CallbackFactory) (Stream, StreamConfig, error) {
	ctx, cfg, err := d.context()
	if err != nil {
		return nil, StreamConfig{}, err
	}

	cb, err := build(cfg)
	if err != nil {
		return nil, StreamConfig{}, err
	}

	player := ctx.NewPlayer(&callbackReader{fill: cb, frameSize: cfg.FrameSize()})
	if d.BufferSize > 0 {
		player.SetBufferSize(int(d.BufferSize.Seconds() * float64(cfg.SampleRate*cfg.FrameSize())))
	}

	return &otoStream{player: player}, cfg, nil
}

// callbackReader turns a Callback into the io.Reader oto pulls from. It
// never reports EOF; silence follows the end of the source.
type callbackReader struct {
	fill      Callback
	frameSize int
}

func (r *callbackReader) Read(p []byte) (int, error) {
	n := len(p) - len(p)%r.frameSize
	if n == 0 {
		clear(p)
		return len(p), nil
	}

	r.fill(p[:n])
	return n, nil
}

type otoStream struct {
	player *oto.Player
}

func (s *otoStream) Play() error {
	s.player.Play()
	return nil
}

func (s *otoStream) Pause() error {
	s.player.Pause()
	return nil
}

func (s *otoStream) Close() error {
	s.player.Pause()
	if err := s.player.Close(); err != nil {
		return fmt.Errorf("%w: failed to close oto player: %w", ErrDevice, err)
	}
	return nil
}
