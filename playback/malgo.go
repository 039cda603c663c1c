// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/gen2brain/malgo"
)

// MalgoDevice plays through miniaudio. The zero value opens the host's
// default output in its native format, channel count and rate.
type MalgoDevice struct {
	// Name selects the first output device whose name contains it.
	Name string

	// Non-zero values override the native configuration.
	Format     SampleFormat
	Channels   int
	SampleRate int

	Logger *slog.Logger
}

func (d *MalgoDevice) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default().With("component", "malgo")
}

func (d *MalgoDevice) Open(build CallbackFactory) (Stream, StreamConfig, error) {
	log := d.logger()

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(msg string) {
		log.Debug(strings.TrimSpace(msg))
	})
	if err != nil {
		return nil, StreamConfig{}, fmt.Errorf("%w: failed to initialize malgo context: %w", ErrDevice, err)
	}

	release := func() {
		_ = ctx.Uninit()
		ctx.Free()
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = toMalgoFormat(d.Format)
	deviceConfig.Playback.Channels = uint32(max(d.Channels, 0))
	deviceConfig.SampleRate = uint32(max(d.SampleRate, 0))
	deviceConfig.Alsa.NoMMap = 1

	if d.Name != "" {
		info, err := findPlaybackDevice(ctx, d.Name)
		if err != nil {
			release()
			return nil, StreamConfig{}, err
		}
		deviceConfig.Playback.DeviceID = info.ID.Pointer()
		log.Info("using output device", "name", info.Name())
	}

	// miniaudio only calls Data after Start, by which time fill is set.
	var fill atomic.Pointer[Callback]
	callbacks := malgo.DeviceCallbacks{
		Data: func(out, _ []byte, _ uint32) {
			if cb := fill.Load(); cb != nil {
				(*cb)(out)
				return
			}
			clear(out)
		},
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, callbacks)
	if err != nil {
		release()
		return nil, StreamConfig{}, fmt.Errorf("%w: failed to initialize playback device: %w", ErrDevice, err)
	}

	cfg := StreamConfig{
		Channels:   int(device.PlaybackChannels()),
		SampleRate: int(device.SampleRate()),
		Format:     fromMalgoFormat(device.PlaybackFormat()),
	}

	cb, err := build(cfg)
	if err != nil {
		device.Uninit()
		release()
		return nil, StreamConfig{}, err
	}
	fill.Store(&cb)

	log.Debug("playback device initialized", "stream", cfg.String())

	return &malgoStream{ctx: ctx, device: device, release: release}, cfg, nil
}

func findPlaybackDevice(ctx *malgo.AllocatedContext, name string) (*malgo.DeviceInfo, error) {
	infos, err := ctx.Devices(malgo.Playback)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to enumerate playback devices: %w", ErrDevice, err)
	}

	for i := range infos {
		if strings.Contains(infos[i].Name(), name) {
			return &infos[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %q among %d devices", ErrNoSuchDevice, name, len(infos))
}

func toMalgoFormat(f SampleFormat) malgo.FormatType {
	switch f {
	case SampleU8:
		return malgo.FormatU8
	case SampleS16:
		return malgo.FormatS16
	case SampleS24:
		return malgo.FormatS24
	case SampleS32:
		return malgo.FormatS32
	case SampleF32:
		return malgo.FormatF32
	default:
		return malgo.FormatUnknown
	}
}

func fromMalgoFormat(f malgo.FormatType) SampleFormat {
	switch f {
	case malgo.FormatU8:
		return SampleU8
	case malgo.FormatS16:
		return SampleS16
	case malgo.FormatS24:
		return SampleS24
	case malgo.FormatS32:
		return SampleS32
	case malgo.FormatF32:
		return SampleF32
	default:
		return SampleUnknown
	}
}

type malgoStream struct {
	ctx     *malgo.AllocatedContext
	device  *malgo.Device
	release func()
}

func (s *malgoStream) Play() error {
	if err := s.device.Start(); err != nil {
		return fmt.Errorf("%w: failed to start device: %w", ErrDevice, err)
	}
	return nil
}

func (s *malgoStream) Pause() error {
	if err := s.device.Stop(); err != nil {
		return fmt.Errorf("%w: failed to stop device: %w", ErrDevice, err)
	}
	return nil
}

func (s *malgoStream) Close() error {
	s.device.Uninit()
	s.release()
	return nil
}
