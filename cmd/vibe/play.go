// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ik5/vibe"
	"github.com/ik5/vibe/audio"
	"github.com/ik5/vibe/playback"
)

type PlayCmd struct {
	File        string        `arg:"" help:"Audio file to play." type:"path"`
	Device      string        `help:"Output backend." default:"malgo" enum:"malgo,oto,portaudio,null" env:"VIBE_DEVICE"`
	Output      string        `help:"Substring of the output device name (malgo only)." env:"VIBE_OUTPUT"`
	Channels    string        `help:"Channel policy: native maps channels, fanout repeats each sample across a frame." default:"native" enum:"native,fanout" env:"VIBE_CHANNELS"`
	Autoplay    bool          `help:"Start playing immediately."`
	Linger      time.Duration `help:"How long to keep the stream open after the file ends." default:"200ms" env:"VIBE_LINGER"`
	NoTUI       bool          `name:"no-tui" help:"Play without the interactive interface."`
	MetricsAddr string        `help:"Serve Prometheus metrics on this address." placeholder:"HOST:PORT" env:"VIBE_METRICS_ADDR"`
}

func (c *PlayCmd) Run(g *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var metrics *playback.Metrics
	if c.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		m, err := playback.NewMetrics(reg)
		if err != nil {
			return err
		}
		metrics = m

		srv := serveMetrics(c.MetricsAddr, reg)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	dec, err := vibe.OpenFile(c.File)
	if err != nil {
		return err
	}

	device, err := newDevice(c.Device, c.Output, dec.Info())
	if err != nil {
		dec.Close()
		return err
	}

	engine := playback.NewEngine(playback.Config{
		Device:   device,
		Logger:   slog.Default(),
		Channels: channelPolicy(c.Channels),
		Autoplay: c.Autoplay || c.NoTUI,
		Linger:   c.Linger,
		Metrics:  metrics,
	})

	session, err := engine.Create(dec)
	if err != nil {
		dec.Close()
		return fmt.Errorf("play %s: %w", c.File, err)
	}

	slog.Info("playing", "path", c.File, "session_id", session.ID(),
		"source", session.Info().String(), "stream", session.StreamConfig().String())

	if c.NoTUI {
		select {
		case <-session.Done():
		case <-ctx.Done():
			session.Stop()
			<-session.Done()
		}
		return nil
	}

	return runTUI(ctx, session, c.File)
}

func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server failed", "error", err)
		}
	}()

	return srv
}

// newDevice builds the named backend. Backends with a fixed configuration
// are opened at the source's rate and channel count.
func newDevice(name, output string, info audio.Info) (playback.Device, error) {
	switch name {
	case "malgo", "":
		return &playback.MalgoDevice{Name: output}, nil
	case "oto":
		return &playback.OtoDevice{SampleRate: info.SampleRate, Channels: info.Channels}, nil
	case "portaudio":
		return &playback.PortAudioDevice{SampleRate: info.SampleRate, Channels: info.Channels}, nil
	case "null":
		return &playback.NullDevice{
			Config:   playback.StreamConfig{SampleRate: info.SampleRate, Channels: info.Channels},
			Realtime: true,
		}, nil
	default:
		return nil, fmt.Errorf("unknown output backend %q", name)
	}
}

func channelPolicy(name string) playback.ChannelPolicy {
	if name == "fanout" {
		return playback.ChannelsFanOut
	}
	return playback.ChannelsNative
}
