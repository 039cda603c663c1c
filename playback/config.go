// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"log/slog"
	"time"
)

// DefaultLinger is how long a drained session keeps its stream open so the
// device can play out what it has buffered.
const DefaultLinger = 200 * time.Millisecond

// ChannelPolicy decides how decoded channels reach device channels.
type ChannelPolicy int

const (
	// ChannelsNative maps source channels onto the device's channel count
	// with audio.ChannelMapper.
	ChannelsNative ChannelPolicy = iota

	// ChannelsFanOut writes each decoded sample to every channel of one
	// device frame.
	ChannelsFanOut
)

func (p ChannelPolicy) String() string {
	if p == ChannelsFanOut {
		return "fanout"
	}
	return "native"
}

// Config configures an Engine. The zero value plays through the default
// malgo output device.
type Config struct {
	Device   Device
	Logger   *slog.Logger
	Channels ChannelPolicy

	// Autoplay starts sessions playing; otherwise they start paused.
	Autoplay bool

	// Linger defaults to DefaultLinger. A negative value closes the stream
	// as soon as the source is drained.
	Linger time.Duration

	// Metrics may be nil.
	Metrics *Metrics

	// OnTransition runs on the playback goroutine after every state change.
	OnTransition func(from, to State)
}

func (c Config) withDefaults() Config {
	if c.Device == nil {
		c.Device = &MalgoDevice{}
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Linger == 0 {
		c.Linger = DefaultLinger
	} else if c.Linger < 0 {
		c.Linger = 0
	}

	return c
}
