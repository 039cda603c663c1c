// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the playback Prometheus collectors. A nil *Metrics records
// nothing.
type Metrics struct {
	Frames         prometheus.Counter     // device frames filled from a source
	SilenceFrames  prometheus.Counter     // device frames filled with silence
	DecodeErrors   prometheus.Counter     // sessions ended by a decode error
	SessionsActive prometheus.Gauge       // sessions with an open stream
	Transitions    *prometheus.CounterVec // applied transitions by target state
}

// NewMetrics creates the playback collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vibe_playback_frames_total",
			Help: "Total number of device frames filled with decoded audio",
		}),
		SilenceFrames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vibe_playback_silence_frames_total",
			Help: "Total number of device frames filled with silence",
		}),
		DecodeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vibe_playback_decode_errors_total",
			Help: "Total number of sessions ended early by a decode error",
		}),
		SessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vibe_playback_sessions_active",
			Help: "Number of sessions holding an open output stream",
		}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vibe_playback_transitions_total",
			Help: "Total number of transport transitions by target state",
		}, []string{"state"}),
	}

	for _, c := range []prometheus.Collector{m.Frames, m.SilenceFrames, m.DecodeErrors, m.SessionsActive, m.Transitions} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register playback metrics: %w", err)
		}
	}

	return m, nil
}

func (m *Metrics) addFrames(played, silent int) {
	if m == nil {
		return
	}
	if played > 0 {
		m.Frames.Add(float64(played))
	}
	if silent > 0 {
		m.SilenceFrames.Add(float64(silent))
	}
}

func (m *Metrics) decodeError() {
	if m != nil {
		m.DecodeErrors.Inc()
	}
}

func (m *Metrics) sessionOpened() {
	if m != nil {
		m.SessionsActive.Inc()
	}
}

func (m *Metrics) sessionClosed() {
	if m != nil {
		m.SessionsActive.Dec()
	}
}

func (m *Metrics) transition(to State) {
	if m != nil {
		m.Transitions.WithLabelValues(to.String()).Inc()
	}
}
