// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"
	"sync/atomic"

	"github.com/ik5/vibe/audio"
)

// MockSource is an audio.Source that generates frames from a waveform.
// Once the frames run out it keeps returning io.EOF. It optionally fails at
// a given sample index to exercise error paths.
type MockSource struct {
	info        audio.Info
	totalFrames int
	pos         int // samples handed out so far
	failAt      int
	failErr     error
	done        bool
	closed      atomic.Bool
	waveform    func(frame int, channel int) float32
}

// NewMockSource creates a source producing totalFrames frames. waveform
// returns the value of a sample given its frame index and channel.
func NewMockSource(sampleRate, channels, totalFrames int, waveform func(frame int, channel int) float32) *MockSource {
	return &MockSource{
		info: audio.Info{
			SampleRate:  sampleRate,
			Channels:    channels,
			Format:      audio.Wav,
			Duration:    audio.DurationFromFrames(int64(totalFrames), sampleRate),
			HasDuration: true,
		},
		totalFrames: totalFrames,
		failAt:      -1,
		waveform:    waveform,
	}
}

// NewSilentSource creates a mock source that generates silence.
func NewSilentSource(sampleRate, channels, totalFrames int) *MockSource {
	return NewConstantSource(sampleRate, channels, totalFrames, 0)
}

// NewSineSource creates a mock source that generates the same sine wave on
// every channel.
func NewSineSource(sampleRate, channels, totalFrames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame int, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, totalFrames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(int, int) float32 {
		return value
	})
}

// WithFormat overrides the reported format tag.
func (m *MockSource) WithFormat(f audio.Format) *MockSource {
	m.info.Format = f
	return m
}

// FailAt makes the sample at index fail with err, wrapped as a malformed
// stream error.
func (m *MockSource) FailAt(index int, err error) *MockSource {
	m.failAt = index
	m.failErr = err
	return m
}

func (m *MockSource) Info() audio.Info { return m.info }

// Close records that the source was closed.
func (m *MockSource) Close() error {
	m.closed.Store(true)
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed.Load() }

// Consumed returns how many samples were handed out.
func (m *MockSource) Consumed() int { return m.pos }

func (m *MockSource) Next() (audio.Sample, error) {
	if m.done {
		return 0, io.EOF
	}
	if m.pos == m.failAt {
		m.done = true
		return 0, audio.Malformed(m.failErr)
	}
	if m.pos >= m.totalFrames*m.info.Channels {
		m.done = true
		return 0, io.EOF
	}

	ch := m.info.Channels
	s := m.waveform(m.pos/ch, m.pos%ch)
	m.pos++

	return s, nil
}
