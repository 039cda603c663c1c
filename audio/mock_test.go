// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// mockSource generates totalFrames frames from waveform and then ends.
// When failAt is non-negative, the sample at that index fails instead.
type mockSource struct {
	info        Info
	totalFrames int
	pos         int // samples handed out so far
	failAt      int
	done        bool
	waveform    func(frame int, channel int) float32
}

func newMockSource(sampleRate, channels, totalFrames int, waveform func(frame int, channel int) float32) *mockSource {
	return &mockSource{
		info: Info{
			SampleRate:  sampleRate,
			Channels:    channels,
			Format:      Wav,
			Duration:    DurationFromFrames(int64(totalFrames), sampleRate),
			HasDuration: true,
		},
		totalFrames: totalFrames,
		failAt:      -1,
		waveform:    waveform,
	}
}

func newConstantSource(sampleRate, channels, totalFrames int, value float32) *mockSource {
	return newMockSource(sampleRate, channels, totalFrames, func(int, int) float32 {
		return value
	})
}

func (m *mockSource) Info() Info   { return m.info }
func (m *mockSource) Close() error { return nil }

func (m *mockSource) Next() (Sample, error) {
	if m.done || m.pos >= m.totalFrames*m.info.Channels {
		m.done = true
		return 0, io.EOF
	}
	if m.pos == m.failAt {
		m.done = true
		return 0, Malformed(errBoom)
	}

	ch := m.info.Channels
	s := m.waveform(m.pos/ch, m.pos%ch)
	m.pos++

	return s, nil
}

var errBoom = io.ErrUnexpectedEOF
