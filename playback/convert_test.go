// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPutSample(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format SampleFormat
		in     float32
		want   []byte
	}{
		{"u8 silence", SampleU8, 0, []byte{0x80}},
		{"u8 max", SampleU8, 1, []byte{0xff}},
		{"u8 min", SampleU8, -1, []byte{0x01}},
		{"s16 max", SampleS16, 1, []byte{0xff, 0x7f}},
		{"s16 min", SampleS16, -1, []byte{0x01, 0x80}},
		{"s16 clipped", SampleS16, 3, []byte{0xff, 0x7f}},
		{"s24 max", SampleS24, 1, []byte{0xff, 0xff, 0x7f}},
		{"s24 min", SampleS24, -1, []byte{0x01, 0x00, 0x80}},
		{"s32 half", SampleS32, 0.5, []byte{0xff, 0xff, 0xff, 0x3f}},
		{"f32 one", SampleF32, 1, []byte{0x00, 0x00, 0x80, 0x3f}},
		{"f32 clipped", SampleF32, 2, []byte{0x00, 0x00, 0x80, 0x3f}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := make([]byte, tt.format.Size())
			putSample(got, tt.format, tt.in)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFillSilence(t *testing.T) {
	t.Parallel()

	b := []byte{1, 2, 3, 4}
	fillSilence(b, SampleU8)
	assert.Equal(t, []byte{0x80, 0x80, 0x80, 0x80}, b)

	fillSilence(b, SampleS16)
	assert.Equal(t, []byte{0, 0, 0, 0}, b)
}

func TestStreamConfig(t *testing.T) {
	t.Parallel()

	cfg := StreamConfig{Channels: 2, SampleRate: 48000, Format: SampleS24}
	assert.Equal(t, 6, cfg.FrameSize())
	assert.Equal(t, "s24 48000Hz 2ch", cfg.String())
	assert.NoError(t, cfg.validate())

	assert.ErrorIs(t, StreamConfig{SampleRate: 48000, Format: SampleF32}.validate(), ErrInvalidStreamConfig)
	assert.ErrorIs(t, StreamConfig{Channels: 1, Format: SampleF32}.validate(), ErrInvalidStreamConfig)

	err := StreamConfig{Channels: 1, SampleRate: 8000}.validate()
	assert.ErrorIs(t, err, ErrUnsupportedSampleFormat)
	assert.ErrorIs(t, err, ErrDevice)
}
