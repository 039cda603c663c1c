// SPDX-License-Identifier: EPL-2.0

//go:build !portaudio

package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPortAudioDevice_NotBuiltIn(t *testing.T) {
	t.Parallel()

	_, _, err := (&PortAudioDevice{}).Open(nil)
	assert.ErrorIs(t, err, ErrBackendNotAvailable)
	assert.ErrorIs(t, err, ErrDevice)
	assert.ErrorContains(t, err, "-tags portaudio")
}
