// SPDX-License-Identifier: EPL-2.0

//go:build !portaudio

package playback

import "fmt"

// PortAudioDevice is unavailable in this build; Open always fails with
// ErrBackendNotAvailable. Build with -tags portaudio to enable it.
type PortAudioDevice struct {
	SampleRate      int
	Channels        int
	FramesPerBuffer int
}

func (d *PortAudioDevice) Open(CallbackFactory) (Stream, StreamConfig, error) {
	return nil, StreamConfig{}, fmt.Errorf("%w: portaudio support not enabled (build with -tags portaudio)", ErrBackendNotAvailable)
}
