// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"errors"
	"fmt"

	"github.com/ik5/vibe/audio"
)

var (
	// ErrDevice is returned when an output stream cannot be opened or
	// started. It is the same value as audio.ErrDevice.
	ErrDevice = audio.ErrDevice

	// ErrBackendNotAvailable indicates a backend compiled out of this binary
	ErrBackendNotAvailable = fmt.Errorf("%w: backend not available", ErrDevice)

	// ErrNoSuchDevice indicates no output device matched the requested name
	ErrNoSuchDevice = fmt.Errorf("%w: no matching output device", ErrDevice)

	// ErrUnsupportedSampleFormat indicates a device format the filler cannot produce
	ErrUnsupportedSampleFormat = fmt.Errorf("%w: unsupported sample format", ErrDevice)

	// ErrInvalidStreamConfig indicates a device reported zero channels or rate
	ErrInvalidStreamConfig = fmt.Errorf("%w: invalid stream configuration", ErrDevice)

	errNilSource = errors.New("nil audio source")
)

// deviceError makes sure err matches ErrDevice.
func deviceError(err error) error {
	if err == nil || errors.Is(err, ErrDevice) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrDevice, err)
}
