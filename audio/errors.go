// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrUnrecognizedFormat is returned when no decoder accepts a byte source.
	// The source is left at the position it had before probing.
	ErrUnrecognizedFormat = errors.New("unrecognized audio format")

	// ErrMalformedStream marks failures after a header was accepted.
	ErrMalformedStream = errors.New("malformed audio stream")

	// ErrUnsupportedEncoding is wrapped together with ErrMalformedStream for
	// bit depth / encoding combinations a decoder refuses.
	ErrUnsupportedEncoding = errors.New("unsupported sample encoding")

	// ErrDevice is returned when an output stream cannot be opened or started.
	ErrDevice = errors.New("audio device error")

	ErrNegativeOffset = errors.New("seek before start of stream")
)

// Malformed wraps err as ErrMalformedStream unless it already is one.
func Malformed(err error) error {
	if err == nil || errors.Is(err, ErrMalformedStream) {
		return err
	}

	return fmt.Errorf("%w: %w", ErrMalformedStream, err)
}

// Unsupported reports a header combination a decoder will not decode.
func Unsupported(format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", ErrMalformedStream, ErrUnsupportedEncoding, fmt.Sprintf(format, args...))
}
