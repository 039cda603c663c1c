// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"

	"github.com/ik5/vibe/audio"
)

var (
	// ErrNotVorbisFile indicates the stream does not start with an Ogg page
	ErrNotVorbisFile = fmt.Errorf("%w: not an Ogg file", audio.ErrUnrecognizedFormat)

	ErrInvalidHeader = errors.New("invalid Vorbis identification header")
)
