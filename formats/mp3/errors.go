// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"errors"
	"fmt"

	"github.com/ik5/vibe/audio"
)

var (
	// ErrNotMP3File indicates no MPEG audio frame could be found
	ErrNotMP3File = fmt.Errorf("%w: not an MP3 file", audio.ErrUnrecognizedFormat)

	ErrInvalidSampleRate = errors.New("invalid MP3 sample rate")

	// ErrFormatChanged indicates a frame whose sample rate or channel mode differs
	// from the first frame
	ErrFormatChanged = errors.New("MP3 frame format differs from stream")
)
