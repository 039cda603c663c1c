// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"errors"
	"fmt"

	"github.com/ik5/vibe/audio"
)

var (
	// ErrNotFlacFile indicates the stream does not start with the fLaC signature
	ErrNotFlacFile = fmt.Errorf("%w: not a FLAC file", audio.ErrUnrecognizedFormat)

	// ErrInvalidStreamInfo indicates a STREAMINFO block with zero rate or channels
	ErrInvalidStreamInfo = errors.New("invalid FLAC STREAMINFO")

	// ErrFormatChanged indicates a frame disagreeing with STREAMINFO
	ErrFormatChanged = errors.New("FLAC frame format differs from stream")

	// ErrRaggedBlock indicates subframes of different lengths in one frame
	ErrRaggedBlock = errors.New("FLAC subframes differ in length")
)
