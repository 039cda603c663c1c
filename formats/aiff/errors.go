// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"errors"
	"fmt"

	"github.com/ik5/vibe/audio"
)

var (
	// ErrNotAiffFile indicates the file is not a FORM/AIFF or FORM/AIFC container
	ErrNotAiffFile = fmt.Errorf("%w: not an AIFF file", audio.ErrUnrecognizedFormat)

	// ErrUnsupportedAiffLayout indicates an unreadable or empty COMM chunk
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")
)
