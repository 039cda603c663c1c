// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"

	"github.com/ik5/vibe/audio"
)

var (
	ErrNotWavFile           = fmt.Errorf("%w: not a WAV file", audio.ErrUnrecognizedFormat)
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	ErrNoPCMData            = errors.New("WAV data chunk not found")
)
