// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/vibe/audio"
	"github.com/ik5/vibe/utils"
)

// exportFrames is the number of frames converted per encoder write.
const exportFrames = 4096

// Export decodes src to the end and writes it to w as 16-bit PCM WAV at the
// source's sample rate and channel count. It returns the number of frames
// written. w must be seekable so the header sizes can be patched on close.
func Export(w io.WriteSeeker, src audio.Source) (int64, error) {
	info := src.Info()
	if info.Channels < 1 || info.SampleRate < 1 {
		return 0, ErrUnsupportedWavLayout
	}

	enc := wav.NewEncoder(w, info.SampleRate, 16, info.Channels, formatPCM)

	samples := make([]audio.Sample, exportFrames*info.Channels)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: info.Channels, SampleRate: info.SampleRate},
		Data:           make([]int, 0, len(samples)),
		SourceBitDepth: 16,
	}

	var frames int64
	for {
		n, rerr := audio.ReadSamples(src, samples)
		if rerr != nil && !errors.Is(rerr, io.EOF) {
			_ = enc.Close()
			return frames, fmt.Errorf("export: %w", rerr)
		}

		// A trailing partial frame is dropped.
		n -= n % info.Channels
		buf.Data = buf.Data[:n]
		for i, s := range samples[:n] {
			buf.Data[i] = int(utils.Float32ToInt16(s))
		}

		// The first write also emits the header, so it happens even for an
		// empty source.
		if n > 0 || frames == 0 {
			if err := enc.Write(buf); err != nil {
				return frames, fmt.Errorf("export: %w", err)
			}
		}
		frames += int64(n / info.Channels)

		if rerr != nil {
			break
		}
	}

	if err := enc.Close(); err != nil {
		return frames, fmt.Errorf("export: %w", err)
	}

	return frames, nil
}
