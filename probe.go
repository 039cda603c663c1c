// SPDX-License-Identifier: EPL-2.0

package vibe

import (
	"io"

	"github.com/ik5/vibe/audio"
	"github.com/ik5/vibe/formats/aiff"
	"github.com/ik5/vibe/formats/flac"
	"github.com/ik5/vibe/formats/mp3"
	"github.com/ik5/vibe/formats/vorbis"
	"github.com/ik5/vibe/formats/wav"
)

// candidate is one entry of the probe order.
type candidate struct {
	format audio.Format
	open   func(io.ReadSeeker) (audio.Source, error)
}

func adapt[T audio.Source](open func(io.ReadSeeker) (T, error)) func(io.ReadSeeker) (audio.Source, error) {
	return func(rs io.ReadSeeker) (audio.Source, error) {
		d, err := open(rs)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
}

// probeOrder lists the adapters from the strongest signature to the
// weakest. MP3 has no fixed magic and must stay last.
var probeOrder = []candidate{
	{audio.Wav, adapt(wav.Open)},
	{audio.Aiff, adapt(aiff.Open)},
	{audio.Flac, adapt(flac.Open)},
	{audio.Ogg, adapt(vorbis.Open)},
	{audio.Mp3, adapt(mp3.Open)},
}

// Formats returns the supported formats in the order they are probed.
func Formats() []audio.Format {
	out := make([]audio.Format, len(probeOrder))
	for i, c := range probeOrder {
		out[i] = c.format
	}
	return out
}

// Probe reports which format rs holds without consuming it: the position
// of rs is the same when Probe returns, whether or not a format matched.
func Probe(rs io.ReadSeeker) (audio.Format, error) {
	var format audio.Format

	err := audio.Preserve(rs, func() error {
		d, err := dispatch(rs, probeOrder)
		if err != nil {
			return err
		}
		format = d.Format()
		return d.Close()
	})
	if err != nil {
		return audio.FormatUnknown, err
	}

	return format, nil
}

// reorder moves the candidate for f to the front, keeping the rest in
// probe order.
func reorder(candidates []candidate, f audio.Format) []candidate {
	out := make([]candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.format == f {
			out = append(out, c)
		}
	}
	for _, c := range candidates {
		if c.format != f {
			out = append(out, c)
		}
	}
	return out
}
