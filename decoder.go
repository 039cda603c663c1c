// SPDX-License-Identifier: EPL-2.0

package vibe

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ik5/vibe/audio"
)

var extensions = newExtensions()

func newExtensions() *audio.Registry {
	r := audio.NewRegistry()
	r.Register(audio.Wav, ".wav", ".wave")
	r.Register(audio.Aiff, ".aif", ".aiff", ".aifc")
	r.Register(audio.Flac, ".flac")
	r.Register(audio.Ogg, ".ogg", ".oga")
	r.Register(audio.Mp3, ".mp3")
	return r
}

// Extensions returns the file extensions OpenFile tries first for f.
func Extensions(f audio.Format) []string {
	return extensions.Extensions(f)
}

// Decoder is a format-independent audio.Source. It holds exactly one
// format adapter, selected when the stream was opened.
type Decoder struct {
	format audio.Format
	src    audio.Source
	file   io.Closer
}

// NewDecoder detects the format of rs and opens it. When no format
// accepts the stream the error wraps audio.ErrUnrecognizedFormat and rs is
// back at its original position.
func NewDecoder(rs io.ReadSeeker) (*Decoder, error) {
	return dispatch(rs, probeOrder)
}

// OpenFile opens path, trying the format its extension suggests before
// falling back to content detection. Closing the Decoder closes the file.
func OpenFile(path string) (*Decoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	candidates := probeOrder
	if format, ok := extensions.ForPath(path); ok {
		candidates = reorder(probeOrder, format)
	}

	d, err := dispatch(f, candidates)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	d.file = f

	return d, nil
}

// dispatch offers rs to each candidate in turn. A candidate that does not
// recognize the stream passes it on unchanged; one that recognizes it but
// fails ends the search with its error.
func dispatch(rs io.ReadSeeker, candidates []candidate) (*Decoder, error) {
	for _, c := range candidates {
		src, err := c.open(rs)
		if err == nil {
			return &Decoder{format: c.format, src: src}, nil
		}
		if !errors.Is(err, audio.ErrUnrecognizedFormat) {
			return nil, fmt.Errorf("%s: %w", c.format, err)
		}

		slog.Debug("format rejected stream", "format", c.format, "reason", err)
	}

	return nil, audio.ErrUnrecognizedFormat
}

// Format returns the format of the underlying stream.
func (d *Decoder) Format() audio.Format { return d.format }

func (d *Decoder) Info() audio.Info { return d.src.Info() }

// BitDepth returns the sample size stored in the stream. It reports false
// for formats without one, such as MP3 and Vorbis.
func (d *Decoder) BitDepth() (int, bool) {
	if b, ok := d.src.(interface{ BitDepth() int }); ok {
		return b.BitDepth(), true
	}
	return 0, false
}

func (d *Decoder) Next() (audio.Sample, error) { return d.src.Next() }

func (d *Decoder) Close() error {
	err := d.src.Close()
	if d.file != nil {
		err = errors.Join(err, d.file.Close())
	}
	return err
}
