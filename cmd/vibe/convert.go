// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ik5/vibe"
	"github.com/ik5/vibe/audio"
	"github.com/ik5/vibe/formats/wav"
)

type ConvertCmd struct {
	In  string `arg:"" help:"Input audio file." type:"path"`
	Out string `arg:"" help:"Output WAV file." type:"path"`
}

func (c *ConvertCmd) Run(g *Globals) error {
	dec, err := vibe.OpenFile(c.In)
	if err != nil {
		return err
	}
	defer dec.Close()

	out, err := os.Create(c.Out)
	if err != nil {
		return fmt.Errorf("create %s: %w", c.Out, err)
	}

	frames, err := wav.Export(out, dec)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.Join(fmt.Errorf("convert %s: %w", c.In, err), os.Remove(c.Out))
	}

	info := dec.Info()
	slog.Info("converted",
		"in", c.In, "out", c.Out, "format", info.Format.String(), "frames", frames)

	_, err = fmt.Fprintf(g.out(), "%s: wrote %d frames (%s) to %s\n",
		c.In, frames, audio.DurationFromFrames(frames, info.SampleRate), c.Out)
	return err
}
