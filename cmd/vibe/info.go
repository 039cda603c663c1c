// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ik5/vibe"
	"github.com/ik5/vibe/audio"
)

type InfoCmd struct {
	Files   []string `arg:"" name:"file" help:"Audio files to inspect." type:"path"`
	Measure bool     `help:"Decode every sample and report the measured duration."`
}

func (c *InfoCmd) Run(g *Globals) error {
	var errs []error
	for _, path := range c.Files {
		if err := c.describe(g.out(), path); err != nil {
			slog.Error("inspecting file failed", "path", path, "error", err)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (c *InfoCmd) describe(w io.Writer, path string) error {
	dec, err := vibe.OpenFile(path)
	if err != nil {
		return err
	}
	defer dec.Close()

	info := dec.Info()
	line := fmt.Sprintf("%s: %s", path, info)
	if bits, ok := dec.BitDepth(); ok {
		line += fmt.Sprintf(" bits=%d", bits)
	}
	if frames := info.Frames(); frames > 0 {
		line += fmt.Sprintf(" frames=%d", frames)
	}

	if c.Measure {
		n, err := audio.Drain(dec)
		if err != nil {
			return fmt.Errorf("%s: decode after %d samples: %w", path, n, err)
		}
		line += fmt.Sprintf(" measured=%s samples=%d", audio.MeasuredDuration(n, info), n)
	}

	_, err = fmt.Fprintln(w, line)
	return err
}
