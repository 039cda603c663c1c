// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/vibe/audio"
	"github.com/ik5/vibe/internal/audiotest"
)

func exportToFile(t *testing.T, src audio.Source) (string, int64) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	frames, err := Export(f, src)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	return path, frames
}

func TestExport_RoundTrip(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(8000, 2, 5000, func(frame, ch int) float32 {
		if ch == 0 {
			return 0.5
		}
		return -0.25
	})

	path, frames := exportToFile(t, src)
	if frames != 5000 {
		t.Errorf("Export() frames = %d, want 5000", frames)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	d, err := Open(f)
	if err != nil {
		t.Fatalf("Open() exported file error = %v", err)
	}

	info := d.Info()
	if info.SampleRate != 8000 || info.Channels != 2 || d.BitDepth() != 16 {
		t.Errorf("exported Info = %v bits=%d, want 8000Hz 2ch 16-bit", info, d.BitDepth())
	}

	samples := drainAll(t, d)
	if len(samples) != 10000 {
		t.Fatalf("decoded %d samples, want 10000", len(samples))
	}
	if math.Abs(float64(samples[0]-0.5)) > 1e-4 || math.Abs(float64(samples[1]+0.25)) > 1e-4 {
		t.Errorf("first frame = %v, %v, want 0.5, -0.25", samples[0], samples[1])
	}
}

func TestExport_EmptySource(t *testing.T) {
	t.Parallel()

	path, frames := exportToFile(t, audiotest.NewSilentSource(16000, 1, 0))
	if frames != 0 {
		t.Errorf("Export() frames = %d, want 0", frames)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	// A header-only file has no duration, which go-audio treats as invalid;
	// the bytes must still carry the RIFF/WAVE header.
	header := make([]byte, 12)
	if _, err := io.ReadFull(f, header); err != nil {
		t.Fatalf("read header: %v", err)
	}
	if string(header[:4]) != "RIFF" || string(header[8:]) != "WAVE" {
		t.Errorf("header = %q, want RIFF....WAVE", header)
	}
}

func TestExport_PropagatesDecodeError(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(8000, 1, 100, 0.1).FailAt(10, io.ErrUnexpectedEOF)

	f, err := os.Create(filepath.Join(t.TempDir(), "out.wav"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	_, err = Export(f, src)
	if !errors.Is(err, audio.ErrMalformedStream) {
		t.Errorf("Export() error = %v, want ErrMalformedStream", err)
	}
}
