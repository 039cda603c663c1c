// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/vibe/audio"
	"github.com/ik5/vibe/formats/wav"
	"github.com/ik5/vibe/internal/audiotest"
)

// Example_export writes a generated tone to disk and reads it back.
func Example_export() {
	dir, err := os.MkdirTemp("", "wav-example")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "tone.wav")
	out, err := os.Create(path)
	if err != nil {
		fmt.Println(err)
		return
	}

	frames, err := wav.Export(out, audiotest.NewSineSource(16000, 1, 16000, 440))
	out.Close()
	if err != nil {
		fmt.Println("export:", err)
		return
	}
	fmt.Println("frames written:", frames)

	in, err := os.Open(path)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer in.Close()

	dec, err := wav.Open(in)
	if err != nil {
		fmt.Println("open:", err)
		return
	}

	count, _ := audio.Drain(dec)
	fmt.Println(dec.Info())
	fmt.Println("samples:", count)
	// Output:
	// frames written: 16000
	// WAV 16000Hz 1ch duration=1s
	// samples: 16000
}

// Example_notWAV shows how a foreign stream is reported.
func Example_notWAV() {
	_, err := wav.Open(bytes.NewReader([]byte("This is not a WAV file")))

	fmt.Println(errors.Is(err, wav.ErrNotWavFile))
	fmt.Println(errors.Is(err, audio.ErrUnrecognizedFormat))
	// Output:
	// true
	// true
}
