// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes uncompressed AIFF and AIFF-C files using
// github.com/go-audio/aiff.
//
// Integer PCM at 8, 16, 24 and 32 bits is supported. Samples are divided by
// the signed maximum of their bit depth (go-audio's IntMaxSignedValue).
// Other depths are rejected with audio.ErrUnsupportedEncoding.
//
// Duration is taken from the sample frame count in the COMM chunk.
//
//	f, _ := os.Open("audio.aiff")
//	dec, err := aiff.Open(f)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // try another format
//	}
package aiff
