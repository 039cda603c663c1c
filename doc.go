// SPDX-License-Identifier: EPL-2.0

// Package vibe decodes audio files of any supported format into a single
// stream of normalized samples.
//
// The format is detected from the content. Each adapter is offered the
// stream in a fixed order (see Formats) and the first one that accepts it
// is used:
//
//	f, _ := os.Open("song")
//	dec, err := vibe.NewDecoder(f)
//	if errors.Is(err, audio.ErrUnrecognizedFormat) {
//	    // f is unchanged and can be handed elsewhere
//	}
//	fmt.Println(dec.Info())
//
// OpenFile does the same for a path, trying the format its extension
// suggests first.
//
// # Supported Formats
//
//   - WAV via formats/wav (8/16/24/32-bit PCM, 32-bit float)
//   - AIFF via formats/aiff
//   - FLAC via formats/flac
//   - Ogg Vorbis via formats/vorbis
//   - MP3 via formats/mp3
//
// Each adapter can also be used on its own through its Open function.
//
// # Detection Rules
//
// An adapter either does not recognize the stream, in which case the next
// one is tried from the same position, or it recognizes it. A recognized
// stream that cannot be decoded (a 12-bit WAV, a corrupt FLAC header) ends
// detection with an error wrapping audio.ErrMalformedStream. Once
// NewDecoder fails, the reader is always back where it started.
//
// A stream that two adapters would both accept goes to the one probed
// first.
//
// # Playback
//
// A Decoder is an audio.Source and can be handed to the playback package:
//
//	eng := playback.NewEngine(playback.Config{Device: &playback.MalgoDevice{}})
//	sess, err := eng.Create(dec)
//	sess.Play()
//	<-sess.Done()
package vibe
