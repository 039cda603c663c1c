// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio using
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces 16-bit little-endian stereo, upmixing mono
// streams, so every Decoder reports two channels. Samples are divided by
// 32767 like the other 16-bit sources.
//
// Decoding proceeds frame by frame. Frames that decode to nothing are
// skipped. go-mp3 fixes the sample rate at the first frame, so Open walks
// the frame headers itself; decoding ends with ErrFormatChanged where a
// frame's sample rate or channel mode differs from the first one.
//
// When the reader is seekable go-mp3 scans every frame header up front and
// rewinds; that scan provides Info.Duration. Otherwise no duration is
// reported.
//
// MP3 has no fixed signature, so Open accepts anything go-mp3 can find a
// frame in. Failures on data that starts with neither an ID3v2 tag nor a
// frame sync are reported as ErrNotMP3File.
//
//	f, _ := os.Open("audio.mp3")
//	dec, err := mp3.Open(f)
//	if err != nil {
//	    return err
//	}
//	for s, err := range audio.Samples(dec) {
//	    ...
//	}
package mp3
