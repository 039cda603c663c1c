// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams using
// github.com/jfreymuth/oggvorbis.
//
// Samples are decoded a packet at a time and handed out one by one. Each
// value is quantized to 16-bit precision and normalized by 32767, so a
// Vorbis stream yields the same values a 16-bit PCM rendition of it would.
//
// # Duration
//
// When the reader is seekable the library scans for the last granule
// position before decoding starts and rewinds afterwards. The decoder turns
// that into Info.Duration. Streams whose length cannot be determined report
// no duration.
//
// # Probing
//
// Open first checks for an Ogg page whose first packet is a Vorbis
// identification header. Ogg streams carrying another codec (Opus, FLAC)
// are rejected with audio.ErrUnsupportedEncoding; anything that is not Ogg at
// all yields ErrNotVorbisFile.
//
//	f, _ := os.Open("audio.ogg")
//	dec, err := vorbis.Open(f)
//	if err != nil {
//	    return err
//	}
//	n, err := audio.Drain(dec)
package vorbis
