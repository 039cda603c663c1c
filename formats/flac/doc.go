// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC streams into normalized samples using
// github.com/mewkiz/flac.
//
// FLAC frames carry one subframe per channel. The decoder transposes each
// frame into interleaved order and divides every sample by 2^(bits-1)-1,
// where bits is the depth declared in STREAMINFO. A frame whose channel
// count, rate or depth disagrees with STREAMINFO ends the stream with
// ErrFormatChanged.
//
// Duration comes from the total sample count in STREAMINFO. Encoders that
// leave it zero produce a Decoder whose Info reports no duration.
//
//	f, _ := os.Open("audio.flac")
//	dec, err := flac.Open(f)
//	if err != nil {
//	    return err
//	}
//	defer dec.Close()
package flac
