// SPDX-License-Identifier: EPL-2.0

// Package audio holds the data model shared by every decoder and by the
// playback engine.
//
// # Source Interface
//
// A Source is a lazy, finite, non-restartable sequence of interleaved
// samples:
//
//	type Source interface {
//	    Info() Info
//	    Next() (Sample, error)
//	    Close() error
//	}
//
// Next returns io.EOF at the end. Any other error is terminal; it is
// reported once and followed by io.EOF on every later call.
//
// # Sample Format
//
// Samples are float32 values in [-1.0, 1.0]. For C channels, samples 0..C
// belong to frame 0, C..2C to frame 1, and so on. Integer codecs are
// normalized by the maximum signed value of their bit depth, so the
// extremes map exactly to -1 (or just above) and 1.
//
// # Stream Metadata
//
// Info is an immutable snapshot of sample rate, channel count, Format and
// an optional Duration:
//
//	info := src.Info()
//	if info.HasDuration {
//	    fmt.Println(info.Duration)
//	}
//
// # Probing
//
// TryOpen and Preserve keep an io.ReadSeeker at the position it had before a
// probe or a scan. OffsetReadSeeker rebases a stream so libraries that rewind
// to offset 0 rewind to the start of the audio instead of the file.
//
// # Channel Mapping
//
// ChannelMapper converts frames between channel counts without resampling:
//
//	m := audio.NewChannelMapper(2, 1)
//	m.Map(dst, src) // dst[0] = (src[0]+src[1]) / 2
//
// # Error Handling
//
// Errors are classified with errors.Is against ErrUnrecognizedFormat,
// ErrMalformedStream (optionally with ErrUnsupportedEncoding) and ErrDevice:
//
//	for s, err := range audio.Samples(src) {
//	    if err != nil {
//	        return err // errors.Is(err, audio.ErrMalformedStream)
//	    }
//	    use(s)
//	}
package audio
