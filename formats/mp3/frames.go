// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bufio"
	"fmt"
	"io"
)

// maxSyncSearch bounds how far past the start (or the ID3 tag) the scan
// looks for the first frame.
const maxSyncSearch = 64 << 10

// frameHeader is the 32-bit header that starts every MPEG audio frame.
type frameHeader uint32

const (
	mpeg25 = 0
	mpeg2  = 2
	mpeg1  = 3

	layer3 = 1
	layer2 = 2
	layer1 = 3

	modeMono = 3
)

var sampleRates = [3]int{44100, 48000, 32000}

// bitrates in kbit/s, by [MPEG-1][layer - 1][index].
var bitrates = [2][3][15]int{
	{ // MPEG-2 and 2.5
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160},
		{0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256},
	},
	{ // MPEG-1
		{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320},
		{0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384},
		{0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448},
	},
}

func (h frameHeader) version() int      { return int(h>>19) & 3 }
func (h frameHeader) layer() int        { return int(h>>17) & 3 }
func (h frameHeader) bitrateIndex() int { return int(h>>12) & 15 }
func (h frameHeader) rateIndex() int    { return int(h>>10) & 3 }
func (h frameHeader) padding() int      { return int(h>>9) & 1 }
func (h frameHeader) mono() bool        { return int(h>>6)&3 == modeMono }

// valid reports whether h is a frame header whose length can be computed.
// Free-format bitrates are not.
func (h frameHeader) valid() bool {
	return h&0xFFE00000 == 0xFFE00000 &&
		h.version() != 1 &&
		h.layer() != 0 &&
		h.bitrateIndex() != 0 && h.bitrateIndex() != 15 &&
		h.rateIndex() != 3
}

func (h frameHeader) sampleRate() int {
	rate := sampleRates[h.rateIndex()]
	switch h.version() {
	case mpeg2:
		return rate / 2
	case mpeg25:
		return rate / 4
	default:
		return rate
	}
}

func (h frameHeader) bitrate() int {
	v1 := 0
	if h.version() == mpeg1 {
		v1 = 1
	}
	return bitrates[v1][h.layer()-1][h.bitrateIndex()] * 1000
}

// size returns the length of the frame in bytes, header included.
func (h frameHeader) size() int {
	br, rate := h.bitrate(), h.sampleRate()

	switch {
	case h.layer() == layer1:
		return (12*br/rate + h.padding()) * 4
	case h.layer() == layer3 && h.version() != mpeg1:
		return 72*br/rate + h.padding()
	default:
		return 144*br/rate + h.padding()
	}
}

// samples returns the PCM frames one MPEG frame decodes to.
func (h frameHeader) samples() int {
	switch {
	case h.layer() == layer1:
		return 384
	case h.layer() == layer3 && h.version() != mpeg1:
		return 576
	default:
		return 1152
	}
}

// sameFormat reports whether frames with headers h and o decode to the same
// PCM layout.
func (h frameHeader) sameFormat(o frameHeader) bool {
	return h.version() == o.version() &&
		h.layer() == o.layer() &&
		h.rateIndex() == o.rateIndex() &&
		h.mono() == o.mono()
}

func (h frameHeader) String() string {
	ch := "stereo"
	if h.mono() {
		ch = "mono"
	}
	return fmt.Sprintf("%dHz %s", h.sampleRate(), ch)
}

// formatChange locates the first frame whose layout differs from the
// first frame of the stream.
type formatChange struct {
	// pcmBytes is how much decoded output precedes the changed frame.
	pcmBytes int64
	err      error
}

// scanFormatChange walks the frame headers of r, past any ID3v2 tag, and
// returns the first layout change, or nil when every frame agrees. The
// walk stops quietly at the first byte run that is not a frame; go-mp3
// reports real damage while decoding.
func scanFormatChange(r io.Reader) *formatChange {
	br := bufio.NewReaderSize(r, 4096)
	skipID3v2(br)

	first, ok := syncFirstFrame(br)
	if !ok {
		return nil
	}

	var pcm int64
	h := first
	for index := 0; ; index++ {
		if !h.sameFormat(first) {
			return &formatChange{
				pcmBytes: pcm,
				err:      fmt.Errorf("%w: frame %d is %s, stream is %s", ErrFormatChanged, index, h, first),
			}
		}
		pcm += int64(h.samples() * bytesPerFrame)

		if _, err := br.Discard(h.size()); err != nil {
			return nil
		}

		next, ok := peekHeader(br)
		if !ok || !next.valid() {
			return nil
		}
		h = next
	}
}

func peekHeader(br *bufio.Reader) (frameHeader, bool) {
	b, err := br.Peek(4)
	if err != nil {
		return 0, false
	}
	return frameHeader(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])), true
}

// syncFirstFrame advances br to the first valid frame header.
func syncFirstFrame(br *bufio.Reader) (frameHeader, bool) {
	for range maxSyncSearch {
		h, ok := peekHeader(br)
		if !ok {
			return 0, false
		}
		if h.valid() {
			return h, true
		}
		if _, err := br.Discard(1); err != nil {
			return 0, false
		}
	}
	return 0, false
}

// skipID3v2 discards an ID3v2 tag at the current position, if any.
func skipID3v2(br *bufio.Reader) {
	b, err := br.Peek(10)
	if err != nil || string(b[:3]) != "ID3" {
		return
	}

	// the size is syncsafe: 7 bits per byte
	size := int(b[6]&0x7f)<<21 | int(b[7]&0x7f)<<14 | int(b[8]&0x7f)<<7 | int(b[9]&0x7f)
	size += 10
	if b[5]&0x10 != 0 {
		size += 10 // footer
	}
	_, _ = br.Discard(size)
}
