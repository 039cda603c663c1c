// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"encoding/binary"

	"github.com/ik5/vibe/utils"
)

// putSample encodes x into b in format f. b must hold f.Size() bytes.
func putSample(b []byte, f SampleFormat, x float32) {
	switch f {
	case SampleU8:
		b[0] = utils.Float32ToUint8(x)
	case SampleS16:
		binary.LittleEndian.PutUint16(b, uint16(utils.Float32ToInt16(x)))
	case SampleS24:
		v := utils.Float32ToInt24(x)
		b[0] = byte(v)
		b[1] = byte(v >> 8)
		b[2] = byte(v >> 16)
	case SampleS32:
		binary.LittleEndian.PutUint32(b, uint32(utils.Float32ToInt32(x)))
	case SampleF32:
		utils.PutFloat32LE(b, utils.Clamp(x))
	}
}

// silenceByte is the byte value of a zero sample in f.
func silenceByte(f SampleFormat) byte {
	if f == SampleU8 {
		return 0x80
	}
	return 0
}

func fillSilence(b []byte, f SampleFormat) {
	s := silenceByte(f)
	if s == 0 {
		clear(b)
		return
	}
	for i := range b {
		b[i] = s
	}
}
