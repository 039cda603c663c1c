// SPDX-License-Identifier: EPL-2.0

package audio

// ChannelMapper converts a frame with In channels into a frame with Out
// channels:
//   - equal counts copy through
//   - a mono input fans out to every output channel
//   - fewer outputs fold input channel c into output c%Out and average
//   - more outputs repeat input channel o%In
type ChannelMapper struct {
	in, out int
	scale   []float32 // per output channel, used when folding
}

func NewChannelMapper(in, out int) *ChannelMapper {
	in = max(in, 1)
	out = max(out, 1)

	m := &ChannelMapper{in: in, out: out}
	if out < in {
		m.scale = make([]float32, out)
		for c := range in {
			m.scale[c%out]++
		}
		for o := range m.scale {
			m.scale[o] = 1 / m.scale[o]
		}
	}

	return m
}

func (m *ChannelMapper) In() int  { return m.in }
func (m *ChannelMapper) Out() int { return m.out }

// Map writes one output frame into dst from the input frame src.
// len(src) must be In and len(dst) must be Out.
func (m *ChannelMapper) Map(dst, src []float32) {
	switch {
	case m.in == m.out:
		copy(dst, src)
	case m.in == 1:
		v := src[0]
		for o := range dst {
			dst[o] = v
		}
	case m.out < m.in:
		if m.out == 1 && m.in == 2 {
			dst[0] = (src[0] + src[1]) * 0.5
			return
		}
		clear(dst)
		for c, v := range src {
			dst[c%m.out] += v
		}
		for o := range dst {
			dst[o] *= m.scale[o]
		}
	default:
		for o := range dst {
			dst[o] = src[o%m.in]
		}
	}
}
