// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

const (
	maxInt8  = 127
	maxInt16 = 32767
	maxInt24 = 8388607
	maxInt32 = 2147483647
)

// Clamp limits x to [-1, 1].
func Clamp(x float32) float32 {
	if x > 1 {
		return 1
	} else if x < -1 {
		return -1
	}

	return x
}

func Float32ToInt16(x float32) int16 {
	// Use 32767 for positive max to avoid overflow
	return int16(Clamp(x) * maxInt16)
}

// Float32ToUint8 maps x onto unsigned 8-bit PCM where 128 is silence,
// rounding to the nearest step.
func Float32ToUint8(x float32) uint8 {
	return uint8(128 + int(math.Round(float64(Clamp(x))*maxInt8)))
}

// Float32ToInt24 returns a 24-bit value in the low bits of an int32.
func Float32ToInt24(x float32) int32 {
	return int32(Clamp(x) * maxInt24)
}

func Float32ToInt32(x float32) int32 {
	// float32 cannot hold 2147483647 exactly; scale in float64.
	return int32(float64(Clamp(x)) * maxInt32)
}

// Int16ToFloat32 normalizes a 16-bit sample by the 16-bit signed maximum.
func Int16ToFloat32(v int16) float32 {
	return float32(v) / maxInt16
}

// Quantize16 rounds x to the nearest value representable by 16-bit PCM
// (truncating, like Float32ToInt16) and normalizes it back.
func Quantize16(x float32) float32 {
	return Int16ToFloat32(Float32ToInt16(x))
}

// PutFloat32LE writes x as a little-endian IEEE 754 value into b[:4].
func PutFloat32LE(b []byte, x float32) {
	bits := math.Float32bits(x)
	b[0] = byte(bits)
	b[1] = byte(bits >> 8)
	b[2] = byte(bits >> 16)
	b[3] = byte(bits >> 24)
}
