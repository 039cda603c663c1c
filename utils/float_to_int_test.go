// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{"zero", 0.0, 0},
		{"max positive", 1.0, math.MaxInt16},
		{"max negative", -1.0, -math.MaxInt16},
		{"half positive", 0.5, 16383},
		{"half negative", -0.5, -16383},
		{"clipped positive", 1.5, math.MaxInt16},
		{"clipped negative", -7, -math.MaxInt16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float32ToInt16(tt.input); got != tt.want {
				t.Errorf("Float32ToInt16(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFloat32ToUint8(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input float32
		want  uint8
	}{
		{0, 128},
		{1, 255},
		{-1, 1},
		{2, 255},
		{0.5, 192},
		{-0.5, 64},
		{0.001, 128},
	}

	for _, tt := range tests {
		if got := Float32ToUint8(tt.input); got != tt.want {
			t.Errorf("Float32ToUint8(%v) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestFloat32ToInt24(t *testing.T) {
	t.Parallel()

	if got := Float32ToInt24(1); got != 8388607 {
		t.Errorf("Float32ToInt24(1) = %d, want 8388607", got)
	}
	if got := Float32ToInt24(-1); got != -8388607 {
		t.Errorf("Float32ToInt24(-1) = %d, want -8388607", got)
	}
	if got := Float32ToInt24(0); got != 0 {
		t.Errorf("Float32ToInt24(0) = %d, want 0", got)
	}
}

func TestFloat32ToInt32(t *testing.T) {
	t.Parallel()

	if got := Float32ToInt32(1); got != math.MaxInt32 {
		t.Errorf("Float32ToInt32(1) = %d, want %d", got, math.MaxInt32)
	}
	if got := Float32ToInt32(-1); got != -math.MaxInt32 {
		t.Errorf("Float32ToInt32(-1) = %d, want %d", got, -math.MaxInt32)
	}
}

func TestQuantize16(t *testing.T) {
	t.Parallel()

	if got := Quantize16(1); got != 1 {
		t.Errorf("Quantize16(1) = %v, want 1", got)
	}
	if got := Quantize16(0); got != 0 {
		t.Errorf("Quantize16(0) = %v, want 0", got)
	}

	in := float32(0.123456789)
	got := Quantize16(in)
	if math.Abs(float64(got-in)) > 1.0/32767 {
		t.Errorf("Quantize16(%v) = %v, off by more than one step", in, got)
	}
}

func TestPutFloat32LE(t *testing.T) {
	t.Parallel()

	b := make([]byte, 4)
	PutFloat32LE(b, -0.75)

	if got := math.Float32frombits(binary.LittleEndian.Uint32(b)); got != -0.75 {
		t.Errorf("PutFloat32LE() decoded = %v, want -0.75", got)
	}
}

func BenchmarkFloat32ToInt16(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		_ = Float32ToInt16(0.5)
	}
}
