// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/ik5/vibe/audio"
	"github.com/ik5/vibe/utils"
)

// mockOggVorbisReader simulates the oggvorbis.Reader for testing. Each Read
// returns at most chunk values, like a decoded packet.
type mockOggVorbisReader struct {
	sampleRate int
	channels   int
	length     int64
	samples    []float32
	chunk      int
	offset     int
	empties    int   // zero-length reads before the data
	failAfter  int   // fail once offset reaches this value; 0 disables
	err        error // error returned by the failing read
	errInline  bool  // return err together with the values before failAfter
}

func (m *mockOggVorbisReader) SampleRate() int { return m.sampleRate }
func (m *mockOggVorbisReader) Channels() int   { return m.channels }
func (m *mockOggVorbisReader) Length() int64   { return m.length }

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.empties > 0 {
		m.empties--
		return 0, nil
	}
	if m.failAfter > 0 && m.offset >= m.failAfter {
		return 0, m.err
	}
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	n := min(len(buf), len(m.samples)-m.offset)
	if m.chunk > 0 {
		n = min(n, m.chunk)
	}
	if m.errInline && m.failAfter > 0 {
		n = min(n, m.failAfter-m.offset)
	}
	copy(buf, m.samples[m.offset:m.offset+n])
	m.offset += n

	if m.errInline && m.offset == m.failAfter {
		return n, m.err
	}
	return n, nil
}

func mustDecoder(t *testing.T, m *mockOggVorbisReader) *Decoder {
	t.Helper()

	d, err := newDecoder(m)
	if err != nil {
		t.Fatalf("newDecoder() error = %v", err)
	}
	return d
}

func readAll(d *Decoder) ([]audio.Sample, error) {
	var out []audio.Sample
	for {
		s, err := d.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, s)
	}
}

func TestDecoder_Info(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		rate, ch     int
		length       int64
		wantDuration time.Duration
		hasDuration  bool
	}{
		{"stereo 1s", 44100, 2, 44100, time.Second, true},
		{"mono 250ms", 48000, 1, 12000, 250 * time.Millisecond, true},
		{"unknown length", 22050, 2, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := mustDecoder(t, &mockOggVorbisReader{sampleRate: tt.rate, channels: tt.ch, length: tt.length})
			info := d.Info()

			if info.SampleRate != tt.rate || info.Channels != tt.ch || info.Format != audio.Ogg {
				t.Errorf("Info() = %v", info)
			}
			if info.Duration != tt.wantDuration || info.HasDuration != tt.hasDuration {
				t.Errorf("Duration = %v (%v), want %v (%v)", info.Duration, info.HasDuration, tt.wantDuration, tt.hasDuration)
			}
		})
	}
}

func TestDecoder_QuantizesTo16Bit(t *testing.T) {
	t.Parallel()

	values := []float32{0.1, -0.5, 0.123456789, 1, -1, 0}
	d := mustDecoder(t, &mockOggVorbisReader{sampleRate: 8000, channels: 2, samples: values})

	got, err := readAll(d)
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if len(got) != len(values) {
		t.Fatalf("got %d samples, want %d", len(got), len(values))
	}
	for i, v := range values {
		if want := utils.Quantize16(v); got[i] != want {
			t.Errorf("sample %d = %v, want %v", i, got[i], want)
		}
	}
}

func TestDecoder_AdvancesAcrossPackets(t *testing.T) {
	t.Parallel()

	samples := make([]float32, 1000)
	for i := range samples {
		samples[i] = float32(i%100) / 100
	}

	d := mustDecoder(t, &mockOggVorbisReader{
		sampleRate: 44100,
		channels:   2,
		samples:    samples,
		chunk:      64,
		empties:    3,
	})

	got, err := readAll(d)
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if len(got) != len(samples) {
		t.Errorf("got %d samples, want %d", len(got), len(samples))
	}
}

func TestDecoder_AdvanceFailureIsTerminal(t *testing.T) {
	t.Parallel()

	d := mustDecoder(t, &mockOggVorbisReader{
		sampleRate: 44100,
		channels:   1,
		samples:    make([]float32, 100),
		chunk:      10,
		failAfter:  30,
		err:        io.ErrUnexpectedEOF,
	})

	got, err := readAll(d)
	if len(got) != 30 {
		t.Errorf("samples before failure = %d, want 30", len(got))
	}
	if !errors.Is(err, audio.ErrMalformedStream) || !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("error = %v, want malformed wrapping io.ErrUnexpectedEOF", err)
	}

	for range 3 {
		if _, err := d.Next(); !errors.Is(err, io.EOF) {
			t.Errorf("Next() after failure = %v, want io.EOF", err)
		}
	}
}

func TestDecoder_ErrorWithDataIsHeld(t *testing.T) {
	t.Parallel()

	errBad := errors.New("invalid packet")
	d := mustDecoder(t, &mockOggVorbisReader{
		sampleRate: 44100,
		channels:   2,
		samples:    make([]float32, 100),
		chunk:      16,
		failAfter:  40,
		err:        errBad,
		errInline:  true,
	})

	got, err := readAll(d)
	if len(got) != 40 {
		t.Errorf("samples before failure = %d, want 40", len(got))
	}
	if !errors.Is(err, errBad) || !errors.Is(err, audio.ErrMalformedStream) {
		t.Fatalf("error = %v, want malformed wrapping the read error", err)
	}
	if _, err := d.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("Next() after failure = %v, want io.EOF", err)
	}
}

func TestDecoder_EOFWithData(t *testing.T) {
	t.Parallel()

	d := mustDecoder(t, &mockOggVorbisReader{
		sampleRate: 44100,
		channels:   1,
		samples:    make([]float32, 25),
		chunk:      10,
		failAfter:  25,
		err:        io.EOF,
		errInline:  true,
	})

	got, err := readAll(d)
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if len(got) != 25 {
		t.Errorf("got %d samples, want 25", len(got))
	}
}

func TestDecoder_EndIsTerminal(t *testing.T) {
	t.Parallel()

	d := mustDecoder(t, &mockOggVorbisReader{sampleRate: 8000, channels: 1, samples: []float32{0.5}})

	if _, err := d.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	for range 3 {
		if _, err := d.Next(); !errors.Is(err, io.EOF) {
			t.Errorf("Next() = %v, want io.EOF", err)
		}
	}
}

func TestDecoder_PacketBufferHoldsWholeFrames(t *testing.T) {
	t.Parallel()

	for _, ch := range []int{1, 2, 3, 6, 8} {
		d := mustDecoder(t, &mockOggVorbisReader{sampleRate: 48000, channels: ch})
		if len(d.packet)%ch != 0 {
			t.Errorf("%d channels: packet buffer %d is not a multiple of the channel count", ch, len(d.packet))
		}
	}
}

func TestNewDecoder_InvalidHeader(t *testing.T) {
	t.Parallel()

	_, err := newDecoder(&mockOggVorbisReader{sampleRate: 0, channels: 2})
	if !errors.Is(err, ErrInvalidHeader) || !errors.Is(err, audio.ErrMalformedStream) {
		t.Errorf("newDecoder() error = %v, want ErrInvalidHeader", err)
	}
}

// oggPage builds a first-page header with one segment carrying payload.
func oggPage(payload []byte) []byte {
	page := make([]byte, 27, 28+len(payload))
	copy(page, "OggS")
	page[5] = 0x02 // beginning of stream
	page[26] = 1
	page = append(page, byte(len(payload)))
	return append(page, payload...)
}

func TestOpen_NotOgg(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"text", []byte("This is not Ogg Vorbis data at all, just text")},
		{"wav", []byte("RIFF\x24\x00\x00\x00WAVEfmt \x10\x00\x00\x00\x01\x00\x01\x00")},
		{"short capture", []byte("Ogg")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := bytes.NewReader(tt.data)
			_, err := Open(r)
			if !errors.Is(err, ErrNotVorbisFile) || !errors.Is(err, audio.ErrUnrecognizedFormat) {
				t.Errorf("Open() error = %v, want ErrNotVorbisFile", err)
			}
			if pos, _ := r.Seek(0, io.SeekCurrent); pos != 0 {
				t.Errorf("position after failed Open() = %d, want 0", pos)
			}
		})
	}
}

func TestOpen_OggWithoutVorbis(t *testing.T) {
	t.Parallel()

	r := bytes.NewReader(oggPage([]byte("OpusHead\x01\x02")))

	_, err := Open(r)
	if !errors.Is(err, audio.ErrUnsupportedEncoding) {
		t.Errorf("Open() error = %v, want ErrUnsupportedEncoding", err)
	}
	if pos, _ := r.Seek(0, io.SeekCurrent); pos != 0 {
		t.Errorf("position after failed Open() = %d, want 0", pos)
	}
}

func TestOpen_CorruptVorbisHeader(t *testing.T) {
	t.Parallel()

	// identification packet truncated after the signature
	r := bytes.NewReader(oggPage([]byte("\x01vorbis")))

	_, err := Open(r)
	if !errors.Is(err, audio.ErrMalformedStream) {
		t.Errorf("Open() error = %v, want ErrMalformedStream", err)
	}
	if errors.Is(err, audio.ErrUnrecognizedFormat) {
		t.Errorf("Open() error = %v, a Vorbis header must not be reported as foreign", err)
	}
	if pos, _ := r.Seek(0, io.SeekCurrent); pos != 0 {
		t.Errorf("position after failed Open() = %d, want 0", pos)
	}
}
