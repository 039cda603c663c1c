// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/vibe"
	"github.com/ik5/vibe/audio"
	"github.com/ik5/vibe/internal/audiotest"
	"github.com/ik5/vibe/playback"
)

func TestInfoCmd(t *testing.T) {
	t.Parallel()

	path := audiotest.WAVFile(t, audiotest.Stereo16(44100))

	var out bytes.Buffer
	cmd := &InfoCmd{Files: []string{path}}
	require.NoError(t, cmd.Run(&Globals{Stdout: &out}))
	assert.Equal(t, path+": WAV 44100Hz 2ch duration=1s bits=16 frames=44100\n", out.String())

	out.Reset()
	cmd.Measure = true
	require.NoError(t, cmd.Run(&Globals{Stdout: &out}))
	assert.Contains(t, out.String(), "measured=1s samples=88200")
}

func TestInfoCmd_ReportsEveryFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	garbage := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(garbage, []byte("not audio at all"), 0o600))
	good := audiotest.WAVFile(t, audiotest.Stereo16(100))

	var out bytes.Buffer
	cmd := &InfoCmd{Files: []string{garbage, good, filepath.Join(dir, "missing.wav")}}
	err := cmd.Run(&Globals{Stdout: &out})

	require.Error(t, err)
	assert.ErrorIs(t, err, audio.ErrUnrecognizedFormat)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, out.String(), good+": WAV")
}

func TestConvertCmd(t *testing.T) {
	t.Parallel()

	in := audiotest.WAVFile(t, audiotest.Stereo16(22050))
	outPath := filepath.Join(t.TempDir(), "out.wav")

	var out bytes.Buffer
	cmd := &ConvertCmd{In: in, Out: outPath}
	require.NoError(t, cmd.Run(&Globals{Stdout: &out}))
	assert.Contains(t, out.String(), "wrote 22050 frames (500ms)")

	dec, err := vibe.OpenFile(outPath)
	require.NoError(t, err)
	defer dec.Close()

	info := dec.Info()
	assert.Equal(t, audio.Wav, info.Format)
	assert.Equal(t, 44100, info.SampleRate)
	assert.Equal(t, 2, info.Channels)

	n, err := audio.Drain(dec)
	require.NoError(t, err)
	assert.EqualValues(t, 44100, n)
}

func TestConvertCmd_UnrecognizedInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "in.bin")
	require.NoError(t, os.WriteFile(in, bytes.Repeat([]byte{0x42}, 64), 0o600))
	outPath := filepath.Join(dir, "out.wav")

	err := (&ConvertCmd{In: in, Out: outPath}).Run(&Globals{Stdout: &bytes.Buffer{}})
	assert.ErrorIs(t, err, audio.ErrUnrecognizedFormat)
	assert.NoFileExists(t, outPath)
}

func TestNewDevice(t *testing.T) {
	t.Parallel()

	info := audio.Info{SampleRate: 22050, Channels: 1}

	tests := []struct {
		name string
		want playback.Device
	}{
		{"malgo", &playback.MalgoDevice{Name: "USB"}},
		{"oto", &playback.OtoDevice{SampleRate: 22050, Channels: 1}},
		{"portaudio", &playback.PortAudioDevice{SampleRate: 22050, Channels: 1}},
	}

	for _, tt := range tests {
		dev, err := newDevice(tt.name, "USB", info)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, dev, tt.name)
	}

	dev, err := newDevice("null", "", info)
	require.NoError(t, err)
	null, ok := dev.(*playback.NullDevice)
	require.True(t, ok)
	assert.True(t, null.Realtime)
	assert.Equal(t, 22050, null.Config.SampleRate)

	_, err = newDevice("jack", "", info)
	assert.Error(t, err)

	assert.Equal(t, playback.ChannelsFanOut, channelPolicy("fanout"))
	assert.Equal(t, playback.ChannelsNative, channelPolicy("native"))
}
