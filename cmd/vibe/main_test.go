// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvFileFromArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		wantPath     string
		wantExplicit bool
	}{
		{"none", []string{"info", "a.wav"}, ".env", false},
		{"equals", []string{"--env-file=prod.env", "info"}, "prod.env", true},
		{"separate", []string{"info", "--env-file", "dev.env", "a.wav"}, "dev.env", true},
		{"dangling", []string{"info", "--env-file"}, ".env", false},
		{"after terminator", []string{"info", "--", "--env-file=x"}, ".env", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path, explicit := envFileFromArgs(tt.args)
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantExplicit, explicit)
		})
	}
}

func TestLoadEnv(t *testing.T) {
	const key = "VIBE_TEST_LOAD_ENV"
	t.Cleanup(func() { os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=from-file\n"), 0o600))

	require.NoError(t, loadEnv([]string{"--env-file=" + path}))
	assert.Equal(t, "from-file", os.Getenv(key))
}

func TestLoadEnv_Missing(t *testing.T) {
	t.Chdir(t.TempDir())

	assert.NoError(t, loadEnv(nil), "a missing default file is ignored")
	assert.Error(t, loadEnv([]string{"--env-file=nope.env"}))
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := newLogger(&buf, "warn", "json")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "k", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	logger, err = newLogger(&buf, "debug", "text")
	require.NoError(t, err)
	logger.Debug("details")
	assert.Contains(t, buf.String(), "msg=details")

	_, err = newLogger(&buf, "loud", "text")
	assert.Error(t, err)

	_, err = newLogger(&buf, "info", "xml")
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	t.Setenv("VIBE_DEVICE", "null")
	t.Setenv("VIBE_LOG_LEVEL", "debug")

	var cli CLI
	parser, err := newParser(&cli)
	require.NoError(t, err)

	ctx, err := parser.Parse([]string{"play", "song.flac", "--channels=fanout", "--linger=1s", "--no-tui"})
	require.NoError(t, err)

	assert.Equal(t, "play <file>", ctx.Command())
	assert.Equal(t, "song.flac", filepath.Base(cli.Play.File))
	assert.Equal(t, "null", cli.Play.Device)
	assert.Equal(t, "fanout", cli.Play.Channels)
	assert.Equal(t, time.Second, cli.Play.Linger)
	assert.True(t, cli.Play.NoTUI)
	assert.Equal(t, "debug", cli.LogLevel)
	assert.Equal(t, "text", cli.LogFormat)
}

func TestParse_RejectsUnknownDevice(t *testing.T) {
	t.Parallel()

	var cli CLI
	parser, err := newParser(&cli)
	require.NoError(t, err)

	_, err = parser.Parse([]string{"play", "song.flac", "--device=alsa"})
	assert.Error(t, err)
}
