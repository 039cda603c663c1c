// SPDX-License-Identifier: EPL-2.0

// Command vibe inspects, plays and converts WAV, AIFF, FLAC, Ogg Vorbis and
// MP3 files.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

// version is set via ldflags at build time
var version = "dev"

const defaultEnvFile = ".env"

// Globals are the flags shared by every command.
type Globals struct {
	LogLevel  string           `help:"Minimum log level." default:"info" enum:"debug,info,warn,error" env:"VIBE_LOG_LEVEL"`
	LogFormat string           `help:"Log output format." default:"text" enum:"text,json" env:"VIBE_LOG_FORMAT"`
	EnvFile   string           `help:"Environment file loaded before the flags are parsed." default:".env" env:"VIBE_ENV_FILE"`
	Version   kong.VersionFlag `help:"Show version information."`

	Stdout io.Writer `kong:"-"`
}

func (g *Globals) out() io.Writer {
	if g.Stdout != nil {
		return g.Stdout
	}
	return os.Stdout
}

// CLI is the root of the command tree.
type CLI struct {
	Globals

	Info    InfoCmd    `cmd:"" help:"Print format, rate, channels and duration of audio files."`
	Play    PlayCmd    `cmd:"" help:"Play an audio file."`
	Convert ConvertCmd `cmd:"" help:"Decode an audio file into 16-bit PCM WAV."`
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("vibe"),
		kong.Description("Decode and play WAV, AIFF, FLAC, Ogg Vorbis and MP3 files."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	}, options...)

	return kong.New(cli, options...)
}

func main() {
	if err := loadEnv(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "vibe:", err)
		os.Exit(1)
	}

	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	logger, err := newLogger(os.Stderr, cli.LogLevel, cli.LogFormat)
	parser.FatalIfErrorf(err)
	slog.SetDefault(logger)

	ctx.FatalIfErrorf(ctx.Run(&cli.Globals))
}

// loadEnv loads the environment file named by --env-file, VIBE_ENV_FILE or
// the default. Variables already set are kept. A missing default file is
// not an error.
func loadEnv(args []string) error {
	path, explicit := envFileFromArgs(args)
	if !explicit {
		if v, ok := os.LookupEnv("VIBE_ENV_FILE"); ok && v != "" {
			path, explicit = v, true
		}
	}

	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}

	return nil
}

// envFileFromArgs finds --env-file ahead of kong, which resolves env
// defaults before any hook can run.
func envFileFromArgs(args []string) (string, bool) {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if v, ok := strings.CutPrefix(arg, "--env-file="); ok {
			return v, true
		}
		if arg == "--env-file" && i+1 < len(args) {
			return args[i+1], true
		}
	}

	return defaultEnvFile, false
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}

	switch format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}
