// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"github.com/ik5/vibe/audio"
)

// Engine creates playback sessions. It holds configuration only and may be
// copied or shared freely.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg.withDefaults()}
}

// Config returns the engine configuration with defaults applied.
func (e *Engine) Config() Config { return e.cfg }

// Create opens an output stream for src and returns the session driving
// it. The session starts paused unless Config.Autoplay is set. Errors
// opening or starting the stream wrap ErrDevice; in that case the caller
// still owns src.
func (e *Engine) Create(src audio.Source) (*Session, error) {
	if src == nil {
		return nil, errNilSource
	}

	s := newSession(e.cfg, src)

	ready := make(chan error, 1)
	go s.run(ready)
	if err := <-ready; err != nil {
		return nil, err
	}

	return s, nil
}
