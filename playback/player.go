// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"sync"

	"github.com/ik5/vibe/audio"
)

// Player holds at most one live session and replaces it on Load.
type Player struct {
	engine *Engine

	mu      sync.Mutex
	current *Session
}

func NewPlayer(engine *Engine) *Player {
	return &Player{engine: engine}
}

// Load stops the current session, waits until it has released its
// stream, and starts a new session for src.
func (p *Player) Load(src audio.Source) (*Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current != nil {
		p.current.Stop()
		<-p.current.Done()
		p.current = nil
	}

	s, err := p.engine.Create(src)
	if err != nil {
		return nil, err
	}
	p.current = s

	return s, nil
}

// Current returns the live session, or nil.
func (p *Player) Current() *Session {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.current
}

func (p *Player) Play()  { p.send(CmdPlay) }
func (p *Player) Pause() { p.send(CmdPause) }
func (p *Player) Stop()  { p.send(CmdStop) }

func (p *Player) send(c Command) {
	if s := p.Current(); s != nil {
		s.Send(c)
	}
}
