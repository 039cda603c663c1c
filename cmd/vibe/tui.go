// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ik5/vibe/audio"
	"github.com/ik5/vibe/playback"
)

const (
	refreshInterval = 100 * time.Millisecond
	barWidth        = 40
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	stateStyles = map[playback.State]lipgloss.Style{
		playback.Playing: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		playback.Paused:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		playback.Stopped: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
)

// transport is the part of a playback session the interface drives.
type transport interface {
	Info() audio.Info
	State() playback.State
	Elapsed() time.Duration
	Toggle()
	Stop()
	Done() <-chan struct{}
}

type tickMsg time.Time

type doneMsg struct{}

type model struct {
	session transport
	title   string

	state    playback.State
	elapsed  time.Duration
	stopping bool

	bar progress.Model
}

func newModel(s transport, path string) model {
	return model{
		session: s,
		title:   filepath.Base(path),
		state:   s.State(),
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(barWidth),
			progress.WithoutPercentage(),
		),
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func waitDone(s transport) tea.Cmd {
	return func() tea.Msg {
		<-s.Done()
		return doneMsg{}
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tick(), waitDone(m.session))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tickMsg:
		m.refresh()
		return m, tick()
	case doneMsg:
		m.refresh()
		return m, tea.Quit
	}

	return m, nil
}

func (m *model) refresh() {
	m.state = m.session.State()
	m.elapsed = m.session.Elapsed()
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.stopping {
		return m, nil
	}

	switch msg.String() {
	case " ", "p":
		m.session.Toggle()
	case "s", "q", "esc", "ctrl+c":
		// quit once the session has released the device
		m.stopping = true
		m.session.Stop()
	}

	return m, nil
}

func (m model) View() string {
	info := m.session.Info()

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("%s  %d Hz  %d ch", info.Format, info.SampleRate, info.Channels)))
	b.WriteString("\n\n")

	state := m.state.String()
	if m.stopping && m.state != playback.Stopped {
		state = "stopping"
	}
	b.WriteString(stateStyles[m.state].Render(strings.ToUpper(state)))
	b.WriteString("  ")
	b.WriteString(formatClock(m.elapsed))
	if info.HasDuration {
		b.WriteString(" / ")
		b.WriteString(formatClock(info.Duration))
		b.WriteString("\n")
		b.WriteString(m.bar.ViewAs(fraction(m.elapsed, info.Duration)))
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("space: play/pause  s/q: stop"))
	b.WriteString("\n")

	return b.String()
}

func formatClock(d time.Duration) string {
	d = d.Truncate(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// fraction returns how far elapsed is through total, within [0, 1].
func fraction(elapsed, total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	return min(float64(elapsed)/float64(total), 1)
}

// runTUI drives s from the terminal until it stops or ctx ends, and makes
// sure the session is stopped before returning.
func runTUI(ctx context.Context, s *playback.Session, path string) error {
	p := tea.NewProgram(newModel(s, path), tea.WithContext(ctx))
	_, err := p.Run()

	s.Stop()
	<-s.Done()

	if err != nil && !(errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil) {
		return fmt.Errorf("running interface: %w", err)
	}
	return nil
}
