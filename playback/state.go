// SPDX-License-Identifier: EPL-2.0

package playback

// State is the transport state of a session.
type State int32

const (
	Paused State = iota
	Playing
	Stopped
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Command is a transport request.
type Command int

const (
	CmdPlay Command = iota
	CmdPause
	CmdStop
)

func (c Command) String() string {
	switch c {
	case CmdPlay:
		return "play"
	case CmdPause:
		return "pause"
	case CmdStop:
		return "stop"
	default:
		return "unknown"
	}
}

// next returns the state c leads to from s.
func (c Command) next(s State) State {
	if s == Stopped {
		return Stopped
	}

	switch c {
	case CmdPlay:
		return Playing
	case CmdPause:
		return Paused
	default:
		return Stopped
	}
}
