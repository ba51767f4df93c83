// Package input reduces terminal key presses to the small navigation
// alphabet used by interactive menus.
package input

import (
	"errors"
	"io"
)

// Event is one navigation step produced by a Source.
type Event int

// Navigation events. None is produced for keys with no meaning in a menu.
const (
	None Event = iota
	MoveUp
	MoveDown
	Confirm
	Cancel
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case MoveUp:
		return "up"
	case MoveDown:
		return "down"
	case Confirm:
		return "confirm"
	case Cancel:
		return "cancel"
	default:
		return "none"
	}
}

// ErrInterrupt is returned instead of an event when the user sends a hard
// interrupt (Ctrl-C). Callers treat it as an immediate cancellation.
var ErrInterrupt = errors.New("interrupted")

// Source yields navigation events one at a time.
// Next blocks until an event is available.
type Source interface {
	Next() (Event, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func() (Event, error)

// Next calls f.
func (f SourceFunc) Next() (Event, error) {
	return f()
}

// Scripted replays a fixed sequence of events, then reports io.EOF.
// It drives menus in tests and non-terminal automation.
type Scripted struct {
	events []Event
	pos    int
}

// NewScripted returns a Source that yields events in order.
func NewScripted(events ...Event) *Scripted {
	return &Scripted{events: events}
}

// Next returns the next scripted event or io.EOF once exhausted.
func (s *Scripted) Next() (Event, error) {
	if s.pos >= len(s.events) {
		return None, io.EOF
	}
	ev := s.events[s.pos]
	s.pos++
	return ev, nil
}

// Remaining reports how many events have not been consumed.
func (s *Scripted) Remaining() int {
	return len(s.events) - s.pos
}
