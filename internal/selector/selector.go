// Package selector implements a single-choice menu over an ordered option list.
//
// The menu state is renderer-agnostic: State applies navigation events and
// Run drives it from any input.Source. Model adapts the same state to a
// bubbletea program for real terminals.
package selector

import (
	"errors"
	"fmt"

	"github.com/oidellajulio/code-review-cli/internal/input"
)

// ErrNoOptions is returned when a menu is built without options.
var ErrNoOptions = errors.New("selector: no options")

// Option is one menu entry. Key is what the caller receives back; Label and
// Hint are display text only.
type Option struct {
	Key   string
	Label string
	Hint  string
}

// Outcome describes how a selection ended.
type Outcome int

// Selection outcomes.
const (
	Pending Outcome = iota
	Selected
	Cancelled
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Selected:
		return "selected"
	case Cancelled:
		return "cancelled"
	default:
		return "pending"
	}
}

// Result is the outcome of a menu. Key is set only when Outcome is Selected.
type Result struct {
	Outcome Outcome
	Key     string
}

// View is a snapshot of the menu handed to observers before each read.
type View struct {
	Prompt  string
	Options []Option
	Index   int
}

// Observer receives a View every time the menu is about to wait for input.
type Observer func(View)

// State is the selection state of one menu invocation.
type State struct {
	options []Option
	index   int
	result  Result
}

// NewState creates a menu state positioned on defaultKey.
// An empty or unknown defaultKey positions the cursor on the first option.
func NewState(options []Option, defaultKey string) (*State, error) {
	if len(options) == 0 {
		return nil, ErrNoOptions
	}
	seen := make(map[string]bool, len(options))
	for _, opt := range options {
		if seen[opt.Key] {
			return nil, fmt.Errorf("selector: duplicate option key %q", opt.Key)
		}
		seen[opt.Key] = true
	}

	s := &State{options: options}
	for i, opt := range options {
		if opt.Key == defaultKey {
			s.index = i
			break
		}
	}
	return s, nil
}

// Index returns the highlighted position.
func (s *State) Index() int { return s.index }

// Current returns the highlighted option.
func (s *State) Current() Option { return s.options[s.index] }

// Options returns the option list in display order.
func (s *State) Options() []Option { return s.options }

// Result returns the outcome so far.
func (s *State) Result() Result { return s.result }

// Done reports whether the menu has been resolved.
func (s *State) Done() bool { return s.result.Outcome != Pending }

// Apply advances the state by one event. Once resolved the state ignores
// further events.
func (s *State) Apply(ev input.Event) Result {
	if s.Done() {
		return s.result
	}

	n := len(s.options)
	switch ev {
	case input.MoveUp:
		s.index = (s.index - 1 + n) % n
	case input.MoveDown:
		s.index = (s.index + 1) % n
	case input.Confirm:
		s.result = Result{Outcome: Selected, Key: s.options[s.index].Key}
	case input.Cancel:
		s.result = Result{Outcome: Cancelled}
	}
	return s.result
}

// Run shows a menu and blocks until src confirms or cancels it.
// A source returning input.ErrInterrupt cancels the menu. Any other source
// error aborts the menu and is returned.
func Run(src input.Source, options []Option, prompt, defaultKey string, observe Observer) (Result, error) {
	state, err := NewState(options, defaultKey)
	if err != nil {
		return Result{}, err
	}

	for !state.Done() {
		notify(observe, View{Prompt: prompt, Options: options, Index: state.Index()})

		ev, err := src.Next()
		if errors.Is(err, input.ErrInterrupt) {
			return state.Apply(input.Cancel), nil
		}
		if err != nil {
			return Result{}, fmt.Errorf("reading selection input: %w", err)
		}
		state.Apply(ev)
	}
	return state.Result(), nil
}

// notify calls observe, discarding any panic it raises.
func notify(observe Observer, v View) {
	if observe == nil {
		return
	}
	defer func() { _ = recover() }()
	observe(v)
}
