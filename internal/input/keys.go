package input

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap binds terminal keys to navigation events.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
	Interrupt key.Binding
}

// DefaultKeyMap returns arrow-key navigation with the emacs-style
// ctrl+p/ctrl+n aliases.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Interrupt: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// Decode maps a key message to an event. Interrupt keys return ErrInterrupt;
// unbound keys return None.
func (k KeyMap) Decode(msg tea.KeyMsg) (Event, error) {
	switch {
	case key.Matches(msg, k.Interrupt):
		return None, ErrInterrupt
	case key.Matches(msg, k.Up):
		return MoveUp, nil
	case key.Matches(msg, k.Down):
		return MoveDown, nil
	case key.Matches(msg, k.Confirm):
		return Confirm, nil
	case key.Matches(msg, k.Cancel):
		return Cancel, nil
	default:
		return None, nil
	}
}

// HelpLine returns the navigation hint shown under a menu.
func (k KeyMap) HelpLine() string {
	up, down, confirm := k.Up.Help(), k.Down.Help(), k.Confirm.Help()
	return "Use " + up.Key + "/" + down.Key + " to navigate, " + confirm.Key + " to " + confirm.Desc
}
