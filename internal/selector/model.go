package selector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/oidellajulio/code-review-cli/internal/input"
	"github.com/oidellajulio/code-review-cli/internal/output"
)

const marker = "❯"

// Model is a bubbletea model that drives a State from key presses.
// Its view is empty once the menu resolves so the panel leaves no trace.
type Model struct {
	state  *State
	prompt string
	keys   input.KeyMap
	styles *output.Styles
}

// NewModel builds a terminal menu. styles may be nil for plain output.
func NewModel(prompt string, options []Option, defaultKey string, styles *output.Styles) (Model, error) {
	state, err := NewState(options, defaultKey)
	if err != nil {
		return Model{}, err
	}
	if styles == nil {
		styles = output.NewStyles(false)
	}
	return Model{
		state:  state,
		prompt: prompt,
		keys:   input.DefaultKeyMap(),
		styles: styles,
	}, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	ev, err := m.keys.Decode(keyMsg)
	if errors.Is(err, input.ErrInterrupt) {
		ev = input.Cancel
	}
	if ev == input.None {
		return m, nil
	}
	if m.state.Apply(ev).Outcome != Pending {
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.state.Done() {
		return ""
	}
	return RenderPanel(View{
		Prompt:  m.prompt,
		Options: m.state.Options(),
		Index:   m.state.Index(),
	}, m.keys, m.styles)
}

// Result returns the menu outcome.
func (m Model) Result() Result { return m.state.Result() }

// RenderPanel draws a menu as a bordered panel with the highlighted option
// marked and the navigation hint underneath.
func RenderPanel(v View, keys input.KeyMap, styles *output.Styles) string {
	labelWidth := 0
	for _, opt := range v.Options {
		labelWidth = max(labelWidth, lipgloss.Width(opt.Label))
	}

	var b strings.Builder
	for i, opt := range v.Options {
		label := opt.Label + strings.Repeat(" ", labelWidth-lipgloss.Width(opt.Label))
		line := "  " + label
		if i == v.Index {
			line = styles.Accent.Render(marker+" "+label)
		}
		if opt.Hint != "" {
			line += "  " + styles.Dim.Render(opt.Hint)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(styles.Dim.Render(keys.HelpLine()))

	body := styles.Title.Render(v.Prompt) + "\n\n" + b.String()
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Border).
		Padding(0, 1).
		Render(body)
}

// Prompt runs a menu as a bubbletea program reading keys from in and
// drawing to out. It blocks until the menu resolves or ctx is done.
func Prompt(ctx context.Context, in io.Reader, out io.Writer, prompt string, options []Option, defaultKey string, styles *output.Styles) (Result, error) {
	m, err := NewModel(prompt, options, defaultKey, styles)
	if err != nil {
		return Result{}, err
	}

	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := p.Run()
	return programResult(final, err)
}

// programResult maps the end of a selector program to a Result. Killed and
// interrupted programs count as cancellation.
func programResult(final tea.Model, err error) (Result, error) {
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
			return Result{Outcome: Cancelled}, nil
		}
		return Result{}, fmt.Errorf("running selector: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return Result{}, fmt.Errorf("running selector: unexpected model %T", final)
	}
	res := m.Result()
	if res.Outcome == Pending {
		// Input closed before a choice was made.
		return Result{Outcome: Cancelled}, nil
	}
	return res, nil
}
