// Package progress tracks an ordered checklist of workflow steps and renders
// it as a status tree.
package progress

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/oidellajulio/code-review-cli/internal/output"
)

// Status is the state of one step.
type Status int

// Step statuses.
const (
	Pending Status = iota
	Running
	Done
	Failed
)

// String returns the status name used in JSON output.
func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Done:
		return "done"
	case Failed:
		return "error"
	default:
		return "pending"
	}
}

// Step is one named unit of work.
type Step struct {
	Key    string
	Label  string
	Status Status
	Detail string
}

// Tracker is an ordered list of steps. Steps are never removed and always
// render in the order they were first registered.
type Tracker struct {
	title    string
	steps    []Step
	index    map[string]int
	observer func()
	styles   *output.Styles
}

// New creates an empty tracker. styles may be nil for plain rendering.
func New(title string, styles *output.Styles) *Tracker {
	if styles == nil {
		styles = output.NewStyles(false)
	}
	return &Tracker{
		title:  title,
		index:  make(map[string]int),
		styles: styles,
	}
}

// Title returns the tracker title.
func (t *Tracker) Title() string { return t.title }

// Attach sets the function called after every mutation. Panics raised by
// the observer are recovered and discarded.
func (t *Tracker) Attach(observer func()) {
	t.observer = observer
}

// Add registers a pending step. Adding a key that already exists is a no-op.
func (t *Tracker) Add(key, label string) {
	if _, ok := t.index[key]; ok {
		return
	}
	t.append(key, label, Pending)
	t.notify()
}

// Start marks a step as running.
func (t *Tracker) Start(key, detail string) { t.update(key, Running, detail) }

// Complete marks a step as done.
func (t *Tracker) Complete(key, detail string) { t.update(key, Done, detail) }

// Error marks a step as failed.
func (t *Tracker) Error(key, detail string) { t.update(key, Failed, detail) }

// Steps returns a copy of the steps in registration order.
func (t *Tracker) Steps() []Step {
	out := make([]Step, len(t.steps))
	copy(out, t.steps)
	return out
}

// Step returns the step registered under key.
func (t *Tracker) Step(key string) (Step, bool) {
	i, ok := t.index[key]
	if !ok {
		return Step{}, false
	}
	return t.steps[i], true
}

// update sets status and, when non-empty, detail. Unknown keys are appended
// with the key as label.
func (t *Tracker) update(key string, status Status, detail string) {
	i, ok := t.index[key]
	if !ok {
		i = t.append(key, key, status)
	}
	t.steps[i].Status = status
	if detail != "" {
		t.steps[i].Detail = detail
	}
	t.notify()
}

func (t *Tracker) append(key, label string, status Status) int {
	t.steps = append(t.steps, Step{Key: key, Label: label, Status: status})
	i := len(t.steps) - 1
	t.index[key] = i
	return i
}

func (t *Tracker) notify() {
	if t.observer == nil {
		return
	}
	defer func() { _ = recover() }()
	t.observer()
}

// Render builds the status tree: the title as root and one child per step.
func (t *Tracker) Render() *tree.Tree {
	root := tree.Root(t.styles.Title.Render(t.title)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(t.styles.Dim)
	for _, s := range t.steps {
		root.Child(t.line(s))
	}
	return root
}

// String renders the tree to text.
func (t *Tracker) String() string {
	return t.Render().String()
}

// Height returns the number of terminal lines the rendered tree occupies.
func (t *Tracker) Height() int {
	return lipgloss.Height(t.String())
}

func (t *Tracker) line(s Step) string {
	text := t.glyph(s.Status) + " " + s.Label
	if s.Detail != "" {
		text += t.styles.Dim.Render(" (" + s.Detail + ")")
	}
	return text
}

func (t *Tracker) glyph(s Status) string {
	switch s {
	case Done:
		return t.styles.Success.Render("●")
	case Running:
		return t.styles.Accent.Render("○")
	case Failed:
		return t.styles.Error.Render("●")
	default:
		return t.styles.Dim.Render("○")
	}
}
