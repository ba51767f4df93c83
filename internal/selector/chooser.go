package selector

import (
	"context"
	"io"

	"github.com/oidellajulio/code-review-cli/internal/input"
	"github.com/oidellajulio/code-review-cli/internal/output"
)

// Chooser presents a menu and reports the user's decision.
type Chooser interface {
	Choose(ctx context.Context, prompt string, options []Option, defaultKey string) (Result, error)
}

// TeaChooser shows menus in a terminal.
type TeaChooser struct {
	In     io.Reader
	Out    io.Writer
	Styles *output.Styles
}

// Choose implements Chooser.
func (c TeaChooser) Choose(ctx context.Context, prompt string, options []Option, defaultKey string) (Result, error) {
	return Prompt(ctx, c.In, c.Out, prompt, options, defaultKey, c.Styles)
}

// SourceChooser answers menus from an input.Source without drawing anything
// unless Observer is set.
type SourceChooser struct {
	Source   input.Source
	Observer Observer
}

// Choose implements Chooser.
func (c SourceChooser) Choose(_ context.Context, prompt string, options []Option, defaultKey string) (Result, error) {
	return Run(c.Source, options, prompt, defaultKey, c.Observer)
}
