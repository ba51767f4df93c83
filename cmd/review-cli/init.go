package main

import (
	"errors"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/oidellajulio/code-review-cli/internal/config"
	"github.com/oidellajulio/code-review-cli/internal/output"
	"github.com/oidellajulio/code-review-cli/internal/selector"
	"github.com/oidellajulio/code-review-cli/internal/workflow"
)

// initFlags holds the command-line flags for the init command.
type initFlags struct {
	ai     string
	script string
	here   bool
}

// initStepResult tracks the result of a single initialization step.
type initStepResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "done", "error", "pending"
	Message string `json:"message,omitempty"`
}

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Set up code review scripts and prompts in the current directory",
		Long: `Set up code review in the current directory.

This command writes two files:
  - .code_review/scripts/git-relatorio.sh (or .ps1), which compares a
    branch with main and saves a Markdown report under diffs/
  - code_review.prompt.md in the chosen assistant's prompt directory,
    telling the assistant how to run the script and review the report

When --ai or --script is omitted and the terminal is interactive, a menu
is shown. Otherwise defaults are used: copilot, and sh (ps on Windows).
Existing files are overwritten, so re-running init is safe.

Examples:
  review-cli init                        # Interactive setup
  review-cli init --ai claude            # Claude Code, default script
  review-cli init --ai gemini --script ps
  review-cli init --json --ai cursor     # Structured output, no prompts`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.ai, "ai", "", "AI assistant: copilot, claude, gemini, cursor, openai, generic")
	cmd.Flags().StringVar(&flags.script, "script", "", "Script format: sh (Linux/Mac) or ps (Windows)")
	cmd.Flags().BoolVar(&flags.here, "here", false, "Initialize in the current directory (the default)")

	return cmd
}

// runInit executes the init command.
func runInit(cmd *cobra.Command, flags *initFlags) error {
	printer := newPrinter(cmd)

	root, err := os.Getwd()
	if err != nil {
		sysErr := output.NewSystemErrorWithCause("cannot determine the current directory", err)
		printer.Error(sysErr)
		return sysErr
	}

	showBanner(printer)

	settings, warnings := config.Load()
	for _, w := range warnings {
		printer.Notice("%s", w)
	}

	env := workflow.Env{
		Printer:     printer,
		Interactive: !printer.IsJSON() && output.IsInteractive(cmd.InOrStdin()),
		GOOS:        runtime.GOOS,
		Settings:    settings,
		Chooser: selector.TeaChooser{
			In:     cmd.InOrStdin(),
			Out:    cmd.ErrOrStderr(),
			Styles: printer.Styles(),
		},
	}
	if output.IsTTY(cmd.OutOrStdout()) {
		env.Pacing = settings.Pacing
	}

	res, err := workflow.Run(cmd.Context(), env, workflow.Options{
		Agent:  flags.ai,
		Script: flags.script,
		Root:   root,
	})
	if err != nil {
		// Cancellation was already reported by the workflow.
		if !errors.Is(err, output.ErrCancelled) || printer.IsJSON() {
			printer.Error(err)
		}
		return err
	}

	if !printer.IsJSON() {
		return nil
	}
	return printer.Success(map[string]any{
		"status":      "ok",
		"agent":       res.Agent.Key,
		"script":      res.Script.Key,
		"root":        res.Root,
		"script_path": res.ScriptPath,
		"prompt_path": res.PromptPath,
		"command":     res.Command,
		"steps":       buildInitStepResults(res),
	})
}

func buildInitStepResults(res *workflow.Result) []initStepResult {
	steps := make([]initStepResult, 0, len(res.Steps))
	for _, s := range res.Steps {
		steps = append(steps, initStepResult{
			Name:    s.Key,
			Status:  s.Status.String(),
			Message: s.Detail,
		})
	}
	return steps
}
