package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/oidellajulio/code-review-cli/internal/config"
	"github.com/oidellajulio/code-review-cli/internal/git"
	"github.com/oidellajulio/code-review-cli/internal/output"
	"github.com/oidellajulio/code-review-cli/internal/report"
	"github.com/oidellajulio/code-review-cli/internal/templates"
)

// newReportCmd creates the report command.
func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report [branch] [base]",
		Short: "Write a Markdown diff report for a branch",
		Long: `Compare a branch with its base and write a Markdown report to
diffs/relatorio_diff_<branch>.md at the repository root.

The report lists changed files, the non-merge commits on the branch and
the full diff against the merge base. It is the same document the
generated git-relatorio script produces.

The branch defaults to the checked-out branch. The base defaults to main,
or to base_branch from the config file.

Examples:
  review-cli report                      # Current branch against main
  review-cli report feature/login
  review-cli report feature/login develop
  review-cli report feature/login --json`,
		Args: cobra.RangeArgs(0, 2),
		RunE: runReport,
	}
}

// runReport executes the report command.
func runReport(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)
	ctx := cmd.Context()

	settings, warnings := config.Load()
	for _, w := range warnings {
		printer.Notice("%s", w)
	}
	base := settings.BaseBranch
	if len(args) > 1 {
		base = args[1]
	}

	repo := git.Repo{}
	if !repo.IsRepo(ctx) {
		err := output.NewSystemError("not in a git repository")
		printer.Error(err)
		return err
	}

	target, err := resolveTarget(cmd, repo, args)
	if err != nil {
		printer.Error(err)
		return err
	}

	rep, err := report.Build(ctx, repo, target, base, time.Now)
	if err != nil {
		printer.Error(err)
		return err
	}
	root, err := repo.Root(ctx)
	if err != nil {
		printer.Error(err)
		return err
	}
	path, err := report.Write(rep, filepath.Join(root, templates.ReportDir))
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":  "ok",
			"path":    path,
			"branch":  rep.Target,
			"base":    rep.Base,
			"files":   rep.Files,
			"commits": len(rep.Commits),
			"stat":    rep.Stat,
		})
	}

	styles := printer.Styles()
	printer.Print("%s %s\n", styles.Success.Render("✓"), "Report written to "+styles.Accent.Render(path))
	printer.Notice("%d files changed, %d insertions(+), %d deletions(-) across %s",
		rep.Stat.Files, rep.Stat.Insertions, rep.Stat.Deletions, pluralCommits(len(rep.Commits)))
	return nil
}

// resolveTarget returns the branch argument or the checked-out branch.
func resolveTarget(cmd *cobra.Command, repo git.Repo, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	branch, err := repo.CurrentBranch(cmd.Context())
	if err != nil {
		return "", err
	}
	if branch == "HEAD" {
		return "", output.NewUserError("HEAD is detached; pass the branch to report on")
	}
	return branch, nil
}

func pluralCommits(n int) string {
	if n == 1 {
		return "1 commit"
	}
	return fmt.Sprintf("%d commits", n)
}
