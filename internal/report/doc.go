// Package report builds the Markdown branch-diff report consumed by the
// review prompt.
//
// A report compares a target branch against a base branch and lists:
//
//   - a header with target, project folder, generation time and both branches
//   - the changed file paths (base..target)
//   - the non-merge commits as one-liners (base..target)
//   - the full diff in a fenced block (base...target)
//
// Reports are written to <repo root>/diffs/relatorio_diff_<branch>.md, where
// path separators in the branch name become dashes:
//
//	rep, err := report.Build(ctx, git.Repo{}, "feature/login", "main", time.Now)
//	path, err := report.Write(rep, filepath.Join(root, "diffs"))
//
// The layout matches the output of the generated report scripts so either
// producer can feed the prompt.
package report
