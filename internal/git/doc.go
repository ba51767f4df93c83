// Package git provides Git operations via exec for review-cli.
//
// Commands shell out to the git executable, capture stdout/stderr and
// translate failures into *output.ExitError values with exit code 2.
//
// # Repositories
//
// A Repo runs commands in a fixed directory; the zero value uses the
// current directory:
//
//	repo := git.Repo{Dir: "/path/to/project"}
//	root, err := repo.Root(ctx)
//
// # Branch comparison
//
// The report builder compares a target branch against a base:
//
//	files, err := repo.ChangedFiles(ctx, "main", "feature/x")   // base..target
//	commits, err := repo.Commits(ctx, "main", "feature/x")      // --no-merges
//	diff, err := repo.Diff(ctx, "main", "feature/x")            // base...target
//	stat, err := repo.Stat(ctx, "main", "feature/x")
//
// # Error Handling
//
// Every failure is an *output.ExitError with ExitSystemError (2):
//
//	if !repo.IsRepo(ctx) {
//	    return output.NewSystemError("not in a git repository")
//	}
package git
