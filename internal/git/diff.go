package git

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/oidellajulio/code-review-cli/internal/output"
)

// Commit is one entry of a one-line log.
type Commit struct {
	SHA     string
	Short   string
	Subject string
}

// OneLine renders the commit like `git log --oneline`.
func (c Commit) OneLine() string {
	return c.Short + " " + c.Subject
}

// Diffstat summarizes a diff.
type Diffstat struct {
	Files      int `json:"files"`
	Insertions int `json:"insertions"`
	Deletions  int `json:"deletions"`
}

// fieldSeparator delimits fields within a log record.
const fieldSeparator = "\x1f"

// ChangedFiles lists paths that differ between base and target (base..target).
func (r Repo) ChangedFiles(ctx context.Context, base, target string) ([]string, error) {
	rangeSpec := base + ".." + target
	out, err := r.Run(ctx, "diff", "--name-only", rangeSpec)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to list changed files for "+rangeSpec, err)
	}
	return splitLines(out), nil
}

// Commits returns the non-merge commits reachable from target but not base,
// newest first.
func (r Repo) Commits(ctx context.Context, base, target string) ([]Commit, error) {
	rangeSpec := base + ".." + target
	format := strings.Join([]string{"%H", "%h", "%s"}, fieldSeparator)
	out, err := r.Run(ctx, "log", "--no-merges", "--pretty=format:"+format, rangeSpec)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to get git log for range "+rangeSpec, err)
	}
	return parseCommits(out), nil
}

// Diff returns the textual diff of target against its merge base with base
// (base...target).
func (r Repo) Diff(ctx context.Context, base, target string) (string, error) {
	rangeSpec := base + "..." + target
	out, err := r.RunRaw(ctx, "diff", rangeSpec)
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to get diff for "+rangeSpec, err)
	}
	return strings.TrimRight(out, "\n"), nil
}

// Stat returns change statistics for base...target.
func (r Repo) Stat(ctx context.Context, base, target string) (Diffstat, error) {
	rangeSpec := base + "..." + target
	out, err := r.Run(ctx, "diff", "--shortstat", rangeSpec)
	if err != nil {
		return Diffstat{}, output.NewSystemErrorWithCause("failed to get diffstat for "+rangeSpec, err)
	}
	return parseDiffstat(out), nil
}

func splitLines(out string) []string {
	var lines []string
	for line := range strings.SplitSeq(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// parseCommits parses log output produced with the SHA, short SHA and
// subject joined by fieldSeparator, one commit per line.
func parseCommits(out string) []Commit {
	var commits []Commit
	for _, line := range splitLines(out) {
		fields := strings.SplitN(line, fieldSeparator, 3)
		if len(fields) < 3 {
			continue
		}
		commits = append(commits, Commit{
			SHA:     fields[0],
			Short:   fields[1],
			Subject: fields[2],
		})
	}
	return commits
}

// diffstatLineRegex matches the summary line of git diff --shortstat.
// Example: " 3 files changed, 45 insertions(+), 12 deletions(-)"
var diffstatLineRegex = regexp.MustCompile(`(\d+)\s+files?\s+changed(?:,\s+(\d+)\s+insertions?\(\+\))?(?:,\s+(\d+)\s+deletions?\(-\))?`)

// parseDiffstat extracts file, insertion and deletion counts.
func parseDiffstat(out string) Diffstat {
	matches := diffstatLineRegex.FindStringSubmatch(out)
	if matches == nil {
		return Diffstat{}
	}
	return Diffstat{
		Files:      parseMatchInt(matches, 1),
		Insertions: parseMatchInt(matches, 2),
		Deletions:  parseMatchInt(matches, 3),
	}
}

// parseMatchInt extracts an int from a regex match group, returning 0 on error.
func parseMatchInt(matches []string, idx int) int {
	if idx >= len(matches) || matches[idx] == "" {
		return 0
	}
	val, err := strconv.Atoi(matches[idx])
	if err != nil {
		return 0
	}
	return val
}
