package git

import (
	"slices"
	"strings"
	"testing"

	"github.com/oidellajulio/code-review-cli/internal/output"
)

func TestRepo_ChangedFiles(t *testing.T) {
	repo := newTestRepo(t)

	files, err := repo.ChangedFiles(t.Context(), "main", "feature/login")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"README.md", "auth/login.go", "side.txt"}
	if !slices.Equal(files, want) {
		t.Errorf("ChangedFiles() = %v, want %v", files, want)
	}
}

func TestRepo_CommitsSkipMerges(t *testing.T) {
	repo := newTestRepo(t)

	commits, err := repo.Commits(t.Context(), "main", "feature/login")
	if err != nil {
		t.Fatal(err)
	}

	var subjects []string
	for _, c := range commits {
		subjects = append(subjects, c.Subject)
		if len(c.SHA) != 40 || c.Short == "" {
			t.Errorf("commit %+v has bad SHA fields", c)
		}
		if c.OneLine() != c.Short+" "+c.Subject {
			t.Errorf("OneLine() = %q", c.OneLine())
		}
	}
	for _, s := range subjects {
		if strings.HasPrefix(s, "merge") {
			t.Errorf("merge commit listed: %v", subjects)
		}
	}
	if len(subjects) != 3 {
		t.Errorf("got %d commits (%v), want 3", len(subjects), subjects)
	}
}

func TestRepo_DiffAndStat(t *testing.T) {
	repo := newTestRepo(t)
	ctx := t.Context()

	diff, err := repo.Diff(ctx, "main", "feature/login")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(diff, "diff --git") {
		t.Errorf("Diff() does not start with a diff header: %q", diff[:min(len(diff), 40)])
	}
	if !strings.Contains(diff, "+package auth") || strings.HasSuffix(diff, "\n") {
		t.Errorf("unexpected Diff() output:\n%s", diff)
	}

	stat, err := repo.Stat(ctx, "main", "feature/login")
	if err != nil {
		t.Fatal(err)
	}
	if stat.Files != 3 || stat.Insertions != 3 {
		t.Errorf("Stat() = %+v, want 3 files, 3 insertions", stat)
	}
}

func TestRepo_UnknownBranch(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.ChangedFiles(t.Context(), "main", "nope")
	if output.GetExitCode(err) != output.ExitSystemError {
		t.Errorf("exit code = %d, want %d", output.GetExitCode(err), output.ExitSystemError)
	}
}

func TestParseDiffstat(t *testing.T) {
	tests := []struct {
		in   string
		want Diffstat
	}{
		{" 3 files changed, 45 insertions(+), 12 deletions(-)", Diffstat{3, 45, 12}},
		{" 1 file changed, 1 insertion(+)", Diffstat{1, 1, 0}},
		{" 2 files changed, 4 deletions(-)", Diffstat{2, 0, 4}},
		{"", Diffstat{}},
	}
	for _, tt := range tests {
		if got := parseDiffstat(tt.in); got != tt.want {
			t.Errorf("parseDiffstat(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseCommits(t *testing.T) {
	out := "aaa\x1fa1\x1ffirst\nbbb\x1fb2\x1fsecond: with \x1f inside\nbroken line\n"
	commits := parseCommits(out)
	if len(commits) != 2 {
		t.Fatalf("got %d commits, want 2", len(commits))
	}
	if commits[1].Subject != "second: with \x1f inside" {
		t.Errorf("Subject = %q", commits[1].Subject)
	}
}
