//go:build integration

package integration

import (
	"encoding/json"
	"strings"
	"testing"
)

// TestReport_BranchWithMerge checks that merge commits are left out of the
// commit history while the merged changes still show up in the diff.
func TestReport_BranchWithMerge(t *testing.T) {
	repo := newTestRepo(t)

	repo.createFile("README.md", "# Project\n")
	repo.commit("Initial commit")

	repo.git("checkout", "-b", "feature-a")
	repo.createFile("a.txt", "feature a\n")
	repo.commit("Add feature A")

	repo.git("checkout", "-b", "helper", "main")
	repo.createFile("helper.txt", "helper\n")
	repo.commit("Add helper")

	repo.git("checkout", "feature-a")
	repo.git("merge", "--no-ff", "-m", "Merge helper into feature-a", "helper")

	stdout := repo.runOK("report", "feature-a", "--json")
	var result struct {
		Path    string   `json:"path"`
		Files   []string `json:"files"`
		Commits int      `json:"commits"`
	}
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("report output is not JSON: %v\n%s", err, stdout)
	}

	if result.Commits != 2 {
		t.Errorf("commits = %d, want 2 (merge excluded)", result.Commits)
	}
	if len(result.Files) != 2 {
		t.Errorf("files = %v, want a.txt and helper.txt", result.Files)
	}

	report := repo.readFile("diffs/relatorio_diff_feature-a.md")
	if strings.Contains(report, "Merge helper") {
		t.Error("merge commit should not be listed")
	}
	for _, want := range []string{"Add feature A", "Add helper", "+helper"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

// TestReport_MainAdvancedAfterBranch checks that the diff is taken against
// the merge base, so later work on main does not leak into the report.
func TestReport_MainAdvancedAfterBranch(t *testing.T) {
	repo := newTestRepo(t)

	repo.createFile("README.md", "# Project\n")
	repo.commit("Initial commit")

	repo.git("checkout", "-b", "feature-b")
	repo.createFile("b.txt", "feature b\n")
	repo.commit("Add feature B")

	repo.git("checkout", "main")
	repo.createFile("hotfix.txt", "hotfix\n")
	repo.commit("Hotfix on main")
	repo.git("checkout", "feature-b")

	repo.runOK("report", "feature-b", "main")
	report := repo.readFile("diffs/relatorio_diff_feature-b.md")

	diffSection := report[strings.Index(report, "```diff"):]
	if strings.Contains(diffSection, "hotfix") {
		t.Errorf("diff should not include main's later changes:\n%s", diffSection)
	}
	if !strings.Contains(diffSection, "+feature b") {
		t.Errorf("diff missing feature change:\n%s", diffSection)
	}
}
