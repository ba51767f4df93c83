//go:build integration

// Package integration provides integration tests for the review-cli CLI.
// These tests build the binary, run it against real git repositories and
// execute the scripts it generates.
//
// Run with: go test -tags=integration ./internal/integration/...
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// testRepo is a helper for creating and managing test git repositories.
type testRepo struct {
	t      *testing.T
	dir    string
	binary string
	env    []string
}

// newTestRepo creates a new git repository in a temp directory.
// It builds the review-cli binary and initializes a git repo on main.
func newTestRepo(t *testing.T) *testRepo {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	binDir := t.TempDir()
	binary := filepath.Join(binDir, "review-cli")
	if runtime.GOOS == "windows" {
		binary += ".exe"
	}
	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/review-cli")
	buildCmd.Dir = findProjectRoot(t)
	buildCmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build review-cli: %v\n%s", err, output)
	}

	dir := filepath.Join(t.TempDir(), "project")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	repo := &testRepo{
		t:      t,
		dir:    dir,
		binary: binary,
		env: append(os.Environ(),
			"GIT_CONFIG_GLOBAL=/dev/null", "GIT_CONFIG_NOSYSTEM=1",
			"CODE_REVIEW_CONFIG_HOME="+t.TempDir(),
			"CODE_REVIEW_AGENT=", "CODE_REVIEW_SCRIPT=", "CODE_REVIEW_BASE_BRANCH=",
		),
	}

	repo.git("init", "--initial-branch=main")
	repo.git("config", "user.email", "test@example.com")
	repo.git("config", "user.name", "Test User")

	return repo
}

// findProjectRoot locates the project root by finding go.mod.
func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// git runs a git command in the test repo.
func (r *testRepo) git(args ...string) string {
	r.t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = r.dir
	cmd.Env = r.env
	output, err := cmd.CombinedOutput()
	if err != nil {
		r.t.Fatalf("git %v failed: %v\n%s", args, err, output)
	}
	return strings.TrimSpace(string(output))
}

// createFile creates a file with the given content.
func (r *testRepo) createFile(name, content string) {
	r.t.Helper()

	path := filepath.Join(r.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		r.t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		r.t.Fatalf("failed to write file %s: %v", name, err)
	}
}

// readFile returns the content of a file relative to the repo.
func (r *testRepo) readFile(name string) string {
	r.t.Helper()

	data, err := os.ReadFile(filepath.Join(r.dir, filepath.FromSlash(name)))
	if err != nil {
		r.t.Fatalf("failed to read %s: %v", name, err)
	}
	return string(data)
}

// commit stages everything and creates a commit.
func (r *testRepo) commit(msg string) {
	r.t.Helper()

	r.git("add", "-A")
	r.git("commit", "-m", msg)
}

// run runs the review-cli binary with the given args.
// Returns stdout, stderr, and error.
func (r *testRepo) run(args ...string) (string, string, error) {
	r.t.Helper()

	cmd := exec.Command(r.binary, args...)
	cmd.Dir = r.dir
	cmd.Env = r.env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// runOK runs review-cli and expects success.
func (r *testRepo) runOK(args ...string) string {
	r.t.Helper()

	stdout, stderr, err := r.run(args...)
	if err != nil {
		r.t.Fatalf("review-cli %v failed: %v\nstdout: %s\nstderr: %s", args, err, stdout, stderr)
	}
	return stdout
}

// exitCode returns the process exit code carried by err.
func exitCode(err error) int {
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode()
	}
	if err != nil {
		return -1
	}
	return 0
}

// withoutTimestamp drops the "Gerado em" line, the only line that differs
// between two reports generated at different times.
func withoutTimestamp(report string) string {
	var kept []string
	for _, line := range strings.Split(report, "\n") {
		if !strings.HasPrefix(line, "**Gerado em:**") {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// TestInitThenGeneratedScript runs init, executes the generated shell
// script and checks its report against the built-in report command.
func TestInitThenGeneratedScript(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script flavor")
	}
	if _, err := exec.LookPath("bash"); err != nil {
		t.Skip("bash not installed")
	}
	repo := newTestRepo(t)

	repo.createFile("README.md", "# Shop\n")
	repo.commit("Initial commit")
	repo.git("checkout", "-b", "feature/cart")
	repo.createFile("cart/cart.go", "package cart\n\nfunc Total() int { return 0 }\n")
	repo.commit("Add cart")
	repo.createFile("README.md", "# Shop\n\nNow with a cart.\n")
	repo.commit("Document cart")

	stdout := repo.runOK("init", "--ai", "copilot", "--script", "sh", "--json")
	var result map[string]any
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("init output is not JSON: %v\n%s", err, stdout)
	}
	command, _ := result["command"].(string)

	prompt := repo.readFile(".github/prompts/code_review.prompt.md")
	if !strings.Contains(prompt, command) {
		t.Fatalf("prompt does not contain %q", command)
	}

	script := exec.Command("./.code_review/scripts/git-relatorio.sh", "feature/cart")
	script.Dir = repo.dir
	script.Env = repo.env
	if output, err := script.CombinedOutput(); err != nil {
		t.Fatalf("generated script failed: %v\n%s", err, output)
	}
	fromScript := repo.readFile("diffs/relatorio_diff_feature-cart.md")

	repo.runOK("report", "feature/cart")
	fromCLI := repo.readFile("diffs/relatorio_diff_feature-cart.md")

	if withoutTimestamp(fromScript) != withoutTimestamp(fromCLI) {
		t.Errorf("script and report command disagree\n--- script ---\n%s\n--- report ---\n%s", fromScript, fromCLI)
	}
	for _, want := range []string{"- cart/cart.go", "Document cart", "+func Total() int { return 0 }"} {
		if !strings.Contains(fromScript, want) {
			t.Errorf("script report missing %q", want)
		}
	}
}

// TestInitAllAgents runs init once per agent in the same project.
func TestInitAllAgents(t *testing.T) {
	repo := newTestRepo(t)

	agents := map[string]string{
		"copilot": ".github/prompts",
		"claude":  ".claude/prompts",
		"gemini":  ".gemini/prompts",
		"cursor":  ".cursor/prompts",
		"openai":  ".openai/prompts",
		"generic": "code_review/prompts",
	}
	for agent, dir := range agents {
		repo.runOK("init", "--ai", agent, "--script", "sh")
		if _, err := os.Stat(filepath.Join(repo.dir, filepath.FromSlash(dir), "code_review.prompt.md")); err != nil {
			t.Errorf("%s prompt missing: %v", agent, err)
		}
	}

	stdout := repo.runOK("agents", "--json")
	var listed struct {
		Agents []struct {
			Key       string `json:"key"`
			Installed bool   `json:"installed"`
		} `json:"agents"`
	}
	if err := json.Unmarshal([]byte(stdout), &listed); err != nil {
		t.Fatalf("agents output is not JSON: %v", err)
	}
	for _, a := range listed.Agents {
		if !a.Installed {
			t.Errorf("agent %s not reported as installed", a.Key)
		}
	}
}

// TestInitInvalidFlags checks exit codes and that nothing is written.
func TestInitInvalidFlags(t *testing.T) {
	repo := newTestRepo(t)

	for _, args := range [][]string{
		{"init", "--ai", "chatgpt"},
		{"init", "--script", "bat"},
	} {
		_, stderr, err := repo.run(args...)
		if code := exitCode(err); code != 1 {
			t.Errorf("%v exit code = %d, want 1\nstderr: %s", args, code, stderr)
		}
	}

	if _, err := os.Stat(filepath.Join(repo.dir, ".code_review")); !os.IsNotExist(err) {
		t.Error("invalid flags should not create .code_review")
	}
}
