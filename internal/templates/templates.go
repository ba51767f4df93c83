// Package templates holds the embedded report scripts and review prompt,
// and the per-agent and per-script tables that say where they are written.
package templates

import (
	"embed"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed files/*
var files embed.FS

const (
	// PromptFileName is the name of the generated prompt in every agent directory.
	PromptFileName = "code_review.prompt.md"

	// Placeholder marks where the script invocation goes in the prompt body.
	Placeholder = "{{SCRIPT_COMMAND}}"

	// BranchArgument is the argument shown in the invocation embedded in the prompt.
	BranchArgument = "<nome-da-branch-fornecida>"

	// ExampleBranch is the argument shown in the post-init example command.
	ExampleBranch = "feature-branch"

	// ScriptDir is the slash-separated directory, relative to the project
	// root, that holds the generated report script.
	ScriptDir = ".code_review/scripts"

	// ReportDir is the slash-separated directory, relative to the project
	// root, where reports are written.
	ReportDir = "diffs"
)

// Agent is an AI assistant and the directory its prompts live in.
type Agent struct {
	Key       string
	Name      string
	PromptDir string // slash-separated, relative to the project root
}

// PromptPath returns the slash-separated prompt file path relative to the root.
func (a Agent) PromptPath() string {
	return path.Join(a.PromptDir, PromptFileName)
}

// Installed reports whether the agent's prompt file exists under root.
func (a Agent) Installed(root string) bool {
	info, err := os.Stat(filepath.Join(root, filepath.FromSlash(a.PromptPath())))
	return err == nil && !info.IsDir()
}

// Script is one flavor of the report script.
type Script struct {
	Key        string
	Label      string
	FileName   string
	Executable bool
	Prefix     string // invocation prefix such as "./"
	Separator  string // path separator used in invocations
}

// RelPath returns the slash-separated script path relative to the root.
func (s Script) RelPath() string {
	return path.Join(ScriptDir, s.FileName)
}

// Invocation returns how the script is run from the project root with arg,
// using the flavor's prefix and path separator.
func (s Script) Invocation(arg string) string {
	rel := strings.ReplaceAll(s.RelPath(), "/", s.Separator)
	return s.Prefix + rel + " " + arg
}

// Body returns the embedded script text.
func (s Script) Body() (string, error) {
	data, err := files.ReadFile("files/" + s.FileName)
	if err != nil {
		return "", fmt.Errorf("reading embedded script %s: %w", s.FileName, err)
	}
	return string(data), nil
}

var agents = []Agent{
	{Key: "copilot", Name: "GitHub Copilot", PromptDir: ".github/prompts"},
	{Key: "claude", Name: "Claude Code", PromptDir: ".claude/prompts"},
	{Key: "gemini", Name: "Gemini CLI", PromptDir: ".gemini/prompts"},
	{Key: "cursor", Name: "Cursor (IDE)", PromptDir: ".cursor/prompts"},
	{Key: "openai", Name: "OpenAI / Codex", PromptDir: ".openai/prompts"},
	{Key: "generic", Name: "Generic (Other)", PromptDir: "code_review/prompts"},
}

var scripts = []Script{
	{
		Key:        "sh",
		Label:      "POSIX Shell (Bash/Zsh) - Linux/Mac",
		FileName:   "git-relatorio.sh",
		Executable: true,
		Prefix:     "./",
		Separator:  "/",
	},
	{
		Key:        "ps",
		Label:      "PowerShell - Windows",
		FileName:   "git-relatorio.ps1",
		Executable: false,
		Prefix:     `.\`,
		Separator:  `\`,
	},
}

// Agents returns the supported agents in display order.
func Agents() []Agent {
	out := make([]Agent, len(agents))
	copy(out, agents)
	return out
}

// LookupAgent finds an agent by key.
func LookupAgent(key string) (Agent, bool) {
	for _, a := range agents {
		if a.Key == key {
			return a, true
		}
	}
	return Agent{}, false
}

// AgentKeys returns the agent keys in display order.
func AgentKeys() []string {
	keys := make([]string, len(agents))
	for i, a := range agents {
		keys[i] = a.Key
	}
	return keys
}

// Scripts returns the script flavors in display order.
func Scripts() []Script {
	out := make([]Script, len(scripts))
	copy(out, scripts)
	return out
}

// LookupScript finds a script flavor by key.
func LookupScript(key string) (Script, bool) {
	for _, s := range scripts {
		if s.Key == key {
			return s, true
		}
	}
	return Script{}, false
}

// ScriptKeys returns the script keys in display order.
func ScriptKeys() []string {
	keys := make([]string, len(scripts))
	for i, s := range scripts {
		keys[i] = s.Key
	}
	return keys
}

// DefaultScript returns the script flavor native to goos.
func DefaultScript(goos string) string {
	if goos == "windows" {
		return "ps"
	}
	return "sh"
}
