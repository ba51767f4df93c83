package mcp

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oidellajulio/code-review-cli/internal/git"
	"github.com/oidellajulio/code-review-cli/internal/output"
	"github.com/oidellajulio/code-review-cli/internal/progress"
	"github.com/oidellajulio/code-review-cli/internal/report"
	"github.com/oidellajulio/code-review-cli/internal/templates"
	"github.com/oidellajulio/code-review-cli/internal/workflow"
)

// resolveRoot joins a tool-supplied directory onto the server root.
func resolveRoot(serverRoot, dir string) string {
	if dir == "" {
		return serverRoot
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(serverRoot, dir)
}

// --- Agents tool ---

// AgentsInput is the input for the agents tool.
type AgentsInput struct {
	Root string `json:"root,omitempty" jsonschema:"project directory used to report which prompts are installed (default: server root)"`
}

// AgentInfo describes one supported assistant.
type AgentInfo struct {
	Key       string `json:"key"        jsonschema:"value accepted by the init tool's agent field"`
	Name      string `json:"name"       jsonschema:"display name"`
	PromptDir string `json:"prompt_dir" jsonschema:"directory the review prompt is written to"`
	Installed bool   `json:"installed"  jsonschema:"whether the review prompt already exists in root"`
}

// AgentsOutput is the output for the agents tool.
type AgentsOutput struct {
	Agents  []AgentInfo `json:"agents"  jsonschema:"supported assistants"`
	Scripts []string    `json:"scripts" jsonschema:"supported script formats"`
}

func handleAgents(serverRoot string) mcp.ToolHandlerFor[AgentsInput, AgentsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input AgentsInput) (*mcp.CallToolResult, AgentsOutput, error) {
		root := resolveRoot(serverRoot, input.Root)

		agents := templates.Agents()
		out := AgentsOutput{
			Agents:  make([]AgentInfo, 0, len(agents)),
			Scripts: templates.ScriptKeys(),
		}
		for _, a := range agents {
			out.Agents = append(out.Agents, AgentInfo{
				Key:       a.Key,
				Name:      a.Name,
				PromptDir: a.PromptDir,
				Installed: a.Installed(root),
			})
		}
		return nil, out, nil
	}
}

// --- Init tool ---

// InitInput is the input for the init tool.
type InitInput struct {
	Agent  string `json:"agent,omitempty"  jsonschema:"assistant key (copilot, claude, gemini, cursor, openai, generic); default copilot"`
	Script string `json:"script,omitempty" jsonschema:"script format (sh or ps); default depends on the server OS"`
	Root   string `json:"root,omitempty"   jsonschema:"project directory (default: server root)"`
}

// StepResult reports one materialization step.
type StepResult struct {
	Name   string `json:"name"              jsonschema:"step key"`
	Status string `json:"status"            jsonschema:"done, error or pending"`
	Detail string `json:"detail,omitempty"  jsonschema:"step detail"`
}

// InitOutput is the output for the init tool.
type InitOutput struct {
	Agent      string       `json:"agent"       jsonschema:"assistant the prompt was written for"`
	Script     string       `json:"script"      jsonschema:"script format written"`
	Root       string       `json:"root"        jsonschema:"absolute project directory"`
	ScriptPath string       `json:"script_path" jsonschema:"path of the report script"`
	PromptPath string       `json:"prompt_path" jsonschema:"path of the review prompt"`
	Command    string       `json:"command"     jsonschema:"script invocation embedded in the prompt"`
	Steps      []StepResult `json:"steps"       jsonschema:"materialization steps in order"`
}

func handleInit(serverRoot string) mcp.ToolHandlerFor[InitInput, InitOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input InitInput) (*mcp.CallToolResult, InitOutput, error) {
		env := workflow.Env{
			Printer:     output.NewPrinter(io.Discard, true, false),
			Interactive: false,
		}
		res, err := workflow.Run(ctx, env, workflow.Options{
			Agent:  input.Agent,
			Script: input.Script,
			Root:   resolveRoot(serverRoot, input.Root),
		})
		if err != nil {
			return nil, InitOutput{}, fmt.Errorf("init: %w", err)
		}

		return nil, InitOutput{
			Agent:      res.Agent.Key,
			Script:     res.Script.Key,
			Root:       res.Root,
			ScriptPath: res.ScriptPath,
			PromptPath: res.PromptPath,
			Command:    res.Command,
			Steps:      toStepResults(res.Steps),
		}, nil
	}
}

func toStepResults(steps []progress.Step) []StepResult {
	result := make([]StepResult, 0, len(steps))
	for _, s := range steps {
		result = append(result, StepResult{Name: s.Key, Status: s.Status.String(), Detail: s.Detail})
	}
	return result
}

// --- Report tool ---

// ReportInput is the input for the report tool.
type ReportInput struct {
	Branch string `json:"branch"          jsonschema:"branch to review"`
	Base   string `json:"base,omitempty"  jsonschema:"base branch to compare against (default main)"`
	Root   string `json:"root,omitempty"  jsonschema:"directory inside the repository (default: server root)"`
}

// CommitSummary is a one-line commit description.
type CommitSummary struct {
	Short   string `json:"short"   jsonschema:"abbreviated SHA"`
	Subject string `json:"subject" jsonschema:"commit subject"`
}

// ReportOutput is the output for the report tool.
type ReportOutput struct {
	Path    string          `json:"path"    jsonschema:"path of the written report"`
	Branch  string          `json:"branch"  jsonschema:"branch reviewed"`
	Base    string          `json:"base"    jsonschema:"base branch"`
	Files   []string        `json:"files"   jsonschema:"changed files"`
	Commits []CommitSummary `json:"commits" jsonschema:"non-merge commits on the branch, newest first"`
	Stat    git.Diffstat    `json:"stat"    jsonschema:"diff statistics"`
}

func handleReport(serverRoot string) mcp.ToolHandlerFor[ReportInput, ReportOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ReportInput) (*mcp.CallToolResult, ReportOutput, error) {
		repo := git.Repo{Dir: resolveRoot(serverRoot, input.Root)}

		rep, err := report.Build(ctx, repo, input.Branch, input.Base, time.Now)
		if err != nil {
			return nil, ReportOutput{}, fmt.Errorf("building report: %w", err)
		}
		root, err := repo.Root(ctx)
		if err != nil {
			return nil, ReportOutput{}, fmt.Errorf("getting repo root: %w", err)
		}
		path, err := report.Write(rep, filepath.Join(root, templates.ReportDir))
		if err != nil {
			return nil, ReportOutput{}, err
		}

		commits := make([]CommitSummary, 0, len(rep.Commits))
		for _, c := range rep.Commits {
			commits = append(commits, CommitSummary{Short: c.Short, Subject: c.Subject})
		}
		return nil, ReportOutput{
			Path:    path,
			Branch:  rep.Target,
			Base:    rep.Base,
			Files:   rep.Files,
			Commits: commits,
			Stat:    rep.Stat,
		}, nil
	}
}
