package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/oidellajulio/code-review-cli/internal/output"
	"github.com/oidellajulio/code-review-cli/internal/templates"
)

// agentInfo describes an assistant and whether its prompt is installed.
type agentInfo struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	PromptDir string `json:"prompt_dir"`
	Installed bool   `json:"installed"`
}

// newAgentsCmd creates the agents command.
func newAgentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agents",
		Short: "List supported AI assistants and their prompt locations",
		Long: `List the assistants init can target, where each one reads prompts from,
and whether the review prompt is already present in the current directory.`,
		Args: cobra.NoArgs,
		RunE: runAgents,
	}
}

// runAgents executes the agents command.
func runAgents(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	root, err := os.Getwd()
	if err != nil {
		sysErr := output.NewSystemErrorWithCause("cannot determine the current directory", err)
		printer.Error(sysErr)
		return sysErr
	}
	agents := listAgents(root)

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"agents":  agents,
			"scripts": templates.ScriptKeys(),
		})
	}

	headers := []string{"Key", "Name", "Prompt Dir", "Status"}
	rows := make([][]string, 0, len(agents))
	for _, a := range agents {
		status := "not installed"
		if a.Installed {
			status = "installed"
		}
		rows = append(rows, []string{a.Key, a.Name, a.PromptDir, status})
	}
	printer.Table(headers, rows)
	return nil
}

func listAgents(root string) []agentInfo {
	agents := templates.Agents()
	infos := make([]agentInfo, 0, len(agents))
	for _, a := range agents {
		infos = append(infos, agentInfo{
			Key:       a.Key,
			Name:      a.Name,
			PromptDir: a.PromptDir,
			Installed: a.Installed(root),
		})
	}
	return infos
}
