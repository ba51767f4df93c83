package report

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/oidellajulio/code-review-cli/internal/git"
	"github.com/oidellajulio/code-review-cli/internal/materialize"
	"github.com/oidellajulio/code-review-cli/internal/output"
)

// Report is the comparison of a target branch against a base branch.
type Report struct {
	Target      string
	Base        string
	Project     string
	GeneratedAt time.Time
	Files       []string
	Commits     []git.Commit
	Diff        string
	Stat        git.Diffstat
}

var safeNameReplacer = strings.NewReplacer("/", "-", `\`, "-", ":", "-")

// SafeName turns a branch name into a file-name fragment.
func SafeName(branch string) string {
	return safeNameReplacer.Replace(branch)
}

// FileName returns the report file name for branch.
func FileName(branch string) string {
	return "relatorio_diff_" + SafeName(branch) + ".md"
}

// Build collects everything a report needs from repo.
func Build(ctx context.Context, repo git.Repo, target, base string, now func() time.Time) (*Report, error) {
	if strings.TrimSpace(target) == "" {
		return nil, output.NewUserError("target branch is required")
	}
	if base == "" {
		base = "main"
	}

	root, err := repo.Root(ctx)
	if err != nil {
		return nil, err
	}
	for _, ref := range []string{base, target} {
		if !repo.RefExists(ctx, ref) {
			return nil, output.NewSystemError(fmt.Sprintf("unknown branch or ref %q", ref))
		}
	}

	rep := &Report{
		Target:      target,
		Base:        base,
		Project:     filepath.Base(root),
		GeneratedAt: now(),
	}
	if rep.Files, err = repo.ChangedFiles(ctx, base, target); err != nil {
		return nil, err
	}
	if rep.Commits, err = repo.Commits(ctx, base, target); err != nil {
		return nil, err
	}
	if rep.Diff, err = repo.Diff(ctx, base, target); err != nil {
		return nil, err
	}
	if rep.Stat, err = repo.Stat(ctx, base, target); err != nil {
		return nil, err
	}
	return rep, nil
}

// FormatMarkdown renders the report document.
func FormatMarkdown(r *Report) string {
	var builder strings.Builder

	writeHeader(&builder, r)
	writeFiles(&builder, r.Files)
	writeCommits(&builder, r.Commits)
	writeDiff(&builder, r.Diff)

	return builder.String()
}

func writeHeader(builder *strings.Builder, r *Report) {
	fmt.Fprintf(builder, "# Relatório de Alterações: %s\n", r.Target)
	fmt.Fprintf(builder, "**Projeto:** %s\n", r.Project)
	fmt.Fprintf(builder, "**Gerado em:** %s\n", r.GeneratedAt.Format(time.UnixDate))
	fmt.Fprintf(builder, "**Branch Base:** %s\n", r.Base)
	fmt.Fprintf(builder, "**Branch Alvo:** %s\n", r.Target)
	builder.WriteString("\n---\n\n")
}

func writeFiles(builder *strings.Builder, files []string) {
	builder.WriteString("## 📂 Arquivos Alterados\n\n")
	for _, f := range files {
		fmt.Fprintf(builder, "- %s\n", f)
	}
	builder.WriteString("\n")
}

func writeCommits(builder *strings.Builder, commits []git.Commit) {
	builder.WriteString("## 📝 Histórico de Commits\n\n")
	for _, c := range commits {
		fmt.Fprintf(builder, "- %s\n", c.OneLine())
	}
	builder.WriteString("\n")
}

func writeDiff(builder *strings.Builder, diff string) {
	builder.WriteString("## 💻 Detalhes do Código (Diff)\n\n")
	builder.WriteString("```diff\n")
	if diff != "" {
		builder.WriteString(diff)
		builder.WriteString("\n")
	}
	builder.WriteString("```\n")
}

// Write stores the report as Markdown in dir and returns the file path.
// The diff is written as git produced it, carriage returns included.
func Write(r *Report, dir string) (string, error) {
	path := filepath.Join(dir, FileName(r.Target))
	if _, err := materialize.WriteFile(path, []byte(FormatMarkdown(r)), false); err != nil {
		return "", output.NewMaterializationError("writing report: "+err.Error(), err)
	}
	return path, nil
}
