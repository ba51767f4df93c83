package templates

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter is the YAML header of the review prompt.
type Frontmatter struct {
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
}

// PromptBody returns the raw prompt template, placeholder included.
func PromptBody() string {
	data, err := files.ReadFile("files/" + PromptFileName)
	if err != nil {
		// The file is embedded at build time.
		panic(err)
	}
	return string(data)
}

// RenderPrompt substitutes command for the placeholder. The replacement is
// literal; command is not escaped or interpreted.
func RenderPrompt(command string) string {
	return strings.Replace(PromptBody(), Placeholder, command, 1)
}

// ParsePrompt splits a rendered prompt into its frontmatter and body.
func ParsePrompt(raw string) (Frontmatter, string, error) {
	header, body := splitFrontmatter(raw)

	var fm Frontmatter
	if header != "" {
		if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
			return Frontmatter{}, "", fmt.Errorf("invalid frontmatter: %w", err)
		}
	}
	return fm, body, nil
}

// splitFrontmatter separates YAML frontmatter delimited by --- lines from content.
func splitFrontmatter(raw string) (frontmatter, content string) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "---") {
		return "", raw
	}

	before, after, ok := strings.Cut(raw[3:], "\n---")
	if !ok {
		return "", raw
	}
	return strings.TrimSpace(before), strings.TrimSpace(after)
}
