package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied when neither the environment nor the config file set a value.
const (
	DefaultPacing     = 300 * time.Millisecond
	DefaultBaseBranch = "main"
)

// Environment variables that override config file values.
const (
	EnvAgent  = "CODE_REVIEW_AGENT"
	EnvScript = "CODE_REVIEW_SCRIPT"
	EnvPacing = "CODE_REVIEW_PACING"
	EnvBase   = "CODE_REVIEW_BASE_BRANCH"
)

// File mirrors the on-disk config.yaml.
type File struct {
	Agent      string `yaml:"agent"`
	Script     string `yaml:"script"`
	Pacing     string `yaml:"pacing"`
	BaseBranch string `yaml:"base_branch"`
}

// Settings are the resolved defaults for a run. Agent and Script are only
// default selections; flags and interactive choices take precedence.
type Settings struct {
	Agent      string
	Script     string
	Pacing     time.Duration
	BaseBranch string
	Source     string // config file that was read, empty if none
}

// Load resolves settings from Dir()/config.yaml and the environment.
// Problems are reported as warnings; a broken config never blocks a run.
func Load() (Settings, []string) {
	return LoadFrom(FilePath())
}

// LoadFrom resolves settings from the given config file path and the environment.
// An empty path skips the file.
func LoadFrom(path string) (Settings, []string) {
	settings := Settings{
		Pacing:     DefaultPacing,
		BaseBranch: DefaultBaseBranch,
	}
	var warnings []string

	if path != "" {
		file, err := readFile(path)
		switch {
		case err != nil:
			warnings = append(warnings, err.Error())
		case file != nil:
			settings.Source = path
			warnings = append(warnings, settings.apply(*file)...)
		}
	}

	warnings = append(warnings, settings.apply(fromEnv())...)
	return settings, warnings
}

// readFile parses the config file. A missing file returns nil, nil.
func readFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &file, nil
}

// fromEnv collects overrides from the environment.
func fromEnv() File {
	return File{
		Agent:      os.Getenv(EnvAgent),
		Script:     os.Getenv(EnvScript),
		Pacing:     os.Getenv(EnvPacing),
		BaseBranch: os.Getenv(EnvBase),
	}
}

// apply overlays non-empty values from file onto s.
func (s *Settings) apply(file File) []string {
	var warnings []string

	if v := strings.TrimSpace(file.Agent); v != "" {
		s.Agent = strings.ToLower(v)
	}
	if v := strings.TrimSpace(file.Script); v != "" {
		s.Script = strings.ToLower(v)
	}
	if v := strings.TrimSpace(file.BaseBranch); v != "" {
		s.BaseBranch = v
	}
	if v := strings.TrimSpace(file.Pacing); v != "" {
		pacing, err := time.ParseDuration(v)
		if err != nil || pacing < 0 {
			warnings = append(warnings, fmt.Sprintf("ignoring invalid pacing %q", v))
		} else {
			s.Pacing = pacing
		}
	}

	return warnings
}
