// Package config resolves review-cli settings from the config directory,
// the environment, and built-in defaults.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// EnvConfigHome names the config directory directly, skipping the lookup.
const EnvConfigHome = "CODE_REVIEW_CONFIG_HOME"

const (
	appName     = "code-review"
	fileName    = "config.yaml"
	envFileName = "env"
)

// Dir returns the review-cli configuration directory, or "" when none can
// be resolved. $CODE_REVIEW_CONFIG_HOME is used as is; otherwise the first
// available base of $XDG_CONFIG_HOME, %AppData% (Windows only) and
// ~/.config gets a code-review subdirectory.
func Dir() string {
	if dir := os.Getenv(EnvConfigHome); dir != "" {
		return dir
	}
	for _, base := range baseDirs(runtime.GOOS) {
		if base != "" {
			return filepath.Join(base, appName)
		}
	}
	return ""
}

// baseDirs lists candidate parent directories for goos, most specific first.
// Unset candidates are empty strings.
func baseDirs(goos string) []string {
	bases := []string{os.Getenv("XDG_CONFIG_HOME")}
	if goos == "windows" {
		bases = append(bases, os.Getenv("APPDATA"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		bases = append(bases, filepath.Join(home, ".config"))
	}
	return bases
}

// FilePath returns the path of config.yaml, or "" without a config dir.
func FilePath() string { return inDir(fileName) }

// EnvFilePath returns the path of the env file read at startup, or "".
func EnvFilePath() string { return inDir(envFileName) }

func inDir(name string) string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, name)
}
