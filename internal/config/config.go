// internal/config/config.go
package config

import (
	"encoding/json"
	"os"
)

// Config carries the ambient knobs a CLI tool needs, as opposed to the
// server host/port/database.path a daemon would. Values are filled in
// priority order: defaults, then an optional .vcsliterc.json project
// file, then environment variables.
type Config struct {
	LogLevel string `json:"log_level"` // debug, info, warn, error
	Color    bool   `json:"color"`     // false disables ANSI color; true leaves it to tty detection
	RepoDir  string `json:"repo_dir"`  // name of the on-disk repo subtree, default ".vcslite"
}

func defaults() Config {
	return Config{
		LogLevel: "warn",
		Color:    true,
		RepoDir:  ".vcslite",
	}
}

// Load reads path (a JSON file) if present, overlays environment
// variables, and falls back to defaults for anything unset. A missing
// file is not an error.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		if file, err := os.Open(path); err == nil {
			defer file.Close()
			if err := json.NewDecoder(file).Decode(&cfg); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	if lvl := os.Getenv("VCSLITE_LOG_LEVEL"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if os.Getenv("NO_COLOR") != "" {
		cfg.Color = false
	}
	if dir := os.Getenv("VCSLITE_REPO_DIR"); dir != "" {
		cfg.RepoDir = dir
	}

	return &cfg, nil
}
