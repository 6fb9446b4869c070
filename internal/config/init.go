package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Config{
		Site: SiteConfig{
			Title:       "My Blog",
			BaseURL:     "https://example.com",
			Description: "Notes and essays",
			Author:      "${BLOG_AUTHOR}",
		},
		ContentDir: "content",
		OutputDir:  "output",
		Exclude:    []string{"drafts/**"},
		Log: LogConfig{
			Level:  string(LogLevelInfo),
			Format: string(LogFormatText),
		},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
