package config

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"golang.org/x/text/language"
)

// outputModes are the accepted values of the output option.
var outputModes = []string{"auto", "text", "markdown", "json"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if len(c.AliasDirs) == 0 {
		return fmt.Errorf("alias_dirs is required")
	}
	if c.Platform == "" {
		return fmt.Errorf("platform is required")
	}
	if !slices.Contains(outputModes, c.Output) {
		return fmt.Errorf("invalid output %q, must be one of: auto, text, markdown, json", c.Output)
	}
	if c.Language != "" {
		if _, err := language.Parse(c.Language); err != nil {
			return fmt.Errorf("invalid language %q: %w", c.Language, err)
		}
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	return nil
}

// ValidateDirectories checks if the alias directories exist.
func (c *Config) ValidateDirectories() error {
	for _, dir := range c.AliasDirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("alias directory does not exist: %s\nHint: Create the directory or use --alias-dir to specify a different path", dir)
		}
	}
	return nil
}

// SlogLevel returns the configured log level. Verbose forces debug.
func (c *Config) SlogLevel() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelWarn, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", s, err)
	}
	return level, nil
}
