// Package config provides configuration management for the skaliases CLI.
package config

import "time"

// Config holds all CLI configuration options.
type Config struct {
	AliasDirs []string      `koanf:"alias_dirs"`
	Language  string        `koanf:"language"`
	Platform  string        `koanf:"platform"`
	Strict    bool          `koanf:"strict"`
	Verbose   bool          `koanf:"verbose"`
	LogLevel  string        `koanf:"log_level"`
	Output    string        `koanf:"output"`
	Catalog   CatalogConfig `koanf:"catalog"`
	Watch     WatchConfig   `koanf:"watch"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-"`
}

// CatalogConfig configures the SQLite catalog export.
type CatalogConfig struct {
	Path string `koanf:"path"`
}

// WatchConfig configures live reloading.
type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce"`
}
