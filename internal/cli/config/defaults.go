package config

import "time"

// Config file names, in lookup order.
const (
	ConfigFileName    = "skaliases.yaml"
	ConfigFileNameAlt = "skaliases.yml"
)

// Default configuration values.
const (
	DefaultAliasDir    = "aliases"
	DefaultLanguage    = "en"
	DefaultPlatform    = "vanilla"
	DefaultLogLevel    = "warn"
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultCatalogPath = ".skaliases/catalog.db"
	DefaultDebounce    = 100 * time.Millisecond
)

// EnvPrefix is the prefix of environment variables read into the config.
const EnvPrefix = "SKALIASES_"

// defaults returns the lowest configuration layer.
func defaults() map[string]any {
	return map[string]any{
		"alias_dirs":     []string{DefaultAliasDir},
		"language":       DefaultLanguage,
		"platform":       DefaultPlatform,
		"strict":         false,
		"verbose":        false,
		"log_level":      DefaultLogLevel,
		"output":         DefaultOutput,
		"catalog.path":   DefaultCatalogPath,
		"watch.debounce": DefaultDebounce.String(),
	}
}

// Default returns a config holding only default values.
func Default() *Config {
	return &Config{
		AliasDirs: []string{DefaultAliasDir},
		Language:  DefaultLanguage,
		Platform:  DefaultPlatform,
		LogLevel:  DefaultLogLevel,
		Output:    DefaultOutput,
		Catalog:   CatalogConfig{Path: DefaultCatalogPath},
		Watch:     WatchConfig{Debounce: DefaultDebounce},
	}
}
