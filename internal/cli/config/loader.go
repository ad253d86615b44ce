package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// flagKeys maps flag names to config keys where they differ from the
// snake_case form of the flag name.
var flagKeys = map[string]string{
	"alias-dir": "alias_dirs",
	"catalog":   "catalog.path",
	"debounce":  "watch.debounce",
}

// envKeys maps env keys (prefix stripped, lower-cased) to nested config keys.
var envKeys = map[string]string{
	"catalog_path":   "catalog.path",
	"watch_debounce": "watch.debounce",
}

// findConfigFile finds the config file to use.
// Priority: explicit path > skaliases.yaml > skaliases.yml, searched upward from startDir.
func findConfigFile(explicit, startDir string) string {
	if explicit != "" {
		return explicit
	}
	dir := startDir
	for range maxUpwardSearchLevels {
		for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}
	return ""
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
// Returns the path unchanged if it's empty or already absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// LoadConfig loads configuration from defaults, the config file, environment
// variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	configFile := findConfigFile(cfgFile, cwd)
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	// 3. Load environment variables (SKALIASES_ prefix)
	// Transform: SKALIASES_CATALOG_PATH -> catalog.path, SKALIASES_ALIAS_DIRS=a,b -> [a b]
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		if mapped, ok := envKeys[key]; ok {
			key = mapped
		}
		if key == "alias_dirs" {
			return key, splitList(value)
		}
		return key, value
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority - overrides env vars and config file)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				key = strings.ReplaceAll(f.Name, "-", "_")
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = configFile

	// 6. Paths from the config file or defaults are relative to the config
	// file; paths given on the command line or in the environment are
	// relative to the working directory.
	if configFile != "" {
		baseDir := filepath.Dir(configFile)
		if !setOnCommandLine(flags, "alias-dir", "ALIAS_DIRS") {
			for i, dir := range cfg.AliasDirs {
				cfg.AliasDirs[i] = resolvePathRelativeTo(dir, baseDir)
			}
		}
		if !setOnCommandLine(flags, "catalog", "CATALOG_PATH") {
			cfg.Catalog.Path = resolvePathRelativeTo(cfg.Catalog.Path, baseDir)
		}
	}

	return &cfg, nil
}

// setOnCommandLine reports whether a value came from the named flag or env var.
func setOnCommandLine(flags *pflag.FlagSet, flagName, envSuffix string) bool {
	if flags != nil && flags.Changed(flagName) {
		return true
	}
	_, ok := os.LookupEnv(EnvPrefix + envSuffix)
	return ok
}

// splitList splits a comma-separated list, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
