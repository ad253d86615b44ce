package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/TPGamesNL/Skript/internal/cli/config"
	"github.com/TPGamesNL/Skript/internal/cli/output"
	"github.com/TPGamesNL/Skript/internal/loader"
	"github.com/TPGamesNL/Skript/internal/platform"
	"github.com/TPGamesNL/Skript/internal/registry"
	"github.com/TPGamesNL/Skript/pkg/aliases"
	"github.com/TPGamesNL/Skript/pkg/spi"
	"github.com/spf13/cobra"
)

// expectedAliasCount sizes the global provider's tables.
const expectedAliasCount = 4096

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer

	platform spi.Platform
}

// NewCommandContext creates a CommandContext from the config and logger
// stored in the command context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.Output)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Platform returns the configured platform, creating it on first use.
func (c *CommandContext) Platform() (spi.Platform, error) {
	if c.platform != nil {
		return c.platform, nil
	}
	p, err := platform.New(c.Cfg.Platform, c.Logger)
	if err != nil {
		return nil, err
	}
	c.platform = p
	return p, nil
}

// AliasDirs returns the configured alias directories with the language
// sub-directory selected.
func (c *CommandContext) AliasDirs() ([]string, error) {
	if err := c.Cfg.ValidateDirectories(); err != nil {
		return nil, err
	}
	dirs := make([]string, 0, len(c.Cfg.AliasDirs))
	for _, dir := range c.Cfg.AliasDirs {
		resolved, err := loader.ResolveLanguageDir(dir, c.Cfg.Language)
		if err != nil {
			return nil, err
		}
		if resolved != dir {
			c.Logger.Debug("selected alias language",
				slog.String("dir", dir),
				slog.String("selected", resolved))
		}
		dirs = append(dirs, resolved)
	}
	return dirs, nil
}

// LoadAliases loads every definition file into a fresh global provider.
// In lenient mode the returned result carries the skipped definitions.
func (c *CommandContext) LoadAliases(ctx context.Context) (*aliases.Provider, *loader.Result, error) {
	p, err := c.Platform()
	if err != nil {
		return nil, nil, err
	}
	dirs, err := c.AliasDirs()
	if err != nil {
		return nil, nil, err
	}

	provider := aliases.NewProvider(expectedAliasCount, nil, p, aliases.WithLogger(c.Logger))
	l := loader.New(provider, loader.WithStrict(c.Cfg.Strict), loader.WithLogger(c.Logger))
	result, err := l.LoadDirs(ctx, dirs...)
	if err != nil {
		return nil, result, fmt.Errorf("failed to load aliases: %w", err)
	}

	c.Logger.Info("loaded aliases",
		slog.Int("files", result.Files),
		slog.Int("aliases", result.Aliases),
		slog.Int("skipped", result.Skipped))
	return provider, result, nil
}

// LoadRegistry loads the aliases into a new registry.
func (c *CommandContext) LoadRegistry(ctx context.Context) (*registry.Registry, *loader.Result, error) {
	provider, result, err := c.LoadAliases(ctx)
	if err != nil {
		return nil, result, err
	}
	return registry.New(provider, c.Logger), result, nil
}
