package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/TPGamesNL/Skript/internal/loader"
	"github.com/TPGamesNL/Skript/internal/registry"
	"github.com/spf13/cobra"
)

// WatchOptions holds options for the watch command.
type WatchOptions struct {
	Export bool
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &WatchOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reload aliases when definition files change",
		Long: `Load the alias definitions, then watch the alias directories and reload
whenever a definition file changes. Each reload replaces the whole alias set.

With --export every successful reload is also written to the catalog.
Stop with Ctrl+C.`,
		Example: `  skaliases watch
  skaliases watch --export --debounce 500ms`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Export, "export", false, "Write each reload to the catalog")
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, opts *WatchOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	reg, result, err := cmdCtx.LoadRegistry(ctx)
	if err != nil {
		return err
	}
	dirs, err := cmdCtx.AliasDirs()
	if err != nil {
		return err
	}
	reportReload(cmdCtx, reg, result)
	if opts.Export {
		exportGeneration(ctx, cmdCtx, reg)
	}

	w := &loader.Watcher{
		Dirs:     dirs,
		Debounce: cmdCtx.Cfg.Watch.Debounce,
		Logger:   cmdCtx.Logger,
	}
	r.Muted(fmt.Sprintf("watching %d director(ies), press Ctrl+C to stop", len(dirs)))

	return w.Run(ctx, func(changed []string) {
		cmdCtx.Logger.Debug("reloading aliases", slog.Any("changed", changed))
		provider, result, err := cmdCtx.LoadAliases(ctx)
		if err != nil {
			// Keep serving the previous aliases.
			r.Error(err.Error())
			return
		}
		reg.Swap(provider)
		reportReload(cmdCtx, reg, result)
		if opts.Export {
			exportGeneration(ctx, cmdCtx, reg)
		}
	})
}

func reportReload(cmdCtx *CommandContext, reg *registry.Registry, result *loader.Result) {
	r := cmdCtx.Renderer
	msg := fmt.Sprintf("generation %d: %d aliases from %d files", reg.Generation(), result.Aliases, result.Files)
	if result.Skipped == 0 {
		r.Success(msg)
		return
	}
	r.Warning(fmt.Sprintf("%s, %d skipped", msg, result.Skipped))
	for _, e := range result.Errors {
		r.StatusLine(e.Error(), "failed", "")
	}
}

func exportGeneration(ctx context.Context, cmdCtx *CommandContext, reg *registry.Registry) {
	summary, err := exportProvider(ctx, cmdCtx, reg.Global(), reg.Generation(), 0)
	if err != nil {
		cmdCtx.Renderer.Error(err.Error())
		return
	}
	cmdCtx.Renderer.Muted("exported " + summary.ID)
}
