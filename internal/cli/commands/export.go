package commands

import (
	"context"
	"fmt"

	"github.com/TPGamesNL/Skript/internal/catalog"
	"github.com/TPGamesNL/Skript/internal/cli/output"
	"github.com/TPGamesNL/Skript/pkg/aliases"
	"github.com/spf13/cobra"
)

// ExportOptions holds options for the export command.
type ExportOptions struct {
	Keep int
}

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the resolved aliases to the SQLite catalog",
		Long: `Load all alias definitions and write a snapshot of the resolved aliases and
their canonical items to the catalog database.

Each export gets its own id. Older exports are kept unless --keep is set.`,
		Example: `  # Export to the configured catalog
  skaliases export

  # Export to a specific file and keep only the latest 3 exports
  skaliases export --catalog ./out/catalog.db --keep 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Keep, "keep", 0, "Number of exports to keep (0 keeps all)")
	return cmd
}

// ExportSummary is the JSON form of an export.
type ExportSummary struct {
	ID      string `json:"id"`
	Catalog string `json:"catalog"`
	Records int    `json:"records"`
	Aliases int    `json:"aliases"`
	Pruned  int64  `json:"pruned"`
}

func runExport(cmd *cobra.Command, opts *ExportOptions) error {
	cmdCtx := NewCommandContext(cmd)
	provider, _, err := cmdCtx.LoadAliases(cmd.Context())
	if err != nil {
		return err
	}

	summary, err := exportProvider(cmd.Context(), cmdCtx, provider, 0, opts.Keep)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(summary)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Export"))
		r.Println("")
		r.Println(output.FormatKeyValue("ID", summary.ID))
		r.Println(output.FormatKeyValue("Catalog", summary.Catalog))
		r.Println(output.FormatKeyValue("Records", fmt.Sprint(summary.Records)))
		r.Println(output.FormatKeyValue("Aliases", fmt.Sprint(summary.Aliases)))
	default:
		r.Success(fmt.Sprintf("Exported %d items and %d aliases to %s", summary.Records, summary.Aliases, summary.Catalog))
		r.Muted("export " + summary.ID)
	}
	return nil
}

// exportProvider writes a snapshot of provider to the configured catalog.
func exportProvider(ctx context.Context, cmdCtx *CommandContext, provider *aliases.Provider, generation uint64, keep int) (*ExportSummary, error) {
	snap, err := catalog.NewSnapshot(provider, generation)
	if err != nil {
		return nil, fmt.Errorf("failed to build snapshot: %w", err)
	}

	store, err := catalog.Open(cmdCtx.Cfg.Catalog.Path, cmdCtx.Logger)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(); err != nil {
		return nil, err
	}
	if err := store.Write(ctx, snap); err != nil {
		return nil, err
	}

	summary := &ExportSummary{
		ID:      snap.ID,
		Catalog: cmdCtx.Cfg.Catalog.Path,
		Records: len(snap.Records),
		Aliases: len(snap.Aliases),
	}
	if keep > 0 {
		pruned, err := store.Prune(ctx, keep)
		if err != nil {
			return nil, err
		}
		summary.Pruned = pruned
	}
	return summary, nil
}
