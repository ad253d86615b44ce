package commands

import (
	"fmt"
	"slices"
	"strings"

	"github.com/TPGamesNL/Skript/internal/cli/output"
	"github.com/TPGamesNL/Skript/internal/registry"
	"github.com/spf13/cobra"
)

// ListOptions holds options for the list command.
type ListOptions struct {
	Prefix string
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List alias names",
		Long: `List every registered alias name with the number of items it resolves to
and the materials involved. Singular and plural forms are listed separately.`,
		Example: `  # List all aliases
  skaliases list

  # List aliases starting with "oak"
  skaliases list --prefix oak`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "Only list names with this prefix")
	return cmd
}

// AliasEntry is the JSON form of one listed alias.
type AliasEntry struct {
	Name      string   `json:"name"`
	Items     int      `json:"items"`
	Materials []string `json:"materials"`
}

func runList(cmd *cobra.Command, opts *ListOptions) error {
	cmdCtx := NewCommandContext(cmd)
	reg, _, err := cmdCtx.LoadRegistry(cmd.Context())
	if err != nil {
		return err
	}

	entries := listAliases(reg, "", opts.Prefix)
	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(entries)
	}

	r.Header(1, fmt.Sprintf("Aliases (%d)", len(entries)))
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Name, fmt.Sprint(e.Items), strings.Join(e.Materials, ", ")})
	}
	r.Table([]string{"Name", "Items", "Materials"}, rows)
	return nil
}

func listAliases(reg *registry.Registry, scope, prefix string) []AliasEntry {
	var entries []AliasEntry
	for _, name := range reg.Names(scope) {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		items, ok := reg.Resolve(scope, name)
		if !ok {
			continue
		}
		var materials []string
		for _, item := range items {
			materials = append(materials, item.Material().Key)
		}
		slices.Sort(materials)
		entries = append(entries, AliasEntry{
			Name:      name,
			Items:     len(items),
			Materials: slices.Compact(materials),
		})
	}
	return entries
}
