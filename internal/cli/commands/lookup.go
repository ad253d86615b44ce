package commands

import (
	"fmt"
	"strings"

	"github.com/TPGamesNL/Skript/internal/cli/output"
	"github.com/TPGamesNL/Skript/internal/registry"
	"github.com/TPGamesNL/Skript/pkg/core"
	"github.com/spf13/cobra"
)

// NewLookupCommand creates the lookup command.
func NewLookupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <alias>...",
		Short: "Resolve alias names to items",
		Long: `Resolve one or more alias names and show the items each one stands for,
together with the canonical name and id of every item.

Names containing spaces must be quoted. The command fails if any name is
unknown.`,
		Example: `  # Resolve a single alias
  skaliases lookup "oak log"

  # Resolve several aliases as JSON
  skaliases lookup wool "red wool" -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, args)
		},
	}
	return cmd
}

// ItemInfo describes one resolved item.
type ItemInfo struct {
	Item          string `json:"item"`
	Kind          string `json:"kind"`
	MinecraftID   string `json:"minecraft_id,omitempty"`
	CanonicalName string `json:"canonical_name,omitempty"`
	RelatedEntity string `json:"related_entity,omitempty"`
}

// LookupResult is the JSON form of one resolved name.
type LookupResult struct {
	Name  string     `json:"name"`
	Items []ItemInfo `json:"items"`
}

func runLookup(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	reg, _, err := cmdCtx.LoadRegistry(cmd.Context())
	if err != nil {
		return err
	}

	results, unknown := lookupNames(reg, "", args)
	if err := renderLookup(cmdCtx.Renderer, results); err != nil {
		return err
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown alias(es): %s", strings.Join(unknown, ", "))
	}
	return nil
}

// lookupNames resolves names in scope and describes every item.
func lookupNames(reg *registry.Registry, scope string, names []string) ([]LookupResult, []string) {
	found, unknown := reg.ResolveAll(scope, names)
	results := make([]LookupResult, 0, len(found))
	for _, res := range found {
		lr := LookupResult{Name: res.Name}
		for _, item := range res.Items {
			lr.Items = append(lr.Items, describeItem(reg, scope, item))
		}
		results = append(results, lr)
	}
	return results, unknown
}

func describeItem(reg *registry.Registry, scope string, item *core.ItemData) ItemInfo {
	info := ItemInfo{Item: item.String(), Kind: item.Kind().String()}
	if data, ok := reg.Describe(scope, item); ok {
		info.MinecraftID = data.MinecraftID()
		info.CanonicalName = data.Name().Singular
		if entity := data.RelatedEntity(); entity != nil {
			info.RelatedEntity = entity.Type
		}
	}
	return info
}

func renderLookup(r *output.Renderer, results []LookupResult) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(results)
	case output.ModeMarkdown:
		for _, res := range results {
			r.Println(output.FormatHeader(2, res.Name))
			r.Println("")
			r.Table(lookupHeaders, lookupRows(res))
			r.Println("")
		}
	default:
		for _, res := range results {
			r.Println(r.Styles().Name.Render(res.Name) + r.Styles().Muted.Render(fmt.Sprintf(" (%d items)", len(res.Items))))
			r.Table(lookupHeaders, lookupRows(res))
		}
	}
	return nil
}

var lookupHeaders = []string{"Item", "Kind", "ID", "Canonical Name", "Entity"}

func lookupRows(res LookupResult) [][]string {
	rows := make([][]string, 0, len(res.Items))
	for _, info := range res.Items {
		rows = append(rows, []string{info.Item, info.Kind, info.MinecraftID, info.CanonicalName, info.RelatedEntity})
	}
	return rows
}
