package commands

import (
	"fmt"

	"github.com/TPGamesNL/Skript/internal/cli/output"
	"github.com/TPGamesNL/Skript/internal/registry"
	"github.com/TPGamesNL/Skript/pkg/core"
	"github.com/spf13/cobra"
)

// NewMatchCommand creates the match command.
func NewMatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match <alias> <alias>",
		Short: "Compare the items of two aliases",
		Long: `Compare every item of the first alias with every item of the second and
report how closely they match, from worst to best:

  different      different materials
  same_material  same material, different damage or tags
  same_item      same item, block states partially agree
  exact          the same item
  identical      the same descriptor

The best quality over all pairs is reported.`,
		Example: `  skaliases match "oak log" "upright oak log"`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, args[0], args[1])
		},
	}
	return cmd
}

// MatchResult is the JSON form of a comparison.
type MatchResult struct {
	Left    string `json:"left"`
	Right   string `json:"right"`
	Quality string `json:"quality"`
}

func runMatch(cmd *cobra.Command, left, right string) error {
	cmdCtx := NewCommandContext(cmd)
	reg, _, err := cmdCtx.LoadRegistry(cmd.Context())
	if err != nil {
		return err
	}

	quality, err := matchAliases(reg, "", left, right)
	if err != nil {
		return err
	}

	res := MatchResult{Left: left, Right: right, Quality: quality.String()}
	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(res)
	case output.ModeMarkdown:
		r.Println(output.FormatKeyValue(fmt.Sprintf("%s ~ %s", left, right), res.Quality))
	default:
		r.Printf("%s ~ %s: %s\n", left, right, r.Styles().Bold.Render(res.Quality))
	}
	return nil
}

// matchAliases returns the best quality over all item pairs of two aliases.
func matchAliases(reg *registry.Registry, scope, left, right string) (core.MatchQuality, error) {
	leftItems, ok := reg.Resolve(scope, left)
	if !ok {
		return core.QualityDifferent, fmt.Errorf("unknown alias %q", left)
	}
	rightItems, ok := reg.Resolve(scope, right)
	if !ok {
		return core.QualityDifferent, fmt.Errorf("unknown alias %q", right)
	}

	best := core.QualityDifferent
	for _, a := range leftItems {
		for _, b := range rightItems {
			if q := a.MatchAlias(b); q.IsBetter(best) {
				best = q
			}
		}
	}
	return best, nil
}
