package commands

import (
	"fmt"

	"github.com/TPGamesNL/Skript/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate alias definition files",
		Long: `Load every alias definition file and report what was registered.

Definitions that fail are listed with the file they came from. The command
exits with an error if any definition was skipped, so it can gate CI.

Output adapts to environment:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # Check the configured alias directories
  skaliases check

  # Check a single directory and fail on the first error
  skaliases check --alias-dir ./aliases --strict`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd)
		},
	}
	return cmd
}

// CheckSummary is the JSON form of a check.
type CheckSummary struct {
	Files      int      `json:"files"`
	Groups     int      `json:"groups"`
	Aliases    int      `json:"aliases"`
	Names      int      `json:"names"`
	Records    int      `json:"records"`
	Duplicates int      `json:"duplicates"`
	Skipped    int      `json:"skipped"`
	Errors     []string `json:"errors,omitempty"`
}

func runCheck(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	provider, result, err := cmdCtx.LoadAliases(cmd.Context())
	if err != nil {
		return err
	}

	summary := CheckSummary{
		Files:      result.Files,
		Groups:     result.Groups,
		Aliases:    result.Aliases,
		Names:      provider.AliasCount(),
		Records:    len(provider.Records()),
		Duplicates: result.Duplicates,
		Skipped:    result.Skipped,
	}
	for _, e := range result.Errors {
		summary.Errors = append(summary.Errors, e.Error())
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if err := r.JSON(summary); err != nil {
			return err
		}
	case output.ModeMarkdown:
		checkMarkdown(r, summary)
	default:
		checkText(r, summary)
	}

	if result.Skipped > 0 {
		return fmt.Errorf("%d alias definition(s) failed to load", result.Skipped)
	}
	return nil
}

func checkText(r *output.Renderer, s CheckSummary) {
	styles := r.Styles()
	r.Header(1, "Alias Check")
	r.Println("")
	r.Printf("  %s %d files, %d variation groups\n", styles.Muted.Render("Loaded"), s.Files, s.Groups)
	r.Printf("  %s %d aliases (%d names, %d distinct items)\n", styles.Muted.Render("Registered"), s.Aliases, s.Names, s.Records)
	if s.Duplicates > 0 {
		r.Printf("  %s %d names defined more than once\n", styles.Muted.Render("Merged"), s.Duplicates)
	}
	r.Println("")

	if s.Skipped == 0 {
		r.Success("All definitions loaded")
		return
	}
	r.Header(2, fmt.Sprintf("Skipped (%d)", s.Skipped))
	for _, e := range s.Errors {
		r.StatusLine(e, "failed", "")
	}
}

func checkMarkdown(r *output.Renderer, s CheckSummary) {
	r.Println(output.FormatHeader(1, "Alias Check"))
	r.Println("")
	r.Println(output.FormatKeyValue("Files", fmt.Sprint(s.Files)))
	r.Println(output.FormatKeyValue("Variation groups", fmt.Sprint(s.Groups)))
	r.Println(output.FormatKeyValue("Aliases", fmt.Sprint(s.Aliases)))
	r.Println(output.FormatKeyValue("Names", fmt.Sprint(s.Names)))
	r.Println(output.FormatKeyValue("Distinct items", fmt.Sprint(s.Records)))
	r.Println(output.FormatKeyValue("Duplicates", fmt.Sprint(s.Duplicates)))
	r.Println(output.FormatKeyValue("Skipped", fmt.Sprint(s.Skipped)))

	if len(s.Errors) > 0 {
		r.Println("")
		r.Println(output.FormatHeader(2, "Errors"))
		r.Println("")
		for _, e := range s.Errors {
			r.Println("- " + e)
		}
	}
}
