package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display skaliases version and build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "skaliases v%s\n", version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Alias resolution toolkit built with %s\n", runtime.Version())
		},
	}
}
