package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zk-kit/zk-kit-mcp/pkg/catalog"
)

// compareCommand creates the compare command.
func (c *CLI) compareCommand() *cobra.Command {
	var flags registryFlags

	cmd := &cobra.Command{
		Use:   "compare <name>...",
		Short: "Compare packages side by side",
		Long: `Compare two or more packages in a markdown attribute table.

Names that resolve to a package contribute a column; names that resolve
to nothing are listed below the table. Implementations of the same
concepts in other languages are appended for context.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runReport(cmd.Context(), &flags, func(reg *catalog.Registry) string {
				return reg.Compare(args)
			})
		},
	}

	addRegistryFlags(cmd, &flags)

	return cmd
}

// overviewCommand creates the overview command.
func (c *CLI) overviewCommand() *cobra.Command {
	var flags registryFlags

	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Show the ecosystem overview report",
		Long:  `Show every package grouped by language and category, plus the concepts implemented in more than one language.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runReport(cmd.Context(), &flags, (*catalog.Registry).EcosystemOverview)
		},
	}

	addRegistryFlags(cmd, &flags)

	return cmd
}

// coverageCommand creates the coverage command.
func (c *CLI) coverageCommand() *cobra.Command {
	var flags registryFlags

	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Show the cross-language coverage matrix",
		Long:  `Show which concepts are implemented in which languages, as a concept-by-language matrix with a fill percentage.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runReport(cmd.Context(), &flags, (*catalog.Registry).CrossLanguageCoverage)
		},
	}

	addRegistryFlags(cmd, &flags)

	return cmd
}

// runReport loads the registry and prints one registry report.
func (c *CLI) runReport(ctx context.Context, flags *registryFlags, report func(*catalog.Registry) string) error {
	reg, cleanup, err := c.loadRegistry(ctx, flags)
	defer cleanup()
	if err != nil {
		return err
	}
	fmt.Println(strings.TrimRight(report(reg), "\n"))
	return nil
}
