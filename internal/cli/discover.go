package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/zk-kit/zk-kit-mcp/pkg/catalog"
)

// discoverCommand creates the discover command that scans the repositories
// and lists every package found.
func (c *CLI) discoverCommand() *cobra.Command {
	var (
		flags  registryFlags
		asJSON bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Scan the zk-kit repositories and list discovered packages",
		Long: `Scan the five zk-kit repositories and list every package found.

Each repository is scanned concurrently; repositories or packages that
fail to load are skipped with a warning rather than aborting the scan.
Results are cached locally so repeated invocations are fast.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDiscover(cmd.Context(), &flags, asJSON, output)
		},
	}

	addRegistryFlags(cmd, &flags)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print packages as JSON")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write packages as JSON to this file")

	return cmd
}

// runDiscover loads the registry and renders the results.
func (c *CLI) runDiscover(ctx context.Context, flags *registryFlags, asJSON bool, output string) error {
	prog := newProgress(c.Logger)
	reg, cleanup, err := c.loadRegistry(ctx, flags)
	defer cleanup()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Discovered %d packages", reg.Count()))

	pkgs := reg.All()

	if output != "" {
		data, err := json.MarshalIndent(pkgs, "", "  ")
		if err != nil {
			return fmt.Errorf("encode packages: %w", err)
		}
		if err := os.WriteFile(output, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		printSuccess("Wrote %d packages", len(pkgs))
		printFile(output)
		return nil
	}

	if asJSON {
		data, err := json.MarshalIndent(pkgs, "", "  ")
		if err != nil {
			return fmt.Errorf("encode packages: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println(packageTable(pkgs))
	printStats(len(pkgs), len(reg.ConceptGraph().IDs()), countLanguages(pkgs))
	printNewline()
	printNextStep("Inspect a package", appName+" info <name>")

	return nil
}

// packageTable renders packages as a bordered table.
func packageTable(pkgs []catalog.Package) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(pkgs))
	for _, p := range pkgs {
		rows = append(rows, []string{
			p.Name,
			string(p.Language),
			string(p.Category),
			orDash(p.Version),
			orDash(strings.Join(p.ZKKitDependencies, ", ")),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Package", "Language", "Category", "Version", "zk-kit deps").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			switch col {
			case 0:
				return lipgloss.NewStyle().Foreground(colorWhite)
			case 4:
				return lipgloss.NewStyle().Foreground(colorDim)
			default:
				return lipgloss.NewStyle().Foreground(colorGray)
			}
		})

	return t.Render()
}

// countLanguages returns the number of distinct languages among pkgs.
func countLanguages(pkgs []catalog.Package) int {
	seen := make(map[catalog.Language]bool)
	for _, p := range pkgs {
		seen[p.Language] = true
	}
	return len(seen)
}

// orDash returns s, or a dash placeholder when s is empty.
func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
