package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var flags registryFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse packages interactively",
		Long: `Browse the package catalog in an interactive list.

Tab cycles through language filters, enter shows the selected package's
detail card, and q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), &flags)
		},
	}

	addRegistryFlags(cmd, &flags)

	return cmd
}

// runBrowse loads the registry and runs the browser TUI.
func (c *CLI) runBrowse(ctx context.Context, flags *registryFlags) error {
	reg, cleanup, err := c.loadRegistry(ctx, flags)
	defer cleanup()
	if err != nil {
		return err
	}

	m := newBrowseModel(reg.All())
	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	fm, ok := finalModel.(browseModel)
	if !ok || fm.selected == nil {
		return nil
	}

	printNewline()
	printPackageCard(*fm.selected, reg.All())
	return nil
}
