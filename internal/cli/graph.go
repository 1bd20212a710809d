package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zk-kit/zk-kit-mcp/pkg/render"
)

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		flags    registryFlags
		output   string
		detailed bool
		scale    float64
	)

	cmd := &cobra.Command{
		Use:   "graph [concept]",
		Short: "Show the concept dependency graph",
		Long: `Show how zk-kit concepts depend on each other.

Without arguments, prints the full dependency report with concepts
classified as foundational, leaf or independent. With a concept id (or a
package name, which resolves to its concept), prints that concept's
dependencies and dependents.

With --output, renders the whole graph with Graphviz instead. The format
is inferred from the file extension: .svg, .png, .pdf or .dot.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			concept := ""
			if len(args) == 1 {
				concept = args[0]
			}
			if concept != "" && output != "" {
				return fmt.Errorf("cannot combine a concept argument with --output")
			}
			return c.runGraph(cmd.Context(), &flags, concept, output, detailed, scale)
		},
	}

	addRegistryFlags(cmd, &flags)
	cmd.Flags().StringVarP(&output, "output", "o", "", "render to this file (.svg, .png, .pdf or .dot)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include implementing languages in node labels")
	cmd.Flags().Float64Var(&scale, "scale", 2.0, "raster scale factor for PNG output")

	return cmd
}

// runGraph prints the graph report or renders it to a file.
func (c *CLI) runGraph(ctx context.Context, flags *registryFlags, concept, output string, detailed bool, scale float64) error {
	format := ""
	if output != "" {
		var err error
		format, err = graphFormat(output)
		if err != nil {
			return err
		}
	}

	reg, cleanup, err := c.loadRegistry(ctx, flags)
	defer cleanup()
	if err != nil {
		return err
	}

	if output == "" {
		if concept != "" {
			if p, ok := reg.GetByName(concept); ok {
				concept = p.CrossLanguageID
			}
			fmt.Println(strings.TrimRight(reg.ReverseDependencies(concept), "\n"))
			return nil
		}
		fmt.Println(strings.TrimRight(reg.DependencyGraph(), "\n"))
		return nil
	}

	dot := render.ToDOT(reg.ConceptGraph(), render.Options{Detailed: detailed})

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", format))
	spinner.Start()
	data, err := renderGraph(dot, format, scale)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	spinner.Stop()

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Rendered dependency graph")
	printFile(output)
	return nil
}

// graphFormat maps an output path's extension to a render format.
func graphFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return "svg", nil
	case ".png":
		return "png", nil
	case ".pdf":
		return "pdf", nil
	case ".dot":
		return "dot", nil
	default:
		return "", fmt.Errorf("unsupported output format %q (expected .svg, .png, .pdf or .dot)", filepath.Ext(path))
	}
}

// renderGraph renders DOT text into the requested format.
func renderGraph(dot, format string, scale float64) ([]byte, error) {
	switch format {
	case "dot":
		return []byte(dot), nil
	case "svg":
		return render.RenderSVG(dot)
	case "png":
		return render.RenderPNG(dot, scale)
	case "pdf":
		return render.RenderPDF(dot)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
