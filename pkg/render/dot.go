// Package render turns the concept dependency graph into DOT text, SVG,
// and raster artifacts for the CLI's graph export.
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/zk-kit/zk-kit-mcp/pkg/catalog"
)

// Options configures concept graph rendering.
type Options struct {
	// Detailed includes implementing languages in node labels.
	// When false, only the concept id is shown.
	Detailed bool
}

// ToDOT converts a concept graph to Graphviz DOT format. The resulting
// DOT string can be rendered using [RenderSVG], [RenderPNG], or [RenderPDF].
//
// Node fill encodes classification: foundational concepts are gold, leaf
// concepts blue, independent concepts white. Concepts referenced only as
// dependencies are rendered with dashed outlines and grey fill. Edges
// point from a concept to what it depends on.
func ToDOT(g *catalog.ConceptGraph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph zkkit {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, id := range g.IDs() {
		n, _ := g.Node(id)
		attrs := fmtAttrs(n, fmtLabel(n, opts.Detailed))
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, id := range g.IDs() {
		n, _ := g.Node(id)
		for _, dep := range n.Dependencies {
			fmt.Fprintf(&buf, "  %q -> %q;\n", id, dep)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *catalog.ConceptNode, detailed bool) string {
	if !detailed || len(n.Languages) == 0 {
		return n.ID
	}

	parts := make([]string, len(n.Languages))
	for i, l := range n.Languages {
		parts[i] = string(l)
	}
	return n.ID + "\n" + strings.Join(parts, ", ")
}

func fmtAttrs(n *catalog.ConceptNode, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if len(n.Languages) == 0 {
		// Referenced as a dependency, implemented by no discovered package.
		return append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	switch n.Class() {
	case catalog.ClassFoundational:
		attrs = append(attrs, "fillcolor=lightgoldenrod1")
	case catalog.ClassLeaf:
		attrs = append(attrs, "fillcolor=lightblue")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [ToPNG] or [ToPDF].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return ToPNG(svg, scale)
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return ToPDF(svg)
}
