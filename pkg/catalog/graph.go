package catalog

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// ConceptClass is a node's role in the dependency graph.
type ConceptClass string

const (
	ClassFoundational ConceptClass = "foundational"
	ClassLeaf         ConceptClass = "leaf"
	ClassIndependent  ConceptClass = "independent"
)

// ConceptNode is one cross-language concept in the dependency graph.
// Languages is empty for concepts referenced only as dependencies.
type ConceptNode struct {
	ID           string
	Languages    []Language
	Dependencies []string // concepts this one depends on
	Dependents   []string // concepts that depend on this one
}

// Class classifies the node. In-degree is checked first: a concept that
// both has dependents and has dependencies is foundational, never leaf.
func (n *ConceptNode) Class() ConceptClass {
	switch {
	case len(n.Dependents) > 0:
		return ClassFoundational
	case len(n.Dependencies) > 0:
		return ClassLeaf
	default:
		return ClassIndependent
	}
}

// ConceptGraph is the directed dependency graph over cross-language ids.
// Packages sharing an id contribute to the same node and their edges are
// unioned; a dependency id with no implementing package still becomes a
// node.
type ConceptGraph struct {
	nodes map[string]*ConceptNode
	ids   []string // sorted
}

// BuildConceptGraph constructs the graph from a package list.
func BuildConceptGraph(pkgs []Package) *ConceptGraph {
	g := &ConceptGraph{nodes: make(map[string]*ConceptNode)}
	node := func(id string) *ConceptNode {
		n, ok := g.nodes[id]
		if !ok {
			n = &ConceptNode{ID: id}
			g.nodes[id] = n
		}
		return n
	}
	for _, p := range pkgs {
		n := node(p.CrossLanguageID)
		if !slices.Contains(n.Languages, p.Language) {
			n.Languages = append(n.Languages, p.Language)
		}
		for _, dep := range p.ZKKitDependencies {
			d := node(dep)
			if !slices.Contains(n.Dependencies, dep) {
				n.Dependencies = append(n.Dependencies, dep)
			}
			if !slices.Contains(d.Dependents, n.ID) {
				d.Dependents = append(d.Dependents, n.ID)
			}
		}
	}
	for id, n := range g.nodes {
		sort.Strings(n.Dependencies)
		sort.Strings(n.Dependents)
		sortLanguages(n.Languages)
		g.ids = append(g.ids, id)
	}
	sort.Strings(g.ids)
	return g
}

// IDs returns all concept ids, sorted lexicographically.
func (g *ConceptGraph) IDs() []string {
	return g.ids
}

// Node looks up a concept, falling back to a case-insensitive scan.
func (g *ConceptGraph) Node(id string) (*ConceptNode, bool) {
	if n, ok := g.nodes[id]; ok {
		return n, true
	}
	lower := strings.ToLower(id)
	for _, candidate := range g.ids {
		if strings.ToLower(candidate) == lower {
			return g.nodes[candidate], true
		}
	}
	return nil, false
}

// Classify partitions all concepts into the three classes, each sorted
// lexicographically by id.
func (g *ConceptGraph) Classify() (foundational, leaf, independent []*ConceptNode) {
	for _, id := range g.ids {
		n := g.nodes[id]
		switch n.Class() {
		case ClassFoundational:
			foundational = append(foundational, n)
		case ClassLeaf:
			leaf = append(leaf, n)
		default:
			independent = append(independent, n)
		}
	}
	return foundational, leaf, independent
}

// languageSuffix renders a node's implementing languages, or nothing for a
// concept no discovered package implements.
func languageSuffix(langs []Language) string {
	if len(langs) == 0 {
		return ""
	}
	return " (" + joinLanguages(langs) + ")"
}

// ConceptGraph builds the dependency graph from the current catalog.
func (r *Registry) ConceptGraph() *ConceptGraph {
	return BuildConceptGraph(r.snapshot())
}

// DependencyGraph renders the ecosystem-wide dependency report:
// foundational concepts with their dependents, leaf concepts with their
// dependencies, and independent concepts, each annotated with implementing
// languages.
func (r *Registry) DependencyGraph() string {
	pkgs := r.snapshot()
	if len(pkgs) == 0 {
		return NoPackagesMessage
	}
	g := BuildConceptGraph(pkgs)
	foundational, leaf, independent := g.Classify()

	var b strings.Builder
	b.WriteString("# zk-kit Dependency Graph\n")

	fmt.Fprintf(&b, "\n## Foundational (%d)\n", len(foundational))
	b.WriteString("Depended on by other zk-kit packages.\n")
	if len(foundational) == 0 {
		b.WriteString("None.\n")
	}
	for _, n := range foundational {
		fmt.Fprintf(&b, "- %s%s\n", n.ID, languageSuffix(n.Languages))
		fmt.Fprintf(&b, "  depended on by: %s\n", strings.Join(n.Dependents, ", "))
	}

	fmt.Fprintf(&b, "\n## Leaf (%d)\n", len(leaf))
	b.WriteString("Depend on other zk-kit packages; nothing depends on them.\n")
	if len(leaf) == 0 {
		b.WriteString("None.\n")
	}
	for _, n := range leaf {
		fmt.Fprintf(&b, "- %s%s\n", n.ID, languageSuffix(n.Languages))
		fmt.Fprintf(&b, "  depends on: %s\n", strings.Join(n.Dependencies, ", "))
	}

	fmt.Fprintf(&b, "\n## Independent (%d)\n", len(independent))
	b.WriteString("No zk-kit dependencies in either direction.\n")
	if len(independent) == 0 {
		b.WriteString("None.\n")
	}
	for _, n := range independent {
		fmt.Fprintf(&b, "- %s%s\n", n.ID, languageSuffix(n.Languages))
	}

	return b.String()
}

// ReverseDependencies renders the single-concept view: implementing
// languages, the concepts it depends on, and the concepts depending on it.
// A concept with no dependents reports that explicitly rather than
// omitting the section.
func (r *Registry) ReverseDependencies(id string) string {
	pkgs := r.snapshot()
	if len(pkgs) == 0 {
		return NoPackagesMessage
	}
	g := BuildConceptGraph(pkgs)
	n, ok := g.Node(id)
	if !ok {
		return fmt.Sprintf("No package found with cross-language id %q.", id)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Reverse Dependencies: %s\n\n", n.ID)
	if len(n.Languages) > 0 {
		fmt.Fprintf(&b, "Implemented in: %s\n", joinLanguages(n.Languages))
	} else {
		b.WriteString("Not implemented by any discovered package.\n")
	}

	fmt.Fprintf(&b, "\n## Depends On (%d package(s))\n", len(n.Dependencies))
	if len(n.Dependencies) == 0 {
		b.WriteString("No zk-kit dependencies.\n")
	}
	for _, dep := range n.Dependencies {
		b.WriteString(conceptLine(g, dep))
	}

	fmt.Fprintf(&b, "\n## Depended On By (%d package(s))\n", len(n.Dependents))
	if len(n.Dependents) == 0 {
		b.WriteString("No packages depend on this.\n")
	}
	for _, dep := range n.Dependents {
		b.WriteString(conceptLine(g, dep))
	}

	return b.String()
}

// conceptLine renders one related concept with its implementing languages.
func conceptLine(g *ConceptGraph, id string) string {
	if n, ok := g.Node(id); ok {
		return fmt.Sprintf("- %s%s\n", id, languageSuffix(n.Languages))
	}
	return fmt.Sprintf("- %s\n", id)
}
