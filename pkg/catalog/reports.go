package catalog

import (
	"fmt"
	"slices"
	"strings"
)

// NoPackagesMessage is the sentinel returned by report operations when the
// registry is empty. It short-circuits before any matrix math so an empty
// catalog can never produce a division by zero, and lets callers tell a
// cold registry apart from a query with no results.
const NoPackagesMessage = "No packages available."

// compareRows defines the attribute rows of a comparison table, in render
// order.
var compareRows = []struct {
	label string
	value func(Package) string
}{
	{"Language", func(p Package) string { return string(p.Language) }},
	{"Category", func(p Package) string { return string(p.Category) }},
	{"Version", func(p Package) string { return orDash(p.Version) }},
	{"Description", func(p Package) string { return orDash(p.Description) }},
	{"Install", func(p Package) string { return p.InstallCommand }},
	{"Cross-Language ID", func(p Package) string { return p.CrossLanguageID }},
	{"Repository", func(p Package) string { return p.Repo }},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Compare renders a side-by-side table of the named packages. Names
// resolve through GetByName; unresolved names are listed after the table.
// Packages sharing a cross-language id with any resolved package appear
// under "Other Language Variants".
func (r *Registry) Compare(names []string) string {
	var found []Package
	var missing []string
	for _, name := range names {
		if p, ok := r.GetByName(name); ok {
			found = append(found, p)
		} else {
			missing = append(missing, name)
		}
	}
	if len(found) == 0 {
		return fmt.Sprintf("No packages found matching: %s", strings.Join(missing, ", "))
	}

	var b strings.Builder
	b.WriteString("# Package Comparison\n\n")
	b.WriteString("| Attribute |")
	for _, p := range found {
		fmt.Fprintf(&b, " %s |", p.Name)
	}
	b.WriteString("\n|---|")
	for range found {
		b.WriteString("---|")
	}
	b.WriteString("\n")
	for _, row := range compareRows {
		fmt.Fprintf(&b, "| %s |", row.label)
		for _, p := range found {
			fmt.Fprintf(&b, " %s |", row.value(p))
		}
		b.WriteString("\n")
	}

	if len(missing) > 0 {
		fmt.Fprintf(&b, "\nNot found: %s\n", strings.Join(missing, ", "))
	}

	variants := r.languageVariants(found)
	if len(variants) > 0 {
		b.WriteString("\n## Other Language Variants\n")
		for _, p := range variants {
			fmt.Fprintf(&b, "- %s (%s)\n", p.Name, p.Language)
		}
	}

	return b.String()
}

// languageVariants returns packages sharing a cross-language id with any of
// the given packages without being among them, in catalog order.
func (r *Registry) languageVariants(found []Package) []Package {
	concepts := make(map[string]bool, len(found))
	shown := make(map[string]bool, len(found))
	for _, p := range found {
		concepts[p.CrossLanguageID] = true
		shown[packageKey(p)] = true
	}
	var variants []Package
	for _, p := range r.snapshot() {
		if concepts[p.CrossLanguageID] && !shown[packageKey(p)] {
			variants = append(variants, p)
		}
	}
	return variants
}

// packageKey identifies a package uniquely; names are unique only within a
// language.
func packageKey(p Package) string {
	return string(p.Language) + "/" + p.Name
}

// EcosystemOverview renders the whole catalog grouped by language and then
// category, both in first-seen catalog order, followed by the concepts
// implemented in more than one language.
func (r *Registry) EcosystemOverview() string {
	pkgs := r.snapshot()
	if len(pkgs) == 0 {
		return NoPackagesMessage
	}

	var langOrder []Language
	byLang := make(map[Language][]Package)
	for _, p := range pkgs {
		if _, ok := byLang[p.Language]; !ok {
			langOrder = append(langOrder, p.Language)
		}
		byLang[p.Language] = append(byLang[p.Language], p)
	}

	var b strings.Builder
	b.WriteString("# zk-kit Ecosystem Overview\n\n")
	fmt.Fprintf(&b, "%d package(s) across %d language(s).\n", len(pkgs), len(langOrder))

	for _, lang := range langOrder {
		group := byLang[lang]
		fmt.Fprintf(&b, "\n## %s (%d)\n", lang, len(group))
		var catOrder []Category
		byCat := make(map[Category][]Package)
		for _, p := range group {
			if _, ok := byCat[p.Category]; !ok {
				catOrder = append(catOrder, p.Category)
			}
			byCat[p.Category] = append(byCat[p.Category], p)
		}
		for _, cat := range catOrder {
			fmt.Fprintf(&b, "\n### %s\n", cat)
			for _, p := range byCat[cat] {
				b.WriteString("- " + overviewLine(p) + "\n")
			}
		}
	}

	ids, langsByID := conceptLanguages(pkgs)
	var multi []string
	for _, id := range ids {
		if len(langsByID[id]) > 1 {
			multi = append(multi, fmt.Sprintf("- %s: %s", id, joinLanguages(langsByID[id])))
		}
	}
	if len(multi) > 0 {
		b.WriteString("\n## Cross-Language Implementations\n")
		for _, line := range multi {
			b.WriteString(line + "\n")
		}
	}

	return b.String()
}

// overviewLine renders one package as "name (vX.Y.Z) - description",
// omitting the segments that are absent.
func overviewLine(p Package) string {
	line := p.Name
	if p.Version != "" {
		line += " (v" + p.Version + ")"
	}
	if p.Description != "" {
		line += " - " + p.Description
	}
	return line
}

// conceptLanguages collects the language set per cross-language id,
// returning ids in first-seen order with languages in precedence order.
func conceptLanguages(pkgs []Package) ([]string, map[string][]Language) {
	var ids []string
	langs := make(map[string][]Language)
	for _, p := range pkgs {
		id := p.CrossLanguageID
		if _, ok := langs[id]; !ok {
			ids = append(ids, id)
		}
		if !slices.Contains(langs[id], p.Language) {
			langs[id] = append(langs[id], p.Language)
		}
	}
	for _, set := range langs {
		sortLanguages(set)
	}
	return ids, langs
}

// CrossLanguageCoverage renders the concept-by-language presence matrix
// with an aggregate coverage percentage, the concepts spanning several
// languages, and the single-language gaps. Returns NoPackagesMessage for
// an empty registry before any matrix math runs.
func (r *Registry) CrossLanguageCoverage() string {
	pkgs := r.snapshot()
	if len(pkgs) == 0 {
		return NoPackagesMessage
	}

	present := make(map[string]map[Language]bool)
	langSet := make(map[Language]bool)
	for _, p := range pkgs {
		langSet[p.Language] = true
		if present[p.CrossLanguageID] == nil {
			present[p.CrossLanguageID] = make(map[Language]bool)
		}
		present[p.CrossLanguageID][p.Language] = true
	}

	var langs []Language
	for _, l := range Languages {
		if langSet[l] {
			langs = append(langs, l)
		}
	}
	concepts := make([]string, 0, len(present))
	for id := range present {
		concepts = append(concepts, id)
	}
	slices.Sort(concepts)

	filled := 0
	for _, set := range present {
		filled += len(set)
	}
	total := len(concepts) * len(langs)
	pct := float64(filled) / float64(total) * 100

	var b strings.Builder
	b.WriteString("# Cross-Language Coverage\n\n")
	fmt.Fprintf(&b, "Coverage: %.1f%% (%d of %d slots filled)\n\n", pct, filled, total)

	b.WriteString("| Concept |")
	for _, l := range langs {
		fmt.Fprintf(&b, " %s |", l)
	}
	b.WriteString("\n|---|")
	for range langs {
		b.WriteString("---|")
	}
	b.WriteString("\n")
	for _, id := range concepts {
		fmt.Fprintf(&b, "| %s |", id)
		for _, l := range langs {
			mark := "-"
			if present[id][l] {
				mark = "x"
			}
			fmt.Fprintf(&b, " %s |", mark)
		}
		b.WriteString("\n")
	}

	var multi, gaps []string
	for _, id := range concepts {
		set := present[id]
		if len(set) > 1 {
			var span []Language
			for _, l := range langs {
				if set[l] {
					span = append(span, l)
				}
			}
			multi = append(multi, fmt.Sprintf("- %s: %s", id, joinLanguages(span)))
		} else {
			for l := range set {
				gaps = append(gaps, fmt.Sprintf("- %s: %s only", id, l))
			}
		}
	}

	fmt.Fprintf(&b, "\n## Multi-Language Concepts (%d)\n", len(multi))
	if len(multi) == 0 {
		b.WriteString("None.\n")
	}
	for _, line := range multi {
		b.WriteString(line + "\n")
	}

	fmt.Fprintf(&b, "\n## Coverage Gaps (%d)\n", len(gaps))
	if len(gaps) == 0 {
		b.WriteString("None.\n")
	}
	for _, line := range gaps {
		b.WriteString(line + "\n")
	}

	return b.String()
}
