package manifest

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/zk-kit/zk-kit-mcp/pkg/catalog"
)

// Dependency is one declared dependency with its raw requirement string.
type Dependency struct {
	Name        string
	Requirement string
}

// Section groups the dependencies declared under one manifest table, in
// the order the dialect defines its tables.
type Section struct {
	Title string
	Deps  []Dependency
}

// ListDependencies returns every dependency a manifest declares, grouped
// by section. Unlike Parse, the listing is not limited to zk-kit packages
// and keeps dev and peer tables.
func ListDependencies(lang catalog.Language, data []byte) ([]Section, error) {
	switch lang {
	case catalog.LangTypeScript, catalog.LangCircom, catalog.LangSolidity:
		return listPackageJSONDeps(data)
	case catalog.LangRust:
		return listCargoDeps(data)
	case catalog.LangNoir:
		return listNargoDeps(data)
	default:
		return nil, fmt.Errorf("no manifest dialect for language %q", lang)
	}
}

type packageJSONListing struct {
	Dependencies     any `json:"dependencies"`
	DevDependencies  any `json:"devDependencies"`
	PeerDependencies any `json:"peerDependencies"`
}

func listPackageJSONDeps(data []byte) ([]Section, error) {
	var file packageJSONListing
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	return collectSections(
		Section{Title: "dependencies", Deps: tableDeps(file.Dependencies)},
		Section{Title: "devDependencies", Deps: tableDeps(file.DevDependencies)},
		Section{Title: "peerDependencies", Deps: tableDeps(file.PeerDependencies)},
	), nil
}

type cargoListing struct {
	Dependencies      any `toml:"dependencies"`
	DevDependencies   any `toml:"dev-dependencies"`
	BuildDependencies any `toml:"build-dependencies"`
}

func listCargoDeps(data []byte) ([]Section, error) {
	var file cargoListing
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	return collectSections(
		Section{Title: "dependencies", Deps: tableDeps(file.Dependencies)},
		Section{Title: "dev-dependencies", Deps: tableDeps(file.DevDependencies)},
		Section{Title: "build-dependencies", Deps: tableDeps(file.BuildDependencies)},
	), nil
}

type nargoListing struct {
	Dependencies any `toml:"dependencies"`
}

func listNargoDeps(data []byte) ([]Section, error) {
	var file nargoListing
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	return collectSections(
		Section{Title: "dependencies", Deps: tableDeps(file.Dependencies)},
	), nil
}

// collectSections drops empty sections so renderers never print bare
// headings.
func collectSections(sections ...Section) []Section {
	var out []Section
	for _, s := range sections {
		if len(s.Deps) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// tableDeps flattens a dependency table into name/requirement pairs,
// sorted by name.
func tableDeps(v any) []Dependency {
	table := tableField(v)
	deps := make([]Dependency, 0, len(table))
	for name, value := range table {
		deps = append(deps, Dependency{Name: name, Requirement: requirementString(value)})
	}
	sort.Slice(deps, func(i, j int) bool { return deps[i].Name < deps[j].Name })
	return deps
}

// requirementString renders one dependency value. npm values are version
// strings; cargo and nargo values may be tables carrying version, git, or
// path fields.
func requirementString(v any) string {
	if s := stringField(v); s != "" {
		return s
	}
	table := tableField(v)
	if s := stringField(table["version"]); s != "" {
		return s
	}
	if git := stringField(table["git"]); git != "" {
		if tag := stringField(table["tag"]); tag != "" {
			return fmt.Sprintf("git %s (tag %s)", git, tag)
		}
		return "git " + git
	}
	if p := stringField(table["path"]); p != "" {
		return "path " + p
	}
	return "*"
}
