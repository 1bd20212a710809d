// Package manifest parses the per-package metadata files found in the
// zk-kit repositories: package.json for the npm-published languages,
// Cargo.toml for Rust, and Nargo.toml for Noir.
//
// Each dialect is decoded through loosely typed fields and coerced
// afterwards, so a missing field and a malformed field come out the same
// way: as an absent value. Only an unparseable document is an error.
// Dependency extraction keeps zk-kit-internal references only, mapped to
// cross-language ids.
package manifest

import (
	"fmt"

	"github.com/zk-kit/zk-kit-mcp/pkg/catalog"
)

// Info is the dialect-independent result of parsing a package manifest.
type Info struct {
	Description string
	Version     string

	// Dependencies holds the cross-language ids of zk-kit packages this
	// package depends on. Third-party dependencies are excluded.
	Dependencies []string
}

// Filename reports the manifest file name used by a language's repository.
func Filename(lang catalog.Language) (string, bool) {
	switch lang {
	case catalog.LangTypeScript, catalog.LangCircom, catalog.LangSolidity:
		return "package.json", true
	case catalog.LangRust:
		return "Cargo.toml", true
	case catalog.LangNoir:
		return "Nargo.toml", true
	default:
		return "", false
	}
}

// Parse decodes manifest data using the dialect of the given language.
func Parse(lang catalog.Language, data []byte) (Info, error) {
	switch lang {
	case catalog.LangTypeScript, catalog.LangCircom, catalog.LangSolidity:
		return ParsePackageJSON(data)
	case catalog.LangRust:
		return ParseCargoTOML(data)
	case catalog.LangNoir:
		return ParseNargoTOML(data)
	default:
		return Info{}, fmt.Errorf("no manifest dialect for language %q", lang)
	}
}

// stringField coerces a loosely typed manifest value to a string. Anything
// that is not a string counts as absent.
func stringField(v any) string {
	s, _ := v.(string)
	return s
}

// tableField coerces a loosely typed manifest value to a table. Anything
// that is not a table counts as absent.
func tableField(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}
