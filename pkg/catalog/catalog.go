package catalog

import (
	"sort"
	"strings"
)

// Language identifies the implementation language of a package. Each
// language maps to exactly one source repository.
type Language string

const (
	LangTypeScript Language = "typescript"
	LangCircom     Language = "circom"
	LangSolidity   Language = "solidity"
	LangNoir       Language = "noir"
	LangRust       Language = "rust"
)

// Languages lists all supported languages in display precedence order.
// Catalog sorting, coverage columns and language annotations all follow
// this order.
var Languages = []Language{LangTypeScript, LangCircom, LangSolidity, LangNoir, LangRust}

// ParseLanguage normalizes a user-supplied language string.
func ParseLanguage(s string) (Language, bool) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Languages {
		if l == known {
			return l, true
		}
	}
	return "", false
}

// Category is a topic bucket inferred from a package's directory name.
type Category string

const (
	CategoryMerkleTrees   Category = "merkle-trees"
	CategoryCryptography  Category = "cryptography"
	CategoryIdentity      Category = "identity"
	CategoryAccessControl Category = "access-control"
	CategoryMath          Category = "math"
	CategoryOther         Category = "other"
)

// Categories lists all categories, specific buckets first.
var Categories = []Category{
	CategoryMerkleTrees,
	CategoryCryptography,
	CategoryIdentity,
	CategoryAccessControl,
	CategoryMath,
	CategoryOther,
}

// ParseCategory normalizes a user-supplied category string.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// Package is one normalized, language-specific implementation of a library
// concept. Records are immutable once constructed by discovery.
type Package struct {
	Name              string   `json:"name"`              // Canonical published identifier
	DirName           string   `json:"dirName"`           // Subdirectory name in the source repo
	Language          Language `json:"language"`          // Implementation language
	Category          Category `json:"category"`          // Topic bucket inferred from DirName
	Repo              string   `json:"repo"`              // URL of the package's source tree
	Description       string   `json:"description"`       // Manifest description (may be empty)
	InstallCommand    string   `json:"installCommand"`    // Language-specific install directive
	CrossLanguageID   string   `json:"crossLanguageId"`   // Concept key linking sibling languages
	Version           string   `json:"version,omitempty"` // Manifest version (empty when absent)
	ZKKitDependencies []string `json:"zkKitDependencies"` // Intra-ecosystem deps, by concept id
}

// RepoConfig maps a language to its source repository. Read-only after
// process start; every on-demand fetch routes through it.
type RepoConfig struct {
	Language     Language `json:"language"`
	Slug         string   `json:"slug"`         // GitHub owner/name
	PackagesPath string   `json:"packagesPath"` // Directory holding package subdirectories
	Branch       string   `json:"branch"`       // Default branch
}

// Repos holds the source repository for each language, in precedence order.
var Repos = []RepoConfig{
	{Language: LangTypeScript, Slug: "privacy-scaling-explorations/zk-kit", PackagesPath: "packages", Branch: "main"},
	{Language: LangCircom, Slug: "privacy-scaling-explorations/zk-kit.circom", PackagesPath: "packages", Branch: "main"},
	{Language: LangSolidity, Slug: "privacy-scaling-explorations/zk-kit.solidity", PackagesPath: "packages", Branch: "main"},
	{Language: LangNoir, Slug: "privacy-scaling-explorations/zk-kit.noir", PackagesPath: "packages", Branch: "main"},
	{Language: LangRust, Slug: "privacy-scaling-explorations/zk-kit.rust", PackagesPath: "crates", Branch: "main"},
}

// RepoFor returns the repository configuration for a language.
func RepoFor(lang Language) (RepoConfig, bool) {
	for _, cfg := range Repos {
		if cfg.Language == lang {
			return cfg, true
		}
	}
	return RepoConfig{}, false
}

// NewPackage assembles the normalized record for one discovered package
// directory using the naming and categorization rules plus its manifest
// fields.
func NewPackage(cfg RepoConfig, dirName, description, version string, deps []string) Package {
	name := DeriveName(dirName, cfg.Language)
	if deps == nil {
		deps = []string{}
	}
	return Package{
		Name:              name,
		DirName:           dirName,
		Language:          cfg.Language,
		Category:          InferCategory(dirName),
		Repo:              RepoURL(cfg, dirName),
		Description:       description,
		InstallCommand:    DeriveInstallCommand(name, dirName, cfg.Language, cfg),
		CrossLanguageID:   DeriveCrossLanguageID(dirName),
		Version:           version,
		ZKKitDependencies: deps,
	}
}

// languageRank orders languages for sorting; unknown languages sort last.
func languageRank(l Language) int {
	for i, known := range Languages {
		if l == known {
			return i
		}
	}
	return len(Languages)
}

// SortPackages orders packages by language precedence, then by name within
// a language. Discovery applies this so the catalog order is deterministic
// regardless of network completion timing.
func SortPackages(pkgs []Package) {
	sort.SliceStable(pkgs, func(i, j int) bool {
		ri, rj := languageRank(pkgs[i].Language), languageRank(pkgs[j].Language)
		if ri != rj {
			return ri < rj
		}
		return pkgs[i].Name < pkgs[j].Name
	})
}

// sortLanguages orders a language set by precedence for display.
func sortLanguages(langs []Language) {
	sort.Slice(langs, func(i, j int) bool {
		return languageRank(langs[i]) < languageRank(langs[j])
	})
}

// joinLanguages renders a language set as a comma-separated list.
func joinLanguages(langs []Language) string {
	parts := make([]string, len(langs))
	for i, l := range langs {
		parts[i] = string(l)
	}
	return strings.Join(parts, ", ")
}
