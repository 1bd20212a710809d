package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// npmScope is the npm organization scope shared by the typescript,
	// circom and solidity packages.
	npmScope = "@zk-kit"
	// cratePrefix is prepended to rust crate names.
	cratePrefix = "zk-kit"
)

// nameOverrides maps directory names to literal published names, checked
// before the per-language templates. Empty today; packages published under
// a name that breaks the convention get an entry here.
var nameOverrides = map[Language]map[string]string{}

// DeriveName returns the canonical published name for a package directory.
func DeriveName(dirName string, lang Language) string {
	return deriveName(dirName, lang, nameOverrides)
}

func deriveName(dirName string, lang Language, overrides map[Language]map[string]string) string {
	if name, ok := overrides[lang][dirName]; ok {
		return name
	}
	switch lang {
	case LangTypeScript:
		return npmScope + "/" + dirName
	case LangCircom:
		return npmScope + "/" + dirName + ".circom"
	case LangSolidity:
		return npmScope + "/" + dirName + ".sol"
	case LangNoir:
		return strings.ReplaceAll(dirName, "-", "_")
	case LangRust:
		return cratePrefix + "-" + dirName
	}
	return dirName
}

// DeriveInstallCommand produces the install directive for a package: an npm
// command for the npm-published languages, a Nargo.toml dependency snippet
// for noir, and a cargo command for rust.
func DeriveInstallCommand(name, dirName string, lang Language, cfg RepoConfig) string {
	switch lang {
	case LangTypeScript, LangCircom, LangSolidity:
		return "npm install " + name
	case LangNoir:
		return fmt.Sprintf("%s = { git = %q, tag = %q, directory = %q }",
			name, "https://github.com/"+cfg.Slug, cfg.Branch, cfg.PackagesPath+"/"+dirName)
	case LangRust:
		return "cargo add " + name
	}
	return ""
}

// DeriveCrossLanguageID returns the concept key linking implementations of
// the same library across languages. Identity today; kept as a named seam
// so future normalization does not touch call sites.
func DeriveCrossLanguageID(dirName string) string {
	return dirName
}

// RepoURL returns the URL of a package's source tree.
func RepoURL(cfg RepoConfig, dirName string) string {
	return fmt.Sprintf("https://github.com/%s/tree/%s/%s/%s", cfg.Slug, cfg.Branch, cfg.PackagesPath, dirName)
}

// categoryRules drive category inference. Evaluated in order, first match
// wins, so a name matching several rules resolves to the earliest one.
var categoryRules = []struct {
	category Category
	keywords []string
}{
	{CategoryMerkleTrees, []string{"imt", "smt", "pmt", "merkle", "lazytower"}},
	{CategoryCryptography, []string{"poseidon", "eddsa", "ecdh", "jubjub", "cipher"}},
	{CategoryAccessControl, []string{"excubiae", "gatekeeper", "policy", "access"}},
	{CategoryIdentity, []string{"identity", "semaphore", "did"}},
	{CategoryMath, []string{"math", "bigint", "arithmetic"}},
}

type compiledRule struct {
	category Category
	pattern  *regexp.Regexp
}

var compiledCategoryRules = compileCategoryRules()

// compileCategoryRules anchors every keyword on hyphen or string boundaries
// so that a keyword buried inside a larger token never matches ("commitment"
// must not trip the "imt" rule).
func compileCategoryRules() []compiledRule {
	rules := make([]compiledRule, 0, len(categoryRules))
	for _, r := range categoryRules {
		quoted := make([]string, len(r.keywords))
		for i, kw := range r.keywords {
			quoted[i] = regexp.QuoteMeta(kw)
		}
		pattern := regexp.MustCompile(`(^|-)(` + strings.Join(quoted, "|") + `)(-|$)`)
		rules = append(rules, compiledRule{r.category, pattern})
	}
	return rules
}

// InferCategory returns the topic bucket for a package directory name, or
// CategoryOther when no rule matches.
func InferCategory(dirName string) Category {
	return inferCategory(dirName, compiledCategoryRules)
}

func inferCategory(dirName string, rules []compiledRule) Category {
	name := strings.ToLower(dirName)
	for _, r := range rules {
		if r.pattern.MatchString(name) {
			return r.category
		}
	}
	return CategoryOther
}
