package catalog

import (
	"strings"
	"testing"
)

func TestDeriveName(t *testing.T) {
	tests := []struct {
		name     string
		dirName  string
		lang     Language
		expected string
	}{
		{"typescript scoped", "lean-imt", LangTypeScript, "@zk-kit/lean-imt"},
		{"circom suffix", "lean-imt", LangCircom, "@zk-kit/lean-imt.circom"},
		{"solidity suffix", "lean-imt", LangSolidity, "@zk-kit/lean-imt.sol"},
		{"noir underscores", "lean-imt", LangNoir, "lean_imt"},
		{"noir multiple hyphens", "binary-merkle-root", LangNoir, "binary_merkle_root"},
		{"rust prefix", "lean-imt", LangRust, "zk-kit-lean-imt"},
		{"single word", "excubiae", LangTypeScript, "@zk-kit/excubiae"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveName(tt.dirName, tt.lang); got != tt.expected {
				t.Errorf("DeriveName(%q, %q) = %q, want %q", tt.dirName, tt.lang, got, tt.expected)
			}
		})
	}
}

func TestDeriveNameNonEmpty(t *testing.T) {
	// Derivation must be total: every language yields a non-empty name for
	// any directory name.
	for _, lang := range Languages {
		if got := DeriveName("some-package", lang); got == "" {
			t.Errorf("DeriveName(%q, %q) = empty string", "some-package", lang)
		}
	}
}

func TestDeriveNameOverride(t *testing.T) {
	overrides := map[Language]map[string]string{
		LangTypeScript: {"lean-imt": "@zk-kit/imt.lean"},
	}

	if got := deriveName("lean-imt", LangTypeScript, overrides); got != "@zk-kit/imt.lean" {
		t.Errorf("deriveName with override = %q, want %q", got, "@zk-kit/imt.lean")
	}

	// Overrides are per language and per directory; everything else falls
	// through to the template.
	if got := deriveName("lean-imt", LangRust, overrides); got != "zk-kit-lean-imt" {
		t.Errorf("deriveName without override = %q, want %q", got, "zk-kit-lean-imt")
	}
	if got := deriveName("smt", LangTypeScript, overrides); got != "@zk-kit/smt" {
		t.Errorf("deriveName without override = %q, want %q", got, "@zk-kit/smt")
	}
}

func TestDeriveInstallCommand(t *testing.T) {
	tests := []struct {
		name     string
		lang     Language
		expected string
	}{
		{"typescript", LangTypeScript, "npm install @zk-kit/lean-imt"},
		{"circom", LangCircom, "npm install @zk-kit/lean-imt.circom"},
		{"solidity", LangSolidity, "npm install @zk-kit/lean-imt.sol"},
		{"rust", LangRust, "cargo add zk-kit-lean-imt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, ok := RepoFor(tt.lang)
			if !ok {
				t.Fatalf("RepoFor(%q) not found", tt.lang)
			}
			name := DeriveName("lean-imt", tt.lang)
			if got := DeriveInstallCommand(name, "lean-imt", tt.lang, cfg); got != tt.expected {
				t.Errorf("DeriveInstallCommand = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDeriveInstallCommandNoir(t *testing.T) {
	cfg, ok := RepoFor(LangNoir)
	if !ok {
		t.Fatal("RepoFor(noir) not found")
	}
	name := DeriveName("lean-imt", LangNoir)
	got := DeriveInstallCommand(name, "lean-imt", LangNoir, cfg)

	expected := `lean_imt = { git = "https://github.com/privacy-scaling-explorations/zk-kit.noir", tag = "main", directory = "packages/lean-imt" }`
	if got != expected {
		t.Errorf("DeriveInstallCommand(noir) = %q, want %q", got, expected)
	}
}

func TestInferCategory(t *testing.T) {
	tests := []struct {
		dirName  string
		expected Category
	}{
		{"lean-imt", CategoryMerkleTrees},
		{"imt", CategoryMerkleTrees},
		{"smt", CategoryMerkleTrees},
		{"pmt", CategoryMerkleTrees},
		{"lazytower", CategoryMerkleTrees},
		{"binary-merkle-root", CategoryMerkleTrees},
		{"poseidon-lite", CategoryCryptography},
		{"eddsa-poseidon", CategoryCryptography},
		{"ecdh", CategoryCryptography},
		{"baby-jubjub", CategoryCryptography},
		{"poseidon-cipher", CategoryCryptography},
		{"excubiae", CategoryAccessControl},
		{"gatekeeper-core", CategoryAccessControl},
		{"identity", CategoryIdentity},
		{"semaphore-proof", CategoryIdentity},
		{"rollup-math", CategoryMath},
		{"bigint-utils", CategoryMath},
		{"utils", CategoryOther},
		{"logical-expressions", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.dirName, func(t *testing.T) {
			if got := InferCategory(tt.dirName); got != tt.expected {
				t.Errorf("InferCategory(%q) = %q, want %q", tt.dirName, got, tt.expected)
			}
		})
	}
}

func TestInferCategoryWordBoundary(t *testing.T) {
	// Keywords only match between hyphens or string boundaries. A keyword
	// buried inside a larger token must not match.
	tests := []struct {
		dirName  string
		expected Category
	}{
		{"commitment", CategoryOther},  // contains "imt"
		{"limitation", CategoryOther},  // contains "imt"
		{"blacksmith", CategoryOther},  // contains "smt"
		{"decipherer", CategoryOther},  // contains "cipher"
		{"imt-commitment", CategoryMerkleTrees},
		{"proof-smt", CategoryMerkleTrees},
	}

	for _, tt := range tests {
		t.Run(tt.dirName, func(t *testing.T) {
			if got := InferCategory(tt.dirName); got != tt.expected {
				t.Errorf("InferCategory(%q) = %q, want %q", tt.dirName, got, tt.expected)
			}
		})
	}
}

func TestInferCategoryFirstMatchWins(t *testing.T) {
	// "poseidon-smt" matches both merkle-trees (smt) and cryptography
	// (poseidon); the earlier rule must win.
	if got := InferCategory("poseidon-smt"); got != CategoryMerkleTrees {
		t.Errorf("InferCategory(%q) = %q, want %q", "poseidon-smt", got, CategoryMerkleTrees)
	}
	// Same the other way around.
	if got := InferCategory("smt-poseidon"); got != CategoryMerkleTrees {
		t.Errorf("InferCategory(%q) = %q, want %q", "smt-poseidon", got, CategoryMerkleTrees)
	}
}

func TestInferCategoryCaseInsensitive(t *testing.T) {
	if got := InferCategory("Lean-IMT"); got != CategoryMerkleTrees {
		t.Errorf("InferCategory(%q) = %q, want %q", "Lean-IMT", got, CategoryMerkleTrees)
	}
}

func TestDeriveCrossLanguageID(t *testing.T) {
	if got := DeriveCrossLanguageID("lean-imt"); got != "lean-imt" {
		t.Errorf("DeriveCrossLanguageID(%q) = %q, want identity", "lean-imt", got)
	}
}

func TestRepoURL(t *testing.T) {
	cfg, _ := RepoFor(LangRust)
	got := RepoURL(cfg, "lean-imt")
	expected := "https://github.com/privacy-scaling-explorations/zk-kit.rust/tree/main/crates/lean-imt"
	if got != expected {
		t.Errorf("RepoURL = %q, want %q", got, expected)
	}
}

func TestNewPackage(t *testing.T) {
	cfg, _ := RepoFor(LangTypeScript)
	p := NewPackage(cfg, "lean-imt", "Lean IMT", "1.0.0", nil)

	if p.Name != "@zk-kit/lean-imt" {
		t.Errorf("Name = %q, want %q", p.Name, "@zk-kit/lean-imt")
	}
	if p.Category != CategoryMerkleTrees {
		t.Errorf("Category = %q, want %q", p.Category, CategoryMerkleTrees)
	}
	if p.CrossLanguageID != "lean-imt" {
		t.Errorf("CrossLanguageID = %q, want %q", p.CrossLanguageID, "lean-imt")
	}
	if p.Version != "1.0.0" {
		t.Errorf("Version = %q, want %q", p.Version, "1.0.0")
	}
	if !strings.Contains(p.Repo, "privacy-scaling-explorations/zk-kit") {
		t.Errorf("Repo = %q, want zk-kit tree URL", p.Repo)
	}
	if p.ZKKitDependencies == nil {
		t.Error("ZKKitDependencies = nil, want empty slice")
	}
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		input    string
		expected Language
		ok       bool
	}{
		{"typescript", LangTypeScript, true},
		{"TypeScript", LangTypeScript, true},
		{" rust ", LangRust, true},
		{"fortran", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseLanguage(tt.input)
			if got != tt.expected || ok != tt.ok {
				t.Errorf("ParseLanguage(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	if got, ok := ParseCategory("Merkle-Trees"); !ok || got != CategoryMerkleTrees {
		t.Errorf("ParseCategory(%q) = (%q, %v), want (%q, true)", "Merkle-Trees", got, ok, CategoryMerkleTrees)
	}
	if _, ok := ParseCategory("graphs"); ok {
		t.Error("ParseCategory(\"graphs\") ok = true, want false")
	}
}
