package catalog

import (
	"strings"
	"testing"
)

func TestCompare(t *testing.T) {
	r := testRegistry(t)

	out := r.Compare([]string{"@zk-kit/lean-imt", "zk-kit-lean-imt"})

	if !strings.Contains(out, "| Attribute | @zk-kit/lean-imt | zk-kit-lean-imt |") {
		t.Errorf("missing table header:\n%s", out)
	}
	for _, label := range []string{"Language", "Category", "Version", "Description", "Install", "Cross-Language ID", "Repository"} {
		if !strings.Contains(out, "| "+label+" |") {
			t.Errorf("missing attribute row %q:\n%s", label, out)
		}
	}
	if !strings.Contains(out, "typescript") || !strings.Contains(out, "rust") {
		t.Errorf("language values missing:\n%s", out)
	}
}

func TestCompareOtherLanguageVariants(t *testing.T) {
	r := NewRegistry()
	r.Load([]Package{
		testPackage(t, LangTypeScript, "lean-imt", "Lean IMT", "1.0.0"),
		testPackage(t, LangSolidity, "lean-imt", "Lean IMT for Solidity", "2.0.0"),
		testPackage(t, LangRust, "lean-imt", "Lean IMT for Rust", "0.1.0"),
	})

	out := r.Compare([]string{"@zk-kit/lean-imt"})

	idx := strings.Index(out, "## Other Language Variants")
	if idx < 0 {
		t.Fatalf("missing variants section:\n%s", out)
	}
	variants := out[idx:]
	if !strings.Contains(variants, "@zk-kit/lean-imt.sol (solidity)") {
		t.Errorf("solidity variant missing:\n%s", variants)
	}
	if !strings.Contains(variants, "zk-kit-lean-imt (rust)") {
		t.Errorf("rust variant missing:\n%s", variants)
	}
	// The compared package itself is not a variant.
	if strings.Contains(variants, "@zk-kit/lean-imt (typescript)") {
		t.Errorf("compared package listed as its own variant:\n%s", variants)
	}
}

func TestCompareMissingNames(t *testing.T) {
	r := testRegistry(t)

	out := r.Compare([]string{"@zk-kit/lean-imt", "bogus-package"})
	if !strings.Contains(out, "Not found: bogus-package") {
		t.Errorf("missing not-found list:\n%s", out)
	}

	out = r.Compare([]string{"bogus-one", "bogus-two"})
	if !strings.Contains(out, "No packages found matching: bogus-one, bogus-two") {
		t.Errorf("zero-found message = %q", out)
	}
	if strings.Contains(out, "| Attribute |") {
		t.Errorf("zero-found result rendered a table:\n%s", out)
	}
}

func TestEcosystemOverview(t *testing.T) {
	r := testRegistry(t)

	out := r.EcosystemOverview()

	if !strings.Contains(out, "6 package(s) across 4 language(s).") {
		t.Errorf("missing summary line:\n%s", out)
	}
	// Languages appear in first-seen catalog order.
	tsIdx := strings.Index(out, "## typescript")
	solIdx := strings.Index(out, "## solidity")
	if tsIdx < 0 || solIdx < 0 || tsIdx > solIdx {
		t.Errorf("language sections out of order:\n%s", out)
	}
	if !strings.Contains(out, "### merkle-trees") {
		t.Errorf("missing category section:\n%s", out)
	}
	if !strings.Contains(out, "@zk-kit/lean-imt (v1.0.0) - Lean incremental Merkle tree") {
		t.Errorf("missing package line with version:\n%s", out)
	}
	// The noir variant has no version; its line omits the parenthetical.
	if !strings.Contains(out, "- lean_imt - Lean IMT for Noir") {
		t.Errorf("missing versionless package line:\n%s", out)
	}
	if !strings.Contains(out, "## Cross-Language Implementations") {
		t.Errorf("missing cross-language section:\n%s", out)
	}
	if !strings.Contains(out, "lean-imt: typescript, solidity, noir, rust") {
		t.Errorf("missing cross-language entry:\n%s", out)
	}
}

func TestEcosystemOverviewEmptyRegistry(t *testing.T) {
	r := NewRegistry()
	if got := r.EcosystemOverview(); got != NoPackagesMessage {
		t.Errorf("EcosystemOverview() = %q, want %q", got, NoPackagesMessage)
	}
}

func TestCrossLanguageCoverage(t *testing.T) {
	r := NewRegistry()
	r.Load([]Package{
		testPackage(t, LangTypeScript, "lean-imt", "Lean IMT", "1.0.0"),
		testPackage(t, LangRust, "lean-imt", "Lean IMT for Rust", "0.1.0"),
		testPackage(t, LangTypeScript, "poseidon-lite", "Poseidon hash", "0.3.0"),
	})

	out := r.CrossLanguageCoverage()

	// 2 concepts x 2 languages, 3 slots filled.
	if !strings.Contains(out, "Coverage: 75.0% (3 of 4 slots filled)") {
		t.Errorf("missing coverage line:\n%s", out)
	}
	if !strings.Contains(out, "| Concept | typescript | rust |") {
		t.Errorf("missing matrix header:\n%s", out)
	}
	if !strings.Contains(out, "| lean-imt | x | x |") {
		t.Errorf("missing full row:\n%s", out)
	}
	if !strings.Contains(out, "| poseidon-lite | x | - |") {
		t.Errorf("missing gap row:\n%s", out)
	}
	if !strings.Contains(out, "- lean-imt: typescript, rust") {
		t.Errorf("missing multi-language entry:\n%s", out)
	}
	if !strings.Contains(out, "- poseidon-lite: typescript only") {
		t.Errorf("missing gap entry:\n%s", out)
	}
}

func TestCrossLanguageCoverageEmptyRegistrySentinel(t *testing.T) {
	r := NewRegistry()
	got := r.CrossLanguageCoverage()
	if got != NoPackagesMessage {
		t.Errorf("CrossLanguageCoverage() = %q, want exactly %q", got, NoPackagesMessage)
	}
	if strings.Contains(got, "NaN") {
		t.Errorf("coverage output contains NaN: %q", got)
	}
}

func TestOverviewLine(t *testing.T) {
	tests := []struct {
		name     string
		pkg      Package
		expected string
	}{
		{
			name:     "version and description",
			pkg:      Package{Name: "@zk-kit/smt", Version: "1.2.0", Description: "Sparse Merkle tree"},
			expected: "@zk-kit/smt (v1.2.0) - Sparse Merkle tree",
		},
		{
			name:     "no version",
			pkg:      Package{Name: "@zk-kit/smt", Description: "Sparse Merkle tree"},
			expected: "@zk-kit/smt - Sparse Merkle tree",
		},
		{
			name:     "no description",
			pkg:      Package{Name: "@zk-kit/smt", Version: "1.2.0"},
			expected: "@zk-kit/smt (v1.2.0)",
		},
		{
			name:     "bare name",
			pkg:      Package{Name: "@zk-kit/smt"},
			expected: "@zk-kit/smt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overviewLine(tt.pkg); got != tt.expected {
				t.Errorf("overviewLine() = %q, want %q", got, tt.expected)
			}
		})
	}
}
