package catalog

import (
	"strings"
	"testing"
)

// testPackage builds a realistic fixture through the same derivations
// discovery uses.
func testPackage(t *testing.T, lang Language, dirName, description, version string, deps ...string) Package {
	t.Helper()
	cfg, ok := RepoFor(lang)
	if !ok {
		t.Fatalf("no repo config for language %q", lang)
	}
	return NewPackage(cfg, dirName, description, version, deps)
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	r.Load([]Package{
		testPackage(t, LangTypeScript, "lean-imt", "Lean incremental Merkle tree", "1.0.0", "poseidon-lite"),
		testPackage(t, LangTypeScript, "poseidon-lite", "Lightweight Poseidon hash", "0.3.0"),
		testPackage(t, LangTypeScript, "eddsa-poseidon", "EdDSA signatures over Poseidon", "1.1.0"),
		testPackage(t, LangSolidity, "lean-imt", "Lean IMT for Solidity", "2.0.0", "poseidon-lite"),
		testPackage(t, LangNoir, "lean-imt", "Lean IMT for Noir", ""),
		testPackage(t, LangRust, "lean-imt", "Lean IMT for Rust", "0.1.0"),
	})
	return r
}

func TestRegistryLoadReplacesWholesale(t *testing.T) {
	r := testRegistry(t)
	if r.Count() != 6 {
		t.Fatalf("Count() = %d, want 6", r.Count())
	}

	r.Load([]Package{testPackage(t, LangRust, "smt", "Sparse Merkle tree", "0.1.0")})
	if r.Count() != 1 {
		t.Errorf("Count() after reload = %d, want 1", r.Count())
	}
	if _, ok := r.GetByName("@zk-kit/lean-imt"); ok {
		t.Error("GetByName found a package from the replaced catalog")
	}
}

func TestRegistryEmpty(t *testing.T) {
	r := NewRegistry()
	if r.Count() != 0 {
		t.Errorf("Count() = %d, want 0", r.Count())
	}
	if got := r.All(); len(got) != 0 {
		t.Errorf("All() = %d packages, want 0", len(got))
	}
	if _, ok := r.GetByName("anything"); ok {
		t.Error("GetByName on empty registry ok = true, want false")
	}
	if got := r.Search("query", "", ""); len(got) != 0 {
		t.Errorf("Search on empty registry = %d packages, want 0", len(got))
	}
}

func TestGetByName(t *testing.T) {
	r := testRegistry(t)

	tests := []struct {
		name    string
		query   string
		wantDir string
		wantLng Language
	}{
		{"exact name", "@zk-kit/lean-imt", "lean-imt", LangTypeScript},
		{"exact rust name", "zk-kit-lean-imt", "lean-imt", LangRust},
		{"exact noir name", "lean_imt", "lean-imt", LangNoir},
		{"scope stripped", "lean-imt.sol", "lean-imt", LangSolidity},
		{"dir name", "poseidon-lite", "poseidon-lite", LangTypeScript},
		{"underscored crate", "zk_kit_lean_imt", "lean-imt", LangTypeScript},
		{"uppercase", "@ZK-KIT/LEAN-IMT", "lean-imt", LangTypeScript},
		{"surrounding space", "  @zk-kit/lean-imt  ", "lean-imt", LangTypeScript},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := r.GetByName(tt.query)
			if !ok {
				t.Fatalf("GetByName(%q) not found", tt.query)
			}
			if p.DirName != tt.wantDir || p.Language != tt.wantLng {
				t.Errorf("GetByName(%q) = %s/%s, want %s/%s", tt.query, p.Language, p.DirName, tt.wantLng, tt.wantDir)
			}
		})
	}
}

func TestGetByNameResolutionOrder(t *testing.T) {
	// "lean-imt" is a directory name for four packages and never a full
	// published name; the dir-name pass returns the first in catalog
	// order (typescript).
	r := testRegistry(t)
	p, ok := r.GetByName("lean-imt")
	if !ok {
		t.Fatal("GetByName(\"lean-imt\") not found")
	}
	if p.Language != LangTypeScript {
		t.Errorf("Language = %q, want %q", p.Language, LangTypeScript)
	}

	// The noir published name "lean_imt" is an exact name match and must
	// win over the normalized dir-name match that the same query would
	// also produce.
	r2 := NewRegistry()
	r2.Load([]Package{
		testPackage(t, LangTypeScript, "lean-imt", "ts", "1.0.0"),
		testPackage(t, LangNoir, "lean-imt", "noir", ""),
	})
	p, ok = r2.GetByName("lean_imt")
	if !ok {
		t.Fatal("GetByName(\"lean_imt\") not found")
	}
	if p.Language != LangNoir {
		t.Errorf("Language = %q, want %q (exact name match outranks normalization)", p.Language, LangNoir)
	}
}

func TestGetByNameNormalizedLookup(t *testing.T) {
	// Without a noir sibling whose literal name is "lean_imt", the
	// underscored spellings resolve through dir-name normalization.
	r := NewRegistry()
	r.Load([]Package{
		testPackage(t, LangTypeScript, "lean-imt", "Lean IMT", "1.0.0"),
	})

	for _, query := range []string{"lean_imt", "zk_kit_lean_imt", "zk-kit-lean-imt"} {
		p, ok := r.GetByName(query)
		if !ok {
			t.Errorf("GetByName(%q) not found", query)
			continue
		}
		if p.DirName != "lean-imt" {
			t.Errorf("GetByName(%q).DirName = %q, want %q", query, p.DirName, "lean-imt")
		}
	}
}

func TestGetByNameSymmetry(t *testing.T) {
	r := testRegistry(t)
	for _, p := range r.All() {
		byName, ok := r.GetByName(p.Name)
		if !ok {
			t.Errorf("GetByName(%q) not found", p.Name)
			continue
		}
		if byName.Language != p.Language && byName.DirName != p.DirName {
			t.Errorf("GetByName(%q) resolved to %s/%s", p.Name, byName.Language, byName.DirName)
		}
		if _, ok := r.GetByName(strings.ToUpper(p.Name)); !ok {
			t.Errorf("GetByName(%q) not found (case-insensitivity)", strings.ToUpper(p.Name))
		}
		if _, ok := r.GetByName(p.DirName); !ok {
			t.Errorf("GetByName(%q) not found (dir name)", p.DirName)
		}
	}
}

func TestGetByNameNotFound(t *testing.T) {
	r := testRegistry(t)
	if _, ok := r.GetByName("does-not-exist"); ok {
		t.Error("GetByName(\"does-not-exist\") ok = true, want false")
	}
	if _, ok := r.GetByName(""); ok {
		t.Error("GetByName(\"\") ok = true, want false")
	}
}

func TestSuggest(t *testing.T) {
	r := testRegistry(t)

	tests := []struct {
		name     string
		query    string
		limit    int
		expected int
	}{
		{"single term", "lean", 0, 4},
		{"limit respected", "lean", 2, 2},
		{"conjunctive terms", "lean imt", 0, 4},
		{"term matching nothing", "lean zzz", 0, 0},
		{"dir name field", "poseidon", 0, 2},
		{"empty query", "", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Suggest(tt.query, tt.limit)
			if len(got) != tt.expected {
				t.Errorf("Suggest(%q, %d) = %d packages, want %d", tt.query, tt.limit, len(got), tt.expected)
			}
		})
	}
}

func TestSuggestKeepsCatalogOrder(t *testing.T) {
	r := testRegistry(t)
	got := r.Suggest("lean", 0)
	if len(got) != 4 {
		t.Fatalf("Suggest = %d packages, want 4", len(got))
	}
	order := []Language{LangTypeScript, LangSolidity, LangNoir, LangRust}
	for i, lang := range order {
		if got[i].Language != lang {
			t.Errorf("Suggest[%d].Language = %q, want %q", i, got[i].Language, lang)
		}
	}
}

func TestSearchFilters(t *testing.T) {
	r := testRegistry(t)

	tests := []struct {
		name     string
		query    string
		language string
		category string
		expected int
	}{
		{"no filters", "", "", "", 6},
		{"language filter", "", "typescript", "", 3},
		{"category filter", "", "", "merkle-trees", 4},
		{"both filters", "", "typescript", "merkle-trees", 1},
		{"filters plus query", "lean", "solidity", "", 1},
		{"category excludes", "", "typescript", "identity", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Search(tt.query, tt.language, tt.category)
			if len(got) != tt.expected {
				t.Errorf("Search(%q, %q, %q) = %d packages, want %d", tt.query, tt.language, tt.category, len(got), tt.expected)
			}
		})
	}
}

func TestSearchConjunctiveTerms(t *testing.T) {
	r := testRegistry(t)
	if got := r.Search("lean nonexistent-xyz", "", ""); len(got) != 0 {
		t.Errorf("Search(\"lean nonexistent-xyz\") = %d packages, want 0", len(got))
	}
}

func TestSearchScoring(t *testing.T) {
	r := NewRegistry()
	r.Load([]Package{
		// "poseidon" only in the description: 1 point.
		{Name: "@zk-kit/utils", DirName: "utils", Language: LangTypeScript, Description: "Helpers for poseidon circuits"},
		// "poseidon" in name, dir name and description: 3+2+1 = 6 points.
		{Name: "@zk-kit/poseidon-lite", DirName: "poseidon-lite", Language: LangTypeScript, Description: "Poseidon hash"},
		// "poseidon" in name and dir name: 3+2 = 5 points.
		{Name: "@zk-kit/poseidon-cipher", DirName: "poseidon-cipher", Language: LangTypeScript, Description: "Encryption scheme"},
	})

	got := r.Search("poseidon", "", "")
	if len(got) != 3 {
		t.Fatalf("Search = %d packages, want 3", len(got))
	}
	if got[0].DirName != "poseidon-lite" {
		t.Errorf("Search[0] = %q, want poseidon-lite (highest score)", got[0].DirName)
	}
	if got[1].DirName != "poseidon-cipher" {
		t.Errorf("Search[1] = %q, want poseidon-cipher", got[1].DirName)
	}
	if got[2].DirName != "utils" {
		t.Errorf("Search[2] = %q, want utils (description-only match)", got[2].DirName)
	}
}

func TestSearchStableOrderForEqualScores(t *testing.T) {
	r := NewRegistry()
	r.Load([]Package{
		{Name: "@zk-kit/imt-alpha", DirName: "imt-alpha", Language: LangTypeScript},
		{Name: "@zk-kit/imt-beta", DirName: "imt-beta", Language: LangTypeScript},
		{Name: "@zk-kit/imt-gamma", DirName: "imt-gamma", Language: LangTypeScript},
	})

	// All three score identically for "imt"; relative order must equal
	// catalog insertion order.
	got := r.Search("imt", "", "")
	if len(got) != 3 {
		t.Fatalf("Search = %d packages, want 3", len(got))
	}
	expected := []string{"imt-alpha", "imt-beta", "imt-gamma"}
	for i, dir := range expected {
		if got[i].DirName != dir {
			t.Errorf("Search[%d] = %q, want %q", i, got[i].DirName, dir)
		}
	}
}

func TestSearchNoQueryKeepsCatalogOrder(t *testing.T) {
	r := testRegistry(t)
	got := r.Search("", "", "")
	all := r.All()
	if len(got) != len(all) {
		t.Fatalf("Search = %d packages, want %d", len(got), len(all))
	}
	for i := range all {
		if got[i].Name != all[i].Name || got[i].Language != all[i].Language {
			t.Errorf("Search[%d] = %s/%s, want %s/%s", i, got[i].Language, got[i].Name, all[i].Language, all[i].Name)
		}
	}
}

func TestSortPackages(t *testing.T) {
	pkgs := []Package{
		{Name: "zk-kit-smt", Language: LangRust},
		{Name: "@zk-kit/lean-imt", Language: LangTypeScript},
		{Name: "lean_imt", Language: LangNoir},
		{Name: "@zk-kit/eddsa-poseidon", Language: LangTypeScript},
		{Name: "mystery", Language: Language("cobol")},
	}
	SortPackages(pkgs)

	expected := []string{"@zk-kit/eddsa-poseidon", "@zk-kit/lean-imt", "lean_imt", "zk-kit-smt", "mystery"}
	for i, name := range expected {
		if pkgs[i].Name != name {
			t.Errorf("pkgs[%d].Name = %q, want %q", i, pkgs[i].Name, name)
		}
	}
}

func TestRepoForLanguage(t *testing.T) {
	r := NewRegistry()
	cfg, ok := r.RepoForLanguage(LangCircom)
	if !ok {
		t.Fatal("RepoForLanguage(circom) not found")
	}
	if cfg.Slug != "privacy-scaling-explorations/zk-kit.circom" {
		t.Errorf("Slug = %q, want zk-kit.circom", cfg.Slug)
	}
	if _, ok := r.RepoForLanguage(Language("cobol")); ok {
		t.Error("RepoForLanguage(cobol) ok = true, want false")
	}
}
