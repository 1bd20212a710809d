package manifest

import (
	"reflect"
	"testing"

	"github.com/zk-kit/zk-kit-mcp/pkg/catalog"
)

func TestParsePackageJSON(t *testing.T) {
	content := `{
  "name": "@zk-kit/lean-imt",
  "version": "1.2.0",
  "description": "Lean incremental Merkle tree",
  "dependencies": {
    "@zk-kit/utils": "^1.0.0",
    "poseidon-lite": "^0.2.0"
  },
  "devDependencies": {
    "@zk-kit/rollup": "^2.0.0"
  }
}`

	info, err := ParsePackageJSON([]byte(content))
	if err != nil {
		t.Fatalf("ParsePackageJSON failed: %v", err)
	}

	if info.Description != "Lean incremental Merkle tree" {
		t.Errorf("Description = %q, want %q", info.Description, "Lean incremental Merkle tree")
	}
	if info.Version != "1.2.0" {
		t.Errorf("Version = %q, want %q", info.Version, "1.2.0")
	}
	if want := []string{"utils"}; !reflect.DeepEqual(info.Dependencies, want) {
		t.Errorf("Dependencies = %v, want %v", info.Dependencies, want)
	}
}

func TestParsePackageJSONSuffixes(t *testing.T) {
	content := `{
  "dependencies": {
    "@zk-kit/poseidon-cipher.circom": "^1.0.0",
    "@zk-kit/lean-imt.sol": "^2.0.0",
    "@zk-kit/utils": "^1.0.0"
  }
}`

	info, err := ParsePackageJSON([]byte(content))
	if err != nil {
		t.Fatalf("ParsePackageJSON failed: %v", err)
	}

	want := []string{"lean-imt", "poseidon-cipher", "utils"}
	if !reflect.DeepEqual(info.Dependencies, want) {
		t.Errorf("Dependencies = %v, want %v", info.Dependencies, want)
	}
}

func TestParsePackageJSONMalformedFields(t *testing.T) {
	content := `{
  "description": 42,
  "version": {"major": 1},
  "dependencies": ["not", "a", "table"]
}`

	info, err := ParsePackageJSON([]byte(content))
	if err != nil {
		t.Fatalf("ParsePackageJSON failed: %v", err)
	}

	if info.Description != "" {
		t.Errorf("Description = %q for malformed field, want empty", info.Description)
	}
	if info.Version != "" {
		t.Errorf("Version = %q for malformed field, want empty", info.Version)
	}
	if len(info.Dependencies) != 0 {
		t.Errorf("Dependencies = %v for malformed field, want none", info.Dependencies)
	}
}

func TestParsePackageJSONInvalid(t *testing.T) {
	if _, err := ParsePackageJSON([]byte("{not json")); err == nil {
		t.Error("ParsePackageJSON() error = nil for invalid document, want error")
	}
}

func TestParseCargoTOML(t *testing.T) {
	content := `[package]
name = "zk-kit-lean-imt"
version = "0.1.0"
description = "Lean IMT for Rust"

[dependencies]
zk-kit-poseidon = "0.1"
serde = { version = "1.0", features = ["derive"] }
zk-kit-smt = { path = "../smt" }
`

	info, err := ParseCargoTOML([]byte(content))
	if err != nil {
		t.Fatalf("ParseCargoTOML failed: %v", err)
	}

	if info.Description != "Lean IMT for Rust" {
		t.Errorf("Description = %q, want %q", info.Description, "Lean IMT for Rust")
	}
	if info.Version != "0.1.0" {
		t.Errorf("Version = %q, want %q", info.Version, "0.1.0")
	}
	if want := []string{"poseidon", "smt"}; !reflect.DeepEqual(info.Dependencies, want) {
		t.Errorf("Dependencies = %v, want %v", info.Dependencies, want)
	}
}

func TestParseCargoTOMLMissingPackage(t *testing.T) {
	info, err := ParseCargoTOML([]byte(`[dependencies]` + "\n" + `zk-kit-poseidon = "0.1"` + "\n"))
	if err != nil {
		t.Fatalf("ParseCargoTOML failed: %v", err)
	}
	if info.Description != "" || info.Version != "" {
		t.Errorf("Info = %+v without [package] table, want empty description and version", info)
	}
	if want := []string{"poseidon"}; !reflect.DeepEqual(info.Dependencies, want) {
		t.Errorf("Dependencies = %v, want %v", info.Dependencies, want)
	}
}

func TestParseCargoTOMLInvalid(t *testing.T) {
	if _, err := ParseCargoTOML([]byte("[package\nbroken")); err == nil {
		t.Error("ParseCargoTOML() error = nil for invalid document, want error")
	}
}

func TestParseNargoTOML(t *testing.T) {
	content := `[package]
name = "lean_imt"
type = "lib"

[dependencies]
poseidon_lite = { git = "https://github.com/privacy-scaling-explorations/zk-kit.noir", tag = "v0.1.0", directory = "packages/poseidon-lite" }
ecrecover = { git = "https://github.com/colinnielsen/ecrecover-noir", tag = "v0.8.0" }
local_helper = { path = "../helper" }
`

	info, err := ParseNargoTOML([]byte(content))
	if err != nil {
		t.Fatalf("ParseNargoTOML failed: %v", err)
	}

	if want := []string{"poseidon-lite"}; !reflect.DeepEqual(info.Dependencies, want) {
		t.Errorf("Dependencies = %v, want %v", info.Dependencies, want)
	}
}

func TestParseNargoTOMLNoVersion(t *testing.T) {
	content := `[package]
name = "lean_imt"
type = "lib"
`

	info, err := ParseNargoTOML([]byte(content))
	if err != nil {
		t.Fatalf("ParseNargoTOML failed: %v", err)
	}
	if info.Version != "" {
		t.Errorf("Version = %q, want empty", info.Version)
	}
}

func TestParseRoutesByLanguage(t *testing.T) {
	tests := []struct {
		name    string
		lang    catalog.Language
		data    string
		wantVer string
	}{
		{"typescript", catalog.LangTypeScript, `{"version": "1.0.0"}`, "1.0.0"},
		{"circom", catalog.LangCircom, `{"version": "2.0.0"}`, "2.0.0"},
		{"solidity", catalog.LangSolidity, `{"version": "3.0.0"}`, "3.0.0"},
		{"rust", catalog.LangRust, "[package]\nversion = \"0.4.0\"\n", "0.4.0"},
		{"noir", catalog.LangNoir, "[package]\nversion = \"0.5.0\"\n", "0.5.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Parse(tt.lang, []byte(tt.data))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if info.Version != tt.wantVer {
				t.Errorf("Version = %q, want %q", info.Version, tt.wantVer)
			}
		})
	}

	if _, err := Parse(catalog.Language("cobol"), []byte("{}")); err == nil {
		t.Error("Parse() error = nil for unknown language, want error")
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		lang catalog.Language
		want string
	}{
		{catalog.LangTypeScript, "package.json"},
		{catalog.LangCircom, "package.json"},
		{catalog.LangSolidity, "package.json"},
		{catalog.LangRust, "Cargo.toml"},
		{catalog.LangNoir, "Nargo.toml"},
	}

	for _, tt := range tests {
		t.Run(string(tt.lang), func(t *testing.T) {
			got, ok := Filename(tt.lang)
			if !ok {
				t.Fatalf("Filename(%q) ok = false, want true", tt.lang)
			}
			if got != tt.want {
				t.Errorf("Filename(%q) = %q, want %q", tt.lang, got, tt.want)
			}
		})
	}

	if _, ok := Filename(catalog.Language("cobol")); ok {
		t.Error("Filename() ok = true for unknown language, want false")
	}
}
