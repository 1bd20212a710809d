package cli

import (
	"testing"

	"github.com/zk-kit/zk-kit-mcp/pkg/catalog"
)

func TestVariantsOf(t *testing.T) {
	pkgs := testPackages(t)

	var tsLean catalog.Package
	for _, p := range pkgs {
		if p.Name == "@zk-kit/lean-imt" {
			tsLean = p
		}
	}
	if tsLean.Name == "" {
		t.Fatal("fixture is missing @zk-kit/lean-imt")
	}

	variants := variantsOf(tsLean, pkgs)
	if len(variants) != 1 {
		t.Fatalf("variantsOf() returned %d packages, want 1", len(variants))
	}
	if variants[0].Name != "zk-kit-lean-imt" {
		t.Errorf("variant = %q, want the rust implementation", variants[0].Name)
	}
	if variants[0].Language != catalog.LangRust {
		t.Errorf("variant language = %q, want rust", variants[0].Language)
	}
}

func TestVariantsOfNone(t *testing.T) {
	pkgs := testPackages(t)

	var utils catalog.Package
	for _, p := range pkgs {
		if p.Name == "@zk-kit/utils" {
			utils = p
		}
	}
	if utils.Name == "" {
		t.Fatal("fixture is missing @zk-kit/utils")
	}

	if variants := variantsOf(utils, pkgs); len(variants) != 0 {
		t.Errorf("variantsOf() returned %d packages, want none", len(variants))
	}
}
