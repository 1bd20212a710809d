package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zk-kit/zk-kit-mcp/pkg/catalog"
)

// testPackages builds a small catalog spanning three languages.
func testPackages(t *testing.T) []catalog.Package {
	t.Helper()

	repoFor := func(lang catalog.Language) catalog.RepoConfig {
		cfg, ok := catalog.RepoFor(lang)
		if !ok {
			t.Fatalf("no repository configured for %s", lang)
		}
		return cfg
	}

	ts := repoFor(catalog.LangTypeScript)
	noir := repoFor(catalog.LangNoir)
	rust := repoFor(catalog.LangRust)

	pkgs := []catalog.Package{
		catalog.NewPackage(ts, "utils", "Shared utilities for zk-kit packages", "1.5.0", nil),
		catalog.NewPackage(ts, "lean-imt", "Lean incremental Merkle tree", "2.0.1", []string{"utils"}),
		catalog.NewPackage(noir, "merkle-trees", "Merkle tree implementations for noir circuits", "0.1.0", nil),
		catalog.NewPackage(rust, "lean-imt", "Lean incremental Merkle tree crate", "0.3.0", nil),
	}
	catalog.SortPackages(pkgs)
	return pkgs
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{
		"serve", "discover", "search", "info", "compare",
		"overview", "coverage", "graph", "browse", "cache", "completion",
	}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

func TestRootCommandUse(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Use != "zk-kit-mcp" {
		t.Errorf("root.Use = %q, want %q", root.Use, "zk-kit-mcp")
	}
	if root.Version == "" {
		t.Error("root.Version should be set")
	}
}

func TestNewBackendKinds(t *testing.T) {
	tests := []struct {
		kind    string
		wantErr bool
	}{
		{kind: "memory"},
		{kind: "none"},
		{kind: "file"},
		{kind: ""},
		{kind: "etcd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("kind "+tt.kind, func(t *testing.T) {
			t.Setenv("XDG_CACHE_HOME", t.TempDir())

			backend, err := newBackend(context.Background(), tt.kind, "")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("newBackend(%q) expected error, got nil", tt.kind)
				}
				return
			}
			if err != nil {
				t.Fatalf("newBackend(%q) error: %v", tt.kind, err)
			}
			if backend == nil {
				t.Fatalf("newBackend(%q) returned nil backend", tt.kind)
			}
			if err := backend.Close(); err != nil {
				t.Errorf("Close() error: %v", err)
			}
		})
	}
}

func TestNewBackendUnknownKindMessage(t *testing.T) {
	_, err := newBackend(context.Background(), "etcd", "")
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if !strings.Contains(err.Error(), "etcd") {
		t.Errorf("error %q should mention the unknown kind", err)
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}
