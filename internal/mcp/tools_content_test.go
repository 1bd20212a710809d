package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/zk-kit/zk-kit-mcp/pkg/catalog"
	"github.com/zk-kit/zk-kit-mcp/pkg/integrations"
)

// fakeFetcher returns canned text and records what was asked for.
type fakeFetcher struct {
	text string
	err  error

	lastPkg   catalog.Package
	lastLang  catalog.Language
	lastDepth int
	calls     int
}

func (f *fakeFetcher) Readme(ctx context.Context, pkg catalog.Package, refresh bool) (string, error) {
	f.lastPkg = pkg
	f.calls++
	return f.text, f.err
}

func (f *fakeFetcher) Dependencies(ctx context.Context, pkg catalog.Package, refresh bool) (string, error) {
	f.lastPkg = pkg
	f.calls++
	return f.text, f.err
}

func (f *fakeFetcher) SourceTree(ctx context.Context, pkg catalog.Package, depth int, refresh bool) (string, error) {
	f.lastPkg = pkg
	f.lastDepth = depth
	f.calls++
	return f.text, f.err
}

func (f *fakeFetcher) Downloads(ctx context.Context, pkg catalog.Package, refresh bool) (string, error) {
	f.lastPkg = pkg
	f.calls++
	return f.text, f.err
}

func (f *fakeFetcher) LatestRelease(ctx context.Context, lang catalog.Language, refresh bool) (string, error) {
	f.lastLang = lang
	f.calls++
	return f.text, f.err
}

func (f *fakeFetcher) CIStatus(ctx context.Context, lang catalog.Language) (string, error) {
	f.lastLang = lang
	f.calls++
	return f.text, f.err
}

func TestReadmeTool(t *testing.T) {
	fake := &fakeFetcher{text: "# Utils\n\nShared helpers."}
	tool := NewReadmeTool(testRegistry(t), fake)

	res, err := tool.Handle(context.Background(), callRequest("get-readme", map[string]any{
		"name": "utils",
	}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if text := resultText(t, res); text != fake.text {
		t.Errorf("got %q, want %q", text, fake.text)
	}
	if fake.lastPkg.Name != "@zk-kit/utils" {
		t.Errorf("fetched %q, want @zk-kit/utils", fake.lastPkg.Name)
	}
}

func TestReadmeToolNotFound(t *testing.T) {
	fake := &fakeFetcher{err: fmt.Errorf("readme for x: %w", integrations.ErrNotFound)}
	tool := NewReadmeTool(testRegistry(t), fake)

	res, err := tool.Handle(context.Background(), callRequest("get-readme", map[string]any{
		"name": "utils",
	}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	text := resultText(t, res)
	if res.IsError {
		t.Fatalf("a missing readme is not an error result, got: %q", text)
	}
	if text != "No README found for @zk-kit/utils." {
		t.Errorf("got %q", text)
	}
}

func TestReadmeToolNetworkError(t *testing.T) {
	fake := &fakeFetcher{err: errors.New("connection reset")}
	tool := NewReadmeTool(testRegistry(t), fake)

	res, err := tool.Handle(context.Background(), callRequest("get-readme", map[string]any{
		"name": "utils",
	}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected error result")
	}
	if text := resultText(t, res); !strings.Contains(text, "fetching readme") {
		t.Errorf("unexpected error text: %q", text)
	}
}

func TestReadmeToolUnknownPackageSkipsFetch(t *testing.T) {
	fake := &fakeFetcher{text: "never"}
	tool := NewReadmeTool(testRegistry(t), fake)

	res, err := tool.Handle(context.Background(), callRequest("get-readme", map[string]any{
		"name": "lean",
	}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if text := resultText(t, res); !strings.Contains(text, "Did you mean:") {
		t.Errorf("expected suggestions, got: %q", text)
	}
	if fake.calls != 0 {
		t.Errorf("expected no fetch for an unresolved name, got %d calls", fake.calls)
	}
}

func TestPackageDepsTool(t *testing.T) {
	fake := &fakeFetcher{text: "Dependencies of @zk-kit/lean-imt (package.json):\n"}
	tool := NewPackageDepsTool(testRegistry(t), fake)

	res, err := tool.Handle(context.Background(), callRequest("get-package-dependencies", map[string]any{
		"name": "@zk-kit/lean-imt",
	}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if text := resultText(t, res); text != fake.text {
		t.Errorf("got %q, want %q", text, fake.text)
	}
	if fake.lastPkg.DirName != "lean-imt" {
		t.Errorf("fetched %q, want lean-imt", fake.lastPkg.DirName)
	}
}

func TestSourceTreeToolDepth(t *testing.T) {
	tests := []struct {
		name      string
		args      map[string]any
		wantDepth int
	}{
		{"explicit depth", map[string]any{"name": "zk-kit-smt", "depth": 4}, 4},
		{"default depth", map[string]any{"name": "zk-kit-smt"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeFetcher{text: "Source tree of zk-kit-smt (crates/smt @ main):\n"}
			tool := NewSourceTreeTool(testRegistry(t), fake)

			res, err := tool.Handle(context.Background(), callRequest("get-source-tree", tt.args))
			if err != nil {
				t.Fatalf("Handle() error: %v", err)
			}
			if res.IsError {
				t.Fatalf("unexpected error result: %q", resultText(t, res))
			}
			if fake.lastDepth != tt.wantDepth {
				t.Errorf("depth = %d, want %d", fake.lastDepth, tt.wantDepth)
			}
		})
	}
}

func TestDownloadsTool(t *testing.T) {
	fake := &fakeFetcher{text: "zk-kit-smt: 12345 total downloads on crates.io."}
	tool := NewDownloadsTool(testRegistry(t), fake)

	res, err := tool.Handle(context.Background(), callRequest("get-download-stats", map[string]any{
		"name": "smt",
	}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if text := resultText(t, res); text != fake.text {
		t.Errorf("got %q, want %q", text, fake.text)
	}
	if fake.lastPkg.Language != catalog.LangRust {
		t.Errorf("resolved language %q, want rust", fake.lastPkg.Language)
	}
}

func TestReleaseTool(t *testing.T) {
	fake := &fakeFetcher{text: "Latest release of privacy-scaling-explorations/zk-kit.rust: v0.3.0\n"}
	tool := NewReleaseTool(fake)

	res, err := tool.Handle(context.Background(), callRequest("get-latest-release", map[string]any{
		"language": "rust",
	}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if text := resultText(t, res); text != fake.text {
		t.Errorf("got %q, want %q", text, fake.text)
	}
	if fake.lastLang != catalog.LangRust {
		t.Errorf("language = %q, want rust", fake.lastLang)
	}
}

func TestReleaseToolNoReleases(t *testing.T) {
	fake := &fakeFetcher{err: fmt.Errorf("latest release: %w", integrations.ErrNotFound)}
	tool := NewReleaseTool(fake)

	res, err := tool.Handle(context.Background(), callRequest("get-latest-release", map[string]any{
		"language": "noir",
	}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if text := resultText(t, res); text != "No published releases found for the noir repository." {
		t.Errorf("got %q", text)
	}
}

func TestReleaseToolInvalidLanguage(t *testing.T) {
	tool := NewReleaseTool(&fakeFetcher{})

	res, err := tool.Handle(context.Background(), callRequest("get-latest-release", map[string]any{
		"language": "cpp",
	}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected error result")
	}
}

func TestCIStatusTool(t *testing.T) {
	fake := &fakeFetcher{text: "Recent workflow runs for privacy-scaling-explorations/zk-kit (main):\n"}
	tool := NewCIStatusTool(fake)

	res, err := tool.Handle(context.Background(), callRequest("get-ci-status", map[string]any{
		"language": "typescript",
	}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if text := resultText(t, res); text != fake.text {
		t.Errorf("got %q, want %q", text, fake.text)
	}
	if fake.lastLang != catalog.LangTypeScript {
		t.Errorf("language = %q, want typescript", fake.lastLang)
	}
}
