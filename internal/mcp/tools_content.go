package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zk-kit/zk-kit-mcp/pkg/catalog"
	"github.com/zk-kit/zk-kit-mcp/pkg/content"
	apperrors "github.com/zk-kit/zk-kit-mcp/pkg/errors"
	"github.com/zk-kit/zk-kit-mcp/pkg/integrations"
)

// fetcher is the slice of content.Service the fetch tools depend on.
// Tests substitute a fake; production wiring passes the real service.
type fetcher interface {
	Readme(ctx context.Context, pkg catalog.Package, refresh bool) (string, error)
	Dependencies(ctx context.Context, pkg catalog.Package, refresh bool) (string, error)
	SourceTree(ctx context.Context, pkg catalog.Package, depth int, refresh bool) (string, error)
	Downloads(ctx context.Context, pkg catalog.Package, refresh bool) (string, error)
	LatestRelease(ctx context.Context, lang catalog.Language, refresh bool) (string, error)
	CIStatus(ctx context.Context, lang catalog.Language) (string, error)
}

var _ fetcher = (*content.Service)(nil)

// resolvePackage maps a tool's name argument to a catalog package. The
// not-ok result carries the ready-made response (invalid input, empty
// catalog, or a miss with suggestions), so handlers return it as-is.
func resolvePackage(r *catalog.Registry, req mcp.CallToolRequest) (catalog.Package, *mcp.CallToolResult, bool) {
	name, err := req.RequireString("name")
	if err != nil {
		return catalog.Package{}, mcp.NewToolResultError(err.Error()), false
	}
	if err := apperrors.ValidatePackageName(name); err != nil {
		return catalog.Package{}, toolError(err), false
	}
	if r.Count() == 0 {
		return catalog.Package{}, mcp.NewToolResultText(catalog.NoPackagesMessage), false
	}
	p, ok := r.GetByName(name)
	if !ok {
		return catalog.Package{}, mcp.NewToolResultText(renderNotFound(r, name)), false
	}
	return p, nil, true
}

// parseLanguageArg maps a tool's language argument to a catalog language.
func parseLanguageArg(req mcp.CallToolRequest) (catalog.Language, *mcp.CallToolResult, bool) {
	raw, err := req.RequireString("language")
	if err != nil {
		return "", mcp.NewToolResultError(err.Error()), false
	}
	lang, ok := catalog.ParseLanguage(raw)
	if !ok {
		return "", toolError(apperrors.New(apperrors.ErrCodeInvalidLanguage,
			"unknown language %q", raw)), false
	}
	return lang, nil, true
}

// ReadmeTool fetches a package's README from its source repository.
type ReadmeTool struct {
	registry *catalog.Registry
	content  fetcher
}

func NewReadmeTool(r *catalog.Registry, svc fetcher) *ReadmeTool {
	return &ReadmeTool{registry: r, content: svc}
}

func (t *ReadmeTool) Definition() mcp.Tool {
	return mcp.NewTool("get-readme",
		mcp.WithDescription("Fetch the README of a zk-kit package from its source repository."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Package name in any common spelling."),
		),
	)
}

func (t *ReadmeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, res, ok := resolvePackage(t.registry, req)
	if !ok {
		return res, nil
	}
	text, err := t.content.Readme(ctx, p, false)
	if err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return mcp.NewToolResultText(fmt.Sprintf("No README found for %s.", p.Name)), nil
		}
		return mcp.NewToolResultErrorFromErr("fetching readme", err), nil
	}
	return mcp.NewToolResultText(text), nil
}

// PackageDepsTool lists a package's full manifest dependencies, including
// dev and peer sections the registry graph deliberately ignores.
type PackageDepsTool struct {
	registry *catalog.Registry
	content  fetcher
}

func NewPackageDepsTool(r *catalog.Registry, svc fetcher) *PackageDepsTool {
	return &PackageDepsTool{registry: r, content: svc}
}

func (t *PackageDepsTool) Definition() mcp.Tool {
	return mcp.NewTool("get-package-dependencies",
		mcp.WithDescription("List every dependency declared in a zk-kit package's manifest, grouped by section (runtime, dev, peer or build)."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Package name in any common spelling."),
		),
	)
}

func (t *PackageDepsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, res, ok := resolvePackage(t.registry, req)
	if !ok {
		return res, nil
	}
	text, err := t.content.Dependencies(ctx, p, false)
	if err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return mcp.NewToolResultText(fmt.Sprintf("No manifest found for %s.", p.Name)), nil
		}
		return mcp.NewToolResultErrorFromErr("fetching dependencies", err), nil
	}
	return mcp.NewToolResultText(text), nil
}

// SourceTreeTool renders a package's directory layout.
type SourceTreeTool struct {
	registry *catalog.Registry
	content  fetcher
}

func NewSourceTreeTool(r *catalog.Registry, svc fetcher) *SourceTreeTool {
	return &SourceTreeTool{registry: r, content: svc}
}

func (t *SourceTreeTool) Definition() mcp.Tool {
	return mcp.NewTool("get-source-tree",
		mcp.WithDescription("Show the file and directory layout of a zk-kit package's source tree."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Package name in any common spelling."),
		),
		mcp.WithNumber("depth",
			mcp.Description(fmt.Sprintf("How many directory levels to show (default %d).", content.DefaultTreeDepth)),
		),
	)
}

func (t *SourceTreeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, res, ok := resolvePackage(t.registry, req)
	if !ok {
		return res, nil
	}
	depth := req.GetInt("depth", 0)
	text, err := t.content.SourceTree(ctx, p, depth, false)
	if err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return mcp.NewToolResultText(fmt.Sprintf("No source tree found for %s.", p.Name)), nil
		}
		return mcp.NewToolResultErrorFromErr("fetching source tree", err), nil
	}
	return mcp.NewToolResultText(text), nil
}

// DownloadsTool reports registry download statistics for a package.
type DownloadsTool struct {
	registry *catalog.Registry
	content  fetcher
}

func NewDownloadsTool(r *catalog.Registry, svc fetcher) *DownloadsTool {
	return &DownloadsTool{registry: r, content: svc}
}

func (t *DownloadsTool) Definition() mcp.Tool {
	return mcp.NewTool("get-download-stats",
		mcp.WithDescription("Get download statistics for a zk-kit package: weekly npm downloads or total crates.io downloads, depending on the language."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Package name in any common spelling."),
		),
	)
}

func (t *DownloadsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, res, ok := resolvePackage(t.registry, req)
	if !ok {
		return res, nil
	}
	text, err := t.content.Downloads(ctx, p, false)
	if err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return mcp.NewToolResultText(fmt.Sprintf("No download statistics found for %s.", p.Name)), nil
		}
		return mcp.NewToolResultErrorFromErr("fetching download stats", err), nil
	}
	return mcp.NewToolResultText(text), nil
}

// ReleaseTool reports the newest release of a language repository.
type ReleaseTool struct {
	content fetcher
}

func NewReleaseTool(svc fetcher) *ReleaseTool {
	return &ReleaseTool{content: svc}
}

func (t *ReleaseTool) Definition() mcp.Tool {
	return mcp.NewTool("get-latest-release",
		mcp.WithDescription("Get the latest published release of a zk-kit language repository, with its notes."),
		mcp.WithString("language",
			mcp.Required(),
			mcp.Description("Implementation language identifying the repository."),
			mcp.Enum(languageValues()...),
		),
	)
}

func (t *ReleaseTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lang, res, ok := parseLanguageArg(req)
	if !ok {
		return res, nil
	}
	text, err := t.content.LatestRelease(ctx, lang, false)
	if err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return mcp.NewToolResultText(fmt.Sprintf("No published releases found for the %s repository.", lang)), nil
		}
		return mcp.NewToolResultErrorFromErr("fetching latest release", err), nil
	}
	return mcp.NewToolResultText(text), nil
}

// CIStatusTool reports recent workflow runs of a language repository.
type CIStatusTool struct {
	content fetcher
}

func NewCIStatusTool(svc fetcher) *CIStatusTool {
	return &CIStatusTool{content: svc}
}

func (t *CIStatusTool) Definition() mcp.Tool {
	return mcp.NewTool("get-ci-status",
		mcp.WithDescription("Get the most recent CI workflow runs of a zk-kit language repository. Always fetched live, never cached."),
		mcp.WithString("language",
			mcp.Required(),
			mcp.Description("Implementation language identifying the repository."),
			mcp.Enum(languageValues()...),
		),
	)
}

func (t *CIStatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lang, res, ok := parseLanguageArg(req)
	if !ok {
		return res, nil
	}
	text, err := t.content.CIStatus(ctx, lang)
	if err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return mcp.NewToolResultText(fmt.Sprintf("No workflow runs found for the %s repository.", lang)), nil
		}
		return mcp.NewToolResultErrorFromErr("fetching ci status", err), nil
	}
	return mcp.NewToolResultText(text), nil
}
