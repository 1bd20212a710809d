package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zk-kit/zk-kit-mcp/pkg/catalog"
	apperrors "github.com/zk-kit/zk-kit-mcp/pkg/errors"
)

// defaultSearchLimit caps search-packages results when the caller passes
// no limit.
const defaultSearchLimit = 10

// languageValues returns the accepted language strings for tool schemas.
func languageValues() []string {
	out := make([]string, len(catalog.Languages))
	for i, l := range catalog.Languages {
		out[i] = string(l)
	}
	return out
}

// categoryValues returns the accepted category strings for tool schemas.
func categoryValues() []string {
	out := make([]string, len(catalog.Categories))
	for i, c := range catalog.Categories {
		out[i] = string(c)
	}
	return out
}

// toolError renders a domain error as a failed tool result. The nil Go
// error alongside it keeps the protocol call itself successful.
func toolError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(apperrors.UserMessage(err))
}

// SearchTool filters and ranks catalog packages.
type SearchTool struct {
	registry *catalog.Registry
}

func NewSearchTool(r *catalog.Registry) *SearchTool {
	return &SearchTool{registry: r}
}

func (t *SearchTool) Definition() mcp.Tool {
	return mcp.NewTool("search-packages",
		mcp.WithDescription("Search zk-kit packages by free-text query with optional language and category filters. Without arguments, lists every package."),
		mcp.WithString("query",
			mcp.Description("Free-text terms matched against package name, directory name and description. All terms must match."),
		),
		mcp.WithString("language",
			mcp.Description("Restrict results to one implementation language."),
			mcp.Enum(languageValues()...),
		),
		mcp.WithString("category",
			mcp.Description("Restrict results to one category."),
			mcp.Enum(categoryValues()...),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (default 10)."),
		),
	)
}

func (t *SearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	language := req.GetString("language", "")
	category := req.GetString("category", "")
	limit := req.GetInt("limit", defaultSearchLimit)

	if language != "" {
		if _, ok := catalog.ParseLanguage(language); !ok {
			return toolError(apperrors.New(apperrors.ErrCodeInvalidLanguage,
				"unknown language %q (expected one of: %s)", language, strings.Join(languageValues(), ", "))), nil
		}
	}
	if category != "" {
		if _, ok := catalog.ParseCategory(category); !ok {
			return toolError(apperrors.New(apperrors.ErrCodeInvalidCategory,
				"unknown category %q (expected one of: %s)", category, strings.Join(categoryValues(), ", "))), nil
		}
	}
	if t.registry.Count() == 0 {
		return mcp.NewToolResultText(catalog.NoPackagesMessage), nil
	}

	results := t.registry.Search(query, language, category)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	if len(results) == 0 {
		return mcp.NewToolResultText(renderNoMatches(query, language, category)), nil
	}
	return mcp.NewToolResultText(renderSearchResults(results)), nil
}

// InfoTool renders the detail card for one package.
type InfoTool struct {
	registry *catalog.Registry
}

func NewInfoTool(r *catalog.Registry) *InfoTool {
	return &InfoTool{registry: r}
}

func (t *InfoTool) Definition() mcp.Tool {
	return mcp.NewTool("get-package-info",
		mcp.WithDescription("Get details for one zk-kit package: description, version, install command, repository and sibling implementations in other languages."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Package name in any common spelling: published name, directory name, noir identifier or crate name."),
		),
	)
}

func (t *InfoTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := apperrors.ValidatePackageName(name); err != nil {
		return toolError(err), nil
	}
	if t.registry.Count() == 0 {
		return mcp.NewToolResultText(catalog.NoPackagesMessage), nil
	}
	p, ok := t.registry.GetByName(name)
	if !ok {
		return mcp.NewToolResultText(renderNotFound(t.registry, name)), nil
	}
	return mcp.NewToolResultText(renderPackage(t.registry, p)), nil
}

// CompareTool renders a side-by-side comparison table.
type CompareTool struct {
	registry *catalog.Registry
}

func NewCompareTool(r *catalog.Registry) *CompareTool {
	return &CompareTool{registry: r}
}

func (t *CompareTool) Definition() mcp.Tool {
	return mcp.NewTool("compare-packages",
		mcp.WithDescription("Compare zk-kit packages side by side. Pass implementations of the same concept in different languages to weigh stacks against each other."),
		mcp.WithArray("names",
			mcp.Required(),
			mcp.Description("Names of the packages to compare, in any common spelling."),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)
}

func (t *CompareTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := req.RequireStringSlice("names")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(names) == 0 {
		return toolError(apperrors.New(apperrors.ErrCodeInvalidInput, "names cannot be empty")), nil
	}
	for _, name := range names {
		if err := apperrors.ValidatePackageName(name); err != nil {
			return toolError(err), nil
		}
	}
	if t.registry.Count() == 0 {
		return mcp.NewToolResultText(catalog.NoPackagesMessage), nil
	}
	return mcp.NewToolResultText(t.registry.Compare(names)), nil
}

// OverviewTool renders the whole catalog grouped by language and category.
type OverviewTool struct {
	registry *catalog.Registry
}

func NewOverviewTool(r *catalog.Registry) *OverviewTool {
	return &OverviewTool{registry: r}
}

func (t *OverviewTool) Definition() mcp.Tool {
	return mcp.NewTool("get-ecosystem-overview",
		mcp.WithDescription("Get the full zk-kit ecosystem overview: every package grouped by language and by category, plus the concepts implemented in more than one language."),
	)
}

func (t *OverviewTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(t.registry.EcosystemOverview()), nil
}

// CoverageTool renders the concept-by-language coverage matrix.
type CoverageTool struct {
	registry *catalog.Registry
}

func NewCoverageTool(r *catalog.Registry) *CoverageTool {
	return &CoverageTool{registry: r}
}

func (t *CoverageTool) Definition() mcp.Tool {
	return mcp.NewTool("get-cross-language-coverage",
		mcp.WithDescription("Get the coverage matrix showing which concepts are implemented in which languages, with the overall coverage percentage and the single-language gaps."),
	)
}

func (t *CoverageTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(t.registry.CrossLanguageCoverage()), nil
}

// GraphTool renders the ecosystem-wide dependency classification.
type GraphTool struct {
	registry *catalog.Registry
}

func NewGraphTool(r *catalog.Registry) *GraphTool {
	return &GraphTool{registry: r}
}

func (t *GraphTool) Definition() mcp.Tool {
	return mcp.NewTool("get-dependency-graph",
		mcp.WithDescription("Get the intra-ecosystem dependency graph: concepts classified as foundational (depended on by others), leaf (depend on others) or independent."),
	)
}

func (t *GraphTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(t.registry.DependencyGraph()), nil
}

// ReverseDepsTool renders the single-concept dependency view.
type ReverseDepsTool struct {
	registry *catalog.Registry
}

func NewReverseDepsTool(r *catalog.Registry) *ReverseDepsTool {
	return &ReverseDepsTool{registry: r}
}

func (t *ReverseDepsTool) Definition() mcp.Tool {
	return mcp.NewTool("get-reverse-dependencies",
		mcp.WithDescription("Show which zk-kit packages depend on a given package, and what it depends on. Useful before upgrading or replacing a package."),
		mcp.WithString("package",
			mcp.Required(),
			mcp.Description("Package name or cross-language concept id."),
		),
	)
}

func (t *ReverseDepsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("package")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := apperrors.ValidatePackageName(name); err != nil {
		return toolError(err), nil
	}
	if t.registry.Count() == 0 {
		return mcp.NewToolResultText(catalog.NoPackagesMessage), nil
	}

	// A package name resolves to its concept; anything unresolved is
	// treated as a concept id directly.
	if p, ok := t.registry.GetByName(name); ok {
		return mcp.NewToolResultText(t.registry.ReverseDependencies(p.CrossLanguageID)), nil
	}
	if err := apperrors.ValidateConceptID(name); err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(t.registry.ReverseDependencies(name)), nil
}

// renderSearchResults lists packages, one numbered block per result.
func renderSearchResults(pkgs []catalog.Package) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d package%s:\n", len(pkgs), pluralSuffix(len(pkgs)))
	for i, p := range pkgs {
		fmt.Fprintf(&b, "\n%d. %s (%s, %s)\n", i+1, p.Name, p.Language, p.Category)
		if p.Description != "" {
			fmt.Fprintf(&b, "   %s\n", p.Description)
		}
		fmt.Fprintf(&b, "   Install: %s\n", p.InstallCommand)
	}
	return b.String()
}

// renderNoMatches describes an empty search result in terms of the
// filters that produced it.
func renderNoMatches(query, language, category string) string {
	var parts []string
	if query != "" {
		parts = append(parts, fmt.Sprintf("query %q", query))
	}
	if language != "" {
		parts = append(parts, "language "+language)
	}
	if category != "" {
		parts = append(parts, "category "+category)
	}
	if len(parts) == 0 {
		return "No packages matched."
	}
	return fmt.Sprintf("No packages found for %s.", strings.Join(parts, ", "))
}

// renderNotFound reports a failed name resolution together with close
// matches so the caller can retry with a real name instead of guessing.
func renderNotFound(r *catalog.Registry, name string) string {
	sugg := r.Suggest(name, 0)
	if len(sugg) == 0 {
		return fmt.Sprintf("No package found matching %q.", name)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "No package found matching %q. Did you mean:\n", name)
	for _, p := range sugg {
		fmt.Fprintf(&b, "- %s (%s)\n", p.Name, p.Language)
	}
	return b.String()
}

// renderPackage renders the detail card for one package, including its
// sibling implementations in other languages.
func renderPackage(r *catalog.Registry, p catalog.Package) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Name)
	if p.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", p.Description)
	}

	rows := []struct{ label, value string }{
		{"Language", string(p.Language)},
		{"Category", string(p.Category)},
		{"Version", dash(p.Version)},
		{"Install", p.InstallCommand},
		{"Repository", p.Repo},
		{"Cross-language id", p.CrossLanguageID},
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "%-18s %s\n", row.label+":", row.value)
	}
	if len(p.ZKKitDependencies) > 0 {
		fmt.Fprintf(&b, "%-18s %s\n", "zk-kit deps:", strings.Join(p.ZKKitDependencies, ", "))
	}

	var variants []catalog.Package
	for _, q := range r.All() {
		if q.CrossLanguageID == p.CrossLanguageID && !(q.Language == p.Language && q.Name == p.Name) {
			variants = append(variants, q)
		}
	}
	if len(variants) > 0 {
		b.WriteString("\nAlso available in:\n")
		for _, q := range variants {
			fmt.Fprintf(&b, "- %s (%s)\n", q.Name, q.Language)
		}
	}
	return b.String()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func pluralSuffix(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
