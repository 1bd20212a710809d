// Package content fetches and renders on-demand package content: readmes,
// manifest dependency listings, source trees, download statistics,
// releases, and CI status.
//
// The service composes the forge clients over one shared cache backend.
// Every resource kind lives in its own cache key namespace with an
// explicit lifetime; workflow runs are never cached because they describe
// live CI state. All methods return plain text ready to embed in a tool
// response.
package content

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/zk-kit/zk-kit-mcp/pkg/cache"
	"github.com/zk-kit/zk-kit-mcp/pkg/catalog"
	"github.com/zk-kit/zk-kit-mcp/pkg/integrations/crates"
	"github.com/zk-kit/zk-kit-mcp/pkg/integrations/github"
	"github.com/zk-kit/zk-kit-mcp/pkg/integrations/npm"
	"github.com/zk-kit/zk-kit-mcp/pkg/manifest"
)

// Per-kind cache lifetimes. Repository content moves slowly between
// releases; registry statistics and release state move faster.
const (
	TTLContent  = 6 * time.Hour
	TTLReleases = time.Hour
	TTLStats    = time.Hour
)

// DefaultTreeDepth bounds how many directory levels SourceTree renders
// when the caller does not ask for a depth.
const DefaultTreeDepth = 2

// workflowRunLimit is how many recent runs the CI report includes.
const workflowRunLimit = 5

// maxReleaseBody caps the release notes carried into the report.
const maxReleaseBody = 4000

// GitHubAPI is the subset of the GitHub content client the service needs.
type GitHubAPI interface {
	FetchFileRaw(ctx context.Context, slug, path, ref string, refresh bool) (string, error)
	GetTree(ctx context.Context, slug, ref string, refresh bool) ([]github.TreeEntry, error)
	LatestRelease(ctx context.Context, slug string, refresh bool) (*github.Release, error)
	ListWorkflowRuns(ctx context.Context, slug, branch string, limit int) ([]github.WorkflowRun, error)
}

// NPMAPI is the subset of the npm client the service needs.
type NPMAPI interface {
	FetchDownloads(ctx context.Context, pkg string, refresh bool) (*npm.DownloadStats, error)
}

// CratesAPI is the subset of the crates.io client the service needs.
type CratesAPI interface {
	FetchCrate(ctx context.Context, crate string, refresh bool) (*crates.CrateInfo, error)
}

// Service serves on-demand package content.
//
// Repository content and release lookups run through separate GitHub
// clients so each kind keeps its own lifetime on the shared backend.
// All methods are safe for concurrent use.
type Service struct {
	github   GitHubAPI
	releases GitHubAPI
	npm      NPMAPI
	crates   CratesAPI
}

// NewService wires the forge clients over a shared cache backend.
// The token authenticates GitHub requests and may be empty.
func NewService(backend cache.Cache, githubToken string) *Service {
	return &Service{
		github:   github.NewContentClient(backend, githubToken, TTLContent),
		releases: github.NewContentClient(backend, githubToken, TTLReleases),
		npm:      npm.NewClient(backend, TTLStats),
		crates:   crates.NewClient(backend, TTLStats),
	}
}

// Readme returns a package's README.md as markdown.
func (s *Service) Readme(ctx context.Context, pkg catalog.Package, refresh bool) (string, error) {
	cfg, err := repoConfig(pkg.Language)
	if err != nil {
		return "", err
	}

	p := path.Join(cfg.PackagesPath, pkg.DirName, "README.md")
	text, err := s.github.FetchFileRaw(ctx, cfg.Slug, p, cfg.Branch, refresh)
	if err != nil {
		return "", fmt.Errorf("readme for %s: %w", pkg.Name, err)
	}
	return text, nil
}

// Dependencies renders a package's full manifest dependency listing,
// including dev and peer tables.
func (s *Service) Dependencies(ctx context.Context, pkg catalog.Package, refresh bool) (string, error) {
	cfg, err := repoConfig(pkg.Language)
	if err != nil {
		return "", err
	}
	filename, ok := manifest.Filename(pkg.Language)
	if !ok {
		return "", fmt.Errorf("no manifest filename for language %q", pkg.Language)
	}

	p := path.Join(cfg.PackagesPath, pkg.DirName, filename)
	raw, err := s.github.FetchFileRaw(ctx, cfg.Slug, p, cfg.Branch, refresh)
	if err != nil {
		return "", fmt.Errorf("fetch %s for %s: %w", filename, pkg.Name, err)
	}

	sections, err := manifest.ListDependencies(pkg.Language, []byte(raw))
	if err != nil {
		return "", fmt.Errorf("parse %s for %s: %w", filename, pkg.Name, err)
	}
	return renderDependencies(pkg, filename, sections), nil
}

func renderDependencies(pkg catalog.Package, filename string, sections []manifest.Section) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dependencies of %s (%s):\n", pkg.Name, filename)

	if len(sections) == 0 {
		b.WriteString("\nNo dependencies declared.\n")
		return b.String()
	}

	for _, sec := range sections {
		width := 0
		for _, d := range sec.Deps {
			if len(d.Name) > width {
				width = len(d.Name)
			}
		}
		fmt.Fprintf(&b, "\n%s:\n", sec.Title)
		for _, d := range sec.Deps {
			fmt.Fprintf(&b, "  %-*s  %s\n", width, d.Name, d.Requirement)
		}
	}
	return b.String()
}

// SourceTree renders a package's directory tree up to the given depth.
// A depth of zero or less picks DefaultTreeDepth.
func (s *Service) SourceTree(ctx context.Context, pkg catalog.Package, depth int, refresh bool) (string, error) {
	cfg, err := repoConfig(pkg.Language)
	if err != nil {
		return "", err
	}
	if depth <= 0 {
		depth = DefaultTreeDepth
	}

	entries, err := s.github.GetTree(ctx, cfg.Slug, cfg.Branch, refresh)
	if err != nil {
		return "", fmt.Errorf("tree for %s: %w", pkg.Name, err)
	}

	root := cfg.PackagesPath + "/" + pkg.DirName
	prefix := root + "/"

	type row struct {
		rel  string
		tree bool
	}
	var rows []row
	omitted := 0
	for _, e := range entries {
		if !strings.HasPrefix(e.Path, prefix) {
			continue
		}
		rel := strings.TrimPrefix(e.Path, prefix)
		if strings.Count(rel, "/")+1 > depth {
			omitted++
			continue
		}
		rows = append(rows, row{rel: rel, tree: e.Type == "tree"})
	}

	if len(rows) == 0 {
		return fmt.Sprintf("No files found under %s in %s.", root, cfg.Slug), nil
	}

	// Sort so children come directly after their parent directory, not
	// after lexicographic neighbors like "src-utils".
	sort.Slice(rows, func(i, j int) bool {
		return pathKey(rows[i].rel) < pathKey(rows[j].rel)
	})

	var b strings.Builder
	fmt.Fprintf(&b, "Source tree of %s (%s @ %s):\n\n", pkg.Name, root, cfg.Branch)
	for _, r := range rows {
		level := strings.Count(r.rel, "/")
		name := r.rel[strings.LastIndex(r.rel, "/")+1:]
		if r.tree {
			name += "/"
		}
		fmt.Fprintf(&b, "%s%s\n", strings.Repeat("  ", level+1), name)
	}
	if omitted > 0 {
		noun := "entries"
		if omitted == 1 {
			noun = "entry"
		}
		fmt.Fprintf(&b, "\n(%d %s below depth %d omitted)\n", omitted, noun, depth)
	}
	return b.String(), nil
}

// Downloads reports a package's registry download statistics, routed by
// language: npm weekly counts for the npm-published languages, crates.io
// lifetime counts for rust. Noir packages are distributed via git and
// have no registry counters.
func (s *Service) Downloads(ctx context.Context, pkg catalog.Package, refresh bool) (string, error) {
	switch pkg.Language {
	case catalog.LangTypeScript, catalog.LangCircom, catalog.LangSolidity:
		stats, err := s.npm.FetchDownloads(ctx, pkg.Name, refresh)
		if err != nil {
			return "", fmt.Errorf("downloads for %s: %w", pkg.Name, err)
		}
		return fmt.Sprintf("%s: %d npm downloads in the last week (%s to %s).",
			pkg.Name, stats.Downloads, stats.Start, stats.End), nil

	case catalog.LangRust:
		info, err := s.crates.FetchCrate(ctx, pkg.Name, refresh)
		if err != nil {
			return "", fmt.Errorf("downloads for %s: %w", pkg.Name, err)
		}
		return fmt.Sprintf("%s: %d total downloads on crates.io.", pkg.Name, info.Downloads), nil

	case catalog.LangNoir:
		return fmt.Sprintf("%s is installed from git; noir packages have no registry download statistics.", pkg.Name), nil

	default:
		return "", fmt.Errorf("no download source for language %q", pkg.Language)
	}
}

// LatestRelease reports the newest published release of a language's
// repository.
func (s *Service) LatestRelease(ctx context.Context, lang catalog.Language, refresh bool) (string, error) {
	cfg, err := repoConfig(lang)
	if err != nil {
		return "", err
	}

	rel, err := s.releases.LatestRelease(ctx, cfg.Slug, refresh)
	if err != nil {
		return "", fmt.Errorf("latest release for %s: %w", cfg.Slug, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Latest release of %s: %s", cfg.Slug, rel.TagName)
	if rel.Name != "" && rel.Name != rel.TagName {
		fmt.Fprintf(&b, " (%s)", rel.Name)
	}
	if rel.Prerelease {
		b.WriteString(" [pre-release]")
	}
	b.WriteString("\n")
	if rel.PublishedAt != "" {
		fmt.Fprintf(&b, "Published: %s\n", rel.PublishedAt)
	}
	if rel.HTMLURL != "" {
		fmt.Fprintf(&b, "URL: %s\n", rel.HTMLURL)
	}
	if body := strings.TrimSpace(rel.Body); body != "" {
		b.WriteString("\n")
		b.WriteString(truncate(body, maxReleaseBody))
		b.WriteString("\n")
	}
	return b.String(), nil
}

// CIStatus reports the most recent workflow runs on a language
// repository's default branch. Always live, never cached.
func (s *Service) CIStatus(ctx context.Context, lang catalog.Language) (string, error) {
	cfg, err := repoConfig(lang)
	if err != nil {
		return "", err
	}

	runs, err := s.github.ListWorkflowRuns(ctx, cfg.Slug, cfg.Branch, workflowRunLimit)
	if err != nil {
		return "", fmt.Errorf("workflow runs for %s: %w", cfg.Slug, err)
	}
	if len(runs) == 0 {
		return fmt.Sprintf("No workflow runs found for %s on %s.", cfg.Slug, cfg.Branch), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recent workflow runs for %s (%s):\n\n", cfg.Slug, cfg.Branch)
	for _, run := range runs {
		state := run.Conclusion
		if state == "" {
			state = run.Status
		}
		fmt.Fprintf(&b, "  %-12s %s [%s] %s\n", state, run.Name, run.Event, run.CreatedAt)
	}
	return b.String(), nil
}

func repoConfig(lang catalog.Language) (catalog.RepoConfig, error) {
	cfg, ok := catalog.RepoFor(lang)
	if !ok {
		return catalog.RepoConfig{}, fmt.Errorf("no repository for language %q", lang)
	}
	return cfg, nil
}

// pathKey makes "/" sort before any other byte so a directory's subtree
// stays contiguous.
func pathKey(rel string) string {
	return strings.ReplaceAll(rel, "/", "\x00")
}

// truncate caps s at n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "\n... (truncated)"
}
