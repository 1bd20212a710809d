// Package mcp assembles the zk-kit MCP server.
//
// This is the composition root: it constructs the concrete clients, runs
// discovery to populate the registry, and registers every tool, prompt and
// resource. Query and rendering logic lives in pkg/catalog and
// pkg/content; the handlers here only translate protocol requests into
// calls on those and wrap the results as text.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"

	"github.com/zk-kit/zk-kit-mcp/pkg/buildinfo"
	"github.com/zk-kit/zk-kit-mcp/pkg/cache"
	"github.com/zk-kit/zk-kit-mcp/pkg/catalog"
	"github.com/zk-kit/zk-kit-mcp/pkg/content"
	"github.com/zk-kit/zk-kit-mcp/pkg/discovery"
	"github.com/zk-kit/zk-kit-mcp/pkg/integrations/github"
)

// serverName identifies the server in the MCP initialize handshake.
const serverName = "zk-kit-mcp"

// discoveryTTL bounds how long the repository listings and manifests
// fetched during startup discovery stay cached. Long enough that a restart
// shortly after a crash reuses them from a persistent backend, short
// enough that newly published packages appear within the hour.
const discoveryTTL = 30 * time.Minute

// Config carries the server's external dependencies. The zero value is
// usable: an in-memory cache, unauthenticated GitHub access and a default
// logger.
type Config struct {
	// Cache is the backend shared by discovery and the on-demand content
	// service. New takes ownership of it; the returned cleanup closes it.
	// nil means a fresh in-memory cache.
	Cache cache.Cache

	// GitHubToken authenticates GitHub API requests when non-empty.
	// Unauthenticated requests work but hit a much lower rate limit.
	GitHubToken string

	// Logger receives discovery progress and warnings. nil means the
	// package-level default logger.
	Logger *log.Logger

	// Refresh forces startup discovery to bypass cached repository
	// listings and manifests.
	Refresh bool

	// CacheTTL bounds how long discovery fetches stay cached. Zero means
	// discoveryTTL.
	CacheTTL time.Duration
}

// New builds the MCP server: it scans the source repositories, loads the
// registry, and registers all tools, prompts and resources. Discovery
// failures never abort startup; a repository that cannot be listed is
// simply absent from the catalog and the tools report what was found.
//
// The returned cleanup closes the cache backend and must be called on
// shutdown (typically via defer). It is always non-nil and safe to call
// even when New returns an error.
func New(ctx context.Context, cfg Config) (*server.MCPServer, func(), error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	backend := cfg.Cache
	if backend == nil {
		backend = cache.NewMemory()
	}
	cleanup := func() {
		if err := backend.Close(); err != nil {
			logger.Warn("cache close failed", "error", err)
		}
	}

	// --- Populate the registry before serving ---

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = discoveryTTL
	}
	client := github.NewContentClient(backend, cfg.GitHubToken, ttl)
	scanner := discovery.NewScanner(discovery.NewGitHubSource(client, cfg.Refresh), logger)
	pkgs := scanner.Scan(ctx)
	if err := ctx.Err(); err != nil {
		return nil, cleanup, fmt.Errorf("discovery interrupted: %w", err)
	}
	registry := catalog.NewRegistry()
	registry.Load(pkgs)
	logger.Info("registry loaded", "packages", registry.Count())

	svc := content.NewService(backend, cfg.GitHubToken)

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		serverName,
		buildinfo.Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register registry tools ---

	searchTool := NewSearchTool(registry)
	s.AddTool(searchTool.Definition(), searchTool.Handle)

	infoTool := NewInfoTool(registry)
	s.AddTool(infoTool.Definition(), infoTool.Handle)

	compareTool := NewCompareTool(registry)
	s.AddTool(compareTool.Definition(), compareTool.Handle)

	overviewTool := NewOverviewTool(registry)
	s.AddTool(overviewTool.Definition(), overviewTool.Handle)

	coverageTool := NewCoverageTool(registry)
	s.AddTool(coverageTool.Definition(), coverageTool.Handle)

	graphTool := NewGraphTool(registry)
	s.AddTool(graphTool.Definition(), graphTool.Handle)

	reverseTool := NewReverseDepsTool(registry)
	s.AddTool(reverseTool.Definition(), reverseTool.Handle)

	// --- Register on-demand content tools ---

	readmeTool := NewReadmeTool(registry, svc)
	s.AddTool(readmeTool.Definition(), readmeTool.Handle)

	depsTool := NewPackageDepsTool(registry, svc)
	s.AddTool(depsTool.Definition(), depsTool.Handle)

	treeTool := NewSourceTreeTool(registry, svc)
	s.AddTool(treeTool.Definition(), treeTool.Handle)

	downloadsTool := NewDownloadsTool(registry, svc)
	s.AddTool(downloadsTool.Definition(), downloadsTool.Handle)

	releaseTool := NewReleaseTool(svc)
	s.AddTool(releaseTool.Definition(), releaseTool.Handle)

	ciTool := NewCIStatusTool(svc)
	s.AddTool(ciTool.Definition(), ciTool.Handle)

	// --- Register prompts ---

	explorePrompt := NewExplorePrompt()
	s.AddPrompt(explorePrompt.Definition(), explorePrompt.Handle)

	choosePrompt := NewChoosePrompt()
	s.AddPrompt(choosePrompt.Definition(), choosePrompt.Handle)

	// --- Register resources ---

	res := NewResourceHandler(registry)
	s.AddResource(res.CatalogResource(), res.HandleCatalog)
	s.AddResource(res.CoverageResource(), res.HandleCoverage)

	return s, cleanup, nil
}

// ServeStdio runs the server on stdin/stdout until EOF or a fatal
// transport error.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// serverInstructions tells the connected assistant what the server is for
// and how the tools relate to each other.
func serverInstructions() string {
	return `You have access to zk-kit-mcp, an explorer for the zk-kit ecosystem:
audited zero-knowledge primitives (Merkle trees, Poseidon, Semaphore
building blocks and more) implemented across typescript, circom,
solidity, noir and rust.

Start broad, then narrow:
- get-ecosystem-overview shows everything grouped by language and category.
- get-cross-language-coverage shows which concepts exist in which languages,
  useful when a user needs the same primitive in multiple stacks.
- search-packages filters by free text, language and category.

For a specific package:
- get-package-info gives the detail card (install command, version, repo).
  If the name does not resolve, the response lists close matches; retry
  with one of those instead of guessing.
- get-readme, get-package-dependencies and get-source-tree fetch live
  content from the source repository.
- compare-packages renders a side-by-side table; pass implementations of
  the same concept in different languages to help a user choose a stack.

For ecosystem structure:
- get-dependency-graph classifies concepts as foundational, leaf or
  independent across all languages.
- get-reverse-dependencies shows what depends on a concept before a user
  upgrades or replaces it.

For project health:
- get-download-stats (per package), get-latest-release and get-ci-status
  (per language repository).

Package names are forgiving: published names ("@zk-kit/lean-imt"),
directory names ("lean-imt"), noir identifiers ("lean_imt") and crate
names ("zk-kit-lean-imt") all resolve to the same package.`
}
