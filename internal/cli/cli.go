// Package cli implements the zk-kit-mcp command-line interface.
//
// This package provides the serve command that runs the MCP server over
// stdio or HTTP, plus local commands for discovering, searching and
// inspecting the zk-kit package ecosystem without an MCP client. The CLI
// is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - serve: Run the MCP server (stdio by default, HTTP with --http)
//   - discover: Scan the zk-kit repositories and list discovered packages
//   - search, info, compare: Query the package catalog
//   - overview, coverage, graph: Ecosystem-level reports
//   - browse: Interactive package browser
//   - cache: Manage the local fetch cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Logs go to
// stderr so that stdout stays clean for command output and, in serve's
// stdio mode, for the protocol stream.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/zk-kit/zk-kit-mcp/pkg/buildinfo"
	"github.com/zk-kit/zk-kit-mcp/pkg/cache"
	"github.com/zk-kit/zk-kit-mcp/pkg/catalog"
	"github.com/zk-kit/zk-kit-mcp/pkg/discovery"
	"github.com/zk-kit/zk-kit-mcp/pkg/integrations/github"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "zk-kit-mcp"

	// defaultCacheTTL is how long discovery fetches stay cached between
	// CLI invocations.
	defaultCacheTTL = 30 * time.Minute
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "MCP server and explorer for the zk-kit package ecosystem",
		Long:         `zk-kit-mcp discovers the zk-kit packages published across the TypeScript, Circom, Solidity, Noir and Rust repositories and exposes them to AI assistants over the Model Context Protocol. The same catalog is available directly from the command line.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.SetLogLevel(log.DebugLevel)
			}
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// Register all subcommands
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.discoverCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.overviewCommand())
	root.AddCommand(c.coverageCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Registry Loading
// =============================================================================

// registryFlags are the discovery flags shared by every command that needs
// a loaded catalog.
type registryFlags struct {
	cacheKind string
	redisURL  string
	cacheTTL  time.Duration
	refresh   bool
}

// addRegistryFlags registers the shared discovery flags on cmd.
func addRegistryFlags(cmd *cobra.Command, f *registryFlags) {
	cmd.Flags().StringVar(&f.cacheKind, "cache", "file", "cache backend: file, memory, redis, none")
	cmd.Flags().StringVar(&f.redisURL, "redis-url", "redis://localhost:6379/0", "redis URL (with --cache redis)")
	cmd.Flags().DurationVar(&f.cacheTTL, "cache-ttl", defaultCacheTTL, "how long discovery fetches stay cached")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "bypass cached repository listings and manifests")
}

// loadRegistry scans the zk-kit repositories and returns a populated
// registry. The returned cleanup closes the cache backend and is always
// safe to call.
func (c *CLI) loadRegistry(ctx context.Context, f *registryFlags) (*catalog.Registry, func(), error) {
	backend, err := newBackend(ctx, f.cacheKind, f.redisURL)
	if err != nil {
		return nil, func() {}, err
	}
	cleanup := func() {
		if err := backend.Close(); err != nil {
			c.Logger.Warn("cache close failed", "error", err)
		}
	}

	client := github.NewContentClient(backend, githubToken(), f.cacheTTL)
	scanner := discovery.NewScanner(discovery.NewGitHubSource(client, f.refresh), c.Logger)

	spinner := newSpinnerWithContext(ctx, "Discovering packages...")
	spinner.Start()
	pkgs := scanner.Scan(ctx)
	spinner.Stop()

	if err := ctx.Err(); err != nil {
		return nil, cleanup, err
	}
	if len(pkgs) == 0 {
		return nil, cleanup, fmt.Errorf("discovery produced no packages (check network access and GITHUB_TOKEN)")
	}

	reg := catalog.NewRegistry()
	reg.Load(pkgs)
	return reg, cleanup, nil
}

// newBackend constructs the cache backend named by kind.
func newBackend(ctx context.Context, kind, redisURL string) (cache.Cache, error) {
	switch kind {
	case "memory":
		return cache.NewMemory(), nil
	case "none":
		return cache.NewNull(), nil
	case "redis":
		return cache.NewRedis(ctx, redisURL)
	case "file", "":
		dir, err := cacheDir()
		if err != nil {
			return cache.NewMemory(), nil
		}
		return cache.NewFile(dir)
	default:
		return nil, fmt.Errorf("unknown cache backend %q (expected file, memory, redis, or none)", kind)
	}
}

// githubToken returns the GitHub API token from the environment, if set.
func githubToken() string {
	return os.Getenv("GITHUB_TOKEN")
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/zk-kit-mcp/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
