package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/zk-kit/zk-kit-mcp/internal/mcp"
)

// serveOptions bundles the serve command's flag values.
type serveOptions struct {
	httpAddr  string
	cacheKind string
	redisURL  string
	cacheTTL  time.Duration
	refresh   bool
}

// serveCommand creates the serve command that runs the MCP server.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server",
		Long: `Run the zk-kit MCP server.

By default the server speaks the MCP stdio transport: requests arrive on
stdin and responses leave on stdout, which is how MCP clients launch it.
With --http the server instead listens on the given address and exposes
the streamable HTTP transport at /mcp plus a /healthz endpoint.

Discovery runs once at startup. Restart the server to pick up newly
published packages, or pass --refresh to bypass cached repository data.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.httpAddr, "http", "", "serve over HTTP on this address (e.g. :8080) instead of stdio")
	cmd.Flags().StringVar(&opts.cacheKind, "cache", "memory", "cache backend: memory, file, redis, none")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", "redis://localhost:6379/0", "redis URL (with --cache redis)")
	cmd.Flags().DurationVar(&opts.cacheTTL, "cache-ttl", defaultCacheTTL, "how long discovery fetches stay cached")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached repository listings and manifests")

	return cmd
}

// runServe builds the server and blocks on the selected transport.
// All status output goes through the logger: in stdio mode stdout carries
// the protocol stream and must stay clean.
func (c *CLI) runServe(ctx context.Context, opts serveOptions) error {
	token := githubToken()
	if token == "" {
		c.Logger.Warn("GITHUB_TOKEN is not set; unauthenticated GitHub requests are heavily rate limited")
	}

	backend, err := newBackend(ctx, opts.cacheKind, opts.redisURL)
	if err != nil {
		return err
	}

	srv, cleanup, err := mcp.New(ctx, mcp.Config{
		Cache:       backend,
		GitHubToken: token,
		Logger:      c.Logger,
		Refresh:     opts.refresh,
		CacheTTL:    opts.cacheTTL,
	})
	defer cleanup()
	if err != nil {
		return err
	}

	if opts.httpAddr != "" {
		c.Logger.Info("serving MCP over HTTP", "addr", opts.httpAddr)
		return mcp.ServeHTTP(ctx, srv, opts.httpAddr, c.Logger)
	}
	c.Logger.Info("serving MCP over stdio")
	return mcp.ServeStdio(srv)
}
