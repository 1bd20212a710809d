// Package integrations provides HTTP clients for the external APIs the
// server fetches on-demand content from.
//
// # Overview
//
// This package contains low-level API clients, one subpackage per service:
//
//   - [github]: GitHub API for repository content, trees, releases, and CI runs
//   - [npm]: npm registry and download counts for the npm-published packages
//   - [crates]: crates.io metadata for the Rust crates
//
// # Client Pattern
//
// All service clients follow a consistent pattern:
//
//	client := npm.NewClient(backend, time.Hour)
//	pkg, err := client.FetchPackage(ctx, "@zk-kit/lean-imt", false) // false = use cache
//
// Clients handle:
//   - HTTP requests with retry and timeout
//   - Response caching (pluggable backend, configurable TTL)
//   - API-specific parsing and normalization
//
// # Shared Infrastructure
//
// The [Client] type provides shared HTTP functionality used by all service
// clients, including HTTP response caching via [cache.Cache]. Status codes
// map onto [ErrNotFound] for 404 and retryable [ErrNetwork] wrappers for
// transport failures and 5xx responses.
//
// [github]: github.com/zk-kit/zk-kit-mcp/pkg/integrations/github
// [npm]: github.com/zk-kit/zk-kit-mcp/pkg/integrations/npm
// [crates]: github.com/zk-kit/zk-kit-mcp/pkg/integrations/crates
// [cache.Cache]: github.com/zk-kit/zk-kit-mcp/pkg/cache.Cache
package integrations
