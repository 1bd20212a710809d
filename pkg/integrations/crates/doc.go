// Package crates provides an HTTP client for the crates.io API.
//
// # Overview
//
// This package fetches crate metadata from crates.io (https://crates.io),
// the Rust community's package registry. The zk-kit Rust packages are
// published there under zk-kit-prefixed names (zk-kit-smt, zk-kit-imt).
//
// # Usage
//
//	client := crates.NewClient(cache.NewMemory(), 24*time.Hour)
//
//	info, err := client.FetchCrate(ctx, "zk-kit-smt", false)
//	if err != nil {
//		// handle error
//	}
//	fmt.Println(info.Version, info.Downloads)
//
// # Dependencies
//
// FetchCrate makes a secondary API call to resolve the crate's normal
// (non-dev, non-optional) dependencies. If that call fails, the crate
// metadata is still returned with an empty dependency list.
//
// # Caching
//
// Responses are cached under the "crates:" key prefix for the TTL given at
// construction. Pass refresh=true to bypass the cache for a single call.
//
// # User-Agent
//
// crates.io requires a User-Agent header identifying the client. This
// package sets one automatically on every request.
package crates
