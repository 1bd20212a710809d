// Package npm provides an HTTP client for the npm registry API.
//
// # Overview
//
// This package fetches package metadata and download counts for the
// npm-published zk-kit packages (typescript, circom, and solidity all
// publish to the npm registry at https://registry.npmjs.org).
//
// # Usage
//
//	client := npm.NewClient(backend, 24 * time.Hour)
//
//	pkg, err := client.FetchPackage(ctx, "@zk-kit/lean-imt", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(pkg.Name, pkg.Version)
//	fmt.Println("Dependencies:", pkg.Dependencies)
//
// # PackageInfo
//
// [Client.FetchPackage] returns a [PackageInfo] containing:
//
//   - Name, Version: Package identity (latest version)
//   - Dependencies: Runtime dependencies from "dependencies" field
//   - Description: Package description
//   - License, Author: Package metadata
//   - Repository, HomePage: URLs for enrichment
//
// # Download Counts
//
// [Client.FetchDownloads] queries the separate downloads API
// (https://api.npmjs.org) for last-week counts.
//
// # Caching
//
// Responses are cached to reduce load on the registry. The cache TTL is set
// when creating the client. Pass refresh=true to bypass the cache.
//
// # Version Selection
//
// The client fetches the version tagged as "latest" in dist-tags.
// devDependencies, peerDependencies, and optionalDependencies are not included.
package npm
