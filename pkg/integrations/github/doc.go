// Package github provides an HTTP client for the GitHub API.
//
// # Overview
//
// This package fetches repository content from GitHub (https://api.github.com):
// directory listings and manifest files for package discovery, plus readmes,
// file trees, releases, and workflow runs for the on-demand content tools.
//
// # Usage
//
//	client := github.NewContentClient(backend, token, time.Hour)
//
//	items, err := client.ListContents(ctx, "privacy-scaling-explorations/zk-kit", "packages", "main", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, item := range items {
//	    fmt.Println(item.Type, item.Path)
//	}
//
// # Authentication
//
// A GitHub personal access token is optional but recommended to avoid rate
// limits. Without a token, the client is limited to 60 requests/hour.
// With a token, the limit is 5000 requests/hour.
//
// # Caching
//
// Responses are cached to reduce API calls. The cache TTL is set when
// creating the client. Pass refresh=true to bypass the cache. Workflow
// runs are the exception: CI state is live data and never cached.
package github
