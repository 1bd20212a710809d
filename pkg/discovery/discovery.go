// Package discovery scans the zk-kit source repositories and assembles
// the package catalog.
//
// A scan walks every configured repository concurrently, lists the package
// subdirectories, and fetches and parses one manifest per subdirectory.
// Failures are isolated at two levels: a repository whose listing fails is
// dropped whole, and a package whose manifest cannot be fetched or parsed
// is dropped alone. A scan therefore never returns an error; it returns
// whatever packages it could assemble.
//
// # Usage
//
//	source := discovery.NewGitHubSource(client, false)
//	scanner := discovery.NewScanner(source, logger)
//	packages := scanner.Scan(ctx)
//	registry.Load(packages)
package discovery

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/zk-kit/zk-kit-mcp/pkg/catalog"
	"github.com/zk-kit/zk-kit-mcp/pkg/manifest"
	"github.com/zk-kit/zk-kit-mcp/pkg/observability"
)

// manifestConcurrency caps parallel manifest fetches within one repository.
const manifestConcurrency = 10

// Source abstracts the repository backend a scan reads from.
type Source interface {
	// ListPackageDirs returns the package subdirectory names under the
	// repository's packages path.
	ListPackageDirs(ctx context.Context, cfg catalog.RepoConfig) ([]string, error)

	// FetchManifest returns the raw manifest bytes for one package
	// subdirectory.
	FetchManifest(ctx context.Context, cfg catalog.RepoConfig, dirName, filename string) ([]byte, error)
}

// Scanner discovers packages across the configured repositories.
//
// The Scanner is stateless except for its source and logger. Multiple
// goroutines can safely share one Scanner.
type Scanner struct {
	Source Source
	Logger *log.Logger
}

// NewScanner creates a scanner over the given source.
// If logger is nil, the default logger is used.
func NewScanner(src Source, logger *log.Logger) *Scanner {
	if logger == nil {
		logger = log.Default()
	}
	return &Scanner{Source: src, Logger: logger}
}

// Scan discovers packages in all configured repositories. The result is
// sorted by language precedence, then by package name.
func (s *Scanner) Scan(ctx context.Context) []catalog.Package {
	return s.ScanRepos(ctx, catalog.Repos)
}

// ScanRepos discovers packages in the given repositories, one goroutine
// per repository. Repositories that fail contribute no packages.
func (s *Scanner) ScanRepos(ctx context.Context, repos []catalog.RepoConfig) []catalog.Package {
	results := make([][]catalog.Package, len(repos))
	var wg sync.WaitGroup

	for i, cfg := range repos {
		wg.Add(1)
		go func(idx int, cfg catalog.RepoConfig) {
			defer wg.Done()
			results[idx] = s.scanRepo(ctx, cfg)
		}(i, cfg)
	}

	wg.Wait()

	pkgs := make([]catalog.Package, 0)
	for _, r := range results {
		pkgs = append(pkgs, r...)
	}
	catalog.SortPackages(pkgs)
	return pkgs
}

// scanRepo lists one repository's package directories and fans out the
// manifest fetches. Returns nil when the listing fails.
func (s *Scanner) scanRepo(ctx context.Context, cfg catalog.RepoConfig) []catalog.Package {
	hooks := observability.Discovery()
	hooks.OnRepoStart(ctx, string(cfg.Language), cfg.Slug)
	start := time.Now()

	filename, ok := manifest.Filename(cfg.Language)
	if !ok {
		err := fmt.Errorf("no manifest filename for language %q", cfg.Language)
		s.Logger.Warn("skipping repository", "repo", cfg.Slug, "error", err)
		hooks.OnRepoComplete(ctx, string(cfg.Language), cfg.Slug, 0, time.Since(start), err)
		return nil
	}

	dirs, err := s.Source.ListPackageDirs(ctx, cfg)
	if err != nil {
		s.Logger.Warn("repository listing failed",
			"language", cfg.Language,
			"repo", cfg.Slug,
			"error", err)
		hooks.OnRepoComplete(ctx, string(cfg.Language), cfg.Slug, 0, time.Since(start), err)
		return nil
	}

	// Parallel manifest fetches with a bounded worker pool. Each slot
	// belongs to one directory so no ordering is lost.
	results := make([]*catalog.Package, len(dirs))
	var wg sync.WaitGroup
	sem := make(chan struct{}, manifestConcurrency)

	for i, dir := range dirs {
		wg.Add(1)
		go func(idx int, dirName string) {
			defer wg.Done()
			sem <- struct{}{}        // Acquire
			defer func() { <-sem }() // Release

			manifestStart := time.Now()
			pkg, err := s.scanPackage(ctx, cfg, dirName, filename)
			hooks.OnManifestComplete(ctx, string(cfg.Language), dirName, time.Since(manifestStart), err)
			if err != nil {
				s.Logger.Warn("skipping package",
					"language", cfg.Language,
					"dir", dirName,
					"error", err)
				return
			}
			results[idx] = &pkg
		}(i, dir)
	}

	wg.Wait()

	pkgs := make([]catalog.Package, 0, len(dirs))
	for _, p := range results {
		if p != nil {
			pkgs = append(pkgs, *p)
		}
	}

	hooks.OnRepoComplete(ctx, string(cfg.Language), cfg.Slug, len(pkgs), time.Since(start), nil)
	s.Logger.Info("scanned repository",
		"language", cfg.Language,
		"repo", cfg.Slug,
		"packages", len(pkgs),
		"duration", time.Since(start))
	return pkgs
}

// scanPackage fetches and parses one package's manifest and assembles the
// normalized record.
func (s *Scanner) scanPackage(ctx context.Context, cfg catalog.RepoConfig, dirName, filename string) (catalog.Package, error) {
	data, err := s.Source.FetchManifest(ctx, cfg, dirName, filename)
	if err != nil {
		return catalog.Package{}, fmt.Errorf("fetch %s: %w", filename, err)
	}

	info, err := manifest.Parse(cfg.Language, data)
	if err != nil {
		return catalog.Package{}, fmt.Errorf("parse %s: %w", filename, err)
	}

	return catalog.NewPackage(cfg, dirName, info.Description, info.Version, info.Dependencies), nil
}
