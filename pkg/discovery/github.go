package discovery

import (
	"context"
	"path"

	"github.com/zk-kit/zk-kit-mcp/pkg/catalog"
	"github.com/zk-kit/zk-kit-mcp/pkg/integrations/github"
)

// ContentAPI is the subset of the GitHub content client a scan needs.
type ContentAPI interface {
	ListContents(ctx context.Context, slug, path, ref string, refresh bool) ([]github.ContentItem, error)
	FetchFileRaw(ctx context.Context, slug, path, ref string, refresh bool) (string, error)
}

// GitHubSource reads package directories and manifests from the zk-kit
// repositories via the GitHub contents API.
type GitHubSource struct {
	API     ContentAPI
	Refresh bool // Bypass cached responses
}

// NewGitHubSource creates a source backed by the given content client.
func NewGitHubSource(client *github.ContentClient, refresh bool) *GitHubSource {
	return &GitHubSource{API: client, Refresh: refresh}
}

// ListPackageDirs lists the directory entries under the repository's
// packages path. Plain files at that level are ignored.
func (g *GitHubSource) ListPackageDirs(ctx context.Context, cfg catalog.RepoConfig) ([]string, error) {
	items, err := g.API.ListContents(ctx, cfg.Slug, cfg.PackagesPath, cfg.Branch, g.Refresh)
	if err != nil {
		return nil, err
	}

	var dirs []string
	for _, item := range items {
		if item.Type == "dir" {
			dirs = append(dirs, item.Name)
		}
	}
	return dirs, nil
}

// FetchManifest fetches one package's manifest file from the repository.
func (g *GitHubSource) FetchManifest(ctx context.Context, cfg catalog.RepoConfig, dirName, filename string) ([]byte, error) {
	p := path.Join(cfg.PackagesPath, dirName, filename)
	content, err := g.API.FetchFileRaw(ctx, cfg.Slug, p, cfg.Branch, g.Refresh)
	if err != nil {
		return nil, err
	}
	return []byte(content), nil
}
