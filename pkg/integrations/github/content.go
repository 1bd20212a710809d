package github

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zk-kit/zk-kit-mcp/pkg/cache"
	"github.com/zk-kit/zk-kit-mcp/pkg/integrations"
)

// ContentClient provides access to GitHub repository content: directory
// listings, raw files, trees, releases, and workflow runs.
//
// Responses are cached through the shared backend except workflow runs,
// which report live CI state. All methods are safe for concurrent use.
type ContentClient struct {
	*integrations.Client
	baseURL string
}

// NewContentClient creates a content client over the given cache backend.
// Pass an empty token for unauthenticated requests (lower rate limits).
func NewContentClient(backend cache.Cache, token string, cacheTTL time.Duration) *ContentClient {
	headers := map[string]string{"Accept": "application/vnd.github.v3+json"}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return &ContentClient{
		Client:  integrations.NewClient(backend, "github:", cacheTTL, headers),
		baseURL: "https://api.github.com",
	}
}

// ListContents lists files and directories at a repository path.
// The slug is the "owner/name" form; ref may be empty for the default branch.
func (c *ContentClient) ListContents(ctx context.Context, slug, path, ref string, refresh bool) ([]ContentItem, error) {
	key := cache.Key("contents", slug, path, ref)

	var items []ContentItem
	err := c.Cached(ctx, key, refresh, &items, func() error {
		var resp []apiContentResponse
		if err := c.Get(ctx, c.contentsURL(slug, path, ref), &resp); err != nil {
			if errors.Is(err, integrations.ErrNotFound) {
				return fmt.Errorf("%w: %s/%s", err, slug, path)
			}
			return err
		}
		items = make([]ContentItem, len(resp))
		for i, item := range resp {
			items[i] = ContentItem{
				Name: item.Name,
				Path: item.Path,
				Type: item.Type,
				Size: item.Size,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// FetchFileRaw retrieves the raw content of a file from a repository.
// Raw transfer avoids the base64 envelope of the contents API.
func (c *ContentClient) FetchFileRaw(ctx context.Context, slug, path, ref string, refresh bool) (string, error) {
	key := cache.Key("file", slug, path, ref)

	var content string
	err := c.Cached(ctx, key, refresh, &content, func() error {
		raw := map[string]string{"Accept": "application/vnd.github.v3.raw"}
		text, err := c.GetTextWithHeaders(ctx, c.contentsURL(slug, path, ref), raw)
		if err != nil {
			if errors.Is(err, integrations.ErrNotFound) {
				return fmt.Errorf("%w: %s/%s", err, slug, path)
			}
			return err
		}
		content = text
		return nil
	})
	if err != nil {
		return "", err
	}
	return content, nil
}

// GetTree retrieves the full recursive file tree of a repository at ref.
func (c *ContentClient) GetTree(ctx context.Context, slug, ref string, refresh bool) ([]TreeEntry, error) {
	if ref == "" {
		ref = "HEAD"
	}
	key := cache.Key("tree", slug, ref)

	var entries []TreeEntry
	err := c.Cached(ctx, key, refresh, &entries, func() error {
		url := fmt.Sprintf("%s/repos/%s/git/trees/%s?recursive=1", c.baseURL, slug, ref)

		var resp treeResponse
		if err := c.Get(ctx, url, &resp); err != nil {
			return err
		}
		entries = make([]TreeEntry, 0, len(resp.Tree))
		for _, item := range resp.Tree {
			entries = append(entries, TreeEntry{
				Path: item.Path,
				Type: item.Type,
				Size: item.Size,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// GetRepoInfo retrieves repository metadata.
func (c *ContentClient) GetRepoInfo(ctx context.Context, slug string, refresh bool) (*RepoInfo, error) {
	key := cache.Key("repo", slug)

	var info RepoInfo
	err := c.Cached(ctx, key, refresh, &info, func() error {
		var resp apiRepoResponse
		if err := c.Get(ctx, fmt.Sprintf("%s/repos/%s", c.baseURL, slug), &resp); err != nil {
			if errors.Is(err, integrations.ErrNotFound) {
				return fmt.Errorf("%w: repository %s", err, slug)
			}
			return err
		}
		info = RepoInfo{
			Name:          resp.Name,
			FullName:      resp.FullName,
			Description:   resp.Description,
			Language:      resp.Language,
			DefaultBranch: resp.DefaultBranch,
			Stars:         resp.Stars,
			Forks:         resp.Forks,
			OpenIssues:    resp.OpenIssues,
			License:       resp.License.SPDXID,
			Topics:        resp.Topics,
			Archived:      resp.Archived,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// LatestRelease retrieves the most recent published release.
// Returns [integrations.ErrNotFound] when the repository has no releases.
func (c *ContentClient) LatestRelease(ctx context.Context, slug string, refresh bool) (*Release, error) {
	key := cache.Key("release", slug)

	var release Release
	err := c.Cached(ctx, key, refresh, &release, func() error {
		url := fmt.Sprintf("%s/repos/%s/releases/latest", c.baseURL, slug)

		var resp releaseResponse
		if err := c.Get(ctx, url, &resp); err != nil {
			if errors.Is(err, integrations.ErrNotFound) {
				return fmt.Errorf("%w: no releases for %s", err, slug)
			}
			return err
		}
		release = Release{
			TagName:     resp.TagName,
			Name:        resp.Name,
			Body:        resp.Body,
			HTMLURL:     resp.HTMLURL,
			PublishedAt: resp.PublishedAt,
			Prerelease:  resp.Prerelease,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &release, nil
}

// ListWorkflowRuns retrieves recent GitHub Actions runs on a branch.
// CI state is live data, so runs are never served from the cache.
func (c *ContentClient) ListWorkflowRuns(ctx context.Context, slug, branch string, limit int) ([]WorkflowRun, error) {
	if limit <= 0 {
		limit = 10
	}
	url := fmt.Sprintf("%s/repos/%s/actions/runs?per_page=%d", c.baseURL, slug, limit)
	if branch != "" {
		url += "&branch=" + branch
	}

	var resp workflowRunsResponse
	if err := c.Get(ctx, url, &resp); err != nil {
		return nil, err
	}

	runs := make([]WorkflowRun, 0, len(resp.WorkflowRuns))
	for _, run := range resp.WorkflowRuns {
		runs = append(runs, WorkflowRun{
			Name:       run.Name,
			Branch:     run.HeadBranch,
			Event:      run.Event,
			Status:     run.Status,
			Conclusion: run.Conclusion,
			HTMLURL:    run.HTMLURL,
			CreatedAt:  run.CreatedAt,
		})
	}
	return runs, nil
}

func (c *ContentClient) contentsURL(slug, path, ref string) string {
	url := fmt.Sprintf("%s/repos/%s/contents/%s", c.baseURL, slug, path)
	if ref != "" {
		url += "?ref=" + ref
	}
	return url
}
