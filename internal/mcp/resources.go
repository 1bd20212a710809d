package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zk-kit/zk-kit-mcp/pkg/catalog"
)

// Resource URIs served by the registry handler.
const (
	CatalogURI  = "zkkit://catalog"
	CoverageURI = "zkkit://coverage"
)

// ResourceHandler serves the registry-backed MCP resources.
type ResourceHandler struct {
	registry *catalog.Registry
}

func NewResourceHandler(r *catalog.Registry) *ResourceHandler {
	return &ResourceHandler{registry: r}
}

// CatalogResource describes the full-catalog JSON resource.
func (h *ResourceHandler) CatalogResource() mcp.Resource {
	return mcp.NewResource(CatalogURI, "zk-kit package catalog",
		mcp.WithResourceDescription("Every discovered zk-kit package as a JSON array."),
		mcp.WithMIMEType("application/json"),
	)
}

func (h *ResourceHandler) HandleCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	pkgs := h.registry.All()
	if pkgs == nil {
		pkgs = []catalog.Package{}
	}
	data, err := json.MarshalIndent(pkgs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding catalog: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// CoverageResource describes the coverage-matrix text resource.
func (h *ResourceHandler) CoverageResource() mcp.Resource {
	return mcp.NewResource(CoverageURI, "zk-kit cross-language coverage",
		mcp.WithResourceDescription("Concept-by-language coverage matrix as plain text."),
		mcp.WithMIMEType("text/plain"),
	)
}

func (h *ResourceHandler) HandleCoverage(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     h.registry.CrossLanguageCoverage(),
		},
	}, nil
}
