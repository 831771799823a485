// Package mcp exposes read-only catalog tools over the Model Context Protocol.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/axd-platform/catalog/domain/access"
	"github.com/axd-platform/catalog/domain/asset"
	"github.com/axd-platform/catalog/internal/database"
)

// AssetReader provides the catalog reads the tools expose.
type AssetReader interface {
	List(ctx context.Context, principal access.Principal, serviceID string) ([]access.View, error)
	Get(ctx context.Context, principal access.Principal, id string) (access.View, error)
	Services(ctx context.Context) ([]asset.Service, error)
	Columns(ctx context.Context, assetID string) ([]asset.Column, error)
	Lineage(ctx context.Context, principal access.Principal, assetID string) ([]asset.Lineage, error)
}

// Server wraps the MCP server with catalog tools.
type Server struct {
	mcpServer *server.MCPServer
	assets    AssetReader
	fallback  access.Principal
	logger    zerolog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithPrincipal sets the principal used when the request context carries
// none, as on stdio.
func WithPrincipal(p access.Principal) Option {
	return func(s *Server) { s.fallback = p }
}

// NewServer creates a new MCP server over assets.
func NewServer(assets AssetReader, version string, logger zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		assets:   assets,
		fallback: access.Anonymous(),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	mcpServer := server.NewMCPServer(
		"axd-catalog",
		version,
		server.WithToolCapabilities(true),
	)
	s.registerTools(mcpServer)

	s.mcpServer = mcpServer
	return s
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(mcp.NewTool("list_services",
		mcp.WithDescription("List the services that group data assets"),
	), s.handleListServices)

	mcpServer.AddTool(mcp.NewTool("list_assets",
		mcp.WithDescription("List data assets. Names of sensitive assets are masked unless the caller holds an active permission."),
		mcp.WithString("service_id",
			mcp.Description("Only list assets of this service"),
		),
	), s.handleListAssets)

	mcpServer.AddTool(mcp.NewTool("get_asset",
		mcp.WithDescription("Get one data asset by its ID"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The asset ID"),
		),
	), s.handleGetAsset)

	mcpServer.AddTool(mcp.NewTool("get_columns",
		mcp.WithDescription("Get the columns of a data asset in ordinal order"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The asset ID"),
		),
	), s.handleGetColumns)

	mcpServer.AddTool(mcp.NewTool("get_lineage",
		mcp.WithDescription("Get the lineage edges that start or end at a data asset"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The asset ID"),
		),
	), s.handleGetLineage)
}

func (s *Server) principal(ctx context.Context) access.Principal {
	if p := access.PrincipalFrom(ctx); p.Known() {
		return p
	}
	return s.fallback
}

type assetResult struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Database         string   `json:"database_name"`
	Schema           string   `json:"schema_name"`
	ServiceID        string   `json:"service_id,omitempty"`
	Owner            string   `json:"owner_name"`
	Tags             []string `json:"tags"`
	SensitivityLevel string   `json:"sensitivity_level"`
	IsMasked         bool     `json:"isMasked"`
	HasPermission    bool     `json:"hasPermission"`
}

func toAssetResult(v access.View) assetResult {
	a := v.Asset()
	return assetResult{
		ID:               a.ID(),
		Name:             a.Name(),
		Description:      a.Description(),
		Database:         a.DatabaseName(),
		Schema:           a.SchemaName(),
		ServiceID:        a.ServiceID(),
		Owner:            a.Owner().Name(),
		Tags:             a.Tags(),
		SensitivityLevel: string(a.Sensitivity()),
		IsMasked:         v.IsMasked(),
		HasPermission:    v.HasPermission(),
	}
}

func (s *Server) handleListServices(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	services, err := s.assets.Services(ctx)
	if err != nil {
		return s.toolError("list services", err), nil
	}

	type serviceResult struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	results := make([]serviceResult, len(services))
	for i, svc := range services {
		results[i] = serviceResult{ID: svc.ID(), Name: svc.Name(), Description: svc.Description()}
	}
	return jsonResult(results)
}

func (s *Server) handleListAssets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	views, err := s.assets.List(ctx, s.principal(ctx), request.GetString("service_id", ""))
	if err != nil {
		return s.toolError("list assets", err), nil
	}

	results := make([]assetResult, len(views))
	for i, v := range views {
		results[i] = toAssetResult(v)
	}
	return jsonResult(results)
}

func (s *Server) handleGetAsset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil
	}

	view, err := s.assets.Get(ctx, s.principal(ctx), id)
	if err != nil {
		return s.toolError("get asset", err), nil
	}
	return jsonResult(toAssetResult(view))
}

func (s *Server) handleGetColumns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil
	}

	columns, err := s.assets.Columns(ctx, id)
	if err != nil {
		return s.toolError("get columns", err), nil
	}

	type columnResult struct {
		Name        string `json:"column_name"`
		DataType    string `json:"data_type"`
		Description string `json:"description"`
		Nullable    bool   `json:"is_nullable"`
		Position    int    `json:"ordinal_position"`
	}
	results := make([]columnResult, len(columns))
	for i, c := range columns {
		results[i] = columnResult{
			Name:        c.Name(),
			DataType:    c.DataType(),
			Description: c.Description(),
			Nullable:    c.Nullable(),
			Position:    c.OrdinalPosition(),
		}
	}
	return jsonResult(results)
}

func (s *Server) handleGetLineage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil
	}

	edges, err := s.assets.Lineage(ctx, s.principal(ctx), id)
	if err != nil {
		return s.toolError("get lineage", err), nil
	}

	type lineageResult struct {
		Source         string `json:"source_name"`
		Target         string `json:"target_name"`
		Transformation string `json:"transformation_type"`
		Summary        string `json:"etl_logic_summary"`
	}
	results := make([]lineageResult, len(edges))
	for i, e := range edges {
		results[i] = lineageResult{
			Source:         e.Source().Name(),
			Target:         e.Target().Name(),
			Transformation: e.Transformation(),
			Summary:        e.Summary(),
		}
	}
	return jsonResult(results)
}

// toolError reports a failed read to the client. Missing assets are expected
// and are not logged.
func (s *Server) toolError(action string, err error) *mcp.CallToolResult {
	if !errors.Is(err, database.ErrNotFound) {
		s.logger.Error().Err(err).Str("action", action).Msg("mcp tool failed")
	}
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", action, err))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio runs the MCP server on stdio.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
