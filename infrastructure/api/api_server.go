package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/axd-platform/catalog"
	apimiddleware "github.com/axd-platform/catalog/infrastructure/api/middleware"
	v1 "github.com/axd-platform/catalog/infrastructure/api/v1"
	"github.com/axd-platform/catalog/infrastructure/api/v1/dto"
	"github.com/axd-platform/catalog/internal/config"
	mcpinternal "github.com/axd-platform/catalog/internal/mcp"
)

// mcpVersion is the version reported by the MCP endpoint.
const mcpVersion = "1.0.0"

// APIServer provides an HTTP API backed by a catalog Client.
type APIServer struct {
	client *catalog.Client
	cfg    config.AppConfig
	server *Server
	router chi.Router
	logger zerolog.Logger
}

// NewAPIServer creates a new APIServer wired to the given Client.
// Mutating endpoints under /api/v1 require a key from cfg.APIKeys() when any
// are configured; reads and health checks stay open.
func NewAPIServer(client *catalog.Client, cfg config.AppConfig) *APIServer {
	return &APIServer{
		client: client,
		cfg:    cfg,
		logger: client.Logger(),
	}
}

// mountRoutes wires the health checks and the v1 API onto router.
func (a *APIServer) mountRoutes(router chi.Router) {
	c := a.client

	router.Use(apimiddleware.CorrelationID)
	router.Use(apimiddleware.Logging(a.logger))
	router.Use(apimiddleware.CORS(a.cfg.CORSAllowedOrigins(), a.cfg.PrincipalHeader()))

	router.Get("/health", a.health)
	router.Get("/healthz", a.health)

	assets := v1.NewAssetsRouter(c)
	admin := v1.NewAdminRouter(c)
	center := v1.NewRequestCenterRouter(c)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(apimiddleware.Deadline(a.cfg.RequestTimeout()))
		r.Use(apimiddleware.Principal(a.cfg.PrincipalHeader()))
		r.Use(apimiddleware.WriteProtect(apimiddleware.NewAuthConfigWithKeys(a.cfg.APIKeys())))
		r.Use(apimiddleware.UnitOfWork(c.Database()))

		r.Mount("/assets", assets.Routes())
		r.Get("/services", assets.Services)
		r.Mount("/permission-requests", v1.NewPermissionRequestsRouter(c).Routes())
		r.Mount("/permissions", v1.NewPermissionsRouter(c).Routes())
		r.Mount("/notifications", v1.NewNotificationsRouter(c).Routes())
		r.Mount("/request-categories", center.CategoryRoutes())
		r.Mount("/service-requests", center.ServiceRequestRoutes())
		r.Mount("/admin", admin.Routes())
		r.Mount("/system", admin.SystemRoutes())
	})

	// MCP streams responses and keeps its own sessions: no timeout, no unit of work.
	mcpSrv := mcpinternal.NewServer(c.Assets, mcpVersion, a.logger)
	router.Group(func(r chi.Router) {
		r.Use(apimiddleware.Principal(a.cfg.PrincipalHeader()))
		r.Mount("/mcp", server.NewStreamableHTTPServer(mcpSrv.MCPServer()))
	})
}

func (a *APIServer) health(w http.ResponseWriter, _ *http.Request) {
	apimiddleware.WriteJSON(w, http.StatusOK, dto.Health{Status: "healthy"})
}

// ListenAndServe starts the HTTP server on the configured address.
func (a *APIServer) ListenAndServe() error {
	server := NewServer(a.cfg.Addr(), a.logger)
	a.server = &server
	a.mountRoutes(server.Router())
	return server.Start()
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// Handler returns the fully routed API as an http.Handler for use with
// custom servers and tests.
func (a *APIServer) Handler() http.Handler {
	if a.router == nil {
		server := NewServer(a.cfg.Addr(), a.logger)
		a.router = server.Router()
		a.mountRoutes(a.router)
	}
	return a.router
}
