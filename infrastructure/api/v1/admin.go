package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/axd-platform/catalog"
	"github.com/axd-platform/catalog/infrastructure/api/middleware"
	"github.com/axd-platform/catalog/infrastructure/api/v1/dto"
)

// AdminRouter serves the admin dashboard and maintenance endpoints.
type AdminRouter struct {
	client *catalog.Client
}

// NewAdminRouter creates a new AdminRouter.
func NewAdminRouter(client *catalog.Client) *AdminRouter {
	return &AdminRouter{client: client}
}

// Routes returns the router mounted at /admin.
func (r *AdminRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/stats", r.Stats)
	return router
}

// SystemRoutes returns the router mounted at /system.
func (r *AdminRouter) SystemRoutes() chi.Router {
	router := chi.NewRouter()
	router.Post("/init-sample-data", r.InitSampleData)
	return router
}

// Stats handles GET /api/v1/admin/stats.
//
//	@Summary		Dashboard statistics
//	@Tags			admin
//	@Produce		json
//	@Success		200	{object}	dto.Stats
//	@Router			/admin/stats [get]
func (r *AdminRouter) Stats(w http.ResponseWriter, req *http.Request) {
	stats, err := r.client.Dashboard.Stats(req.Context())
	if err != nil {
		middleware.WriteError(w, req, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.StatsFromDomain(stats))
}

// InitSampleData handles POST /api/v1/system/init-sample-data.
//
//	@Summary		Load sample data
//	@Description	Drop every catalog table and load the bundled sample catalog
//	@Tags			admin
//	@Produce		json
//	@Success		200	{object}	dto.SeedResponse
//	@Failure		500	{object}	middleware.ErrorResponse
//	@Security		APIKeyAuth
//	@Router			/system/init-sample-data [post]
func (r *AdminRouter) InitSampleData(w http.ResponseWriter, req *http.Request) {
	result, err := r.client.Bootstrap.Seed(req.Context())
	if err != nil {
		middleware.WriteError(w, req, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.SeedResponseFromDomain(result))
}
