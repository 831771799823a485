package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/axd-platform/catalog"
	"github.com/axd-platform/catalog/infrastructure/api/middleware"
	"github.com/axd-platform/catalog/infrastructure/api/v1/dto"
)

// RequestCenterRouter serves request categories and filed service requests.
type RequestCenterRouter struct {
	client *catalog.Client
}

// NewRequestCenterRouter creates a new RequestCenterRouter.
func NewRequestCenterRouter(client *catalog.Client) *RequestCenterRouter {
	return &RequestCenterRouter{client: client}
}

// CategoryRoutes returns the router mounted at /request-categories.
func (r *RequestCenterRouter) CategoryRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", r.Categories)
	return router
}

// ServiceRequestRoutes returns the router mounted at /service-requests.
func (r *RequestCenterRouter) ServiceRequestRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", r.ServiceRequests)
	return router
}

// Categories handles GET /api/v1/request-categories.
func (r *RequestCenterRouter) Categories(w http.ResponseWriter, req *http.Request) {
	categories, err := r.client.Requests.Categories(req.Context())
	if err != nil {
		middleware.WriteError(w, req, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.NewList(dto.CategoriesFromDomain(categories)))
}

// ServiceRequests handles GET /api/v1/service-requests.
func (r *RequestCenterRouter) ServiceRequests(w http.ResponseWriter, req *http.Request) {
	items, err := r.client.Requests.ServiceRequests(req.Context(), req.URL.Query().Get("status"))
	if err != nil {
		middleware.WriteError(w, req, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.NewList(dto.ServiceRequestsFromDomain(items)))
}
