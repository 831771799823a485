package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/axd-platform/catalog"
	"github.com/axd-platform/catalog/domain/access"
	"github.com/axd-platform/catalog/infrastructure/api/middleware"
	"github.com/axd-platform/catalog/infrastructure/api/v1/dto"
)

// NotificationsRouter serves the caller's notifications.
type NotificationsRouter struct {
	client *catalog.Client
}

// NewNotificationsRouter creates a new NotificationsRouter.
func NewNotificationsRouter(client *catalog.Client) *NotificationsRouter {
	return &NotificationsRouter{client: client}
}

// Routes returns the chi router for notification endpoints.
func (r *NotificationsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Post("/{id}/read", r.MarkRead)

	return router
}

// List handles GET /api/v1/notifications.
func (r *NotificationsRouter) List(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	items, err := r.client.Notifications.List(ctx, access.PrincipalFrom(ctx).ID())
	if err != nil {
		middleware.WriteError(w, req, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.NewList(dto.NotificationsFromDomain(items)))
}

// MarkRead handles POST /api/v1/notifications/{id}/read.
func (r *NotificationsRouter) MarkRead(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	n, err := r.client.Notifications.MarkRead(ctx, chi.URLParam(req, "id"), access.PrincipalFrom(ctx).ID())
	if err != nil {
		middleware.WriteError(w, req, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.DataResponse[dto.Notification]{Data: dto.NotificationFromDomain(n)})
}
