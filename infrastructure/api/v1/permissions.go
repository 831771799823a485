package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/axd-platform/catalog"
	"github.com/axd-platform/catalog/application/service"
	"github.com/axd-platform/catalog/domain/access"
	"github.com/axd-platform/catalog/infrastructure/api/middleware"
	"github.com/axd-platform/catalog/infrastructure/api/v1/dto"
)

// PermissionRequestsRouter handles the permission request workflow.
type PermissionRequestsRouter struct {
	client *catalog.Client
}

// NewPermissionRequestsRouter creates a new PermissionRequestsRouter.
func NewPermissionRequestsRouter(client *catalog.Client) *PermissionRequestsRouter {
	return &PermissionRequestsRouter{client: client}
}

// Routes returns the chi router for permission request endpoints.
func (r *PermissionRequestsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Post("/{id}/approve", r.Approve)
	router.Post("/{id}/reject", r.Reject)
	router.Post("/{id}/cancel", r.Cancel)

	return router
}

// List handles GET /api/v1/permission-requests.
//
//	@Summary		List permission requests
//	@Description	Admin queue and "my requests" view, newest first
//	@Tags			permissions
//	@Produce		json
//	@Param			status			query		string	false	"pending, approved, rejected or cancelled"
//	@Param			requester_id	query		string	false	"Only requests filed by this user"
//	@Success		200				{object}	dto.ListResponse[dto.PermissionRequest]
//	@Failure		400				{object}	middleware.ErrorResponse
//	@Router			/permission-requests [get]
func (r *PermissionRequestsRouter) List(w http.ResponseWriter, req *http.Request) {
	query := req.URL.Query()

	requests, err := r.client.Access.Requests(req.Context(), service.RequestFilter{
		RequesterID: query.Get("requester_id"),
		Status:      query.Get("status"),
	})
	if err != nil {
		middleware.WriteError(w, req, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.NewList(dto.PermissionRequestsFromDomain(requests)))
}

// Approve handles POST /api/v1/permission-requests/{id}/approve.
//
//	@Summary		Approve request
//	@Description	Approve a pending request and grant access for the requested duration
//	@Tags			permissions
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Permission request ID"
//	@Param			body	body		dto.ReviewRequest	false	"Review comment"
//	@Success		200		{object}	dto.DataResponse[dto.ApprovalResponse]
//	@Failure		404		{object}	middleware.ErrorResponse
//	@Failure		409		{object}	middleware.ErrorResponse
//	@Security		APIKeyAuth
//	@Router			/permission-requests/{id}/approve [post]
func (r *PermissionRequestsRouter) Approve(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var body dto.ReviewRequest
	if err := decodeBody(req, &body); err != nil {
		middleware.WriteError(w, req, err)
		return
	}

	request, grant, err := r.client.Access.Approve(ctx, chi.URLParam(req, "id"), access.PrincipalFrom(ctx), body.Comment)
	if err != nil {
		middleware.WriteError(w, req, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.DataResponse[dto.ApprovalResponse]{Data: dto.ApprovalResponse{
		Request:    dto.PermissionRequestFromDomain(request),
		Permission: dto.PermissionFromDomain(grant, r.client.Access.Now()),
	}})
}

// Reject handles POST /api/v1/permission-requests/{id}/reject.
func (r *PermissionRequestsRouter) Reject(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var body dto.ReviewRequest
	if err := decodeBody(req, &body); err != nil {
		middleware.WriteError(w, req, err)
		return
	}

	request, err := r.client.Access.Reject(ctx, chi.URLParam(req, "id"), access.PrincipalFrom(ctx), body.Comment)
	if err != nil {
		middleware.WriteError(w, req, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.DataResponse[dto.PermissionRequest]{Data: dto.PermissionRequestFromDomain(request)})
}

// Cancel handles POST /api/v1/permission-requests/{id}/cancel.
func (r *PermissionRequestsRouter) Cancel(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	request, err := r.client.Access.Cancel(ctx, chi.URLParam(req, "id"), access.PrincipalFrom(ctx))
	if err != nil {
		middleware.WriteError(w, req, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.DataResponse[dto.PermissionRequest]{Data: dto.PermissionRequestFromDomain(request)})
}

// PermissionsRouter handles grant endpoints.
type PermissionsRouter struct {
	client *catalog.Client
}

// NewPermissionsRouter creates a new PermissionsRouter.
func NewPermissionsRouter(client *catalog.Client) *PermissionsRouter {
	return &PermissionsRouter{client: client}
}

// Routes returns the chi router for grant endpoints.
func (r *PermissionsRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/{id}/revoke", r.Revoke)
	return router
}

// Revoke handles POST /api/v1/permissions/{id}/revoke.
//
//	@Summary		Revoke permission
//	@Tags			permissions
//	@Produce		json
//	@Param			id	path		string	true	"Permission ID"
//	@Success		200	{object}	dto.DataResponse[dto.Permission]
//	@Failure		404	{object}	middleware.ErrorResponse
//	@Failure		409	{object}	middleware.ErrorResponse
//	@Security		APIKeyAuth
//	@Router			/permissions/{id}/revoke [post]
func (r *PermissionsRouter) Revoke(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	grant, err := r.client.Access.Revoke(ctx, chi.URLParam(req, "id"), access.PrincipalFrom(ctx))
	if err != nil {
		middleware.WriteError(w, req, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.DataResponse[dto.Permission]{Data: dto.PermissionFromDomain(grant, r.client.Access.Now())})
}
