// Package v1 provides the v1 API routes.
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

// AssetsRouter handles asset API endpoints.
type AssetsRouter struct {
	client *catalog.Client
}

// NewAssetsRouter creates a new AssetsRouter.
func NewAssetsRouter(client *catalog.Client) *AssetsRouter {
	return &AssetsRouter{client: client}
}

// Routes returns the chi router for asset endpoints.
func (r *AssetsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Get("/services", r.Services)
	router.Get("/{id}", r.Get)
	router.Get("/{id}/columns", r.Columns)
	router.Get("/{id}/lineage", r.Lineage)
	router.Get("/{id}/comments", r.Comments)
	router.Post("/{id}/comments", r.CreateComment)
	router.Get("/{id}/comments/tree", r.CommentTree)
	router.Get("/{id}/preview", r.Preview)
	router.Get("/{id}/permission-requests", r.ListPermissionRequests)
	router.Post("/{id}/permission-requests", r.CreatePermissionRequest)
	router.Get("/{id}/permissions", r.ListPermissions)

	return router
}

// List handles GET /api/v1/assets.
//
//	@Summary		List assets
//	@Description	Get assets in creation order, redacted for the caller
//	@Tags			assets
//	@Produce		json
//	@Param			service_id	query		string	false	"Only assets of this service"
//	@Success		200			{object}	dto.ListResponse[dto.Asset]
//	@Failure		500			{object}	middleware.ErrorResponse
//	@Router			/assets [get]
func (r *AssetsRouter) List(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	views, err := r.client.Assets.List(ctx, access.PrincipalFrom(ctx), req.URL.Query().Get("service_id"))
	if err != nil {
		middleware.WriteError(w, req, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.NewList(dto.AssetsFromViews(views)))
}

// Get handles GET /api/v1/assets/{id}.
//
//	@Summary		Get asset
//	@Description	Get an asset by ID, redacted for the caller
//	@Tags			assets
//	@Produce		json
//	@Param			id	path		string	true	"Asset ID"
//	@Success		200	{object}	dto.DataResponse[dto.Asset]
//	@Failure		404	{object}	middleware.ErrorResponse
//	@Router			/assets/{id} [get]
func (r *AssetsRouter) Get(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	view, err := r.client.Assets.Get(ctx, access.PrincipalFrom(ctx), chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.DataResponse[dto.Asset]{Data: dto.AssetFromView(view)})
}

// Services handles GET /api/v1/assets/services.
func (r *AssetsRouter) Services(w http.ResponseWriter, req *http.Request) {
	services, err := r.client.Assets.Services(req.Context())
	if err != nil {
		middleware.WriteError(w, req, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.NewList(dto.ServicesFromDomain(services)))
}

// Columns handles GET /api/v1/assets/{id}/columns.
//
//	@Summary		List columns
//	@Tags			assets
//	@Produce		json
//	@Param			id	path		string	true	"Asset ID"
//	@Success		200	{object}	dto.ListResponse[dto.Column]
//	@Router			/assets/{id}/columns [get]
func (r *AssetsRouter) Columns(w http.ResponseWriter, req *http.Request) {
	columns, err := r.client.Assets.Columns(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.NewList(dto.ColumnsFromDomain(columns)))
}

// Lineage handles GET /api/v1/assets/{id}/lineage.
func (r *AssetsRouter) Lineage(w http.ResponseWriter, req *http.Request) {
	edges, err := r.client.Assets.Lineage(req.Context(), access.PrincipalFrom(req.Context()), chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.NewList(dto.LineageFromDomain(edges)))
}

// Comments handles GET /api/v1/assets/{id}/comments.
func (r *AssetsRouter) Comments(w http.ResponseWriter, req *http.Request) {
	comments, err := r.client.Assets.Comments(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.NewList(dto.CommentsFromDomain(comments)))
}

// CommentTree handles GET /api/v1/assets/{id}/comments/tree.
func (r *AssetsRouter) CommentTree(w http.ResponseWriter, req *http.Request) {
	threads, err := r.client.Assets.CommentThreads(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.NewList(dto.ThreadsFromDomain(threads)))
}

// CreateComment handles POST /api/v1/assets/{id}/comments.
//
//	@Summary		Add comment
//	@Description	Post a question, answer or reply on an asset
//	@Tags			assets
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Asset ID"
//	@Param			body	body		dto.CommentCreateRequest	true	"Comment"
//	@Success		201		{object}	dto.DataResponse[dto.Comment]
//	@Failure		400		{object}	middleware.ErrorResponse
//	@Failure		404		{object}	middleware.ErrorResponse
//	@Security		APIKeyAuth
//	@Router			/assets/{id}/comments [post]
func (r *AssetsRouter) CreateComment(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var body dto.CommentCreateRequest
	if err := decodeBody(req, &body); err != nil {
		middleware.WriteError(w, req, err)
		return
	}

	comment, err := r.client.Comments.Create(ctx, service.CommentParams{
		AssetID:  chi.URLParam(req, "id"),
		Author:   access.PrincipalFrom(ctx),
		UserName: body.UserName,
		Content:  body.Content,
		ParentID: body.ParentID,
		IsAnswer: body.IsAnswer,
	})
	if err != nil {
		middleware.WriteError(w, req, err)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, dto.DataResponse[dto.Comment]{Data: dto.CommentFromDomain(comment)})
}

// Preview handles GET /api/v1/assets/{id}/preview.
//
//	@Summary		Preview sample rows
//	@Tags			assets
//	@Produce		json
//	@Param			id		path		string	true	"Asset ID"
//	@Param			limit	query		int		false	"Maximum rows (default and cap: PREVIEW_LIMIT)"
//	@Success		200		{object}	dto.ListResponse[map[string]any]
//	@Router			/assets/{id}/preview [get]
func (r *AssetsRouter) Preview(w http.ResponseWriter, req *http.Request) {
	limit, err := queryInt(req, "limit", 0)
	if err != nil {
		middleware.WriteError(w, req, err)
		return
	}

	rows, err := r.client.Assets.Preview(req.Context(), chi.URLParam(req, "id"), limit)
	if err != nil {
		middleware.WriteError(w, req, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.NewList(dto.PreviewRows(rows)))
}

// ListPermissionRequests handles GET /api/v1/assets/{id}/permission-requests.
func (r *AssetsRouter) ListPermissionRequests(w http.ResponseWriter, req *http.Request) {
	requests, err := r.client.Access.Requests(req.Context(), service.RequestFilter{
		AssetID: chi.URLParam(req, "id"),
		Status:  req.URL.Query().Get("status"),
	})
	if err != nil {
		middleware.WriteError(w, req, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.NewList(dto.PermissionRequestsFromDomain(requests)))
}

// CreatePermissionRequest handles POST /api/v1/assets/{id}/permission-requests.
//
//	@Summary		Request access
//	@Description	File a pending request for access to an asset
//	@Tags			permissions
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"Asset ID"
//	@Param			body	body		dto.PermissionRequestCreateRequest	true	"Request"
//	@Success		201		{object}	dto.DataResponse[dto.PermissionRequest]
//	@Failure		400		{object}	middleware.ErrorResponse
//	@Failure		404		{object}	middleware.ErrorResponse
//	@Failure		409		{object}	middleware.ErrorResponse
//	@Security		APIKeyAuth
//	@Router			/assets/{id}/permission-requests [post]
func (r *AssetsRouter) CreatePermissionRequest(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var body dto.PermissionRequestCreateRequest
	if err := decodeBody(req, &body); err != nil {
		middleware.WriteError(w, req, err)
		return
	}

	requester := access.PrincipalFrom(ctx)
	if requester.Known() && (body.RequesterName != "" || body.RequesterEmail != "") {
		name, email := requester.Name(), requester.Email()
		if body.RequesterName != "" {
			name = body.RequesterName
		}
		if body.RequesterEmail != "" {
			email = body.RequesterEmail
		}
		requester = access.NewPrincipal(requester.ID(), name, email)
	}

	request, err := r.client.Access.Request(ctx, service.PermissionRequestParams{
		AssetID:   chi.URLParam(req, "id"),
		Requester: requester,
		Level:     body.RequestedLevel,
		Purpose:   body.PurposeCategory,
		Reason:    body.Reason,
		Duration:  body.Duration,
	})
	if err != nil {
		middleware.WriteError(w, req, err)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, dto.DataResponse[dto.PermissionRequest]{Data: dto.PermissionRequestFromDomain(request)})
}

// ListPermissions handles GET /api/v1/assets/{id}/permissions.
func (r *AssetsRouter) ListPermissions(w http.ResponseWriter, req *http.Request) {
	grants, err := r.client.Access.Grants(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.NewList(dto.PermissionsFromDomain(grants, r.client.Access.Now())))
}
