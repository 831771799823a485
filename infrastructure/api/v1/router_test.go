package v1_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axd-platform/catalog"
	"github.com/axd-platform/catalog/infrastructure/api/middleware"
	v1 "github.com/axd-platform/catalog/infrastructure/api/v1"
	"github.com/axd-platform/catalog/infrastructure/api/v1/dto"
)

const userHeader = "X-User-ID"

func newTestClient(t *testing.T) *catalog.Client {
	t.Helper()
	client, err := catalog.New(
		catalog.WithSQLite(filepath.Join(t.TempDir(), "test.db")),
		catalog.WithLogger(zerolog.Nop()),
		catalog.WithClock(func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// newTestRouter mounts the v1 routers behind the principal and unit of work
// middleware, the same way the API server does.
func newTestRouter(t *testing.T, client *catalog.Client) http.Handler {
	t.Helper()
	assets := v1.NewAssetsRouter(client)
	admin := v1.NewAdminRouter(client)
	center := v1.NewRequestCenterRouter(client)

	router := chi.NewRouter()
	router.Use(middleware.Principal(userHeader))
	router.Use(middleware.UnitOfWork(client.Database()))
	router.Mount("/assets", assets.Routes())
	router.Get("/services", assets.Services)
	router.Mount("/permission-requests", v1.NewPermissionRequestsRouter(client).Routes())
	router.Mount("/permissions", v1.NewPermissionsRouter(client).Routes())
	router.Mount("/notifications", v1.NewNotificationsRouter(client).Routes())
	router.Mount("/request-categories", center.CategoryRoutes())
	router.Mount("/service-requests", center.ServiceRequestRoutes())
	router.Mount("/admin", admin.Routes())
	router.Mount("/system", admin.SystemRoutes())
	return router
}

func do(t *testing.T, h http.Handler, method, path, user string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set(userHeader, user)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func seeded(t *testing.T) (*catalog.Client, http.Handler) {
	t.Helper()
	client := newTestClient(t)
	h := newTestRouter(t, client)
	w := do(t, h, http.MethodPost, "/system/init-sample-data", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	seed := decode[dto.SeedResponse](t, w)
	require.Equal(t, 32, seed.Inserted["assets"])
	return client, h
}

func findAsset(t *testing.T, assets []dto.Asset, sensitivity string) dto.Asset {
	t.Helper()
	for _, a := range assets {
		if a.SensitivityLevel == sensitivity {
			return a
		}
	}
	t.Fatalf("no %s asset", sensitivity)
	return dto.Asset{}
}

func TestAssets_ListRedactsSensitiveNames(t *testing.T) {
	_, h := seeded(t)

	w := do(t, h, http.MethodGet, "/assets", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[dto.ListResponse[dto.Asset]](t, w)
	require.Len(t, list.Data, 32)
	assert.Equal(t, 32, list.Meta.Total)

	for _, a := range list.Data {
		assert.Equal(t, a.SensitivityLevel != "public", a.IsMasked, a.ID)
		assert.False(t, a.HasPermission, a.ID)
		if a.IsMasked {
			assert.Equal(t, "****", a.Name)
		} else {
			assert.NotEqual(t, "****", a.Name)
		}
	}

	w = do(t, h, http.MethodGet, "/assets?service_id=unknown", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[],"meta":{"total":0}}`, w.Body.String())
}

func TestAssets_GetMissingIs404(t *testing.T) {
	client := newTestClient(t)
	h := newTestRouter(t, client)

	w := do(t, h, http.MethodGet, "/assets/missing", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	body := decode[middleware.ErrorResponse](t, w)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "404", body.Errors[0].Status)
	assert.Equal(t, "asset not found", body.Errors[0].Detail)
}

func TestAssets_DetailEndpoints(t *testing.T) {
	_, h := seeded(t)
	list := decode[dto.ListResponse[dto.Asset]](t, do(t, h, http.MethodGet, "/assets", "", nil))
	id := list.Data[0].ID

	columns := decode[dto.ListResponse[dto.Column]](t, do(t, h, http.MethodGet, "/assets/"+id+"/columns", "", nil))
	require.Len(t, columns.Data, 5)
	for i, c := range columns.Data {
		assert.Equal(t, i+1, c.OrdinalPosition)
	}

	w := do(t, h, http.MethodGet, "/assets/"+id+"/preview?limit=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	preview := decode[dto.ListResponse[map[string]any]](t, w)
	assert.Len(t, preview.Data, 1)

	w = do(t, h, http.MethodGet, "/assets/"+id+"/preview?limit=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	services := decode[dto.ListResponse[dto.Service]](t, do(t, h, http.MethodGet, "/services", "", nil))
	require.Len(t, services.Data, 3)
	assert.Equal(t, "Data Platform", services.Data[0].Name)

	w = do(t, h, http.MethodGet, "/assets/services", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAssets_LineageHidesRestrictedNames(t *testing.T) {
	_, h := seeded(t)
	list := decode[dto.ListResponse[dto.Asset]](t, do(t, h, http.MethodGet, "/assets", "", nil))

	masked := make(map[string]bool)
	for _, a := range list.Data {
		if a.IsMasked {
			masked[a.ID] = true
		}
	}

	endpointName := func(edges []dto.Lineage, id string) (string, bool) {
		for _, e := range edges {
			if e.SourceAssetID != nil && *e.SourceAssetID == id {
				return e.SourceName, true
			}
			if e.TargetAssetID != nil && *e.TargetAssetID == id {
				return e.TargetName, true
			}
		}
		return "", false
	}

	var withLineage string
	for id := range masked {
		w := do(t, h, http.MethodGet, "/assets/"+id+"/lineage", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		edges := decode[dto.ListResponse[dto.Lineage]](t, w).Data
		for _, e := range edges {
			if e.SourceAssetID != nil && masked[*e.SourceAssetID] {
				assert.Equal(t, "****", e.SourceName, e.ID)
			}
			if e.TargetAssetID != nil && masked[*e.TargetAssetID] {
				assert.Equal(t, "****", e.TargetName, e.ID)
			}
		}
		if _, ok := endpointName(edges, id); ok {
			withLineage = id
		}
	}
	require.NotEmpty(t, withLineage, "seed has lineage on a restricted asset")

	body := map[string]any{"purpose_category": "analysis", "duration": "permanent"}
	w := do(t, h, http.MethodPost, "/assets/"+withLineage+"/permission-requests", "user-9", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	request := decode[dto.DataResponse[dto.PermissionRequest]](t, w).Data
	w = do(t, h, http.MethodPost, "/permission-requests/"+request.ID+"/approve", "admin", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	detail := decode[dto.DataResponse[dto.Asset]](t, do(t, h, http.MethodGet, "/assets/"+withLineage, "user-9", nil)).Data
	edges := decode[dto.ListResponse[dto.Lineage]](t, do(t, h, http.MethodGet, "/assets/"+withLineage+"/lineage", "user-9", nil)).Data
	name, ok := endpointName(edges, withLineage)
	require.True(t, ok)
	assert.NotEqual(t, "****", name)
	assert.Contains(t, name, detail.Name)

	edges = decode[dto.ListResponse[dto.Lineage]](t, do(t, h, http.MethodGet, "/assets/"+withLineage+"/lineage", "user-10", nil)).Data
	name, _ = endpointName(edges, withLineage)
	assert.Equal(t, "****", name)
}

func TestAssets_Comments(t *testing.T) {
	_, h := seeded(t)
	list := decode[dto.ListResponse[dto.Asset]](t, do(t, h, http.MethodGet, "/assets", "", nil))
	id := list.Data[0].ID
	path := "/assets/" + id + "/comments"

	w := do(t, h, http.MethodPost, path, "u1", map[string]any{"content": "Where does this come from?"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	question := decode[dto.DataResponse[dto.Comment]](t, w).Data
	assert.Equal(t, "u1", question.UserID)
	assert.Nil(t, question.ParentID)

	w = do(t, h, http.MethodPost, path, "u2", map[string]any{
		"content": "The billing export.", "parent_id": question.ID, "is_answer": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, h, http.MethodPost, path, "u2", map[string]any{"content": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, path, "", map[string]any{"content": "anonymous"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, path, "u2", map[string]any{"content": "x", "parent_id": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/assets/missing/comments", "u2", map[string]any{"content": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	flat := decode[dto.ListResponse[dto.Comment]](t, do(t, h, http.MethodGet, path, "", nil))
	assert.Len(t, flat.Data, 2)

	tree := decode[dto.ListResponse[dto.CommentThread]](t, do(t, h, http.MethodGet, path+"/tree", "", nil))
	require.Len(t, tree.Data, 1)
	require.Len(t, tree.Data[0].Replies, 1)
	assert.True(t, tree.Data[0].Replies[0].IsAnswer)
}

func TestPermissionWorkflow(t *testing.T) {
	_, h := seeded(t)
	list := decode[dto.ListResponse[dto.Asset]](t, do(t, h, http.MethodGet, "/assets", "", nil))
	target := findAsset(t, list.Data, "confidential")
	assetPath := "/assets/" + target.ID

	body := map[string]any{"purpose_category": "analysis", "duration": "permanent", "reason": "quarterly report"}
	w := do(t, h, http.MethodPost, assetPath+"/permission-requests", "user-9", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	request := decode[dto.DataResponse[dto.PermissionRequest]](t, w).Data
	assert.Equal(t, "pending", request.Status)
	assert.Equal(t, "viewer", request.RequestedLevel)

	w = do(t, h, http.MethodPost, assetPath+"/permission-requests", "user-9", body)
	assert.Equal(t, http.StatusConflict, w.Code)

	mine := decode[dto.ListResponse[dto.PermissionRequest]](t,
		do(t, h, http.MethodGet, "/permission-requests?requester_id=user-9", "", nil))
	require.Len(t, mine.Data, 1)

	w = do(t, h, http.MethodPost, "/permission-requests/"+request.ID+"/cancel", "someone-else", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, h, http.MethodPost, "/permission-requests/"+request.ID+"/approve", "admin", map[string]any{"comment": "ok"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	approval := decode[dto.DataResponse[dto.ApprovalResponse]](t, w).Data
	assert.Equal(t, "approved", approval.Request.Status)
	assert.True(t, approval.Permission.Active)
	assert.Nil(t, approval.Permission.ExpiresAt)

	w = do(t, h, http.MethodPost, "/permission-requests/"+request.ID+"/reject", "admin", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	got := decode[dto.DataResponse[dto.Asset]](t, do(t, h, http.MethodGet, assetPath, "user-9", nil)).Data
	assert.Equal(t, target.ID, got.ID)
	assert.NotEqual(t, "****", got.Name)
	assert.True(t, got.IsMasked)
	assert.True(t, got.HasPermission)

	stranger := decode[dto.DataResponse[dto.Asset]](t, do(t, h, http.MethodGet, assetPath, "user-10", nil)).Data
	assert.Equal(t, "****", stranger.Name)

	notes := decode[dto.ListResponse[dto.Notification]](t, do(t, h, http.MethodGet, "/notifications", "user-9", nil))
	require.Len(t, notes.Data, 1)
	assert.Equal(t, "permission_approved", notes.Data[0].Type)

	w = do(t, h, http.MethodPost, "/notifications/"+notes.Data[0].ID+"/read", "user-10", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, h, http.MethodPost, "/notifications/"+notes.Data[0].ID+"/read", "user-9", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[dto.DataResponse[dto.Notification]](t, w).Data.IsRead)

	grants := decode[dto.ListResponse[dto.Permission]](t, do(t, h, http.MethodGet, assetPath+"/permissions", "", nil))
	require.Len(t, grants.Data, 1)

	w = do(t, h, http.MethodPost, "/permissions/"+grants.Data[0].ID+"/revoke", "admin", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.False(t, decode[dto.DataResponse[dto.Permission]](t, w).Data.Active)

	w = do(t, h, http.MethodPost, "/permissions/"+grants.Data[0].ID+"/revoke", "admin", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	got = decode[dto.DataResponse[dto.Asset]](t, do(t, h, http.MethodGet, assetPath, "user-9", nil)).Data
	assert.Equal(t, "****", got.Name)
}

func TestPermissionRequest_Validation(t *testing.T) {
	_, h := seeded(t)
	list := decode[dto.ListResponse[dto.Asset]](t, do(t, h, http.MethodGet, "/assets", "", nil))
	path := "/assets/" + list.Data[0].ID + "/permission-requests"

	tests := []struct {
		name   string
		user   string
		body   any
		detail string
		status int
	}{
		{"unknown purpose", "u1", map[string]any{"purpose_category": "fun"}, "purpose_category must be one of", http.StatusBadRequest},
		{"missing purpose", "u1", map[string]any{}, "purpose_category is required", http.StatusBadRequest},
		{"unknown duration", "u1", map[string]any{"purpose_category": "other", "duration": "forever"}, "duration must be one of", http.StatusBadRequest},
		{"not an object", "u1", "analysis", "invalid request body", http.StatusBadRequest},
		{"anonymous", "", map[string]any{"purpose_category": "other"}, "principal required", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, path, tt.user, tt.body)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			body := decode[middleware.ErrorResponse](t, w)
			require.Len(t, body.Errors, 1)
			assert.True(t, strings.Contains(body.Errors[0].Detail, tt.detail), body.Errors[0].Detail)
		})
	}

	w := do(t, h, http.MethodGet, "/permission-requests?status=bogus", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminAndRequestCenter(t *testing.T) {
	_, h := seeded(t)

	w := do(t, h, http.MethodGet, "/admin/stats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"pendingPermissions":1,"pendingRequests":1,"newComments":0,"activeUsers":0}`, w.Body.String())

	categories := decode[dto.ListResponse[dto.RequestCategory]](t, do(t, h, http.MethodGet, "/request-categories", "", nil))
	require.NotEmpty(t, categories.Data)
	for _, c := range categories.Data {
		for _, typ := range c.Types {
			assert.Equal(t, c.ID, typ.CategoryID)
		}
	}

	submitted := decode[dto.ListResponse[dto.ServiceRequest]](t, do(t, h, http.MethodGet, "/service-requests?status=submitted", "", nil))
	assert.Len(t, submitted.Data, 1)
}
