package persistence

import (
	"encoding/json"
	"time"

	"github.com/axd-platform/catalog/domain/access"
	"github.com/axd-platform/catalog/domain/asset"
	"github.com/axd-platform/catalog/domain/notification"
	"github.com/axd-platform/catalog/domain/request"
	"gorm.io/datatypes"
)

// ServiceMapper maps between asset.Service and ServiceModel.
type ServiceMapper struct{}

// ToDomain converts a ServiceModel to a domain Service.
func (ServiceMapper) ToDomain(e ServiceModel) asset.Service {
	return asset.ReconstructService(e.ID, e.Name, e.Description, e.Icon, e.Color, e.CreatedAt)
}

// ToModel converts a domain Service to a ServiceModel.
func (ServiceMapper) ToModel(s asset.Service) ServiceModel {
	return ServiceModel{
		ID:          s.ID(),
		Name:        s.Name(),
		Description: s.Description(),
		Icon:        s.Icon(),
		Color:       s.Color(),
		CreatedAt:   s.CreatedAt(),
	}
}

// AssetMapper maps between asset.Asset and AssetModel.
type AssetMapper struct{}

// ToDomain converts an AssetModel to a domain Asset.
func (AssetMapper) ToDomain(e AssetModel) asset.Asset {
	var tags []string
	decodeJSON(e.Tags, &tags)
	var links []asset.DocLink
	decodeJSON(e.DocLinks, &links)

	return asset.ReconstructAsset(
		e.ID,
		e.Name,
		e.Description,
		e.SchemaName,
		e.DatabaseName,
		deref(e.ServiceID),
		asset.NewOwner(e.OwnerID, e.OwnerName, e.OwnerEmail),
		tags,
		e.BusinessDefinition,
		links,
		asset.Sensitivity(e.SensitivityLevel),
		e.RequiresPermission,
		e.CreatedAt,
		e.UpdatedAt,
	)
}

// ToModel converts a domain Asset to an AssetModel.
func (AssetMapper) ToModel(a asset.Asset) AssetModel {
	owner := a.Owner()
	return AssetModel{
		ID:                 a.ID(),
		Name:               a.Name(),
		Description:        a.Description(),
		SchemaName:         a.SchemaName(),
		DatabaseName:       a.DatabaseName(),
		ServiceID:          optional(a.ServiceID()),
		OwnerID:            owner.ID(),
		OwnerName:          owner.Name(),
		OwnerEmail:         owner.Email(),
		Tags:               encodeJSON(a.Tags()),
		BusinessDefinition: a.BusinessDefinition(),
		DocLinks:           encodeJSON(a.DocLinks()),
		SensitivityLevel:   string(a.Sensitivity()),
		RequiresPermission: a.RequiresPermission(),
		CreatedAt:          a.CreatedAt(),
		UpdatedAt:          a.UpdatedAt(),
	}
}

// ColumnMapper maps between asset.Column and ColumnModel.
type ColumnMapper struct{}

// ToDomain converts a ColumnModel to a domain Column.
func (ColumnMapper) ToDomain(e ColumnModel) asset.Column {
	return asset.ReconstructColumn(
		e.ID,
		e.AssetID,
		e.ColumnName,
		e.DataType,
		e.Description,
		e.IsNullable,
		e.IsPII,
		e.DQNullRatio,
		e.DQFreshness,
		e.OrdinalPosition,
	)
}

// ToModel converts a domain Column to a ColumnModel.
func (ColumnMapper) ToModel(c asset.Column) ColumnModel {
	return ColumnModel{
		ID:              c.ID(),
		AssetID:         c.AssetID(),
		ColumnName:      c.Name(),
		DataType:        c.DataType(),
		Description:     c.Description(),
		IsNullable:      c.Nullable(),
		IsPII:           c.PII(),
		DQNullRatio:     c.NullRatio(),
		DQFreshness:     c.Freshness(),
		OrdinalPosition: c.OrdinalPosition(),
	}
}

// LineageMapper maps between asset.Lineage and LineageModel.
type LineageMapper struct{}

// ToDomain converts a LineageModel to a domain Lineage.
func (LineageMapper) ToDomain(e LineageModel) asset.Lineage {
	return asset.ReconstructLineage(
		e.ID,
		asset.NewEndpoint(deref(e.SourceAssetID), e.SourceName, e.SourceType),
		asset.NewEndpoint(deref(e.TargetAssetID), e.TargetName, e.TargetType),
		e.TransformationType,
		e.ETLLogicSummary,
		e.CreatedAt,
	)
}

// ToModel converts a domain Lineage to a LineageModel.
func (LineageMapper) ToModel(l asset.Lineage) LineageModel {
	return LineageModel{
		ID:                 l.ID(),
		SourceAssetID:      optional(l.Source().AssetID()),
		TargetAssetID:      optional(l.Target().AssetID()),
		SourceName:         l.Source().Name(),
		TargetName:         l.Target().Name(),
		SourceType:         l.Source().Type(),
		TargetType:         l.Target().Type(),
		TransformationType: l.Transformation(),
		ETLLogicSummary:    l.Summary(),
		CreatedAt:          l.CreatedAt(),
	}
}

// CommentMapper maps between asset.Comment and CommentModel.
type CommentMapper struct{}

// ToDomain converts a CommentModel to a domain Comment.
func (CommentMapper) ToDomain(e CommentModel) asset.Comment {
	return asset.ReconstructComment(e.ID, e.AssetID, e.UserID, e.UserName, e.Content, deref(e.ParentID), e.IsAnswer, e.CreatedAt)
}

// ToModel converts a domain Comment to a CommentModel.
func (CommentMapper) ToModel(c asset.Comment) CommentModel {
	return CommentModel{
		ID:        c.ID(),
		AssetID:   c.AssetID(),
		UserID:    c.UserID(),
		UserName:  c.UserName(),
		Content:   c.Content(),
		ParentID:  optional(c.ParentID()),
		IsAnswer:  c.IsAnswer(),
		CreatedAt: c.CreatedAt(),
	}
}

// SampleMapper maps between asset.SampleRow and SampleModel.
type SampleMapper struct{}

// ToDomain converts a SampleModel to a domain SampleRow.
func (SampleMapper) ToDomain(e SampleModel) asset.SampleRow {
	data := map[string]any{}
	decodeJSON(e.RowData, &data)
	return asset.ReconstructSampleRow(e.ID, e.AssetID, data, e.CreatedAt)
}

// ToModel converts a domain SampleRow to a SampleModel.
func (SampleMapper) ToModel(s asset.SampleRow) SampleModel {
	return SampleModel{
		ID:        s.ID(),
		AssetID:   s.AssetID(),
		RowData:   encodeJSON(s.Data()),
		CreatedAt: s.CreatedAt(),
	}
}

// GrantMapper maps between access.Grant and GrantModel.
type GrantMapper struct{}

// ToDomain converts a GrantModel to a domain Grant.
func (GrantMapper) ToDomain(e GrantModel) access.Grant {
	return access.ReconstructGrant(
		e.ID,
		e.AssetID,
		access.NewPrincipal(e.UserID, e.UserName, e.UserEmail),
		access.Level(e.PermissionLevel),
		access.NewPrincipal(e.GrantedBy, e.GrantedByName, ""),
		e.GrantedAt,
		derefTime(e.ExpiresAt),
		derefTime(e.RevokedAt),
		e.RevokedBy,
	)
}

// ToModel converts a domain Grant to a GrantModel.
func (GrantMapper) ToModel(g access.Grant) GrantModel {
	holder := g.Holder()
	by := g.GrantedBy()
	return GrantModel{
		ID:              g.ID(),
		AssetID:         g.AssetID(),
		UserID:          holder.ID(),
		UserName:        holder.Name(),
		UserEmail:       holder.Email(),
		PermissionLevel: string(g.Level()),
		GrantedBy:       by.ID(),
		GrantedByName:   by.Name(),
		GrantedAt:       g.GrantedAt(),
		ExpiresAt:       optionalTime(g.ExpiresAt()),
		RevokedAt:       optionalTime(g.RevokedAt()),
		RevokedBy:       g.RevokedBy(),
		CreatedAt:       g.GrantedAt(),
	}
}

// PermissionRequestMapper maps between access.Request and PermissionRequestModel.
type PermissionRequestMapper struct{}

// ToDomain converts a PermissionRequestModel to a domain Request.
func (PermissionRequestMapper) ToDomain(e PermissionRequestModel) access.Request {
	var review access.Review
	if e.ReviewedAt != nil {
		review = access.NewReview(access.NewPrincipal(e.ReviewerID, e.ReviewerName, ""), e.ReviewerComment, *e.ReviewedAt)
	}
	return access.ReconstructRequest(
		e.ID,
		e.AssetID,
		access.NewPrincipal(e.RequesterID, e.RequesterName, e.RequesterEmail),
		access.Level(e.RequestedLevel),
		access.Purpose(e.PurposeCategory),
		e.Reason,
		access.Duration(e.Duration),
		access.Status(e.Status),
		review,
		e.CreatedAt,
		e.UpdatedAt,
	)
}

// ToModel converts a domain Request to a PermissionRequestModel.
func (PermissionRequestMapper) ToModel(r access.Request) PermissionRequestModel {
	requester := r.Requester()
	review := r.Review()
	reviewer := review.Reviewer()
	return PermissionRequestModel{
		ID:              r.ID(),
		AssetID:         r.AssetID(),
		RequesterID:     requester.ID(),
		RequesterName:   requester.Name(),
		RequesterEmail:  requester.Email(),
		RequestedLevel:  string(r.Level()),
		PurposeCategory: string(r.Purpose()),
		Reason:          r.Reason(),
		Duration:        string(r.Duration()),
		Status:          string(r.Status()),
		ReviewerID:      reviewer.ID(),
		ReviewerName:    reviewerName(reviewer),
		ReviewerComment: review.Comment(),
		ReviewedAt:      optionalTime(review.At()),
		CreatedAt:       r.CreatedAt(),
		UpdatedAt:       r.UpdatedAt(),
	}
}

// CategoryMapper maps between request.Category and CategoryModel.
type CategoryMapper struct{}

// ToDomain converts a CategoryModel to a domain Category.
func (CategoryMapper) ToDomain(e CategoryModel) request.Category {
	return request.ReconstructCategory(e.ID, e.Name, e.Slug, e.Description, e.Icon, e.Color, e.IsSimple, e.SortOrder, e.CreatedAt)
}

// ToModel converts a domain Category to a CategoryModel.
func (CategoryMapper) ToModel(c request.Category) CategoryModel {
	return CategoryModel{
		ID:          c.ID(),
		Name:        c.Name(),
		Slug:        c.Slug(),
		Description: c.Description(),
		Icon:        c.Icon(),
		Color:       c.Color(),
		IsSimple:    c.Simple(),
		SortOrder:   c.SortOrder(),
		CreatedAt:   c.CreatedAt(),
	}
}

// RequestTypeMapper maps between request.Type and RequestTypeModel.
type RequestTypeMapper struct{}

// ToDomain converts a RequestTypeModel to a domain Type.
func (RequestTypeMapper) ToDomain(e RequestTypeModel) request.Type {
	return request.ReconstructType(
		e.ID,
		e.CategoryID,
		e.Name,
		e.Slug,
		e.Description,
		e.EstimatedDays,
		e.RequiresApproval,
		json.RawMessage(e.FormSchema),
		e.SortOrder,
		e.CreatedAt,
	)
}

// ToModel converts a domain Type to a RequestTypeModel.
func (RequestTypeMapper) ToModel(t request.Type) RequestTypeModel {
	return RequestTypeModel{
		ID:               t.ID(),
		CategoryID:       t.CategoryID(),
		Name:             t.Name(),
		Slug:             t.Slug(),
		Description:      t.Description(),
		EstimatedDays:    t.EstimatedDays(),
		RequiresApproval: t.RequiresApproval(),
		FormSchema:       datatypes.JSON(t.FormSchema()),
		SortOrder:        t.SortOrder(),
		CreatedAt:        t.CreatedAt(),
	}
}

// ServiceRequestMapper maps between request.ServiceRequest and ServiceRequestModel.
type ServiceRequestMapper struct{}

// ToDomain converts a ServiceRequestModel to a domain ServiceRequest.
func (ServiceRequestMapper) ToDomain(e ServiceRequestModel) request.ServiceRequest {
	form := map[string]any{}
	decodeJSON(e.FormData, &form)
	return request.ReconstructServiceRequest(
		e.ID,
		e.RequestTypeID,
		request.Requester{ID: e.RequesterID, Name: e.RequesterName, Email: e.RequesterEmail},
		e.Title,
		e.Description,
		form,
		request.Priority(e.Priority),
		request.Status(e.Status),
		request.Requester{ID: e.AssigneeID, Name: e.AssigneeName, Email: e.AssigneeEmail},
		derefTime(e.DueDate),
		derefTime(e.CompletedAt),
		e.AdminNotes,
		e.CreatedAt,
		e.UpdatedAt,
	)
}

// ToModel converts a domain ServiceRequest to a ServiceRequestModel.
func (ServiceRequestMapper) ToModel(s request.ServiceRequest) ServiceRequestModel {
	requester := s.Requester()
	assignee := s.Assignee()
	return ServiceRequestModel{
		ID:             s.ID(),
		RequestTypeID:  s.TypeID(),
		RequesterID:    requester.ID,
		RequesterName:  requester.Name,
		RequesterEmail: requester.Email,
		Title:          s.Title(),
		Description:    s.Description(),
		FormData:       encodeJSON(s.FormData()),
		Priority:       string(s.Priority()),
		Status:         string(s.Status()),
		AssigneeID:     assignee.ID,
		AssigneeName:   assignee.Name,
		AssigneeEmail:  assignee.Email,
		DueDate:        optionalTime(s.DueDate()),
		CompletedAt:    optionalTime(s.CompletedAt()),
		AdminNotes:     s.AdminNotes(),
		CreatedAt:      s.CreatedAt(),
		UpdatedAt:      s.UpdatedAt(),
	}
}

// NotificationMapper maps between notification.Notification and NotificationModel.
type NotificationMapper struct{}

// ToDomain converts a NotificationModel to a domain Notification.
func (NotificationMapper) ToDomain(e NotificationModel) notification.Notification {
	return notification.Reconstruct(e.ID, e.UserID, notification.Kind(e.Type), e.Title, e.Message, e.Link, e.IsRead, e.CreatedAt)
}

// ToModel converts a domain Notification to a NotificationModel.
func (NotificationMapper) ToModel(n notification.Notification) NotificationModel {
	return NotificationModel{
		ID:        n.ID(),
		UserID:    n.UserID(),
		Type:      string(n.Kind()),
		Title:     n.Title(),
		Message:   n.Message(),
		Link:      n.Link(),
		IsRead:    n.Read(),
		CreatedAt: n.CreatedAt(),
	}
}

// reviewerName avoids storing the id fallback from Principal.Name for
// unreviewed requests.
func reviewerName(p access.Principal) string {
	if !p.Known() {
		return ""
	}
	return p.Name()
}

func encodeJSON(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

func decodeJSON(raw datatypes.JSON, v any) {
	if len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, v)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
