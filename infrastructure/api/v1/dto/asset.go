// Package dto holds the JSON shapes of the v1 API.
package dto

import (
	"time"

	"github.com/axd-platform/catalog/domain/access"
	"github.com/axd-platform/catalog/domain/asset"
)

// DataResponse wraps a single resource.
type DataResponse[T any] struct {
	Data T `json:"data"`
}

// ListResponse wraps a list of resources.
type ListResponse[T any] struct {
	Data []T      `json:"data"`
	Meta ListMeta `json:"meta"`
}

// ListMeta describes a list response.
type ListMeta struct {
	Total int `json:"total"`
}

// NewList wraps items, replacing nil with an empty list.
func NewList[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Data: items, Meta: ListMeta{Total: len(items)}}
}

// DocLink is a link to external documentation.
type DocLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Asset is an asset as seen by the caller. Name is "****" when masked
// and the caller holds no active permission.
type Asset struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Description        string     `json:"description"`
	SchemaName         string     `json:"schema_name"`
	DatabaseName       string     `json:"database_name"`
	ServiceID          *string    `json:"service_id"`
	OwnerID            string     `json:"owner_id"`
	OwnerName          string     `json:"owner_name"`
	OwnerEmail         string     `json:"owner_email"`
	Tags               []string   `json:"tags"`
	BusinessDefinition string     `json:"business_definition"`
	DocLinks           []DocLink  `json:"doc_links"`
	SensitivityLevel   string     `json:"sensitivity_level"`
	RequiresPermission bool       `json:"requires_permission"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at"`
	IsMasked           bool       `json:"isMasked"`
	HasPermission      bool       `json:"hasPermission"`
}

// AssetFromView converts a visibility view.
func AssetFromView(v access.View) Asset {
	a := v.Asset()
	links := make([]DocLink, 0, len(a.DocLinks()))
	for _, l := range a.DocLinks() {
		links = append(links, DocLink{Title: l.Title, URL: l.URL})
	}
	tags := a.Tags()
	if tags == nil {
		tags = []string{}
	}
	return Asset{
		ID:                 a.ID(),
		Name:               a.Name(),
		Description:        a.Description(),
		SchemaName:         a.SchemaName(),
		DatabaseName:       a.DatabaseName(),
		ServiceID:          optional(a.ServiceID()),
		OwnerID:            a.Owner().ID(),
		OwnerName:          a.Owner().Name(),
		OwnerEmail:         a.Owner().Email(),
		Tags:               tags,
		BusinessDefinition: a.BusinessDefinition(),
		DocLinks:           links,
		SensitivityLevel:   string(a.Sensitivity()),
		RequiresPermission: a.RequiresPermission(),
		CreatedAt:          a.CreatedAt(),
		UpdatedAt:          optionalTime(a.UpdatedAt()),
		IsMasked:           v.IsMasked(),
		HasPermission:      v.HasPermission(),
	}
}

// AssetsFromViews converts a list of views.
func AssetsFromViews(views []access.View) []Asset {
	out := make([]Asset, len(views))
	for i, v := range views {
		out[i] = AssetFromView(v)
	}
	return out
}

// Service groups assets by owning product area.
type Service struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
}

// ServicesFromDomain converts services.
func ServicesFromDomain(services []asset.Service) []Service {
	out := make([]Service, len(services))
	for i, s := range services {
		out[i] = Service{
			ID:          s.ID(),
			Name:        s.Name(),
			Description: s.Description(),
			Icon:        s.Icon(),
			Color:       s.Color(),
			CreatedAt:   s.CreatedAt(),
		}
	}
	return out
}

// Column describes one column of an asset.
type Column struct {
	ID              string  `json:"id"`
	AssetID         string  `json:"asset_id"`
	ColumnName      string  `json:"column_name"`
	DataType        string  `json:"data_type"`
	Description     string  `json:"description"`
	IsNullable      bool    `json:"is_nullable"`
	IsPII           bool    `json:"is_pii"`
	DQNullRatio     float64 `json:"dq_null_ratio"`
	DQFreshness     string  `json:"dq_freshness"`
	OrdinalPosition int     `json:"ordinal_position"`
}

// ColumnsFromDomain converts columns, keeping their order.
func ColumnsFromDomain(columns []asset.Column) []Column {
	out := make([]Column, len(columns))
	for i, c := range columns {
		out[i] = Column{
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
	return out
}

// Lineage is a directed edge between two assets.
type Lineage struct {
	ID                 string    `json:"id"`
	SourceAssetID      *string   `json:"source_asset_id"`
	TargetAssetID      *string   `json:"target_asset_id"`
	SourceName         string    `json:"source_name"`
	TargetName         string    `json:"target_name"`
	SourceType         string    `json:"source_type"`
	TargetType         string    `json:"target_type"`
	TransformationType string    `json:"transformation_type"`
	ETLLogicSummary    string    `json:"etl_logic_summary"`
	CreatedAt          time.Time `json:"created_at"`
}

// LineageFromDomain converts lineage edges.
func LineageFromDomain(edges []asset.Lineage) []Lineage {
	out := make([]Lineage, len(edges))
	for i, e := range edges {
		out[i] = Lineage{
			ID:                 e.ID(),
			SourceAssetID:      optional(e.Source().AssetID()),
			TargetAssetID:      optional(e.Target().AssetID()),
			SourceName:         e.Source().Name(),
			TargetName:         e.Target().Name(),
			SourceType:         e.Source().Type(),
			TargetType:         e.Target().Type(),
			TransformationType: e.Transformation(),
			ETLLogicSummary:    e.Summary(),
			CreatedAt:          e.CreatedAt(),
		}
	}
	return out
}

// Comment is one entry of an asset discussion.
type Comment struct {
	ID        string    `json:"id"`
	AssetID   string    `json:"asset_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Content   string    `json:"content"`
	ParentID  *string   `json:"parent_id"`
	IsAnswer  bool      `json:"is_answer"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentFromDomain converts a comment.
func CommentFromDomain(c asset.Comment) Comment {
	return Comment{
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

// CommentsFromDomain converts a flat comment list.
func CommentsFromDomain(comments []asset.Comment) []Comment {
	out := make([]Comment, len(comments))
	for i, c := range comments {
		out[i] = CommentFromDomain(c)
	}
	return out
}

// CommentThread is a comment with its nested replies.
type CommentThread struct {
	Comment
	Replies []CommentThread `json:"replies"`
}

// ThreadsFromDomain converts reply trees.
func ThreadsFromDomain(threads []asset.Thread) []CommentThread {
	out := make([]CommentThread, len(threads))
	for i, t := range threads {
		out[i] = CommentThread{Comment: CommentFromDomain(t.Comment), Replies: ThreadsFromDomain(t.Replies)}
	}
	return out
}

// CommentCreateRequest is the body of POST /assets/{id}/comments.
type CommentCreateRequest struct {
	Content  string `json:"content" validate:"required,max=10000"`
	ParentID string `json:"parent_id" validate:"omitempty,max=36"`
	IsAnswer bool   `json:"is_answer"`
	UserName string `json:"user_name" validate:"max=100"`
}

// PreviewRows converts sample rows to their payloads.
func PreviewRows(rows []asset.SampleRow) []map[string]any {
	out := make([]map[string]any, len(rows))
	for i, r := range rows {
		out[i] = r.Data()
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
