package dto

import (
	"encoding/json"
	"time"

	"github.com/axd-platform/catalog/application/service"
	"github.com/axd-platform/catalog/domain/request"
)

// RequestType is a kind of service request users can file.
type RequestType struct {
	ID               string          `json:"id"`
	CategoryID       string          `json:"category_id"`
	Name             string          `json:"name"`
	Slug             string          `json:"slug"`
	Description      string          `json:"description"`
	EstimatedDays    int             `json:"estimated_days"`
	RequiresApproval bool            `json:"requires_approval"`
	FormSchema       json.RawMessage `json:"form_schema"`
	SortOrder        int             `json:"sort_order"`
}

// RequestCategory groups request types.
type RequestCategory struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
	Color       string        `json:"color"`
	IsSimple    bool          `json:"is_simple"`
	SortOrder   int           `json:"sort_order"`
	Types       []RequestType `json:"types"`
}

// CategoriesFromDomain converts categories with their types.
func CategoriesFromDomain(items []service.CategoryWithTypes) []RequestCategory {
	out := make([]RequestCategory, len(items))
	for i, item := range items {
		c := item.Category
		types := make([]RequestType, len(item.Types))
		for j, t := range item.Types {
			schema := t.FormSchema()
			if len(schema) == 0 {
				schema = json.RawMessage("null")
			}
			types[j] = RequestType{
				ID:               t.ID(),
				CategoryID:       t.CategoryID(),
				Name:             t.Name(),
				Slug:             t.Slug(),
				Description:      t.Description(),
				EstimatedDays:    t.EstimatedDays(),
				RequiresApproval: t.RequiresApproval(),
				FormSchema:       schema,
				SortOrder:        t.SortOrder(),
			}
		}
		out[i] = RequestCategory{
			ID:          c.ID(),
			Name:        c.Name(),
			Slug:        c.Slug(),
			Description: c.Description(),
			Icon:        c.Icon(),
			Color:       c.Color(),
			IsSimple:    c.Simple(),
			SortOrder:   c.SortOrder(),
			Types:       types,
		}
	}
	return out
}

// ServiceRequest is a filed service request.
type ServiceRequest struct {
	ID             string         `json:"id"`
	RequestTypeID  string         `json:"request_type_id"`
	RequesterID    string         `json:"requester_id"`
	RequesterName  string         `json:"requester_name"`
	RequesterEmail string         `json:"requester_email"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	FormData       map[string]any `json:"form_data"`
	Priority       string         `json:"priority"`
	Status         string         `json:"status"`
	AssigneeName   *string        `json:"assignee_name"`
	AssigneeEmail  *string        `json:"assignee_email"`
	DueDate        *time.Time     `json:"due_date"`
	CompletedAt    *time.Time     `json:"completed_at"`
	AdminNotes     *string        `json:"admin_notes"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// ServiceRequestsFromDomain converts service requests.
func ServiceRequestsFromDomain(items []request.ServiceRequest) []ServiceRequest {
	out := make([]ServiceRequest, len(items))
	for i, s := range items {
		out[i] = ServiceRequest{
			ID:             s.ID(),
			RequestTypeID:  s.TypeID(),
			RequesterID:    s.Requester().ID,
			RequesterName:  s.Requester().Name,
			RequesterEmail: s.Requester().Email,
			Title:          s.Title(),
			Description:    s.Description(),
			FormData:       s.FormData(),
			Priority:       string(s.Priority()),
			Status:         string(s.Status()),
			AssigneeName:   optional(s.Assignee().Name),
			AssigneeEmail:  optional(s.Assignee().Email),
			DueDate:        optionalTime(s.DueDate()),
			CompletedAt:    optionalTime(s.CompletedAt()),
			AdminNotes:     optional(s.AdminNotes()),
			CreatedAt:      s.CreatedAt(),
			UpdatedAt:      s.UpdatedAt(),
		}
	}
	return out
}
