// Package request provides domain types for the service request center:
// request categories, request types, and the requests users file.
package request

import (
	"encoding/json"
	"maps"
	"time"

	"github.com/google/uuid"
)

// Status is the state of a service request.
type Status string

// Status values.
const (
	StatusSubmitted  Status = "submitted"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusRejected   Status = "rejected"
)

// Priority ranks service requests.
type Priority string

// Priority values.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Category groups request types in the request center.
type Category struct {
	id          string
	name        string
	slug        string
	description string
	icon        string
	color       string
	simple      bool
	sortOrder   int
	createdAt   time.Time
}

// NewCategory creates a category that has not been persisted.
func NewCategory(name, slug, description string, sortOrder int) Category {
	return Category{
		id:          uuid.NewString(),
		name:        name,
		slug:        slug,
		description: description,
		icon:        "file",
		color:       "gray",
		sortOrder:   sortOrder,
		createdAt:   time.Now().UTC(),
	}
}

// ReconstructCategory recreates a category from persistence.
func ReconstructCategory(id, name, slug, description, icon, color string, simple bool, sortOrder int, createdAt time.Time) Category {
	return Category{
		id:          id,
		name:        name,
		slug:        slug,
		description: description,
		icon:        icon,
		color:       color,
		simple:      simple,
		sortOrder:   sortOrder,
		createdAt:   createdAt,
	}
}

// ID returns the category id.
func (c Category) ID() string { return c.id }

// Name returns the display name.
func (c Category) Name() string { return c.name }

// Slug returns the unique URL-safe key.
func (c Category) Slug() string { return c.slug }

// Description returns the description.
func (c Category) Description() string { return c.description }

// Icon returns the icon key.
func (c Category) Icon() string { return c.icon }

// Color returns the color key.
func (c Category) Color() string { return c.color }

// Simple reports whether requests in this category skip the detailed form.
func (c Category) Simple() bool { return c.simple }

// SortOrder returns the display rank.
func (c Category) SortOrder() int { return c.sortOrder }

// CreatedAt returns the creation time.
func (c Category) CreatedAt() time.Time { return c.createdAt }

// WithAppearance returns a copy with icon, color and the simple flag set.
func (c Category) WithAppearance(icon, color string, simple bool) Category {
	if icon != "" {
		c.icon = icon
	}
	if color != "" {
		c.color = color
	}
	c.simple = simple
	return c
}

// Type is a kind of service request within a category.
type Type struct {
	id               string
	categoryID       string
	name             string
	slug             string
	description      string
	estimatedDays    int
	requiresApproval bool
	formSchema       json.RawMessage
	sortOrder        int
	createdAt        time.Time
}

// NewType creates a request type that has not been persisted.
func NewType(categoryID, name, slug, description string, estimatedDays int, requiresApproval bool, formSchema json.RawMessage, sortOrder int) Type {
	return Type{
		id:               uuid.NewString(),
		categoryID:       categoryID,
		name:             name,
		slug:             slug,
		description:      description,
		estimatedDays:    estimatedDays,
		requiresApproval: requiresApproval,
		formSchema:       cloneRaw(formSchema),
		sortOrder:        sortOrder,
		createdAt:        time.Now().UTC(),
	}
}

// ReconstructType recreates a request type from persistence.
func ReconstructType(
	id, categoryID, name, slug, description string,
	estimatedDays int,
	requiresApproval bool,
	formSchema json.RawMessage,
	sortOrder int,
	createdAt time.Time,
) Type {
	return Type{
		id:               id,
		categoryID:       categoryID,
		name:             name,
		slug:             slug,
		description:      description,
		estimatedDays:    estimatedDays,
		requiresApproval: requiresApproval,
		formSchema:       formSchema,
		sortOrder:        sortOrder,
		createdAt:        createdAt,
	}
}

// ID returns the type id.
func (t Type) ID() string { return t.id }

// CategoryID returns the owning category id.
func (t Type) CategoryID() string { return t.categoryID }

// Name returns the display name.
func (t Type) Name() string { return t.name }

// Slug returns the URL-safe key.
func (t Type) Slug() string { return t.slug }

// Description returns the description.
func (t Type) Description() string { return t.description }

// EstimatedDays returns the expected turnaround.
func (t Type) EstimatedDays() int { return t.estimatedDays }

// RequiresApproval reports whether an admin must approve requests of this type.
func (t Type) RequiresApproval() bool { return t.requiresApproval }

// FormSchema returns the JSON form definition shown to requesters.
func (t Type) FormSchema() json.RawMessage { return cloneRaw(t.formSchema) }

// SortOrder returns the display rank.
func (t Type) SortOrder() int { return t.sortOrder }

// CreatedAt returns the creation time.
func (t Type) CreatedAt() time.Time { return t.createdAt }

// Requester identifies who filed a service request.
type Requester struct {
	ID    string
	Name  string
	Email string
}

// ServiceRequest is a request filed in the request center.
type ServiceRequest struct {
	id          string
	typeID      string
	requester   Requester
	title       string
	description string
	formData    map[string]any
	priority    Priority
	status      Status
	assignee    Requester
	dueDate     time.Time
	completedAt time.Time
	adminNotes  string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewServiceRequest creates a submitted request that has not been persisted.
func NewServiceRequest(typeID string, requester Requester, title, description string, formData map[string]any, priority Priority) ServiceRequest {
	if priority == "" {
		priority = PriorityMedium
	}
	now := time.Now().UTC()
	return ServiceRequest{
		id:          uuid.NewString(),
		typeID:      typeID,
		requester:   requester,
		title:       title,
		description: description,
		formData:    maps.Clone(formData),
		priority:    priority,
		status:      StatusSubmitted,
		createdAt:   now,
		updatedAt:   now,
	}
}

// ReconstructServiceRequest recreates a service request from persistence.
func ReconstructServiceRequest(
	id, typeID string,
	requester Requester,
	title, description string,
	formData map[string]any,
	priority Priority,
	status Status,
	assignee Requester,
	dueDate, completedAt time.Time,
	adminNotes string,
	createdAt, updatedAt time.Time,
) ServiceRequest {
	return ServiceRequest{
		id:          id,
		typeID:      typeID,
		requester:   requester,
		title:       title,
		description: description,
		formData:    formData,
		priority:    priority,
		status:      status,
		assignee:    assignee,
		dueDate:     dueDate,
		completedAt: completedAt,
		adminNotes:  adminNotes,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the request id.
func (s ServiceRequest) ID() string { return s.id }

// TypeID returns the request type id.
func (s ServiceRequest) TypeID() string { return s.typeID }

// Requester returns who filed the request.
func (s ServiceRequest) Requester() Requester { return s.requester }

// Title returns the request title.
func (s ServiceRequest) Title() string { return s.title }

// Description returns the request description.
func (s ServiceRequest) Description() string { return s.description }

// FormData returns a shallow copy of the submitted form values.
func (s ServiceRequest) FormData() map[string]any {
	if s.formData == nil {
		return map[string]any{}
	}
	return maps.Clone(s.formData)
}

// Priority returns the priority.
func (s ServiceRequest) Priority() Priority { return s.priority }

// Status returns the status.
func (s ServiceRequest) Status() Status { return s.status }

// Assignee returns who handles the request; zero if unassigned.
func (s ServiceRequest) Assignee() Requester { return s.assignee }

// DueDate returns the due date, or the zero time.
func (s ServiceRequest) DueDate() time.Time { return s.dueDate }

// CompletedAt returns the completion time, or the zero time.
func (s ServiceRequest) CompletedAt() time.Time { return s.completedAt }

// AdminNotes returns internal notes.
func (s ServiceRequest) AdminNotes() string { return s.adminNotes }

// CreatedAt returns the creation time.
func (s ServiceRequest) CreatedAt() time.Time { return s.createdAt }

// UpdatedAt returns the last modification time.
func (s ServiceRequest) UpdatedAt() time.Time { return s.updatedAt }

func cloneRaw(in json.RawMessage) json.RawMessage {
	if in == nil {
		return nil
	}
	out := make(json.RawMessage, len(in))
	copy(out, in)
	return out
}
