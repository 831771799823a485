package dto

import (
	"time"

	"github.com/axd-platform/catalog/domain/access"
	"github.com/axd-platform/catalog/domain/notification"
)

// PermissionRequest is a request for access to one asset.
type PermissionRequest struct {
	ID              string     `json:"id"`
	AssetID         string     `json:"asset_id"`
	RequesterID     string     `json:"requester_id"`
	RequesterName   string     `json:"requester_name"`
	RequesterEmail  string     `json:"requester_email"`
	RequestedLevel  string     `json:"requested_level"`
	PurposeCategory string     `json:"purpose_category"`
	Reason          string     `json:"reason"`
	Duration        string     `json:"duration"`
	Status          string     `json:"status"`
	ReviewerID      *string    `json:"reviewer_id"`
	ReviewerName    *string    `json:"reviewer_name"`
	ReviewerComment *string    `json:"reviewer_comment"`
	ReviewedAt      *time.Time `json:"reviewed_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// PermissionRequestFromDomain converts a permission request.
func PermissionRequestFromDomain(r access.Request) PermissionRequest {
	out := PermissionRequest{
		ID:              r.ID(),
		AssetID:         r.AssetID(),
		RequesterID:     r.Requester().ID(),
		RequesterName:   r.Requester().Name(),
		RequesterEmail:  r.Requester().Email(),
		RequestedLevel:  string(r.Level()),
		PurposeCategory: string(r.Purpose()),
		Reason:          r.Reason(),
		Duration:        string(r.Duration()),
		Status:          string(r.Status()),
		CreatedAt:       r.CreatedAt(),
		UpdatedAt:       r.UpdatedAt(),
	}
	if review := r.Review(); !review.At().IsZero() {
		out.ReviewerID = optional(review.Reviewer().ID())
		out.ReviewerName = optional(review.Reviewer().Name())
		out.ReviewerComment = optional(review.Comment())
		out.ReviewedAt = optionalTime(review.At())
	}
	return out
}

// PermissionRequestsFromDomain converts permission requests.
func PermissionRequestsFromDomain(requests []access.Request) []PermissionRequest {
	out := make([]PermissionRequest, len(requests))
	for i, r := range requests {
		out[i] = PermissionRequestFromDomain(r)
	}
	return out
}

// PermissionRequestCreateRequest is the body of POST /assets/{id}/permission-requests.
type PermissionRequestCreateRequest struct {
	RequestedLevel  string `json:"requested_level" validate:"omitempty,oneof=viewer editor developer"`
	PurposeCategory string `json:"purpose_category" validate:"required,oneof=analysis reporting development other"`
	Reason          string `json:"reason" validate:"max=2000"`
	Duration        string `json:"duration" validate:"omitempty,oneof=1month 3months 6months permanent"`
	RequesterName   string `json:"requester_name" validate:"max=100"`
	RequesterEmail  string `json:"requester_email" validate:"omitempty,email"`
}

// ReviewRequest is the body of approve and reject calls.
type ReviewRequest struct {
	Comment string `json:"comment" validate:"max=2000"`
}

// Permission is an access grant on an asset.
type Permission struct {
	ID              string     `json:"id"`
	AssetID         string     `json:"asset_id"`
	UserID          string     `json:"user_id"`
	UserName        string     `json:"user_name"`
	UserEmail       string     `json:"user_email"`
	PermissionLevel string     `json:"permission_level"`
	GrantedBy       string     `json:"granted_by"`
	GrantedByName   string     `json:"granted_by_name"`
	GrantedAt       time.Time  `json:"granted_at"`
	ExpiresAt       *time.Time `json:"expires_at"`
	RevokedAt       *time.Time `json:"revoked_at"`
	RevokedBy       *string    `json:"revoked_by"`
	Active          bool       `json:"active"`
}

// PermissionFromDomain converts a grant, evaluating activity at now.
func PermissionFromDomain(g access.Grant, now time.Time) Permission {
	return Permission{
		ID:              g.ID(),
		AssetID:         g.AssetID(),
		UserID:          g.Holder().ID(),
		UserName:        g.Holder().Name(),
		UserEmail:       g.Holder().Email(),
		PermissionLevel: string(g.Level()),
		GrantedBy:       g.GrantedBy().ID(),
		GrantedByName:   g.GrantedBy().Name(),
		GrantedAt:       g.GrantedAt(),
		ExpiresAt:       optionalTime(g.ExpiresAt()),
		RevokedAt:       optionalTime(g.RevokedAt()),
		RevokedBy:       optional(g.RevokedBy()),
		Active:          g.IsActive(now),
	}
}

// PermissionsFromDomain converts grants.
func PermissionsFromDomain(grants []access.Grant, now time.Time) []Permission {
	out := make([]Permission, len(grants))
	for i, g := range grants {
		out[i] = PermissionFromDomain(g, now)
	}
	return out
}

// ApprovalResponse is returned when a request is approved.
type ApprovalResponse struct {
	Request    PermissionRequest `json:"request"`
	Permission Permission        `json:"permission"`
}

// Notification is an in-app message.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      string    `json:"link"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationFromDomain converts a notification.
func NotificationFromDomain(n notification.Notification) Notification {
	return Notification{
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

// NotificationsFromDomain converts notifications.
func NotificationsFromDomain(items []notification.Notification) []Notification {
	out := make([]Notification, len(items))
	for i, n := range items {
		out[i] = NotificationFromDomain(n)
	}
	return out
}
