// Package notification provides in-app messages addressed to a single user.
package notification

import (
	"time"

	"github.com/axd-platform/catalog/domain/repository"
	"github.com/google/uuid"
)

// Kind classifies a notification.
type Kind string

// Kind values.
const (
	KindPermissionRequested Kind = "permission_requested"
	KindPermissionApproved  Kind = "permission_approved"
	KindPermissionRejected  Kind = "permission_rejected"
	KindPermissionRevoked   Kind = "permission_revoked"
)

// Notification is a message for one user.
type Notification struct {
	id        string
	userID    string
	kind      Kind
	title     string
	message   string
	link      string
	read      bool
	createdAt time.Time
}

// New creates an unread notification that has not been persisted.
func New(userID string, kind Kind, title, message, link string, at time.Time) Notification {
	return Notification{
		id:        uuid.NewString(),
		userID:    userID,
		kind:      kind,
		title:     title,
		message:   message,
		link:      link,
		createdAt: at,
	}
}

// Reconstruct recreates a notification from persistence.
func Reconstruct(id, userID string, kind Kind, title, message, link string, read bool, createdAt time.Time) Notification {
	return Notification{
		id:        id,
		userID:    userID,
		kind:      kind,
		title:     title,
		message:   message,
		link:      link,
		read:      read,
		createdAt: createdAt,
	}
}

// ID returns the notification id.
func (n Notification) ID() string { return n.id }

// UserID returns the recipient.
func (n Notification) UserID() string { return n.userID }

// Kind returns the notification kind.
func (n Notification) Kind() Kind { return n.kind }

// Title returns the headline.
func (n Notification) Title() string { return n.title }

// Message returns the body text.
func (n Notification) Message() string { return n.message }

// Link returns the client route the notification points at.
func (n Notification) Link() string { return n.link }

// Read reports whether the recipient has seen the notification.
func (n Notification) Read() bool { return n.read }

// CreatedAt returns the creation time.
func (n Notification) CreatedAt() time.Time { return n.createdAt }

// MarkRead returns a read copy.
func (n Notification) MarkRead() Notification {
	n.read = true
	return n
}

// Store defines operations for persisting and retrieving notifications.
type Store interface {
	repository.Store[Notification]
	repository.Writer[Notification]
}

// WithUserID filters by recipient.
func WithUserID(id string) repository.Option {
	return repository.WithCondition("user_id", id)
}

// WithUnread filters unread notifications.
func WithUnread() repository.Option {
	return repository.WithCondition("is_read", false)
}

// WithNewestFirst orders by creation time, newest first.
func WithNewestFirst() []repository.Option {
	return []repository.Option{repository.WithOrderDesc("created_at"), repository.WithOrderDesc("id")}
}
