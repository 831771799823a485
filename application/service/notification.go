package service

import (
	"context"
	"fmt"

	"github.com/axd-platform/catalog/domain/notification"
	"github.com/axd-platform/catalog/domain/repository"
)

// Notification reads and acknowledges a user's notifications.
type Notification struct {
	store notification.Store
}

// NewNotification creates a new Notification service.
func NewNotification(store notification.Store) *Notification {
	return &Notification{store: store}
}

// List returns the user's notifications, newest first.
func (s *Notification) List(ctx context.Context, userID string) ([]notification.Notification, error) {
	if userID == "" {
		return nil, ErrPrincipalRequired
	}
	items, err := s.store.Find(ctx, append(notification.WithNewestFirst(), notification.WithUserID(userID))...)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return items, nil
}

// MarkRead marks one of the user's notifications as read. Notifications of
// other users are reported as not found.
func (s *Notification) MarkRead(ctx context.Context, id, userID string) (notification.Notification, error) {
	if userID == "" {
		return notification.Notification{}, ErrPrincipalRequired
	}
	n, err := s.store.FindOne(ctx, repository.WithID(id), notification.WithUserID(userID))
	if err != nil {
		return notification.Notification{}, err
	}
	if n.Read() {
		return n, nil
	}
	saved, err := s.store.Save(ctx, n.MarkRead())
	if err != nil {
		return notification.Notification{}, fmt.Errorf("save notification: %w", err)
	}
	return saved, nil
}
