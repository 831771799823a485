package service

import (
	"context"
	"fmt"

	"github.com/axd-platform/catalog/domain/repository"
	"github.com/axd-platform/catalog/domain/request"
)

// CategoryWithTypes is a request category together with its types.
type CategoryWithTypes struct {
	Category request.Category
	Types    []request.Type
}

// RequestCenter reads request categories and service requests.
type RequestCenter struct {
	stores Stores
}

// NewRequestCenter creates a new RequestCenter service.
func NewRequestCenter(stores Stores) *RequestCenter {
	return &RequestCenter{stores: stores}
}

// Categories returns categories by sort order, each with its types.
func (s *RequestCenter) Categories(ctx context.Context) ([]CategoryWithTypes, error) {
	categories, err := s.stores.Categories.Find(ctx, request.WithSortOrder()...)
	if err != nil {
		return nil, fmt.Errorf("list request categories: %w", err)
	}
	if len(categories) == 0 {
		return []CategoryWithTypes{}, nil
	}

	ids := make([]string, len(categories))
	for i, c := range categories {
		ids[i] = c.ID()
	}
	types, err := s.stores.Types.Find(ctx, append(request.WithSortOrder(), request.WithCategoryIDIn(ids))...)
	if err != nil {
		return nil, fmt.Errorf("list request types: %w", err)
	}

	byCategory := make(map[string][]request.Type, len(categories))
	for _, t := range types {
		byCategory[t.CategoryID()] = append(byCategory[t.CategoryID()], t)
	}
	result := make([]CategoryWithTypes, len(categories))
	for i, c := range categories {
		ts := byCategory[c.ID()]
		if ts == nil {
			ts = []request.Type{}
		}
		result[i] = CategoryWithTypes{Category: c, Types: ts}
	}
	return result, nil
}

// ServiceRequests lists service requests newest first, optionally by status.
func (s *RequestCenter) ServiceRequests(ctx context.Context, status string) ([]request.ServiceRequest, error) {
	options := []repository.Option{repository.WithOrderDesc("created_at"), repository.WithOrderDesc("id")}
	if status != "" {
		st := request.Status(status)
		switch st {
		case request.StatusSubmitted, request.StatusInProgress, request.StatusCompleted, request.StatusRejected:
		default:
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
		}
		options = append(options, request.WithStatus(st))
	}
	items, err := s.stores.ServiceRequests.Find(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("list service requests: %w", err)
	}
	return items, nil
}
