package service

import (
	"context"
	"fmt"
	"time"

	"github.com/axd-platform/catalog/domain/access"
	"github.com/axd-platform/catalog/domain/notification"
	"github.com/axd-platform/catalog/domain/repository"
	"github.com/axd-platform/catalog/internal/database"
	"github.com/rs/zerolog"
)

// PermissionRequestParams configures a new permission request.
type PermissionRequestParams struct {
	AssetID   string
	Requester access.Principal
	Level     string
	Purpose   string
	Reason    string
	Duration  string
}

// RequestFilter narrows a permission request listing.
type RequestFilter struct {
	AssetID     string
	RequesterID string
	Status      string
}

// Access runs the permission request workflow. Every state change and the
// notifications it causes commit together.
type Access struct {
	db     database.Database
	stores Stores
	now    Clock
}

// NewAccess creates a new Access service.
func NewAccess(db database.Database, stores Stores, now Clock) *Access {
	return &Access{db: db, stores: stores, now: clockOrSystem(now)}
}

// Request files a pending request. A principal may hold one pending request
// per asset.
func (s *Access) Request(ctx context.Context, params PermissionRequestParams) (access.Request, error) {
	if !params.Requester.Known() {
		return access.Request{}, ErrPrincipalRequired
	}
	level, purpose, duration, err := parseRequestParams(params)
	if err != nil {
		return access.Request{}, err
	}

	return database.WithTransactionResult(ctx, s.db, func(ctx context.Context) (access.Request, error) {
		a, err := s.stores.Assets.FindOne(ctx, repository.WithID(params.AssetID))
		if err != nil {
			return access.Request{}, err
		}

		pending, err := s.stores.Requests.Exists(ctx,
			access.WithAssetID(a.ID()),
			access.WithRequesterID(params.Requester.ID()),
			access.WithStatus(access.StatusPending),
		)
		if err != nil {
			return access.Request{}, fmt.Errorf("check pending requests: %w", err)
		}
		if pending {
			return access.Request{}, fmt.Errorf("%w: a pending request for this asset already exists", ErrConflict)
		}

		now := s.now()
		req, err := s.stores.Requests.Create(ctx, access.NewRequest(a.ID(), params.Requester, level, purpose, params.Reason, duration, now))
		if err != nil {
			return access.Request{}, fmt.Errorf("create permission request: %w", err)
		}

		if owner := a.Owner().ID(); owner != "" && owner != params.Requester.ID() {
			msg := fmt.Sprintf("%s requested %s access to %s", params.Requester.Name(), level, a.Name())
			if err := s.notify(ctx, owner, notification.KindPermissionRequested, "Permission requested", msg, a.ID(), now); err != nil {
				return access.Request{}, err
			}
		}

		zerolog.Ctx(ctx).Info().
			Str("request_id", req.ID()).
			Str("asset_id", a.ID()).
			Str("level", string(level)).
			Msg("permission requested")
		return req, nil
	})
}

func parseRequestParams(params PermissionRequestParams) (access.Level, access.Purpose, access.Duration, error) {
	levelText := params.Level
	if levelText == "" {
		levelText = string(access.LevelViewer)
	}
	level, err := access.ParseLevel(levelText)
	if err != nil {
		return "", "", "", fmt.Errorf("%w: %w", ErrValidation, err)
	}
	purpose, err := access.ParsePurpose(params.Purpose)
	if err != nil {
		return "", "", "", fmt.Errorf("%w: %w", ErrValidation, err)
	}
	durationText := params.Duration
	if durationText == "" {
		durationText = string(access.DurationThreeMonths)
	}
	duration, err := access.ParseDuration(durationText)
	if err != nil {
		return "", "", "", fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return level, purpose, duration, nil
}

// Approve moves a pending request to approved and grants the requested
// access, expiring after the requested duration.
func (s *Access) Approve(ctx context.Context, id string, reviewer access.Principal, comment string) (access.Request, access.Grant, error) {
	if !reviewer.Known() {
		return access.Request{}, access.Grant{}, ErrPrincipalRequired
	}

	type outcome struct {
		request access.Request
		grant   access.Grant
	}
	result, err := database.WithTransactionResult(ctx, s.db, func(ctx context.Context) (outcome, error) {
		req, err := s.stores.Requests.FindOne(ctx, repository.WithID(id))
		if err != nil {
			return outcome{}, err
		}

		now := s.now()
		approved, grant, err := req.Approve(reviewer, comment, now)
		if err != nil {
			return outcome{}, err
		}
		if approved, err = s.stores.Requests.Save(ctx, approved); err != nil {
			return outcome{}, fmt.Errorf("save permission request: %w", err)
		}
		if grant, err = s.stores.Grants.Create(ctx, grant); err != nil {
			return outcome{}, fmt.Errorf("create permission: %w", err)
		}

		msg := fmt.Sprintf("Your %s access request was approved", approved.Level())
		if err := s.notify(ctx, approved.Requester().ID(), notification.KindPermissionApproved, "Permission approved", msg, approved.AssetID(), now); err != nil {
			return outcome{}, err
		}
		return outcome{request: approved, grant: grant}, nil
	})
	if err != nil {
		return access.Request{}, access.Grant{}, err
	}

	zerolog.Ctx(ctx).Info().
		Str("request_id", id).
		Str("permission_id", result.grant.ID()).
		Time("expires_at", result.grant.ExpiresAt()).
		Msg("permission request approved")
	return result.request, result.grant, nil
}

// Reject moves a pending request to rejected.
func (s *Access) Reject(ctx context.Context, id string, reviewer access.Principal, comment string) (access.Request, error) {
	if !reviewer.Known() {
		return access.Request{}, ErrPrincipalRequired
	}
	return database.WithTransactionResult(ctx, s.db, func(ctx context.Context) (access.Request, error) {
		req, err := s.stores.Requests.FindOne(ctx, repository.WithID(id))
		if err != nil {
			return access.Request{}, err
		}

		now := s.now()
		rejected, err := req.Reject(reviewer, comment, now)
		if err != nil {
			return access.Request{}, err
		}
		if rejected, err = s.stores.Requests.Save(ctx, rejected); err != nil {
			return access.Request{}, fmt.Errorf("save permission request: %w", err)
		}

		msg := "Your access request was rejected"
		if comment != "" {
			msg += ": " + comment
		}
		if err := s.notify(ctx, rejected.Requester().ID(), notification.KindPermissionRejected, "Permission rejected", msg, rejected.AssetID(), now); err != nil {
			return access.Request{}, err
		}
		return rejected, nil
	})
}

// Cancel withdraws a pending request on behalf of its requester.
func (s *Access) Cancel(ctx context.Context, id string, by access.Principal) (access.Request, error) {
	if !by.Known() {
		return access.Request{}, ErrPrincipalRequired
	}
	return database.WithTransactionResult(ctx, s.db, func(ctx context.Context) (access.Request, error) {
		req, err := s.stores.Requests.FindOne(ctx, repository.WithID(id))
		if err != nil {
			return access.Request{}, err
		}
		cancelled, err := req.Cancel(by, s.now())
		if err != nil {
			return access.Request{}, err
		}
		if cancelled, err = s.stores.Requests.Save(ctx, cancelled); err != nil {
			return access.Request{}, fmt.Errorf("save permission request: %w", err)
		}
		return cancelled, nil
	})
}

// Revoke ends a grant immediately.
func (s *Access) Revoke(ctx context.Context, grantID string, by access.Principal) (access.Grant, error) {
	if !by.Known() {
		return access.Grant{}, ErrPrincipalRequired
	}
	return database.WithTransactionResult(ctx, s.db, func(ctx context.Context) (access.Grant, error) {
		grant, err := s.stores.Grants.FindOne(ctx, repository.WithID(grantID))
		if err != nil {
			return access.Grant{}, err
		}

		now := s.now()
		revoked, err := grant.Revoke(by, now)
		if err != nil {
			return access.Grant{}, err
		}
		if revoked, err = s.stores.Grants.Save(ctx, revoked); err != nil {
			return access.Grant{}, fmt.Errorf("save permission: %w", err)
		}

		msg := fmt.Sprintf("Your %s access was revoked", revoked.Level())
		if err := s.notify(ctx, revoked.Holder().ID(), notification.KindPermissionRevoked, "Permission revoked", msg, revoked.AssetID(), now); err != nil {
			return access.Grant{}, err
		}

		zerolog.Ctx(ctx).Info().Str("permission_id", grantID).Str("revoked_by", by.ID()).Msg("permission revoked")
		return revoked, nil
	})
}

// Requests lists permission requests, newest first.
func (s *Access) Requests(ctx context.Context, filter RequestFilter) ([]access.Request, error) {
	options := []repository.Option{repository.WithOrderDesc("created_at"), repository.WithOrderDesc("id")}
	if filter.AssetID != "" {
		options = append(options, access.WithAssetID(filter.AssetID))
	}
	if filter.RequesterID != "" {
		options = append(options, access.WithRequesterID(filter.RequesterID))
	}
	if filter.Status != "" {
		status := access.Status(filter.Status)
		switch status {
		case access.StatusPending, access.StatusApproved, access.StatusRejected, access.StatusCancelled:
		default:
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, filter.Status)
		}
		options = append(options, access.WithStatus(status))
	}

	requests, err := s.stores.Requests.Find(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("list permission requests: %w", err)
	}
	return requests, nil
}

// Grants lists every grant on an asset, oldest first.
func (s *Access) Grants(ctx context.Context, assetID string) ([]access.Grant, error) {
	grants, err := s.stores.Grants.Find(ctx,
		access.WithAssetID(assetID),
		repository.WithOrderAsc("granted_at"),
		repository.WithOrderAsc("id"),
	)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	return grants, nil
}

// Now returns the service clock's current time.
func (s *Access) Now() time.Time {
	return s.now()
}

func (s *Access) notify(ctx context.Context, userID string, kind notification.Kind, title, message, assetID string, at time.Time) error {
	if userID == "" {
		return nil
	}
	link := "/assets/" + assetID
	if _, err := s.stores.Notifications.Create(ctx, notification.New(userID, kind, title, message, link, at)); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}
