package access

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidTransition indicates a status change the workflow does not allow.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrNotRequester indicates an action reserved for the requester.
var ErrNotRequester = errors.New("only the requester may perform this action")

// ErrInvalidDuration indicates an unknown access duration.
var ErrInvalidDuration = errors.New("invalid duration")

// ErrInvalidPurpose indicates an unknown purpose category.
var ErrInvalidPurpose = errors.New("invalid purpose category")

// Status is the state of a permission request.
type Status string

// Status values.
const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s != StatusPending
}

// CanTransitionTo reports whether the workflow allows moving from s to next.
// Only pending requests move, and only to a terminal state.
func (s Status) CanTransitionTo(next Status) bool {
	if s != StatusPending {
		return false
	}
	switch next {
	case StatusApproved, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// Duration is how long an approved grant lasts.
type Duration string

// Duration values.
const (
	DurationOneMonth    Duration = "1month"
	DurationThreeMonths Duration = "3months"
	DurationSixMonths   Duration = "6months"
	DurationPermanent   Duration = "permanent"
)

// ParseDuration validates a duration string.
func ParseDuration(s string) (Duration, error) {
	switch v := Duration(s); v {
	case DurationOneMonth, DurationThreeMonths, DurationSixMonths, DurationPermanent:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}
}

// ExpiresFrom returns the expiry of a grant issued at start, or the zero
// time for a permanent grant.
func (d Duration) ExpiresFrom(start time.Time) time.Time {
	switch d {
	case DurationOneMonth:
		return start.AddDate(0, 1, 0)
	case DurationThreeMonths:
		return start.AddDate(0, 3, 0)
	case DurationSixMonths:
		return start.AddDate(0, 6, 0)
	default:
		return time.Time{}
	}
}

// Purpose is why access is requested.
type Purpose string

// Purpose values.
const (
	PurposeAnalysis    Purpose = "analysis"
	PurposeReporting   Purpose = "reporting"
	PurposeDevelopment Purpose = "development"
	PurposeOther       Purpose = "other"
)

// ParsePurpose validates a purpose string.
func ParsePurpose(s string) (Purpose, error) {
	switch v := Purpose(s); v {
	case PurposeAnalysis, PurposeReporting, PurposeDevelopment, PurposeOther:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPurpose, s)
	}
}

// Review records the outcome of a reviewed request.
type Review struct {
	reviewer Principal
	comment  string
	at       time.Time
}

// Reviewer returns who reviewed the request.
func (r Review) Reviewer() Principal { return r.reviewer }

// Comment returns the reviewer's comment.
func (r Review) Comment() string { return r.comment }

// At returns when the review happened, or the zero time if not reviewed.
func (r Review) At() time.Time { return r.at }

// NewReview creates a Review.
func NewReview(reviewer Principal, comment string, at time.Time) Review {
	return Review{reviewer: reviewer, comment: comment, at: at}
}

// Request is a PermissionRequest: a principal asking for a grant on an asset.
type Request struct {
	id        string
	assetID   string
	requester Principal
	level     Level
	purpose   Purpose
	reason    string
	duration  Duration
	status    Status
	review    Review
	createdAt time.Time
	updatedAt time.Time
}

// NewRequest creates a pending request that has not been persisted.
func NewRequest(assetID string, requester Principal, level Level, purpose Purpose, reason string, duration Duration, now time.Time) Request {
	return Request{
		id:        uuid.NewString(),
		assetID:   assetID,
		requester: requester,
		level:     level,
		purpose:   purpose,
		reason:    reason,
		duration:  duration,
		status:    StatusPending,
		createdAt: now,
		updatedAt: now,
	}
}

// ReconstructRequest recreates a request from persistence.
func ReconstructRequest(
	id, assetID string,
	requester Principal,
	level Level,
	purpose Purpose,
	reason string,
	duration Duration,
	status Status,
	review Review,
	createdAt, updatedAt time.Time,
) Request {
	return Request{
		id:        id,
		assetID:   assetID,
		requester: requester,
		level:     level,
		purpose:   purpose,
		reason:    reason,
		duration:  duration,
		status:    status,
		review:    review,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the request id.
func (r Request) ID() string { return r.id }

// AssetID returns the requested asset.
func (r Request) AssetID() string { return r.assetID }

// Requester returns who asked.
func (r Request) Requester() Principal { return r.requester }

// Level returns the requested permission level.
func (r Request) Level() Level { return r.level }

// Purpose returns the stated purpose category.
func (r Request) Purpose() Purpose { return r.purpose }

// Reason returns the free-text justification.
func (r Request) Reason() string { return r.reason }

// Duration returns how long the grant should last once approved.
func (r Request) Duration() Duration { return r.duration }

// Status returns the workflow state.
func (r Request) Status() Status { return r.status }

// Review returns the review outcome, if any.
func (r Request) Review() Review { return r.review }

// CreatedAt returns the creation time.
func (r Request) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns the last modification time.
func (r Request) UpdatedAt() time.Time { return r.updatedAt }

// Approve moves a pending request to approved and returns the grant it produces.
func (r Request) Approve(reviewer Principal, comment string, at time.Time) (Request, Grant, error) {
	next, err := r.transition(StatusApproved, at)
	if err != nil {
		return r, Grant{}, err
	}
	next.review = NewReview(reviewer, comment, at)
	grant := NewGrant(r.assetID, r.requester, r.level, reviewer, at, r.duration.ExpiresFrom(at))
	return next, grant, nil
}

// Reject moves a pending request to rejected.
func (r Request) Reject(reviewer Principal, comment string, at time.Time) (Request, error) {
	next, err := r.transition(StatusRejected, at)
	if err != nil {
		return r, err
	}
	next.review = NewReview(reviewer, comment, at)
	return next, nil
}

// Cancel withdraws a pending request. Only the requester may cancel.
func (r Request) Cancel(by Principal, at time.Time) (Request, error) {
	if !by.Known() || by.ID() != r.requester.ID() {
		return r, ErrNotRequester
	}
	return r.transition(StatusCancelled, at)
}

func (r Request) transition(next Status, at time.Time) (Request, error) {
	if !r.status.CanTransitionTo(next) {
		return r, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, r.status, next)
	}
	r.status = next
	r.updatedAt = at
	return r, nil
}
