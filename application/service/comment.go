package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/axd-platform/catalog/domain/access"
	"github.com/axd-platform/catalog/domain/asset"
	"github.com/axd-platform/catalog/domain/repository"
	"github.com/axd-platform/catalog/internal/database"
	"github.com/rs/zerolog"
)

// CommentParams configures a new comment.
type CommentParams struct {
	AssetID  string
	Author   access.Principal
	UserName string
	Content  string
	ParentID string
	IsAnswer bool
}

// Comment handles writes to asset discussions.
type Comment struct {
	assets   asset.AssetStore
	comments asset.CommentStore
	now      Clock
}

// NewComment creates a new Comment service.
func NewComment(assets asset.AssetStore, comments asset.CommentStore, now Clock) *Comment {
	return &Comment{assets: assets, comments: comments, now: clockOrSystem(now)}
}

// Create adds a comment. A reply's parent must exist on the same asset and
// its ancestor chain must end at a root.
func (s *Comment) Create(ctx context.Context, params CommentParams) (asset.Comment, error) {
	if !params.Author.Known() {
		return asset.Comment{}, ErrPrincipalRequired
	}
	if _, err := s.assets.FindOne(ctx, repository.WithID(params.AssetID)); err != nil {
		return asset.Comment{}, err
	}

	name := params.UserName
	if name == "" {
		name = params.Author.Name()
	}
	c, err := asset.NewComment(params.AssetID, params.Author.ID(), name, params.Content)
	if err != nil {
		return asset.Comment{}, err
	}

	if params.ParentID != "" {
		if err := s.checkAncestry(ctx, params.AssetID, params.ParentID); err != nil {
			return asset.Comment{}, err
		}
		c = c.AsReplyTo(params.ParentID)
	}

	saved, err := s.comments.Create(ctx, c.AsAnswer(params.IsAnswer).WithCreatedAt(s.now()))
	if err != nil {
		return asset.Comment{}, fmt.Errorf("create comment: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("asset_id", saved.AssetID()).
		Str("comment_id", saved.ID()).
		Bool("reply", !saved.IsRoot()).
		Msg("comment created")
	return saved, nil
}

// checkAncestry walks from parentID to a root, failing on a missing node,
// a node on another asset, or a revisited node.
func (s *Comment) checkAncestry(ctx context.Context, assetID, parentID string) error {
	visited := make(map[string]bool)
	for id := parentID; id != ""; {
		if visited[id] {
			return fmt.Errorf("%w: ancestry of %s loops", asset.ErrInvalidParent, parentID)
		}
		visited[id] = true

		node, err := s.comments.FindOne(ctx, repository.WithID(id))
		if errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("%w: comment %s does not exist", asset.ErrInvalidParent, id)
		}
		if err != nil {
			return fmt.Errorf("find parent comment: %w", err)
		}
		if node.AssetID() != assetID {
			return fmt.Errorf("%w: comment %s belongs to another asset", asset.ErrInvalidParent, id)
		}
		id = node.ParentID()
	}
	return nil
}
