package asset

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidParent indicates a reply whose parent is missing, belongs to a
// different asset, or whose ancestry loops.
var ErrInvalidParent = errors.New("invalid parent comment")

// ErrEmptyComment indicates a comment without content.
var ErrEmptyComment = errors.New("comment content is required")

// Comment is a message on an asset. Replies reference their parent; root
// comments have no parent.
type Comment struct {
	id        string
	assetID   string
	userID    string
	userName  string
	content   string
	parentID  string
	isAnswer  bool
	createdAt time.Time
}

// NewComment creates a root comment that has not been persisted.
func NewComment(assetID, userID, userName, content string) (Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Comment{}, ErrEmptyComment
	}
	return Comment{
		id:        uuid.NewString(),
		assetID:   assetID,
		userID:    userID,
		userName:  userName,
		content:   content,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructComment recreates a comment from persistence.
func ReconstructComment(id, assetID, userID, userName, content, parentID string, isAnswer bool, createdAt time.Time) Comment {
	return Comment{
		id:        id,
		assetID:   assetID,
		userID:    userID,
		userName:  userName,
		content:   content,
		parentID:  parentID,
		isAnswer:  isAnswer,
		createdAt: createdAt,
	}
}

// ID returns the comment id.
func (c Comment) ID() string { return c.id }

// AssetID returns the asset the comment belongs to.
func (c Comment) AssetID() string { return c.assetID }

// UserID returns the author's user id.
func (c Comment) UserID() string { return c.userID }

// UserName returns the author's display name.
func (c Comment) UserName() string { return c.userName }

// Content returns the comment text.
func (c Comment) Content() string { return c.content }

// ParentID returns the parent comment id, or empty for a root comment.
func (c Comment) ParentID() string { return c.parentID }

// IsRoot reports whether the comment has no parent.
func (c Comment) IsRoot() bool { return c.parentID == "" }

// IsAnswer reports whether the comment was marked as the accepted answer.
func (c Comment) IsAnswer() bool { return c.isAnswer }

// CreatedAt returns the creation time.
func (c Comment) CreatedAt() time.Time { return c.createdAt }

// AsReplyTo returns a copy attached to parent.
func (c Comment) AsReplyTo(parentID string) Comment {
	c.parentID = parentID
	return c
}

// AsAnswer returns a copy with the answer flag set.
func (c Comment) AsAnswer(answer bool) Comment {
	c.isAnswer = answer
	return c
}

// WithCreatedAt returns a copy with the creation time set.
func (c Comment) WithCreatedAt(t time.Time) Comment {
	c.createdAt = t
	return c
}

// Thread is a comment together with its replies.
type Thread struct {
	Comment Comment
	Replies []Thread
}

// BuildThreads reconstructs the reply tree from a flat list, preserving the
// input order among siblings. Comments whose parent is absent from the list
// become roots. Comments caught in a parent cycle are also surfaced as roots,
// each appearing once.
func BuildThreads(comments []Comment) []Thread {
	present := make(map[string]bool, len(comments))
	for _, c := range comments {
		present[c.id] = true
	}

	children := make(map[string][]Comment, len(comments))
	var roots []Comment
	for _, c := range comments {
		if c.parentID == "" || !present[c.parentID] {
			roots = append(roots, c)
			continue
		}
		children[c.parentID] = append(children[c.parentID], c)
	}

	visited := make(map[string]bool, len(comments))
	var build func(c Comment) Thread
	build = func(c Comment) Thread {
		visited[c.id] = true
		t := Thread{Comment: c, Replies: []Thread{}}
		for _, child := range children[c.id] {
			if visited[child.id] {
				continue
			}
			t.Replies = append(t.Replies, build(child))
		}
		return t
	}

	threads := make([]Thread, 0, len(roots))
	for _, r := range roots {
		threads = append(threads, build(r))
	}
	for _, c := range comments {
		if !visited[c.id] {
			threads = append(threads, build(c))
		}
	}
	return threads
}
