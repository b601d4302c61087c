package comment

import (
	"context"
	"errors"

	"github.com/VitaminP8/dsaboard/internal/model"
)

var (
	ErrParentNotFound = errors.New("parent comment not found")
	ErrParentMismatch = errors.New("parent comment belongs to a different discussion")
)

// CommentStorage keeps comments flat. Nesting is rebuilt on read with BuildTree.
type CommentStorage interface {
	// CreateComment rejects a parent that is not stored yet or that belongs to
	// another discussion, so parent chains can never form a cycle.
	CreateComment(ctx context.Context, c *model.Comment) (*model.Comment, error)
	GetCommentByID(ctx context.Context, id string) (*model.Comment, error)
	// ListComments returns the comments of a discussion in creation order.
	ListComments(ctx context.Context, discussionID string) ([]*model.Comment, error)
}
