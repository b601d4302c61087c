package mocks

import (
	"context"

	"github.com/VitaminP8/dsaboard/internal/comment"
	"github.com/VitaminP8/dsaboard/internal/model"
)

// FailingCommentStorage delegates to Next until Err is set, then every call
// fails with Err.
type FailingCommentStorage struct {
	Next comment.CommentStorage
	Err  error
}

func (m *FailingCommentStorage) CreateComment(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Next.CreateComment(ctx, c)
}

func (m *FailingCommentStorage) GetCommentByID(ctx context.Context, id string) (*model.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Next.GetCommentByID(ctx, id)
}

func (m *FailingCommentStorage) ListComments(ctx context.Context, discussionID string) ([]*model.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Next.ListComments(ctx, discussionID)
}
