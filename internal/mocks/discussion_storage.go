package mocks

import (
	"context"

	"github.com/VitaminP8/dsaboard/internal/discussion"
	"github.com/VitaminP8/dsaboard/internal/model"
)

// FailingDiscussionStorage delegates to Next until Err is set, then every call
// fails with Err.
type FailingDiscussionStorage struct {
	Next discussion.DiscussionStorage
	Err  error
}

func (m *FailingDiscussionStorage) CreateDiscussion(ctx context.Context, d *model.Discussion) (*model.Discussion, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Next.CreateDiscussion(ctx, d)
}

func (m *FailingDiscussionStorage) GetDiscussionByID(ctx context.Context, id string) (*model.Discussion, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Next.GetDiscussionByID(ctx, id)
}

func (m *FailingDiscussionStorage) ListDiscussions(ctx context.Context, f discussion.Filter) ([]*model.Discussion, int, error) {
	if m.Err != nil {
		return nil, 0, m.Err
	}
	return m.Next.ListDiscussions(ctx, f)
}

func (m *FailingDiscussionStorage) ListAllDiscussions(ctx context.Context) ([]*model.Discussion, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Next.ListAllDiscussions(ctx)
}

func (m *FailingDiscussionStorage) UpdateDiscussion(ctx context.Context, d *model.Discussion) (*model.Discussion, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Next.UpdateDiscussion(ctx, d)
}

func (m *FailingDiscussionStorage) DeleteDiscussion(ctx context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	return m.Next.DeleteDiscussion(ctx, id)
}
