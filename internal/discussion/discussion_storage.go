package discussion

import (
	"context"

	"github.com/VitaminP8/dsaboard/internal/model"
)

// Filter selects a page of discussions. Tag is matched case-insensitively as a
// substring of any tag; empty Tag matches everything.
type Filter struct {
	Tag    string
	Offset int
	Limit  int
}

type DiscussionStorage interface {
	CreateDiscussion(ctx context.Context, d *model.Discussion) (*model.Discussion, error)
	GetDiscussionByID(ctx context.Context, id string) (*model.Discussion, error)
	// ListDiscussions returns the requested page, newest first, and the total
	// number of discussions matching the filter.
	ListDiscussions(ctx context.Context, f Filter) ([]*model.Discussion, int, error)
	ListAllDiscussions(ctx context.Context) ([]*model.Discussion, error)
	// UpdateDiscussion overwrites title, content, tags and UpdatedAt.
	UpdateDiscussion(ctx context.Context, d *model.Discussion) (*model.Discussion, error)
	// DeleteDiscussion removes the discussion, its comments and every vote on them.
	DeleteDiscussion(ctx context.Context, id string) error
}

type QuestionDiscussionStorage interface {
	CreateQuestionDiscussion(ctx context.Context, d *model.QuestionDiscussion) (*model.QuestionDiscussion, error)
	GetQuestionDiscussionByID(ctx context.Context, id string) (*model.QuestionDiscussion, error)
	// ListQuestionDiscussions returns the threads of one question, newest first.
	ListQuestionDiscussions(ctx context.Context, questionTitle string) ([]*model.QuestionDiscussion, error)
}
