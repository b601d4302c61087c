package forum

import (
	"context"
	"fmt"
	"strings"

	"github.com/VitaminP8/dsaboard/internal/discussion"
	"github.com/VitaminP8/dsaboard/internal/model"
)

// DiscussionInput is the body of the create and edit operations. Tags must be
// present but may be empty.
type DiscussionInput struct {
	Title   string
	Content string
	Tags    []string
	UserID  string
}

func (in DiscussionInput) complete() bool {
	return strings.TrimSpace(in.Title) != "" &&
		strings.TrimSpace(in.Content) != "" &&
		in.Tags != nil &&
		in.UserID != ""
}

type DiscussionQuery struct {
	Tag   string
	Page  int
	Limit int
}

func (s *Service) ListDiscussions(ctx context.Context, q DiscussionQuery) (*model.DiscussionPage, error) {
	page, limit := NormalizePage(q.Page, q.Limit)
	skip := (page - 1) * limit

	items, total, err := s.discussions.ListDiscussions(ctx, discussion.Filter{
		Tag:    strings.TrimSpace(q.Tag),
		Offset: skip,
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("could not list discussions: %w", err)
	}

	if err := s.populateDiscussions(ctx, items); err != nil {
		return nil, err
	}

	return &model.DiscussionPage{
		Discussions: items,
		Total:       total,
		HasMore:     total > skip+len(items),
	}, nil
}

func (s *Service) AllDiscussions(ctx context.Context) ([]*model.Discussion, error) {
	items, err := s.discussions.ListAllDiscussions(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list discussions: %w", err)
	}
	if err := s.populateDiscussions(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service) GetDiscussion(ctx context.Context, id string) (*model.Discussion, error) {
	d, err := s.discussions.GetDiscussionByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Discussion not found", "could not get discussion")
	}
	if err := s.populateDiscussions(ctx, []*model.Discussion{d}); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) CreateDiscussion(ctx context.Context, in DiscussionInput) (*model.Discussion, error) {
	if !in.complete() {
		return nil, fail(ErrBadRequest, "Missing required fields")
	}
	if _, err := s.requireUser(ctx, in.UserID); err != nil {
		return nil, err
	}

	d, err := s.discussions.CreateDiscussion(ctx, &model.Discussion{
		Title:     strings.TrimSpace(in.Title),
		Content:   strings.TrimSpace(in.Content),
		Tags:      ProcessTags(in.Tags),
		AuthorID:  in.UserID,
		CreatedAt: s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create discussion: %w", err)
	}

	if err := s.populateDiscussions(ctx, []*model.Discussion{d}); err != nil {
		return nil, err
	}
	return d, nil
}

// UpdateDiscussion is allowed to the author only.
func (s *Service) UpdateDiscussion(ctx context.Context, id string, in DiscussionInput) (*model.Discussion, error) {
	if !in.complete() {
		return nil, fail(ErrBadRequest, "Missing required fields")
	}

	existing, err := s.discussions.GetDiscussionByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Discussion not found", "could not get discussion")
	}
	if existing.AuthorID != in.UserID {
		return nil, fail(ErrForbidden, "Unauthorized to edit this discussion")
	}

	d, err := s.discussions.UpdateDiscussion(ctx, &model.Discussion{
		ID:        id,
		Title:     strings.TrimSpace(in.Title),
		Content:   strings.TrimSpace(in.Content),
		Tags:      ProcessTags(in.Tags),
		UpdatedAt: s.now(),
	})
	if err != nil {
		return nil, notFoundOr(err, "Discussion not found", "could not update discussion")
	}

	if err := s.populateDiscussions(ctx, []*model.Discussion{d}); err != nil {
		return nil, err
	}
	return d, nil
}

// DeleteDiscussion removes a discussion with its comments. Only the author may
// delete it.
func (s *Service) DeleteDiscussion(ctx context.Context, id, userID string) error {
	existing, err := s.discussions.GetDiscussionByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "Discussion not found", "could not get discussion")
	}
	if existing.AuthorID != userID {
		return fail(ErrForbidden, "Not authorized to delete this discussion")
	}

	if err := s.discussions.DeleteDiscussion(ctx, id); err != nil {
		return notFoundOr(err, "Discussion not found", "could not delete discussion")
	}
	return nil
}

func (s *Service) populateDiscussions(ctx context.Context, items []*model.Discussion) error {
	authors := s.authors(true)
	for _, d := range items {
		author, err := authors.get(ctx, d.AuthorID)
		if err != nil {
			return fmt.Errorf("could not load author: %w", err)
		}
		d.User = author
	}
	return nil
}
