package forum

import (
	"context"
	"fmt"
	"strings"

	"github.com/VitaminP8/dsaboard/internal/model"
)

type QuestionDiscussionInput struct {
	Title         string
	Content       string
	QuestionTitle string
	UserID        string
}

func (s *Service) CreateQuestionDiscussion(ctx context.Context, in QuestionDiscussionInput) (*model.QuestionDiscussion, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" ||
		strings.TrimSpace(in.QuestionTitle) == "" || in.UserID == "" {
		return nil, fail(ErrBadRequest, "Missing required fields")
	}
	if _, err := s.requireUser(ctx, in.UserID); err != nil {
		return nil, err
	}

	d, err := s.questionDiscussions.CreateQuestionDiscussion(ctx, &model.QuestionDiscussion{
		Title:         strings.TrimSpace(in.Title),
		Content:       strings.TrimSpace(in.Content),
		QuestionTitle: strings.TrimSpace(in.QuestionTitle),
		AuthorID:      in.UserID,
		CreatedAt:     s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create question discussion: %w", err)
	}

	if err := s.populateQuestionDiscussions(ctx, []*model.QuestionDiscussion{d}); err != nil {
		return nil, err
	}
	return d, nil
}

// QuestionDiscussions lists the threads of one question, newest first.
func (s *Service) QuestionDiscussions(ctx context.Context, questionTitle string) ([]*model.QuestionDiscussion, error) {
	items, err := s.questionDiscussions.ListQuestionDiscussions(ctx, questionTitle)
	if err != nil {
		return nil, fmt.Errorf("could not list question discussions: %w", err)
	}
	if err := s.populateQuestionDiscussions(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service) populateQuestionDiscussions(ctx context.Context, items []*model.QuestionDiscussion) error {
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
