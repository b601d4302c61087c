package forum

import (
	"context"
	"fmt"
	"strings"

	"github.com/VitaminP8/dsaboard/internal/model"
)

func (s *Service) SolvedQuestions(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return nil, fail(ErrUnauthorized, "User ID required")
	}

	u, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.SolvedQuestions, nil
}

func (s *Service) AddSolvedQuestion(ctx context.Context, userID, title string) ([]string, error) {
	return s.updateSolved(ctx, userID, title, s.users.AddSolvedQuestion)
}

func (s *Service) RemoveSolvedQuestion(ctx context.Context, userID, title string) ([]string, error) {
	return s.updateSolved(ctx, userID, title, s.users.RemoveSolvedQuestion)
}

func (s *Service) updateSolved(
	ctx context.Context,
	userID, title string,
	apply func(ctx context.Context, userID, title string) (*model.User, error),
) ([]string, error) {
	if userID == "" || strings.TrimSpace(title) == "" {
		return nil, fail(ErrBadRequest, "User ID and question title are required")
	}

	u, err := apply(ctx, userID, title)
	if err != nil {
		return nil, notFoundOr(err, "User not found", "could not update solved questions")
	}
	return u.SolvedQuestions, nil
}

// Profile returns the user a session belongs to.
func (s *Service) Profile(ctx context.Context, userID string) (*model.User, error) {
	u, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) SubmitFeedback(ctx context.Context, userID, text string) (*model.Feedback, error) {
	if userID == "" || strings.TrimSpace(text) == "" {
		return nil, fail(ErrBadRequest, "User ID and feedback are required")
	}

	f, err := s.feedback.CreateFeedback(ctx, userID, strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("could not save feedback: %w", err)
	}
	return f, nil
}
