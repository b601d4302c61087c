package forum

import (
	"context"
	"errors"
	"strings"

	"github.com/VitaminP8/dsaboard/internal/model"
	"github.com/VitaminP8/dsaboard/internal/questions"
)

// Questions returns the interview questions of a company, fetched fresh on
// every call. Fetch and parse failures are upstream errors.
func (s *Service) Questions(ctx context.Context, company string) ([]model.Question, error) {
	if strings.TrimSpace(company) == "" {
		return nil, fail(ErrBadRequest, "Company is required")
	}

	list, err := s.questions.Questions(ctx, company)
	switch {
	case errors.Is(err, questions.ErrParse):
		return nil, failWith(ErrUpstream, "Error parsing questions data", err)
	case err != nil:
		return nil, failWith(ErrUpstream, "Error fetching questions file", err)
	}
	return list, nil
}
