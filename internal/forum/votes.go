package forum

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/VitaminP8/dsaboard/internal/model"
	"github.com/VitaminP8/dsaboard/internal/vote"
)

// VoteInput.Vote is the raw numeric wire value; only 1 and -1 are valid.
type VoteInput struct {
	TargetID string
	Type     string
	Vote     float64
	UserID   string
}

// Vote casts an up or down vote on a discussion, question discussion or
// comment and returns the updated target.
func (s *Service) Vote(ctx context.Context, in VoteInput) (any, error) {
	if in.TargetID == "" || in.Type == "" || in.Vote == 0 || in.UserID == "" {
		return nil, fail(ErrBadRequest, "Missing required fields")
	}

	target := model.VoteTarget(in.Type)
	if !target.Valid() {
		return nil, fail(ErrBadRequest, "Invalid target type")
	}

	if in.Vote != math.Trunc(in.Vote) {
		return nil, fail(ErrBadRequest, "Invalid vote value")
	}
	dir, err := vote.ParseScore(int(in.Vote))
	if err != nil {
		return nil, failWith(ErrBadRequest, "Invalid vote value", err)
	}

	return s.castVote(ctx, target, in.TargetID, in.UserID, dir, fmt.Sprintf("%s not found", target))
}

// LegacyVote is the per-discussion vote. A voteType other than upvote or
// downvote clears the caller's vote.
func (s *Service) LegacyVote(ctx context.Context, discussionID, userID, voteType string) (*model.Discussion, error) {
	if userID == "" {
		return nil, fail(ErrBadRequest, "Missing required fields")
	}

	dir, err := vote.ParseLegacy(voteType)
	if err != nil && !errors.Is(err, vote.ErrInvalidVoteType) {
		return nil, err
	}

	updated, err := s.castVote(ctx, model.TargetDiscussion, discussionID, userID, dir, "Discussion not found")
	if err != nil {
		return nil, err
	}
	return updated.(*model.Discussion), nil
}

func (s *Service) castVote(ctx context.Context, target model.VoteTarget, id, userID string, dir model.VoteDirection, missing string) (any, error) {
	if _, err := s.loadTarget(ctx, target, id); err != nil {
		return nil, notFoundOr(err, missing, "could not get vote target")
	}

	if err := s.votes.CastVote(ctx, target, id, userID, dir); err != nil {
		return nil, fmt.Errorf("could not cast vote: %w", err)
	}

	updated, err := s.loadTarget(ctx, target, id)
	if err != nil {
		return nil, notFoundOr(err, missing, "could not get vote target")
	}
	return updated, nil
}

// loadTarget fetches a vote target with its author populated.
func (s *Service) loadTarget(ctx context.Context, target model.VoteTarget, id string) (any, error) {
	switch target {
	case model.TargetQuestionDiscussion:
		d, err := s.questionDiscussions.GetQuestionDiscussionByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return d, s.populateQuestionDiscussions(ctx, []*model.QuestionDiscussion{d})
	case model.TargetComment:
		c, err := s.comments.GetCommentByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return c, s.populateComments(ctx, []*model.Comment{c})
	default:
		d, err := s.discussions.GetDiscussionByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return d, s.populateDiscussions(ctx, []*model.Discussion{d})
	}
}
