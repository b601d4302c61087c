package forum

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/VitaminP8/dsaboard/internal/comment"
	"github.com/VitaminP8/dsaboard/internal/model"
)

type CommentInput struct {
	UserID          string
	Text            string
	ParentCommentID string
}

// threadKind tells which discussion collection a comment endpoint is scoped to.
type threadKind int

const (
	generalThread threadKind = iota
	questionThread
)

// AddComment adds a comment to a general discussion.
func (s *Service) AddComment(ctx context.Context, discussionID string, in CommentInput) (*model.Comment, error) {
	return s.addComment(ctx, generalThread, discussionID, in)
}

// AddQuestionComment adds a comment to a question discussion.
func (s *Service) AddQuestionComment(ctx context.Context, discussionID string, in CommentInput) (*model.Comment, error) {
	return s.addComment(ctx, questionThread, discussionID, in)
}

func (s *Service) addComment(ctx context.Context, kind threadKind, discussionID string, in CommentInput) (*model.Comment, error) {
	if strings.TrimSpace(in.Text) == "" || in.UserID == "" {
		return nil, fail(ErrBadRequest, "Text and userId are required")
	}

	if err := s.requireThread(ctx, kind, discussionID); err != nil {
		return nil, err
	}
	if _, err := s.requireUser(ctx, in.UserID); err != nil {
		return nil, err
	}

	c := &model.Comment{
		Text:         in.Text,
		AuthorID:     in.UserID,
		DiscussionID: discussionID,
		CreatedAt:    s.now(),
	}
	if in.ParentCommentID != "" {
		parent := in.ParentCommentID
		c.ParentCommentID = &parent
	}

	created, err := s.comments.CreateComment(ctx, c)
	switch {
	case errors.Is(err, comment.ErrParentNotFound):
		return nil, failWith(ErrNotFound, "Parent comment not found", err)
	case errors.Is(err, comment.ErrParentMismatch):
		return nil, failWith(ErrBadRequest, "Parent comment belongs to another discussion", err)
	case err != nil:
		return nil, fmt.Errorf("could not create comment: %w", err)
	}

	if err := s.populateComments(ctx, []*model.Comment{created}); err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.Publish(discussionID, created)
	}
	return created, nil
}

// Comments returns the flat comment list of a discussion in creation order.
func (s *Service) Comments(ctx context.Context, discussionID string) ([]*model.Comment, error) {
	list, err := s.comments.ListComments(ctx, discussionID)
	if err != nil {
		return nil, fmt.Errorf("could not list comments: %w", err)
	}
	if err := s.populateComments(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// CommentTree returns the comments of a discussion nested by parent. Unknown
// discussions yield an empty tree.
func (s *Service) CommentTree(ctx context.Context, discussionID string) ([]*model.CommentNode, error) {
	list, err := s.Comments(ctx, discussionID)
	if err != nil {
		return nil, err
	}
	return comment.BuildTree(list), nil
}

// Watch subscribes to the comments created in a discussion from now on.
func (s *Service) Watch(ctx context.Context, discussionID string) (<-chan *model.Comment, func(), error) {
	if s.events == nil {
		return nil, nil, fail(ErrNotFound, "Comment stream is disabled")
	}
	if err := s.requireAnyThread(ctx, discussionID); err != nil {
		return nil, nil, err
	}
	ch, cancel := s.events.Subscribe(discussionID)
	return ch, cancel, nil
}

func (s *Service) requireThread(ctx context.Context, kind threadKind, id string) error {
	var err error
	switch kind {
	case questionThread:
		_, err = s.questionDiscussions.GetQuestionDiscussionByID(ctx, id)
	default:
		_, err = s.discussions.GetDiscussionByID(ctx, id)
	}
	if err != nil {
		return notFoundOr(err, "Discussion not found", "could not get discussion")
	}
	return nil
}

func (s *Service) requireAnyThread(ctx context.Context, id string) error {
	err := s.requireThread(ctx, generalThread, id)
	if errors.Is(err, ErrNotFound) {
		return s.requireThread(ctx, questionThread, id)
	}
	return err
}

// populateComments attaches author names. Emails are not exposed on comments.
func (s *Service) populateComments(ctx context.Context, list []*model.Comment) error {
	authors := s.authors(false)
	for _, c := range list {
		author, err := authors.get(ctx, c.AuthorID)
		if err != nil {
			return fmt.Errorf("could not load author: %w", err)
		}
		c.User = author
	}
	return nil
}
