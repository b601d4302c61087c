package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/VitaminP8/dsaboard/internal/comment"
	"github.com/VitaminP8/dsaboard/internal/model"
	"github.com/google/uuid"
)

type CommentMemoryStorage struct {
	mu       sync.Mutex
	comments map[string]*model.Comment
	order    []string // ids in creation order
	votes    *VoteMemoryStorage
}

func NewCommentMemoryStorage(votes *VoteMemoryStorage) *CommentMemoryStorage {
	return &CommentMemoryStorage{
		comments: make(map[string]*model.Comment),
		votes:    votes,
	}
}

func (s *CommentMemoryStorage) CreateComment(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var parentPtr *string
	if c.ParentCommentID != nil && *c.ParentCommentID != "" {
		// родитель должен существовать и принадлежать тому же обсуждению
		parent, ok := s.comments[*c.ParentCommentID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", comment.ErrParentNotFound, *c.ParentCommentID)
		}
		if parent.DiscussionID != c.DiscussionID {
			return nil, comment.ErrParentMismatch
		}
		parentID := parent.ID
		parentPtr = &parentID
	}

	stored := &model.Comment{
		ID:              uuid.NewString(),
		Text:            c.Text,
		AuthorID:        c.AuthorID,
		DiscussionID:    c.DiscussionID,
		ParentCommentID: parentPtr,
		CreatedAt:       c.CreatedAt,
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	s.comments[stored.ID] = stored
	s.order = append(s.order, stored.ID)

	return s.hydrate(stored), nil
}

func (s *CommentMemoryStorage) GetCommentByID(ctx context.Context, id string) (*model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok {
		return nil, fmt.Errorf("comment %s: %w", id, model.ErrNotFound)
	}
	return s.hydrate(c), nil
}

func (s *CommentMemoryStorage) ListComments(ctx context.Context, discussionID string) ([]*model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []*model.Comment{}
	for _, id := range s.order {
		c := s.comments[id]
		if c.DiscussionID == discussionID {
			result = append(result, s.hydrate(c))
		}
	}
	return result, nil
}

func (s *CommentMemoryStorage) idsFor(discussionID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := []string{}
	for _, id := range s.order {
		if s.comments[id].DiscussionID == discussionID {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *CommentMemoryStorage) deleteByDiscussion(discussionID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []string
	kept := s.order[:0]
	for _, id := range s.order {
		if s.comments[id].DiscussionID == discussionID {
			removed = append(removed, id)
			delete(s.comments, id)
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept

	return removed
}

// hydrate returns a detached copy carrying the current ledger.
func (s *CommentMemoryStorage) hydrate(c *model.Comment) *model.Comment {
	out := *c
	if c.ParentCommentID != nil {
		parentID := *c.ParentCommentID
		out.ParentCommentID = &parentID
	}
	out.User = nil
	out.Ledger = s.votes.ledger(model.TargetComment, c.ID)
	return &out
}
