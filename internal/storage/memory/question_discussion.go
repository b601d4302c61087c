package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/VitaminP8/dsaboard/internal/model"
	"github.com/google/uuid"
)

type QuestionDiscussionMemoryStorage struct {
	mu          sync.Mutex
	discussions map[string]*model.QuestionDiscussion
	order       []string
	comments    *CommentMemoryStorage
	votes       *VoteMemoryStorage
}

func NewQuestionDiscussionMemoryStorage(comments *CommentMemoryStorage, votes *VoteMemoryStorage) *QuestionDiscussionMemoryStorage {
	return &QuestionDiscussionMemoryStorage{
		discussions: make(map[string]*model.QuestionDiscussion),
		comments:    comments,
		votes:       votes,
	}
}

func (s *QuestionDiscussionMemoryStorage) CreateQuestionDiscussion(ctx context.Context, d *model.QuestionDiscussion) (*model.QuestionDiscussion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := &model.QuestionDiscussion{
		ID:            uuid.NewString(),
		Title:         d.Title,
		Content:       d.Content,
		QuestionTitle: d.QuestionTitle,
		AuthorID:      d.AuthorID,
		CreatedAt:     d.CreatedAt,
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	stored.UpdatedAt = stored.CreatedAt

	s.discussions[stored.ID] = stored
	s.order = append(s.order, stored.ID)

	return s.hydrate(stored), nil
}

func (s *QuestionDiscussionMemoryStorage) GetQuestionDiscussionByID(ctx context.Context, id string) (*model.QuestionDiscussion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.discussions[id]
	if !ok {
		return nil, fmt.Errorf("question discussion %s: %w", id, model.ErrNotFound)
	}
	return s.hydrate(d), nil
}

func (s *QuestionDiscussionMemoryStorage) ListQuestionDiscussions(ctx context.Context, questionTitle string) ([]*model.QuestionDiscussion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []*model.QuestionDiscussion{}
	// order хранит порядок вставки; идем с конца, чтобы новые были первыми
	for i := len(s.order) - 1; i >= 0; i-- {
		d := s.discussions[s.order[i]]
		if d.QuestionTitle == questionTitle {
			result = append(result, s.hydrate(d))
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (s *QuestionDiscussionMemoryStorage) hydrate(d *model.QuestionDiscussion) *model.QuestionDiscussion {
	out := *d
	out.User = nil
	out.Comments = s.comments.idsFor(d.ID)
	out.Ledger = s.votes.ledger(model.TargetQuestionDiscussion, d.ID)
	return &out
}
