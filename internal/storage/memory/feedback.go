package memory

import (
	"context"
	"sync"
	"time"

	"github.com/VitaminP8/dsaboard/internal/model"
	"github.com/google/uuid"
)

type FeedbackMemoryStorage struct {
	mu       sync.Mutex
	feedback []*model.Feedback
}

func NewFeedbackMemoryStorage() *FeedbackMemoryStorage {
	return &FeedbackMemoryStorage{}
}

func (s *FeedbackMemoryStorage) CreateFeedback(ctx context.Context, userID, text string) (*model.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := &model.Feedback{
		ID:        uuid.NewString(),
		UserID:    userID,
		Feedback:  text,
		CreatedAt: time.Now().UTC(),
	}
	s.feedback = append(s.feedback, f)

	out := *f
	return &out, nil
}

// All returns the stored feedback in submission order.
func (s *FeedbackMemoryStorage) All() []*model.Feedback {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*model.Feedback, 0, len(s.feedback))
	for _, f := range s.feedback {
		c := *f
		out = append(out, &c)
	}
	return out
}
