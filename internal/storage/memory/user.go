package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/VitaminP8/dsaboard/internal/model"
	"github.com/google/uuid"
)

type UserMemoryStorage struct {
	mu       sync.Mutex
	users    map[string]*model.User
	byGoogle map[string]string // googleID -> id
}

func NewUserMemoryStorage() *UserMemoryStorage {
	return &UserMemoryStorage{
		users:    make(map[string]*model.User),
		byGoogle: make(map[string]string),
	}
}

func (s *UserMemoryStorage) FindOrCreateByGoogleID(ctx context.Context, googleID, email, name string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byGoogle[googleID]; ok {
		return cloneUser(s.users[id]), nil
	}

	user := &model.User{
		ID:              uuid.NewString(),
		GoogleID:        googleID,
		Email:           email,
		Name:            name,
		SolvedQuestions: []string{},
	}
	s.users[user.ID] = user
	s.byGoogle[googleID] = user.ID

	return cloneUser(user), nil
}

func (s *UserMemoryStorage) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, model.ErrNotFound)
	}
	return cloneUser(user), nil
}

func (s *UserMemoryStorage) AddSolvedQuestion(ctx context.Context, userID, title string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, model.ErrNotFound)
	}

	for _, t := range user.SolvedQuestions {
		if t == title {
			return cloneUser(user), nil
		}
	}
	user.SolvedQuestions = append(user.SolvedQuestions, title)

	return cloneUser(user), nil
}

func (s *UserMemoryStorage) RemoveSolvedQuestion(ctx context.Context, userID, title string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, model.ErrNotFound)
	}

	kept := make([]string, 0, len(user.SolvedQuestions))
	for _, t := range user.SolvedQuestions {
		if t != title {
			kept = append(kept, t)
		}
	}
	user.SolvedQuestions = kept

	return cloneUser(user), nil
}

func cloneUser(u *model.User) *model.User {
	out := *u
	out.SolvedQuestions = append([]string{}, u.SolvedQuestions...)
	return &out
}
