package mocks

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/VitaminP8/dsaboard/internal/model"
)

// MockUserStorage реализует интерфейс user.UserStorage для тестирования.
// Если Err задан, все методы возвращают его.
type MockUserStorage struct {
	mu       sync.Mutex
	users    map[string]*model.User // id -> user
	byGoogle map[string]string      // googleID -> id
	nextID   int

	Err error
}

// NewMockUserStorage создает новый экземпляр мока для хранилища пользователей
func NewMockUserStorage() *MockUserStorage {
	return &MockUserStorage{
		users:    make(map[string]*model.User),
		byGoogle: make(map[string]string),
		nextID:   1,
	}
}

// AddUser кладет пользователя напрямую, минуя вход через Google
func (m *MockUserStorage) AddUser(name, email string) *model.User {
	u, _ := m.FindOrCreateByGoogleID(context.Background(), "google-"+name, email, name)
	return u
}

func (m *MockUserStorage) FindOrCreateByGoogleID(ctx context.Context, googleID, email, name string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	if id, ok := m.byGoogle[googleID]; ok {
		return m.copyOf(m.users[id]), nil
	}

	u := &model.User{
		ID:              strconv.Itoa(m.nextID),
		GoogleID:        googleID,
		Email:           email,
		Name:            name,
		SolvedQuestions: []string{},
	}
	m.nextID++

	m.users[u.ID] = u
	m.byGoogle[googleID] = u.ID
	return m.copyOf(u), nil
}

func (m *MockUserStorage) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, model.ErrNotFound)
	}
	return m.copyOf(u), nil
}

func (m *MockUserStorage) AddSolvedQuestion(ctx context.Context, userID, title string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	u, ok := m.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, model.ErrNotFound)
	}
	for _, t := range u.SolvedQuestions {
		if t == title {
			return m.copyOf(u), nil
		}
	}
	u.SolvedQuestions = append(u.SolvedQuestions, title)
	return m.copyOf(u), nil
}

func (m *MockUserStorage) RemoveSolvedQuestion(ctx context.Context, userID, title string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	u, ok := m.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, model.ErrNotFound)
	}
	kept := []string{}
	for _, t := range u.SolvedQuestions {
		if t != title {
			kept = append(kept, t)
		}
	}
	u.SolvedQuestions = kept
	return m.copyOf(u), nil
}

func (m *MockUserStorage) copyOf(u *model.User) *model.User {
	c := *u
	c.SolvedQuestions = append([]string{}, u.SolvedQuestions...)
	return &c
}
