package mocks

import (
	"sync"

	"github.com/VitaminP8/dsaboard/internal/model"
)

// MockSubscriptionManager records published comments instead of delivering them.
type MockSubscriptionManager struct {
	mu            sync.Mutex
	subs          map[string][]chan *model.Comment // discussionID -> список каналов подписчиков
	notifications map[string][]*model.Comment      // Для отслеживания в тестах
}

func NewMockSubscriptionManager() *MockSubscriptionManager {
	return &MockSubscriptionManager{
		subs:          make(map[string][]chan *model.Comment),
		notifications: make(map[string][]*model.Comment),
	}
}

func (m *MockSubscriptionManager) Subscribe(discussionID string) (<-chan *model.Comment, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan *model.Comment, 16)
	m.subs[discussionID] = append(m.subs[discussionID], ch)

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			subscribers := m.subs[discussionID]
			for i, sub := range subscribers {
				if sub == ch {
					m.subs[discussionID] = append(subscribers[:i], subscribers[i+1:]...)
					close(ch)
					break
				}
			}
		})
	}

	return ch, cancel
}

// Publish не блокируется: если буфер полон, событие только записывается
func (m *MockSubscriptionManager) Publish(discussionID string, comment *model.Comment) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sub := range m.subs[discussionID] {
		select {
		case sub <- comment:
		default:
		}
	}

	m.notifications[discussionID] = append(m.notifications[discussionID], comment)
}

// GetNotificationsForDiscussion - вспомогательный метод для тестирования,
// возвращает все уведомления для конкретного обсуждения
func (m *MockSubscriptionManager) GetNotificationsForDiscussion(discussionID string) []*model.Comment {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]*model.Comment(nil), m.notifications[discussionID]...)
}
