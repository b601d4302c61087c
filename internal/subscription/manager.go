package subscription

import (
	"sync"

	"github.com/VitaminP8/dsaboard/internal/model"
)

// streamBuffer is how many comments a subscriber may fall behind before it is
// dropped.
const streamBuffer = 16

// stream is one open subscription, usually an SSE client.
type stream struct {
	ch     chan *model.Comment
	cancel func()
}

// SubscriptionManager fans comments out to the streams of a discussion.
// Publish never waits on a subscriber: a stream whose buffer is full is closed
// and removed, and the client is expected to reconnect.
type SubscriptionManager struct {
	mu   sync.RWMutex
	subs map[string][]*stream // discussionID -> открытые подписки
}

func NewSubscriptionManager() *SubscriptionManager {
	return &SubscriptionManager{
		subs: make(map[string][]*stream),
	}
}

func (m *SubscriptionManager) Subscribe(discussionID string) (<-chan *model.Comment, func()) {
	s := &stream{ch: make(chan *model.Comment, streamBuffer)}

	var once sync.Once
	s.cancel = func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.remove(discussionID, s)
			close(s.ch)
		})
	}

	m.mu.Lock()
	m.subs[discussionID] = append(m.subs[discussionID], s)
	m.mu.Unlock()

	return s.ch, s.cancel
}

// remove drops s from the discussion; m.mu must be held for writing.
func (m *SubscriptionManager) remove(discussionID string, s *stream) {
	streams := m.subs[discussionID]
	for i, other := range streams {
		if other == s {
			m.subs[discussionID] = append(streams[:i:i], streams[i+1:]...)
			break
		}
	}
	if len(m.subs[discussionID]) == 0 {
		delete(m.subs, discussionID)
	}
}

// Publish delivers comment to every subscriber of the discussion without
// blocking. Subscribers that lag behind are disconnected.
func (m *SubscriptionManager) Publish(discussionID string, comment *model.Comment) {
	var lagging []*stream

	// каналы закрываются только под m.mu на запись, поэтому отправка под RLock безопасна
	m.mu.RLock()
	for _, s := range m.subs[discussionID] {
		select {
		case s.ch <- comment:
		default:
			lagging = append(lagging, s)
		}
	}
	m.mu.RUnlock()

	for _, s := range lagging {
		s.cancel()
	}
}

// Subscribers returns the number of open subscriptions of a discussion.
func (m *SubscriptionManager) Subscribers(discussionID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subs[discussionID])
}
