package memory

import (
	"context"
	"sync"

	"github.com/VitaminP8/dsaboard/internal/model"
	"github.com/VitaminP8/dsaboard/internal/vote"
)

type voteKey struct {
	target model.VoteTarget
	id     string
}

// VoteMemoryStorage holds the voter sets of every discussion and comment.
// Entity storages read ledgers from it and purge them on delete.
type VoteMemoryStorage struct {
	mu      sync.Mutex
	ledgers map[voteKey]*model.Ledger
}

func NewVoteMemoryStorage() *VoteMemoryStorage {
	return &VoteMemoryStorage{
		ledgers: make(map[voteKey]*model.Ledger),
	}
}

func (s *VoteMemoryStorage) CastVote(ctx context.Context, target model.VoteTarget, targetID, userID string, dir model.VoteDirection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := voteKey{target: target, id: targetID}
	l, ok := s.ledgers[key]
	if !ok {
		l = &model.Ledger{}
		s.ledgers[key] = l
	}
	vote.Apply(l, userID, dir)

	return nil
}

func (s *VoteMemoryStorage) ledger(target model.VoteTarget, id string) model.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := model.Ledger{Upvotes: []string{}, Downvotes: []string{}}
	if l, ok := s.ledgers[voteKey{target: target, id: id}]; ok {
		out.Upvotes = append(out.Upvotes, l.Upvotes...)
		out.Downvotes = append(out.Downvotes, l.Downvotes...)
	}
	return out
}

func (s *VoteMemoryStorage) purge(target model.VoteTarget, ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		delete(s.ledgers, voteKey{target: target, id: id})
	}
}
