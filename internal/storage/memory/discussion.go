package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/VitaminP8/dsaboard/internal/discussion"
	"github.com/VitaminP8/dsaboard/internal/model"
	"github.com/google/uuid"
)

type discussionRecord struct {
	d   model.Discussion
	seq int
}

type DiscussionMemoryStorage struct {
	mu          sync.Mutex
	discussions map[string]*discussionRecord
	nextSeq     int
	comments    *CommentMemoryStorage // для каскадного удаления и списка id комментариев
	votes       *VoteMemoryStorage
}

func NewDiscussionMemoryStorage(comments *CommentMemoryStorage, votes *VoteMemoryStorage) *DiscussionMemoryStorage {
	return &DiscussionMemoryStorage{
		discussions: make(map[string]*discussionRecord),
		comments:    comments,
		votes:       votes,
	}
}

func (s *DiscussionMemoryStorage) CreateDiscussion(ctx context.Context, d *model.Discussion) (*model.Discussion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	rec := &discussionRecord{
		d: model.Discussion{
			ID:        uuid.NewString(),
			Title:     d.Title,
			Content:   d.Content,
			Tags:      append([]string{}, d.Tags...),
			AuthorID:  d.AuthorID,
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.CreatedAt,
		},
		seq: s.nextSeq,
	}
	s.nextSeq++
	if rec.d.CreatedAt.IsZero() {
		rec.d.CreatedAt = now
		rec.d.UpdatedAt = now
	}

	s.discussions[rec.d.ID] = rec
	return s.hydrate(&rec.d), nil
}

func (s *DiscussionMemoryStorage) GetDiscussionByID(ctx context.Context, id string) (*model.Discussion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.discussions[id]
	if !ok {
		return nil, fmt.Errorf("discussion %s: %w", id, model.ErrNotFound)
	}
	return s.hydrate(&rec.d), nil
}

func (s *DiscussionMemoryStorage) ListDiscussions(ctx context.Context, f discussion.Filter) ([]*model.Discussion, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tag := strings.ToLower(strings.TrimSpace(f.Tag))
	var matched []*discussionRecord
	for _, rec := range s.sorted() {
		if tag == "" || hasTagLike(rec.d.Tags, tag) {
			matched = append(matched, rec)
		}
	}

	total := len(matched)
	result := []*model.Discussion{}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.Offset >= total {
		return result, total, nil
	}

	end := total
	if f.Limit > 0 && f.Limit < total-f.Offset {
		end = f.Offset + f.Limit
	}
	for _, rec := range matched[f.Offset:end] {
		result = append(result, s.hydrate(&rec.d))
	}

	return result, total, nil
}

func (s *DiscussionMemoryStorage) ListAllDiscussions(ctx context.Context) ([]*model.Discussion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []*model.Discussion{}
	for _, rec := range s.sorted() {
		result = append(result, s.hydrate(&rec.d))
	}
	return result, nil
}

func (s *DiscussionMemoryStorage) UpdateDiscussion(ctx context.Context, d *model.Discussion) (*model.Discussion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.discussions[d.ID]
	if !ok {
		return nil, fmt.Errorf("discussion %s: %w", d.ID, model.ErrNotFound)
	}

	rec.d.Title = d.Title
	rec.d.Content = d.Content
	rec.d.Tags = append([]string{}, d.Tags...)
	rec.d.UpdatedAt = d.UpdatedAt
	if rec.d.UpdatedAt.IsZero() {
		rec.d.UpdatedAt = time.Now().UTC()
	}

	return s.hydrate(&rec.d), nil
}

func (s *DiscussionMemoryStorage) DeleteDiscussion(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.discussions[id]; !ok {
		return fmt.Errorf("discussion %s: %w", id, model.ErrNotFound)
	}
	delete(s.discussions, id)

	commentIDs := s.comments.deleteByDiscussion(id)
	s.votes.purge(model.TargetComment, commentIDs...)
	s.votes.purge(model.TargetDiscussion, id)

	return nil
}

// sorted returns the records newest first; ties keep reverse insertion order.
func (s *DiscussionMemoryStorage) sorted() []*discussionRecord {
	recs := make([]*discussionRecord, 0, len(s.discussions))
	for _, rec := range s.discussions {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].d.CreatedAt.Equal(recs[j].d.CreatedAt) {
			return recs[i].seq > recs[j].seq
		}
		return recs[i].d.CreatedAt.After(recs[j].d.CreatedAt)
	})
	return recs
}

func (s *DiscussionMemoryStorage) hydrate(d *model.Discussion) *model.Discussion {
	out := *d
	out.Tags = append([]string{}, d.Tags...)
	out.User = nil
	out.Comments = s.comments.idsFor(d.ID)
	out.Ledger = s.votes.ledger(model.TargetDiscussion, d.ID)
	return &out
}

func hasTagLike(tags []string, needle string) bool {
	for _, t := range tags {
		if strings.Contains(t, needle) {
			return true
		}
	}
	return false
}
