package forum

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/VitaminP8/dsaboard/internal/comment"
	"github.com/VitaminP8/dsaboard/internal/discussion"
	"github.com/VitaminP8/dsaboard/internal/feedback"
	"github.com/VitaminP8/dsaboard/internal/model"
	"github.com/VitaminP8/dsaboard/internal/subscription"
	"github.com/VitaminP8/dsaboard/internal/user"
	"github.com/VitaminP8/dsaboard/internal/vote"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps (page-1)*limit from overflowing int.
	MaxPage = math.MaxInt / MaxLimit
)

// QuestionSource provides the question list of a company.
type QuestionSource interface {
	Questions(ctx context.Context, company string) ([]model.Question, error)
}

// Stores groups the storages a Service works on.
type Stores struct {
	Users               user.UserStorage
	Discussions         discussion.DiscussionStorage
	QuestionDiscussions discussion.QuestionDiscussionStorage
	Comments            comment.CommentStorage
	Votes               vote.VoteStorage
	Feedback            feedback.FeedbackStorage
	Questions           QuestionSource
}

// Service implements the forum operations on top of the storages. Handlers
// only decode requests and encode responses.
type Service struct {
	users               user.UserStorage
	discussions         discussion.DiscussionStorage
	questionDiscussions discussion.QuestionDiscussionStorage
	comments            comment.CommentStorage
	votes               vote.VoteStorage
	feedback            feedback.FeedbackStorage
	questions           QuestionSource
	events              subscription.Manager
	now                 func() time.Time
}

func NewService(stores Stores, events subscription.Manager) *Service {
	return &Service{
		users:               stores.Users,
		discussions:         stores.Discussions,
		questionDiscussions: stores.QuestionDiscussions,
		comments:            stores.Comments,
		votes:               stores.Votes,
		feedback:            stores.Feedback,
		questions:           stores.Questions,
		events:              events,
		now:                 func() time.Time { return time.Now().UTC() },
	}
}

// ProcessTags lowercases and trims tags, drops empty ones and keeps the first
// occurrence of duplicates.
func ProcessTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// NormalizePage replaces non-positive values with the defaults and caps page
// and limit.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// requireUser loads the user or fails with "User not found".
func (s *Service) requireUser(ctx context.Context, userID string) (*model.User, error) {
	u, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "User not found", "could not get user")
	}
	return u, nil
}

// authors resolves author ids to their public view, one lookup per id.
type authors struct {
	s         *Service
	withEmail bool
	cache     map[string]*model.Author
}

func (s *Service) authors(withEmail bool) *authors {
	return &authors{s: s, withEmail: withEmail, cache: make(map[string]*model.Author)}
}

// get returns nil for users that no longer exist.
func (a *authors) get(ctx context.Context, id string) (*model.Author, error) {
	if author, ok := a.cache[id]; ok {
		return author, nil
	}

	u, err := a.s.users.GetUserByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		a.cache[id] = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	author := &model.Author{ID: u.ID, Name: u.Name}
	if a.withEmail {
		author.Email = u.Email
	}
	a.cache[id] = author
	return author, nil
}
