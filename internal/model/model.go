package model

import (
	"errors"
	"time"
)

// ErrNotFound is returned by every storage when the requested row is absent.
var ErrNotFound = errors.New("not found")

// Author is the populated view of a user attached to discussions and comments.
type Author struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type User struct {
	ID              string   `json:"id"`
	GoogleID        string   `json:"-"`
	Email           string   `json:"email"`
	Name            string   `json:"name"`
	SolvedQuestions []string `json:"solvedQuestions"`
}

// Ledger holds the voter sets of a discussion or comment. A user id is in at
// most one of the two lists.
type Ledger struct {
	Upvotes   []string `json:"upvotes"`
	Downvotes []string `json:"downvotes"`
}

type Discussion struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	AuthorID string   `json:"-"`
	User     *Author  `json:"user"`
	Ledger
	Comments  []string  `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type QuestionDiscussion struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Content       string  `json:"content"`
	QuestionTitle string  `json:"questionTitle"`
	AuthorID      string  `json:"-"`
	User          *Author `json:"user"`
	Ledger
	Comments  []string  `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Comment struct {
	ID              string  `json:"id"`
	Text            string  `json:"text"`
	AuthorID        string  `json:"-"`
	User            *Author `json:"user"`
	DiscussionID    string  `json:"discussion"`
	ParentCommentID *string `json:"parentCommentId"`
	Ledger
	CreatedAt time.Time `json:"createdAt"`
}

// CommentNode is a comment with its replies, as returned by the tree endpoints.
type CommentNode struct {
	*Comment
	Replies []*CommentNode `json:"replies"`
}

type DiscussionPage struct {
	Discussions []*Discussion `json:"discussions"`
	Total       int           `json:"total"`
	HasMore     bool          `json:"hasMore"`
}

type Question struct {
	Link       string `json:"link"`
	Difficulty string `json:"difficulty"`
	Title      string `json:"title"`
}

type Feedback struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Feedback  string    `json:"feedback"`
	CreatedAt time.Time `json:"createdAt"`
}
