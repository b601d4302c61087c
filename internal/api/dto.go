package api

import "math"

// Request bodies. Required fields are checked by the forum service so that
// the messages match for every endpoint sharing an operation.

type googleSignInRequest struct {
	Credential string `json:"credential" binding:"required,notblank"`
}

type signInResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	SolvedQuestions []string `json:"solvedQuestions"`
	Token           string   `json:"token"`
}

type solvedQuestionRequest struct {
	UserID string `json:"userId"`
	Title  string `json:"title"`
}

type discussionRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
	UserID  string   `json:"userId"`
}

type deleteDiscussionRequest struct {
	UserID string `json:"userId"`
}

type commentRequest struct {
	UserID          string `json:"userId"`
	Text            string `json:"text"`
	ParentCommentID string `json:"parentCommentId"`
}

// voteRequest.Vote is decoded loosely so that any JSON value reaches the
// service and gets its vote error message.
type voteRequest struct {
	TargetID string `json:"targetId"`
	Type     string `json:"type"`
	Vote     any    `json:"vote"`
	UserID   string `json:"userId"`
}

// voteValue maps the decoded vote to a number. Falsy JSON values count as
// missing and anything else that is not a number is NaN, which is never valid.
func voteValue(raw any) float64 {
	switch v := raw.(type) {
	case nil:
		return 0
	case float64:
		return v
	case bool:
		if !v {
			return 0
		}
	case string:
		if v == "" {
			return 0
		}
	}
	return math.NaN()
}

type legacyVoteRequest struct {
	UserID   string `json:"userId"`
	VoteType string `json:"voteType"`
}

type questionDiscussionRequest struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	QuestionTitle string `json:"questionTitle"`
	UserID        string `json:"userId"`
}

type feedbackRequest struct {
	UserID   string `json:"userId"`
	Feedback string `json:"feedback" binding:"required,notblank"`
}
