package vote

import (
	"context"
	"errors"

	"github.com/VitaminP8/dsaboard/internal/model"
)

var (
	ErrInvalidScore    = errors.New("vote must be 1 or -1")
	ErrInvalidVoteType = errors.New("voteType must be upvote or downvote")
)

// VoteStorage persists voter sets. CastVote has the semantics of Apply for a
// single (target, user) pair.
type VoteStorage interface {
	CastVote(ctx context.Context, target model.VoteTarget, targetID, userID string, dir model.VoteDirection) error
}

// Apply removes voterID from both sets and then adds it to the set matching
// dir. VoteNone leaves the voter in neither set.
func Apply(l *model.Ledger, voterID string, dir model.VoteDirection) {
	l.Upvotes = without(l.Upvotes, voterID)
	l.Downvotes = without(l.Downvotes, voterID)

	switch dir {
	case model.VoteUp:
		l.Upvotes = append(l.Upvotes, voterID)
	case model.VoteDown:
		l.Downvotes = append(l.Downvotes, voterID)
	}
}

// Score returns upvotes minus downvotes.
func Score(l model.Ledger) int {
	return len(l.Upvotes) - len(l.Downvotes)
}

// ParseScore maps the numeric wire value of the vote endpoint.
func ParseScore(v int) (model.VoteDirection, error) {
	switch v {
	case 1:
		return model.VoteUp, nil
	case -1:
		return model.VoteDown, nil
	}
	return model.VoteNone, ErrInvalidScore
}

// ParseLegacy maps the voteType of the per-discussion vote endpoint. Unknown
// values still clear the caller's vote, so they come back as VoteNone together
// with ErrInvalidVoteType.
func ParseLegacy(voteType string) (model.VoteDirection, error) {
	switch voteType {
	case "upvote":
		return model.VoteUp, nil
	case "downvote":
		return model.VoteDown, nil
	}
	return model.VoteNone, ErrInvalidVoteType
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
