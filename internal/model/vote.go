package model

// VoteTarget names the kind of entity a vote is cast on.
type VoteTarget string

const (
	TargetDiscussion         VoteTarget = "discussion"
	TargetQuestionDiscussion VoteTarget = "questionDiscussion"
	TargetComment            VoteTarget = "comment"
)

func (t VoteTarget) Valid() bool {
	switch t {
	case TargetDiscussion, TargetQuestionDiscussion, TargetComment:
		return true
	}
	return false
}

// VoteDirection is the value stored for a voter: 1 up, -1 down. VoteNone only
// clears an existing vote.
type VoteDirection int

const (
	VoteNone VoteDirection = 0
	VoteUp   VoteDirection = 1
	VoteDown VoteDirection = -1
)
