package feedback

import (
	"context"

	"github.com/VitaminP8/dsaboard/internal/model"
)

type FeedbackStorage interface {
	CreateFeedback(ctx context.Context, userID, text string) (*model.Feedback, error)
}
