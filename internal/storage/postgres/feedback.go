package postgres

import (
	"context"
	"fmt"

	"github.com/VitaminP8/dsaboard/internal/model"
	"github.com/VitaminP8/dsaboard/models"
)

type FeedbackPostgresStorage struct{}

func NewFeedbackPostgresStorage() *FeedbackPostgresStorage {
	return &FeedbackPostgresStorage{}
}

func (s *FeedbackPostgresStorage) CreateFeedback(ctx context.Context, userID, text string) (*model.Feedback, error) {
	row := &models.Feedback{
		UserID: userID,
		Text:   text,
	}

	err := DB.Create(row).Error
	if err != nil {
		return nil, fmt.Errorf("could not create feedback: %w", err)
	}

	return &model.Feedback{
		ID:        row.ID,
		UserID:    row.UserID,
		Feedback:  row.Text,
		CreatedAt: row.CreatedAt,
	}, nil
}
