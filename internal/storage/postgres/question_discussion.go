package postgres

import (
	"context"
	"fmt"

	"github.com/VitaminP8/dsaboard/internal/model"
	"github.com/VitaminP8/dsaboard/models"
)

type QuestionDiscussionPostgresStorage struct{}

func NewQuestionDiscussionPostgresStorage() *QuestionDiscussionPostgresStorage {
	return &QuestionDiscussionPostgresStorage{}
}

func (s *QuestionDiscussionPostgresStorage) CreateQuestionDiscussion(ctx context.Context, d *model.QuestionDiscussion) (*model.QuestionDiscussion, error) {
	row := &models.QuestionDiscussion{
		Title:         d.Title,
		Content:       d.Content,
		QuestionTitle: d.QuestionTitle,
		UserID:        d.AuthorID,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.CreatedAt,
	}

	err := DB.Create(row).Error
	if err != nil {
		return nil, fmt.Errorf("could not create question discussion: %w", err)
	}

	return s.GetQuestionDiscussionByID(ctx, row.ID)
}

func (s *QuestionDiscussionPostgresStorage) GetQuestionDiscussionByID(ctx context.Context, id string) (*model.QuestionDiscussion, error) {
	var row models.QuestionDiscussion
	err := DB.Where("id = ?", id).First(&row).Error
	if err != nil {
		return nil, notFound(err, "question discussion", id)
	}

	result, err := hydrateQuestionDiscussions([]models.QuestionDiscussion{row})
	if err != nil {
		return nil, err
	}
	return result[0], nil
}

func (s *QuestionDiscussionPostgresStorage) ListQuestionDiscussions(ctx context.Context, questionTitle string) ([]*model.QuestionDiscussion, error) {
	var rows []models.QuestionDiscussion
	err := DB.Where("question_title = ?", questionTitle).Order("created_at desc").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("could not get question discussions: %w", err)
	}
	return hydrateQuestionDiscussions(rows)
}

func hydrateQuestionDiscussions(rows []models.QuestionDiscussion) ([]*model.QuestionDiscussion, error) {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	ledgers, err := loadLedgers(DB, model.TargetQuestionDiscussion, ids)
	if err != nil {
		return nil, err
	}
	commentIDs, err := loadCommentIDs(DB, ids)
	if err != nil {
		return nil, err
	}

	result := make([]*model.QuestionDiscussion, 0, len(rows))
	for _, row := range rows {
		result = append(result, &model.QuestionDiscussion{
			ID:            row.ID,
			Title:         row.Title,
			Content:       row.Content,
			QuestionTitle: row.QuestionTitle,
			AuthorID:      row.UserID,
			Ledger:        ledgers[row.ID],
			Comments:      commentIDs[row.ID],
			CreatedAt:     row.CreatedAt,
			UpdatedAt:     row.UpdatedAt,
		})
	}
	return result, nil
}
