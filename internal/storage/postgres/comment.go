package postgres

import (
	"context"
	"fmt"

	"github.com/VitaminP8/dsaboard/internal/comment"
	"github.com/VitaminP8/dsaboard/internal/model"
	"github.com/VitaminP8/dsaboard/models"
	"github.com/jinzhu/gorm"
)

type CommentPostgresStorage struct{}

func NewCommentPostgresStorage() *CommentPostgresStorage {
	return &CommentPostgresStorage{}
}

func (s *CommentPostgresStorage) CreateComment(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	row := &models.Comment{
		Text:         c.Text,
		UserID:       c.AuthorID,
		DiscussionID: c.DiscussionID,
		CreatedAt:    c.CreatedAt,
	}

	if c.ParentCommentID != nil && *c.ParentCommentID != "" {
		var parent models.Comment
		err := DB.Where("id = ?", *c.ParentCommentID).First(&parent).Error
		if err != nil {
			if gorm.IsRecordNotFoundError(err) {
				return nil, fmt.Errorf("%w: %s", comment.ErrParentNotFound, *c.ParentCommentID)
			}
			return nil, fmt.Errorf("could not get parent comment: %w", err)
		}
		if parent.DiscussionID != c.DiscussionID {
			return nil, comment.ErrParentMismatch
		}
		parentID := parent.ID
		row.ParentCommentID = &parentID
	}

	err := DB.Create(row).Error
	if err != nil {
		return nil, fmt.Errorf("could not create comment: %w", err)
	}

	return toComment(row, model.Ledger{Upvotes: []string{}, Downvotes: []string{}}), nil
}

func (s *CommentPostgresStorage) GetCommentByID(ctx context.Context, id string) (*model.Comment, error) {
	var row models.Comment
	err := DB.Where("id = ?", id).First(&row).Error
	if err != nil {
		return nil, notFound(err, "comment", id)
	}

	ledgers, err := loadLedgers(DB, model.TargetComment, []string{row.ID})
	if err != nil {
		return nil, err
	}

	return toComment(&row, ledgers[row.ID]), nil
}

func (s *CommentPostgresStorage) ListComments(ctx context.Context, discussionID string) ([]*model.Comment, error) {
	var rows []models.Comment
	err := DB.Where("discussion_id = ?", discussionID).Order("created_at, id").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("could not get comments: %w", err)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	ledgers, err := loadLedgers(DB, model.TargetComment, ids)
	if err != nil {
		return nil, err
	}

	result := make([]*model.Comment, 0, len(rows))
	for i := range rows {
		result = append(result, toComment(&rows[i], ledgers[rows[i].ID]))
	}
	return result, nil
}

// loadCommentIDs returns the comment ids of every discussion in creation order.
func loadCommentIDs(db *gorm.DB, discussionIDs []string) (map[string][]string, error) {
	result := make(map[string][]string, len(discussionIDs))
	for _, id := range discussionIDs {
		result[id] = []string{}
	}
	if len(discussionIDs) == 0 {
		return result, nil
	}

	var rows []models.Comment
	err := db.Select("id, discussion_id").
		Where("discussion_id IN (?)", discussionIDs).
		Order("created_at, id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("could not get comment ids: %w", err)
	}

	for _, row := range rows {
		result[row.DiscussionID] = append(result[row.DiscussionID], row.ID)
	}
	return result, nil
}

func toComment(row *models.Comment, ledger model.Ledger) *model.Comment {
	c := &model.Comment{
		ID:           row.ID,
		Text:         row.Text,
		AuthorID:     row.UserID,
		DiscussionID: row.DiscussionID,
		Ledger:       ledger,
		CreatedAt:    row.CreatedAt,
	}
	if row.ParentCommentID != nil {
		pid := *row.ParentCommentID
		c.ParentCommentID = &pid
	}
	return c
}
