package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/VitaminP8/dsaboard/internal/discussion"
	"github.com/VitaminP8/dsaboard/internal/model"
	"github.com/VitaminP8/dsaboard/models"
	"github.com/jinzhu/gorm"
)

type DiscussionPostgresStorage struct{}

func NewDiscussionPostgresStorage() *DiscussionPostgresStorage {
	return &DiscussionPostgresStorage{}
}

func (s *DiscussionPostgresStorage) CreateDiscussion(ctx context.Context, d *model.Discussion) (*model.Discussion, error) {
	row := &models.Discussion{
		Title:     d.Title,
		Content:   d.Content,
		UserID:    d.AuthorID,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.CreatedAt,
	}

	err := DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(row).Error; err != nil {
			return fmt.Errorf("could not create discussion: %w", err)
		}
		return saveTags(tx, row.ID, d.Tags)
	})
	if err != nil {
		return nil, err
	}

	return s.GetDiscussionByID(ctx, row.ID)
}

func (s *DiscussionPostgresStorage) GetDiscussionByID(ctx context.Context, id string) (*model.Discussion, error) {
	var row models.Discussion
	err := DB.Where("id = ?", id).First(&row).Error
	if err != nil {
		return nil, notFound(err, "discussion", id)
	}

	result, err := hydrateDiscussions([]models.Discussion{row})
	if err != nil {
		return nil, err
	}
	return result[0], nil
}

func (s *DiscussionPostgresStorage) ListDiscussions(ctx context.Context, f discussion.Filter) ([]*model.Discussion, int, error) {
	query := DB.Model(&models.Discussion{})

	tag := strings.ToLower(strings.TrimSpace(f.Tag))
	if tag != "" {
		var ids []string
		err := DB.Model(&models.DiscussionTag{}).
			Where("name LIKE ? ESCAPE '\\'", likePattern(tag)).
			Pluck("DISTINCT discussion_id", &ids).Error
		if err != nil {
			return nil, 0, fmt.Errorf("could not filter by tag: %w", err)
		}
		if len(ids) == 0 {
			return []*model.Discussion{}, 0, nil
		}
		query = query.Where("id IN (?)", ids)
	}

	var total int
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("could not count discussions: %w", err)
	}

	var rows []models.Discussion
	paged := query.Order("created_at desc").Offset(f.Offset)
	if f.Limit > 0 {
		paged = paged.Limit(f.Limit)
	}
	if err := paged.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("could not get discussions: %w", err)
	}

	result, err := hydrateDiscussions(rows)
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (s *DiscussionPostgresStorage) ListAllDiscussions(ctx context.Context) ([]*model.Discussion, error) {
	var rows []models.Discussion
	err := DB.Order("created_at desc").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("could not get discussions: %w", err)
	}
	return hydrateDiscussions(rows)
}

func (s *DiscussionPostgresStorage) UpdateDiscussion(ctx context.Context, d *model.Discussion) (*model.Discussion, error) {
	updatedAt := d.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	err := DB.Transaction(func(tx *gorm.DB) error {
		var row models.Discussion
		if err := tx.Where("id = ?", d.ID).First(&row).Error; err != nil {
			return notFound(err, "discussion", d.ID)
		}

		// UpdateColumns не трогает updated_at сам, значение задает вызывающий
		err := tx.Model(&row).UpdateColumns(map[string]interface{}{
			"title":      d.Title,
			"content":    d.Content,
			"updated_at": updatedAt,
		}).Error
		if err != nil {
			return fmt.Errorf("could not update discussion: %w", err)
		}

		if err := tx.Where("discussion_id = ?", d.ID).Delete(&models.DiscussionTag{}).Error; err != nil {
			return fmt.Errorf("could not clear tags: %w", err)
		}
		return saveTags(tx, d.ID, d.Tags)
	})
	if err != nil {
		return nil, err
	}

	return s.GetDiscussionByID(ctx, d.ID)
}

func (s *DiscussionPostgresStorage) DeleteDiscussion(ctx context.Context, id string) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		var row models.Discussion
		if err := tx.Where("id = ?", id).First(&row).Error; err != nil {
			return notFound(err, "discussion", id)
		}

		var commentIDs []string
		err := tx.Model(&models.Comment{}).Where("discussion_id = ?", id).Pluck("id", &commentIDs).Error
		if err != nil {
			return fmt.Errorf("could not get comment ids: %w", err)
		}
		if err := deleteVotes(tx, model.TargetComment, commentIDs); err != nil {
			return err
		}
		if err := tx.Where("discussion_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("could not delete comments: %w", err)
		}
		if err := deleteVotes(tx, model.TargetDiscussion, []string{id}); err != nil {
			return err
		}
		if err := tx.Where("discussion_id = ?", id).Delete(&models.DiscussionTag{}).Error; err != nil {
			return fmt.Errorf("could not delete tags: %w", err)
		}
		if err := tx.Where("id = ?", id).Delete(&models.Discussion{}).Error; err != nil {
			return fmt.Errorf("could not delete discussion: %w", err)
		}
		return nil
	})
}

func saveTags(tx *gorm.DB, discussionID string, tags []string) error {
	for i, name := range tags {
		err := tx.Create(&models.DiscussionTag{
			DiscussionID: discussionID,
			Name:         name,
			Position:     i,
		}).Error
		if err != nil {
			return fmt.Errorf("could not save tag %q: %w", name, err)
		}
	}
	return nil
}

// hydrateDiscussions loads tags, votes and comment ids for a page of rows with
// one query each.
func hydrateDiscussions(rows []models.Discussion) ([]*model.Discussion, error) {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	tags := make(map[string][]string, len(ids))
	if len(ids) > 0 {
		var tagRows []models.DiscussionTag
		err := DB.Where("discussion_id IN (?)", ids).Order("position").Find(&tagRows).Error
		if err != nil {
			return nil, fmt.Errorf("could not get tags: %w", err)
		}
		for _, t := range tagRows {
			tags[t.DiscussionID] = append(tags[t.DiscussionID], t.Name)
		}
	}

	ledgers, err := loadLedgers(DB, model.TargetDiscussion, ids)
	if err != nil {
		return nil, err
	}
	commentIDs, err := loadCommentIDs(DB, ids)
	if err != nil {
		return nil, err
	}

	result := make([]*model.Discussion, 0, len(rows))
	for _, row := range rows {
		t := tags[row.ID]
		if t == nil {
			t = []string{}
		}
		result = append(result, &model.Discussion{
			ID:        row.ID,
			Title:     row.Title,
			Content:   row.Content,
			Tags:      t,
			AuthorID:  row.UserID,
			Ledger:    ledgers[row.ID],
			Comments:  commentIDs[row.ID],
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return result, nil
}

func likePattern(s string) string {
	escaper := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + escaper.Replace(s) + "%"
}
