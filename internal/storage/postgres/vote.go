package postgres

import (
	"context"
	"fmt"

	"github.com/VitaminP8/dsaboard/internal/model"
	"github.com/VitaminP8/dsaboard/models"
	"github.com/jinzhu/gorm"
)

type VotePostgresStorage struct{}

func NewVotePostgresStorage() *VotePostgresStorage {
	return &VotePostgresStorage{}
}

// CastVote replaces the caller's vote row in one transaction, so concurrent
// votes on the same target never overwrite each other's entries.
func (s *VotePostgresStorage) CastVote(ctx context.Context, target model.VoteTarget, targetID, userID string, dir model.VoteDirection) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("target_type = ? AND target_id = ? AND user_id = ?", string(target), targetID, userID).
			Delete(&models.Vote{}).Error
		if err != nil {
			return fmt.Errorf("could not clear vote: %w", err)
		}

		if dir == model.VoteNone {
			return nil
		}

		err = tx.Create(&models.Vote{
			TargetType: string(target),
			TargetID:   targetID,
			UserID:     userID,
			Value:      int(dir),
		}).Error
		if err != nil {
			return fmt.Errorf("could not store vote: %w", err)
		}
		return nil
	})
}

// loadLedgers returns a ledger for every id, empty when nobody voted.
func loadLedgers(db *gorm.DB, target model.VoteTarget, ids []string) (map[string]model.Ledger, error) {
	ledgers := make(map[string]model.Ledger, len(ids))
	for _, id := range ids {
		ledgers[id] = model.Ledger{Upvotes: []string{}, Downvotes: []string{}}
	}
	if len(ids) == 0 {
		return ledgers, nil
	}

	var rows []models.Vote
	err := db.Where("target_type = ? AND target_id IN (?)", string(target), ids).
		Order("created_at, id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("could not get votes: %w", err)
	}

	for _, row := range rows {
		l := ledgers[row.TargetID]
		if row.Value > 0 {
			l.Upvotes = append(l.Upvotes, row.UserID)
		} else {
			l.Downvotes = append(l.Downvotes, row.UserID)
		}
		ledgers[row.TargetID] = l
	}

	return ledgers, nil
}

func deleteVotes(tx *gorm.DB, target model.VoteTarget, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	err := tx.Where("target_type = ? AND target_id IN (?)", string(target), ids).Delete(&models.Vote{}).Error
	if err != nil {
		return fmt.Errorf("could not delete votes: %w", err)
	}
	return nil
}
