package postgres

import (
	"context"
	"fmt"

	"github.com/VitaminP8/dsaboard/internal/model"
	"github.com/VitaminP8/dsaboard/models"
	"github.com/jinzhu/gorm"
)

type UserPostgresStorage struct{}

func NewUserPostgresStorage() *UserPostgresStorage {
	return &UserPostgresStorage{}
}

func (s *UserPostgresStorage) FindOrCreateByGoogleID(ctx context.Context, googleID, email, name string) (*model.User, error) {
	// проверка - существует ли такой пользователь
	var row models.User
	err := DB.Where("google_id = ?", googleID).First(&row).Error
	if err == nil {
		return s.withSolved(&row)
	}
	if !gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("could not get user: %w", err)
	}

	row = models.User{
		GoogleID: googleID,
		Email:    email,
		Name:     name,
	}
	if err := DB.Create(&row).Error; err != nil {
		// параллельный вход мог создать пользователя раньше нас
		var existing models.User
		if lookupErr := DB.Where("google_id = ?", googleID).First(&existing).Error; lookupErr == nil {
			return s.withSolved(&existing)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.withSolved(&row)
}

func (s *UserPostgresStorage) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var row models.User
	err := DB.Where("id = ?", id).First(&row).Error
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return s.withSolved(&row)
}

func (s *UserPostgresStorage) AddSolvedQuestion(ctx context.Context, userID, title string) (*model.User, error) {
	var row models.User
	if err := DB.Where("id = ?", userID).First(&row).Error; err != nil {
		return nil, notFound(err, "user", userID)
	}

	var solved models.SolvedQuestion
	err := DB.Where(models.SolvedQuestion{UserID: userID, Title: title}).FirstOrCreate(&solved).Error
	if err != nil {
		return nil, fmt.Errorf("could not add solved question: %w", err)
	}

	return s.withSolved(&row)
}

func (s *UserPostgresStorage) RemoveSolvedQuestion(ctx context.Context, userID, title string) (*model.User, error) {
	var row models.User
	if err := DB.Where("id = ?", userID).First(&row).Error; err != nil {
		return nil, notFound(err, "user", userID)
	}

	err := DB.Where("user_id = ? AND title = ?", userID, title).Delete(&models.SolvedQuestion{}).Error
	if err != nil {
		return nil, fmt.Errorf("could not remove solved question: %w", err)
	}

	return s.withSolved(&row)
}

func (s *UserPostgresStorage) withSolved(row *models.User) (*model.User, error) {
	var titles []string
	err := DB.Model(&models.SolvedQuestion{}).Where("user_id = ?", row.ID).Order("id").Pluck("title", &titles).Error
	if err != nil {
		return nil, fmt.Errorf("could not get solved questions: %w", err)
	}
	if titles == nil {
		titles = []string{}
	}

	return &model.User{
		ID:              row.ID,
		GoogleID:        row.GoogleID,
		Email:           row.Email,
		Name:            row.Name,
		SolvedQuestions: titles,
	}, nil
}
