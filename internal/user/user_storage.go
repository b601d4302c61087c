package user

import (
	"context"

	"github.com/VitaminP8/dsaboard/internal/model"
)

type UserStorage interface {
	// FindOrCreateByGoogleID returns the user linked to a Google account,
	// creating it on first sign-in.
	FindOrCreateByGoogleID(ctx context.Context, googleID, email, name string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	// AddSolvedQuestion is a no-op when the title is already in the list.
	AddSolvedQuestion(ctx context.Context, userID, title string) (*model.User, error)
	RemoveSolvedQuestion(ctx context.Context, userID, title string) (*model.User, error)
}
