package store

import (
	"context"
	"errors"

	"github.com/moodlens/emotion-service/internal/models"
)

var (
	// ErrAlreadyExists is returned when the username is already registered.
	ErrAlreadyExists = errors.New("user already exists")
	// ErrNotFound is returned when no user has the given username.
	ErrNotFound = errors.New("user not found")
)

// UserStore provides user persistence. Usernames are unique keys.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}
