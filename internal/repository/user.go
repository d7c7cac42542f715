package repository

import (
	"context"

	"github.com/quizdojo/reward-engine/internal/domain"
)

// User defines the interface for user identity persistence.
type User interface {
	InsertUser(ctx context.Context, user *domain.User) error

	// GetUserByID returns domain.ErrUserNotFound if absent.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUsersByIdentifier returns every user whose username or display name
	// matches the human-entered identifier (case-insensitive). Zero or
	// multiple matches are the caller's problem to surface, never to resolve
	// silently.
	FindUsersByIdentifier(ctx context.Context, identifier string) ([]domain.User, error)
}
