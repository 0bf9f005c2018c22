package repository

import (
	"context"

	"fintrack/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (int64, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// ListByUsernameFold returns every user whose username equals the
	// given one ignoring case. Storage keeps usernames case-sensitive, so
	// more than one row can match.
	ListByUsernameFold(ctx context.Context, username string) ([]domain.User, error)
	Delete(ctx context.Context, username string) error
}
