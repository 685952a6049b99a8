package repository

import (
	"context"

	"comic-catalog/internal/domain"
)

// TokenRepository defines persistence operations for auth tokens.
type TokenRepository interface {
	Init(ctx context.Context) error
	// GetOrCreate inserts a token with the given key for the user unless one
	// already exists, and returns the row that ended up persisted. Two
	// concurrent calls for the same user observe the same token.
	GetOrCreate(ctx context.Context, userID int64, key string) (*domain.Token, error)
	GetByKey(ctx context.Context, key string) (*domain.Token, error)
}
