package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"comic-catalog/internal/domain"
	"comic-catalog/internal/repository"
)

const createTokensTable = `
CREATE TABLE IF NOT EXISTS auth_tokens (
	key TEXT PRIMARY KEY,
	user_id INTEGER NOT NULL UNIQUE REFERENCES users (id),
	created_at DATETIME NOT NULL
);
`

type TokenRepository struct {
	db *sql.DB
}

func NewTokenRepository(db *sql.DB) repository.TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTokensTable); err != nil {
		return fmt.Errorf("create auth_tokens table: %w", err)
	}
	return nil
}

// GetOrCreate inserts a token for the user unless one already exists. The
// user_id unique constraint makes the insert a no-op for the loser of a
// concurrent race; both callers then read the same persisted row.
func (r *TokenRepository) GetOrCreate(ctx context.Context, userID int64, key string) (*domain.Token, error) {
	if _, err := r.db.ExecContext(ctx, `
INSERT INTO auth_tokens (key, user_id, created_at)
VALUES (?, ?, ?)
ON CONFLICT (user_id) DO NOTHING`,
		key, userID, time.Now().UTC(),
	); err != nil {
		return nil, fmt.Errorf("insert token: %w", err)
	}

	row := r.db.QueryRowContext(ctx, `
SELECT key, user_id, created_at FROM auth_tokens WHERE user_id = ?`, userID)
	return scanToken(row)
}

func (r *TokenRepository) GetByKey(ctx context.Context, key string) (*domain.Token, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT key, user_id, created_at FROM auth_tokens WHERE key = ?`, key)
	return scanToken(row)
}

func scanToken(row *sql.Row) (*domain.Token, error) {
	var t domain.Token
	if err := row.Scan(&t.Key, &t.UserID, &t.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan token: %w", err)
	}
	return &t, nil
}
