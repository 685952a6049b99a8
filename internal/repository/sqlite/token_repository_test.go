package sqlite

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comic-catalog/internal/domain"
	"comic-catalog/internal/repository"
)

func seedUser(t *testing.T, repo repository.UserRepository, username string) int64 {
	t.Helper()
	user := domain.User{Username: username, PasswordHash: "x", IsActive: true}
	id, err := repo.Create(context.Background(), &user)
	require.NoError(t, err)
	return id
}

func TestTokenGetOrCreateReusesRow(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	tokens := NewTokenRepository(db)
	ctx := context.Background()

	userID := seedUser(t, users, "clark")

	first, err := tokens.GetOrCreate(ctx, userID, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	require.NoError(t, err)
	assert.Equal(t, userID, first.UserID)

	// a second candidate key must not replace the persisted one
	second, err := tokens.GetOrCreate(ctx, userID, "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	require.NoError(t, err)
	assert.Equal(t, first.Key, second.Key)
}

func TestTokenGetOrCreateConcurrent(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	tokens := NewTokenRepository(db)
	ctx := context.Background()

	userID := seedUser(t, users, "diana")

	const callers = 8
	keys := make([]string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tok, err := tokens.GetOrCreate(ctx, userID, fmt.Sprintf("%040d", i))
			if err == nil {
				keys[i] = tok.Key
			}
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		assert.Equal(t, keys[0], keys[i])
	}

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM auth_tokens WHERE user_id = ?`, userID).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestTokenGetByKey(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	tokens := NewTokenRepository(db)
	ctx := context.Background()

	userID := seedUser(t, users, "bruce")
	issued, err := tokens.GetOrCreate(ctx, userID, "cccccccccccccccccccccccccccccccccccccccc")
	require.NoError(t, err)

	got, err := tokens.GetByKey(ctx, issued.Key)
	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)
}
