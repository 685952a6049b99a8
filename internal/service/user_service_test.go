package service

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"comic-catalog/internal/domain"
	"comic-catalog/internal/repository"
	"comic-catalog/internal/repository/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, sqlite.NewComicRepository(db).Init(ctx))
	require.NoError(t, sqlite.NewUserRepository(db).Init(ctx))
	require.NoError(t, sqlite.NewWishListRepository(db).Init(ctx))
	require.NoError(t, sqlite.NewTokenRepository(db).Init(ctx))
	return db
}

func newUserService(t *testing.T, db *sql.DB) (UserService, repository.UserRepository) {
	t.Helper()
	users := sqlite.NewUserRepository(db)
	tokens := sqlite.NewTokenRepository(db)
	return NewUserService(users, tokens), users
}

func createUser(t *testing.T, users repository.UserRepository, username, password string, staff bool) int64 {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := domain.User{
		Username:     username,
		PasswordHash: string(hash),
		IsStaff:      staff,
		IsActive:     true,
	}
	id, err := users.Create(context.Background(), &user)
	require.NoError(t, err)
	return id
}

func TestAuthenticateSuccess(t *testing.T) {
	db := openTestDB(t)
	svc, users := newUserService(t, db)
	createUser(t, users, "peter", "with-great-power", false)

	user, err := svc.Authenticate(context.Background(), "peter", "with-great-power")
	require.NoError(t, err)
	assert.Equal(t, "peter", user.Username)
	assert.Empty(t, user.PasswordHash)
	assert.NotNil(t, user.LastLogin)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	db := openTestDB(t)
	svc, users := newUserService(t, db)
	createUser(t, users, "peter", "with-great-power", false)

	_, err := svc.Authenticate(context.Background(), "peter", "wrong")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestAuthenticateUnknownUser(t *testing.T) {
	db := openTestDB(t)
	svc, _ := newUserService(t, db)

	_, err := svc.Authenticate(context.Background(), "nobody", "whatever")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestAuthenticateEmptyInput(t *testing.T) {
	db := openTestDB(t)
	svc, _ := newUserService(t, db)

	_, err := svc.Authenticate(context.Background(), "", "")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestAuthenticateInactiveAccount(t *testing.T) {
	db := openTestDB(t)
	svc, users := newUserService(t, db)

	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	user := domain.User{Username: "gone", PasswordHash: string(hash), IsActive: false}
	_, err = users.Create(context.Background(), &user)
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), "gone", "pw")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestIssueOrGetTokenIdempotent(t *testing.T) {
	db := openTestDB(t)
	svc, users := newUserService(t, db)
	id := createUser(t, users, "tony", "jarvis-pls", false)
	ctx := context.Background()

	first, err := svc.IssueOrGetToken(ctx, id)
	require.NoError(t, err)
	assert.Len(t, first.Key, 40)

	second, err := svc.IssueOrGetToken(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, first.Key, second.Key)
}

func TestGetUserByToken(t *testing.T) {
	db := openTestDB(t)
	svc, users := newUserService(t, db)
	id := createUser(t, users, "steve", "shield123", true)
	ctx := context.Background()

	token, err := svc.IssueOrGetToken(ctx, id)
	require.NoError(t, err)

	user, err := svc.GetUserByToken(ctx, token.Key)
	require.NoError(t, err)
	assert.Equal(t, "steve", user.Username)
	assert.True(t, user.IsStaff)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.GetUserByToken(ctx, "0000000000000000000000000000000000000000")
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestListUsersStripsHashes(t *testing.T) {
	db := openTestDB(t)
	svc, users := newUserService(t, db)
	createUser(t, users, "natasha", "redroom1", false)

	list, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].PasswordHash)
}
