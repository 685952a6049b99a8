package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"comic-catalog/internal/domain"
	"comic-catalog/internal/repository"
)

// ErrInvalidCredentials indicates that provided login credentials are incorrect.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserService describes account lookup and authentication operations.
type UserService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// Authenticate verifies username/password and returns the account without
	// its password hash. ErrInvalidCredentials for unknown users, inactive
	// accounts and password mismatches alike.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	// IssueOrGetToken returns the user's token, allocating one on first call.
	IssueOrGetToken(ctx context.Context, userID int64) (*domain.Token, error)
	// GetUserByToken resolves an opaque token key to its account.
	GetUserByToken(ctx context.Context, key string) (*domain.User, error)
}

type userService struct {
	users  repository.UserRepository
	tokens repository.TokenRepository
}

func NewUserService(users repository.UserRepository, tokens repository.TokenRepository) UserService {
	return &userService{users: users, tokens: tokens}
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	return sanitizeUser(user), nil
}

func (s *userService) IssueOrGetToken(ctx context.Context, userID int64) (*domain.Token, error) {
	key, err := newTokenKey()
	if err != nil {
		return nil, err
	}
	return s.tokens.GetOrCreate(ctx, userID, key)
}

func (s *userService) GetUserByToken(ctx context.Context, key string) (*domain.User, error) {
	token, err := s.tokens.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

// newTokenKey generates a 40-char hex credential with no embedded structure.
func newTokenKey() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	clean := *user
	clean.PasswordHash = ""
	return &clean
}
