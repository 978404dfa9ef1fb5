package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskgrid/task-tracker-api/internal/core/domain"
	"github.com/taskgrid/task-tracker-api/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	users  ports.UserRepository
	hasher *PasswordHasher
	tokens *TokenManager
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, hasher *PasswordHasher, tokens *TokenManager, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, logger: logger}
}

// Register creates a new user account. Username uniqueness is checked strictly
// before email uniqueness, so when both collide the username error wins. The
// returned summary never carries the id, role or hash.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.RegisteredUser, error) {
	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return nil, domain.ErrDuplicateUsername
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		RegisteredAt: time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Msg("user registered")

	return &ports.RegisteredUser{Username: created.Username, Email: created.Email}, nil
}

// Login verifies credentials and issues a token pair. An unknown username and
// a wrong password are indistinguishable to the caller: both surface as the
// single domain.ErrInvalidCredentials, which blocks user enumeration.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.TokenPair, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		return nil, err
	}

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", user.Username).Msg("user logged in")

	return pair, nil
}
