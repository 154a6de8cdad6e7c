package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"todo-server/internal/auth"
	"todo-server/internal/domain"
	"todo-server/internal/repository"
)

// AuthService handles registration and login.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) error
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// LoginResult is what a successful login hands back to the transport layer.
// The user record itself, hash included, stays inside the service.
type LoginResult struct {
	Name  string
	Token string
}

type authService struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenManager
}

func NewAuthService(users repository.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenManager) AuthService {
	return &authService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

func (s *authService) Register(ctx context.Context, email, password, name string) error {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return errors.New("email, password and name are required")
	}

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.ErrUserExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	// The repository maps a unique-constraint violation to ErrUserExists,
	// so a concurrent registration racing past the pre-check still fails
	// with the same duplicate error.
	if err := s.users.Create(ctx, &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}); err != nil {
		return err
	}
	return nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Indistinguishable from a wrong password below, so callers
			// cannot probe which emails are registered.
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResult{
		Name:  user.Name,
		Token: token,
	}, nil
}
