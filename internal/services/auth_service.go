package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/azadstore/storefront/internal/domain"
	"github.com/azadstore/storefront/internal/repositories"
)

// StaticToken is the placeholder access token returned on a successful login.
// It is not scoped and does not expire; session hardening is an explicit
// non-goal for this store.
const StaticToken = "access-granted-token"

var (
	// ErrInvalidCredentials indicates a failed plaintext credential comparison.
	ErrInvalidCredentials = errors.New("auth service: invalid credentials")
	// ErrAuthInvalidInput indicates missing fields in a credential mutation.
	ErrAuthInvalidInput = errors.New("auth service: invalid input")
)

// AuthServiceDeps bundles constructor inputs for the auth service.
type AuthServiceDeps struct {
	Admin repositories.AdminConfigRepository
}

type authService struct {
	repo     repositories.AdminConfigRepository
	validate *validator.Validate
}

// NewAuthService constructs the auth service with the supplied dependencies.
func NewAuthService(deps AuthServiceDeps) (AuthService, error) {
	if deps.Admin == nil {
		return nil, errors.New("auth service: admin config repository is required")
	}
	return &authService{repo: deps.Admin, validate: validator.New()}, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	cfg, err := s.repo.Load(ctx)
	if err != nil {
		return "", err
	}
	if username != cfg.Username || password != cfg.Password {
		return "", ErrInvalidCredentials
	}
	return StaticToken, nil
}

func (s *authService) ChangePassword(ctx context.Context, cmd ChangePasswordCommand) error {
	if err := s.validate.Struct(cmd); err != nil {
		return fmt.Errorf("%w: %v", ErrAuthInvalidInput, err)
	}
	cfg, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	if cfg.Password != cmd.OldPassword {
		return ErrInvalidCredentials
	}
	return s.repo.Save(ctx, domain.AdminConfig{
		Username: cmd.NewUsername,
		Password: cmd.NewPassword,
	})
}
