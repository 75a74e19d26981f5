package auth

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
)

// ErrMissingCredentials reports an empty username or password.
var ErrMissingCredentials = errors.New("auth: missing credentials")

type loginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// Service validates and authenticates login attempts.
type Service struct {
	repo     Repository
	validate *validator.Validate
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: validator.New()}
}

// Login checks the form and looks up the operator account.
func (s *Service) Login(ctx context.Context, username, password string) (Admin, error) {
	form := loginForm{Username: username, Password: password}
	if err := s.validate.Struct(form); err != nil {
		return Admin{}, ErrMissingCredentials
	}
	return s.repo.Authenticate(ctx, username, password)
}
