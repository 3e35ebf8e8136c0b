package user

import (
	"context"

	"github.com/google/uuid"

	"bookcatalog-backend/internal/domains/user/model"
)

type Service interface {
	// Signup registers an account with the default "user" role and returns a
	// signed token. Errors: ErrEmailAlreadyExists, validation errors.
	Signup(ctx context.Context, req model.SignupRequest) (*model.AuthResponse, error)

	// Login verifies credentials and returns a signed token. A wrong email
	// and a wrong password both yield ErrInvalidCredentials.
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error)

	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// SetRole promotes or demotes an account. Admin only.
	SetRole(ctx context.Context, id uuid.UUID, req model.SetRoleRequest) (*model.User, error)
}
