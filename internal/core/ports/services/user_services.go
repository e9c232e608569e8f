package services

import (
	"context"
	"time"

	"github.com/foliotrack/folio_backend/internal/core/domain"
	"github.com/foliotrack/folio_backend/internal/dto"
)

// UserSvcFacade defines user registration and lookup.
type UserSvcFacade interface {
	// CreateUser registers a new user with a bcrypt-hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// AuthenticateUser verifies username/password and returns the user.
	AuthenticateUser(ctx context.Context, username string, password string) (*domain.User, error)
}

// TokenSvcFacade issues access tokens for authenticated users.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT for the user and returns it
	// with its expiry time.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}
