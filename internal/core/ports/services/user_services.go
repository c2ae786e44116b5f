package services

import (
	"context"
	"time"

	"github.com/expensio/expensio_backend/internal/core/domain"
	"github.com/expensio/expensio_backend/internal/dto"
)

// UserSvcFacade defines user account operations.
type UserSvcFacade interface {
	// CreateUser registers a new local user with a bcrypt-hashed password.
	CreateUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// AuthenticateUser verifies the credentials and returns the user.
	// Returns apperrors.ErrUnauthorized on a mismatch.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)

	// UpdateUser applies a partial update to the user's profile.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error)

	// DeleteUser soft deletes the user.
	DeleteUser(ctx context.Context, userID, deleterUserID string) error

	// FindOrCreateUserFromGoogle resolves a validated Google profile to a
	// local user, creating one on first sign-in.
	FindOrCreateUserFromGoogle(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error)

	// SaveRefreshToken stores the hashed refresh token for the user.
	SaveRefreshToken(ctx context.Context, userID, refreshTokenHash string, expiryTime time.Time) error

	// ClearRefreshToken revokes the user's refresh session.
	ClearRefreshToken(ctx context.Context, userID string) error
}
