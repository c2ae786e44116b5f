package services

import (
	"context"
	"time"

	"github.com/expensio/expensio_backend/internal/core/domain"
	"golang.org/x/oauth2"
)

// TokenSvcFacade defines JWT access token and refresh token operations.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT for the user and returns it
	// with its expiry time.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// GenerateRefreshToken creates an opaque refresh token and returns it
	// with its expiry time. Only its hash is ever persisted.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateAndParseRefreshToken checks a presented refresh token against
	// the user's stored hash and expiry, returning the user when valid.
	ValidateAndParseRefreshToken(ctx context.Context, userID, refreshTokenString string) (*domain.User, error)
}

// GoogleOAuthHandlerSvcFacade defines the Google OAuth sign-in flow.
type GoogleOAuthHandlerSvcFacade interface {
	// GenerateStateString creates a CSRF state token for the OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)

	// GetGoogleLoginURL returns the URL to redirect the user to for login.
	GetGoogleLoginURL(ctx context.Context, state string) string

	// ExchangeCodeForToken exchanges an authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)

	// GetUserInfo validates the ID token in the OAuth token and extracts
	// the user's profile.
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)
}
