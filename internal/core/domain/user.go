package domain

import "time"

// AuthProvider identifies how a user account was created.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User represents an account that owns transactions.
type User struct {
	UserID       string       `json:"userID"` // Primary Key (UUID)
	Name         string       `json:"name"`
	Username     string       `json:"username"`
	PasswordHash string       `json:"-"`
	AuthProvider AuthProvider `json:"authProvider"`
	// ProviderUserID is the subject identifier at the external provider,
	// empty for local accounts.
	ProviderUserID string `json:"-"`

	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`

	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// GoogleUserInfo carries the profile fields extracted from a validated
// Google ID token.
type GoogleUserInfo struct {
	Subject string
	Email   string
	Name    string
}
