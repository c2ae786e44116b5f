package models

import "time"

// User is the database representation of a user row.
type User struct {
	UserID                 string
	Name                   string
	Username               string
	PasswordHash           string
	AuthProvider           string
	ProviderUserID         string
	RefreshTokenHash       string
	RefreshTokenExpiryTime *time.Time
	AuditFields
	DeletedAt *time.Time
}
