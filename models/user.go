package models

import (
	"database/sql"
	"time"
)

// Roles assignable to a user account. Stored as-is in the role column and
// embedded in every issued access token.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Auth providers recorded in token payloads and OAuth link rows.
const (
	ProviderLocal = "LOCAL"
	ProviderKakao = "KAKAO"
)

// User represents an account row in users.lists.
// Accounts created through OAuth have no local credentials until the user
// completes signup, so LoginID and Password are nullable at the persistence
// layer. Password always holds a bcrypt hash, never plaintext.
type User struct {
	// Idx is the internal unique identifier of the user (users_idx in
	// token payloads and foreign keys).
	Idx int64 `json:"-"`

	// LoginID is the unique external login identifier. NULL for
	// OAuth-only accounts.
	LoginID sql.NullString `json:"id"`

	// Password is the bcrypt hash of the user's password. NULL for
	// OAuth-only accounts. Never exposed via JSON.
	Password sql.NullString `json:"-"`

	// Nickname is the unique display name shown in the application.
	Nickname string `json:"nickname"`

	// Email is the unique, verified e-mail address of the account.
	Email string `json:"email"`

	// Role is either RoleUser or RoleAdmin.
	Role string `json:"role"`

	// OAuthIdx references the users.oauth row that this account was
	// created from, when applicable.
	OAuthIdx sql.NullInt64 `json:"-"`

	// IsDeleted marks the account as soft-deleted. Soft-deleted accounts
	// are invisible to every auth flow.
	IsDeleted bool `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users.lists"
}
