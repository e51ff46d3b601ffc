package models

import "time"

// RefreshToken represents a row in users.local_tokens.
//
// The Token column stores the signed refresh token encrypted at rest; the
// plaintext JWT never touches the database. At most one row per user is
// active (not deleted, not expired) at any time — sign-in rotation inserts
// a fresh row and soft-deletes its predecessors inside one transaction.
type RefreshToken struct {
	Idx      int64 `json:"-"`
	UsersIdx int64 `json:"-"`

	// Token is the encrypted signed refresh token. This exact value is
	// what the client receives in the refreshToken cookie.
	Token string `json:"-"`

	ExpiresAt time.Time `json:"-"`
	IsDeleted bool      `json:"-"`
	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the RefreshToken model.
func (t RefreshToken) TableName() string {
	return "users.local_tokens"
}

// IsExpired reports whether the stored token's lifetime has elapsed at now.
func (t RefreshToken) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
