package models

import (
	"database/sql"
	"time"
)

// OAuthLink represents a row in users.oauth binding a third-party provider
// identity to a local account.
//
// A link starts unclaimed: the row is created at the provider callback with
// UsersIdx NULL while the client finishes signup. Completing signup creates
// the users.lists row and backfills UsersIdx, after which subsequent provider
// callbacks short-circuit straight to access-token issuance.
//
// AccessToken and RefreshToken hold the provider-issued tokens encrypted at
// rest; they are decrypted only to call the provider's logout endpoint.
type OAuthLink struct {
	Idx int64 `json:"-"`

	// UsersIdx is NULL until the signup-completion step claims the link.
	UsersIdx sql.NullInt64 `json:"-"`

	// Provider is the provider name, e.g. ProviderKakao.
	Provider string `json:"-"`

	// ProviderUserID is the provider-assigned account identifier.
	ProviderUserID string `json:"-"`

	// AccessToken is the provider access token, encrypted.
	AccessToken string `json:"-"`

	// RefreshToken is the provider refresh token, encrypted.
	RefreshToken string `json:"-"`

	// RefreshTokenExpiresAt is the provider-reported refresh token
	// expiry, when the provider supplies one.
	RefreshTokenExpiresAt sql.NullTime `json:"-"`

	IsDeleted bool      `json:"-"`
	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the OAuthLink model.
func (l OAuthLink) TableName() string {
	return "users.oauth"
}

// IsClaimed reports whether an owning users.lists row exists for this link.
func (l OAuthLink) IsClaimed() bool {
	return l.UsersIdx.Valid
}
