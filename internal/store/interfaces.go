package store

import (
	"context"
	"time"

	"github.com/bluegyufordev/matzip-server/models"
)

// UserRepository persists and queries user accounts in users.lists.
type UserRepository interface {
	// CreateUser inserts a new account row and returns the canonical
	// database representation. Unique-constraint violations come back as
	// ErrDuplicateLoginID / ErrDuplicateNickname / ErrDuplicateEmail.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByIdx loads a non-deleted account by primary key.
	FindUserByIdx(ctx context.Context, idx int64) (models.User, error)

	// FindUserByLoginID loads a non-deleted account by login identifier.
	FindUserByLoginID(ctx context.Context, loginID string) (models.User, error)

	// FindUserByEmail loads a non-deleted account by e-mail address.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindLoginID returns the login identifier of the account owning the
	// e-mail address. Returns ErrUserNotFound when no such account exists
	// or the account has no local login identifier.
	FindLoginID(ctx context.Context, email string) (string, error)

	// FindDuplicateField reports which of the given unique fields already
	// belongs to a non-deleted account: "id", "nickname" or "email".
	// Empty inputs are skipped; an empty result means no collision.
	FindDuplicateField(ctx context.Context, loginID, nickname, email string) (string, error)

	// UpdatePassword replaces the stored password hash of an account.
	UpdatePassword(ctx context.Context, idx int64, passwordHash string) error
}

// RefreshTokenRepository manages the active refresh-token row per user in
// users.local_tokens.
type RefreshTokenRepository interface {
	// Rotate returns the refresh-token value to hand to the client. The
	// whole decision runs in one transaction with the active row locked:
	// a still-valid row is reused as-is; an absent or expired row is
	// soft-deleted and replaced with a freshly minted value from mint.
	// The boolean reports whether a new row was inserted.
	Rotate(ctx context.Context, usersIdx int64, expiresAt time.Time, mint func() (string, error)) (string, bool, error)

	// SoftDeleteByUser marks every active refresh-token row of the user
	// deleted. Deleting zero rows is not an error.
	SoftDeleteByUser(ctx context.Context, usersIdx int64) error
}

// OAuthRepository manages provider identity links in users.oauth.
type OAuthRepository interface {
	// Upsert inserts a link row for (provider, provider_user_id) or, when
	// an active row already exists, refreshes its stored provider tokens.
	// Returns the resulting row either way.
	Upsert(ctx context.Context, link models.OAuthLink) (models.OAuthLink, error)

	// FindByIdx loads an active link row by primary key.
	FindByIdx(ctx context.Context, idx int64) (models.OAuthLink, error)

	// FindByUser loads the active link row owned by the given account.
	FindByUser(ctx context.Context, usersIdx int64) (models.OAuthLink, error)

	// Claim backfills users_idx on an unclaimed link row. Claiming an
	// already-claimed or missing row returns ErrOAuthLinkNotFound.
	Claim(ctx context.Context, idx, usersIdx int64) error
}

// CodeRepository manages e-mail verification codes in users.codes.
// Rows accumulate; reads always take the most recent code per address.
type CodeRepository interface {
	// InsertCode records a freshly sent code for the address.
	InsertCode(ctx context.Context, email, code string) error

	// FindLatestCode returns the most recently sent code for the address.
	// Returns ErrCodeNotFound when nothing has been sent.
	FindLatestCode(ctx context.Context, email string) (models.VerificationCode, error)

	// DeleteCodesBefore purges codes created before cutoff and reports
	// how many rows were removed.
	DeleteCodesBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
