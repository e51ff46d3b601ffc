package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bluegyufordev/matzip-server/internal/logger"
	"github.com/bluegyufordev/matzip-server/models"
)

// oauthRepository is the PostgreSQL-backed implementation of
// [OAuthRepository] over users.oauth.
type oauthRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewOAuthRepository constructs an [OAuthRepository] backed by the provided
// database connection and logger.
func NewOAuthRepository(db *DB, logger *logger.Logger) OAuthRepository {
	logger.Debug().Msg("creating oauth repository")
	return &oauthRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert inserts a link row for (provider, provider_user_id) or, when an
// active row already exists, refreshes its stored provider tokens in place.
// The ON CONFLICT target matches the partial unique index on active rows, so
// soft-deleted links never absorb the insert.
func (r *oauthRepository) Upsert(ctx context.Context, link models.OAuthLink) (models.OAuthLink, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, upsertOAuthLink,
		link.Provider, link.ProviderUserID, link.AccessToken, link.RefreshToken, link.RefreshTokenExpiresAt)

	var saved models.OAuthLink
	if err := row.Scan(&saved.Idx, &saved.UsersIdx, &saved.Provider, &saved.ProviderUserID,
		&saved.AccessToken, &saved.RefreshToken, &saved.RefreshTokenExpiresAt, &saved.IsDeleted, &saved.CreatedAt); err != nil {
		log.Err(err).Str("func", "*oauthRepository.Upsert").Msg("error: upserting oauth link")
		return models.OAuthLink{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return saved, nil
}

// FindByIdx loads an active link row by primary key.
// Returns [ErrOAuthLinkNotFound] when no row matches.
func (r *oauthRepository) FindByIdx(ctx context.Context, idx int64) (models.OAuthLink, error) {
	return r.findLink(ctx, "*oauthRepository.FindByIdx", findOAuthLinkByIdx, idx)
}

// FindByUser loads the active link row owned by the given account.
// Returns [ErrOAuthLinkNotFound] for local-only accounts.
func (r *oauthRepository) FindByUser(ctx context.Context, usersIdx int64) (models.OAuthLink, error) {
	return r.findLink(ctx, "*oauthRepository.FindByUser", findOAuthLinkByUser, usersIdx)
}

func (r *oauthRepository) findLink(ctx context.Context, funcName, query string, arg any) (models.OAuthLink, error) {
	log := logger.FromContext(ctx)

	var found models.OAuthLink
	row := r.db.QueryRowContext(ctx, query, arg)

	if err := row.Scan(&found.Idx, &found.UsersIdx, &found.Provider, &found.ProviderUserID,
		&found.AccessToken, &found.RefreshToken, &found.RefreshTokenExpiresAt, &found.IsDeleted, &found.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.OAuthLink{}, ErrOAuthLinkNotFound
		}

		log.Err(err).Str("func", funcName).Msg("error: finding oauth link")
		return models.OAuthLink{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// Claim backfills users_idx on an unclaimed link row. The WHERE clause only
// matches rows with users_idx still NULL, so claiming an already-claimed or
// missing row affects zero rows and returns [ErrOAuthLinkNotFound].
func (r *oauthRepository) Claim(ctx context.Context, idx, usersIdx int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, claimOAuthLink, idx, usersIdx)
	if err != nil {
		log.Err(err).Str("func", "*oauthRepository.Claim").Msg("error: claiming oauth link")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrOAuthLinkNotFound
	}

	return nil
}
