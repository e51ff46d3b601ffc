// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bluegyufordev/matzip-server/internal/logger"
	"github.com/bluegyufordev/matzip-server/models"
)

// rotateMaxAttempts bounds transaction retries on transient driver errors
// (deadlocks, serialization failures, dropped connections).
const rotateMaxAttempts = 3

// refreshTokenRepository is the PostgreSQL-backed implementation of
// [RefreshTokenRepository] over users.local_tokens.
type refreshTokenRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewRefreshTokenRepository constructs a [RefreshTokenRepository] backed by
// the provided database connection and logger.
func NewRefreshTokenRepository(db *DB, logger *logger.Logger) RefreshTokenRepository {
	logger.Debug().Msg("creating refresh token repository")
	return &refreshTokenRepository{
		db:     db,
		logger: logger,
	}
}

// Rotate returns the refresh-token value the client should hold after a
// successful sign-in.
//
// The whole decision runs inside one transaction with the user's active row
// locked (SELECT ... FOR UPDATE), so two concurrent sign-ins for the same
// account serialize instead of both inserting:
//
//  1. An active, unexpired row exists → its stored value is reused as-is and
//     no write happens.
//  2. The row is expired, or no row exists → active rows are soft-deleted,
//     mint produces a fresh value and a new row is inserted.
//
// Transient driver failures (deadlock, serialization, connection loss) are
// retried up to [rotateMaxAttempts] times per the database's error
// classifier. The boolean result reports whether a new row was inserted.
func (r *refreshTokenRepository) Rotate(ctx context.Context, usersIdx int64, expiresAt time.Time, mint func() (string, error)) (string, bool, error) {
	log := logger.FromContext(ctx)

	var lastErr error
	for attempt := 1; attempt <= rotateMaxAttempts; attempt++ {
		value, rotated, err := r.rotateOnce(ctx, usersIdx, expiresAt, mint)
		if err == nil {
			return value, rotated, nil
		}

		lastErr = err
		if r.db.errorClassificator.Classify(err) != Retryable {
			return "", false, err
		}

		log.Warn().Err(err).
			Int("attempt", attempt).
			Str("func", "*refreshTokenRepository.Rotate").
			Msg("retrying token rotation after transient error")
	}

	return "", false, lastErr
}

func (r *refreshTokenRepository) rotateOnce(ctx context.Context, usersIdx int64, expiresAt time.Time, mint func() (string, error)) (string, bool, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.Rotate").Msg("error: beginning transaction")
		return "", false, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var active models.RefreshToken
	row := tx.QueryRowContext(ctx, findActiveTokenForUpdate, usersIdx)
	err = row.Scan(&active.Idx, &active.UsersIdx, &active.Token, &active.ExpiresAt, &active.IsDeleted, &active.CreatedAt)

	switch {
	case err == nil && !active.IsExpired(time.Now()):
		// Reuse the stored value; nothing to write.
		if err := tx.Commit(); err != nil {
			return "", false, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
		}
		return active.Token, false, nil

	case err != nil && !errors.Is(err, sql.ErrNoRows):
		log.Err(err).Str("func", "*refreshTokenRepository.Rotate").Msg("error: locking active token row")
		return "", false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	// Expired or absent: retire whatever is active and insert a new row.
	if _, err := tx.ExecContext(ctx, softDeleteTokens, usersIdx); err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.Rotate").Msg("error: soft-deleting stale tokens")
		return "", false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	value, err := mint()
	if err != nil {
		return "", false, fmt.Errorf("minting refresh token: %w", err)
	}

	if _, err := tx.ExecContext(ctx, insertToken, usersIdx, value, expiresAt); err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.Rotate").Msg("error: inserting new token row")
		return "", false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return value, true, nil
}

// SoftDeleteByUser retires every active refresh-token row of the user.
// Deleting zero rows is not an error, which keeps sign-out idempotent.
func (r *refreshTokenRepository) SoftDeleteByUser(ctx context.Context, usersIdx int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, softDeleteTokens, usersIdx); err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.SoftDeleteByUser").Msg("error: soft-deleting tokens")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
