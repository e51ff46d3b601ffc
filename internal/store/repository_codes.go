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

// codeRepository is the PostgreSQL-backed implementation of [CodeRepository]
// over users.codes.
type codeRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCodeRepository constructs a [CodeRepository] backed by the provided
// database connection and logger.
func NewCodeRepository(db *DB, logger *logger.Logger) CodeRepository {
	logger.Debug().Msg("creating code repository")
	return &codeRepository{
		db:     db,
		logger: logger,
	}
}

// InsertCode records a freshly sent code for the address. Rows accumulate;
// resending never touches earlier rows.
func (r *codeRepository) InsertCode(ctx context.Context, email, code string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, insertCode, email, code); err != nil {
		log.Err(err).Str("func", "*codeRepository.InsertCode").Msg("error: inserting verification code")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// FindLatestCode returns the most recently sent code for the address.
// Returns [ErrCodeNotFound] when nothing has been sent.
func (r *codeRepository) FindLatestCode(ctx context.Context, email string) (models.VerificationCode, error) {
	log := logger.FromContext(ctx)

	var found models.VerificationCode
	row := r.db.QueryRowContext(ctx, findLatestCode, email)

	if err := row.Scan(&found.Idx, &found.Email, &found.Code, &found.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.VerificationCode{}, ErrCodeNotFound
		}

		log.Err(err).Str("func", "*codeRepository.FindLatestCode").Msg("error: finding latest code")
		return models.VerificationCode{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// DeleteCodesBefore purges codes created before cutoff and reports how many
// rows were removed. Run periodically by the cleanup worker.
func (r *codeRepository) DeleteCodesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteCodesBefore, cutoff)
	if err != nil {
		log.Err(err).Str("func", "*codeRepository.DeleteCodesBefore").Msg("error: purging old codes")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}
