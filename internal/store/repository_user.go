package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bluegyufordev/matzip-server/internal/logger"
	"github.com/bluegyufordev/matzip-server/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation and lookup against the "users.lists" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new account row and returns the fully populated
// [models.User] with server-assigned fields (Idx, CreatedAt).
//
// The INSERT uses the [createUser] prepared query which returns all columns
// via a RETURNING clause, so the caller receives the canonical database
// representation of the newly created account.
//
// Error handling:
//   - unique_violation (23505) on a known constraint → the field-level
//     duplicate sentinel (ErrDuplicateLoginID / -Nickname / -Email).
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.LoginID, user.Password, user.Nickname, user.Email, user.Role, user.OAuthIdx)

	var created models.User
	if err := row.Scan(&created.Idx, &created.LoginID, &created.Password, &created.Nickname, &created.Email, &created.Role, &created.OAuthIdx, &created.IsDeleted, &created.CreatedAt); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: creating user")

		if dupErr := duplicateFieldError(err); dupErr != nil {
			return models.User{}, dupErr
		}
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// FindUserByIdx retrieves a non-deleted account by primary key.
// Returns [ErrUserNotFound] when no row matches.
func (r *userRepository) FindUserByIdx(ctx context.Context, idx int64) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByIdx", findUserByIdx, idx)
}

// FindUserByLoginID retrieves a non-deleted account by login identifier.
// Returns [ErrUserNotFound] when no row matches.
func (r *userRepository) FindUserByLoginID(ctx context.Context, loginID string) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByLoginID", findUserByLoginID, loginID)
}

// FindUserByEmail retrieves a non-deleted account by e-mail address.
// Returns [ErrUserNotFound] when no row matches.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByEmail", findUserByEmail, email)
}

func (r *userRepository) findUser(ctx context.Context, funcName, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	var found models.User
	row := r.db.QueryRowContext(ctx, query, arg)

	if err := row.Scan(&found.Idx, &found.LoginID, &found.Password, &found.Nickname, &found.Email, &found.Role, &found.OAuthIdx, &found.IsDeleted, &found.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).Str("func", funcName).Msg("error: finding user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// FindLoginID returns the login identifier of the account owning the e-mail
// address. Returns [ErrUserNotFound] when no row matches.
func (r *userRepository) FindLoginID(ctx context.Context, email string) (string, error) {
	log := logger.FromContext(ctx)

	var loginID sql.NullString
	row := r.db.QueryRowContext(ctx, findLoginID, email)

	if err := row.Scan(&loginID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrUserNotFound
		}

		log.Err(err).Str("func", "*userRepository.FindLoginID").Msg("error: finding login id")
		return "", fmt.Errorf("unexpected DB error: %w", err)
	}

	// OAuth-only accounts carry a NULL id; they are invisible to find-id.
	if !loginID.Valid {
		return "", ErrUserNotFound
	}

	return loginID.String, nil
}

// FindDuplicateField reports which of the given unique fields already
// belongs to a non-deleted account.
//
// The lookup query is built dynamically with squirrel so that only the
// non-empty inputs participate in the OR clause. When a row collides on
// several fields at once the report follows the precedence id > nickname >
// email. An empty result means no collision.
func (r *userRepository) FindDuplicateField(ctx context.Context, loginID, nickname, email string) (string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDuplicateLookupQuery(loginID, nickname, email)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindDuplicateField").Msg("failed to create query")
		return "", err
	}

	var foundLoginID sql.NullString
	var foundNickname, foundEmail string
	row := r.db.QueryRowContext(ctx, query, args...)

	if err := row.Scan(&foundLoginID, &foundNickname, &foundEmail); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		log.Err(err).Str("func", "*userRepository.FindDuplicateField").Msg("error: finding duplicate field")
		return "", fmt.Errorf("unexpected DB error: %w", err)
	}

	switch {
	case loginID != "" && foundLoginID.Valid && foundLoginID.String == loginID:
		return "id", nil
	case nickname != "" && foundNickname == nickname:
		return "nickname", nil
	case email != "" && foundEmail == email:
		return "email", nil
	default:
		// Row matched the OR clause, so one of the fields collided.
		return "email", nil
	}
}

// UpdatePassword replaces the stored password hash of an account.
// Returns [ErrUserNotFound] when the account does not exist or is deleted.
func (r *userRepository) UpdatePassword(ctx context.Context, idx int64, passwordHash string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, updatePassword, idx, passwordHash)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePassword").Msg("error: updating password")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}
