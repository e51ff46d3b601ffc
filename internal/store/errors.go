package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserNotFound is returned when a query expected to match at least
	// one user record produces an empty result set.
	ErrUserNotFound = errors.New("no user was found")

	// ErrDuplicateLoginID is returned when an INSERT or UPDATE violates the
	// unique constraint on users.lists.id.
	ErrDuplicateLoginID = errors.New("login id already exists")

	// ErrDuplicateNickname is returned when an INSERT or UPDATE violates
	// the unique constraint on users.lists.nickname.
	ErrDuplicateNickname = errors.New("nickname already exists")

	// ErrDuplicateEmail is returned when an INSERT or UPDATE violates the
	// unique constraint on users.lists.email.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrRefreshTokenNotFound is returned when no active refresh-token row
	// exists for the queried user.
	ErrRefreshTokenNotFound = errors.New("no refresh token was found")

	// ErrOAuthLinkNotFound is returned when a query targets a provider link
	// row that does not exist.
	ErrOAuthLinkNotFound = errors.New("no oauth link was found")

	// ErrCodeNotFound is returned when no verification code has been sent
	// to the queried e-mail address.
	ErrCodeNotFound = errors.New("no verification code was found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")
)
