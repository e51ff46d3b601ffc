package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

const (
	createUser = `INSERT INTO users.lists (id, pw, nickname, email, role, oauth_idx)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING idx, id, pw, nickname, email, role, oauth_idx, is_deleted, created_at;`

	findUserByIdx = `SELECT idx, id, pw, nickname, email, role, oauth_idx, is_deleted, created_at
    FROM users.lists
    WHERE idx = $1 AND is_deleted = false;`

	findUserByLoginID = `SELECT idx, id, pw, nickname, email, role, oauth_idx, is_deleted, created_at
    FROM users.lists
    WHERE id = $1 AND is_deleted = false;`

	findUserByEmail = `SELECT idx, id, pw, nickname, email, role, oauth_idx, is_deleted, created_at
    FROM users.lists
    WHERE email = $1 AND is_deleted = false;`

	findLoginID = `SELECT id
    FROM users.lists
    WHERE email = $1 AND is_deleted = false;`

	updatePassword = `UPDATE users.lists
    SET pw = $2
    WHERE idx = $1 AND is_deleted = false;`

	findActiveTokenForUpdate = `SELECT idx, users_idx, token, expires_at, is_deleted, created_at
    FROM users.local_tokens
    WHERE users_idx = $1 AND is_deleted = false
    ORDER BY created_at DESC
    LIMIT 1
    FOR UPDATE;`

	softDeleteTokens = `UPDATE users.local_tokens
    SET is_deleted = true
    WHERE users_idx = $1 AND is_deleted = false;`

	insertToken = `INSERT INTO users.local_tokens (users_idx, token, expires_at)
    VALUES ($1, $2, $3);`

	upsertOAuthLink = `INSERT INTO users.oauth (provider, provider_user_id, access_token, refresh_token, refresh_token_expires_at)
    VALUES ($1, $2, $3, $4, $5)
    ON CONFLICT (provider, provider_user_id) WHERE NOT is_deleted
    DO UPDATE SET
        access_token = EXCLUDED.access_token,
        refresh_token = EXCLUDED.refresh_token,
        refresh_token_expires_at = EXCLUDED.refresh_token_expires_at
    RETURNING idx, users_idx, provider, provider_user_id, access_token, refresh_token, refresh_token_expires_at, is_deleted, created_at;`

	findOAuthLinkByIdx = `SELECT idx, users_idx, provider, provider_user_id, access_token, refresh_token, refresh_token_expires_at, is_deleted, created_at
    FROM users.oauth
    WHERE idx = $1 AND is_deleted = false;`

	findOAuthLinkByUser = `SELECT idx, users_idx, provider, provider_user_id, access_token, refresh_token, refresh_token_expires_at, is_deleted, created_at
    FROM users.oauth
    WHERE users_idx = $1 AND is_deleted = false;`

	claimOAuthLink = `UPDATE users.oauth
    SET users_idx = $2
    WHERE idx = $1 AND users_idx IS NULL AND is_deleted = false;`

	insertCode = `INSERT INTO users.codes (email, code)
    VALUES ($1, $2);`

	findLatestCode = `SELECT idx, email, code, created_at
    FROM users.codes
    WHERE email = $1
    ORDER BY created_at DESC
    LIMIT 1;`

	deleteCodesBefore = `DELETE FROM users.codes
    WHERE created_at < $1;`
)

// buildDuplicateLookupQuery dynamically builds the duplicate-account lookup:
// only the non-empty fields participate in the OR clause.
func buildDuplicateLookupQuery(loginID, nickname, email string) (string, []any, error) {
	or := sq.Or{}
	if loginID != "" {
		or = append(or, sq.Eq{"id": loginID})
	}
	if nickname != "" {
		or = append(or, sq.Eq{"nickname": nickname})
	}
	if email != "" {
		or = append(or, sq.Eq{"email": email})
	}

	if len(or) == 0 {
		return "", nil, fmt.Errorf("%w: no fields to check", ErrBuildingSQLQuery)
	}

	return sq.Select("id", "nickname", "email").
		From("users.lists").
		Where(sq.And{sq.Eq{"is_deleted": false}, or}).
		Limit(1).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}
