package store

import "github.com/bluegyufordev/matzip-server/internal/logger"

// Repositories bundles every persistence interface the service layer needs.
type Repositories struct {
	Users         UserRepository
	RefreshTokens RefreshTokenRepository
	OAuthLinks    OAuthRepository
	Codes         CodeRepository
}

// NewRepositories wires all repository implementations onto one database
// connection.
func NewRepositories(db *DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(db, logger),
		RefreshTokens: NewRefreshTokenRepository(db, logger),
		OAuthLinks:    NewOAuthRepository(db, logger),
		Codes:         NewCodeRepository(db, logger),
	}
}
