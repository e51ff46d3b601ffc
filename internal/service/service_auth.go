package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bluegyufordev/matzip-server/internal/adapter"
	"github.com/bluegyufordev/matzip-server/internal/config"
	"github.com/bluegyufordev/matzip-server/internal/crypto"
	"github.com/bluegyufordev/matzip-server/internal/logger"
	"github.com/bluegyufordev/matzip-server/internal/store"
	"github.com/bluegyufordev/matzip-server/internal/token"
	"github.com/bluegyufordev/matzip-server/models"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService.
// It handles credential verification, refresh-token rotation, account
// creation and the password-reset flows, with bcrypt for password hashing
// and the token codec for every signed cookie value.
type authService struct {
	// users is the data-access layer for account rows.
	users store.UserRepository

	// refreshTokens manages the single-active refresh row per user.
	refreshTokens store.RefreshTokenRepository

	// oauthLinks resolves provider links during sign-out.
	oauthLinks store.OAuthRepository

	// codes re-validates the verification code submitted with sign-up.
	codes store.CodeRepository

	// codec issues and verifies every signed token.
	codec *token.Codec

	// cipher protects refresh tokens at rest and decrypts stored provider
	// tokens for the sign-out call.
	cipher *crypto.Cipher

	// kakao is used best-effort to expire the provider session on
	// sign-out of a Kakao-linked account.
	kakao adapter.KakaoProvider

	// accessTokenTTL / refreshTokenTTL control cookie token lifetimes.
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration

	// codeTTL bounds how long a verification code stays valid after send.
	codeTTL time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given repositories
// and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(repos *store.Repositories, codec *token.Codec, cipher *crypto.Cipher, kakao adapter.KakaoProvider, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		users:           repos.Users,
		refreshTokens:   repos.RefreshTokens,
		oauthLinks:      repos.OAuthLinks,
		codes:           repos.Codes,
		codec:           codec,
		cipher:          cipher,
		kakao:           kakao,
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
		codeTTL:         cfg.VerificationCodeTTL,
		logger:          logger,
	}
}

// SignIn authenticates a local account and returns the session token pair.
//
// A missing account and a wrong password both come back as
// ErrAccountNotFound — the client cannot probe which ids exist.
//
// The access token is always freshly minted; the refresh token is rotated
// only when the stored one is absent or expired. Rotation runs inside one
// repository transaction with the active row locked, so concurrent sign-ins
// for the same account never produce two active rows.
func (a *authService) SignIn(ctx context.Context, loginID, password string) (Session, error) {
	log := logger.FromContext(ctx)

	if loginID == "" || password == "" {
		return Session{}, ErrInvalidDataProvided
	}

	user, err := a.users.FindUserByLoginID(ctx, loginID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return Session{}, ErrAccountNotFound
		}
		log.Err(err).Str("func", "*authService.SignIn").Msg("user search by login id failed")
		return Session{}, fmt.Errorf("user search by login id failed: %w", err)
	}

	if !user.Password.Valid || bcrypt.CompareHashAndPassword([]byte(user.Password.String), []byte(password)) != nil {
		log.Warn().Int64("users_idx", user.Idx).Str("func", "*authService.SignIn").Msg("password mismatch")
		return Session{}, ErrAccountNotFound
	}

	payload := models.TokenPayload{
		UsersIdx: user.Idx,
		Provider: models.ProviderLocal,
		Role:     user.Role,
	}

	accessToken, err := a.codec.Issue(token.ClassAccess, payload, a.accessTokenTTL)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	refreshToken, rotated, err := a.refreshTokens.Rotate(ctx, user.Idx, time.Now().Add(a.refreshTokenTTL), func() (string, error) {
		signed, err := a.codec.Issue(token.ClassRefresh, payload, a.refreshTokenTTL)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
		}
		return a.cipher.Encrypt(signed)
	})
	if err != nil {
		log.Err(err).Int64("users_idx", user.Idx).Str("func", "*authService.SignIn").Msg("refresh token rotation failed")
		return Session{}, fmt.Errorf("refresh token rotation failed: %w", err)
	}

	log.Info().Int64("users_idx", user.Idx).Bool("rotated", rotated).Msg("user signed in")

	return Session{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// SignOut invalidates the caller's session. It is idempotent: signing out
// with no active refresh row still succeeds.
//
// For Kakao-created sessions the stored provider access token is decrypted
// and the provider logout endpoint called best-effort; a provider failure
// is logged and never blocks the local sign-out.
func (a *authService) SignOut(ctx context.Context, principal models.TokenPayload) error {
	log := logger.FromContext(ctx)

	if principal.Provider == models.ProviderKakao {
		a.expireProviderSession(ctx, principal.UsersIdx)
	}

	if err := a.refreshTokens.SoftDeleteByUser(ctx, principal.UsersIdx); err != nil {
		log.Err(err).Int64("users_idx", principal.UsersIdx).Str("func", "*authService.SignOut").Msg("soft-deleting refresh tokens failed")
		return fmt.Errorf("soft-deleting refresh tokens failed: %w", err)
	}

	return nil
}

// expireProviderSession ends the Kakao session backing the account.
// Every failure here is swallowed: provider logout is a courtesy, not a
// requirement for local sign-out.
func (a *authService) expireProviderSession(ctx context.Context, usersIdx int64) {
	log := logger.FromContext(ctx)

	link, err := a.oauthLinks.FindByUser(ctx, usersIdx)
	if err != nil {
		log.Warn().Err(err).Int64("users_idx", usersIdx).Msg("no provider link for kakao sign-out")
		return
	}

	providerToken, err := a.cipher.Decrypt(link.AccessToken)
	if err != nil {
		log.Warn().Err(err).Int64("oauth_idx", link.Idx).Msg("stored provider token is undecryptable")
		return
	}

	if err := a.kakao.Logout(ctx, providerToken); err != nil {
		log.Warn().Err(err).Int64("oauth_idx", link.Idx).Msg("provider logout failed")
	}
}

// SignUp creates a local account. The e-mail comes from the verified-email
// token, never the request body, and the verification code is re-checked
// against the store so a stale emailVerified cookie cannot mint accounts.
//
// Duplicate id/nickname/email surface as the store's field-level sentinels
// for the transport mapper to turn into 409 + target responses.
func (a *authService) SignUp(ctx context.Context, input SignUpInput) error {
	log := logger.FromContext(ctx)

	if input.LoginID == "" || input.Password == "" || input.Nickname == "" || input.Code == "" || input.Email == "" {
		return ErrInvalidDataProvided
	}

	if err := validateCode(ctx, a.codes, input.Email, input.Code, a.codeTTL); err != nil {
		return err
	}

	// Pre-check duplicates for a targeted 409; the INSERT's constraint
	// mapping still covers the race window.
	if err := checkDuplicateFields(ctx, a.users, input.LoginID, input.Nickname, input.Email); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user := models.User{
		LoginID:  nullString(input.LoginID),
		Password: nullString(string(hash)),
		Nickname: input.Nickname,
		Email:    input.Email,
		Role:     models.RoleUser,
	}

	created, err := a.users.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*authService.SignUp").Msg("user creation ended with error")
		return fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Int64("users_idx", created.Idx).Msg("local account created")

	return nil
}

// FindLoginID recovers the login identifier owning an e-mail address.
func (a *authService) FindLoginID(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", ErrInvalidDataProvided
	}

	loginID, err := a.users.FindLoginID(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return "", ErrAccountNotFound
		}
		return "", fmt.Errorf("login id lookup failed: %w", err)
	}

	return loginID, nil
}

// RequestPasswordReset validates the (id, email) pair and returns the
// signed token binding it, to be carried in the resetPw cookie.
func (a *authService) RequestPasswordReset(ctx context.Context, loginID, email string) (string, error) {
	if loginID == "" || email == "" {
		return "", ErrInvalidDataProvided
	}

	if err := a.checkAccountPair(ctx, loginID, email); err != nil {
		return "", err
	}

	signed, err := a.codec.Issue(token.ClassAccess, models.TokenPayload{LoginID: loginID, Email: email}, a.accessTokenTTL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return signed, nil
}

// ResetPassword re-validates the token-bound pair and replaces the stored
// password hash. Re-validation matters: the account may have been deleted
// between the two steps.
func (a *authService) ResetPassword(ctx context.Context, loginID, email, newPassword string) error {
	log := logger.FromContext(ctx)

	if newPassword == "" {
		return ErrInvalidDataProvided
	}

	user, err := a.users.FindUserByLoginID(ctx, loginID)
	if err != nil || user.Email != email {
		if err != nil && !errors.Is(err, store.ErrUserNotFound) {
			return fmt.Errorf("user search by login id failed: %w", err)
		}
		return ErrAccountNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	if err := a.users.UpdatePassword(ctx, user.Idx, string(hash)); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return ErrAccountNotFound
		}
		log.Err(err).Int64("users_idx", user.Idx).Str("func", "*authService.ResetPassword").Msg("password update failed")
		return fmt.Errorf("password update failed: %w", err)
	}

	log.Info().Int64("users_idx", user.Idx).Msg("password reset")

	return nil
}

// checkDuplicateFields asks the store which unique field, if any, already
// belongs to an active account and translates the answer to the matching
// duplicate sentinel.
func checkDuplicateFields(ctx context.Context, users store.UserRepository, loginID, nickname, email string) error {
	field, err := users.FindDuplicateField(ctx, loginID, nickname, email)
	if err != nil {
		return fmt.Errorf("duplicate lookup failed: %w", err)
	}

	switch field {
	case "id":
		return store.ErrDuplicateLoginID
	case "nickname":
		return store.ErrDuplicateNickname
	case "email":
		return store.ErrDuplicateEmail
	default:
		return nil
	}
}

func (a *authService) checkAccountPair(ctx context.Context, loginID, email string) error {
	user, err := a.users.FindUserByLoginID(ctx, loginID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("user search by login id failed: %w", err)
	}
	if user.Email != email {
		return ErrAccountNotFound
	}

	return nil
}
