package service

import (
	"context"
	"database/sql"
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
)

// oauthService is the concrete implementation of OAuthService for the
// Kakao provider.
//
// Per provider identity the link row walks Unlinked → PendingSignup →
// Linked: the callback creates an unclaimed row and hands the client a
// pending token; SignUp creates the account and claims the row; further
// callbacks for a claimed row short-circuit straight to sign-in.
type oauthService struct {
	users      store.UserRepository
	oauthLinks store.OAuthRepository
	codes      store.CodeRepository

	kakao  adapter.KakaoProvider
	codec  *token.Codec
	cipher *crypto.Cipher

	accessTokenTTL time.Duration
	codeTTL        time.Duration

	logger *logger.Logger
}

// NewOAuthService constructs an OAuthService wired to the given
// repositories and provider adapter.
func NewOAuthService(repos *store.Repositories, kakao adapter.KakaoProvider, codec *token.Codec, cipher *crypto.Cipher, cfg config.App, logger *logger.Logger) OAuthService {
	return &oauthService{
		users:          repos.Users,
		oauthLinks:     repos.OAuthLinks,
		codes:          repos.Codes,
		kakao:          kakao,
		codec:          codec,
		cipher:         cipher,
		accessTokenTTL: cfg.AccessTokenTTL,
		codeTTL:        cfg.VerificationCodeTTL,
		logger:         logger,
	}
}

// AuthorizeURL returns the provider consent-screen URL. A missing client
// id or redirect URI surfaces as adapter.ErrNotConfigured.
func (s *oauthService) AuthorizeURL(ctx context.Context) (string, error) {
	return s.kakao.AuthorizeURL()
}

// HandleCallback drives the provider callback: code exchange, profile
// fetch, then either sign-in (claimed link) or pending signup (unclaimed).
//
// Provider tokens are encrypted before they touch the database. A profile
// without an e-mail address aborts with ErrEmailNotProvided — signup
// requires one and the provider may withhold it per user consent.
func (s *oauthService) HandleCallback(ctx context.Context, code string) (CallbackResult, error) {
	log := logger.FromContext(ctx)

	tokens, err := s.kakao.ExchangeCode(ctx, code)
	if err != nil {
		log.Err(err).Str("func", "*oauthService.HandleCallback").Msg("provider code exchange failed")
		return CallbackResult{}, fmt.Errorf("provider code exchange failed: %w", err)
	}

	profile, err := s.kakao.FetchProfile(ctx, tokens.AccessToken)
	if err != nil {
		log.Err(err).Str("func", "*oauthService.HandleCallback").Msg("provider profile fetch failed")
		return CallbackResult{}, fmt.Errorf("provider profile fetch failed: %w", err)
	}
	if profile.Email == "" {
		return CallbackResult{}, ErrEmailNotProvided
	}

	link, err := s.upsertLink(ctx, tokens, profile)
	if err != nil {
		return CallbackResult{}, err
	}

	if link.IsClaimed() {
		return s.signInLinkedUser(ctx, link)
	}

	pending, err := s.codec.Issue(token.ClassAccess, models.TokenPayload{OAuthIdx: link.Idx}, s.accessTokenTTL)
	if err != nil {
		return CallbackResult{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	log.Info().Int64("oauth_idx", link.Idx).Msg("provider link pending signup")

	return CallbackResult{PendingToken: pending}, nil
}

func (s *oauthService) upsertLink(ctx context.Context, tokens adapter.KakaoTokens, profile adapter.KakaoProfile) (models.OAuthLink, error) {
	encAccess, err := s.cipher.Encrypt(tokens.AccessToken)
	if err != nil {
		return models.OAuthLink{}, fmt.Errorf("encrypting provider access token: %w", err)
	}
	encRefresh, err := s.cipher.Encrypt(tokens.RefreshToken)
	if err != nil {
		return models.OAuthLink{}, fmt.Errorf("encrypting provider refresh token: %w", err)
	}

	link := models.OAuthLink{
		Provider:       models.ProviderKakao,
		ProviderUserID: profile.ID,
		AccessToken:    encAccess,
		RefreshToken:   encRefresh,
	}
	if tokens.RefreshTokenExpiresIn > 0 {
		link.RefreshTokenExpiresAt = sql.NullTime{
			Time:  time.Now().Add(time.Duration(tokens.RefreshTokenExpiresIn) * time.Second),
			Valid: true,
		}
	}

	saved, err := s.oauthLinks.Upsert(ctx, link)
	if err != nil {
		return models.OAuthLink{}, fmt.Errorf("upserting provider link failed: %w", err)
	}

	return saved, nil
}

func (s *oauthService) signInLinkedUser(ctx context.Context, link models.OAuthLink) (CallbackResult, error) {
	log := logger.FromContext(ctx)

	user, err := s.users.FindUserByIdx(ctx, link.UsersIdx.Int64)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return CallbackResult{}, ErrAccountNotFound
		}
		return CallbackResult{}, fmt.Errorf("linked user lookup failed: %w", err)
	}

	access, err := s.codec.Issue(token.ClassAccess, models.TokenPayload{
		UsersIdx: user.Idx,
		Provider: models.ProviderKakao,
		Role:     user.Role,
	}, s.accessTokenTTL)
	if err != nil {
		return CallbackResult{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	log.Info().Int64("users_idx", user.Idx).Msg("provider user signed in")

	return CallbackResult{SignedIn: true, AccessToken: access}, nil
}

// SignUp finishes a provider-initiated registration: the verification code
// is re-checked, the account row created without local credentials and the
// pending link claimed with the new users_idx.
func (s *oauthService) SignUp(ctx context.Context, input OAuthSignUpInput) error {
	log := logger.FromContext(ctx)

	if input.Nickname == "" || input.Code == "" || input.Email == "" || input.OAuthIdx == 0 {
		return ErrInvalidDataProvided
	}

	if err := validateCode(ctx, s.codes, input.Email, input.Code, s.codeTTL); err != nil {
		return err
	}

	if err := checkDuplicateFields(ctx, s.users, "", input.Nickname, input.Email); err != nil {
		return err
	}

	// The link must still exist and be unclaimed before any row is written.
	link, err := s.oauthLinks.FindByIdx(ctx, input.OAuthIdx)
	if err != nil {
		return fmt.Errorf("pending link lookup failed: %w", err)
	}
	if link.IsClaimed() {
		return store.ErrOAuthLinkNotFound
	}

	user := models.User{
		Nickname: input.Nickname,
		Email:    input.Email,
		Role:     models.RoleUser,
		OAuthIdx: sql.NullInt64{Int64: link.Idx, Valid: true},
	}

	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*oauthService.SignUp").Msg("oauth user creation ended with error")
		return fmt.Errorf("oauth user creation ended with error: %w", err)
	}

	if err := s.oauthLinks.Claim(ctx, link.Idx, created.Idx); err != nil {
		log.Err(err).Int64("oauth_idx", link.Idx).Int64("users_idx", created.Idx).Msg("claiming provider link failed")
		return fmt.Errorf("claiming provider link failed: %w", err)
	}

	log.Info().Int64("users_idx", created.Idx).Int64("oauth_idx", link.Idx).Msg("oauth account created")

	return nil
}
