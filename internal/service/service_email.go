package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/bluegyufordev/matzip-server/internal/config"
	"github.com/bluegyufordev/matzip-server/internal/logger"
	"github.com/bluegyufordev/matzip-server/internal/mail"
	"github.com/bluegyufordev/matzip-server/internal/store"
	"github.com/bluegyufordev/matzip-server/internal/token"
	"github.com/bluegyufordev/matzip-server/models"
)

// emailVerificationService is the concrete implementation of
// EmailVerificationService. It persists one row per sent code and checks
// the most recent unexpired one on confirm.
type emailVerificationService struct {
	users  store.UserRepository
	codes  store.CodeRepository
	sender mail.Sender
	codec  *token.Codec

	// tokenTTL is the lifetime of the email / emailVerified tokens. It
	// tracks the code TTL so the cookie never outlives the code it proves.
	tokenTTL time.Duration

	// codeTTL bounds how long a sent code is accepted.
	codeTTL time.Duration

	logger *logger.Logger
}

// NewEmailVerificationService constructs an EmailVerificationService wired
// to the given repositories and mail sender.
func NewEmailVerificationService(repos *store.Repositories, sender mail.Sender, codec *token.Codec, cfg config.App, logger *logger.Logger) EmailVerificationService {
	return &emailVerificationService{
		users:    repos.Users,
		codes:    repos.Codes,
		sender:   sender,
		codec:    codec,
		tokenTTL: cfg.VerificationCodeTTL,
		codeTTL:  cfg.VerificationCodeTTL,
		logger:   logger,
	}
}

// SendCode mails a uniformly random 6-digit code to the address, records it
// and returns the signed token binding {email} for the email cookie.
//
// An address already owned by an active account is rejected with
// ErrEmailAlreadyRegistered before any code is generated.
func (s *emailVerificationService) SendCode(ctx context.Context, email string) (string, error) {
	log := logger.FromContext(ctx)

	if email == "" {
		return "", ErrInvalidDataProvided
	}

	if _, err := s.users.FindUserByEmail(ctx, email); err == nil {
		return "", ErrEmailAlreadyRegistered
	} else if !errors.Is(err, store.ErrUserNotFound) {
		return "", fmt.Errorf("user search by email failed: %w", err)
	}

	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("generating verification code: %w", err)
	}

	if err := s.codes.InsertCode(ctx, email, code); err != nil {
		return "", fmt.Errorf("recording verification code: %w", err)
	}

	if err := s.sender.SendVerificationCode(email, code); err != nil {
		log.Err(err).Str("func", "*emailVerificationService.SendCode").Msg("sending verification mail failed")
		return "", fmt.Errorf("sending verification mail failed: %w", err)
	}

	signed, err := s.codec.Issue(token.ClassAccess, models.TokenPayload{Email: email}, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	log.Info().Msg("verification code sent")

	return signed, nil
}

// ConfirmCode checks the submitted code against the most recent unexpired
// one for the token-bound address and returns the emailVerified token.
func (s *emailVerificationService) ConfirmCode(ctx context.Context, email, code string) (string, error) {
	if code == "" {
		return "", ErrInvalidDataProvided
	}

	if err := validateCode(ctx, s.codes, email, code, s.codeTTL); err != nil {
		return "", err
	}

	signed, err := s.codec.Issue(token.ClassAccess, models.TokenPayload{Email: email}, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return signed, nil
}

// generateCode draws a uniformly random 6-digit code (100000..999999) from
// crypto/rand.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// validateCode checks code against the most recent one sent to email.
// A missing or expired code reports ErrCodeNotSent; a mismatching one
// reports ErrWrongCode. Shared by confirm, sign-up and OAuth sign-up so a
// stale emailVerified cookie can never mint an account on its own.
func validateCode(ctx context.Context, codes store.CodeRepository, email, code string, ttl time.Duration) error {
	latest, err := codes.FindLatestCode(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrCodeNotFound) {
			return ErrCodeNotSent
		}
		return fmt.Errorf("verification code lookup failed: %w", err)
	}

	if time.Since(latest.CreatedAt) > ttl {
		return ErrCodeNotSent
	}
	if latest.Code != code {
		return ErrWrongCode
	}

	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}
