// Package token implements the signed-token codec behind every auth cookie.
//
// Tokens are HMAC-SHA256 JWTs. Two key classes exist: the access class signs
// short-lived gate tokens (accessToken, email, emailVerified, resetPw,
// oauthIdx cookies) and the refresh class signs long-lived refresh tokens.
// The classes use distinct secrets, so a token issued under one class can
// never verify under the other.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/bluegyufordev/matzip-server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Class selects the signing secret for an issued or verified token.
type Class string

const (
	// ClassAccess signs the short-lived gate tokens carried in the
	// accessToken, email, emailVerified, resetPw and oauthIdx cookies.
	ClassAccess Class = "access"
	// ClassRefresh signs long-lived refresh tokens.
	ClassRefresh Class = "refresh"
)

// Claims is the full claim set of an issued token: the embedded payload
// fields plus the registered iss/iat/exp claims.
type Claims struct {
	models.TokenPayload
	jwt.RegisteredClaims
}

// Codec issues and verifies signed tokens for both key classes.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
}

// NewCodec validates the signing configuration and returns a ready Codec.
//
// Both secrets are required and must differ; the issuer is required. A
// misconfigured codec is a startup failure, never a per-request one.
func NewCodec(accessSecret, refreshSecret, issuer string) (*Codec, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, ErrMissingSecret
	}
	if accessSecret == refreshSecret {
		return nil, fmt.Errorf("%w: access and refresh secrets must differ", ErrInvalidParams)
	}
	if issuer == "" {
		return nil, fmt.Errorf("%w: empty issuer", ErrInvalidParams)
	}

	return &Codec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
	}, nil
}

// Issue creates a signed HMAC-SHA256 token of the given class carrying
// payload, valid for ttl from now.
//
// Returns ErrInvalidParams if the payload carries no identifying fields or
// ttl is not positive.
func (c *Codec) Issue(class Class, payload models.TokenPayload, ttl time.Duration) (string, error) {
	secret, err := c.secretFor(class)
	if err != nil {
		return "", err
	}

	if payload.IsEmpty() {
		return "", fmt.Errorf("%w: empty payload", ErrInvalidParams)
	}
	if ttl <= 0 {
		return "", fmt.Errorf("%w: non-positive ttl", ErrInvalidParams)
	}

	now := time.Now()
	claims := &Claims{
		TokenPayload: payload,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("error occurred during signing token: %w", err)
	}

	return signed, nil
}

// Verify checks the signature, issuer and expiry of raw under the given
// class and returns the embedded payload.
//
// Verification failures come back as the package sentinels — ErrExpired,
// ErrInvalidSignature or ErrMalformed — so callers can map them to transport
// responses with errors.Is.
func (c *Codec) Verify(class Class, raw string) (models.TokenPayload, error) {
	secret, err := c.secretFor(class)
	if err != nil {
		return models.TokenPayload{}, err
	}

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithIssuer(c.issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.TokenPayload{}, verificationError(err)
	}

	return claims.TokenPayload, nil
}

func (c *Codec) secretFor(class Class) ([]byte, error) {
	switch class {
	case ClassAccess:
		return c.accessSecret, nil
	case ClassRefresh:
		return c.refreshSecret, nil
	default:
		return nil, fmt.Errorf("%w: unknown token class %q", ErrInvalidParams, class)
	}
}

// verificationError collapses golang-jwt's error taxonomy onto the package
// sentinels. An issuer mismatch is indistinguishable from a forged token for
// callers, so it maps to ErrInvalidSignature.
func verificationError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	default:
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
}
