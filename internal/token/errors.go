package token

import "errors"

// Configuration errors returned by [NewCodec], [Codec.Issue] and
// [Codec.Verify] before any cryptographic work happens.
var (
	// ErrMissingSecret indicates an empty signing secret.
	ErrMissingSecret = errors.New("missing token signing secret")
	// ErrInvalidParams indicates invalid issue/verify parameters
	// (empty payload, non-positive ttl, unknown class, equal secrets).
	ErrInvalidParams = errors.New("invalid token params")
)

// Verification errors returned by [Codec.Verify].
var (
	// ErrExpired indicates a well-formed token whose exp claim has passed.
	ErrExpired = errors.New("token expired")
	// ErrInvalidSignature indicates a signature or issuer mismatch.
	ErrInvalidSignature = errors.New("invalid token signature")
	// ErrMalformed indicates a token that could not be parsed at all.
	ErrMalformed = errors.New("malformed token")
)
