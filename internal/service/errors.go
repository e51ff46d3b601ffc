package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrAccountNotFound covers both a missing account and a wrong
	// password: the two cases are indistinguishable to the client on
	// purpose.
	ErrAccountNotFound = errors.New("account not found")

	// ErrEmailAlreadyRegistered is returned when a verification code is
	// requested for an e-mail that already belongs to an active account.
	ErrEmailAlreadyRegistered = errors.New("email already registered")

	// ErrCodeNotSent is returned when no verification code exists for the
	// address, or the most recent one has outlived its TTL.
	ErrCodeNotSent = errors.New("no verification code was sent")

	// ErrWrongCode is returned when the submitted code does not match the
	// most recent one sent to the address.
	ErrWrongCode = errors.New("wrong verification code")

	// ErrEmailNotProvided is returned when the OAuth provider profile
	// carries no e-mail address, which the signup flow requires.
	ErrEmailNotProvided = errors.New("provider did not share an email address")

	ErrTokenCreationFailed = errors.New("token creation failed")
)
