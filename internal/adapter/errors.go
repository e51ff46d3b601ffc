package adapter

import "errors"

var (
	// ErrNotConfigured indicates a missing Kakao client id or redirect URI.
	ErrNotConfigured = errors.New("kakao provider not configured")
	// ErrAuthFailed indicates the provider rejected a code or token.
	ErrAuthFailed = errors.New("kakao auth failed")
)
