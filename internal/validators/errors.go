package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrMissingLoginID  = errors.New("login id is required")
	ErrMissingPassword = errors.New("password is required")
	ErrMissingNickname = errors.New("nickname is required")
	ErrMissingCode     = errors.New("verification code is required")
	ErrMissingEmail    = errors.New("email is required")
	ErrInvalidEmail    = errors.New("email address is malformed")
)
