package validators

import (
	"context"
	"regexp"

	"github.com/bluegyufordev/matzip-server/models"
)

// Field name constants used to specify which fields should be validated.
// They match the JSON field names of the request bodies, so a validation
// error can be reported back to the client under the same name.
const (
	// FieldLoginID targets the local login identifier ("id").
	FieldLoginID = "id"

	// FieldPassword targets the plaintext password ("pw").
	FieldPassword = "pw"

	// FieldNickname targets the display nickname.
	FieldNickname = "nickname"

	// FieldCode targets the mailed e-mail verification code.
	FieldCode = "code"

	// FieldEmail targets the e-mail address.
	FieldEmail = "email"
)

// emailPattern is deliberately permissive: it rejects obvious garbage while
// leaving real deliverability to the verification-code round trip.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthRequestValidator implements the Validator interface for every auth
// request body: SignInRequest, SignUpRequest, OAuthSignUpRequest,
// FindIDRequest, FindPWRequest, ResetPWRequest, SendCodeRequest and
// ConfirmCodeRequest.
//
// It supports both value and pointer receivers for every model type
// and allows optional field-level scoping via variadic field name arguments.
type AuthRequestValidator struct {
}

// NewAuthRequestValidator constructs a new AuthRequestValidator
// and returns it as the Validator interface.
func NewAuthRequestValidator() Validator {
	return &AuthRequestValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj. Both value and pointer forms of each
// supported model are accepted.
//
// Returns ErrUnsupportedType if obj does not match any known request.
// Optional fields restrict validation to the named subset; when omitted,
// every field of the request is validated in its JSON order, so the first
// error always names the first offending field.
func (v *AuthRequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SignInRequest:
		return v.validateFields(value.LoginID, value.Password, "", "", "", orDefault(fields, FieldLoginID, FieldPassword))
	case *models.SignInRequest:
		return v.Validate(ctx, *value, fields...)

	case models.SignUpRequest:
		return v.validateFields(value.LoginID, value.Password, value.Nickname, value.Code, "", orDefault(fields, FieldLoginID, FieldPassword, FieldNickname, FieldCode))
	case *models.SignUpRequest:
		return v.Validate(ctx, *value, fields...)

	case models.OAuthSignUpRequest:
		return v.validateFields("", "", value.Nickname, value.Code, "", orDefault(fields, FieldNickname, FieldCode))
	case *models.OAuthSignUpRequest:
		return v.Validate(ctx, *value, fields...)

	case models.FindIDRequest:
		return v.validateFields("", "", "", "", value.Email, orDefault(fields, FieldEmail))
	case *models.FindIDRequest:
		return v.Validate(ctx, *value, fields...)

	case models.FindPWRequest:
		return v.validateFields(value.LoginID, "", "", "", value.Email, orDefault(fields, FieldLoginID, FieldEmail))
	case *models.FindPWRequest:
		return v.Validate(ctx, *value, fields...)

	case models.ResetPWRequest:
		return v.validateFields("", value.Password, "", "", "", orDefault(fields, FieldPassword))
	case *models.ResetPWRequest:
		return v.Validate(ctx, *value, fields...)

	case models.SendCodeRequest:
		return v.validateFields("", "", "", "", value.Email, orDefault(fields, FieldEmail))
	case *models.SendCodeRequest:
		return v.Validate(ctx, *value, fields...)

	case models.ConfirmCodeRequest:
		return v.validateFields("", "", "", value.Code, "", orDefault(fields, FieldCode))
	case *models.ConfirmCodeRequest:
		return v.Validate(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateFields checks the requested fields against the flattened request
// values and returns the first failure.
func (v *AuthRequestValidator) validateFields(loginID, password, nickname, code, email string, fields []string) error {
	for _, f := range fields {
		switch f {
		case FieldLoginID:
			if loginID == "" {
				return ErrMissingLoginID
			}
		case FieldPassword:
			if password == "" {
				return ErrMissingPassword
			}
		case FieldNickname:
			if nickname == "" {
				return ErrMissingNickname
			}
		case FieldCode:
			if code == "" {
				return ErrMissingCode
			}
		case FieldEmail:
			if email == "" {
				return ErrMissingEmail
			}
			if !emailPattern.MatchString(email) {
				return ErrInvalidEmail
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// orDefault returns the caller-provided field subset, or the request's full
// field list when no subset was given.
func orDefault(fields []string, defaults ...string) []string {
	if len(fields) == 0 {
		return defaults
	}
	return fields
}

// Target maps a validation error to the request field name the client
// should be pointed at. Unknown errors map to the empty string.
func Target(err error) string {
	switch err {
	case ErrMissingLoginID:
		return FieldLoginID
	case ErrMissingPassword:
		return FieldPassword
	case ErrMissingNickname:
		return FieldNickname
	case ErrMissingCode:
		return FieldCode
	case ErrMissingEmail, ErrInvalidEmail:
		return FieldEmail
	default:
		return ""
	}
}
