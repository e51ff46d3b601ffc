package service

import (
	"context"

	"github.com/bluegyufordev/matzip-server/models"
)

// Session carries the signed token pair produced by a successful sign-in.
// The refresh token is the encrypted stored value, ready to be set as a
// cookie as-is.
type Session struct {
	AccessToken  string
	RefreshToken string
}

// SignUpInput is the data required to create a local account. Email always
// comes from the verified-email token, never from the request body.
type SignUpInput struct {
	LoginID  string
	Password string
	Nickname string
	Code     string
	Email    string
}

// OAuthSignUpInput is the data required to finish a provider-initiated
// signup. OAuthIdx and Email come from the oauthIdx and emailVerified
// tokens respectively.
type OAuthSignUpInput struct {
	OAuthIdx int64
	Nickname string
	Code     string
	Email    string
}

// CallbackResult is the outcome of a provider callback. A claimed link
// signs the user straight in (AccessToken set); an unclaimed link leaves
// signup pending (PendingToken set, carrying the link's oauth_idx).
type CallbackResult struct {
	SignedIn     bool
	AccessToken  string
	PendingToken string
}

// AuthService implements the local credential flows: sign-in with refresh
// rotation, sign-out, sign-up, login-id recovery and the two-step password
// reset.
type AuthService interface {
	SignIn(ctx context.Context, loginID, password string) (Session, error)
	SignOut(ctx context.Context, principal models.TokenPayload) error
	SignUp(ctx context.Context, input SignUpInput) error
	FindLoginID(ctx context.Context, email string) (string, error)

	// RequestPasswordReset validates that the (id, email) pair names an
	// account and returns the signed reset token to set as the resetPw
	// cookie.
	RequestPasswordReset(ctx context.Context, loginID, email string) (string, error)

	// ResetPassword re-validates the pair bound in the reset token and
	// replaces the account password.
	ResetPassword(ctx context.Context, loginID, email, newPassword string) error
}

// EmailVerificationService implements the NoCodeSent → CodeSent → Verified
// progression that gates account creation.
type EmailVerificationService interface {
	// SendCode mails a fresh 6-digit code to the address and returns the
	// signed token binding {email} for the email cookie.
	SendCode(ctx context.Context, email string) (string, error)

	// ConfirmCode checks code against the most recent unexpired one sent
	// to email and returns the signed token for the emailVerified cookie.
	ConfirmCode(ctx context.Context, email, code string) (string, error)
}

// OAuthService implements the Kakao provider flows.
type OAuthService interface {
	// AuthorizeURL returns the provider consent-screen URL to redirect
	// the client to.
	AuthorizeURL(ctx context.Context) (string, error)

	// HandleCallback exchanges the authorization code, loads the provider
	// profile and either signs the linked user in or parks an unclaimed
	// link row for signup completion.
	HandleCallback(ctx context.Context, code string) (CallbackResult, error)

	// SignUp creates the local account for a pending link and claims the
	// link row.
	SignUp(ctx context.Context, input OAuthSignUpInput) error
}
