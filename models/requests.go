package models

// Request bodies accepted by the auth endpoints. JSON field names are part
// of the external contract and mirror the web client's payloads.

// SignInRequest carries local credentials for POST /auth/signin.
type SignInRequest struct {
	LoginID  string `json:"id"`
	Password string `json:"pw"`
}

// SignUpRequest carries a local registration for POST /auth/signup.
// The e-mail address is not part of the body: it comes from the
// emailVerified token so only verified addresses can register.
type SignUpRequest struct {
	LoginID  string `json:"id"`
	Password string `json:"pw"`
	Nickname string `json:"nickname"`
	Code     string `json:"code"`
}

// OAuthSignUpRequest carries the profile part of POST /auth/oauth/signup.
// Identity comes from the oauthIdx and emailVerified tokens.
type OAuthSignUpRequest struct {
	Nickname string `json:"nickname"`
	Code     string `json:"code"`
}

// FindIDRequest looks up a login identifier by e-mail.
type FindIDRequest struct {
	Email string `json:"email"`
}

// FindPWRequest starts a password reset for the given account pair.
type FindPWRequest struct {
	LoginID string `json:"id"`
	Email   string `json:"email"`
}

// ResetPWRequest carries the replacement password for PUT /auth/resetpw.
// The account it applies to is taken from the resetPw token.
type ResetPWRequest struct {
	Password string `json:"pw"`
}

// SendCodeRequest asks for a verification code to be mailed.
type SendCodeRequest struct {
	Email string `json:"email"`
}

// ConfirmCodeRequest submits the mailed verification code. The address it
// confirms comes from the email token.
type ConfirmCodeRequest struct {
	Code string `json:"code"`
}
