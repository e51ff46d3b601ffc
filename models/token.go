package models

// TokenPayload is the application data carried inside a signed token.
// Which fields are populated depends on the token's purpose:
//
//   - access / refresh tokens: UsersIdx, Provider, Role
//   - email-verification tokens ("email", "emailVerified" cookies): Email
//   - password-reset tokens ("resetPw" cookie): LoginID, Email
//   - pending OAuth signup tokens ("oauthIdx" cookie): OAuthIdx
//
// Zero-valued fields are omitted from the serialized claims, so a payload
// with every field zero is considered empty and must never be issued.
type TokenPayload struct {
	// UsersIdx is the internal identifier of the authenticated user.
	UsersIdx int64 `json:"users_idx,omitempty"`

	// Provider names the auth provider the session was created through
	// (ProviderLocal or ProviderKakao).
	Provider string `json:"provider,omitempty"`

	// Role is the user's role at issuance time.
	Role string `json:"role,omitempty"`

	// Email binds a token to an e-mail address during the verification
	// and password-reset flows.
	Email string `json:"email,omitempty"`

	// LoginID binds a password-reset token to a login identifier.
	LoginID string `json:"id,omitempty"`

	// OAuthIdx references an unclaimed users.oauth row while an OAuth
	// signup is pending.
	OAuthIdx int64 `json:"oauth_idx,omitempty"`
}

// IsEmpty reports whether no payload field is set. Empty payloads are
// rejected at issuance: a signed token must always assert something.
func (p TokenPayload) IsEmpty() bool {
	return p == TokenPayload{}
}
