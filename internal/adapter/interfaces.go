// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating
// with external OAuth providers.
//
// The primary abstraction is [KakaoProvider], which decouples the service
// layer from Kakao's REST API. Error values defined in errors.go are mapped
// from HTTP responses so that callers can use [errors.Is] for
// transport-agnostic error handling.
package adapter

import "context"

// KakaoTokens is the provider token pair returned by the authorization-code
// exchange.
type KakaoTokens struct {
	AccessToken  string
	RefreshToken string
	// RefreshTokenExpiresIn is the refresh token lifetime in seconds, as
	// reported by the provider. Zero when the provider omits it.
	RefreshTokenExpiresIn int64
}

// KakaoProfile is the subset of the Kakao account profile the application
// needs: the provider-assigned account id and the account e-mail.
//
// Email is empty when the user has not agreed to share it; the service layer
// treats that as a hard failure because the e-mail is the account anchor.
type KakaoProfile struct {
	ID    string
	Email string
}

// KakaoProvider defines the Kakao OAuth operations used by the auth flows.
type KakaoProvider interface {
	// AuthorizeURL builds the provider authorization URL the client is
	// redirected to. Returns ErrNotConfigured when the client id or
	// redirect URI is absent.
	AuthorizeURL() (string, error)

	// ExchangeCode trades an authorization code for provider tokens.
	// Returns ErrAuthFailed (wrapped) when the provider rejects the code.
	ExchangeCode(ctx context.Context, code string) (KakaoTokens, error)

	// FetchProfile loads the account profile bound to accessToken.
	// Returns ErrAuthFailed (wrapped) when the provider rejects the token.
	FetchProfile(ctx context.Context, accessToken string) (KakaoProfile, error)

	// Logout expires the provider session bound to accessToken. Callers
	// treat failures as best-effort: a dead provider session must never
	// block a local sign-out.
	Logout(ctx context.Context, accessToken string) error
}
