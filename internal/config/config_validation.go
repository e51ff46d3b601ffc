// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Kakao settings are deliberately not validated here: the OAuth endpoints
// report a configuration error at request time so that a deployment without
// the Kakao integration can still serve the local auth flows.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.AccessTokenSecret == "" || cfg.App.RefreshTokenSecret == "" {
		return ErrInvalidAppConfigs
	}

	// Reusing one secret for both token classes would let a refresh token
	// pass access-token verification.
	if cfg.App.AccessTokenSecret == cfg.App.RefreshTokenSecret {
		return ErrInvalidAppConfigs
	}

	if cfg.App.EncryptionKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.App.AccessTokenTTL <= 0 || cfg.App.RefreshTokenTTL <= 0 || cfg.App.VerificationCodeTTL <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}
