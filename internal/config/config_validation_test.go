package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:    "valid config",
			mutate:  func(cfg *StructuredConfig) {},
			wantErr: nil,
		},
		{
			name:    "missing DSN",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "missing access token secret",
			mutate:  func(cfg *StructuredConfig) { cfg.App.AccessTokenSecret = "" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "missing refresh token secret",
			mutate:  func(cfg *StructuredConfig) { cfg.App.RefreshTokenSecret = "" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name: "equal token secrets",
			mutate: func(cfg *StructuredConfig) {
				cfg.App.AccessTokenSecret = "same"
				cfg.App.RefreshTokenSecret = "same"
			},
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "missing encryption key",
			mutate:  func(cfg *StructuredConfig) { cfg.App.EncryptionKey = "" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "zero access token TTL",
			mutate:  func(cfg *StructuredConfig) { cfg.App.AccessTokenTTL = 0 },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "zero refresh token TTL",
			mutate:  func(cfg *StructuredConfig) { cfg.App.RefreshTokenTTL = 0 },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "zero verification code TTL",
			mutate:  func(cfg *StructuredConfig) { cfg.App.VerificationCodeTTL = 0 },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "missing server address",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" },
			wantErr: ErrInvalidServerConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
