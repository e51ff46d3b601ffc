package service

import (
	"github.com/bluegyufordev/matzip-server/internal/adapter"
	"github.com/bluegyufordev/matzip-server/internal/config"
	"github.com/bluegyufordev/matzip-server/internal/crypto"
	"github.com/bluegyufordev/matzip-server/internal/logger"
	"github.com/bluegyufordev/matzip-server/internal/mail"
	"github.com/bluegyufordev/matzip-server/internal/store"
	"github.com/bluegyufordev/matzip-server/internal/token"
)

type Services struct {
	AuthService              AuthService
	EmailVerificationService EmailVerificationService
	OAuthService             OAuthService
}

func NewServices(repos *store.Repositories, codec *token.Codec, cipher *crypto.Cipher, sender mail.Sender, kakao adapter.KakaoProvider, cfg config.App, logger *logger.Logger) *Services {
	return &Services{
		AuthService:              NewAuthService(repos, codec, cipher, kakao, cfg, logger),
		EmailVerificationService: NewEmailVerificationService(repos, sender, codec, cfg, logger),
		OAuthService:             NewOAuthService(repos, kakao, codec, cipher, cfg, logger),
	}
}
