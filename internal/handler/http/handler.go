package http

import (
	"github.com/bluegyufordev/matzip-server/internal/config"
	"github.com/bluegyufordev/matzip-server/internal/logger"
	"github.com/bluegyufordev/matzip-server/internal/service"
	"github.com/bluegyufordev/matzip-server/internal/token"
	"github.com/bluegyufordev/matzip-server/internal/validators"
)

type Handler struct {
	services *service.Services

	// codec verifies the signed tokens carried in auth cookies.
	codec *token.Codec

	// validator checks request bodies before they reach a service.
	validator validators.Validator

	// app controls cookie lifetimes and the Secure attribute.
	app config.App

	// oauth provides the post-callback redirect targets.
	oauth config.OAuth

	logger *logger.Logger
}

func NewHandler(services *service.Services, codec *token.Codec, validator validators.Validator, appCfg config.App, oauthCfg config.OAuth, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		codec:     codec,
		validator: validator,
		app:       appCfg,
		oauth:     oauthCfg,
		logger:    logger,
	}
}
