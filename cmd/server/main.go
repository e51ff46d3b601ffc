package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/bluegyufordev/matzip-server/internal/adapter"
	"github.com/bluegyufordev/matzip-server/internal/config"
	"github.com/bluegyufordev/matzip-server/internal/crypto"
	httphandler "github.com/bluegyufordev/matzip-server/internal/handler/http"
	"github.com/bluegyufordev/matzip-server/internal/logger"
	"github.com/bluegyufordev/matzip-server/internal/mail"
	"github.com/bluegyufordev/matzip-server/internal/server"
	"github.com/bluegyufordev/matzip-server/internal/service"
	"github.com/bluegyufordev/matzip-server/internal/store"
	"github.com/bluegyufordev/matzip-server/internal/token"
	"github.com/bluegyufordev/matzip-server/internal/validators"
	"github.com/bluegyufordev/matzip-server/internal/workers"
	"github.com/bluegyufordev/matzip-server/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// .env is optional; real deployments configure through the environment
	_ = godotenv.Load()

	log := logger.NewLogger("matzip-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to postgres")
	}
	defer db.Close()

	if err := migrations.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	codec, err := token.NewCodec(cfg.App.AccessTokenSecret, cfg.App.RefreshTokenSecret, cfg.App.TokenIssuer)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating token codec")
	}

	cipher, err := crypto.NewCipher(cfg.App.EncryptionKey)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating cipher")
	}

	repos := store.NewRepositories(db, log)
	sender := mail.NewSMTPSender(cfg.Mail)
	kakao := adapter.NewKakaoAdapter(cfg.OAuth, log)

	services := service.NewServices(repos, codec, cipher, sender, kakao, cfg.App, log)
	handler := httphandler.NewHandler(services, codec, validators.NewAuthRequestValidator(), cfg.App, cfg.OAuth, log)

	cleanup := workers.NewCodesCleanupWorker(ctx, repos.Codes, cfg.Workers.CodesCleanupInterval, cfg.App.VerificationCodeTTL, log)
	workers.NewWorkers(cleanup).Run()

	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
