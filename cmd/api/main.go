package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sarenityrhain6-cmyk/Mindspace-app/internal/adapter/repo"
	"github.com/sarenityrhain6-cmyk/Mindspace-app/internal/http/handlers"
	httpapi "github.com/sarenityrhain6-cmyk/Mindspace-app/internal/http/httpapi"
	"github.com/sarenityrhain6-cmyk/Mindspace-app/internal/infra"
	"github.com/sarenityrhain6-cmyk/Mindspace-app/internal/payments"
)

func main() {
	// .env is optional; real deployments configure the environment.
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := infra.NewMongoClient(ctx, cfg)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect database")
		}
	}()

	db := client.Database(cfg.DBName)
	if err := repo.EnsureIndexes(context.Background(), db); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	app := handlers.NewApp(
		repo.NewUserRepository(db),
		repo.NewWaitlistRepository(db),
		repo.NewPaymentRepository(db),
		payments.NewStripeClient(cfg.StripeAPIKey, cfg.StripeWebhookSecret),
		logger,
		[]byte(cfg.JWTSecret),
	)

	router := httpapi.NewRouter(app, cfg, logger)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("addr", server.Addr()).Msg("API listening")
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
