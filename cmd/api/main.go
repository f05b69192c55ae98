// @title        Accounts API
// @version      1.0
// @description  User registration and administration.
// @BasePath     /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/firstapp/accounts/internal/api"
	"github.com/firstapp/accounts/internal/api/handler"
	"github.com/firstapp/accounts/internal/core/service"
	"github.com/firstapp/accounts/internal/infrastructure/credential"
	"github.com/firstapp/accounts/internal/infrastructure/db"
	redisstore "github.com/firstapp/accounts/internal/infrastructure/db/redis"
	"github.com/firstapp/accounts/internal/pkg/config"
	"github.com/firstapp/accounts/pkg/logger"
)

func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log := logger.Init(logger.Options{Service: "accounts-api"})
		log.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "accounts-api",
	})

	store, closeStore, err := db.Open(ctx, &cfg.BaseConfig, logger.Component("store"))
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("open user store")
	}
	defer func() {
		if err := closeStore(context.Background()); err != nil {
			log.Error().Err(err).Msg("close user store")
		}
	}()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("close redis")
		}
	}()
	flashes := redisstore.NewFlashStore(rdb, cfg.FlashTTL)

	creds := credential.NewBcryptStore(cfg.BcryptCost)
	svcLog := logger.Component("service")
	users := service.NewUserManager(store, creds, svcLog)
	registration := service.NewRegistrationService(users, store, service.NewFormValidator(service.NewValidate()), svcLog)
	admin := service.NewAdminService(store, creds, cfg.JWTSecret, cfg.JWTTTL, svcLog)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	e, err := api.NewRouter(api.Dependencies{
		Registration: registration,
		Admin:        admin,
		Flashes:      flashes,
		Checks: map[string]handler.Pinger{
			cfg.StoreDriver: store,
			"redis":         flashes,
		},
		JWTSecret:    cfg.JWTSecret,
		TokenTTL:     cfg.JWTTTL,
		CookieSecure: cfg.CookieSecure,
		Registry:     registry,
		Log:          logger.Component("http"),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("build router")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
}
