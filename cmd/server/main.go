package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/foodhub/ordering-system/docs"
	"github.com/foodhub/ordering-system/internal/api"
	"github.com/foodhub/ordering-system/internal/core/ports"
	"github.com/foodhub/ordering-system/internal/core/service"
	"github.com/foodhub/ordering-system/internal/infrastructure/config"
	mongodb "github.com/foodhub/ordering-system/internal/infrastructure/db/mongo"
	redisdb "github.com/foodhub/ordering-system/internal/infrastructure/db/redis"
	"github.com/foodhub/ordering-system/internal/infrastructure/ratelimit"
	"github.com/foodhub/ordering-system/pkg/logger"
)

const (
	serviceName     = "food-ordering-api"
	shutdownTimeout = 30 * time.Second
	sweepInterval   = time.Minute
)

// @title                       Food Ordering API
// @version                     1.0
// @description                 Catalog, accounts and authentication for the food ordering backend.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.New(logger.Options{Service: serviceName})
		l.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  serviceName,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongo")

	userRepo := mongodb.NewUserRepository(db)
	if err := mongodb.EnsureIndexes(ctx, userRepo, mongodb.NewCategoryRepository(db), mongodb.NewProductRepository(db)); err != nil {
		return err
	}

	deps := api.Deps{Config: cfg, Logger: log, DB: db}
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()
		deps.Redis = rdb
		deps.RateLimitStore = redisdb.NewRateLimitStore(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("rate limiting backed by redis")
	} else {
		store := ratelimit.NewMemoryStore()
		go store.RunSweeper(ctx, sweepInterval)
		deps.RateLimitStore = store
		log.Info().Msg("rate limiting in memory")
	}

	if err := bootstrapAdmin(ctx, service.NewUserService(userRepo, log), cfg.Admin, log); err != nil {
		return err
	}

	e := api.NewRouter(deps)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return e.Shutdown(shutdownCtx)
}

// bootstrapAdmin makes sure an admin account exists, creating it from the
// configured credentials on first start.
func bootstrapAdmin(ctx context.Context, users ports.UserService, cfg config.AdminConfig, log zerolog.Logger) error {
	user, created, err := users.BootstrapAdmin(ctx, ports.BootstrapAdminInput{
		Email:       cfg.Email,
		Password:    cfg.Password,
		UserName:    cfg.UserName,
		PhoneNumber: cfg.Phone,
	})
	if err != nil {
		return fmt.Errorf("admin bootstrap: %w", err)
	}

	if created {
		log.Info().Str("user_id", user.ID).Msg("admin account created")
	} else {
		log.Debug().Msg("admin account already present")
	}
	return nil
}
