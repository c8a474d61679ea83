package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/secondbrain/bookmarks/internal/api"
	"github.com/secondbrain/bookmarks/internal/core/ports"
	"github.com/secondbrain/bookmarks/internal/core/service"
	"github.com/secondbrain/bookmarks/internal/infrastructure/db/mongo"
	"github.com/secondbrain/bookmarks/internal/infrastructure/db/redis"
	"github.com/secondbrain/bookmarks/internal/infrastructure/http/handlers"
	"github.com/secondbrain/bookmarks/internal/pkg/config"
	"github.com/secondbrain/bookmarks/internal/pkg/token"
	"github.com/secondbrain/bookmarks/pkg/logger"
)

// @title                       Bookmarks API
// @version                     1.0
// @description                 Save and organise links to videos, tweets and documents.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	envFile := flag.String("env", ".env", "Path to an optional .env file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *envFile); err != nil {
		fmt.Fprintf(os.Stderr, "bookmarks: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, envFile string) error {
	cfg, err := config.Load(ctx, envFile)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "bookmarks",
	})

	tokens, err := token.NewManager(cfg.Auth.JWTSecret)
	if err != nil {
		return err
	}

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongo.Disconnect(client); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	users := mongo.NewUserRepository(db)
	contents := mongo.NewContentRepository(db)
	if err := mongo.EnsureIndexes(ctx, users, contents); err != nil {
		return err
	}

	deps := []handlers.Dependency{handlers.MongoDependency(db)}

	var idem ports.IdempotencyStore = redis.NopIdempotencyStore{}
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()

		idem = redis.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)
		deps = append(deps, handlers.RedisDependency(rdb))
	} else {
		log.Warn().Msg("REDIS_ADDR not set, idempotent create disabled")
	}

	authService := service.NewAuthService(users, tokens, service.AuthOptions{
		SignupTTL:  cfg.Auth.SignupTTL,
		LoginTTL:   cfg.Auth.LoginTTL,
		BcryptCost: cfg.Auth.BcryptCost,
	}, log)
	contentService := service.NewContentService(contents, users, idem, log)

	e := api.NewRouter(api.Services{
		Auth:         authService,
		Content:      contentService,
		Tokens:       tokens,
		Dependencies: deps,
	}, api.Options{
		Logger:       log,
		AllowOrigins: cfg.CORSAllowedOrigins,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
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
	return shutdown(e.Shutdown, cfg, log)
}

func shutdown(fn func(context.Context) error, cfg *config.Config, log zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}
