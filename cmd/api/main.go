// @title           TrailMate API
// @version         1.0
// @description     Equipment reviews and trail reports with likes and comments.
// @BasePath        /
// @securityDefinitions.apikey ApiKeyAuth
// @in              header
// @name            x-auth-token
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
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	_ "github.com/trailmate/trailmate-api/docs"
	"github.com/trailmate/trailmate-api/internal/api"
	"github.com/trailmate/trailmate-api/internal/api/handler"
	"github.com/trailmate/trailmate-api/internal/core/domain"
	"github.com/trailmate/trailmate-api/internal/core/ports"
	"github.com/trailmate/trailmate-api/internal/core/service"
	mongodb "github.com/trailmate/trailmate-api/internal/infrastructure/db/mongo"
	redisdb "github.com/trailmate/trailmate-api/internal/infrastructure/db/redis"
	"github.com/trailmate/trailmate-api/internal/infrastructure/queue"
	"github.com/trailmate/trailmate-api/internal/pkg/config"
	"github.com/trailmate/trailmate-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "trailmate-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	users := mongodb.NewUserRepository(db)
	indexers := []mongodb.Indexer{users}
	postRepos := make(map[string]*mongodb.PostRepository, len(domain.PostSchemas))
	for _, schema := range domain.PostSchemas {
		repo := mongodb.NewPostRepository(db, schema)
		postRepos[schema.Kind] = repo
		indexers = append(indexers, repo)
	}
	if err := mongodb.EnsureIndexes(ctx, indexers...); err != nil {
		return err
	}

	checks := map[string]handler.DependencyCheck{
		"mongodb": func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) },
	}

	// The profile cache is optional: without Redis every lookup reads Mongo.
	var cache ports.ProfileCache
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, profile cache disabled")
	} else {
		defer func(rdb *redis.Client) { _ = rdb.Close() }(rdb)
		cache = redisdb.NewProfileCache(rdb, cfg.Redis.ProfileCacheTTL)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	serializer := queue.NewSerializer(cfg.MutationWorkers, log.With().Str("component", "serializer").Logger())
	// Workers stop only after the HTTP server has drained.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	serializer.Start(workerCtx)

	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := service.NewAuthService(users, tokens, cfg.Auth.BcryptCost, log.With().Str("component", "auth").Logger())
	authors := service.NewAuthorLookup(users, cache, log.With().Str("component", "authors").Logger())

	posts := make([]ports.PostService, 0, len(domain.PostSchemas))
	for _, schema := range domain.PostSchemas {
		posts = append(posts, service.NewPostService(schema, postRepos[schema.Kind], authors, serializer, log))
	}

	e := api.NewRouter(api.Deps{
		Auth:       authService,
		Tokens:     tokens,
		Posts:      posts,
		Health:     checks,
		AuthHeader: cfg.Auth.Header,
		Log:        log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server started")
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
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}
