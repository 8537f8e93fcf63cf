// Command server runs the user backend HTTP API.
//
// Startup order: load .env, parse and validate configuration, configure
// logging, open the selected user store, wire services and routes, then serve
// until SIGINT/SIGTERM triggers a graceful shutdown.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	httpapi "github.com/tbourn/go-user-backend/internal/http"

	"github.com/tbourn/go-user-backend/internal/auth"
	"github.com/tbourn/go-user-backend/internal/config"
	"github.com/tbourn/go-user-backend/internal/domain"
	"github.com/tbourn/go-user-backend/internal/observability"
	"github.com/tbourn/go-user-backend/internal/repo"
	"github.com/tbourn/go-user-backend/internal/services"
	"github.com/tbourn/go-user-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Optional .env for local development; real deployments set env directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	hasher := auth.NewHasher(cfg.BcryptCost)

	store, err := openStore(cfg, hasher)
	if err != nil {
		return err
	}

	svc := services.NewUserService(store, hasher)

	gin.SetMode(cfg.GinMode)
	engine := gin.New()
	httpapi.RegisterRoutes(engine, svc, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("env", cfg.Env).
			Str("driver", cfg.DBDriver).
			Str("version", version).
			Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(sctx)
}

// openStore selects the user repository per configuration. The in-memory
// store starts pre-seeded with the demo accounts so the API is usable out of
// the box; SQLite persists across restarts and is migrated on startup.
func openStore(cfg config.Config, hasher *auth.Hasher) (services.UserRepo, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		db, err := repo.OpenSQLite(cfg.DBPath, cfg.OTEL.Enabled)
		if err != nil {
			return nil, err
		}
		if err := repo.AutoMigrate(db); err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.DBPath).Msg("sqlite store ready")
		return repo.NewGorm(db), nil
	default:
		seeds := repo.SeedUsers()
		users := make([]domain.User, 0, len(seeds))
		now := time.Now().UTC()
		for _, s := range seeds {
			hash, err := hasher.HashPassword(s.Password)
			if err != nil {
				return nil, err
			}
			users = append(users, domain.User{
				ID:        uuid.NewString(),
				Email:     s.Email,
				Name:      s.Name,
				Password:  hash,
				CreatedAt: now,
				UpdatedAt: now,
			})
		}
		mem := repo.NewMemory(language.English)
		mem.Seed(users)
		log.Info().Int("users", mem.Len()).Msg("in-memory store seeded")
		return mem, nil
	}
}
