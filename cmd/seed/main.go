// Command seed resets the SQLite user store and loads the demo accounts.
//
// It wipes the users table, then inserts each seed account with a freshly
// bcrypt-hashed password. Run it against the same DB_PATH the server uses:
//
//	DB_DRIVER=sqlite DB_PATH=users.db go run ./cmd/seed
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-user-backend/internal/auth"
	"github.com/tbourn/go-user-backend/internal/config"
	"github.com/tbourn/go-user-backend/internal/domain"
	"github.com/tbourn/go-user-backend/internal/repo"
	"github.com/tbourn/go-user-backend/internal/sysutil"
)

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()
	sysutil.SetLogLevel(cfg.LogLevel)

	if cfg.DBDriver != config.DriverSQLite {
		log.Fatal().Str("driver", cfg.DBDriver).Msg("seeding requires DB_DRIVER=sqlite")
	}

	db, err := repo.OpenSQLite(cfg.DBPath, false)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open sqlite")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	// Start from a clean slate; seeds are fixtures, not additive data.
	if err := db.Unscoped().Where("1 = 1").Delete(&domain.User{}).Error; err != nil {
		log.Fatal().Err(err).Msg("wipe users")
	}

	hasher := auth.NewHasher(cfg.BcryptCost)
	store := repo.NewGorm(db)

	for _, s := range repo.SeedUsers() {
		hash, err := hasher.HashPassword(s.Password)
		if err != nil {
			log.Fatal().Err(err).Str("email", s.Email).Msg("hash password")
		}
		now := time.Now().UTC()
		u := &domain.User{
			ID:        uuid.NewString(),
			Email:     s.Email,
			Name:      s.Name,
			Password:  hash,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := store.Create(context.Background(), u); err != nil {
			log.Fatal().Err(err).Str("email", s.Email).Msg("insert user")
		}
		log.Info().Str("email", s.Email).Str("id", u.ID).Msg("seeded user")
	}

	log.Info().Int("users", len(repo.SeedUsers())).Msg("seeding complete")
}
