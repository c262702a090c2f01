// Command seed populates the database with the demo data set: one account
// per role, ten stores (the first owned by the seed owner), and five ratings
// by the seed user. Existing seed accounts are reused, not recreated.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ratehub/store-ratings/internal/core/domain"
	"github.com/ratehub/store-ratings/internal/infrastructure/config"
	"github.com/ratehub/store-ratings/internal/infrastructure/db/postgres"
	"github.com/ratehub/store-ratings/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	db, err := postgres.Connect(cfg.Postgres.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	ctx := context.Background()
	users := postgres.NewUserRepository(db)
	stores := postgres.NewStoreRepository(db)
	ratings := postgres.NewRatingRepository(db)

	ensureUser(ctx, users, "Administrator Seed Account X", "admin@example.com", "Admin@123!", domain.RoleAdmin, cfg.BcryptCost, log)
	owner := ensureUser(ctx, users, "Store Owner Seed Account XX", "owner@example.com", "Owner@123!", domain.RoleOwner, cfg.BcryptCost, log)
	user := ensureUser(ctx, users, "Regular User Seed Account XX", "user@example.com", "User@1234!", domain.RoleUser, cfg.BcryptCost, log)

	seeded := make([]*domain.Store, 0, 10)
	for i := 1; i <= 10; i++ {
		ownerID := ""
		if i == 1 {
			ownerID = owner.ID
		}
		store, err := stores.Create(ctx, &domain.Store{
			Name:    fmt.Sprintf("Store %d", i),
			Email:   fmt.Sprintf("store%d@example.com", i),
			Address: fmt.Sprintf("%d Main Street, City %d", i, i),
			OwnerID: ownerID,
		})
		if err != nil {
			log.Fatal().Err(err).Int("store", i).Msg("failed to seed store")
		}
		seeded = append(seeded, store)
	}

	for i := 0; i < 5; i++ {
		value := rand.Intn(domain.MaxRatingValue) + 1
		if _, err := ratings.Upsert(ctx, user.ID, seeded[i].ID, value); err != nil {
			log.Fatal().Err(err).Msg("failed to seed rating")
		}
	}

	log.Info().Msg("seed complete")
}

// ensureUser returns the existing account for email or creates it.
func ensureUser(ctx context.Context, users *postgres.UserRepository, name, email, password string, role domain.Role, cost int, log zerolog.Logger) *domain.User {
	existing, err := users.FindByEmail(ctx, email)
	if err == nil {
		return existing
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		log.Fatal().Err(err).Str("email", email).Msg("failed to look up seed user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash seed password")
	}

	created, err := users.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		log.Fatal().Err(err).Str("email", email).Msg("failed to create seed user")
	}
	return created
}
