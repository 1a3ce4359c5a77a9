package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wedloom/wedloom-api/internal/config"
	"github.com/wedloom/wedloom-api/internal/domain/allowlist"
	"github.com/wedloom/wedloom-api/internal/pkg/database"
	"github.com/wedloom/wedloom-api/internal/pkg/logger"
)

// The allow-list to install. Edit and rerun; upserts are idempotent.
var seeds = []allowlist.Seed{
	{Phone: "+77010000001", Name: "Aigerim", Role: "admin"},
	{Phone: "+77010000002", Name: "Daniyar", Role: "admin"},
	{Phone: "+77010000003", Name: "Guest Book", Role: "guest"},
}

// Seeds the access allow-list. Individual failures are logged and
// skipped; the script always exits 0 so a flaky row never fails a
// deploy pipeline.
func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: "info", Environment: cfg.Env})

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to PostgreSQL, nothing seeded")
		return
	}
	defer database.ClosePostgres(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	seeder := allowlist.NewSeeder(allowlist.NewRepository(db))
	applied := seeder.Run(ctx, seeds)

	log.Info().
		Int("applied", applied).
		Int("total", len(seeds)).
		Msg("Allow-list seeding finished")
}
