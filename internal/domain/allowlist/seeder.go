package allowlist

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Seed is one allow-list entry to install.
type Seed struct {
	Phone string
	Name  string
	Role  string
}

// Seeder installs allow-list entries idempotently.
type Seeder struct {
	repo Repository
}

// NewSeeder creates allow-list seeder
func NewSeeder(repo Repository) *Seeder {
	return &Seeder{repo: repo}
}

// Run upserts every seed entry. A failed entry is logged and skipped;
// the remaining entries are still attempted. Returns the number of
// entries that went through.
func (s *Seeder) Run(ctx context.Context, seeds []Seed) int {
	applied := 0
	for _, seed := range seeds {
		u := &AllowedUser{
			Phone:   seed.Phone,
			Name:    seed.Name,
			Role:    seed.Role,
			AddedAt: time.Now().UTC(),
		}
		if err := s.repo.Upsert(ctx, u); err != nil {
			log.Error().
				Err(err).
				Str("phone", seed.Phone).
				Msg("Failed to seed allow-list entry, skipping")
			continue
		}
		applied++
		log.Info().
			Str("phone", seed.Phone).
			Str("role", seed.Role).
			Msg("Seeded allow-list entry")
	}
	return applied
}
