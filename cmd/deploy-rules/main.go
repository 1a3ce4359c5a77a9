package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wedloom/wedloom-api/internal/config"
	"github.com/wedloom/wedloom-api/internal/pkg/logger"
	"github.com/wedloom/wedloom-api/internal/pkg/rules"
)

// Pushes the security rules file and releases it as the live ruleset.
// Any failure aborts with a nonzero exit: a half-deployed ruleset is
// worse than the old one staying live.
func main() {
	logger.Init(logger.Config{Level: "info", Environment: os.Getenv("ENV")})

	cfg, err := config.LoadRules()
	if err != nil {
		log.Fatal().Err(err).Msg("Rules deployment configuration incomplete")
	}

	source, err := os.ReadFile(cfg.RulesFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.RulesFile).Msg("Failed to read rules file")
	}

	client := rules.NewClient(rules.Config{
		ProjectID:   cfg.ProjectID,
		ClientEmail: cfg.ClientEmail,
		PrivateKey:  cfg.PrivateKey,
		BaseURL:     cfg.BaseURL,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	rulesetName, err := client.CreateRuleset(ctx, cfg.RulesFile, string(source))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create ruleset")
	}
	log.Info().Str("ruleset", rulesetName).Msg("Ruleset created")

	if err := client.ReleaseRuleset(ctx, rulesetName); err != nil {
		log.Fatal().Err(err).Str("ruleset", rulesetName).Msg("Failed to release ruleset")
	}

	log.Info().
		Str("project_id", cfg.ProjectID).
		Str("ruleset", rulesetName).
		Msg("Rules deployed")
}
