package main

import (
	"context"
	"fmt"

	"github.com/emre23q/CMS2/internal/attachments"
	"github.com/emre23q/CMS2/internal/config"
	"github.com/emre23q/CMS2/internal/logger"
	"github.com/emre23q/CMS2/internal/service"
	"github.com/emre23q/CMS2/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("cms").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewFileLogger("cms", cfg.App.DataDir)
	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := log.WithContext(context.Background())

	db, err := store.Open(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening database")
	}
	defer func() {
		if closeErr := db.Close(ctx); closeErr != nil {
			log.Err(closeErr).Msg("error closing database")
		}
	}()

	repos := store.NewRepositories(db, log)

	if err = repos.FieldRepository.Initialize(ctx); err != nil {
		log.Fatal().Err(err).Msg("error initializing field metadata")
	}

	files, err := attachments.NewStore(cfg.Storage.Attachments, newPlatformOpener(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating attachment store")
	}

	services := service.NewServices(db, repos, files, log)

	clients, err := services.ClientService.ListClients(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("error listing clients")
	}

	log.Info().
		Int("clients", len(clients)).
		Str("database", db.Path()).
		Str("attachments", files.Root()).
		Msg("customer records core ready")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
