package main

import (
	"context"
	"fmt"

	"github.com/cliphist/clipsync/internal/config"
	myHTTP "github.com/cliphist/clipsync/internal/handler/http"
	"github.com/cliphist/clipsync/internal/logger"
	"github.com/cliphist/clipsync/internal/server"
	"github.com/cliphist/clipsync/internal/service"
	"github.com/cliphist/clipsync/internal/store"
	"github.com/cliphist/clipsync/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("clipsync-server")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.DB.DSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err = migrations.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	repo := store.NewSyncRepository(db, log)
	feedService := service.NewFeedService(repo, log)

	handler := myHTTP.NewHandler(feedService, myHTTP.AuthSettings{
		AccountToken:  cfg.Auth.AccountToken,
		TokenSignKey:  cfg.Auth.TokenSignKey,
		TokenIssuer:   cfg.Auth.TokenIssuer,
		TokenDuration: cfg.Auth.TokenDuration,
	}, log)

	srv, err := server.NewServer(handler, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
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
