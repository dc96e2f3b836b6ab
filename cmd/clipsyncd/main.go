package main

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/cliphist/clipsync/internal/adapter"
	"github.com/cliphist/clipsync/internal/config"
	"github.com/cliphist/clipsync/internal/crypto"
	"github.com/cliphist/clipsync/internal/history"
	"github.com/cliphist/clipsync/internal/logger"
	"github.com/cliphist/clipsync/internal/secret"
	"github.com/cliphist/clipsync/internal/syncengine"
	"github.com/cliphist/clipsync/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("clipsync-daemon")
	cfg, err := config.GetDaemonConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	secrets, err := secret.NewFileStore(filepath.Dir(cfg.Storage.HistoryPath))
	if err != nil {
		log.Fatal().Err(err).Msg("error opening key store")
	}
	cipher := crypto.NewEngine(secrets)

	store, err := history.OpenSQLite(ctx, cfg.Storage.HistoryPath, cipher, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening history database")
	}

	feed := adapter.NewHTTPFeed(adapter.HTTPFeedConfig{
		BaseURL:      cfg.Adapter.ServerURL,
		AccountToken: cfg.Adapter.AccountToken,
		Timeout:      cfg.Adapter.RequestTimeout,
	}, log)

	coordinator, err := syncengine.NewCoordinator(syncengine.Config{
		DeviceID:           cfg.Device.ID,
		DeviceName:         cfg.Device.Name,
		CanOriginateWrites: !cfg.Device.ReadOnly,
		EncryptPayloads:    cfg.Workers.EncryptPayloads,
		SyncInterval:       cfg.Workers.SyncInterval,
		QueuePath:          cfg.Storage.QueuePath,
		CheckpointPath:     cfg.Storage.CheckpointPath,
	}, feed, store, syncengine.NewCodec(cipher), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating sync coordinator")
	}

	if err = coordinator.Enable(ctx); err != nil {
		// The daemon keeps running offline; the coordinator retries once
		// the account becomes available.
		log.Warn().Err(err).Msg("sync not enabled at startup")
	}

	daemonWorkers := []workers.Worker{coordinator}
	if !cfg.Device.ReadOnly {
		capture := workers.NewCaptureWorker(workers.SystemClipboard{}, store, coordinator, 0, log)
		daemonWorkers = append(daemonWorkers, capture)
	}

	log.Info().Str("device_id", cfg.Device.ID).Msg("clipsync daemon started")
	workers.NewWorkers(daemonWorkers...).Run(ctx)

	coordinator.Disable()
	log.Info().Msg("clipsync daemon stopped")
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
