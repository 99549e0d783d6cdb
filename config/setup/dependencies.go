package setup

import (
	"log/slog"

	"expense-tracker/app"
	"expense-tracker/backup"
	"expense-tracker/config"
	"expense-tracker/database"
	"expense-tracker/sync"
)

// InitApp wires the store, backup mirror, sync queue, connectivity monitor
// and repository together.
//
// The store is probed eagerly so a broken data directory shows up in the
// logs at startup, but an open failure is not fatal: the repository keeps
// serving reads from the backup mirror and every record operation retries
// the open lazily.
func InitApp(logger *slog.Logger) (*app.App, *database.Store) {
	cfg := config.AppConfig

	store := database.NewStore(cfg.DBPath)
	if _, err := store.Open(); err != nil {
		logger.Warn("primary store unavailable, serving reads from backup mirror",
			"path", cfg.DBPath,
			"error", err,
		)
	} else {
		logger.Info("store opened", "path", cfg.DBPath)
	}

	mirror := backup.NewMirror(cfg.BackupPath)

	client := sync.NewClient(cfg.SyncEndpoint)
	queue := sync.NewQueue(store, client.SyncOne)
	monitor := sync.NewMonitor(queue, client.Probe, cfg.ProbeInterval)
	monitor.Start()
	logger.Info("connectivity monitor started", "endpoint", cfg.SyncEndpoint)

	repo := database.NewRepository(store, queue, monitor, mirror)

	application := app.New(repo, queue, monitor, logger)
	logger.Info("application initialized")

	return application, store
}

// Shutdown performs graceful shutdown of background services.
func Shutdown(application *app.App, store *database.Store, logger *slog.Logger) {
	logger.Info("shutting down services...")

	if application != nil && application.Monitor != nil {
		application.Monitor.Stop()
		logger.Info("connectivity monitor stopped")
	}

	if store != nil {
		if err := store.Close(); err != nil {
			logger.Error("failed to close store", "error", err)
		} else {
			logger.Info("store closed")
		}
	}
}
