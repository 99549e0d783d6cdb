package app

import (
	"log/slog"

	"expense-tracker/database"
	"expense-tracker/sync"
	"expense-tracker/validator"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Repo      *database.Repository
	Queue     *sync.Queue
	Monitor   *sync.Monitor
	Validator *validator.Validator
	Logger    *slog.Logger
}

// New creates a new App instance with all dependencies
func New(repo *database.Repository, queue *sync.Queue, monitor *sync.Monitor, logger *slog.Logger) *App {
	return &App{
		Repo:      repo,
		Queue:     queue,
		Monitor:   monitor,
		Validator: validator.New(),
		Logger:    logger,
	}
}
