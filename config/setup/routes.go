package setup

import (
	"github.com/gofiber/fiber/v2"

	"expense-tracker/app"
	"expense-tracker/handlers"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(fiberApp *fiber.App, application *app.App) {
	fiberApp.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })

	api := fiberApp.Group("/api")

	api.Get("/transactions", handlers.GetTransactions(application))
	api.Post("/transactions", handlers.CreateTransaction(application))
	api.Put("/transactions/:id", handlers.UpdateTransaction(application))
	api.Delete("/transactions/:id", handlers.DeleteTransaction(application))

	api.Get("/categories", handlers.GetCategories(application))
	api.Post("/categories", handlers.CreateCategory(application))
	api.Delete("/categories/:id", handlers.DeleteCategory(application))

	api.Get("/budgets", handlers.GetBudgets(application))
	api.Put("/budgets", handlers.SetBudget(application))
	api.Delete("/budgets/:category", handlers.DeleteBudget(application))

	api.Get("/settings/:key", handlers.GetSetting(application))
	api.Put("/settings/:key", handlers.SetSetting(application))

	api.Get("/statistics", handlers.GetStatistics(application))
	api.Get("/export", handlers.ExportData(application))
	api.Post("/import", handlers.ImportData(application))

	api.Get("/sync/status", handlers.SyncStatus(application))
	api.Post("/sync/drain", handlers.TriggerSync(application))
}
