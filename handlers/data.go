package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"expense-tracker/app"
	"expense-tracker/models"
)

// GetStatistics aggregates totals over ?period=week|month|year. Unknown
// periods fall back to month.
func GetStatistics(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := a.Repo.GetStatistics(c.Query("period", "month"))
		if err != nil {
			return serverErrorWithDetails(c, "Failed to compute statistics", err)
		}

		return success(c, fiber.Map{"statistics": stats})
	}
}

// ExportData dumps a full snapshot of all collections.
func ExportData(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload, err := a.Repo.ExportData()
		if err != nil {
			return serverErrorWithDetails(c, "Failed to export data", err)
		}

		c.Set("Content-Disposition", `attachment; filename="expense-tracker-export.json"`)
		return c.JSON(payload)
	}
}

// ImportData restores a snapshot. This clears every collection first;
// missing keys in the payload leave those collections empty.
func ImportData(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var payload models.ExportPayload
		if err := c.BodyParser(&payload); err != nil {
			return badRequest(c, "Invalid import payload")
		}

		if err := a.Repo.ImportData(payload); err != nil {
			return serverErrorWithDetails(c, "Failed to import data", err)
		}

		return success(c, fiber.Map{
			"imported": fiber.Map{
				"transactions": len(payload.Transactions),
				"categories":   len(payload.Categories),
				"budgets":      len(payload.Budgets),
				"settings":     len(payload.Settings),
			},
		})
	}
}

// SyncStatus reports connectivity and the number of queued mutations.
func SyncStatus(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pending, err := a.Queue.Pending()
		if err != nil {
			return serverErrorWithDetails(c, "Failed to read sync queue", err)
		}

		return success(c, fiber.Map{
			"online":  a.Monitor.IsOnline(),
			"pending": pending,
		})
	}
}

// TriggerSync kicks off a queue drain in the background. A drain already
// in flight makes this a no-op.
func TriggerSync(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		go a.Queue.Drain(context.Background())
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "drain started"})
	}
}
