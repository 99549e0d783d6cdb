package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"expense-tracker/app"
	"expense-tracker/models"
)

func GetBudgets(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		budgets, err := a.Repo.GetBudgets()
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch budgets", err)
		}

		return success(c, fiber.Map{"budgets": budgets})
	}
}

// SetBudget upserts the budget for a category.
func SetBudget(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.SetBudgetRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(req); err != nil {
			return badRequest(c, err.Error())
		}

		amount, err := strconv.ParseFloat(req.Amount, 64)
		if err != nil {
			return badRequest(c, "amount must be a number")
		}

		budget, err := a.Repo.SetBudget(req.Category, amount)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to save budget", err)
		}

		return success(c, fiber.Map{"budget": budget})
	}
}

func DeleteBudget(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		category := c.Params("category")
		if category == "" {
			return badRequest(c, "budget category is required")
		}

		if err := a.Repo.DeleteBudget(category); err != nil {
			return serverErrorWithDetails(c, "Failed to delete budget", err)
		}

		return success(c, fiber.Map{"deleted": category})
	}
}
