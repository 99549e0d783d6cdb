package handlers

import (
	"github.com/gofiber/fiber/v2"

	"expense-tracker/app"
	"expense-tracker/models"
)

// GetCategories returns defaults merged with user categories, optionally
// filtered by ?type=income|expense.
func GetCategories(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		catType := c.Query("type")
		if catType != "" && catType != models.TypeIncome && catType != models.TypeExpense {
			return badRequest(c, "type must be either income or expense")
		}

		categories, err := a.Repo.GetCategories(catType)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch categories", err)
		}

		return success(c, fiber.Map{"categories": categories})
	}
}

func CreateCategory(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateCategoryRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(req); err != nil {
			return badRequest(c, err.Error())
		}

		// Duplicate names within a type are not rejected here; clients
		// check existing categories first.
		cat, err := a.Repo.AddCategory(models.Category{
			Name: req.Name,
			Type: req.Type,
		})
		if err != nil {
			return serverErrorWithDetails(c, "Failed to save category", err)
		}

		return created(c, fiber.Map{"category": cat})
	}
}

func DeleteCategory(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return badRequest(c, "category id is required")
		}

		if err := a.Repo.DeleteCategory(id); err != nil {
			return serverErrorWithDetails(c, "Failed to delete category", err)
		}

		return success(c, fiber.Map{"deleted": id})
	}
}
