package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"expense-tracker/app"
	"expense-tracker/database"
	"expense-tracker/models"
)

// GetTransactions lists transactions, newest date first, narrowed by the
// optional type/category/dateFrom/dateTo/search query parameters.
func GetTransactions(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := models.TransactionFilter{
			Type:     c.Query("type"),
			Category: c.Query("category"),
			DateFrom: c.Query("dateFrom"),
			DateTo:   c.Query("dateTo"),
			Search:   c.Query("search"),
		}

		transactions, err := a.Repo.GetTransactions(filter)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch transactions", err)
		}

		return success(c, fiber.Map{"transactions": transactions})
	}
}

// CreateTransaction validates and persists a new transaction.
func CreateTransaction(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateTransactionRequest
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

		tx, err := a.Repo.AddTransaction(models.Transaction{
			Type:        req.Type,
			Amount:      amount,
			Category:    req.Category,
			Description: req.Description,
			Date:        req.Date,
		})
		if err != nil {
			return serverErrorWithDetails(c, "Failed to save transaction", err)
		}

		return created(c, fiber.Map{"transaction": tx})
	}
}

// UpdateTransaction merges a partial update over an existing transaction.
func UpdateTransaction(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return badRequest(c, "transaction id is required")
		}

		var req models.UpdateTransactionRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(req); err != nil {
			return badRequest(c, err.Error())
		}

		patch := models.TransactionPatch{
			Type:        req.Type,
			Category:    req.Category,
			Description: req.Description,
			Date:        req.Date,
		}
		if req.Amount != nil {
			amount, err := strconv.ParseFloat(*req.Amount, 64)
			if err != nil {
				return badRequest(c, "amount must be a number")
			}
			patch.Amount = &amount
		}

		tx, err := a.Repo.UpdateTransaction(id, patch)
		if errors.Is(err, database.ErrNotFound) {
			return notFound(c, "Transaction not found")
		}
		if err != nil {
			return serverErrorWithDetails(c, "Failed to update transaction", err)
		}

		return success(c, fiber.Map{"transaction": tx})
	}
}

// DeleteTransaction removes a transaction; deleting an unknown id still
// succeeds.
func DeleteTransaction(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return badRequest(c, "transaction id is required")
		}

		if err := a.Repo.DeleteTransaction(id); err != nil {
			return serverErrorWithDetails(c, "Failed to delete transaction", err)
		}

		return success(c, fiber.Map{"deleted": id})
	}
}
