package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"expense-tracker/app"
)

func GetSetting(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Params("key")
		if key == "" {
			return badRequest(c, "setting key is required")
		}

		value, err := a.Repo.GetSetting(key)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch setting", err)
		}
		if value == nil {
			value = json.RawMessage("null")
		}

		return success(c, fiber.Map{"key": key, "value": value})
	}
}

func SetSetting(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Params("key")
		if key == "" {
			return badRequest(c, "setting key is required")
		}

		var body struct {
			Value json.RawMessage `json:"value"`
		}
		if err := c.BodyParser(&body); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if len(body.Value) == 0 {
			return badRequest(c, "value is required")
		}

		if err := a.Repo.SetSetting(key, body.Value); err != nil {
			return serverErrorWithDetails(c, "Failed to save setting", err)
		}

		return success(c, fiber.Map{"key": key, "value": body.Value})
	}
}
