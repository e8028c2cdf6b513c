package middleware

import (
	"github.com/gofiber/fiber/v2"

	"termbase/internal/database"
)

func AdminMiddleware(c *fiber.Ctx) error {
	user := c.Locals("user").(database.User)

	if !user.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Forbidden",
		})
	}

	return c.Next()
}
