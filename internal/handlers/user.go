package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"termbase/internal/database"
	"termbase/internal/platform/term"
)

func GetCurrentUser(c *fiber.Ctx) error {
	user := c.Locals("user").(database.User)
	sess := c.Locals("session").(database.Session)

	return c.JSON(fiber.Map{
		"user":               user,
		"session_expires_at": sess.ExpiredAt,
	})
}

// GetUserStats backs the dashboard: how many terms the user contributed.
func GetUserStats(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)
	user := c.Locals("user").(database.User)

	count, err := term.NewService(db).CountByCreator(c.Context(), user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}

	return c.JSON(fiber.Map{"terms": count})
}

func UpdateUser(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)
	user := c.Locals("user").(database.User)

	type UpdateInput struct {
		Email string `json:"email"`
	}

	var input UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	if input.Email != "" {
		user.Email = strings.ToLower(input.Email)
	}

	result := db.Save(&user)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}

	return c.JSON(user)
}
