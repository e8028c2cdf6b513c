package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"termbase/internal/database"
	"termbase/internal/platform/term"
)

func SearchTerms(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	terms, err := term.NewService(db).Search(c.Context(), term.SearchInput{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		Language: c.Query("language"),
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}

	return c.JSON(terms)
}

func CreateTerm(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)
	user := c.Locals("user").(database.User)

	var input term.CreateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	entry, err := term.NewService(db).Create(c.Context(), input, user.ID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	recordActivity(c, db, &database.ActivityLog{
		UserID:    user.ID,
		Username:  user.Username,
		Action:    "create_term",
		Details:   entry.Term,
		IPAddress: clientIP(c),
	})

	return c.Status(fiber.StatusCreated).JSON(entry)
}

func ListCategories(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	categories, err := term.NewService(db).ListCategories(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}

	return c.JSON(categories)
}
