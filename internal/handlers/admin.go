package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"termbase/internal/database"
	"termbase/internal/platform/audit"
	"termbase/internal/platform/term"
	puser "termbase/internal/platform/user"
	"termbase/pkg/utils"
)

func CreateUser(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)
	actor := c.Locals("user").(database.User)

	type UserInput struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}

	var input UserInput
	if err := c.BodyParser(&input); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	user, err := puser.NewService(db).Create(c.Context(), puser.CreateInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
		Role:     input.Role,
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	recordActivity(c, db, &database.ActivityLog{
		UserID:    actor.ID,
		Username:  actor.Username,
		Action:    "create_user",
		Details:   user.Username,
		IPAddress: clientIP(c),
	})

	return c.Status(fiber.StatusCreated).JSON(user)
}

func ListUsers(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	users, err := puser.NewService(db).List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(users)
}

func targetUser(c *fiber.Ctx) (*database.User, error) {
	db := c.Locals("db").(*gorm.DB)

	userID, err := strconv.ParseUint(c.Params("user_id"), 10, 32)
	if err != nil {
		return nil, puser.ErrUserNotFound
	}

	return puser.NewService(db).GetByID(c.Context(), uint(userID))
}

// ResetUserPassword sets a generated credential for the target and returns
// it once in the response. The target must pick a new password on next
// login; stored credentials stay irreversible.
func ResetUserPassword(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)
	actor := c.Locals("user").(database.User)

	target, err := targetUser(c)
	if err != nil {
		if errors.Is(err, puser.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	password := utils.GenerateRandomString(12)
	if err := puser.NewService(db).ResetPassword(c.Context(), target, password); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	recordActivity(c, db, &database.ActivityLog{
		UserID:    actor.ID,
		Username:  actor.Username,
		Action:    "reset_password",
		Details:   target.Username,
		IPAddress: clientIP(c),
	})

	return c.JSON(fiber.Map{
		"user_id":  target.ID,
		"username": target.Username,
		"password": password,
	})
}

// CreateResetToken issues a one-time reset token for the target, so the
// administrator never handles the new credential at all.
func CreateResetToken(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)
	actor := c.Locals("user").(database.User)

	target, err := targetUser(c)
	if err != nil {
		if errors.Is(err, puser.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	token, err := puser.NewService(db).CreateResetToken(c.Context(), target)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	recordActivity(c, db, &database.ActivityLog{
		UserID:    actor.ID,
		Username:  actor.Username,
		Action:    "create_reset_token",
		Details:   target.Username,
		IPAddress: clientIP(c),
	})

	return c.Status(fiber.StatusCreated).JSON(token)
}

func ListLoginLogs(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	page, pageSize := queryPage(c)
	entries, err := audit.NewService(db).ListLogins(c.Context(), page, pageSize)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(entries)
}

func ListActivityLogs(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	page, pageSize := queryPage(c)
	entries, err := audit.NewService(db).ListActivities(c.Context(), page, pageSize)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(entries)
}

func CreateCategory(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)
	actor := c.Locals("user").(database.User)

	type CategoryInput struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	var input CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	if input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Name required"})
	}

	category, err := term.NewService(db).CreateCategory(c.Context(), input.Name, input.Description)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	recordActivity(c, db, &database.ActivityLog{
		UserID:    actor.ID,
		Username:  actor.Username,
		Action:    "create_category",
		Details:   category.Name,
		IPAddress: clientIP(c),
	})

	return c.Status(fiber.StatusCreated).JSON(category)
}
