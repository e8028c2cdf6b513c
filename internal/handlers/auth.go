package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"termbase/internal/config"
	"termbase/internal/database"
	"termbase/internal/middleware"
	"termbase/internal/platform/auth"
	puser "termbase/internal/platform/user"
)

func Login(c *fiber.Ctx) error {
	cfg := c.Locals("config").(*config.Config)

	type LoginInput struct {
		Identifier string `json:"identifier" validate:"required"`
		Password   string `json:"password" validate:"required"`
	}

	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	result, err := authService(c).Login(c.Context(), input.Identifier, input.Password, clientIP(c), c.Get(fiber.HeaderUserAgent))
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid credentials"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    result.Session.ID,
		Expires:  result.Session.ExpiredAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	return c.JSON(fiber.Map{
		"session_id":            result.Session.ID,
		"expires_at":            result.Session.ExpiredAt,
		"expires_in":            int(sessionTTL(cfg).Seconds()),
		"user":                  result.User,
		"force_password_change": result.ForcePasswordChange,
	})
}

func Logout(c *fiber.Ctx) error {
	sessionID := middleware.SessionID(c)

	if sessionID != "" {
		if err := authService(c).Logout(c.Context(), sessionID, clientIP(c)); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	return c.SendStatus(fiber.StatusNoContent)
}

func ChangePassword(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)
	user := c.Locals("user").(database.User)

	userService := puser.NewService(db)

	type ChangePasswordInput struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=6"`
	}

	var input ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if !userService.Verify(&user, input.CurrentPassword) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid credentials"})
	}

	if err := userService.ChangePassword(c.Context(), &user, input.NewPassword); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	recordActivity(c, db, &database.ActivityLog{
		UserID:    user.ID,
		Username:  user.Username,
		Action:    "change_password",
		IPAddress: clientIP(c),
	})

	return c.SendStatus(fiber.StatusNoContent)
}

func ResetPasswordWithToken(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	userService := puser.NewService(db)

	type ResetPasswordInput struct {
		ResetToken  string `json:"reset_token" validate:"required,uuid"`
		NewPassword string `json:"new_password" validate:"required,min=6"`
	}

	var input ResetPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	token, err := uuid.Parse(input.ResetToken)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid reset token"})
	}

	user, err := userService.ConsumeResetToken(c.Context(), token, input.NewPassword)
	if err != nil {
		if errors.Is(err, puser.ErrResetTokenInvalid) || errors.Is(err, puser.ErrUserNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid reset token"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	recordActivity(c, db, &database.ActivityLog{
		UserID:    user.ID,
		Username:  user.Username,
		Action:    "reset_password",
		IPAddress: clientIP(c),
	})

	return c.SendStatus(fiber.StatusNoContent)
}
