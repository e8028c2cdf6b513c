package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termbase/internal/database"
)

func TestGetCurrentUser(t *testing.T) {
	expires := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", database.User{ID: 7, Username: "alice", Role: database.RoleUser})
		c.Locals("session", database.Session{ID: "tbss-abc", UserID: 7, ExpiredAt: expires})
		return c.Next()
	})
	app.Get("/me", GetCurrentUser)

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		User struct {
			Username string `json:"username"`
		} `json:"user"`
		SessionExpiresAt time.Time `json:"session_expires_at"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, "alice", body.User.Username)
	assert.True(t, body.SessionExpiresAt.Equal(expires))
}
