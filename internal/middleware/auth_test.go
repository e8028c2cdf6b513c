package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestSessionID(t *testing.T) {
	app := fiber.New()

	var got string
	app.Get("/", func(c *fiber.Ctx) error {
		got = SessionID(c)
		return c.SendStatus(fiber.StatusOK)
	})

	tests := []struct {
		name   string
		cookie string
		header string
		want   string
	}{
		{"cookie", "tbss-cookie", "", "tbss-cookie"},
		{"bearer header", "", "Bearer tbss-header", "tbss-header"},
		{"cookie wins over header", "tbss-cookie", "Bearer tbss-header", "tbss-cookie"},
		{"non-bearer header ignored", "", "Basic dXNlcg==", ""},
		{"nothing", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			got = ""
			resp, err := app.Test(req)
			assert.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, tt.want, got)
		})
	}
}
