package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"termbase/internal/config"
	"termbase/internal/database"
	"termbase/internal/logging"
	"termbase/internal/platform/audit"
	"termbase/internal/platform/auth"
	"termbase/internal/platform/session"
	puser "termbase/internal/platform/user"
)

var log = logging.NewLogger("handlers")

func clientIP(c *fiber.Ctx) string {
	ip := c.IP()
	if len(c.IPs()) > 1 {
		ip = c.IPs()[0]
	}
	return ip
}

func sessionTTL(cfg *config.Config) time.Duration {
	return time.Duration(cfg.SessionTTL) * time.Hour
}

func authService(c *fiber.Ctx) *auth.Service {
	cfg := c.Locals("config").(*config.Config)
	db := c.Locals("db").(*gorm.DB)
	resolver := c.Locals("resolver").(auth.Resolver)
	notifier := c.Locals("notifier").(auth.Notifier)

	return auth.NewService(
		puser.NewService(db),
		session.NewService(db, sessionTTL(cfg)),
		audit.NewService(db),
		resolver,
		notifier,
	)
}

func queryPage(c *fiber.Ctx) (page, pageSize int) {
	return c.QueryInt("page", 1), c.QueryInt("page_size", audit.DefaultPageSize)
}

// recordActivity writes an activity entry for a completed handler action.
// Failures never fail the request but are not dropped silently either.
func recordActivity(c *fiber.Ctx, db *gorm.DB, entry *database.ActivityLog) {
	if err := audit.NewService(db).RecordActivity(c.Context(), entry); err != nil {
		log.Error().Err(err).Str("action", entry.Action).Msg("failed to write activity log")
	}
}
