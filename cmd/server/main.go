package main

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"termbase/internal/config"
	"termbase/internal/database"
	"termbase/internal/handlers"
	"termbase/internal/logging"
	"termbase/internal/mail"
	"termbase/internal/middleware"
	"termbase/internal/platform/geolocation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	log := logging.NewLogger("server")

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	resolver := geolocation.NewResolver(cfg.GeoAPIBase, time.Duration(cfg.GeoTimeout)*time.Second)
	mailer := mail.NewMailer(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunAPIBase)
	notifier := mail.NewAlertNotifier(mailer, cfg.AlertFrom, cfg.AdminEmail)

	app := fiber.New()

	app.Use(compress.New())
	app.Use(helmet.New())
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(healthcheck.New())

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("config", cfg)
		c.Locals("db", db)
		c.Locals("resolver", resolver)
		c.Locals("notifier", notifier)
		return c.Next()
	})

	api := app.Group("/api")
	api.Get("/terms", handlers.SearchTerms)
	api.Get("/categories", handlers.ListCategories)
	api.Post("/terms", middleware.AuthMiddleware, handlers.CreateTerm)

	auth := api.Group("/auth")
	auth.Post("/login", handlers.Login)
	auth.Post("/logout", handlers.Logout)
	auth.Post("/reset-password", handlers.ResetPasswordWithToken)
	auth.Post("/change-password", middleware.AuthMiddleware, handlers.ChangePassword)

	user := api.Group("/user", middleware.AuthMiddleware)
	user.Get("/me", handlers.GetCurrentUser)
	user.Put("/me", handlers.UpdateUser)
	user.Get("/me/stats", handlers.GetUserStats)

	admin := api.Group("/admin", middleware.AuthMiddleware, middleware.AdminMiddleware)
	admin.Post("/users", handlers.CreateUser)
	admin.Get("/users", handlers.ListUsers)
	admin.Post("/users/:user_id/reset-password", handlers.ResetUserPassword)
	admin.Post("/users/:user_id/reset-token", handlers.CreateResetToken)
	admin.Get("/logs/logins", handlers.ListLoginLogs)
	admin.Get("/logs/activities", handlers.ListActivityLogs)
	admin.Post("/categories", handlers.CreateCategory)

	diag := api.Group("/diag")
	diag.Get("/ip", handlers.GetIP)
	diag.Get("/headers", handlers.GetHeaders)

	app.Use(func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})

	log.Info().Int("port", cfg.ServerPort).Msg("starting server")
	if err := app.Listen(fmt.Sprintf(":%d", cfg.ServerPort)); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
