package api

import (
	"kuroma-gateway/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

const requestIDKey = "requestid"

// NewApp creates the fiber app with the gateway's settings.
func NewApp(cfg config.Config) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               "Kuroma Gateway " + cfg.AppVersion,
		DisableStartupMessage: cfg.Env == "test",
	})
}

func SetupRouter(app *fiber.App, cfg config.Config, intent *IntentHandler, waitlist *WaitlistHandler) {
	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: requestIDKey,
	}))
	if cfg.Env != "test" {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"version": cfg.AppVersion,
			"env":     cfg.Env,
		})
	})

	routes := app.Group("/api")
	routes.Post("/intent", intent.HandleIntent)
	routes.Post("/waitlist", waitlist.HandleJoin)
}
