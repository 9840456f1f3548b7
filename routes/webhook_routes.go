package routes

import (
	"github.com/mentorbridge/mentor_bridge/handlers"
	"github.com/gofiber/fiber/v2"
)

func WebhookRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Post("/webhooks/zoom", handlers.ZoomWebhook)
	api.Get("/cron/reminders", handlers.RunReminderSweep)
}
