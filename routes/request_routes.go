package routes

import (
	"github.com/mentorbridge/mentor_bridge/handlers"
	"github.com/mentorbridge/mentor_bridge/middleware"
	"github.com/gofiber/fiber/v2"
)

func RequestRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	mentor := api.Group("/mentor", middleware.Protected(), middleware.MentorRequired())
	mentor.Get("/requests", handlers.GetPendingRequests)
	mentor.Post("/requests/:requestId/respond", handlers.RespondToRequest)
}
