package routes

import (
	"github.com/mentorbridge/mentor_bridge/handlers"
	"github.com/mentorbridge/mentor_bridge/middleware"
	"github.com/gofiber/fiber/v2"
)

func MatchingRoutes(app *fiber.App) {
	api := app.Group("/api/v1", middleware.Protected())

	api.Post("/match-mentors", handlers.MatchMentors)
	api.Get("/requests/me", handlers.GetMyRequests)
}
