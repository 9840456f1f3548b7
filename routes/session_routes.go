package routes

import (
	"github.com/mentorbridge/mentor_bridge/handlers"
	"github.com/mentorbridge/mentor_bridge/middleware"
	"github.com/gofiber/fiber/v2"
)

func SessionRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	sessions := api.Group("/sessions", middleware.Protected())
	sessions.Get("/me", handlers.GetMySessions)
	sessions.Get("/:sessionId/report", handlers.GetSessionReport)
	sessions.Get("/:sessionId/report/pdf", handlers.DownloadSessionReportPDF)

	// Mentor applications ride along here; they are session-adjacent profile
	// plumbing rather than a matching concern.
	applications := api.Group("/mentor-applications", middleware.Protected())
	applications.Post("", handlers.SubmitApplication)
	applications.Get("/me", handlers.GetMyApplication)
}
