package routes

import (
	"github.com/mentorbridge/mentor_bridge/handlers"
	"github.com/mentorbridge/mentor_bridge/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/applications/pending", handlers.ListPendingApplications)
	admin.Put("/applications/:applicationId", handlers.ManageApplication)

	users := admin.Group("/users")
	users.Get("", handlers.GetAllUsers)
	users.Put("/:userId/status", handlers.ToggleUserStatus)

	admin.Get("/sessions", handlers.AdminGetAllSessions)
}
