package main

import (
	"log"
	"time"

	config "github.com/mentorbridge/mentor_bridge/configs"
	"github.com/mentorbridge/mentor_bridge/database"
	"github.com/mentorbridge/mentor_bridge/jobs"
	"github.com/mentorbridge/mentor_bridge/meetings"
	"github.com/mentorbridge/mentor_bridge/notifications"
	"github.com/mentorbridge/mentor_bridge/routes"
	"github.com/mentorbridge/mentor_bridge/services"
	"github.com/mentorbridge/mentor_bridge/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	notifications.InitEmailService()
	services.InitOpenAIService()
	meetings.InitZoomService()

	c := cron.New()
	c.AddFunc("*/10 * * * *", jobs.RunSessionReminders)
	c.AddFunc("*/15 * * * *", jobs.ExpireStaleRequests)
	go c.Start()
	log.Println("✅ Cron jobs scheduled successfully.")

	app := fiber.New(fiber.Config{
		AppName:       "MentorBridge",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.AuthRoutes(app)
	routes.MatchingRoutes(app)
	routes.RequestRoutes(app)
	routes.SessionRoutes(app)
	routes.AdminRoutes(app)
	routes.NotificationRoutes(app)
	routes.WebhookRoutes(app)

	go websocket.RunHub()

	port := config.ConfigOr("PORT", "8080")
	log.Printf("✅ Server is running on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
