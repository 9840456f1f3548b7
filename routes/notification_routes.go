package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/mentorbridge/mentor_bridge/handlers"
	"github.com/mentorbridge/mentor_bridge/middleware"
	ws "github.com/mentorbridge/mentor_bridge/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func NotificationRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	notifs := api.Group("/notifications", middleware.Protected())
	notifs.Get("/me", handlers.GetMyNotifications)
	notifs.Post("/:notificationId/viewed", handlers.MarkNotificationViewed)

	// Live stream: the JWT middleware runs on the upgrade request, then the
	// connection is parked in the hub until the client goes away.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/notifications", middleware.Protected(), websocket.New(func(conn *websocket.Conn) {
		token := conn.Locals("user").(*jwt.Token)
		claims := token.Claims.(jwt.MapClaims)
		userID, err := uuid.Parse(claims["user_id"].(string))
		if err != nil {
			conn.Close()
			return
		}

		client := &ws.Client{UserID: userID, Conn: conn}
		ws.Register <- client
		defer func() {
			ws.Unregister <- client
			conn.Close()
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}))
}
