package handlers

import (
	"github.com/mentorbridge/mentor_bridge/database"
	"github.com/mentorbridge/mentor_bridge/models"
	"github.com/gofiber/fiber/v2"
)

func GetMyNotifications(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var notifs []models.Notification
	database.DB.
		Where("recipient_id = ?", userID).
		Order("created_at desc").
		Limit(100).
		Find(&notifs)

	return c.JSON(notifs)
}

func MarkNotificationViewed(c *fiber.Ctx) error {
	userID := currentUserID(c)
	notificationID := c.Params("notificationId")

	result := database.DB.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", notificationID, userID).
		Update("viewed", true)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update notification"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Notification not found"})
	}

	return c.JSON(fiber.Map{"message": "Notification marked as viewed"})
}
