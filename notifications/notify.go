package notifications

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/mentorbridge/mentor_bridge/database"
	"github.com/mentorbridge/mentor_bridge/models"
	"github.com/mentorbridge/mentor_bridge/websocket"
)

// Notify records an in-app notification and fans it out over email and the
// websocket stream. The whole thing is best-effort: a failed insert is logged
// and swallowed so workflow state transitions never depend on it.
func Notify(recipientID uuid.UUID, recipientEmail, notifType, title, message string, data map[string]string) {
	notification := models.Notification{
		RecipientID:    recipientID,
		RecipientEmail: recipientEmail,
		Type:           notifType,
		Title:          title,
		Message:        message,
		Data:           data,
	}

	if err := database.DB.Create(&notification).Error; err != nil {
		log.Printf("🔥 Failed to insert notification for %s: %v", recipientID, err)
		return
	}

	websocket.Push(recipientID, &notification)

	if recipientEmail != "" {
		htmlContent := fmt.Sprintf("<h1>%s</h1><p>%s</p>", title, message)
		go SendEmail("", recipientEmail, title, htmlContent)
	}
}
