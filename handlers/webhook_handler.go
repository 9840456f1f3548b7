package handlers

import (
	"log"
	"strconv"

	config "github.com/mentorbridge/mentor_bridge/configs"
	"github.com/mentorbridge/mentor_bridge/database"
	"github.com/mentorbridge/mentor_bridge/meetings"
	"github.com/mentorbridge/mentor_bridge/models"
	"github.com/mentorbridge/mentor_bridge/services"
	"github.com/gofiber/fiber/v2"
)

type zoomWebhookBody struct {
	Event   string `json:"event"`
	Payload struct {
		PlainToken string `json:"plainToken"`
		Object     struct {
			ID             interface{} `json:"id"`
			RecordingFiles []struct {
				FileType    string `json:"file_type"`
				DownloadURL string `json:"download_url"`
			} `json:"recording_files"`
		} `json:"object"`
	} `json:"payload"`
}

// ZoomWebhook handles Zoom's lifecycle callbacks. The transcript branch hands
// off to a goroutine because Zoom expects the acknowledgement within seconds.
func ZoomWebhook(c *fiber.Ctx) error {
	var body zoomWebhookBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	log.Printf("[ZOOM WEBHOOK] Received event: %s", body.Event)

	if body.Event == "endpoint.url_validation" {
		secretToken := config.Config("ZOOM_WEBHOOK_SECRET_TOKEN")
		if secretToken == "" {
			log.Println("🔥 ZOOM_WEBHOOK_SECRET_TOKEN is not set")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Config error"})
		}

		return c.JSON(fiber.Map{
			"plainToken":     body.Payload.PlainToken,
			"encryptedToken": meetings.EncryptChallenge(secretToken, body.Payload.PlainToken),
		})
	}

	meetingID := meetingIDString(body.Payload.Object.ID)

	switch body.Event {
	case "meeting.started":
		database.DB.Model(&models.Session{}).
			Where("zoom_meeting_id = ?", meetingID).
			Update("zoom_meeting_status", "started")

	case "meeting.ended":
		database.DB.Model(&models.Session{}).
			Where("zoom_meeting_id = ?", meetingID).
			Updates(map[string]interface{}{
				"zoom_meeting_status": "ended",
				"status":              models.SessionEnded,
			})

	case "recording.transcript_completed":
		for _, file := range body.Payload.Object.RecordingFiles {
			if file.FileType != "TRANSCRIPT" {
				continue
			}
			log.Printf("[ZOOM WEBHOOK] Transcript ready for meeting: %s", meetingID)

			database.DB.Model(&models.Session{}).
				Where("zoom_meeting_id = ?", meetingID).
				Update("transcript_url", file.DownloadURL)

			go func(meetingID, downloadURL string) {
				if err := services.ProcessTranscript(meetingID, downloadURL); err != nil {
					log.Printf("[ZOOM WEBHOOK] Transcript processing failed: %v", err)
				}
			}(meetingID, file.DownloadURL)
			break
		}
	}

	return c.JSON(fiber.Map{"message": "Received"})
}

// meetingIDString normalizes the meeting id, which Zoom sends as a number on
// meeting events and as a string on recording events.
func meetingIDString(id interface{}) string {
	switch v := id.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	default:
		return ""
	}
}
