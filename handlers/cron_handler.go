package handlers

import (
	config "github.com/mentorbridge/mentor_bridge/configs"
	"github.com/mentorbridge/mentor_bridge/jobs"
	"github.com/gofiber/fiber/v2"
)

// RunReminderSweep is the HTTP trigger for the reminder job, for deployments
// that drive cron externally. When CRON_SECRET is set the caller must present
// it as a bearer token.
func RunReminderSweep(c *fiber.Ctx) error {
	cronSecret := config.Config("CRON_SECRET")
	if cronSecret != "" && c.Get("Authorization") != "Bearer "+cronSecret {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	details, err := jobs.SendSessionReminders()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(details) == 0 {
		return c.JSON(fiber.Map{"message": "No sessions requiring reminders at this time."})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(details),
		"details": details,
	})
}
