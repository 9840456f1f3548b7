package handlers

import (
	"log"

	"github.com/mentorbridge/mentor_bridge/database"
	"github.com/mentorbridge/mentor_bridge/models"
	"github.com/mentorbridge/mentor_bridge/services"
	"github.com/gofiber/fiber/v2"
)

// GetMySessions lists sessions the caller is part of, either side of the
// pairing.
func GetMySessions(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var sessions []models.Session
	database.DB.
		Preload("Student").
		Preload("Mentor").
		Where("student_id = ? OR mentor_id = ?", userID, userID).
		Order("scheduled_at desc").
		Find(&sessions)

	return c.JSON(sessions)
}

func getOwnedSession(c *fiber.Ctx) (*models.Session, error) {
	userID := currentUserID(c)
	sessionID := c.Params("sessionId")

	var session models.Session
	if err := database.DB.Preload("Student").Preload("Mentor").
		First(&session, "id = ?", sessionID).Error; err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}
	if session.StudentID != userID && session.MentorID != userID {
		return nil, c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your session"})
	}
	return &session, nil
}

func GetSessionReport(c *fiber.Ctx) error {
	session, err := getOwnedSession(c)
	if session == nil {
		return err
	}

	var report models.SessionReport
	if err := database.DB.First(&report, "session_id = ?", session.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No report available for this session yet"})
	}

	return c.JSON(report)
}

// DownloadSessionReportPDF renders the report to PDF and streams it back.
func DownloadSessionReportPDF(c *fiber.Ctx) error {
	session, err := getOwnedSession(c)
	if session == nil {
		return err
	}

	var report models.SessionReport
	if err := database.DB.First(&report, "session_id = ?", session.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No report available for this session yet"})
	}

	pdfBytes, err := services.GenerateReportPDF(*session, report)
	if err != nil {
		log.Printf("🔥 Failed to generate report PDF for session %s: %v", session.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate PDF"})
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="session-report-`+session.ID.String()+`.pdf"`)
	return c.Send(pdfBytes)
}
