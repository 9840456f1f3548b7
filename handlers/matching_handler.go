package handlers

import (
	"log"

	"github.com/mentorbridge/mentor_bridge/database"
	"github.com/mentorbridge/mentor_bridge/models"
	"github.com/mentorbridge/mentor_bridge/notifications"
	"github.com/mentorbridge/mentor_bridge/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type MatchMentorsRequest struct {
	Strengths    string            `json:"strengths" validate:"required"`
	Weaknesses   string            `json:"weaknesses" validate:"required"`
	Requirements string            `json:"requirements" validate:"required"`
	AnythingElse string            `json:"anythingElse"`
	TimeSlots    []models.TimeSlot `json:"timeSlots" validate:"required,min=3,dive"`
}

// MatchMentors runs the intake: embed the student's self-assessment, rank
// active mentors against it, and open one pending request per shortlisted
// mentor. The batch insert is atomic; an oracle failure writes nothing.
func MatchMentors(c *fiber.Ctx) error {
	studentID := currentUserID(c)

	var req MatchMentorsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// One matching round at a time: a student with open requests has to wait
	// for mentors to respond (or for the 24h expiry) before resubmitting.
	var pendingCount int64
	if err := database.DB.Model(&models.MentorshipRequest{}).
		Where("student_id = ? AND status = ?", studentID, models.RequestPending).
		Count(&pendingCount).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if pendingCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "You already have a pending matching round. Please wait for mentors to respond.",
		})
	}

	var student models.User
	if err := database.DB.First(&student, "id = ?", studentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	profileText := services.BuildStudentProfileText(req.Strengths, req.Weaknesses, req.Requirements, req.AnythingElse)

	embedding, err := services.OpenAI.CreateEmbedding(profileText)
	if err != nil {
		log.Printf("🔥 Embedding oracle failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Matching is temporarily unavailable, please try again."})
	}

	matches, err := services.MatchMentors(embedding)
	if err != nil {
		log.Printf("🔥 Mentor ranking failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Matching is temporarily unavailable, please try again."})
	}

	if len(matches) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No suitable mentors found at this time."})
	}

	responses := models.RequestResponses{
		Strengths:    req.Strengths,
		Weaknesses:   req.Weaknesses,
		Requirements: req.Requirements,
		TimeSlots:    req.TimeSlots,
		AnythingElse: req.AnythingElse,
	}

	requests := make([]models.MentorshipRequest, 0, len(matches))
	for _, match := range matches {
		requests = append(requests, models.MentorshipRequest{
			StudentID: studentID,
			MentorID:  match.Mentor.UserID,
			Responses: responses,
			Status:    models.RequestPending,
		})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&requests).Error
	})
	if err != nil {
		log.Printf("🔥 Failed to create mentorship requests: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create mentorship requests"})
	}

	for _, match := range matches {
		notifications.Notify(
			match.Mentor.UserID,
			match.Mentor.User.Email,
			models.NotifyMentorshipRequest,
			"New Mentorship Request",
			"You have received a new mentorship request from "+student.FullName+". Please review and accept/reject within 24 hours.",
			map[string]string{
				"student_id":   studentID.String(),
				"student_name": student.FullName,
			},
		)
	}

	return c.JSON(fiber.Map{"success": true, "count": len(matches)})
}

// GetMyRequests lists the student's current matching round, newest first.
func GetMyRequests(c *fiber.Ctx) error {
	studentID := currentUserID(c)

	var requests []models.MentorshipRequest
	database.DB.
		Preload("Mentor").
		Where("student_id = ?", studentID).
		Order("created_at desc").
		Find(&requests)

	return c.JSON(requests)
}
