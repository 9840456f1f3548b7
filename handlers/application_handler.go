package handlers

import (
	"github.com/mentorbridge/mentor_bridge/database"
	"github.com/mentorbridge/mentor_bridge/models"
	"github.com/mentorbridge/mentor_bridge/notifications"
	"github.com/gofiber/fiber/v2"
)

type MentorApplicationRequest struct {
	Responses map[string]string `json:"responses" validate:"required"`
}

// SubmitApplication files a mentor application. The responses are free-form
// (the onboarding form evolves); bio and expertise are the two answers the
// approval flow reads.
func SubmitApplication(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req MentorApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var pendingCount int64
	if err := database.DB.Model(&models.MentorApplication{}).
		Where("user_id = ? AND status = ?", userID, models.ApplicationPending).
		Count(&pendingCount).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if pendingCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You already have a pending application"})
	}

	application := models.MentorApplication{
		UserID:    userID,
		Responses: req.Responses,
		Status:    models.ApplicationPending,
	}
	if err := database.DB.Create(&application).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit application"})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err == nil {
		go notifications.SendEmail(user.FullName, user.Email, "Application Received",
			"<h1>Thank you!</h1><p>Your mentor application has been received and will be reviewed by our team.</p>")
	}

	return c.Status(fiber.StatusCreated).JSON(application)
}

// GetMyApplication returns the caller's most recent application.
func GetMyApplication(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var application models.MentorApplication
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at desc").
		First(&application).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No application found"})
	}

	return c.JSON(application)
}
