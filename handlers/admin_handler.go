package handlers

import (
	"log"
	"strings"

	"github.com/mentorbridge/mentor_bridge/database"
	"github.com/mentorbridge/mentor_bridge/models"
	"github.com/mentorbridge/mentor_bridge/notifications"
	"github.com/mentorbridge/mentor_bridge/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func ListPendingApplications(c *fiber.Ctx) error {
	var pendingApplications []models.MentorApplication
	if err := database.DB.Preload("User").
		Where("status = ?", models.ApplicationPending).
		Order("created_at asc").
		Find(&pendingApplications).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(pendingApplications)
}

type ManageApplicationRequest struct {
	Status string `json:"status" validate:"required,oneof=approved dismissed"`
}

// ManageApplication approves or dismisses a mentor application.
//
// Approval runs as a saga ordered so an interruption leaves a retryable
// state: mentor profile upsert, then the embedding write, then the status
// flip. The status flip is the commit point; if the embedding oracle fails
// the application stays pending and the admin can simply approve again.
func ManageApplication(c *fiber.Ctx) error {
	applicationID := c.Params("applicationId")

	var req ManageApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var application models.MentorApplication
	if err := database.DB.Preload("User").First(&application, "id = ?", applicationID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Application not found"})
	}
	if application.Status != models.ApplicationPending {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Application has already been processed"})
	}

	if req.Status == models.ApplicationDismissed {
		if err := database.DB.Model(&application).Update("status", models.ApplicationDismissed).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update application"})
		}
		notifications.Notify(
			application.UserID,
			application.User.Email,
			models.NotifyMentorDismissed,
			"Update on Your Mentor Application",
			"We regret to inform you that after careful review, your mentor application was not approved at this time.",
			nil,
		)
		return c.JSON(fiber.Map{"message": "Application dismissed"})
	}

	headline := application.Responses["headline"]
	bio := application.Responses["bio"]
	expertise := splitExpertise(application.Responses["expertise"])

	mentor := models.Mentor{
		UserID:    application.UserID,
		Headline:  &headline,
		Bio:       &bio,
		Expertise: expertise,
		Status:    "active",
	}
	if err := database.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(&mentor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create mentor profile"})
	}

	profileText := services.BuildMentorProfileText(headline, bio, expertise)
	embedding, err := services.OpenAI.CreateEmbedding(profileText)
	if err != nil {
		log.Printf("🔥 Failed to embed mentor profile for %s: %v", application.UserID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Mentor profile saved but embedding failed. Approve again to retry.",
		})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Mentor{}).
			Where("user_id = ?", application.UserID).
			Update("embedding", embedding).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).
			Where("id = ?", application.UserID).
			Update("role", "mentor").Error; err != nil {
			return err
		}
		// Commit point: the application only reads approved once everything
		// the mentor needs to be matchable is in place.
		return tx.Model(&application).Update("status", models.ApplicationApproved).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to approve application"})
	}

	notifications.Notify(
		application.UserID,
		application.User.Email,
		models.NotifyMentorApproved,
		"Your Mentor Application has been Approved!",
		"Congratulations! Your application to become a mentor has been approved. Students can now be matched with you.",
		nil,
	)

	return c.JSON(fiber.Map{"message": "Application approved"})
}

func splitExpertise(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	expertise := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			expertise = append(expertise, trimmed)
		}
	}
	return expertise
}

func GetAllUsers(c *fiber.Ctx) error {
	var users []models.User
	database.DB.Order("created_at desc").Find(&users)
	return c.JSON(users)
}

func ToggleUserStatus(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	user.IsActive = !user.IsActive
	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user"})
	}

	return c.JSON(fiber.Map{"message": "User status updated", "is_active": user.IsActive})
}

func AdminGetAllSessions(c *fiber.Ctx) error {
	var sessions []models.Session
	database.DB.Preload("Student").Preload("Mentor").Order("scheduled_at desc").Find(&sessions)
	return c.JSON(sessions)
}
