package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mentorbridge/mentor_bridge/database"
	"github.com/mentorbridge/mentor_bridge/meetings"
	"github.com/mentorbridge/mentor_bridge/models"
	"github.com/mentorbridge/mentor_bridge/notifications"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type RespondToRequestBody struct {
	Action       string           `json:"action" validate:"required,oneof=accept reject"`
	SelectedSlot *models.TimeSlot `json:"selected_slot" validate:"omitempty"`
}

var errRequestResolved = errors.New("request is no longer pending")

// GetPendingRequests lists the open requests addressed to the calling mentor.
// Requests past the 24h window are excluded even if the expiry sweep has not
// caught them yet.
func GetPendingRequests(c *fiber.Ctx) error {
	mentorID := currentUserID(c)

	var requests []models.MentorshipRequest
	database.DB.
		Preload("Student").
		Where("mentor_id = ? AND status = ? AND created_at > ?",
			mentorID, models.RequestPending, time.Now().Add(-models.RequestTTL)).
		Order("created_at desc").
		Find(&requests)

	return c.JSON(requests)
}

// RespondToRequest lets a mentor resolve exactly one pending request.
func RespondToRequest(c *fiber.Ctx) error {
	mentorID := currentUserID(c)
	requestID := c.Params("requestId")

	var body RespondToRequestBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if body.Action == "reject" {
		// Conditional update: an already-resolved request stays resolved and
		// the second reject is a no-op.
		result := database.DB.Model(&models.MentorshipRequest{}).
			Where("id = ? AND mentor_id = ? AND status = ?", requestID, mentorID, models.RequestPending).
			Update("status", models.RequestRejected)
		if result.Error != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to reject request"})
		}
		return c.JSON(fiber.Map{"message": "Request rejected"})
	}

	// Accept path.
	if body.SelectedSlot == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A time slot must be selected when accepting a request"})
	}
	if err := validate.Struct(body.SelectedSlot); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	slot := *body.SelectedSlot

	var request models.MentorshipRequest
	if err := database.DB.First(&request, "id = ?", requestID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Request not found"})
	}
	if request.MentorID != mentorID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This request is not addressed to you"})
	}

	if request.Expired(time.Now()) {
		// Close it out; the conditional update keeps a concurrent resolve safe.
		database.DB.Model(&models.MentorshipRequest{}).
			Where("id = ? AND status = ?", request.ID, models.RequestPending).
			Update("status", models.RequestExpired)
		return c.Status(fiber.StatusGone).JSON(fiber.Map{"error": "Request has expired (24h window passed)"})
	}

	if !slotOffered(request.Responses.TimeSlots, slot) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Selected slot was not offered by the student"})
	}

	scheduledAt, durationMinutes, err := resolveSlot(slot)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var student, mentor models.User
	if err := database.DB.First(&student, "id = ?", request.StudentID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Student profile not found"})
	}
	if err := database.DB.First(&mentor, "id = ?", request.MentorID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Mentor profile not found"})
	}

	// Best-effort meeting provisioning. The pairing matters more than the
	// video link, so a Zoom failure leaves the meeting fields empty instead
	// of aborting the accept.
	var meeting *meetings.Meeting
	if meetings.Client != nil {
		topic := fmt.Sprintf("Mentorship Session: %s & %s", student.FullName, mentor.FullName)
		meeting, err = meetings.Client.CreateMeeting(topic, scheduledAt, durationMinutes)
		if err != nil {
			log.Printf("🔥 Failed to create Zoom meeting: %v", err)
			meeting = nil
		}
	}

	session := models.Session{
		StudentID:    request.StudentID,
		MentorID:     request.MentorID,
		RequestID:    request.ID,
		Status:       models.SessionActive,
		ScheduledAt:  scheduledAt,
		SelectedSlot: slot,
	}
	if meeting != nil {
		session.ZoomMeetingID = &meeting.ID
		session.ZoomJoinURL = &meeting.JoinURL
		session.ZoomStartURL = &meeting.StartURL
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		// Compare-and-swap on the status: of two concurrent accepts only the
		// one that flips pending→accepted proceeds to create the session.
		result := tx.Model(&models.MentorshipRequest{}).
			Where("id = ? AND status = ?", request.ID, models.RequestPending).
			Update("status", models.RequestAccepted)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errRequestResolved
		}

		if err := tx.Create(&session).Error; err != nil {
			return err
		}

		// Cascade: the student found their mentor, close the rest of the round.
		return tx.Model(&models.MentorshipRequest{}).
			Where("student_id = ? AND status = ?", request.StudentID, models.RequestPending).
			Update("status", models.RequestRejected).Error
	})
	if err != nil {
		if errors.Is(err, errRequestResolved) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Request has already been resolved"})
		}
		log.Printf("🔥 Accept transaction failed for request %s: %v", request.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to accept request"})
	}

	notifyAcceptance(request, session, student, mentor)

	return c.JSON(fiber.Map{
		"message": "Request accepted and session scheduled",
		"session": session,
	})
}

func slotOffered(offered []models.TimeSlot, slot models.TimeSlot) bool {
	for _, s := range offered {
		if s == slot {
			return true
		}
	}
	return false
}

// resolveSlot turns a slot into the session start time and its duration.
// A slot whose end does not come after its start is malformed input, not
// something to silently paper over with a default.
func resolveSlot(slot models.TimeSlot) (time.Time, int, error) {
	scheduledAt, err := time.Parse("2006-01-02 15:04", slot.Date+" "+slot.StartTime)
	if err != nil {
		return time.Time{}, 0, errors.New("invalid slot date or start time")
	}
	endAt, err := time.Parse("2006-01-02 15:04", slot.Date+" "+slot.EndTime)
	if err != nil {
		return time.Time{}, 0, errors.New("invalid slot end time")
	}

	durationMinutes := int(endAt.Sub(scheduledAt).Minutes())
	if durationMinutes <= 0 {
		return time.Time{}, 0, errors.New("invalid slot: end time must be after start time")
	}

	return scheduledAt, durationMinutes, nil
}

func notifyAcceptance(request models.MentorshipRequest, session models.Session, student, mentor models.User) {
	timeDisplay := fmt.Sprintf("%s at %s",
		session.ScheduledAt.Format("Monday, 2 January"),
		session.ScheduledAt.Format("15:04"))

	joinURL := ""
	if session.ZoomJoinURL != nil {
		joinURL = *session.ZoomJoinURL
	}

	notifications.Notify(
		request.StudentID,
		student.Email,
		models.NotifyMatchAccepted,
		"Mentorship Request Accepted!",
		fmt.Sprintf("Great news! %s has accepted your request. Your session is scheduled for %s.", mentor.FullName, timeDisplay),
		map[string]string{
			"mentor_id":     request.MentorID.String(),
			"mentor_name":   mentor.FullName,
			"request_id":    request.ID.String(),
			"scheduled_at":  session.ScheduledAt.Format(time.RFC3339),
			"zoom_join_url": joinURL,
		},
	)

	notifications.Notify(
		request.MentorID,
		mentor.Email,
		models.NotifySessionConfirmed,
		"Session Confirmed!",
		fmt.Sprintf("You have successfully scheduled a session with %s for %s.", student.FullName, timeDisplay),
		map[string]string{
			"student_id":    request.StudentID.String(),
			"student_name":  student.FullName,
			"request_id":    request.ID.String(),
			"scheduled_at":  session.ScheduledAt.Format(time.RFC3339),
			"zoom_join_url": joinURL,
		},
	)
}
