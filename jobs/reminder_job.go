package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/mentorbridge/mentor_bridge/database"
	"github.com/mentorbridge/mentor_bridge/models"
	"github.com/mentorbridge/mentor_bridge/notifications"
)

// The sweep runs every 10 minutes and the window is 45-75 minutes out, so a
// session is caught by exactly one run; reminder_sent guards against the
// overlap between consecutive runs.
const (
	reminderWindowStart = 45 * time.Minute
	reminderWindowEnd   = 75 * time.Minute
)

type ReminderDetail struct {
	SessionID string `json:"session_id"`
	Student   string `json:"student"`
	Mentor    string `json:"mentor"`
}

// SendSessionReminders notifies both parties of every active, unreminded
// session starting inside the window. A failure on one session is logged and
// the sweep moves on.
func SendSessionReminders() ([]ReminderDetail, error) {
	log.Println("Running job: SendSessionReminders...")

	now := time.Now()
	windowStart := now.Add(reminderWindowStart)
	windowEnd := now.Add(reminderWindowEnd)

	var upcomingSessions []models.Session
	err := database.DB.
		Preload("Student").
		Preload("Mentor").
		Where("status = ? AND reminder_sent = ? AND scheduled_at BETWEEN ? AND ?",
			models.SessionActive, false, windowStart, windowEnd).
		Find(&upcomingSessions).Error
	if err != nil {
		log.Printf("Error checking for upcoming sessions: %v", err)
		return nil, err
	}

	if len(upcomingSessions) == 0 {
		return nil, nil
	}

	sent := make([]ReminderDetail, 0, len(upcomingSessions))

	for _, session := range upcomingSessions {
		timeStr := session.ScheduledAt.Format("15:04")

		joinURL := ""
		if session.ZoomJoinURL != nil {
			joinURL = *session.ZoomJoinURL
		}
		startURL := joinURL
		if session.ZoomStartURL != nil {
			startURL = *session.ZoomStartURL
		}

		notifications.Notify(
			session.StudentID,
			session.Student.Email,
			models.NotifySessionReminder,
			"Reminder: Mentorship Session in 1 hour!",
			fmt.Sprintf("Your session with %s starts at %s. See you soon!", session.Mentor.FullName, timeStr),
			map[string]string{
				"session_id":    session.ID.String(),
				"zoom_join_url": joinURL,
				"scheduled_at":  session.ScheduledAt.Format(time.RFC3339),
			},
		)

		notifications.Notify(
			session.MentorID,
			session.Mentor.Email,
			models.NotifySessionReminder,
			"Reminder: Mentorship Session in 1 hour!",
			fmt.Sprintf("Your session with %s starts at %s. Ready?", session.Student.FullName, timeStr),
			map[string]string{
				"session_id":     session.ID.String(),
				"zoom_start_url": startURL,
				"scheduled_at":   session.ScheduledAt.Format(time.RFC3339),
			},
		)

		if err := database.DB.Model(&models.Session{}).
			Where("id = ?", session.ID).
			Update("reminder_sent", true).Error; err != nil {
			log.Printf("🔥 Failed to mark session %s as reminded: %v", session.ID, err)
			continue
		}

		sent = append(sent, ReminderDetail{
			SessionID: session.ID.String(),
			Student:   session.Student.Email,
			Mentor:    session.Mentor.Email,
		})
	}

	log.Printf("Sent reminders for %d session(s).", len(sent))
	return sent, nil
}

// RunSessionReminders is the cron entrypoint.
func RunSessionReminders() {
	if _, err := SendSessionReminders(); err != nil {
		log.Printf("🔥 Reminder sweep failed: %v", err)
	}
}
