package jobs

import (
	"log"
	"time"

	"github.com/mentorbridge/mentor_bridge/database"
	"github.com/mentorbridge/mentor_bridge/models"
)

// ExpireStaleRequests closes pending mentorship requests older than the 24h
// response window. Accept also checks expiry inline, so this sweep only keeps
// dashboards honest; it never races a valid accept because the update is
// conditioned on status still being pending.
func ExpireStaleRequests() {
	log.Println("Running job: ExpireStaleRequests...")

	cutoff := time.Now().Add(-models.RequestTTL)

	result := database.DB.Model(&models.MentorshipRequest{}).
		Where("status = ? AND created_at < ?", models.RequestPending, cutoff).
		Update("status", models.RequestExpired)
	if result.Error != nil {
		log.Printf("Error expiring stale requests: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Marked %d request(s) as expired.", result.RowsAffected)
	}
}
