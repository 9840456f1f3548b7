package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotifyMentorshipRequest = "mentorship_request"
	NotifyMatchAccepted     = "match_accepted"
	NotifySessionConfirmed  = "session_confirmed"
	NotifySessionReminder   = "session_reminder"
	NotifyMentorApproved    = "mentor_approved"
	NotifyMentorDismissed   = "mentor_dismissed"
)

// Notification is a fire-and-forget side effect of state transitions; nothing
// in the workflow depends on one being delivered.
type Notification struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	RecipientID    uuid.UUID         `gorm:"not null;index" json:"recipient_id"`
	RecipientEmail string            `gorm:"size:255" json:"recipient_email"`
	Type           string            `gorm:"size:40;not null" json:"type"`
	Title          string            `gorm:"size:255;not null" json:"title"`
	Message        string            `gorm:"type:text" json:"message"`
	Data           map[string]string `gorm:"serializer:json" json:"data"`
	Viewed         bool              `gorm:"not null;default:false" json:"viewed"`

	CreatedAt time.Time `json:"created_at"`
}

func (n *Notification) BeforeCreate(*gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
