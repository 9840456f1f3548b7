package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SessionActive = "active"
	SessionEnded  = "ended"
)

// Session is created exactly once, when a mentor accepts a request. The
// Zoom fields stay nil when meeting provisioning failed at accept time.
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudentID uuid.UUID `gorm:"not null;index" json:"student_id"`
	MentorID  uuid.UUID `gorm:"not null;index" json:"mentor_id"`
	RequestID uuid.UUID `gorm:"not null;unique" json:"request_id"`
	Status    string    `gorm:"size:20;not null;default:'active'" json:"status"`

	ScheduledAt  time.Time `gorm:"not null;index" json:"scheduled_at"`
	SelectedSlot TimeSlot  `gorm:"serializer:json" json:"selected_slot"`

	ZoomMeetingID     *string `gorm:"size:64;index" json:"zoom_meeting_id"`
	ZoomJoinURL       *string `gorm:"size:512" json:"zoom_join_url"`
	ZoomStartURL      *string `gorm:"size:512" json:"zoom_start_url"`
	ZoomMeetingStatus *string `gorm:"size:20" json:"zoom_meeting_status"`
	TranscriptURL     *string `gorm:"size:512" json:"transcript_url"`

	ReminderSent bool `gorm:"not null;default:false" json:"reminder_sent"`

	Student User `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Mentor  User `gorm:"foreignkey:MentorID" json:"mentor,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Session) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
