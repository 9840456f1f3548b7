package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
	RequestExpired  = "expired"
)

// RequestTTL is how long a mentor has to respond before the request expires.
const RequestTTL = 24 * time.Hour

// TimeSlot is a candidate meeting window proposed by the student.
// Times are "HH:MM" on the given "YYYY-MM-DD" date.
type TimeSlot struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime   string `json:"endTime" validate:"required,datetime=15:04"`
}

// RequestResponses carries the student's self-assessment exactly as submitted,
// so mentors see the original wording.
type RequestResponses struct {
	Strengths    string     `json:"strengths"`
	Weaknesses   string     `json:"weaknesses"`
	Requirements string     `json:"requirements"`
	TimeSlots    []TimeSlot `json:"timeSlots"`
	AnythingElse string     `json:"anythingElse,omitempty"`
}

// MentorshipRequest status is monotonic: pending is the only non-terminal
// state, and every transition out of it is final.
type MentorshipRequest struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	StudentID uuid.UUID        `gorm:"not null;index" json:"student_id"`
	MentorID  uuid.UUID        `gorm:"not null;index" json:"mentor_id"`
	Responses RequestResponses `gorm:"serializer:json" json:"responses"`
	Status    string           `gorm:"size:20;not null;default:'pending'" json:"status"`

	Student User `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Mentor  User `gorm:"foreignkey:MentorID" json:"mentor,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Expired reports whether the 24h response window has passed.
func (r *MentorshipRequest) Expired(now time.Time) bool {
	return now.Sub(r.CreatedAt) > RequestTTL
}

func (r *MentorshipRequest) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
