package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionReport is the AI-generated summary of a finished session transcript.
type SessionReport struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SessionID     uuid.UUID `gorm:"not null;unique" json:"session_id"`
	Summary       string    `gorm:"type:text" json:"summary"`
	KeyPoints     []string  `gorm:"serializer:json" json:"key_points"`
	ActionItems   []string  `gorm:"serializer:json" json:"action_items"`
	RawTranscript string    `gorm:"type:text" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (r *SessionReport) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
