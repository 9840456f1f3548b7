package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ApplicationPending   = "pending"
	ApplicationApproved  = "approved"
	ApplicationDismissed = "dismissed"
)

type MentorApplication struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID         `gorm:"not null" json:"user_id"`
	Responses map[string]string `gorm:"serializer:json" json:"responses"`
	Status    string            `gorm:"size:20;not null;default:'pending'" json:"status"`

	User User `gorm:"foreignkey:UserID" json:"user"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *MentorApplication) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
