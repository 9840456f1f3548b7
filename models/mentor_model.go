package models

import (
	"time"

	"github.com/google/uuid"
)

// Mentor is the approved mentor profile. The embedding is written once at
// approval time and is what the matching ranker scores against.
type Mentor struct {
	UserID    uuid.UUID `gorm:"primary_key" json:"user_id"`
	Headline  *string   `gorm:"size:255" json:"headline"`
	Bio       *string   `gorm:"type:text" json:"bio"`
	Expertise []string  `gorm:"serializer:json" json:"expertise"`
	Status    string    `gorm:"size:20;not null;default:'active'" json:"status"`
	Embedding []float64 `gorm:"serializer:json" json:"-"`

	User User `gorm:"foreignkey:UserID" json:"user"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
