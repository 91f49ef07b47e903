package models

import (
	"time"

	"gorm.io/gorm"
)

type Event struct {
	gorm.Model

	Title        string `gorm:"not null"`
	Description  string
	Location     string
	StartDate    time.Time `gorm:"not null"`
	EndDate      *time.Time
	MaxAttendees *int // nil = unbounded
	IsPublic     bool
	Status       string `gorm:"not null;default:DRAFT"`
	CreatorID    uint   `gorm:"not null;index"`

	// Relationships
	Creator       User           `gorm:"foreignKey:CreatorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Registrations []Registration `gorm:"foreignKey:EventID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
