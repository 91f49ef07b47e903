package models

import "gorm.io/gorm"

// Registration is an RSVP against an Event. Registrants do not need accounts,
// so there is no User link; (EventID, Email) is unique per event.
type Registration struct {
	gorm.Model

	EventID uint   `gorm:"not null;uniqueIndex:idx_event_email"`
	Email   string `gorm:"not null;uniqueIndex:idx_event_email"`
	Name    string `gorm:"not null"`
	Phone   string
	Message string
	Status  string `gorm:"not null;default:CONFIRMED"`

	// Relationships
	Event Event `gorm:"foreignKey:EventID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
