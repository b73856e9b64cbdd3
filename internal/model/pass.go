package model

import (
	"time"

	"github.com/google/uuid"
)

// Pass type and status values mirror the billing feature that issues them.
const (
	PassTypeHours = "hours"
	PassTypeDays  = "days"

	PassStatusActive   = "active"
	PassStatusExpired  = "expired"
	PassStatusPaused   = "paused"
	PassStatusDepleted = "depleted"
)

// StudyRoomPass is a prepaid allotment of study-room time. For hours-type
// passes RemainingAmount is in hours and is the deduction target on checkout;
// the oldest active pass is drained first.
type StudyRoomPass struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	StudentID       uuid.UUID `gorm:"type:uuid;index;not null"`
	PassType        string    `gorm:"size:16;not null"`
	TotalAmount     float64   `gorm:"not null"`
	RemainingAmount float64   `gorm:"not null"`
	StartDate       string    `gorm:"size:10"`
	ExpiryDate      string    `gorm:"size:10"`
	Status          string    `gorm:"size:16;not null"`
	Notes           string    `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time
}
