package model

import (
	"time"

	"github.com/google/uuid"
)

// Outing record statuses.
const (
	OutingOut      = "out"
	OutingReturned = "returned"
)

// OutingRecord is one temporary-leave event. At most one per (student, date)
// may be open (null ReturnTime).
type OutingRecord struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrgID           uuid.UUID `gorm:"type:uuid;index;not null"`
	StudentID       uuid.UUID `gorm:"type:uuid;index;not null"`
	SeatNumber      int
	Date            string    `gorm:"size:10;not null;index"`
	OutingTime      time.Time `gorm:"not null"`
	ReturnTime      *time.Time
	DurationMinutes int
	Reason          string `gorm:"size:256"`
	Status          string `gorm:"size:16;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LiveState is the per-student per-day live-screen state. The seat core only
// resets the outing flags on checkout; the rest is owned by the live screen.
type LiveState struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrgID           uuid.UUID  `gorm:"type:uuid;index;not null"`
	StudentID       uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_live_state_key;not null"`
	Date            string     `gorm:"size:10;uniqueIndex:idx_live_state_key;not null"`
	SeatNumber      int
	SleepCount      int
	IsOut           bool
	CurrentOutingID *uuid.UUID `gorm:"type:uuid"`
	TimerRunning    bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
