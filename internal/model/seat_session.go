package model

import (
	"time"

	"github.com/google/uuid"
)

// SeatStatus is the presence state of an assigned seat. It is orthogonal to
// vacancy: a seat with a nil StudentID is vacant regardless of Status.
type SeatStatus string

const (
	StatusCheckedIn  SeatStatus = "checked_in"
	StatusCheckedOut SeatStatus = "checked_out"
)

// Valid reports whether s is one of the two recognized statuses.
func (s SeatStatus) Valid() bool {
	return s == StatusCheckedIn || s == StatusCheckedOut
}

// SeatSession is the assignment of a student to a physical seat. One row per
// (org, seat number).
//
// CheckInTime is the first arrival of the current occupancy episode and is
// never cleared, so repeated in/out toggles keep attendance continuity.
// SessionStartTime marks the currently open billable interval and is nulled
// on every checkout.
type SeatSession struct {
	OrgID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SeatNumber       int        `gorm:"primaryKey"`
	StudentID        *uuid.UUID `gorm:"type:uuid;index"`
	Status           SeatStatus `gorm:"size:16;not null"`
	CheckInTime      *time.Time
	SessionStartTime *time.Time
	AllocatedMinutes *int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
