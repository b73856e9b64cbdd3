package model

import (
	"time"

	"github.com/google/uuid"
)

// EnrollmentActive is the only enrollment status considered for attendance.
const EnrollmentActive = "active"

// Class is the minimal class record the attendance deriver joins against.
type Class struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrgID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Name      string    `gorm:"size:128;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClassEnrollment links a student to a class.
type ClassEnrollment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrgID     uuid.UUID `gorm:"type:uuid;index;not null"`
	ClassID   uuid.UUID `gorm:"type:uuid;index;not null"`
	StudentID uuid.UUID `gorm:"type:uuid;index;not null"`
	Status    string    `gorm:"size:16;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClassSchedule is one weekly time slot of a class. DayOfWeek is the
// lowercase English weekday name; StartTime and EndTime are zero-padded
// "HH:MM:SS" strings, so lexicographic order equals chronological order.
type ClassSchedule struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrgID     uuid.UUID `gorm:"type:uuid;index;not null"`
	ClassID   uuid.UUID `gorm:"type:uuid;index;not null"`
	DayOfWeek string    `gorm:"size:9;not null"`
	StartTime string    `gorm:"size:8;not null"`
	EndTime   string    `gorm:"size:8;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
