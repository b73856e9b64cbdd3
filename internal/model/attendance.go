package model

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceStatus is the derived classification of a check-in against the
// student's earliest class schedule of the day.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceLate    AttendanceStatus = "late"
)

// AttendanceRecord is one derived row per (org, class, student, date). The
// seat core upserts it on every transition; it is never read back here.
type AttendanceRecord struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey"`
	OrgID        uuid.UUID        `gorm:"type:uuid;uniqueIndex:idx_attendance_key;not null"`
	ClassID      uuid.UUID        `gorm:"type:uuid;uniqueIndex:idx_attendance_key;not null"`
	StudentID    uuid.UUID        `gorm:"type:uuid;uniqueIndex:idx_attendance_key;not null"`
	Date         string           `gorm:"size:10;uniqueIndex:idx_attendance_key;not null"`
	Status       AttendanceStatus `gorm:"size:16;not null"`
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AttendanceLog is one campus-wide presence row per physical visit. At most
// one row per student has a null CheckOutTime at a time.
type AttendanceLog struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrgID           uuid.UUID `gorm:"type:uuid;index;not null"`
	StudentID       uuid.UUID `gorm:"type:uuid;index;not null"`
	CheckInTime     time.Time `gorm:"not null;index"`
	CheckOutTime    *time.Time
	DurationMinutes int
	Source          string `gorm:"size:32"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
