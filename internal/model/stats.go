package model

import (
	"time"

	"github.com/google/uuid"
)

// SubjectStudyRoom is the sentinel subject label for seat-room usage in
// DailySubjectStat rows, distinguishing it from timed-subject study sessions
// recorded elsewhere in the application.
const SubjectStudyRoom = "study-room usage"

// DailySubjectStat accumulates per-student per-day study seconds broken down
// by subject and part of day.
type DailySubjectStat struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrgID            uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_subject_stat_key;not null"`
	StudentID        uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_subject_stat_key;not null"`
	SubjectName      string    `gorm:"size:128;uniqueIndex:idx_subject_stat_key;not null"`
	Date             string    `gorm:"size:10;uniqueIndex:idx_subject_stat_key;not null"`
	TotalSeconds     int       `gorm:"not null"`
	SessionCount     int       `gorm:"not null"`
	MorningSeconds   int       `gorm:"not null"`
	AfternoonSeconds int       `gorm:"not null"`
	NightSeconds     int       `gorm:"not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// StudyTimeRecord is the ranking-oriented daily total, keyed by date only
// (no subject dimension) with the student name denormalized at insert time.
type StudyTimeRecord struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrgID            uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_study_time_key;not null"`
	StudentID        uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_study_time_key;not null"`
	Date             string    `gorm:"size:10;uniqueIndex:idx_study_time_key;not null"`
	StudentName      string    `gorm:"size:128"`
	TotalMinutes     int       `gorm:"not null"`
	MorningMinutes   int       `gorm:"not null"`
	AfternoonMinutes int       `gorm:"not null"`
	NightMinutes     int       `gorm:"not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
