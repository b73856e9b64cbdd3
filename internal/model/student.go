package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TagStudyRoom marks a student as a study-room user. It is set-added to the
// tag list when the student is assigned a seat.
const TagStudyRoom = "study-room"

// Student holds the display fields the seat core needs; the full student
// resource is owned by CRUD features outside this service.
type Student struct {
	ID          uuid.UUID                    `gorm:"type:uuid;primaryKey"`
	OrgID       uuid.UUID                    `gorm:"type:uuid;index;not null"`
	Name        string                       `gorm:"size:128;not null"`
	Grade       string                       `gorm:"size:32"`
	School      string                       `gorm:"size:128"`
	StudentCode string                       `gorm:"size:32"`
	Tags        datatypes.JSONSlice[string] `gorm:"column:tags"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasTag reports whether the tag list already contains tag.
func (s *Student) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
