package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification job types and statuses. Delivery and retry are handled by an
// external worker; this core only appends pending jobs.
const (
	NotifyCheckin  = "checkin"
	NotifyCheckout = "checkout"

	NotifyPending = "pending"
)

// NotificationJob is an outbound notification queued for delivery.
type NotificationJob struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OrgID     uuid.UUID      `gorm:"type:uuid;index;not null"`
	Type      string         `gorm:"size:16;not null"`
	Payload   datatypes.JSON `gorm:"not null"`
	Status    string         `gorm:"size:16;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
