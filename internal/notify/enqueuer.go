package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studyroom-backend/internal/model"
)

// Enqueuer appends pending notification jobs for seat transitions. Delivery
// runs in a separate worker; nothing here blocks on it.
type Enqueuer struct {
	db *gorm.DB
}

// New creates an Enqueuer on top of the given database.
func New(db *gorm.DB) *Enqueuer {
	return &Enqueuer{db: db}
}

type transitionPayload struct {
	StudentID  uuid.UUID `json:"student_id"`
	SeatNumber int       `json:"seat_number"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Enqueue queues one job for the transition. Unknown transitions are
// rejected rather than silently dropped.
func (e *Enqueuer) Enqueue(ctx context.Context, orgID, studentID uuid.UUID, seatNumber int, transition model.SeatStatus, occurredAt time.Time) error {
	var jobType string
	switch transition {
	case model.StatusCheckedIn:
		jobType = model.NotifyCheckin
	case model.StatusCheckedOut:
		jobType = model.NotifyCheckout
	default:
		return fmt.Errorf("no notification type for transition %q", transition)
	}

	payload, err := json.Marshal(transitionPayload{
		StudentID:  studentID,
		SeatNumber: seatNumber,
		OccurredAt: occurredAt,
	})
	if err != nil {
		return fmt.Errorf("failed to encode notification payload: %w", err)
	}

	job := model.NotificationJob{
		ID:      uuid.New(),
		OrgID:   orgID,
		Type:    jobType,
		Payload: payload,
		Status:  model.NotifyPending,
	}
	if err := e.db.WithContext(ctx).Create(&job).Error; err != nil {
		return fmt.Errorf("failed to enqueue %s notification: %w", jobType, err)
	}
	return nil
}
