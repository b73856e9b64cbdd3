package outing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studyroom-backend/internal/model"
	"studyroom-backend/internal/timeutil"
)

// Closer settles outing state on checkout: any outing still open today is
// closed, and the live-screen outing flags are reset.
type Closer struct {
	db *gorm.DB
}

// New creates a Closer on top of the given database.
func New(db *gorm.DB) *Closer {
	return &Closer{db: db}
}

// CloseOpen closes today's open outing for the student, if any, and always
// resets the live-state outing flags. Duration is whole elapsed minutes,
// rounded down.
func (c *Closer) CloseOpen(ctx context.Context, orgID, studentID uuid.UUID, now time.Time) error {
	date := timeutil.DateString(now)

	var record model.OutingRecord
	err := c.db.WithContext(ctx).
		Where("org_id = ? AND student_id = ? AND date = ? AND return_time IS NULL",
			orgID, studentID, date).
		Order("outing_time DESC").
		First(&record).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Nothing open; flags may still be stale.
	case err != nil:
		return fmt.Errorf("failed to find open outing for student %s: %w", studentID, err)
	default:
		duration := int(now.Sub(record.OutingTime) / time.Minute)
		if duration < 0 {
			duration = 0
		}
		if err := c.db.WithContext(ctx).
			Model(&model.OutingRecord{}).
			Where("id = ? AND return_time IS NULL", record.ID).
			Updates(map[string]any{
				"return_time":      now,
				"duration_minutes": duration,
				"status":           model.OutingReturned,
			}).Error; err != nil {
			return fmt.Errorf("failed to close outing %s: %w", record.ID, err)
		}
	}

	if err := c.db.WithContext(ctx).
		Model(&model.LiveState{}).
		Where("org_id = ? AND student_id = ? AND date = ?", orgID, studentID, date).
		Updates(map[string]any{
			"is_out":            false,
			"current_outing_id": nil,
		}).Error; err != nil {
		return fmt.Errorf("failed to reset live state for student %s: %w", studentID, err)
	}
	return nil
}
