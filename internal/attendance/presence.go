package attendance

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

// PresenceLog keeps the raw in/out interval log alongside the derived
// attendance rows. Intervals are append-only; the newest open row is closed
// on checkout.
type PresenceLog struct {
	db *gorm.DB
}

// NewPresenceLog creates a PresenceLog on top of the given database.
func NewPresenceLog(db *gorm.DB) *PresenceLog {
	return &PresenceLog{db: db}
}

// LogCheckIn opens a presence interval unless one is already open for the
// student, which makes repeated check-in transitions idempotent.
func (p *PresenceLog) LogCheckIn(ctx context.Context, orgID, studentID uuid.UUID, now time.Time) error {
	var open int64
	if err := p.db.WithContext(ctx).
		Model(&model.AttendanceLog{}).
		Where("org_id = ? AND student_id = ? AND check_out_time IS NULL", orgID, studentID).
		Count(&open).Error; err != nil {
		return fmt.Errorf("failed to check open presence interval: %w", err)
	}
	if open > 0 {
		return nil
	}

	entry := model.AttendanceLog{
		ID:          uuid.New(),
		OrgID:       orgID,
		StudentID:   studentID,
		CheckInTime: now,
		Source:      "seat",
	}
	if err := p.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to open presence interval: %w", err)
	}
	return nil
}

// LogCheckOut closes the student's newest open presence interval, recording a
// duration of at least one minute. A checkout with no open interval is a
// no-op.
func (p *PresenceLog) LogCheckOut(ctx context.Context, orgID, studentID uuid.UUID, now time.Time) error {
	var entry model.AttendanceLog
	err := p.db.WithContext(ctx).
		Where("org_id = ? AND student_id = ? AND check_out_time IS NULL", orgID, studentID).
		Order("check_in_time DESC").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to find open presence interval: %w", err)
	}

	duration := timeutil.CeilMinutes(entry.CheckInTime, now)
	if duration < 1 {
		duration = 1
	}

	// Conditional on check_out_time IS NULL so a concurrent close loses
	// cleanly instead of overwriting.
	if err := p.db.WithContext(ctx).
		Model(&model.AttendanceLog{}).
		Where("id = ? AND check_out_time IS NULL", entry.ID).
		Updates(map[string]any{
			"check_out_time":   now,
			"duration_minutes": duration,
		}).Error; err != nil {
		return fmt.Errorf("failed to close presence interval %s: %w", entry.ID, err)
	}
	return nil
}
