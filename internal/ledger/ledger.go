package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studyroom-backend/internal/model"
)

// Ledger deducts used study-room time from a student's prepaid passes.
type Ledger struct {
	db *gorm.DB
}

// New creates a Ledger on top of the given database.
func New(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Deduct subtracts usedHours from the student's oldest active hours pass,
// flooring the remaining amount at zero. A student with no active hours pass
// incurs no deduction; overage is not tracked here.
func (l *Ledger) Deduct(ctx context.Context, studentID uuid.UUID, usedHours float64) error {
	if usedHours <= 0 {
		return nil
	}

	var pass model.StudyRoomPass
	err := l.db.WithContext(ctx).
		Where("student_id = ? AND status = ? AND pass_type = ?",
			studentID, model.PassStatusActive, model.PassTypeHours).
		Order("created_at ASC").
		First(&pass).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to find active pass for student %s: %w", studentID, err)
	}

	remaining := pass.RemainingAmount - usedHours
	if remaining < 0 {
		remaining = 0
	}

	if err := l.db.WithContext(ctx).
		Model(&model.StudyRoomPass{}).
		Where("id = ?", pass.ID).
		Update("remaining_amount", remaining).Error; err != nil {
		return fmt.Errorf("failed to deduct %.4fh from pass %s: %w", usedHours, pass.ID, err)
	}
	return nil
}
