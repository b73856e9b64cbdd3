package stats

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studyroom-backend/internal/model"
	"studyroom-backend/internal/timeutil"
)

// Aggregator rolls checkout durations into the daily statistics tables used
// by subject breakdowns and study-time rankings.
type Aggregator struct {
	db *gorm.DB
}

// New creates an Aggregator on top of the given database.
func New(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

// Record accumulates usedMinutes into DailySubjectStat (seconds) and
// StudyTimeRecord (minutes) for the day of sessionStart. The whole duration
// is attributed to the part-of-day slot containing the session start, even
// when the session spans a slot boundary. The two upserts are independent:
// a failure in one does not block the other.
func (a *Aggregator) Record(ctx context.Context, orgID, studentID uuid.UUID, usedMinutes int, sessionStart time.Time) error {
	if usedMinutes <= 0 {
		return nil
	}

	slot := timeutil.SlotForTime(sessionStart)
	date := timeutil.DateString(sessionStart)

	var firstErr error
	if err := a.recordSubjectStat(ctx, orgID, studentID, usedMinutes*60, date, slot); err != nil {
		log.Printf("stats: subject stat update failed for student %s on %s: %v", studentID, date, err)
		firstErr = err
	}
	if err := a.recordStudyTime(ctx, orgID, studentID, usedMinutes, date, slot); err != nil {
		log.Printf("stats: study time update failed for student %s on %s: %v", studentID, date, err)
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (a *Aggregator) recordSubjectStat(ctx context.Context, orgID, studentID uuid.UUID, seconds int, date string, slot timeutil.Slot) error {
	morning, afternoon, night := splitBySlot(seconds, slot)

	var existing model.DailySubjectStat
	err := a.db.WithContext(ctx).
		Where("org_id = ? AND student_id = ? AND subject_name = ? AND date = ?",
			orgID, studentID, model.SubjectStudyRoom, date).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		stat := model.DailySubjectStat{
			ID:               uuid.New(),
			OrgID:            orgID,
			StudentID:        studentID,
			SubjectName:      model.SubjectStudyRoom,
			Date:             date,
			TotalSeconds:     seconds,
			SessionCount:     1,
			MorningSeconds:   morning,
			AfternoonSeconds: afternoon,
			NightSeconds:     night,
		}
		if err := a.db.WithContext(ctx).Create(&stat).Error; err != nil {
			return fmt.Errorf("failed to insert daily subject stat: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to fetch daily subject stat: %w", err)
	}

	updates := map[string]any{
		"total_seconds":     existing.TotalSeconds + seconds,
		"session_count":     existing.SessionCount + 1,
		"morning_seconds":   existing.MorningSeconds + morning,
		"afternoon_seconds": existing.AfternoonSeconds + afternoon,
		"night_seconds":     existing.NightSeconds + night,
	}
	if err := a.db.WithContext(ctx).
		Model(&model.DailySubjectStat{}).
		Where("id = ?", existing.ID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update daily subject stat: %w", err)
	}
	return nil
}

func (a *Aggregator) recordStudyTime(ctx context.Context, orgID, studentID uuid.UUID, minutes int, date string, slot timeutil.Slot) error {
	morning, afternoon, night := splitBySlot(minutes, slot)

	var existing model.StudyTimeRecord
	err := a.db.WithContext(ctx).
		Where("org_id = ? AND student_id = ? AND date = ?", orgID, studentID, date).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Student name is denormalized at insert time only; it is not
		// refreshed on later updates.
		var student model.Student
		name := ""
		if err := a.db.WithContext(ctx).
			Select("name").
			Where("org_id = ? AND id = ?", orgID, studentID).
			First(&student).Error; err == nil {
			name = student.Name
		}

		record := model.StudyTimeRecord{
			ID:               uuid.New(),
			OrgID:            orgID,
			StudentID:        studentID,
			Date:             date,
			StudentName:      name,
			TotalMinutes:     minutes,
			MorningMinutes:   morning,
			AfternoonMinutes: afternoon,
			NightMinutes:     night,
		}
		if err := a.db.WithContext(ctx).Create(&record).Error; err != nil {
			return fmt.Errorf("failed to insert study time record: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to fetch study time record: %w", err)
	}

	updates := map[string]any{
		"total_minutes":     existing.TotalMinutes + minutes,
		"morning_minutes":   existing.MorningMinutes + morning,
		"afternoon_minutes": existing.AfternoonMinutes + afternoon,
		"night_minutes":     existing.NightMinutes + night,
	}
	if err := a.db.WithContext(ctx).
		Model(&model.StudyTimeRecord{}).
		Where("id = ?", existing.ID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update study time record: %w", err)
	}
	return nil
}

func splitBySlot(amount int, slot timeutil.Slot) (morning, afternoon, night int) {
	switch slot {
	case timeutil.SlotAfternoon:
		return 0, amount, 0
	case timeutil.SlotNight:
		return 0, 0, amount
	default:
		return amount, 0, 0
	}
}
