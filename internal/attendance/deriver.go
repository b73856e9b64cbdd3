package attendance

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studyroom-backend/internal/model"
	"studyroom-backend/internal/timeutil"
)

// DefaultGraceMinutes is the late-classification grace window applied when no
// override is configured.
const DefaultGraceMinutes = 10

// Deriver classifies seat transitions as present/late against the student's
// class schedule and upserts the derived attendance row.
type Deriver struct {
	db           *gorm.DB
	graceMinutes int
}

// NewDeriver creates a Deriver. graceMinutes <= 0 selects the default window.
func NewDeriver(db *gorm.DB, graceMinutes int) *Deriver {
	if graceMinutes <= 0 {
		graceMinutes = DefaultGraceMinutes
	}
	return &Deriver{db: db, graceMinutes: graceMinutes}
}

// Upsert derives today's attendance for the student. The reference class is
// the one with the earliest scheduled start today, regardless of which class
// triggered the transition. A student with no class today produces no row.
// Status is always computed fresh; a checkout followed by another check-in
// corrects an earlier late classification.
func (d *Deriver) Upsert(ctx context.Context, orgID, studentID uuid.UUID, transition model.SeatStatus, now time.Time) error {
	schedule, err := d.earliestScheduleToday(ctx, orgID, studentID, now)
	if err != nil {
		return err
	}
	if schedule == nil {
		return nil
	}

	startMinutes, err := timeutil.ClockMinutes(schedule.StartTime)
	if err != nil {
		return fmt.Errorf("bad schedule start time %q: %w", schedule.StartTime, err)
	}

	status := model.AttendancePresent
	if transition == model.StatusCheckedIn &&
		float64(timeutil.MinuteOfDay(now)) > startMinutes+float64(d.graceMinutes) {
		status = model.AttendanceLate
	}

	date := timeutil.DateString(now)

	var existing model.AttendanceRecord
	err = d.db.WithContext(ctx).
		Where("org_id = ? AND class_id = ? AND student_id = ? AND date = ?",
			orgID, schedule.ClassID, studentID, date).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record := model.AttendanceRecord{
			ID:        uuid.New(),
			OrgID:     orgID,
			ClassID:   schedule.ClassID,
			StudentID: studentID,
			Date:      date,
			Status:    status,
		}
		if transition == model.StatusCheckedIn {
			record.CheckInTime = &now
		} else {
			record.CheckOutTime = &now
		}
		if err := d.db.WithContext(ctx).Create(&record).Error; err != nil {
			return fmt.Errorf("failed to insert attendance record: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to fetch attendance record: %w", err)
	}

	// The first check-in time of the day is preserved across repeated
	// toggles; only the status and the side of the transition are updated.
	updates := map[string]any{"status": status}
	if transition == model.StatusCheckedIn {
		if existing.CheckInTime == nil {
			updates["check_in_time"] = now
		}
	} else {
		updates["check_out_time"] = now
	}
	if err := d.db.WithContext(ctx).
		Model(&model.AttendanceRecord{}).
		Where("id = ?", existing.ID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	return nil
}

// earliestScheduleToday resolves the reference schedule: active enrollments,
// then today's weekday slots for those classes, earliest start first. A nil
// result means attendance is not applicable today.
func (d *Deriver) earliestScheduleToday(ctx context.Context, orgID, studentID uuid.UUID, now time.Time) (*model.ClassSchedule, error) {
	var enrollments []model.ClassEnrollment
	if err := d.db.WithContext(ctx).
		Where("org_id = ? AND student_id = ? AND status = ?",
			orgID, studentID, model.EnrollmentActive).
		Find(&enrollments).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch enrollments for student %s: %w", studentID, err)
	}
	if len(enrollments) == 0 {
		return nil, nil
	}

	classIDs := make([]uuid.UUID, 0, len(enrollments))
	for _, e := range enrollments {
		classIDs = append(classIDs, e.ClassID)
	}

	var schedules []model.ClassSchedule
	if err := d.db.WithContext(ctx).
		Where("org_id = ? AND day_of_week = ? AND class_id IN ?",
			orgID, timeutil.Weekday(now), classIDs).
		Find(&schedules).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch schedules for student %s: %w", studentID, err)
	}
	if len(schedules) == 0 {
		return nil, nil
	}

	// Zero-padded HH:MM:SS makes lexicographic order chronological.
	sort.Slice(schedules, func(i, j int) bool {
		return schedules[i].StartTime < schedules[j].StartTime
	})
	return &schedules[0], nil
}
