package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"studyroom-backend/internal/model"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the persistence operations for seat sessions and the student
// lookups the orchestrator depends on.
type Store interface {
	Get(ctx context.Context, orgID uuid.UUID, seatNumber int) (*model.SeatSession, error)
	List(ctx context.Context, orgID uuid.UUID) ([]SeatView, error)
	Upsert(ctx context.Context, session *model.SeatSession) (*model.SeatSession, error)
	Create(ctx context.Context, session *model.SeatSession) error
	MarkCheckedIn(ctx context.Context, orgID uuid.UUID, seatNumber int, now time.Time) error
	// CloseInterval atomically ends the open billable interval of a seat:
	// it sets status to checked_out and nulls session_start_time, but only
	// where an interval is actually open. It reports whether a row was
	// affected, so a duplicate checkout observes false and skips accounting.
	CloseInterval(ctx context.Context, orgID uuid.UUID, seatNumber int) (bool, error)
	MarkCheckedOut(ctx context.Context, orgID uuid.UUID, seatNumber int) error
	Delete(ctx context.Context, orgID uuid.UUID, seatNumber int) error

	FindStudent(ctx context.Context, orgID, studentID uuid.UUID) (*model.Student, error)
	AddStudentTag(ctx context.Context, orgID, studentID uuid.UUID, tag string) error
}

// SeatView is one List row: the session joined with the student's display
// fields and the remaining hours across their active hours passes.
type SeatView struct {
	SeatNumber       int         `json:"seatNumber"`
	StudentID        *uuid.UUID  `json:"studentId"`
	StudentName      *string     `json:"studentName"`
	StudentGrade     *string     `json:"studentGrade"`
	StudentSchool    *string     `json:"studentSchool"`
	StudentCode      *string     `json:"studentCode"`
	Status           model.SeatStatus `json:"status"`
	CheckInTime      *time.Time  `json:"checkInTime"`
	SessionStartTime *time.Time  `json:"sessionStartTime"`
	AllocatedMinutes *int        `json:"allocatedMinutes"`
	RemainingHours   *float64    `json:"remainingHours"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Get(ctx context.Context, orgID uuid.UUID, seatNumber int) (*model.SeatSession, error) {
	var session model.SeatSession
	err := s.db.WithContext(ctx).
		Where("org_id = ? AND seat_number = ?", orgID, seatNumber).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seat session %d: %w", seatNumber, err)
	}
	return &session, nil
}

func (s *gormStore) List(ctx context.Context, orgID uuid.UUID) ([]SeatView, error) {
	var sessions []model.SeatSession
	if err := s.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("seat_number ASC").
		Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to list seat sessions: %w", err)
	}

	studentIDs := make([]uuid.UUID, 0, len(sessions))
	for _, sess := range sessions {
		if sess.StudentID != nil {
			studentIDs = append(studentIDs, *sess.StudentID)
		}
	}

	studentMap := make(map[uuid.UUID]model.Student, len(studentIDs))
	balanceMap := make(map[uuid.UUID]float64, len(studentIDs))
	if len(studentIDs) > 0 {
		var students []model.Student
		if err := s.db.WithContext(ctx).
			Where("org_id = ? AND id IN ?", orgID, studentIDs).
			Find(&students).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch students for seat list: %w", err)
		}
		for _, st := range students {
			studentMap[st.ID] = st
		}

		type balanceRow struct {
			StudentID uuid.UUID
			Remaining float64
		}
		var balances []balanceRow
		if err := s.db.WithContext(ctx).
			Model(&model.StudyRoomPass{}).
			Select("student_id, COALESCE(SUM(remaining_amount), 0) as remaining").
			Where("student_id IN ? AND status = ? AND pass_type = ?",
				studentIDs, model.PassStatusActive, model.PassTypeHours).
			Group("student_id").
			Scan(&balances).Error; err != nil {
			return nil, fmt.Errorf("failed to aggregate pass balances: %w", err)
		}
		for _, b := range balances {
			balanceMap[b.StudentID] = b.Remaining
		}
	}

	views := make([]SeatView, 0, len(sessions))
	for _, sess := range sessions {
		view := SeatView{
			SeatNumber:       sess.SeatNumber,
			StudentID:        sess.StudentID,
			Status:           sess.Status,
			CheckInTime:      sess.CheckInTime,
			SessionStartTime: sess.SessionStartTime,
			AllocatedMinutes: sess.AllocatedMinutes,
			UpdatedAt:        sess.UpdatedAt,
		}
		if sess.StudentID != nil {
			if st, ok := studentMap[*sess.StudentID]; ok {
				view.StudentName = &st.Name
				view.StudentGrade = &st.Grade
				view.StudentSchool = &st.School
				view.StudentCode = &st.StudentCode
			}
			if remaining, ok := balanceMap[*sess.StudentID]; ok {
				view.RemainingHours = &remaining
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// Upsert writes the assignment on conflict (org_id, seat_number), swapping the
// occupant if the seat was already assigned.
func (s *gormStore) Upsert(ctx context.Context, session *model.SeatSession) (*model.SeatSession, error) {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "org_id"}, {Name: "seat_number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"student_id", "status", "check_in_time", "session_start_time", "allocated_minutes", "updated_at",
		}),
	}).Create(session).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert seat session %d: %w", session.SeatNumber, err)
	}
	return s.Get(ctx, session.OrgID, session.SeatNumber)
}

func (s *gormStore) Create(ctx context.Context, session *model.SeatSession) error {
	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("failed to create seat session %d: %w", session.SeatNumber, err)
	}
	return nil
}

func (s *gormStore) MarkCheckedIn(ctx context.Context, orgID uuid.UUID, seatNumber int, now time.Time) error {
	err := s.db.WithContext(ctx).
		Model(&model.SeatSession{}).
		Where("org_id = ? AND seat_number = ?", orgID, seatNumber).
		Updates(map[string]any{
			"status": model.StatusCheckedIn,
			// First arrival of the episode wins; later toggles only reopen
			// the billable interval.
			"check_in_time":      gorm.Expr("COALESCE(check_in_time, ?)", now),
			"session_start_time": now,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark seat %d checked in: %w", seatNumber, err)
	}
	return nil
}

func (s *gormStore) CloseInterval(ctx context.Context, orgID uuid.UUID, seatNumber int) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&model.SeatSession{}).
		Where("org_id = ? AND seat_number = ? AND session_start_time IS NOT NULL", orgID, seatNumber).
		Updates(map[string]any{
			"status":             model.StatusCheckedOut,
			"session_start_time": nil,
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to close interval for seat %d: %w", seatNumber, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *gormStore) MarkCheckedOut(ctx context.Context, orgID uuid.UUID, seatNumber int) error {
	err := s.db.WithContext(ctx).
		Model(&model.SeatSession{}).
		Where("org_id = ? AND seat_number = ?", orgID, seatNumber).
		Update("status", model.StatusCheckedOut).Error
	if err != nil {
		return fmt.Errorf("failed to mark seat %d checked out: %w", seatNumber, err)
	}
	return nil
}

func (s *gormStore) Delete(ctx context.Context, orgID uuid.UUID, seatNumber int) error {
	err := s.db.WithContext(ctx).
		Where("org_id = ? AND seat_number = ?", orgID, seatNumber).
		Delete(&model.SeatSession{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete seat session %d: %w", seatNumber, err)
	}
	return nil
}

func (s *gormStore) FindStudent(ctx context.Context, orgID, studentID uuid.UUID) (*model.Student, error) {
	var student model.Student
	err := s.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, studentID).
		First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch student %s: %w", studentID, err)
	}
	return &student, nil
}

// AddStudentTag set-adds a tag to the student's tag list. Adding a tag that
// is already present is a no-op.
func (s *gormStore) AddStudentTag(ctx context.Context, orgID, studentID uuid.UUID, tag string) error {
	student, err := s.FindStudent(ctx, orgID, studentID)
	if err != nil {
		return err
	}
	if student.HasTag(tag) {
		return nil
	}
	student.Tags = append(student.Tags, tag)
	if err := s.db.WithContext(ctx).
		Model(&model.Student{}).
		Where("org_id = ? AND id = ?", orgID, studentID).
		Update("tags", student.Tags).Error; err != nil {
		return fmt.Errorf("failed to add tag %q to student %s: %w", tag, studentID, err)
	}
	return nil
}
