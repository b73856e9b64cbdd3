package seats

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studyroom-backend/internal/attendance"
	"studyroom-backend/internal/ledger"
	"studyroom-backend/internal/model"
	"studyroom-backend/internal/notify"
	"studyroom-backend/internal/outing"
	"studyroom-backend/internal/stats"
	"studyroom-backend/internal/store"
	"studyroom-backend/internal/timeutil"
)

// Service is the seat session state machine. It owns the primary SeatSession
// writes and drives the derived effects (balance, stats, outing, attendance,
// notification) behind per-effect failure boundaries.
type Service struct {
	store      store.Store
	ledger     *ledger.Ledger
	stats      *stats.Aggregator
	attendance *attendance.Deriver
	presence   *attendance.PresenceLog
	outings    *outing.Closer
	notify     *notify.Enqueuer

	now func() time.Time
}

// NewService wires the orchestrator and its effect handlers on top of the
// given store and database. graceMinutes <= 0 selects the attendance default.
func NewService(st store.Store, db *gorm.DB, graceMinutes int) *Service {
	return &Service{
		store:      st,
		ledger:     ledger.New(db),
		stats:      stats.New(db),
		attendance: attendance.NewDeriver(db, graceMinutes),
		presence:   attendance.NewPresenceLog(db),
		outings:    outing.New(db),
		notify:     notify.New(db),
		now:        time.Now,
	}
}

// EffectResult reports the outcome of one derived effect. Failures never
// affect the primary result; they are surfaced here for observability only.
type EffectResult struct {
	Name string `json:"name"`
	Err  string `json:"error,omitempty"`
}

// OK reports whether the effect completed without error.
func (r EffectResult) OK() bool { return r.Err == "" }

type effect struct {
	name string
	run  func(ctx context.Context) error
}

func (s *Service) runEffects(ctx context.Context, orgID uuid.UUID, studentID *uuid.UUID, seatNumber int, op string, effects []effect) []EffectResult {
	results := make([]EffectResult, 0, len(effects))
	for _, e := range effects {
		result := EffectResult{Name: e.name}
		if err := e.run(ctx); err != nil {
			result.Err = err.Error()
			sid := "none"
			if studentID != nil {
				sid = studentID.String()
			}
			log.Printf("seats: effect %s failed (org=%s student=%s seat=%d op=%s): %v",
				e.name, orgID, sid, seatNumber, op, err)
		}
		results = append(results, result)
	}
	return results
}

// Assign seats a student, swapping out any previous occupant. The session
// lands in checked_out with no open interval; the study-room tag is set-added
// to the student as a best-effort effect.
func (s *Service) Assign(ctx context.Context, orgID uuid.UUID, seatNumber int, studentID uuid.UUID, allocatedMinutes *int) (*model.SeatSession, []EffectResult, error) {
	if seatNumber <= 0 {
		return nil, nil, fmt.Errorf("%w: seat number must be positive", ErrInvalidInput)
	}
	if _, err := s.store.FindStudent(ctx, orgID, studentID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrStudentNotFound
		}
		return nil, nil, err
	}

	session, err := s.store.Upsert(ctx, &model.SeatSession{
		OrgID:            orgID,
		SeatNumber:       seatNumber,
		StudentID:        &studentID,
		Status:           model.StatusCheckedOut,
		AllocatedMinutes: allocatedMinutes,
	})
	if err != nil {
		return nil, nil, err
	}

	diags := s.runEffects(ctx, orgID, &studentID, seatNumber, "assign", []effect{
		{name: "student_tag", run: func(ctx context.Context) error {
			return s.store.AddStudentTag(ctx, orgID, studentID, model.TagStudyRoom)
		}},
	})
	return session, diags, nil
}

// SetStatus performs the check-in/check-out transition. A transition on an
// unknown seat lazily creates the session when a student id is supplied;
// without one it fails with ErrSeatNotFound. Derived effects run after the
// status write and never affect the returned session.
func (s *Service) SetStatus(ctx context.Context, orgID uuid.UUID, seatNumber int, status model.SeatStatus, studentID *uuid.UUID) (*model.SeatSession, []EffectResult, error) {
	if seatNumber <= 0 {
		return nil, nil, fmt.Errorf("%w: seat number must be positive", ErrInvalidInput)
	}
	if !status.Valid() {
		return nil, nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	session, err := s.store.Get(ctx, orgID, seatNumber)
	if errors.Is(err, store.ErrNotFound) {
		if studentID == nil {
			return nil, nil, ErrSeatNotFound
		}
		session = &model.SeatSession{
			OrgID:      orgID,
			SeatNumber: seatNumber,
			StudentID:  studentID,
			Status:     model.StatusCheckedOut,
		}
		if err := s.store.Create(ctx, session); err != nil {
			return nil, nil, err
		}
	} else if err != nil {
		return nil, nil, err
	}

	occupant := session.StudentID
	if occupant == nil {
		occupant = studentID
	}

	now := s.now()
	var diags []EffectResult

	switch status {
	case model.StatusCheckedIn:
		if err := s.store.MarkCheckedIn(ctx, orgID, seatNumber, now); err != nil {
			return nil, nil, err
		}
		if occupant != nil {
			sid := *occupant
			diags = s.runEffects(ctx, orgID, occupant, seatNumber, "check_in", []effect{
				{name: "attendance", run: func(ctx context.Context) error {
					return s.attendance.Upsert(ctx, orgID, sid, model.StatusCheckedIn, now)
				}},
				{name: "presence_log", run: func(ctx context.Context) error {
					return s.presence.LogCheckIn(ctx, orgID, sid, now)
				}},
				{name: "notification", run: func(ctx context.Context) error {
					return s.notify.Enqueue(ctx, orgID, sid, seatNumber, model.StatusCheckedIn, now)
				}},
			})
		}

	case model.StatusCheckedOut:
		var usedMinutes int
		var intervalStart time.Time
		if session.SessionStartTime != nil {
			intervalStart = *session.SessionStartTime
			usedMinutes = timeutil.CeilMinutes(intervalStart, now)
		}

		closed, err := s.store.CloseInterval(ctx, orgID, seatNumber)
		if err != nil {
			return nil, nil, err
		}
		if !closed {
			// Interval was already closed; still persist the status so a
			// checkout on a freshly assigned seat is not lost.
			if err := s.store.MarkCheckedOut(ctx, orgID, seatNumber); err != nil {
				return nil, nil, err
			}
		}

		if occupant != nil {
			sid := *occupant
			effects := make([]effect, 0, 6)
			// Accounting only when this call actually closed the interval;
			// a duplicate checkout must not deduct or accumulate twice.
			if closed && usedMinutes > 0 {
				usedHours := float64(usedMinutes) / 60
				effects = append(effects,
					effect{name: "balance", run: func(ctx context.Context) error {
						return s.ledger.Deduct(ctx, sid, usedHours)
					}},
					effect{name: "stats", run: func(ctx context.Context) error {
						return s.stats.Record(ctx, orgID, sid, usedMinutes, intervalStart)
					}},
				)
			}
			effects = append(effects,
				effect{name: "outing_close", run: func(ctx context.Context) error {
					return s.outings.CloseOpen(ctx, orgID, sid, now)
				}},
				effect{name: "attendance", run: func(ctx context.Context) error {
					return s.attendance.Upsert(ctx, orgID, sid, model.StatusCheckedOut, now)
				}},
				effect{name: "presence_log", run: func(ctx context.Context) error {
					return s.presence.LogCheckOut(ctx, orgID, sid, now)
				}},
				effect{name: "notification", run: func(ctx context.Context) error {
					return s.notify.Enqueue(ctx, orgID, sid, seatNumber, model.StatusCheckedOut, now)
				}},
			)
			diags = s.runEffects(ctx, orgID, occupant, seatNumber, "check_out", effects)
		}
	}

	updated, err := s.store.Get(ctx, orgID, seatNumber)
	if err != nil {
		return nil, nil, err
	}
	return updated, diags, nil
}

// Remove unassigns the seat with a hard delete. No derived effects run.
func (s *Service) Remove(ctx context.Context, orgID uuid.UUID, seatNumber int) error {
	if seatNumber <= 0 {
		return fmt.Errorf("%w: seat number must be positive", ErrInvalidInput)
	}
	return s.store.Delete(ctx, orgID, seatNumber)
}

// List returns all seat sessions of the organization with student display
// fields and remaining pass hours joined in.
func (s *Service) List(ctx context.Context, orgID uuid.UUID) ([]store.SeatView, error) {
	return s.store.List(ctx, orgID)
}
