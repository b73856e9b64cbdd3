package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"studyroom-backend/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.NotificationJob{}))
	return db
}

func TestEnqueue(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("queues a pending checkout job", func(t *testing.T) {
		db := newTestDB(t)
		orgID, studentID := uuid.New(), uuid.New()

		require.NoError(t, New(db).Enqueue(ctx, orgID, studentID, 5, model.StatusCheckedOut, now))

		var job model.NotificationJob
		require.NoError(t, db.First(&job, "org_id = ?", orgID).Error)
		assert.Equal(t, model.NotifyCheckout, job.Type)
		assert.Equal(t, model.NotifyPending, job.Status)

		var payload struct {
			StudentID  uuid.UUID `json:"student_id"`
			SeatNumber int       `json:"seat_number"`
		}
		require.NoError(t, json.Unmarshal(job.Payload, &payload))
		assert.Equal(t, studentID, payload.StudentID)
		assert.Equal(t, 5, payload.SeatNumber)
	})

	t.Run("maps check-in transition to checkin type", func(t *testing.T) {
		db := newTestDB(t)
		orgID := uuid.New()

		require.NoError(t, New(db).Enqueue(ctx, orgID, uuid.New(), 1, model.StatusCheckedIn, now))

		var job model.NotificationJob
		require.NoError(t, db.First(&job, "org_id = ?", orgID).Error)
		assert.Equal(t, model.NotifyCheckin, job.Type)
	})

	t.Run("rejects unknown transition", func(t *testing.T) {
		db := newTestDB(t)
		err := New(db).Enqueue(ctx, uuid.New(), uuid.New(), 1, model.SeatStatus("vacant"), now)
		assert.Error(t, err)

		var count int64
		db.Model(&model.NotificationJob{}).Count(&count)
		assert.Equal(t, int64(0), count)
	})
}
