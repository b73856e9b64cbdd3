package outing

import (
	"context"
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
	require.NoError(t, db.AutoMigrate(&model.OutingRecord{}, &model.LiveState{}))
	return db
}

func TestCloseOpen(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	t.Run("closes open outing and resets live state", func(t *testing.T) {
		db := newTestDB(t)
		orgID, studentID := uuid.New(), uuid.New()
		outingID := uuid.New()
		require.NoError(t, db.Create(&model.OutingRecord{
			ID: outingID, OrgID: orgID, StudentID: studentID,
			Date: "2025-03-10", OutingTime: now.Add(-25*time.Minute - 30*time.Second),
			Status: model.OutingOut,
		}).Error)
		require.NoError(t, db.Create(&model.LiveState{
			ID: uuid.New(), OrgID: orgID, StudentID: studentID, Date: "2025-03-10",
			IsOut: true, CurrentOutingID: &outingID,
		}).Error)

		require.NoError(t, New(db).CloseOpen(ctx, orgID, studentID, now))

		var record model.OutingRecord
		require.NoError(t, db.First(&record, "id = ?", outingID).Error)
		require.NotNil(t, record.ReturnTime)
		assert.Equal(t, 25, record.DurationMinutes, "partial minutes round down")
		assert.Equal(t, model.OutingReturned, record.Status)

		var state model.LiveState
		require.NoError(t, db.First(&state, "student_id = ?", studentID).Error)
		assert.False(t, state.IsOut)
		assert.Nil(t, state.CurrentOutingID)
	})

	t.Run("resets stale live state without an open outing", func(t *testing.T) {
		db := newTestDB(t)
		orgID, studentID := uuid.New(), uuid.New()
		require.NoError(t, db.Create(&model.LiveState{
			ID: uuid.New(), OrgID: orgID, StudentID: studentID, Date: "2025-03-10",
			IsOut: true,
		}).Error)

		require.NoError(t, New(db).CloseOpen(ctx, orgID, studentID, now))

		var state model.LiveState
		require.NoError(t, db.First(&state, "student_id = ?", studentID).Error)
		assert.False(t, state.IsOut)
	})

	t.Run("leaves closed and other-day outings alone", func(t *testing.T) {
		db := newTestDB(t)
		orgID, studentID := uuid.New(), uuid.New()
		returned := now.Add(-time.Hour)
		require.NoError(t, db.Create(&model.OutingRecord{
			ID: uuid.New(), OrgID: orgID, StudentID: studentID,
			Date: "2025-03-10", OutingTime: now.Add(-2 * time.Hour),
			ReturnTime: &returned, DurationMinutes: 60, Status: model.OutingReturned,
		}).Error)
		yesterdayID := uuid.New()
		require.NoError(t, db.Create(&model.OutingRecord{
			ID: yesterdayID, OrgID: orgID, StudentID: studentID,
			Date: "2025-03-09", OutingTime: now.Add(-24 * time.Hour),
			Status: model.OutingOut,
		}).Error)

		require.NoError(t, New(db).CloseOpen(ctx, orgID, studentID, now))

		var record model.OutingRecord
		require.NoError(t, db.First(&record, "id = ?", yesterdayID).Error)
		assert.Nil(t, record.ReturnTime, "yesterday's open outing is out of scope")
	})
}
