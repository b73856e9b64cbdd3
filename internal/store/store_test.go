package store

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
	require.NoError(t, db.AutoMigrate(&model.SeatSession{}, &model.Student{}, &model.StudyRoomPass{}))
	return db
}

func seedStudent(t *testing.T, db *gorm.DB, orgID uuid.UUID, name string) uuid.UUID {
	studentID := uuid.New()
	require.NoError(t, db.Create(&model.Student{
		ID: studentID, OrgID: orgID, Name: name, Grade: "10", School: "Hanbit High",
	}).Error)
	return studentID
}

func TestUpsert(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts then swaps on the same seat", func(t *testing.T) {
		db := newTestDB(t)
		st := NewGormStore(db)
		orgID := uuid.New()
		first := seedStudent(t, db, orgID, "A")
		second := seedStudent(t, db, orgID, "B")

		_, err := st.Upsert(ctx, &model.SeatSession{
			OrgID: orgID, SeatNumber: 7, StudentID: &first, Status: model.StatusCheckedOut,
		})
		require.NoError(t, err)

		session, err := st.Upsert(ctx, &model.SeatSession{
			OrgID: orgID, SeatNumber: 7, StudentID: &second, Status: model.StatusCheckedOut,
		})
		require.NoError(t, err)
		assert.Equal(t, second, *session.StudentID)

		var count int64
		db.Model(&model.SeatSession{}).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("same seat number in another org is independent", func(t *testing.T) {
		db := newTestDB(t)
		st := NewGormStore(db)
		orgA, orgB := uuid.New(), uuid.New()
		studentA := seedStudent(t, db, orgA, "A")

		_, err := st.Upsert(ctx, &model.SeatSession{
			OrgID: orgA, SeatNumber: 7, StudentID: &studentA, Status: model.StatusCheckedOut,
		})
		require.NoError(t, err)
		_, err = st.Upsert(ctx, &model.SeatSession{
			OrgID: orgB, SeatNumber: 7, Status: model.StatusCheckedOut,
		})
		require.NoError(t, err)

		var count int64
		db.Model(&model.SeatSession{}).Count(&count)
		assert.Equal(t, int64(2), count)
	})
}

func TestMarkCheckedIn(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	db := newTestDB(t)
	st := NewGormStore(db)
	orgID := uuid.New()
	studentID := seedStudent(t, db, orgID, "A")
	_, err := st.Upsert(ctx, &model.SeatSession{
		OrgID: orgID, SeatNumber: 7, StudentID: &studentID, Status: model.StatusCheckedOut,
	})
	require.NoError(t, err)

	require.NoError(t, st.MarkCheckedIn(ctx, orgID, 7, t0))
	session, err := st.Get(ctx, orgID, 7)
	require.NoError(t, err)
	require.NotNil(t, session.CheckInTime)
	assert.True(t, session.CheckInTime.Equal(t0))

	// A later check-in reopens the interval but keeps the first arrival.
	later := t0.Add(2 * time.Hour)
	_, err = st.CloseInterval(ctx, orgID, 7)
	require.NoError(t, err)
	require.NoError(t, st.MarkCheckedIn(ctx, orgID, 7, later))

	session, err = st.Get(ctx, orgID, 7)
	require.NoError(t, err)
	assert.True(t, session.CheckInTime.Equal(t0))
	require.NotNil(t, session.SessionStartTime)
	assert.True(t, session.SessionStartTime.Equal(later))
}

func TestCloseInterval(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	db := newTestDB(t)
	st := NewGormStore(db)
	orgID := uuid.New()
	studentID := seedStudent(t, db, orgID, "A")
	_, err := st.Upsert(ctx, &model.SeatSession{
		OrgID: orgID, SeatNumber: 7, StudentID: &studentID, Status: model.StatusCheckedOut,
	})
	require.NoError(t, err)
	require.NoError(t, st.MarkCheckedIn(ctx, orgID, 7, t0))

	closed, err := st.CloseInterval(ctx, orgID, 7)
	require.NoError(t, err)
	assert.True(t, closed)

	session, err := st.Get(ctx, orgID, 7)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCheckedOut, session.Status)
	assert.Nil(t, session.SessionStartTime)
	require.NotNil(t, session.CheckInTime, "close must not clear the first arrival")

	closed, err = st.CloseInterval(ctx, orgID, 7)
	require.NoError(t, err)
	assert.False(t, closed, "second close finds no open interval")
}

func TestGetAndDelete(t *testing.T) {
	ctx := context.Background()

	db := newTestDB(t)
	st := NewGormStore(db)
	orgID := uuid.New()

	_, err := st.Get(ctx, orgID, 99)
	assert.ErrorIs(t, err, ErrNotFound)

	studentID := seedStudent(t, db, orgID, "A")
	_, err = st.Upsert(ctx, &model.SeatSession{
		OrgID: orgID, SeatNumber: 99, StudentID: &studentID, Status: model.StatusCheckedOut,
	})
	require.NoError(t, err)

	require.NoError(t, st.Delete(ctx, orgID, 99))
	_, err = st.Get(ctx, orgID, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList(t *testing.T) {
	ctx := context.Background()

	db := newTestDB(t)
	st := NewGormStore(db)
	orgID := uuid.New()
	studentID := seedStudent(t, db, orgID, "Choi Yuna")
	require.NoError(t, db.Create(&model.StudyRoomPass{
		ID: uuid.New(), StudentID: studentID,
		PassType: model.PassTypeHours, Status: model.PassStatusActive,
		TotalAmount: 10, RemainingAmount: 6.5,
	}).Error)
	require.NoError(t, db.Create(&model.StudyRoomPass{
		ID: uuid.New(), StudentID: studentID,
		PassType: model.PassTypeDays, Status: model.PassStatusActive,
		TotalAmount: 30, RemainingAmount: 30,
	}).Error)

	_, err := st.Upsert(ctx, &model.SeatSession{
		OrgID: orgID, SeatNumber: 2, StudentID: &studentID, Status: model.StatusCheckedOut,
	})
	require.NoError(t, err)
	_, err = st.Upsert(ctx, &model.SeatSession{
		OrgID: orgID, SeatNumber: 1, Status: model.StatusCheckedOut,
	})
	require.NoError(t, err)

	views, err := st.List(ctx, orgID)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, 1, views[0].SeatNumber, "ordered by seat number")
	assert.Nil(t, views[0].StudentID)
	assert.Nil(t, views[0].RemainingHours)

	assert.Equal(t, 2, views[1].SeatNumber)
	require.NotNil(t, views[1].StudentName)
	assert.Equal(t, "Choi Yuna", *views[1].StudentName)
	require.NotNil(t, views[1].RemainingHours)
	assert.InDelta(t, 6.5, *views[1].RemainingHours, 1e-9, "only hours passes count toward the balance")
}

func TestAddStudentTag(t *testing.T) {
	ctx := context.Background()

	db := newTestDB(t)
	st := NewGormStore(db)
	orgID := uuid.New()
	studentID := seedStudent(t, db, orgID, "A")

	require.NoError(t, st.AddStudentTag(ctx, orgID, studentID, model.TagStudyRoom))
	require.NoError(t, st.AddStudentTag(ctx, orgID, studentID, model.TagStudyRoom))

	student, err := st.FindStudent(ctx, orgID, studentID)
	require.NoError(t, err)
	assert.Equal(t, []string{model.TagStudyRoom}, []string(student.Tags))

	err = st.AddStudentTag(ctx, orgID, uuid.New(), model.TagStudyRoom)
	assert.ErrorIs(t, err, ErrNotFound)
}
