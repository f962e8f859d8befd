package reminder

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/dbpg"

	"github.com/aliskhannn/plant-watering/internal/model"
)

var columns = []string{
	"id", "plant_id", "title", "body", "send_at", "immediate", "status", "retries", "to", "channel", "created_at", "updated_at",
}

func setupMockDB(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open mock db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(&dbpg.DB{Master: db}), mock
}

func testReminder() model.Reminder {
	return model.Reminder{
		PlantID: uuid.New(),
		Title:   "Watering reminder",
		Body:    "Your plant Fern needs watering now!",
		SendAt:  time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC),
		Status:  model.StatusPending,
		Retries: 3,
		To:      "me@example.com",
		Channel: "email",
	}
}

func TestCreateReminder(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()
	r := testReminder()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO reminders`)).
		WithArgs(r.PlantID, r.Title, r.Body, r.SendAt, r.Immediate, r.Status, r.Retries, r.To, r.Channel).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))

	got, err := repo.CreateReminder(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReminder_AlreadyPending(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO reminders`)).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "reminders_one_active_per_plant"})

	_, err := repo.CreateReminder(context.Background(), testReminder())
	assert.ErrorIs(t, err, ErrReminderAlreadyPending)
}

func TestCreateReminder_Error(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO reminders`)).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.CreateReminder(context.Background(), testReminder())
	assert.ErrorContains(t, err, "failed to create reminder")
	assert.NotErrorIs(t, err, ErrReminderAlreadyPending)
}

func TestUpdateStatus(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE reminders`)).
		WithArgs(model.StatusSent, id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.UpdateStatus(context.Background(), id, model.StatusSent))

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE reminders`)).
		WithArgs(model.StatusSent, id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), id, model.StatusSent), ErrReminderNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionStatus(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()
	from := []string{model.StatusPending, model.StatusQueued}

	mock.ExpectExec(regexp.QuoteMeta(`status = ANY($3)`)).
		WithArgs(model.StatusSending, id, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.TransitionStatus(context.Background(), id, from, model.StatusSending)
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectExec(regexp.QuoteMeta(`status = ANY($3)`)).
		WithArgs(model.StatusSending, id, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err = repo.TransitionStatus(context.Background(), id, from, model.StatusSending)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReminderStatusByID(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(model.StatusQueued))

	status, err := repo.GetReminderStatusByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusQueued, status)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"status"}))

	_, err = repo.GetReminderStatusByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrReminderNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllReminders(t *testing.T) {
	repo, mock := setupMockDB(t)

	now := time.Now()
	id, plantID := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY send_at DESC`)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(id.String(), plantID.String(), "t", "b", now, true, model.StatusSent, 3, "me@example.com", "email", now, now))

	reminders, err := repo.GetAllReminders(context.Background())
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, id, reminders[0].ID)
	assert.Equal(t, plantID, reminders[0].PlantID)
	assert.True(t, reminders[0].Immediate)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllReminders_Empty(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM reminders`)).WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetAllReminders(context.Background())
	assert.ErrorIs(t, err, ErrNoRemindersFound)
}

func TestListPendingReminders(t *testing.T) {
	repo, mock := setupMockDB(t)

	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE status IN ('pending', 'queued')`)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(uuid.New().String(), uuid.New().String(), "t", "b", now, false, model.StatusPending, 3, "me", "email", now, now).
			AddRow(uuid.New().String(), uuid.New().String(), "t", "b", now, true, model.StatusQueued, 3, "me", "email", now, now))

	reminders, err := repo.ListPendingReminders(context.Background())
	require.NoError(t, err)
	assert.Len(t, reminders, 2)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListDueReminders(t *testing.T) {
	repo, mock := setupMockDB(t)

	now := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE status = 'pending' AND send_at <= $1`)).
		WithArgs(now, 10).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(uuid.New().String(), uuid.New().String(), "t", "b", now, false, model.StatusPending, 3, "me", "email", now, now))

	reminders, err := repo.ListDueReminders(context.Background(), now, 10)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, model.StatusPending, reminders[0].Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}
