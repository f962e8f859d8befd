package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/retry"

	mocks "github.com/aliskhannn/plant-watering/internal/mocks/service/reminder"
	"github.com/aliskhannn/plant-watering/internal/model"
	"github.com/aliskhannn/plant-watering/internal/rabbitmq/queue"
)

var (
	active   = []string{model.StatusPending, model.StatusQueued}
	settings = Settings{Channel: "email", To: "me@example.com", Retries: 3, SweepSize: 10}
	fixedNow = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
)

type fixture struct {
	repo   *mocks.MockreminderRepository
	queue  *mocks.MockreminderQueue
	cache  *mocks.Mockcache
	sender *mocks.MockSender
	svc    *Service
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := fixture{
		repo:   mocks.NewMockreminderRepository(ctrl),
		queue:  mocks.NewMockreminderQueue(ctrl),
		cache:  mocks.NewMockcache(ctrl),
		sender: mocks.NewMockSender(ctrl),
	}
	f.svc = NewService(f.repo, f.queue, map[string]Sender{"email": f.sender}, f.cache, settings)
	f.svc.now = func() time.Time { return fixedNow }

	return f
}

func TestService_RequestPermission(t *testing.T) {
	f := newFixture(t)

	perm, err := f.svc.RequestPermission(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.PermissionGranted, perm)

	noRecipient := NewService(nil, nil, map[string]Sender{"email": f.sender}, nil, Settings{Channel: "email"})
	perm, err = noRecipient.RequestPermission(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.PermissionDenied, perm)

	noSender := NewService(nil, nil, nil, nil, Settings{Channel: "telegram", To: "42"})
	perm, err = noSender.RequestPermission(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.PermissionDenied, perm)
}

func TestService_ConfigureChannel(t *testing.T) {
	f := newFixture(t)

	f.queue.EXPECT().Declare().Return(nil)
	assert.NoError(t, f.svc.ConfigureChannel(context.Background()))

	f.queue.EXPECT().Declare().Return(errors.New("channel closed"))
	assert.ErrorContains(t, f.svc.ConfigureChannel(context.Background()), "channel closed")
}

func TestService_ScheduleOneShot_Future(t *testing.T) {
	f := newFixture(t)

	plantID, id := uuid.New(), uuid.New()
	at := fixedNow.Add(48 * time.Hour)

	want := model.Reminder{
		PlantID: plantID,
		Title:   "Watering reminder",
		Body:    "Your plant Fern needs watering now!",
		SendAt:  at,
		Status:  model.StatusPending,
		Retries: 3,
		Channel: "email",
		To:      "me@example.com",
	}

	f.repo.EXPECT().CreateReminder(gomock.Any(), want).Return(id, nil)
	f.cache.EXPECT().SetWithRetry(gomock.Any(), settings.Strategy, id.String(), model.StatusPending).Return(nil)

	r, err := f.svc.ScheduleOneShot(context.Background(), model.OneShot{
		PlantID: plantID,
		Title:   want.Title,
		Body:    want.Body,
		Trigger: model.Trigger{At: at},
	})
	require.NoError(t, err)
	assert.Equal(t, id, r.ID)
	assert.Equal(t, model.StatusPending, r.Status)
	assert.Equal(t, at, r.SendAt)
	assert.False(t, r.Immediate)
}

func TestService_ScheduleOneShot_ImmediatePublishes(t *testing.T) {
	f := newFixture(t)

	plantID, id := uuid.New(), uuid.New()

	gomock.InOrder(
		f.repo.EXPECT().CreateReminder(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, r model.Reminder) (uuid.UUID, error) {
				assert.True(t, r.Immediate)
				assert.Equal(t, fixedNow, r.SendAt)
				return id, nil
			},
		),
		f.cache.EXPECT().SetWithRetry(gomock.Any(), gomock.Any(), id.String(), model.StatusPending).Return(nil),
		f.repo.EXPECT().TransitionStatus(gomock.Any(), id, []string{model.StatusPending}, model.StatusQueued).Return(true, nil),
		f.queue.EXPECT().Publish(gomock.Any(), settings.Strategy).DoAndReturn(
			func(msg queue.ReminderMessage, _ retry.Strategy) error {
				assert.Equal(t, id, msg.ID)
				assert.Equal(t, plantID, msg.PlantID)
				assert.Equal(t, "me@example.com", msg.To)
				return nil
			},
		),
		f.cache.EXPECT().SetWithRetry(gomock.Any(), gomock.Any(), id.String(), model.StatusQueued).Return(nil),
	)

	r, err := f.svc.ScheduleOneShot(context.Background(), model.OneShot{
		PlantID: plantID,
		Trigger: model.Trigger{Immediate: true},
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusQueued, r.Status)
}

func TestService_ScheduleOneShot_PublishFailureRevertsToPending(t *testing.T) {
	f := newFixture(t)

	id := uuid.New()

	f.repo.EXPECT().CreateReminder(gomock.Any(), gomock.Any()).Return(id, nil)
	f.cache.EXPECT().SetWithRetry(gomock.Any(), gomock.Any(), id.String(), model.StatusPending).Return(nil)
	f.repo.EXPECT().TransitionStatus(gomock.Any(), id, []string{model.StatusPending}, model.StatusQueued).Return(true, nil)
	f.queue.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
	f.repo.EXPECT().TransitionStatus(gomock.Any(), id, []string{model.StatusQueued}, model.StatusPending).Return(true, nil)

	r, err := f.svc.ScheduleOneShot(context.Background(), model.OneShot{
		PlantID: uuid.New(),
		Trigger: model.Trigger{Immediate: true},
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, r.Status)
}

func TestService_ScheduleOneShot_CreateError(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().CreateReminder(gomock.Any(), gomock.Any()).Return(uuid.Nil, errors.New("db error"))

	_, err := f.svc.ScheduleOneShot(context.Background(), model.OneShot{PlantID: uuid.New()})
	assert.ErrorContains(t, err, "create reminder")
}

func TestService_ScheduleOneShot_CacheFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)

	id := uuid.New()

	f.repo.EXPECT().CreateReminder(gomock.Any(), gomock.Any()).Return(id, nil)
	f.cache.EXPECT().SetWithRetry(gomock.Any(), gomock.Any(), id.String(), model.StatusPending).Return(errors.New("redis down"))

	r, err := f.svc.ScheduleOneShot(context.Background(), model.OneShot{
		PlantID: uuid.New(),
		Trigger: model.Trigger{At: fixedNow.Add(time.Hour)},
	})
	require.NoError(t, err)
	assert.Equal(t, id, r.ID)
}

func TestService_Cancel(t *testing.T) {
	f := newFixture(t)

	id := uuid.New()

	f.repo.EXPECT().TransitionStatus(gomock.Any(), id, active, model.StatusCancelled).Return(true, nil)
	f.cache.EXPECT().SetWithRetry(gomock.Any(), gomock.Any(), id.String(), model.StatusCancelled).Return(nil)

	assert.NoError(t, f.svc.Cancel(context.Background(), id))
}

func TestService_Cancel_AlreadyInactive(t *testing.T) {
	f := newFixture(t)

	id := uuid.New()

	f.repo.EXPECT().TransitionStatus(gomock.Any(), id, active, model.StatusCancelled).Return(false, nil)

	assert.NoError(t, f.svc.Cancel(context.Background(), id))
}

func TestService_Cancel_Error(t *testing.T) {
	f := newFixture(t)

	id := uuid.New()

	f.repo.EXPECT().TransitionStatus(gomock.Any(), id, active, model.StatusCancelled).Return(false, errors.New("db error"))

	assert.ErrorContains(t, f.svc.Cancel(context.Background(), id), "cancel reminder")
}

func TestService_Pending(t *testing.T) {
	f := newFixture(t)

	pending := []model.Reminder{{ID: uuid.New(), PlantID: uuid.New(), Status: model.StatusPending}}
	f.repo.EXPECT().ListPendingReminders(gomock.Any()).Return(pending, nil)

	got, err := f.svc.Pending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, pending, got)
}

func TestService_DispatchDue(t *testing.T) {
	f := newFixture(t)

	ok, broken := uuid.New(), uuid.New()
	due := []model.Reminder{
		{ID: ok, Status: model.StatusPending},
		{ID: broken, Status: model.StatusPending},
	}

	f.repo.EXPECT().ListDueReminders(gomock.Any(), fixedNow, settings.SweepSize).Return(due, nil)

	f.repo.EXPECT().TransitionStatus(gomock.Any(), ok, []string{model.StatusPending}, model.StatusQueued).Return(true, nil)
	f.queue.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(msg queue.ReminderMessage, _ retry.Strategy) error {
			if msg.ID == broken {
				return errors.New("broker down")
			}
			return nil
		},
	).Times(2)
	f.cache.EXPECT().SetWithRetry(gomock.Any(), gomock.Any(), ok.String(), model.StatusQueued).Return(nil)

	f.repo.EXPECT().TransitionStatus(gomock.Any(), broken, []string{model.StatusPending}, model.StatusQueued).Return(true, nil)
	f.repo.EXPECT().TransitionStatus(gomock.Any(), broken, []string{model.StatusQueued}, model.StatusPending).Return(true, nil)

	n, err := f.svc.DispatchDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestService_DispatchDue_SkipsCancelledInBetween(t *testing.T) {
	f := newFixture(t)

	id := uuid.New()
	f.repo.EXPECT().ListDueReminders(gomock.Any(), fixedNow, settings.SweepSize).
		Return([]model.Reminder{{ID: id, Status: model.StatusPending}}, nil)
	f.repo.EXPECT().TransitionStatus(gomock.Any(), id, []string{model.StatusPending}, model.StatusQueued).Return(false, nil)

	n, err := f.svc.DispatchDue(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestService_GetReminderStatusByID_CacheHit(t *testing.T) {
	f := newFixture(t)

	id := uuid.New()
	strategy := retry.Strategy{}

	f.cache.EXPECT().GetWithRetry(gomock.Any(), strategy, id.String()).Return(model.StatusQueued, nil)

	status, err := f.svc.GetReminderStatusByID(context.Background(), strategy, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusQueued, status)
}

func TestService_GetReminderStatusByID_CacheMiss(t *testing.T) {
	f := newFixture(t)

	id := uuid.New()
	strategy := retry.Strategy{}

	f.cache.EXPECT().GetWithRetry(gomock.Any(), strategy, id.String()).Return("", redis.Nil)
	f.repo.EXPECT().GetReminderStatusByID(gomock.Any(), id).Return(model.StatusSent, nil)
	f.cache.EXPECT().SetWithRetry(gomock.Any(), strategy, id.String(), model.StatusSent).Return(nil)

	status, err := f.svc.GetReminderStatusByID(context.Background(), strategy, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSent, status)
}

func TestService_GetReminderStatusByID_CacheErrorFallsBack(t *testing.T) {
	f := newFixture(t)

	id := uuid.New()
	strategy := retry.Strategy{}

	f.cache.EXPECT().GetWithRetry(gomock.Any(), strategy, id.String()).Return("", errors.New("redis down"))
	f.repo.EXPECT().GetReminderStatusByID(gomock.Any(), id).Return(model.StatusCancelled, nil)
	f.cache.EXPECT().SetWithRetry(gomock.Any(), strategy, id.String(), model.StatusCancelled).Return(nil)

	status, err := f.svc.GetReminderStatusByID(context.Background(), strategy, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, status)
}

func TestService_ClaimReminder(t *testing.T) {
	f := newFixture(t)

	id := uuid.New()
	strategy := retry.Strategy{}

	f.repo.EXPECT().TransitionStatus(gomock.Any(), id, active, model.StatusSending).Return(true, nil)
	f.cache.EXPECT().SetWithRetry(gomock.Any(), strategy, id.String(), model.StatusSending).Return(nil)

	won, err := f.svc.ClaimReminder(context.Background(), strategy, id)
	require.NoError(t, err)
	assert.True(t, won)

	f.repo.EXPECT().TransitionStatus(gomock.Any(), id, active, model.StatusSending).Return(false, nil)

	won, err = f.svc.ClaimReminder(context.Background(), strategy, id)
	require.NoError(t, err)
	assert.False(t, won)
}

func TestService_Send(t *testing.T) {
	f := newFixture(t)

	f.sender.EXPECT().Send("me@example.com", "Watering reminder", "water it").Return(nil)
	assert.NoError(t, f.svc.Send("email", "me@example.com", "Watering reminder", "water it"))

	assert.ErrorContains(t, f.svc.Send("pigeon", "me", "s", "b"), "unknown channel")
}

func TestService_SetStatus(t *testing.T) {
	f := newFixture(t)

	id := uuid.New()
	strategy := retry.Strategy{}

	f.repo.EXPECT().UpdateStatus(gomock.Any(), id, model.StatusSent).Return(nil)
	f.cache.EXPECT().SetWithRetry(gomock.Any(), strategy, id.String(), model.StatusSent).Return(nil)

	assert.NoError(t, f.svc.SetStatus(context.Background(), strategy, id, model.StatusSent))
}

func TestService_GetAllReminders(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().GetAllReminders(gomock.Any()).Return(nil, errors.New("db error"))

	_, err := f.svc.GetAllReminders(context.Background())
	assert.ErrorContains(t, err, "get all reminders")
}

func TestService_ReleaseReminder(t *testing.T) {
	f := newFixture(t)

	id := uuid.New()
	strategy := retry.Strategy{}

	f.repo.EXPECT().TransitionStatus(gomock.Any(), id, []string{model.StatusSending}, model.StatusPending).Return(true, nil)
	f.cache.EXPECT().SetWithRetry(gomock.Any(), strategy, id.String(), model.StatusPending).Return(nil)
	assert.NoError(t, f.svc.ReleaseReminder(context.Background(), strategy, id, model.StatusSending))

	// a reminder cancelled while waiting stays cancelled
	f.repo.EXPECT().TransitionStatus(gomock.Any(), id, []string{model.StatusQueued}, model.StatusPending).Return(false, nil)
	assert.NoError(t, f.svc.ReleaseReminder(context.Background(), strategy, id, model.StatusQueued))
}
