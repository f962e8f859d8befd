// Package reminder implements the notification collaborator of the reminder
// scheduler as a durable dispatcher: reminders are persisted, their status is
// cached in Redis and due reminders are published to RabbitMQ for delivery.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/plant-watering/internal/model"
	"github.com/aliskhannn/plant-watering/internal/rabbitmq/queue"
)

//go:generate mockgen -source=service.go -destination=../../mocks/service/reminder/mock.go -package=mocks

type reminderRepository interface {
	CreateReminder(context.Context, model.Reminder) (uuid.UUID, error)
	UpdateStatus(context.Context, uuid.UUID, string) error
	TransitionStatus(ctx context.Context, id uuid.UUID, from []string, to string) (bool, error)
	GetReminderStatusByID(context.Context, uuid.UUID) (string, error)
	GetAllReminders(context.Context) ([]model.Reminder, error)
	ListPendingReminders(context.Context) ([]model.Reminder, error)
	ListDueReminders(ctx context.Context, now time.Time, limit int) ([]model.Reminder, error)
}

type reminderQueue interface {
	Declare() error
	Publish(msg queue.ReminderMessage, strategy retry.Strategy) error
}

type cache interface {
	SetWithRetry(ctx context.Context, strategy retry.Strategy, key string, value interface{}) error
	GetWithRetry(ctx context.Context, strategy retry.Strategy, key string) (string, error)
}

// Sender delivers a reminder through one channel.
type Sender interface {
	Send(to, subject, body string) error
}

// Settings addresses the reminders created by the service.
type Settings struct {
	Channel   string         // sender key used for new reminders
	To        string         // recipient of new reminders
	Retries   int            // delivery attempts recorded on new reminders
	SweepSize int            // max reminders published by one DispatchDue call
	Strategy  retry.Strategy // used where the caller passes no strategy
}

type Service struct {
	repo     reminderRepository
	queue    reminderQueue
	senders  map[string]Sender
	cache    cache
	settings Settings
	now      func() time.Time
}

func NewService(
	repo reminderRepository,
	queue reminderQueue,
	senders map[string]Sender,
	cache cache,
	settings Settings,
) *Service {
	if settings.SweepSize <= 0 {
		settings.SweepSize = 100
	}

	return &Service{
		repo:     repo,
		queue:    queue,
		senders:  senders,
		cache:    cache,
		settings: settings,
		now:      time.Now,
	}
}

// RequestPermission reports whether reminders can be delivered at all: the
// configured channel needs a sender and a recipient.
func (s *Service) RequestPermission(_ context.Context) (model.Permission, error) {
	if _, ok := s.senders[s.settings.Channel]; !ok || s.settings.To == "" {
		return model.PermissionDenied, nil
	}

	return model.PermissionGranted, nil
}

// ConfigureChannel declares the broker topology reminders are delivered through.
func (s *Service) ConfigureChannel(_ context.Context) error {
	if err := s.queue.Declare(); err != nil {
		return fmt.Errorf("declare reminder queue: %w", err)
	}

	return nil
}

// ScheduleOneShot persists a pending reminder for the request. Immediate
// reminders are published right away; future ones are left to DispatchDue.
func (s *Service) ScheduleOneShot(ctx context.Context, req model.OneShot) (model.Reminder, error) {
	r := model.Reminder{
		PlantID:   req.PlantID,
		Title:     req.Title,
		Body:      req.Body,
		SendAt:    req.Trigger.At,
		Immediate: req.Trigger.Immediate,
		Status:    model.StatusPending,
		Retries:   s.settings.Retries,
		Channel:   s.settings.Channel,
		To:        s.settings.To,
	}
	if r.Immediate {
		r.SendAt = s.now()
	}

	id, err := s.repo.CreateReminder(ctx, r)
	if err != nil {
		return model.Reminder{}, fmt.Errorf("create reminder: %w", err)
	}
	r.ID = id

	s.cacheStatus(ctx, s.settings.Strategy, id, r.Status)

	if r.Immediate {
		r.Status = s.publish(ctx, r)
	}

	return r, nil
}

// Cancel cancels a pending or queued reminder. Cancelling a reminder that
// already fired or was cancelled is a no-op.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.TransitionStatus(
		ctx, id, []string{model.StatusPending, model.StatusQueued}, model.StatusCancelled,
	)
	if err != nil {
		return fmt.Errorf("cancel reminder: %w", err)
	}

	if !ok {
		zlog.Logger.Debug().Str("id", id.String()).Msg("reminder no longer active, nothing to cancel")
		return nil
	}

	s.cacheStatus(ctx, s.settings.Strategy, id, model.StatusCancelled)

	return nil
}

// Pending returns every reminder that can still fire.
func (s *Service) Pending(ctx context.Context) ([]model.Reminder, error) {
	reminders, err := s.repo.ListPendingReminders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending reminders: %w", err)
	}

	return reminders, nil
}

// DispatchDue publishes pending reminders whose instant has come and returns
// how many were queued.
func (s *Service) DispatchDue(ctx context.Context) (int, error) {
	due, err := s.repo.ListDueReminders(ctx, s.now(), s.settings.SweepSize)
	if err != nil {
		return 0, fmt.Errorf("list due reminders: %w", err)
	}

	queued := 0
	for _, r := range due {
		if s.publish(ctx, r) == model.StatusQueued {
			queued++
		}
	}

	return queued, nil
}

// GetReminderStatusByID returns the reminder status, reading Redis first and
// falling back to the database on a cache miss.
func (s *Service) GetReminderStatusByID(ctx context.Context, strategy retry.Strategy, id uuid.UUID) (string, error) {
	status, err := s.cache.GetWithRetry(ctx, strategy, id.String())
	if err == nil {
		return status, nil
	}

	if !errors.Is(err, redis.Nil) {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get reminder status from cache")
	}

	status, err = s.repo.GetReminderStatusByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("get reminder status: %w", err)
	}

	s.cacheStatus(ctx, strategy, id, status)

	return status, nil
}

// GetAllReminders returns all reminders, most recent instant first.
func (s *Service) GetAllReminders(ctx context.Context) ([]model.Reminder, error) {
	reminders, err := s.repo.GetAllReminders(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all reminders: %w", err)
	}

	return reminders, nil
}

// ClaimReminder moves an active reminder to sending. Only one caller wins.
func (s *Service) ClaimReminder(ctx context.Context, strategy retry.Strategy, id uuid.UUID) (bool, error) {
	ok, err := s.repo.TransitionStatus(
		ctx, id, []string{model.StatusPending, model.StatusQueued}, model.StatusSending,
	)
	if err != nil {
		return false, fmt.Errorf("claim reminder: %w", err)
	}

	if ok {
		s.cacheStatus(ctx, strategy, id, model.StatusSending)
	}

	return ok, nil
}

// Send delivers a reminder through the named channel.
func (s *Service) Send(channel, to, subject, body string) error {
	sender, ok := s.senders[channel]
	if !ok {
		return fmt.Errorf("unknown channel %s", channel)
	}

	if err := sender.Send(to, subject, body); err != nil {
		return fmt.Errorf("send reminder: %w", err)
	}

	return nil
}

// SetStatus records a reminder status in the database and the cache.
func (s *Service) SetStatus(ctx context.Context, strategy retry.Strategy, id uuid.UUID, status string) error {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("update reminder status: %w", err)
	}

	s.cacheStatus(ctx, strategy, id, status)

	return nil
}

// ReleaseReminder puts a reminder that is still in the from status back to
// pending, so the next DispatchDue publishes it again.
func (s *Service) ReleaseReminder(ctx context.Context, strategy retry.Strategy, id uuid.UUID, from string) error {
	ok, err := s.repo.TransitionStatus(ctx, id, []string{from}, model.StatusPending)
	if err != nil {
		return fmt.Errorf("release reminder: %w", err)
	}

	if ok {
		s.cacheStatus(ctx, strategy, id, model.StatusPending)
	}

	return nil
}

// publish marks a pending reminder queued and sends it to the broker. A failed
// publish puts the reminder back to pending for the next sweep. It returns the
// resulting status.
func (s *Service) publish(ctx context.Context, r model.Reminder) string {
	log := zlog.Logger.With().Str("id", r.ID.String()).Str("plant_id", r.PlantID.String()).Logger()

	ok, err := s.repo.TransitionStatus(ctx, r.ID, []string{model.StatusPending}, model.StatusQueued)
	if err != nil {
		log.Error().Err(err).Msg("failed to mark reminder queued")
		return r.Status
	}

	if !ok {
		log.Debug().Msg("reminder no longer pending, skipping publish")
		return r.Status
	}

	msg := queue.ReminderMessage{
		ID:      r.ID,
		PlantID: r.PlantID,
		SendAt:  r.SendAt,
		Title:   r.Title,
		Body:    r.Body,
		To:      r.To,
		Channel: r.Channel,
		Retries: r.Retries,
	}

	if err := s.queue.Publish(msg, s.settings.Strategy); err != nil {
		log.Error().Err(err).Msg("failed to publish reminder")

		if _, revertErr := s.repo.TransitionStatus(
			ctx, r.ID, []string{model.StatusQueued}, model.StatusPending,
		); revertErr != nil {
			log.Error().Err(revertErr).Msg("failed to put reminder back to pending")
		}

		return model.StatusPending
	}

	s.cacheStatus(ctx, s.settings.Strategy, r.ID, model.StatusQueued)

	return model.StatusQueued
}

func (s *Service) cacheStatus(ctx context.Context, strategy retry.Strategy, id uuid.UUID, status string) {
	if err := s.cache.SetWithRetry(ctx, strategy, id.String(), status); err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cache reminder status")
	}
}
