// Package reminder turns plant watering state into one-shot reminders.
//
// The Scheduler owns a plant id -> reminder handle map, so registering a new
// reminder for a plant always supersedes the previous one and deleting a plant
// cancels its reminder explicitly.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/plant-watering/internal/cycle"
	"github.com/aliskhannn/plant-watering/internal/model"
)

const (
	DefaultTitle   = "Watering reminder"
	DefaultBodyFmt = "Your plant %s needs watering now!"
)

var (
	ErrPermissionDenied = errors.New("notification permission denied")
	ErrSchedulingFailed = errors.New("failed to schedule reminder")
)

// Notifier is the notification collaborator the Scheduler translates plant state into.
//
//go:generate mockgen -source=scheduler.go -destination=../mocks/reminder/mock.go -package=mocks
type Notifier interface {
	RequestPermission(ctx context.Context) (model.Permission, error)
	ConfigureChannel(ctx context.Context) error
	ScheduleOneShot(ctx context.Context, req model.OneShot) (model.Reminder, error)
	Cancel(ctx context.Context, id uuid.UUID) error
	Pending(ctx context.Context) ([]model.Reminder, error)
}

// Scheduler keeps at most one authoritative pending reminder per plant.
type Scheduler struct {
	notifier Notifier
	now      func() time.Time
	title    string
	bodyFmt  string

	mu         sync.Mutex
	handles    map[uuid.UUID]uuid.UUID // plant id -> reminder id
	permission model.Permission
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock overrides the wall clock used to decide between immediate and future triggers.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithText overrides the reminder title and the body format (one %s for the plant name).
func WithText(title, bodyFmt string) Option {
	return func(s *Scheduler) {
		if title != "" {
			s.title = title
		}
		if bodyFmt != "" {
			s.bodyFmt = bodyFmt
		}
	}
}

// NewScheduler creates a Scheduler on top of the given notifier.
func NewScheduler(n Notifier, opts ...Option) *Scheduler {
	s := &Scheduler{
		notifier:   n,
		now:        time.Now,
		title:      DefaultTitle,
		bodyFmt:    DefaultBodyFmt,
		handles:    make(map[uuid.UUID]uuid.UUID),
		permission: model.PermissionUndetermined,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Plan decides how the reminder for the given watering state fires.
//
// It is immediate when the next due instant is not after now, otherwise a
// one-shot at exactly lastWateredAt + waterEveryDays days.
func Plan(lastWateredAt time.Time, waterEveryDays int, now time.Time) (model.Trigger, error) {
	if err := cycle.ValidateInterval(waterEveryDays); err != nil {
		return model.Trigger{}, err
	}

	if lastWateredAt.IsZero() {
		return model.Trigger{}, fmt.Errorf("%w: zero last watered time", cycle.ErrUnparseableInstant)
	}

	nextDue := cycle.NextDue(lastWateredAt, waterEveryDays)
	if !nextDue.After(now) {
		return model.Trigger{Immediate: true}, nil
	}

	return model.Trigger{At: nextDue}, nil
}

// Init asks for notification permission, restores the handles of reminders
// that are still pending and configures the delivery channel.
//
// A denied permission is logged once and remembered; it is not an error.
func (s *Scheduler) Init(ctx context.Context) error {
	perm, err := s.notifier.RequestPermission(ctx)
	if err != nil {
		return fmt.Errorf("request permission: %w", err)
	}

	if perm == model.PermissionDenied {
		zlog.Logger.Warn().Msg("notification permission not granted, reminders will not be delivered")
	}

	pending, err := s.notifier.Pending(ctx)
	if err != nil {
		return fmt.Errorf("restore pending reminders: %w", err)
	}

	s.mu.Lock()
	s.permission = perm
	for _, r := range pending {
		s.handles[r.PlantID] = r.ID
	}
	s.mu.Unlock()

	if err := s.notifier.ConfigureChannel(ctx); err != nil {
		return fmt.Errorf("configure channel: %w", err)
	}

	zlog.Logger.Info().Int("pending", len(pending)).Str("permission", string(perm)).Msg("reminder scheduler initialized")

	return nil
}

// Permission returns the permission state recorded by Init.
func (s *Scheduler) Permission() model.Permission {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.permission
}

// Schedule registers the reminder for a plant's current watering state,
// superseding any reminder previously registered for the same plant.
func (s *Scheduler) Schedule(
	ctx context.Context,
	plantID uuid.UUID,
	plantName string,
	lastWateredAt time.Time,
	waterEveryDays int,
) (model.Reminder, error) {
	trigger, err := Plan(lastWateredAt, waterEveryDays, s.now())
	if err != nil {
		return model.Reminder{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.permission == model.PermissionDenied {
		return model.Reminder{}, ErrPermissionDenied
	}

	if err := s.cancelLocked(ctx, plantID); err != nil {
		return model.Reminder{}, err
	}

	r, err := s.notifier.ScheduleOneShot(ctx, model.OneShot{
		PlantID: plantID,
		Title:   s.title,
		Body:    fmt.Sprintf(s.bodyFmt, plantName),
		Trigger: trigger,
	})
	if err != nil {
		return model.Reminder{}, fmt.Errorf("%w: %w", ErrSchedulingFailed, err)
	}

	s.handles[plantID] = r.ID

	return r, nil
}

// Cancel cancels the pending reminder of a plant, if there is one.
func (s *Scheduler) Cancel(ctx context.Context, plantID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cancelLocked(ctx, plantID)
}

// Handle returns the id of the plant's authoritative reminder.
func (s *Scheduler) Handle(plantID uuid.UUID) (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.handles[plantID]

	return id, ok
}

func (s *Scheduler) cancelLocked(ctx context.Context, plantID uuid.UUID) error {
	id, ok := s.handles[plantID]
	if !ok {
		return nil
	}

	if err := s.notifier.Cancel(ctx, id); err != nil {
		return fmt.Errorf("%w: cancel previous reminder %s: %w", ErrSchedulingFailed, id, err)
	}

	delete(s.handles, plantID)

	return nil
}
