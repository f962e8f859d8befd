// Package plant implements plant operations as two-phase pipelines: the plant
// is committed to storage first, then its watering reminder is re-registered.
// A reminder failure never rolls back the committed plant; it is reported as
// a warning on the returned view.
package plant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/plant-watering/internal/cycle"
	"github.com/aliskhannn/plant-watering/internal/model"
)

//go:generate mockgen -source=service.go -destination=../../mocks/service/plant/mock.go -package=mocks

var ErrEmptyName = errors.New("plant name is required")

type plantRepository interface {
	CreatePlant(context.Context, model.Plant) (uuid.UUID, error)
	GetPlant(context.Context, uuid.UUID) (model.Plant, error)
	ListPlants(context.Context) ([]model.Plant, error)
	UpdatePlant(context.Context, model.Plant) error
	DeletePlant(context.Context, uuid.UUID) error
}

type reminderScheduler interface {
	Schedule(ctx context.Context, plantID uuid.UUID, plantName string, lastWateredAt time.Time, waterEveryDays int) (model.Reminder, error)
	Cancel(ctx context.Context, plantID uuid.UUID) error
}

type Service struct {
	repo        plantRepository
	scheduler   reminderScheduler
	defaultDays int
	now         func() time.Time

	mu sync.Mutex // serializes mutations
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used for "now" and for progress.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo plantRepository, scheduler reminderScheduler, defaultDays int, opts ...Option) *Service {
	s := &Service{
		repo:        repo,
		scheduler:   scheduler,
		defaultDays: defaultDays,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create adds a plant and schedules its first reminder.
func (s *Service) Create(ctx context.Context, in model.PlantInput) (model.PlantView, error) {
	now := s.now()

	plant := model.Plant{
		Name:           strings.TrimSpace(in.Name),
		PhotoURI:       in.PhotoURI,
		WaterEveryDays: s.defaultDays,
		LastWateredAt:  now,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.WaterEveryDays != nil {
		plant.WaterEveryDays = *in.WaterEveryDays
	}
	if in.LastWateredAt != nil {
		plant.LastWateredAt = *in.LastWateredAt
	}

	if err := validate(plant); err != nil {
		return model.PlantView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.repo.CreatePlant(ctx, plant)
	if err != nil {
		return model.PlantView{}, fmt.Errorf("create plant: %w", err)
	}
	plant.ID = id

	return s.reschedule(ctx, plant, now)
}

// Update overwrites a plant's fields. WaterEveryDays and LastWateredAt keep
// their stored values when the input leaves them nil.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in model.PlantInput) (model.PlantView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plant, err := s.repo.GetPlant(ctx, id)
	if err != nil {
		return model.PlantView{}, fmt.Errorf("get plant: %w", err)
	}

	plant.Name = strings.TrimSpace(in.Name)
	plant.PhotoURI = in.PhotoURI
	plant.Notes = in.Notes
	if in.WaterEveryDays != nil {
		plant.WaterEveryDays = *in.WaterEveryDays
	}
	if in.LastWateredAt != nil {
		plant.LastWateredAt = *in.LastWateredAt
	}

	if err := validate(plant); err != nil {
		return model.PlantView{}, err
	}

	return s.commit(ctx, plant)
}

// WaterNow records that the plant was watered at the service clock's now.
func (s *Service) WaterNow(ctx context.Context, id uuid.UUID) (model.PlantView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plant, err := s.repo.GetPlant(ctx, id)
	if err != nil {
		return model.PlantView{}, fmt.Errorf("get plant: %w", err)
	}

	plant.LastWateredAt = s.now()

	return s.commit(ctx, plant)
}

// Delete removes a plant and cancels its pending reminder. A cancel failure is
// returned as a warning.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.DeletePlant(ctx, id); err != nil {
		return "", fmt.Errorf("delete plant: %w", err)
	}

	if err := s.scheduler.Cancel(ctx, id); err != nil {
		zlog.Logger.Warn().Err(err).Str("plant_id", id.String()).Msg("plant deleted but its reminder was not cancelled")
		return "reminder could not be cancelled: " + err.Error(), nil
	}

	return "", nil
}

// Get returns a plant with its current watering progress.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (model.PlantView, error) {
	plant, err := s.repo.GetPlant(ctx, id)
	if err != nil {
		return model.PlantView{}, fmt.Errorf("get plant: %w", err)
	}

	return view(plant, s.now())
}

// List returns all plants, newest first, with their current watering progress.
func (s *Service) List(ctx context.Context) ([]model.PlantView, error) {
	plants, err := s.repo.ListPlants(ctx)
	if err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}

	now := s.now()
	views := make([]model.PlantView, 0, len(plants))

	for _, p := range plants {
		v, err := view(p, now)
		if err != nil {
			return nil, err
		}

		views = append(views, v)
	}

	return views, nil
}

// commit persists an already validated plant and re-registers its reminder.
func (s *Service) commit(ctx context.Context, plant model.Plant) (model.PlantView, error) {
	now := s.now()
	plant.UpdatedAt = now

	if err := s.repo.UpdatePlant(ctx, plant); err != nil {
		return model.PlantView{}, fmt.Errorf("update plant: %w", err)
	}

	return s.reschedule(ctx, plant, now)
}

func (s *Service) reschedule(ctx context.Context, plant model.Plant, now time.Time) (model.PlantView, error) {
	v, err := view(plant, now)
	if err != nil {
		return model.PlantView{}, err
	}

	r, err := s.scheduler.Schedule(ctx, plant.ID, plant.Name, plant.LastWateredAt, plant.WaterEveryDays)
	if err != nil {
		zlog.Logger.Warn().Err(err).Str("plant_id", plant.ID.String()).Msg("plant saved but reminder not scheduled")
		v.Warning = "reminder not scheduled: " + err.Error()

		return v, nil
	}

	v.Reminder = &r

	return v, nil
}

func validate(p model.Plant) error {
	if p.Name == "" {
		return ErrEmptyName
	}

	if err := cycle.ValidateInterval(p.WaterEveryDays); err != nil {
		return err
	}

	if p.LastWateredAt.IsZero() {
		return fmt.Errorf("%w: zero last watered time", cycle.ErrUnparseableInstant)
	}

	return nil
}

func view(p model.Plant, now time.Time) (model.PlantView, error) {
	progress, err := cycle.Progress(p.LastWateredAt, p.WaterEveryDays, now)
	if err != nil {
		return model.PlantView{}, fmt.Errorf("progress of plant %s: %w", p.ID, err)
	}

	return model.PlantView{
		Plant:     p,
		Progress:  progress,
		Percent:   cycle.Percent(progress),
		NextDueAt: cycle.NextDue(p.LastWateredAt, p.WaterEveryDays),
	}, nil
}
