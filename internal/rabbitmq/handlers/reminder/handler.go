package reminder

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
	"golang.org/x/time/rate"

	"github.com/aliskhannn/plant-watering/internal/model"
	"github.com/aliskhannn/plant-watering/internal/rabbitmq/queue"
	reminderrepo "github.com/aliskhannn/plant-watering/internal/repository/reminder"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/rabbitmq/handlers/reminder/mock.go -package=mocks
type reminderService interface {
	ClaimReminder(ctx context.Context, strategy retry.Strategy, id uuid.UUID) (bool, error)
	Send(channel, to, subject, body string) error
	SetStatus(ctx context.Context, strategy retry.Strategy, id uuid.UUID, status string) error
	ReleaseReminder(ctx context.Context, strategy retry.Strategy, id uuid.UUID, from string) error
}

// Handler delivers reminder messages taken from the queue.
type Handler struct {
	service reminderService
	limiter *rate.Limiter
	now     func() time.Time
}

// NewHandler creates a handler that sends at most the limiter's rate of reminders.
func NewHandler(svc reminderService, limiter *rate.Limiter) *Handler {
	return &Handler{
		service: svc,
		limiter: limiter,
		now:     time.Now,
	}
}

// HandleMessage waits until the reminder is due, claims it and delivers it.
//
// A reminder that cannot be claimed was cancelled or already delivered and is
// dropped. A reminder interrupted by shutdown goes back to pending so the
// sweeper publishes it again.
func (h *Handler) HandleMessage(ctx context.Context, msg queue.ReminderMessage, strategy retry.Strategy) {
	log := zlog.Logger.With().Str("id", msg.ID.String()).Str("plant_id", msg.PlantID.String()).Logger()
	log.Info().Msgf("Handle Message: got reminder, will be sent at %v", msg.SendAt)

	if err := h.waitUntil(ctx, msg.SendAt); err != nil {
		h.release(ctx, strategy, msg.ID, model.StatusQueued)
		return
	}

	won, err := h.service.ClaimReminder(ctx, strategy, msg.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to claim reminder")
		return
	}

	if !won {
		log.Info().Msg("reminder cancelled or already delivered, skipping")
		return
	}

	if err := h.limiter.Wait(ctx); err != nil {
		h.release(ctx, strategy, msg.ID, model.StatusSending)
		return
	}

	if msg.Retries > 0 {
		strategy.Attempts = msg.Retries
	}

	err = retry.Do(func() error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			log.Debug().Msgf("Handle Message: sending reminder via %s", msg.Channel)
			return h.service.Send(msg.Channel, msg.To, msg.Title, msg.Body)
		}
	}, strategy)

	status := model.StatusSent
	if err != nil {
		if errors.Is(err, context.Canceled) {
			h.release(ctx, strategy, msg.ID, model.StatusSending)
			return
		}

		log.Error().Err(err).Msg("Handle Message: reminder failed")
		status = model.StatusFailed
	} else {
		log.Info().Msg("Handle Message: reminder sent successfully")
	}

	if setErr := h.service.SetStatus(ctx, strategy, msg.ID, status); setErr != nil {
		if errors.Is(setErr, reminderrepo.ErrReminderNotFound) {
			log.Warn().Err(setErr).Msg("reminder not found")
			return
		}

		log.Error().Err(setErr).Msgf("failed to set status=%s", status)
	}
}

func (h *Handler) waitUntil(ctx context.Context, at time.Time) error {
	d := at.Sub(h.now())
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// release puts an interrupted reminder back to pending. The context is
// already cancelled at this point, so the update runs detached from it.
func (h *Handler) release(ctx context.Context, strategy retry.Strategy, id uuid.UUID, from string) {
	zlog.Logger.Info().Str("id", id.String()).Str("from", from).Msg("shutting down, reminder released for the next sweep")

	if err := h.service.ReleaseReminder(context.WithoutCancel(ctx), strategy, id, from); err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to release reminder")
	}
}
