package reminder

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/plant-watering/internal/api/dto"
	"github.com/aliskhannn/plant-watering/internal/api/respond"
	"github.com/aliskhannn/plant-watering/internal/config"
	"github.com/aliskhannn/plant-watering/internal/model"
	reminderrepo "github.com/aliskhannn/plant-watering/internal/repository/reminder"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/reminder/mock.go -package=mocks
type reminderService interface {
	GetReminderStatusByID(context.Context, retry.Strategy, uuid.UUID) (string, error)
	GetAllReminders(context.Context) ([]model.Reminder, error)
}

// Handler exposes read access to watering reminders.
type Handler struct {
	service reminderService
	cfg     *config.Config
}

func NewHandler(s reminderService, cfg *config.Config) *Handler {
	return &Handler{service: s, cfg: cfg}
}

// GetStatus handles GET /api/reminders/:id.
func (h *Handler) GetStatus(c *ginext.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil || id == uuid.Nil {
		zlog.Logger.Warn().Str("id", idStr).Msg("failed to parse id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return
	}

	status, err := h.service.GetReminderStatusByID(c.Request.Context(), h.cfg.Retry, id)
	if err != nil {
		if errors.Is(err, reminderrepo.ErrReminderNotFound) {
			zlog.Logger.Warn().Str("id", id.String()).Msg("reminder not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("reminder not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get reminder status")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, dto.StatusResponse{ID: id, Status: status})
}

// GetAll handles GET /api/reminders.
func (h *Handler) GetAll(c *ginext.Context) {
	reminders, err := h.service.GetAllReminders(c.Request.Context())
	if err != nil {
		if errors.Is(err, reminderrepo.ErrNoRemindersFound) {
			respond.OK(c.Writer, []model.Reminder{})
			return
		}

		zlog.Logger.Error().Err(err).Msg("failed to get reminders")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, reminders)
}
