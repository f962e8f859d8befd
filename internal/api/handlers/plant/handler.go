package plant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/plant-watering/internal/api/dto"
	"github.com/aliskhannn/plant-watering/internal/api/respond"
	"github.com/aliskhannn/plant-watering/internal/cycle"
	"github.com/aliskhannn/plant-watering/internal/model"
	plantrepo "github.com/aliskhannn/plant-watering/internal/repository/plant"
	plantsvc "github.com/aliskhannn/plant-watering/internal/service/plant"
)

// plantService defines the plant operations the Handler depends on.
//
//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/plant/mock.go -package=mocks
type plantService interface {
	Create(context.Context, model.PlantInput) (model.PlantView, error)
	Update(context.Context, uuid.UUID, model.PlantInput) (model.PlantView, error)
	WaterNow(context.Context, uuid.UUID) (model.PlantView, error)
	Delete(context.Context, uuid.UUID) (string, error)
	Get(context.Context, uuid.UUID) (model.PlantView, error)
	List(context.Context) ([]model.PlantView, error)
}

var (
	errInvalidInterval = errors.New("water_every_days must be a whole number of days greater than zero, please correct it")
	errInvalidInstant  = errors.New("last_watered_at must be an RFC 3339 instant, e.g. 2024-01-01T00:00:00.000Z")
	errPlantNotFound   = errors.New("plant not found, it may have been deleted")
	errInternal        = errors.New("internal server error")
)

// Handler handles HTTP requests related to plants.
type Handler struct {
	service   plantService
	validator *validator.Validate
}

// NewHandler creates a new Handler instance.
func NewHandler(s plantService, v *validator.Validate) *Handler {
	return &Handler{service: s, validator: v}
}

// Create handles POST /api/plants.
func (h *Handler) Create(c *ginext.Context) {
	in, ok := h.decode(c)
	if !ok {
		return
	}

	view, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err, uuid.Nil)
		return
	}

	respond.Created(c.Writer, view)
}

// List handles GET /api/plants.
func (h *Handler) List(c *ginext.Context) {
	views, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, uuid.Nil)
		return
	}

	respond.OK(c.Writer, views)
}

// Get handles GET /api/plants/:id.
func (h *Handler) Get(c *ginext.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	view, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, id)
		return
	}

	respond.OK(c.Writer, view)
}

// Update handles PUT /api/plants/:id.
func (h *Handler) Update(c *ginext.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	in, ok := h.decode(c)
	if !ok {
		return
	}

	view, err := h.service.Update(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, err, id)
		return
	}

	respond.OK(c.Writer, view)
}

// Water handles POST /api/plants/:id/water.
func (h *Handler) Water(c *ginext.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	view, err := h.service.WaterNow(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, id)
		return
	}

	respond.OK(c.Writer, view)
}

// Delete handles DELETE /api/plants/:id.
func (h *Handler) Delete(c *ginext.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	warning, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, id)
		return
	}

	respond.OK(c.Writer, dto.DeleteResponse{ID: id, Warning: warning})
}

// decode reads and validates a plant request body.
func (h *Handler) decode(c *ginext.Context) (model.PlantInput, bool) {
	var req dto.PlantRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return model.PlantInput{}, false
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return model.PlantInput{}, false
	}

	in := model.PlantInput{
		Name:           req.Name,
		PhotoURI:       req.PhotoURI,
		WaterEveryDays: req.WaterEveryDays,
		Notes:          req.Notes,
	}

	if req.LastWateredAt != nil {
		t, err := cycle.ParseInstant(*req.LastWateredAt)
		if err != nil {
			zlog.Logger.Warn().Err(err).Msg("failed to parse last_watered_at")
			respond.Fail(c.Writer, http.StatusBadRequest, errInvalidInstant)
			return model.PlantInput{}, false
		}

		in.LastWateredAt = &t
	}

	return in, true
}

func (h *Handler) fail(c *ginext.Context, err error, id uuid.UUID) {
	switch {
	case errors.Is(err, cycle.ErrInvalidInterval):
		zlog.Logger.Warn().Err(err).Msg("invalid watering interval")
		respond.Fail(c.Writer, http.StatusBadRequest, errInvalidInterval)
	case errors.Is(err, cycle.ErrUnparseableInstant):
		respond.Fail(c.Writer, http.StatusBadRequest, errInvalidInstant)
	case errors.Is(err, plantsvc.ErrEmptyName):
		respond.Fail(c.Writer, http.StatusBadRequest, err)
	case errors.Is(err, plantrepo.ErrPlantNotFound):
		zlog.Logger.Warn().Str("plant_id", id.String()).Msg("plant not found")
		respond.Fail(c.Writer, http.StatusNotFound, errPlantNotFound)
	default:
		zlog.Logger.Error().Err(err).Str("plant_id", id.String()).Msg("plant request failed")
		respond.Fail(c.Writer, http.StatusInternalServerError, errInternal)
	}
}

func parseID(c *ginext.Context) (uuid.UUID, bool) {
	idStr := c.Param("id")

	id, err := uuid.Parse(idStr)
	if err != nil || id == uuid.Nil {
		zlog.Logger.Warn().Str("id", idStr).Msg("invalid plant id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return uuid.Nil, false
	}

	return id, true
}
