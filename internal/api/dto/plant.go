package dto

import (
	"github.com/google/uuid"
)

// PlantRequest is the body of plant create and update requests.
//
// last_watered_at is an RFC 3339 instant with an offset, e.g. 2024-01-01T00:00:00.000Z.
type PlantRequest struct {
	Name           string  `json:"name" validate:"required,max=200"`
	PhotoURI       *string `json:"photo_uri" validate:"omitempty,max=2048"`
	WaterEveryDays *int    `json:"water_every_days"`
	LastWateredAt  *string `json:"last_watered_at"`
	Notes          *string `json:"notes" validate:"omitempty,max=2000"`
}

// DeleteResponse is returned after a plant is deleted.
type DeleteResponse struct {
	ID      uuid.UUID `json:"id"`
	Warning string    `json:"warning,omitempty"`
}

// StatusResponse carries the status of one reminder.
type StatusResponse struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}
