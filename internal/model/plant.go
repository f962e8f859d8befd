package model

import (
	"time"

	"github.com/google/uuid"
)

// Plant represents a house plant with its watering interval.
type Plant struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	PhotoURI       *string   `json:"photo_uri,omitempty"`
	WaterEveryDays int       `json:"water_every_days"`
	LastWateredAt  time.Time `json:"last_watered_at"`
	Notes          *string   `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PlantInput holds the mutable fields of a plant.
//
// A nil LastWateredAt means "now" on create and "unchanged" on update.
// A nil WaterEveryDays on create falls back to the configured default.
type PlantInput struct {
	Name           string
	PhotoURI       *string
	WaterEveryDays *int
	LastWateredAt  *time.Time
	Notes          *string
}

// PlantView is a plant together with its derived watering state.
type PlantView struct {
	Plant
	Progress  float64   `json:"progress"`           // cycle progress in [0,1]
	Percent   int       `json:"percent"`            // round(progress*100)
	NextDueAt time.Time `json:"next_due_at"`        // lastWateredAt + waterEveryDays days
	Reminder  *Reminder `json:"reminder,omitempty"` // authoritative reminder after a mutation
	Warning   string    `json:"warning,omitempty"`  // non-blocking problem, e.g. reminder not scheduled
}
