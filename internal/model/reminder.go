package model

import (
	"time"

	"github.com/google/uuid"
)

// Reminder statuses.
const (
	StatusPending   = "pending"   // waiting for its instant
	StatusQueued    = "queued"    // published to the broker
	StatusSending   = "sending"   // claimed by a delivery worker
	StatusSent      = "sent"      // delivered
	StatusFailed    = "failed"    // delivery gave up after retries
	StatusCancelled = "cancelled" // superseded or its plant was deleted
)

// Reminder represents a watering reminder registered for a plant.
type Reminder struct {
	ID        uuid.UUID `json:"id"`         // unique identifier, used as the reminder handle
	PlantID   uuid.UUID `json:"plant_id"`   // plant the reminder belongs to
	Title     string    `json:"title"`      // notification title
	Body      string    `json:"body"`       // notification body
	SendAt    time.Time `json:"send_at"`    // instant the reminder is due
	Immediate bool      `json:"immediate"`  // requested as fire-now
	Status    string    `json:"status"`     // one of the Status* constants
	Retries   int       `json:"retries"`    // number of retry attempts on failure
	Channel   string    `json:"channel"`    // delivery method, e.g. "email", "telegram"
	To        string    `json:"to"`         // recipient identifier, such as email or chat ID
	CreatedAt time.Time `json:"created_at"` // timestamp when the reminder was created
	UpdatedAt time.Time `json:"updated_at"` // timestamp when the reminder was last updated
}

// Active reports whether the reminder can still fire.
func (r Reminder) Active() bool {
	return r.Status == StatusPending || r.Status == StatusQueued
}

// Trigger describes when a one-shot reminder fires.
// An immediate trigger ignores At.
type Trigger struct {
	Immediate bool      `json:"immediate"`
	At        time.Time `json:"at"`
}

// OneShot is a single, non-repeating reminder request for a plant.
type OneShot struct {
	PlantID uuid.UUID
	Title   string
	Body    string
	Trigger Trigger
}

// Permission is the outcome of asking the delivery channel for permission to notify.
type Permission string

const (
	PermissionUndetermined Permission = "undetermined"
	PermissionGranted      Permission = "granted"
	PermissionDenied       Permission = "denied"
)
