// Package cycle computes how far a plant is through its watering cycle.
//
// All functions are pure: they read only their arguments and never touch plant state.
package cycle

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrInvalidInterval = errors.New("water every days must be positive")

// ValidateInterval rejects intervals that would make progress undefined.
func ValidateInterval(waterEveryDays int) error {
	if waterEveryDays <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidInterval, waterEveryDays)
	}

	return nil
}

// Progress returns the watering cycle completion at now, clamped to [0,1].
//
// It is 0 when now is not after lastWateredAt and 1 once waterEveryDays have elapsed.
// Between the two it is exactly elapsedDays / waterEveryDays.
func Progress(lastWateredAt time.Time, waterEveryDays int, now time.Time) (float64, error) {
	if err := ValidateInterval(waterEveryDays); err != nil {
		return 0, err
	}

	if lastWateredAt.IsZero() {
		return 0, fmt.Errorf("%w: zero last watered time", ErrUnparseableInstant)
	}

	ratio := FractionalDays(lastWateredAt, now) / float64(waterEveryDays)

	return math.Max(0, math.Min(1, ratio)), nil
}

// ProgressNow is Progress evaluated at the current wall clock.
func ProgressNow(lastWateredAt time.Time, waterEveryDays int) (float64, error) {
	return Progress(lastWateredAt, waterEveryDays, time.Now())
}

// Percent converts a progress value to the integer percentage shown to users.
func Percent(progress float64) int {
	return int(math.Round(progress * 100))
}
