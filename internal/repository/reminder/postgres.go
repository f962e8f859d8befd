package reminder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/wb-go/wbf/dbpg"

	"github.com/aliskhannn/plant-watering/internal/model"
)

var (
	ErrReminderNotFound       = errors.New("reminder not found")
	ErrNoRemindersFound       = errors.New("no reminders found")
	ErrReminderAlreadyPending = errors.New("plant already has a pending reminder")
)

const uniqueViolation = "23505"

// Repository provides methods to interact with the reminders table in PostgreSQL.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new reminder repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// CreateReminder inserts a new reminder into the database and returns its ID.
//
// At most one pending or queued reminder may exist per plant; a second one
// fails with ErrReminderAlreadyPending.
func (r *Repository) CreateReminder(ctx context.Context, reminder model.Reminder) (uuid.UUID, error) {
	query := `
		INSERT INTO reminders (
		    plant_id, title, body, send_at, immediate, status, retries, "to", channel
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id;
    `

	err := r.db.QueryRowContext(
		ctx, query, reminder.PlantID, reminder.Title, reminder.Body, reminder.SendAt, reminder.Immediate,
		reminder.Status, reminder.Retries, reminder.To, reminder.Channel,
	).Scan(&reminder.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return uuid.Nil, ErrReminderAlreadyPending
		}

		return uuid.Nil, fmt.Errorf("failed to create reminder: %w", err)
	}

	return reminder.ID, nil
}

// UpdateStatus updates the status of a reminder by its ID.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `
		UPDATE reminders
		SET status = $1, updated_at = now()
		WHERE id = $2;
    `

	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update reminder: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrReminderNotFound
	}

	return nil
}

// TransitionStatus moves a reminder to status `to` only if its current status is one of `from`.
// It reports whether the transition happened.
func (r *Repository) TransitionStatus(ctx context.Context, id uuid.UUID, from []string, to string) (bool, error) {
	query := `
		UPDATE reminders
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = ANY($3);
    `

	res, err := r.db.ExecContext(ctx, query, to, id, pq.Array(from))
	if err != nil {
		return false, fmt.Errorf("failed to transition reminder: %w", err)
	}

	rows, _ := res.RowsAffected()

	return rows == 1, nil
}

// GetReminderStatusByID retrieves the status of a reminder by its ID.
func (r *Repository) GetReminderStatusByID(ctx context.Context, id uuid.UUID) (string, error) {
	query := `
		SELECT status
		FROM reminders
		WHERE id = $1;
    `

	var status string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrReminderNotFound
		}

		return "", fmt.Errorf("failed to get reminder status: %w", err)
	}

	return status, nil
}

// GetAllReminders retrieves all reminders ordered by SendAt descending.
func (r *Repository) GetAllReminders(ctx context.Context) ([]model.Reminder, error) {
	query := `
		SELECT id, plant_id, title, body, send_at, immediate, status, retries, "to", channel, created_at, updated_at
		FROM reminders
		ORDER BY send_at DESC;
    `

	reminders, err := r.list(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all reminders: %w", err)
	}

	if len(reminders) == 0 {
		return nil, ErrNoRemindersFound
	}

	return reminders, nil
}

// ListPendingReminders retrieves the reminders that can still fire.
func (r *Repository) ListPendingReminders(ctx context.Context) ([]model.Reminder, error) {
	query := `
		SELECT id, plant_id, title, body, send_at, immediate, status, retries, "to", channel, created_at, updated_at
		FROM reminders
		WHERE status IN ('pending', 'queued')
		ORDER BY send_at;
    `

	reminders, err := r.list(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending reminders: %w", err)
	}

	return reminders, nil
}

// ListDueReminders retrieves up to limit pending reminders whose instant is not after now.
func (r *Repository) ListDueReminders(ctx context.Context, now time.Time, limit int) ([]model.Reminder, error) {
	query := `
		SELECT id, plant_id, title, body, send_at, immediate, status, retries, "to", channel, created_at, updated_at
		FROM reminders
		WHERE status = 'pending' AND send_at <= $1
		ORDER BY send_at
		LIMIT $2;
    `

	reminders, err := r.list(ctx, query, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list due reminders: %w", err)
	}

	return reminders, nil
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]model.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []model.Reminder
	for rows.Next() {
		var n model.Reminder
		if err := rows.Scan(
			&n.ID, &n.PlantID, &n.Title, &n.Body, &n.SendAt, &n.Immediate,
			&n.Status, &n.Retries, &n.To, &n.Channel, &n.CreatedAt, &n.UpdatedAt,
		); err != nil {
			return nil, err
		}

		reminders = append(reminders, n)
	}

	return reminders, rows.Err()
}
