package reminder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aliskhannn/plant-watering/internal/model"
)

const reminderColumns = `id, plant_id, title, body, send_at, immediate, status, retries, "to", channel, created_at, updated_at`

// SQLiteRepository stores reminders in a local SQLite database.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteRepository creates a reminder repository on an open SQLite handle.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

// CreateReminder inserts a new reminder and returns its generated ID.
func (r *SQLiteRepository) CreateReminder(ctx context.Context, reminder model.Reminder) (uuid.UUID, error) {
	id := uuid.New()
	now := formatTime(r.now())

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reminders(id, plant_id, title, body, send_at, send_at_ms, immediate, status, retries, "to", channel, created_at, updated_at)
		 VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		id.String(), reminder.PlantID.String(), reminder.Title, reminder.Body, formatTime(reminder.SendAt),
		reminder.SendAt.UnixMilli(), reminder.Immediate, reminder.Status, reminder.Retries, reminder.To, reminder.Channel, now, now,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return uuid.Nil, ErrReminderAlreadyPending
		}

		return uuid.Nil, fmt.Errorf("failed to create reminder: %w", err)
	}

	return id, nil
}

// UpdateStatus updates the status of a reminder by its ID.
func (r *SQLiteRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reminders SET status = ?, updated_at = ? WHERE id = ?`,
		status, formatTime(r.now()), id.String(),
	)
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
func (r *SQLiteRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from []string, to string) (bool, error) {
	if len(from) == 0 {
		return false, nil
	}

	args := make([]any, 0, len(from)+3)
	args = append(args, to, formatTime(r.now()), id.String())
	for _, s := range from {
		args = append(args, s)
	}

	query := `UPDATE reminders SET status = ?, updated_at = ? WHERE id = ? AND status IN (` +
		strings.TrimSuffix(strings.Repeat("?,", len(from)), ",") + `)`

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to transition reminder: %w", err)
	}

	rows, _ := res.RowsAffected()

	return rows == 1, nil
}

// GetReminderStatusByID retrieves the status of a reminder by its ID.
func (r *SQLiteRepository) GetReminderStatusByID(ctx context.Context, id uuid.UUID) (string, error) {
	var status string
	err := r.db.QueryRowContext(ctx, `SELECT status FROM reminders WHERE id = ?`, id.String()).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrReminderNotFound
		}

		return "", fmt.Errorf("failed to get reminder status: %w", err)
	}

	return status, nil
}

// GetAllReminders retrieves all reminders ordered by SendAt descending.
func (r *SQLiteRepository) GetAllReminders(ctx context.Context) ([]model.Reminder, error) {
	reminders, err := r.list(ctx, `SELECT `+reminderColumns+` FROM reminders ORDER BY send_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all reminders: %w", err)
	}

	if len(reminders) == 0 {
		return nil, ErrNoRemindersFound
	}

	return reminders, nil
}

// ListPendingReminders retrieves the reminders that can still fire.
func (r *SQLiteRepository) ListPendingReminders(ctx context.Context) ([]model.Reminder, error) {
	reminders, err := r.list(ctx,
		`SELECT `+reminderColumns+` FROM reminders WHERE status IN ('pending', 'queued') ORDER BY send_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending reminders: %w", err)
	}

	return reminders, nil
}

// ListDueReminders retrieves up to limit pending reminders whose instant is not after now.
//
// send_at_ms mirrors send_at as epoch milliseconds so rows written with different offsets compare correctly.
func (r *SQLiteRepository) ListDueReminders(ctx context.Context, now time.Time, limit int) ([]model.Reminder, error) {
	reminders, err := r.list(ctx,
		`SELECT `+reminderColumns+` FROM reminders
		 WHERE status = 'pending' AND send_at_ms <= ?
		 ORDER BY send_at_ms
		 LIMIT ?`,
		now.UnixMilli(), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list due reminders: %w", err)
	}

	return reminders, nil
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]model.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []model.Reminder
	for rows.Next() {
		var (
			n                                    model.Reminder
			id, plantID, sendAt, created, updated string
		)

		if err := rows.Scan(
			&id, &plantID, &n.Title, &n.Body, &sendAt, &n.Immediate,
			&n.Status, &n.Retries, &n.To, &n.Channel, &created, &updated,
		); err != nil {
			return nil, err
		}

		if n.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse id %q: %w", id, err)
		}
		if n.PlantID, err = uuid.Parse(plantID); err != nil {
			return nil, fmt.Errorf("parse plant id %q: %w", plantID, err)
		}
		if n.SendAt, err = time.Parse(time.RFC3339Nano, sendAt); err != nil {
			return nil, fmt.Errorf("parse send_at %q: %w", sendAt, err)
		}
		if n.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", created, err)
		}
		if n.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
			return nil, fmt.Errorf("parse updated_at %q: %w", updated, err)
		}

		reminders = append(reminders, n)
	}

	return reminders, rows.Err()
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}
