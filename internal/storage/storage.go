// Package storage opens the configured database and wires the plant and
// reminder repositories on top of it.
//
// Driver values:
//   - "postgres": PostgreSQL through wbf/dbpg (master plus optional slaves)
//   - "sqlite": a local SQLite file, the same store the mobile app keeps on device
package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/zlog"
	_ "modernc.org/sqlite"

	"github.com/aliskhannn/plant-watering/internal/config"
	"github.com/aliskhannn/plant-watering/internal/model"
	plantrepo "github.com/aliskhannn/plant-watering/internal/repository/plant"
	reminderrepo "github.com/aliskhannn/plant-watering/internal/repository/reminder"
)

//go:embed schema_sqlite.sql
var sqliteSchema string

// PlantRepository is the storage collaborator for plants.
type PlantRepository interface {
	ListPlants(ctx context.Context) ([]model.Plant, error)
	GetPlant(ctx context.Context, id uuid.UUID) (model.Plant, error)
	CreatePlant(ctx context.Context, plant model.Plant) (uuid.UUID, error)
	UpdatePlant(ctx context.Context, plant model.Plant) error
	DeletePlant(ctx context.Context, id uuid.UUID) error
}

// ReminderRepository persists reminders and their delivery status.
type ReminderRepository interface {
	CreateReminder(ctx context.Context, reminder model.Reminder) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	TransitionStatus(ctx context.Context, id uuid.UUID, from []string, to string) (bool, error)
	GetReminderStatusByID(ctx context.Context, id uuid.UUID) (string, error)
	GetAllReminders(ctx context.Context) ([]model.Reminder, error)
	ListPendingReminders(ctx context.Context) ([]model.Reminder, error)
	ListDueReminders(ctx context.Context, now time.Time, limit int) ([]model.Reminder, error)
}

var (
	_ PlantRepository    = (*plantrepo.Repository)(nil)
	_ PlantRepository    = (*plantrepo.SQLiteRepository)(nil)
	_ ReminderRepository = (*reminderrepo.Repository)(nil)
	_ ReminderRepository = (*reminderrepo.SQLiteRepository)(nil)
)

// Storage bundles the repositories sharing one database.
type Storage struct {
	Plants    PlantRepository
	Reminders ReminderRepository

	closers []func() error
}

// Open initializes the configured driver.
func Open(ctx context.Context, cfg *config.Config) (*Storage, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))

	switch driver {
	case "", "postgres", "postgresql":
		return openPostgres(cfg.Database)
	case "sqlite", "sqlite3":
		return OpenSQLite(ctx, cfg.Storage.SQLitePath, cfg.Storage.BusyTimeout)
	default:
		return nil, errors.New("unknown storage driver: " + driver)
	}
}

func openPostgres(cfg config.Database) (*Storage, error) {
	opts := &dbpg.Options{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}

	slaveDSNs := make([]string, 0, len(cfg.Slaves))
	for _, s := range cfg.Slaves {
		slaveDSNs = append(slaveDSNs, s.DSN())
	}

	db, err := dbpg.New(cfg.Master.DSN(), slaveDSNs, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	zlog.Logger.Info().Str("host", cfg.Master.Host).Int("slaves", len(cfg.Slaves)).Msg("connected to postgres")

	st := &Storage{
		Plants:    plantrepo.NewRepository(db),
		Reminders: reminderrepo.NewRepository(db),
	}

	st.closers = append(st.closers, db.Master.Close)
	for _, s := range db.Slaves {
		st.closers = append(st.closers, s.Close)
	}

	return st, nil
}

// OpenSQLite opens (creating if needed) a SQLite database file and applies the schema.
func OpenSQLite(ctx context.Context, path string, busyTimeout time.Duration) (*Storage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite prefers a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if busyTimeout > 0 {
		_, _ = db.ExecContext(ctx, fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeout.Milliseconds()))
	}
	_, _ = db.ExecContext(ctx, "PRAGMA journal_mode = WAL")
	_, _ = db.ExecContext(ctx, "PRAGMA synchronous = NORMAL")

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}

	zlog.Logger.Info().Str("path", path).Msg("opened sqlite storage")

	return &Storage{
		Plants:    plantrepo.NewSQLiteRepository(db),
		Reminders: reminderrepo.NewSQLiteRepository(db),
		closers:   []func() error{db.Close},
	}, nil
}

// Close releases every database handle.
func (s *Storage) Close() error {
	if s == nil {
		return nil
	}

	var errs []error
	for _, c := range s.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
