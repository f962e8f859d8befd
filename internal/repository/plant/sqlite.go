package plant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aliskhannn/plant-watering/internal/model"
)

// SQLiteRepository stores plants in a local SQLite database.
//
// Instants are kept as RFC 3339 text so their offset survives a round trip.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteRepository creates a plant repository on an open SQLite handle.
// The schema is expected to be applied already (see storage.Open).
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

// CreatePlant inserts a new plant and returns its generated ID.
func (r *SQLiteRepository) CreatePlant(ctx context.Context, plant model.Plant) (uuid.UUID, error) {
	id := uuid.New()
	now := formatTime(r.now())

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO plants(id, name, photo_uri, water_every_days, last_watered_at, notes, created_at, updated_at)
		 VALUES(?,?,?,?,?,?,?,?)`,
		id.String(), plant.Name, nullString(plant.PhotoURI), plant.WaterEveryDays,
		formatTime(plant.LastWateredAt), nullString(plant.Notes), now, now,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create plant: %w", err)
	}

	return id, nil
}

// GetPlant retrieves a plant by its ID.
func (r *SQLiteRepository) GetPlant(ctx context.Context, id uuid.UUID) (model.Plant, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, photo_uri, water_every_days, last_watered_at, notes, created_at, updated_at
		 FROM plants WHERE id = ?`, id.String())

	p, err := scanSQLitePlant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Plant{}, ErrPlantNotFound
		}

		return model.Plant{}, fmt.Errorf("failed to get plant: %w", err)
	}

	return p, nil
}

// ListPlants retrieves all plants, newest first.
func (r *SQLiteRepository) ListPlants(ctx context.Context) ([]model.Plant, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, photo_uri, water_every_days, last_watered_at, notes, created_at, updated_at
		 FROM plants ORDER BY rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list plants: %w", err)
	}
	defer rows.Close()

	plants := make([]model.Plant, 0)
	for rows.Next() {
		p, err := scanSQLitePlant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plant: %w", err)
		}

		plants = append(plants, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list plants: %w", err)
	}

	return plants, nil
}

// UpdatePlant overwrites the mutable fields of a plant.
func (r *SQLiteRepository) UpdatePlant(ctx context.Context, plant model.Plant) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE plants
		 SET name = ?, photo_uri = ?, water_every_days = ?, last_watered_at = ?, notes = ?, updated_at = ?
		 WHERE id = ?`,
		plant.Name, nullString(plant.PhotoURI), plant.WaterEveryDays, formatTime(plant.LastWateredAt),
		nullString(plant.Notes), formatTime(r.now()), plant.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update plant: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrPlantNotFound
	}

	return nil
}

// DeletePlant removes a plant by its ID.
func (r *SQLiteRepository) DeletePlant(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plants WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete plant: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrPlantNotFound
	}

	return nil
}

func scanSQLitePlant(s scanner) (model.Plant, error) {
	var (
		p                                 model.Plant
		id, lastWatered, created, updated string
		photoURI, note                    sql.NullString
	)

	err := s.Scan(&id, &p.Name, &photoURI, &p.WaterEveryDays, &lastWatered, &note, &created, &updated)
	if err != nil {
		return model.Plant{}, err
	}

	if p.ID, err = uuid.Parse(id); err != nil {
		return model.Plant{}, fmt.Errorf("parse id %q: %w", id, err)
	}

	for _, f := range []struct {
		src string
		dst *time.Time
	}{
		{lastWatered, &p.LastWateredAt},
		{created, &p.CreatedAt},
		{updated, &p.UpdatedAt},
	} {
		if *f.dst, err = time.Parse(time.RFC3339Nano, f.src); err != nil {
			return model.Plant{}, fmt.Errorf("parse time %q: %w", f.src, err)
		}
	}

	p.PhotoURI = stringPtr(photoURI)
	p.Notes = stringPtr(note)

	return p, nil
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}
