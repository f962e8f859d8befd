package plant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/aliskhannn/plant-watering/internal/model"
)

var ErrPlantNotFound = errors.New("plant not found")

// Repository provides methods to interact with the plants table in PostgreSQL.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new plant repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// CreatePlant inserts a new plant into the database and returns its ID.
func (r *Repository) CreatePlant(ctx context.Context, plant model.Plant) (uuid.UUID, error) {
	query := `
		INSERT INTO plants (
		    name, photo_uri, water_every_days, last_watered_at, notes
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id;
    `

	err := r.db.QueryRowContext(
		ctx, query, plant.Name, nullString(plant.PhotoURI), plant.WaterEveryDays, plant.LastWateredAt, nullString(plant.Notes),
	).Scan(&plant.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create plant: %w", err)
	}

	return plant.ID, nil
}

// GetPlant retrieves a plant by its ID.
func (r *Repository) GetPlant(ctx context.Context, id uuid.UUID) (model.Plant, error) {
	query := `
		SELECT id, name, photo_uri, water_every_days, last_watered_at, notes, created_at, updated_at
		FROM plants
		WHERE id = $1;
    `

	p, err := scanPlant(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Plant{}, ErrPlantNotFound
		}

		return model.Plant{}, fmt.Errorf("failed to get plant: %w", err)
	}

	return p, nil
}

// ListPlants retrieves all plants, newest first.
func (r *Repository) ListPlants(ctx context.Context) ([]model.Plant, error) {
	query := `
		SELECT id, name, photo_uri, water_every_days, last_watered_at, notes, created_at, updated_at
		FROM plants
		ORDER BY created_at DESC;
    `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list plants: %w", err)
	}
	defer rows.Close()

	plants := make([]model.Plant, 0)
	for rows.Next() {
		p, err := scanPlant(rows)
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
func (r *Repository) UpdatePlant(ctx context.Context, plant model.Plant) error {
	query := `
		UPDATE plants
		SET name = $1, photo_uri = $2, water_every_days = $3, last_watered_at = $4, notes = $5, updated_at = now()
		WHERE id = $6;
    `

	res, err := r.db.ExecContext(
		ctx, query, plant.Name, nullString(plant.PhotoURI), plant.WaterEveryDays, plant.LastWateredAt, nullString(plant.Notes), plant.ID,
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
func (r *Repository) DeletePlant(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM plants
		WHERE id = $1;
    `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete plant: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrPlantNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlant(s scanner) (model.Plant, error) {
	var (
		p              model.Plant
		photoURI, note sql.NullString
	)

	err := s.Scan(&p.ID, &p.Name, &photoURI, &p.WaterEveryDays, &p.LastWateredAt, &note, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return model.Plant{}, err
	}

	p.PhotoURI = stringPtr(photoURI)
	p.Notes = stringPtr(note)

	return p, nil
}

func nullString(v *string) any {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}

	return *v
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}

	return &v.String
}
