package plant_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/plant-watering/internal/model"
	"github.com/aliskhannn/plant-watering/internal/repository/plant"
	"github.com/aliskhannn/plant-watering/internal/storage"
)

func openSQLite(t *testing.T) storage.PlantRepository {
	t.Helper()

	st, err := storage.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "plants.db"), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	return st.Plants
}

func TestSQLiteRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := openSQLite(t)

	photo := "file:///fern.jpg"
	last := time.Date(2024, 1, 1, 9, 30, 0, 0, time.FixedZone("CET", 3600))

	id, err := repo.CreatePlant(ctx, model.Plant{
		Name:           "Fern",
		PhotoURI:       &photo,
		WaterEveryDays: 4,
		LastWateredAt:  last,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	p, err := repo.GetPlant(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Fern", p.Name)
	assert.Equal(t, 4, p.WaterEveryDays)
	assert.True(t, last.Equal(p.LastWateredAt))
	require.NotNil(t, p.PhotoURI)
	assert.Equal(t, photo, *p.PhotoURI)
	assert.Nil(t, p.Notes)

	notes := "needs shade"
	p.Notes = &notes
	p.WaterEveryDays = 2
	require.NoError(t, repo.UpdatePlant(ctx, p))

	p, err = repo.GetPlant(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, p.WaterEveryDays)
	require.NotNil(t, p.Notes)
	assert.Equal(t, notes, *p.Notes)

	require.NoError(t, repo.DeletePlant(ctx, id))

	_, err = repo.GetPlant(ctx, id)
	assert.ErrorIs(t, err, plant.ErrPlantNotFound)
	assert.ErrorIs(t, repo.DeletePlant(ctx, id), plant.ErrPlantNotFound)
	assert.ErrorIs(t, repo.UpdatePlant(ctx, p), plant.ErrPlantNotFound)
}

func TestSQLiteRepository_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := openSQLite(t)

	plants, err := repo.ListPlants(ctx)
	require.NoError(t, err)
	assert.Empty(t, plants)

	for _, name := range []string{"Cactus", "Fern", "Monstera"} {
		_, err := repo.CreatePlant(ctx, model.Plant{Name: name, WaterEveryDays: 3, LastWateredAt: time.Now()})
		require.NoError(t, err)
	}

	plants, err = repo.ListPlants(ctx)
	require.NoError(t, err)
	require.Len(t, plants, 3)
	assert.Equal(t, "Monstera", plants[0].Name)
	assert.Equal(t, "Cactus", plants[2].Name)
}

func TestSQLiteRepository_RejectsInvalidInterval(t *testing.T) {
	repo := openSQLite(t)

	_, err := repo.CreatePlant(context.Background(), model.Plant{Name: "Fern", WaterEveryDays: 0, LastWateredAt: time.Now()})
	assert.Error(t, err)
}
