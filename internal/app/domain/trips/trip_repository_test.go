package trips

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/gonext/internal/app/models"
	"github.com/FACorreiaa/gonext/internal/db/dbtest"
)

func ptr[T any](v T) *T { return &v }

func countCurrent(t *testing.T, repo *RepositoryImpl) int {
	t.Helper()
	trips, err := repo.ListTrips(context.Background())
	require.NoError(t, err)
	n := 0
	for _, trip := range trips {
		if trip.Current {
			n++
		}
	}
	return n
}

func newTrip(title, start, end string, current bool) models.CreateTripParams {
	return models.CreateTripParams{Title: title, StartDate: start, EndDate: end, Current: current}
}

func TestTripRepository_AtMostOneCurrent(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(dbtest.New(t), zap.NewNop())

	none, err := repo.GetCurrentTrip(ctx)
	require.NoError(t, err)
	assert.Nil(t, none)

	a, err := repo.CreateTrip(ctx, newTrip("A", "2026-01-01", "2026-01-05", true))
	require.NoError(t, err)
	b, err := repo.CreateTrip(ctx, newTrip("B", "2026-02-01", "2026-02-05", true))
	require.NoError(t, err)
	c, err := repo.CreateTrip(ctx, newTrip("C", "2026-03-01", "2026-03-05", false))
	require.NoError(t, err)

	current, err := repo.GetCurrentTrip(ctx)
	require.NoError(t, err)
	assert.Equal(t, b, current.ID)
	assert.Equal(t, 1, countCurrent(t, repo))

	require.NoError(t, repo.UpdateTrip(ctx, c, models.UpdateTripParams{Current: ptr(true)}))
	current, err = repo.GetCurrentTrip(ctx)
	require.NoError(t, err)
	assert.Equal(t, c, current.ID)
	assert.Equal(t, 1, countCurrent(t, repo))

	require.NoError(t, repo.SetCurrentTrip(ctx, a))
	current, err = repo.GetCurrentTrip(ctx)
	require.NoError(t, err)
	assert.Equal(t, a, current.ID)
	assert.Equal(t, 1, countCurrent(t, repo))

	// re-setting the same trip keeps it current
	require.NoError(t, repo.SetCurrentTrip(ctx, a))
	assert.Equal(t, 1, countCurrent(t, repo))

	require.NoError(t, repo.ClearCurrentTrip(ctx))
	assert.Zero(t, countCurrent(t, repo))
}

func TestTripRepository_SetCurrentMissingKeepsState(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(dbtest.New(t), zap.NewNop())

	a, err := repo.CreateTrip(ctx, newTrip("A", "2026-01-01", "2026-01-05", true))
	require.NoError(t, err)

	err = repo.SetCurrentTrip(ctx, 999)
	assert.True(t, errors.Is(err, models.ErrNotFound))

	current, err := repo.GetCurrentTrip(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, a, current.ID)

	err = repo.UpdateTrip(ctx, 999, models.UpdateTripParams{Current: ptr(true)})
	assert.True(t, errors.Is(err, models.ErrNotFound))
	assert.Equal(t, 1, countCurrent(t, repo))
}

func TestTripRepository_StoreRejectsSecondCurrent(t *testing.T) {
	db := dbtest.New(t)
	dbtest.InsertTrip(t, db, "A", "2026-01-01", true)

	_, err := db.Exec(`INSERT INTO trips (title, start_date, end_date, current) VALUES ('B', '2026-02-01', '2026-02-02', 1)`)
	assert.Error(t, err)
}

func TestTripRepository_ListOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(dbtest.New(t), zap.NewNop())

	early, err := repo.CreateTrip(ctx, newTrip("early", "2025-05-01", "2025-05-02", false))
	require.NoError(t, err)
	late, err := repo.CreateTrip(ctx, newTrip("late", "2026-05-01", "2026-05-02", false))
	require.NoError(t, err)
	sameDay, err := repo.CreateTrip(ctx, newTrip("late again", "2026-05-01", "2026-05-03", false))
	require.NoError(t, err)

	trips, err := repo.ListTrips(ctx)
	require.NoError(t, err)
	require.Len(t, trips, 3)
	assert.Equal(t, []int64{sameDay, late, early}, []int64{trips[0].ID, trips[1].ID, trips[2].ID})
}

func TestTripRepository_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(dbtest.New(t), zap.NewNop())

	params := newTrip("Lisbon", "2026-07-01", "2026-07-10", true)
	params.Description = "summer"
	id, err := repo.CreateTrip(ctx, params)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateTrip(ctx, id, models.UpdateTripParams{EndDate: ptr("2026-07-12")}))

	trip, err := repo.GetTrip(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", trip.Title)
	assert.Equal(t, "summer", trip.Description)
	assert.Equal(t, "2026-07-01", trip.StartDate)
	assert.Equal(t, "2026-07-12", trip.EndDate)
	assert.True(t, trip.Current)

	assert.NoError(t, repo.UpdateTrip(ctx, id, models.UpdateTripParams{}))

	require.NoError(t, repo.UpdateTrip(ctx, id, models.UpdateTripParams{Current: ptr(false)}))
	current, err := repo.GetCurrentTrip(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestTripRepository_DeleteCascadesItinerary(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := NewRepository(db, zap.NewNop())

	tripID := dbtest.InsertTrip(t, db, "Rome", "2026-05-01", false)
	placeID := dbtest.InsertPlace(t, db, "Colosseum")
	stopID := dbtest.InsertTripPlace(t, db, tripID, placeID, 0, false)
	_, err := db.Exec(`INSERT INTO recordings (audio_uri, trip_place_id) VALUES ('file:///r.m4a', ?)`, stopID)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteTrip(ctx, tripID))

	assert.Zero(t, dbtest.Count(t, db, "trip_places"))
	assert.Zero(t, dbtest.Count(t, db, "recordings"))
	assert.Equal(t, 1, dbtest.Count(t, db, "places"))

	assert.True(t, errors.Is(repo.DeleteTrip(ctx, tripID), models.ErrNotFound))

	trip, err := repo.GetTrip(ctx, tripID)
	assert.NoError(t, err)
	assert.Nil(t, trip)
}
