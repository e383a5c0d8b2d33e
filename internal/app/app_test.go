package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/FACorreiaa/gonext/internal/app/models"
	"github.com/FACorreiaa/gonext/internal/pkg/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Repositories: config.RepositoriesConfig{
			SQLite: config.SQLiteConfig{Path: filepath.Join(dir, "app.db"), BusyTimeout: time.Second},
		},
		MediaDir: filepath.Join(dir, "media"),
		LogLevel: zapcore.InfoLevel,
	}
	a, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestAppEndToEnd(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)

	next, err := a.NextPlace.Resolve(ctx)
	require.NoError(t, err)
	assert.Nil(t, next)

	museum, err := a.Places.CreatePlace(ctx, models.NewCreatePlaceParams("Museum"))
	require.NoError(t, err)
	park, err := a.Places.CreatePlace(ctx, models.NewCreatePlaceParams("Park"))
	require.NoError(t, err)

	tripID, err := a.Trips.CreateTrip(ctx, models.CreateTripParams{
		Title:     "Weekend",
		StartDate: "2026-10-17",
		EndDate:   "2026-10-18",
		Current:   true,
	})
	require.NoError(t, err)

	first, err := a.Itinerary.AddPlaceToTrip(ctx, tripID, museum)
	require.NoError(t, err)
	second, err := a.Itinerary.AddPlaceToTrip(ctx, tripID, park)
	require.NoError(t, err)

	next, err = a.NextPlace.Resolve(ctx)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, "Museum", next.Place.Name)

	visited := true
	require.NoError(t, a.Itinerary.UpdateTripPlace(ctx, first, models.UpdateTripPlaceParams{Visited: &visited}))

	next, err = a.NextPlace.Resolve(ctx)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, second, next.TripPlace.ID)
	assert.Equal(t, "Park", next.Place.Name)

	_, err = a.Recordings.CreateRecording(ctx, models.CreateRecordingParams{AudioURI: "file:///memo.m4a", TripPlaceID: &second})
	require.NoError(t, err)

	details, err := a.Itinerary.ListTripPlacesWithDetails(ctx, tripID)
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, "Museum", details[0].Place.Name)
	assert.NotNil(t, details[0].VisitDate)
	assert.Len(t, details[1].Recordings, 1)
}
