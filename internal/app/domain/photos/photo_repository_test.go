package photos

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

func TestPhotoRepository_PlacePhotos(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := NewRepository(db, zap.NewNop())
	placeID := dbtest.InsertPlace(t, db, "Park")

	empty, err := repo.ListPlacePhotos(ctx, placeID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	a, err := repo.AddPlacePhoto(ctx, placeID, "file:///a.jpg")
	require.NoError(t, err)
	b, err := repo.AddPlacePhoto(ctx, placeID, "file:///b.jpg")
	require.NoError(t, err)

	photos, err := repo.ListPlacePhotos(ctx, placeID)
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, a, photos[0].ID)
	assert.Equal(t, "file:///b.jpg", photos[1].FileURI)

	require.NoError(t, repo.DeletePlacePhoto(ctx, a))
	photos, err = repo.ListPlacePhotos(ctx, placeID)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, b, photos[0].ID)

	assert.True(t, errors.Is(repo.DeletePlacePhoto(ctx, a), models.ErrNotFound))
}

func TestPhotoRepository_DanglingOwnerRejected(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(dbtest.New(t), zap.NewNop())

	_, err := repo.AddPlacePhoto(ctx, 42, "file:///x.jpg")
	assert.True(t, errors.Is(err, models.ErrConstraint), "got %v", err)

	_, err = repo.AddTripPlacePhoto(ctx, 42, "file:///x.jpg")
	assert.True(t, errors.Is(err, models.ErrConstraint), "got %v", err)
}

func TestPhotoRepository_TripPlacePhotosCascade(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := NewRepository(db, zap.NewNop())

	tripID := dbtest.InsertTrip(t, db, "Alps", "2026-02-01", false)
	stopID := dbtest.InsertTripPlace(t, db, tripID, dbtest.InsertPlace(t, db, "Hut"), 0, false)

	_, err := repo.AddTripPlacePhoto(ctx, stopID, "file:///hut.jpg")
	require.NoError(t, err)

	photos, err := repo.ListTripPlacePhotos(ctx, stopID)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, stopID, photos[0].TripPlaceID)

	_, err = db.Exec(`DELETE FROM trips WHERE id = ?`, tripID)
	require.NoError(t, err)
	assert.Zero(t, dbtest.Count(t, db, "trip_place_photos"))
}

func TestPhotoRepository_ListAllPhotos(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := NewRepository(db, zap.NewNop())

	items, err := repo.ListAllPhotos(ctx)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	placeID := dbtest.InsertPlace(t, db, "Bridge")
	tripID := dbtest.InsertTrip(t, db, "City", "2026-03-01", false)
	stopID := dbtest.InsertTripPlace(t, db, tripID, placeID, 0, false)

	p1, err := repo.AddPlacePhoto(ctx, placeID, "file:///p1.jpg")
	require.NoError(t, err)
	tp1, err := repo.AddTripPlacePhoto(ctx, stopID, "file:///tp1.jpg")
	require.NoError(t, err)
	p2, err := repo.AddPlacePhoto(ctx, placeID, "file:///p2.jpg")
	require.NoError(t, err)

	items, err = repo.ListAllPhotos(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, models.PhotoItem{ID: p2, FileURI: "file:///p2.jpg", Source: models.PhotoSourcePlace, OwnerID: placeID}, *items[0])
	assert.Equal(t, p1, items[1].ID)
	assert.Equal(t, models.PhotoSourcePlace, items[1].Source)
	assert.Equal(t, models.PhotoItem{ID: tp1, FileURI: "file:///tp1.jpg", Source: models.PhotoSourceTripPlace, OwnerID: stopID}, *items[2])
}
