package recordings

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

func TestRecordingRepository_OwnershipExclusive(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := NewRepository(db, zap.NewNop())

	placeID := dbtest.InsertPlace(t, db, "Square")
	tripID := dbtest.InsertTrip(t, db, "Walk", "2026-04-01", false)
	stopID := dbtest.InsertTripPlace(t, db, tripID, placeID, 0, false)

	tests := []struct {
		name    string
		params  models.CreateRecordingParams
		wantErr bool
	}{
		{name: "place only", params: models.CreateRecordingParams{AudioURI: "file:///a.m4a", PlaceID: &placeID}},
		{name: "trip place only", params: models.CreateRecordingParams{AudioURI: "file:///b.m4a", TripPlaceID: &stopID}},
		{name: "both owners", params: models.CreateRecordingParams{AudioURI: "file:///c.m4a", PlaceID: &placeID, TripPlaceID: &stopID}, wantErr: true},
		{name: "no owner", params: models.CreateRecordingParams{AudioURI: "file:///d.m4a"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := repo.CreateRecording(ctx, tc.params)
			if tc.wantErr {
				assert.True(t, errors.Is(err, models.ErrConstraint), "got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}

	assert.Equal(t, 2, dbtest.Count(t, db, "recordings"))
}

func TestRecordingRepository_ListOldestFirst(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := NewRepository(db, zap.NewNop())
	placeID := dbtest.InsertPlace(t, db, "Harbor")

	first, err := repo.CreateRecording(ctx, models.CreateRecordingParams{
		AudioURI:        "file:///1.m4a",
		TranscribedText: ptr("boats"),
		PlaceID:         &placeID,
	})
	require.NoError(t, err)
	second, err := repo.CreateRecording(ctx, models.CreateRecordingParams{AudioURI: "file:///2.m4a", PlaceID: &placeID})
	require.NoError(t, err)

	recordings, err := repo.ListByPlace(ctx, placeID)
	require.NoError(t, err)
	require.Len(t, recordings, 2)

	assert.Equal(t, first, recordings[0].ID)
	require.NotNil(t, recordings[0].TranscribedText)
	assert.Equal(t, "boats", *recordings[0].TranscribedText)
	assert.Equal(t, placeID, *recordings[0].PlaceID)
	assert.Nil(t, recordings[0].TripPlaceID)
	assert.False(t, recordings[0].CreatedAt.IsZero())

	assert.Equal(t, second, recordings[1].ID)
	assert.Nil(t, recordings[1].TranscribedText)

	none, err := repo.ListByTripPlace(ctx, 99)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestRecordingRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := NewRepository(db, zap.NewNop())

	tripID := dbtest.InsertTrip(t, db, "Tour", "2026-04-01", false)
	stopID := dbtest.InsertTripPlace(t, db, tripID, dbtest.InsertPlace(t, db, "Gate"), 0, false)
	id, err := repo.CreateRecording(ctx, models.CreateRecordingParams{AudioURI: "file:///g.m4a", TripPlaceID: &stopID})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateTranscribedText(ctx, id, "north gate"))
	recordings, err := repo.ListByTripPlace(ctx, stopID)
	require.NoError(t, err)
	require.Len(t, recordings, 1)
	assert.Equal(t, "north gate", *recordings[0].TranscribedText)

	require.NoError(t, repo.DeleteRecording(ctx, id))
	assert.True(t, errors.Is(repo.DeleteRecording(ctx, id), models.ErrNotFound))
	assert.True(t, errors.Is(repo.UpdateTranscribedText(ctx, id, "x"), models.ErrNotFound))
}

func TestRecordingRepository_CascadeWithTripPlace(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := NewRepository(db, zap.NewNop())

	tripID := dbtest.InsertTrip(t, db, "Tour", "2026-04-01", false)
	stopID := dbtest.InsertTripPlace(t, db, tripID, dbtest.InsertPlace(t, db, "Gate"), 0, false)
	_, err := repo.CreateRecording(ctx, models.CreateRecordingParams{AudioURI: "file:///g.m4a", TripPlaceID: &stopID})
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM trip_places WHERE id = ?`, stopID)
	require.NoError(t, err)
	assert.Zero(t, dbtest.Count(t, db, "recordings"))
}
