package recordings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/FACorreiaa/gonext/internal/app/models"
	database "github.com/FACorreiaa/gonext/internal/db"
)

var _ Repository = (*RepositoryImpl)(nil)

// Repository stores voice memos. Each recording belongs to exactly one of a
// place or a trip stop; the schema rejects anything else.
type Repository interface {
	ListByPlace(ctx context.Context, placeID int64) ([]*models.Recording, error)
	ListByTripPlace(ctx context.Context, tripPlaceID int64) ([]*models.Recording, error)
	CreateRecording(ctx context.Context, params models.CreateRecordingParams) (int64, error)
	UpdateTranscribedText(ctx context.Context, id int64, text string) error
	DeleteRecording(ctx context.Context, id int64) error
}

type RepositoryImpl struct {
	logger *zap.Logger
	db     *sqlx.DB
}

func NewRepository(db *sqlx.DB, logger *zap.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger: logger,
		db:     db,
	}
}

const recordingColumns = `id, audio_uri, transcribed_text, created_at, place_id, trip_place_id`

type recordingRow struct {
	ID              int64          `db:"id"`
	AudioURI        string         `db:"audio_uri"`
	TranscribedText sql.NullString `db:"transcribed_text"`
	CreatedAt       string         `db:"created_at"`
	PlaceID         sql.NullInt64  `db:"place_id"`
	TripPlaceID     sql.NullInt64  `db:"trip_place_id"`
}

func (r recordingRow) toModel() *models.Recording {
	rec := &models.Recording{
		ID:        r.ID,
		AudioURI:  r.AudioURI,
		CreatedAt: database.ParseTimestamp(r.CreatedAt),
	}
	if r.TranscribedText.Valid {
		text := r.TranscribedText.String
		rec.TranscribedText = &text
	}
	if r.PlaceID.Valid {
		id := r.PlaceID.Int64
		rec.PlaceID = &id
	}
	if r.TripPlaceID.Valid {
		id := r.TripPlaceID.Int64
		rec.TripPlaceID = &id
	}
	return rec
}

// ListByPlace returns the place's recordings, oldest first
func (r *RepositoryImpl) ListByPlace(ctx context.Context, placeID int64) ([]*models.Recording, error) {
	return r.list(ctx, "place_id", placeID)
}

// ListByTripPlace returns the trip stop's recordings, oldest first
func (r *RepositoryImpl) ListByTripPlace(ctx context.Context, tripPlaceID int64) ([]*models.Recording, error) {
	return r.list(ctx, "trip_place_id", tripPlaceID)
}

func (r *RepositoryImpl) list(ctx context.Context, ownerColumn string, ownerID int64) ([]*models.Recording, error) {
	query := `SELECT ` + recordingColumns + ` FROM recordings WHERE ` + ownerColumn + ` = ? ORDER BY created_at, id`

	var rows []recordingRow
	if err := r.db.SelectContext(ctx, &rows, query, ownerID); err != nil {
		r.logger.Error("Failed to list recordings", zap.String("owner", ownerColumn), zap.Int64("ownerID", ownerID), zap.Error(err))
		return nil, fmt.Errorf("failed to list recordings: %w", err)
	}

	recordings := make([]*models.Recording, 0, len(rows))
	for _, row := range rows {
		recordings = append(recordings, row.toModel())
	}
	return recordings, nil
}

func (r *RepositoryImpl) CreateRecording(ctx context.Context, params models.CreateRecordingParams) (int64, error) {
	query := `INSERT INTO recordings (audio_uri, transcribed_text, place_id, trip_place_id) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, params.AudioURI, params.TranscribedText, params.PlaceID, params.TripPlaceID)
	if err != nil {
		r.logger.Error("Failed to create recording", zap.Error(err))
		return 0, fmt.Errorf("failed to create recording: %w", database.ClassifyError(err))
	}
	return result.LastInsertId()
}

func (r *RepositoryImpl) UpdateTranscribedText(ctx context.Context, id int64, text string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE recordings SET transcribed_text = ? WHERE id = ?`, text, id)
	if err != nil {
		r.logger.Error("Failed to update transcription", zap.Int64("recordingID", id), zap.Error(err))
		return fmt.Errorf("failed to update transcription: %w", err)
	}
	return database.RequireAffected(result, "recording", id)
}

func (r *RepositoryImpl) DeleteRecording(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM recordings WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete recording", zap.Int64("recordingID", id), zap.Error(err))
		return fmt.Errorf("failed to delete recording: %w", err)
	}
	return database.RequireAffected(result, "recording", id)
}
