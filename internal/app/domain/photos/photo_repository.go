package photos

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/FACorreiaa/gonext/internal/app/models"
	database "github.com/FACorreiaa/gonext/internal/db"
)

var _ Repository = (*RepositoryImpl)(nil)

// Repository stores photo references for places and trip stops. Photos are
// immutable once attached; replacing one is delete then add.
type Repository interface {
	ListPlacePhotos(ctx context.Context, placeID int64) ([]*models.PlacePhoto, error)
	AddPlacePhoto(ctx context.Context, placeID int64, fileURI string) (int64, error)
	DeletePlacePhoto(ctx context.Context, id int64) error

	ListTripPlacePhotos(ctx context.Context, tripPlaceID int64) ([]*models.TripPlacePhoto, error)
	AddTripPlacePhoto(ctx context.Context, tripPlaceID int64, fileURI string) (int64, error)
	DeleteTripPlacePhoto(ctx context.Context, id int64) error

	ListAllPhotos(ctx context.Context) ([]*models.PhotoItem, error)
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

func (r *RepositoryImpl) ListPlacePhotos(ctx context.Context, placeID int64) ([]*models.PlacePhoto, error) {
	query := `SELECT id, place_id, file_uri FROM place_photos WHERE place_id = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, placeID)
	if err != nil {
		r.logger.Error("Failed to list place photos", zap.Int64("placeID", placeID), zap.Error(err))
		return nil, fmt.Errorf("failed to list place photos: %w", err)
	}
	defer rows.Close()

	photos := []*models.PlacePhoto{}
	for rows.Next() {
		var p models.PlacePhoto
		if err := rows.Scan(&p.ID, &p.PlaceID, &p.FileURI); err != nil {
			r.logger.Error("Failed to scan place photo", zap.Error(err))
			return nil, fmt.Errorf("failed to scan place photo: %w", err)
		}
		photos = append(photos, &p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating place photo rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating place photo rows: %w", err)
	}
	return photos, nil
}

func (r *RepositoryImpl) AddPlacePhoto(ctx context.Context, placeID int64, fileURI string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO place_photos (place_id, file_uri) VALUES (?, ?)`, placeID, fileURI)
	if err != nil {
		r.logger.Error("Failed to add place photo", zap.Int64("placeID", placeID), zap.Error(err))
		return 0, fmt.Errorf("failed to add place photo: %w", database.ClassifyError(err))
	}
	return result.LastInsertId()
}

func (r *RepositoryImpl) DeletePlacePhoto(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM place_photos WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete place photo", zap.Int64("photoID", id), zap.Error(err))
		return fmt.Errorf("failed to delete place photo: %w", err)
	}
	return database.RequireAffected(result, "place photo", id)
}

func (r *RepositoryImpl) ListTripPlacePhotos(ctx context.Context, tripPlaceID int64) ([]*models.TripPlacePhoto, error) {
	query := `SELECT id, trip_place_id, file_uri FROM trip_place_photos WHERE trip_place_id = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, tripPlaceID)
	if err != nil {
		r.logger.Error("Failed to list trip place photos", zap.Int64("tripPlaceID", tripPlaceID), zap.Error(err))
		return nil, fmt.Errorf("failed to list trip place photos: %w", err)
	}
	defer rows.Close()

	photos := []*models.TripPlacePhoto{}
	for rows.Next() {
		var p models.TripPlacePhoto
		if err := rows.Scan(&p.ID, &p.TripPlaceID, &p.FileURI); err != nil {
			r.logger.Error("Failed to scan trip place photo", zap.Error(err))
			return nil, fmt.Errorf("failed to scan trip place photo: %w", err)
		}
		photos = append(photos, &p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating trip place photo rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating trip place photo rows: %w", err)
	}
	return photos, nil
}

func (r *RepositoryImpl) AddTripPlacePhoto(ctx context.Context, tripPlaceID int64, fileURI string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO trip_place_photos (trip_place_id, file_uri) VALUES (?, ?)`, tripPlaceID, fileURI)
	if err != nil {
		r.logger.Error("Failed to add trip place photo", zap.Int64("tripPlaceID", tripPlaceID), zap.Error(err))
		return 0, fmt.Errorf("failed to add trip place photo: %w", database.ClassifyError(err))
	}
	return result.LastInsertId()
}

func (r *RepositoryImpl) DeleteTripPlacePhoto(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trip_place_photos WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete trip place photo", zap.Int64("photoID", id), zap.Error(err))
		return fmt.Errorf("failed to delete trip place photo: %w", err)
	}
	return database.RequireAffected(result, "trip place photo", id)
}

// ListAllPhotos returns the gallery: place photos first, then trip stop
// photos, newest first within each group.
func (r *RepositoryImpl) ListAllPhotos(ctx context.Context) ([]*models.PhotoItem, error) {
	query := `
        SELECT id, file_uri, source, owner_id FROM (
            SELECT id, file_uri, 'place' AS source, place_id AS owner_id, 0 AS grp FROM place_photos
            UNION ALL
            SELECT id, file_uri, 'trip_place' AS source, trip_place_id AS owner_id, 1 AS grp FROM trip_place_photos
        )
        ORDER BY grp, id DESC
    `
	var items []*models.PhotoItem
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		r.logger.Error("Failed to list all photos", zap.Error(err))
		return nil, fmt.Errorf("failed to list all photos: %w", err)
	}
	if items == nil {
		items = []*models.PhotoItem{}
	}
	return items, nil
}
