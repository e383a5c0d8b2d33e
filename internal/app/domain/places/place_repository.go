package places

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/FACorreiaa/gonext/internal/app/models"
	database "github.com/FACorreiaa/gonext/internal/db"
)

// Ensure RepositoryImpl implements the Repository interface
var _ Repository = (*RepositoryImpl)(nil)

// Repository defines persistence operations on the places catalog
type Repository interface {
	ListPlaces(ctx context.Context) ([]*models.Place, error)
	GetPlace(ctx context.Context, id int64) (*models.Place, error)
	CreatePlace(ctx context.Context, params models.CreatePlaceParams) (int64, error)
	UpdatePlace(ctx context.Context, id int64, params models.UpdatePlaceParams) error
	DeletePlace(ctx context.Context, id int64) error
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

const placeColumns = `id, name, description, visit_later, liked, lat, lon, created_at`

type placeRow struct {
	ID          int64   `db:"id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	VisitLater  bool    `db:"visit_later"`
	Liked       bool    `db:"liked"`
	Lat         float64 `db:"lat"`
	Lon         float64 `db:"lon"`
	CreatedAt   string  `db:"created_at"`
}

func (r placeRow) toModel() *models.Place {
	return &models.Place{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		VisitLater:  r.VisitLater,
		Liked:       r.Liked,
		Lat:         r.Lat,
		Lon:         r.Lon,
		CreatedAt:   database.ParseTimestamp(r.CreatedAt),
	}
}

// ListPlaces returns every place, newest first
func (r *RepositoryImpl) ListPlaces(ctx context.Context) ([]*models.Place, error) {
	query := `SELECT ` + placeColumns + ` FROM places ORDER BY created_at DESC, id DESC`

	var rows []placeRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		r.logger.Error("Failed to list places", zap.Error(err))
		return nil, fmt.Errorf("failed to list places: %w", err)
	}

	places := make([]*models.Place, 0, len(rows))
	for _, row := range rows {
		places = append(places, row.toModel())
	}
	return places, nil
}

// GetPlace returns the place with the given id, or nil if there is none
func (r *RepositoryImpl) GetPlace(ctx context.Context, id int64) (*models.Place, error) {
	query := `SELECT ` + placeColumns + ` FROM places WHERE id = ?`

	var row placeRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get place", zap.Int64("placeID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get place: %w", err)
	}
	return row.toModel(), nil
}

// CreatePlace inserts a place and returns its id
func (r *RepositoryImpl) CreatePlace(ctx context.Context, params models.CreatePlaceParams) (int64, error) {
	query := `
        INSERT INTO places (name, description, visit_later, liked, lat, lon)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	result, err := r.db.ExecContext(ctx, query,
		params.Name, params.Description, params.VisitLater, params.Liked, params.Lat, params.Lon,
	)
	if err != nil {
		r.logger.Error("Failed to create place", zap.Error(err))
		return 0, fmt.Errorf("failed to create place: %w", database.ClassifyError(err))
	}
	return result.LastInsertId()
}

// UpdatePlace writes only the fields set in params. An empty patch is a no-op.
func (r *RepositoryImpl) UpdatePlace(ctx context.Context, id int64, params models.UpdatePlaceParams) error {
	if params.IsEmpty() {
		return nil
	}

	builder := sq.Update("places").Where(sq.Eq{"id": id})
	if params.Name != nil {
		builder = builder.Set("name", *params.Name)
	}
	if params.Description != nil {
		builder = builder.Set("description", *params.Description)
	}
	if params.VisitLater != nil {
		builder = builder.Set("visit_later", *params.VisitLater)
	}
	if params.Liked != nil {
		builder = builder.Set("liked", *params.Liked)
	}
	if params.Lat != nil {
		builder = builder.Set("lat", *params.Lat)
	}
	if params.Lon != nil {
		builder = builder.Set("lon", *params.Lon)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build place update: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to update place", zap.Int64("placeID", id), zap.Error(err))
		return fmt.Errorf("failed to update place: %w", database.ClassifyError(err))
	}
	return database.RequireAffected(result, "place", id)
}

// DeletePlace removes a place; photos, recordings and itinerary entries
// referencing it go with it
func (r *RepositoryImpl) DeletePlace(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM places WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete place", zap.Int64("placeID", id), zap.Error(err))
		return fmt.Errorf("failed to delete place: %w", database.ClassifyError(err))
	}
	return database.RequireAffected(result, "place", id)
}
