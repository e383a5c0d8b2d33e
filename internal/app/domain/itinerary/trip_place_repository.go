package itinerary

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/FACorreiaa/gonext/internal/app/models"
	database "github.com/FACorreiaa/gonext/internal/db"
)

var _ Repository = (*RepositoryImpl)(nil)

// Repository persists itinerary entries (trip_places).
type Repository interface {
	ListTripPlaces(ctx context.Context, tripID int64) ([]*models.TripPlace, error)
	GetTripPlace(ctx context.Context, id int64) (*models.TripPlace, error)
	CreateTripPlace(ctx context.Context, params models.CreateTripPlaceParams) (int64, error)
	UpdateTripPlace(ctx context.Context, id int64, params models.UpdateTripPlaceParams) error
	DeleteTripPlace(ctx context.Context, id int64) error
	NextOrder(ctx context.Context, tripID int64) (int, error)
	SwapOrder(ctx context.Context, aID, bID int64) error
}

type RepositoryImpl struct {
	logger *zap.Logger
	db     *sqlx.DB
	now    func() time.Time
}

func NewRepository(db *sqlx.DB, logger *zap.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger: logger,
		db:     db,
		now:    time.Now,
	}
}

const tripPlaceColumns = `id, trip_id, place_id, "order", visited, visit_date, notes`

type tripPlaceRow struct {
	ID        int64          `db:"id"`
	TripID    int64          `db:"trip_id"`
	PlaceID   int64          `db:"place_id"`
	Order     int            `db:"order"`
	Visited   bool           `db:"visited"`
	VisitDate sql.NullString `db:"visit_date"`
	Notes     string         `db:"notes"`
}

func (r tripPlaceRow) toModel() *models.TripPlace {
	tp := &models.TripPlace{
		ID:      r.ID,
		TripID:  r.TripID,
		PlaceID: r.PlaceID,
		Order:   r.Order,
		Visited: r.Visited,
		Notes:   r.Notes,
	}
	if r.VisitDate.Valid {
		date := r.VisitDate.String
		tp.VisitDate = &date
	}
	return tp
}

// ListTripPlaces returns a trip's itinerary by order, ties broken by id
func (r *RepositoryImpl) ListTripPlaces(ctx context.Context, tripID int64) ([]*models.TripPlace, error) {
	query := `SELECT ` + tripPlaceColumns + ` FROM trip_places WHERE trip_id = ? ORDER BY "order" ASC, id ASC`

	var rows []tripPlaceRow
	if err := r.db.SelectContext(ctx, &rows, query, tripID); err != nil {
		r.logger.Error("Failed to list trip places", zap.Int64("tripID", tripID), zap.Error(err))
		return nil, fmt.Errorf("failed to list trip places: %w", err)
	}

	entries := make([]*models.TripPlace, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.toModel())
	}
	return entries, nil
}

func (r *RepositoryImpl) GetTripPlace(ctx context.Context, id int64) (*models.TripPlace, error) {
	query := `SELECT ` + tripPlaceColumns + ` FROM trip_places WHERE id = ?`

	var row tripPlaceRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get trip place", zap.Int64("tripPlaceID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get trip place: %w", err)
	}
	return row.toModel(), nil
}

// CreateTripPlace inserts an entry at the caller-supplied order. A place can
// appear in a trip only once.
func (r *RepositoryImpl) CreateTripPlace(ctx context.Context, params models.CreateTripPlaceParams) (int64, error) {
	query := `
        INSERT INTO trip_places (trip_id, place_id, "order", visited, visit_date, notes)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	result, err := r.db.ExecContext(ctx, query,
		params.TripID, params.PlaceID, params.Order, params.Visited, params.VisitDate, params.Notes,
	)
	if err != nil {
		r.logger.Error("Failed to create trip place",
			zap.Int64("tripID", params.TripID), zap.Int64("placeID", params.PlaceID), zap.Error(err))
		return 0, fmt.Errorf("failed to create trip place: %w", database.ClassifyError(err))
	}
	return result.LastInsertId()
}

// UpdateTripPlace writes the fields set in params.
//
// visit_date resolution: an explicit VisitDate wins, then ClearVisitDate.
// Otherwise Visited=true stamps today only if the row was not visited yet.
func (r *RepositoryImpl) UpdateTripPlace(ctx context.Context, id int64, params models.UpdateTripPlaceParams) error {
	if params.IsEmpty() {
		return nil
	}

	builder := sq.Update("trip_places").Where(sq.Eq{"id": id})
	if params.Order != nil {
		builder = builder.Set(`"order"`, *params.Order)
	}
	if params.Notes != nil {
		builder = builder.Set("notes", *params.Notes)
	}

	switch {
	case params.VisitDate != nil:
		builder = builder.Set("visit_date", *params.VisitDate)
	case params.ClearVisitDate:
		builder = builder.Set("visit_date", nil)
	case params.Visited != nil && *params.Visited:
		today := r.now().Format(models.DateLayout)
		builder = builder.Set("visit_date", sq.Expr("CASE WHEN visited = 0 THEN ? ELSE visit_date END", today))
	}

	// The CASE above reads the pre-update visited value.
	if params.Visited != nil {
		builder = builder.Set("visited", *params.Visited)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build trip place update: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to update trip place", zap.Int64("tripPlaceID", id), zap.Error(err))
		return fmt.Errorf("failed to update trip place: %w", database.ClassifyError(err))
	}
	return database.RequireAffected(result, "trip place", id)
}

// DeleteTripPlace removes an entry with its photos and recordings
func (r *RepositoryImpl) DeleteTripPlace(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trip_places WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete trip place", zap.Int64("tripPlaceID", id), zap.Error(err))
		return fmt.Errorf("failed to delete trip place: %w", err)
	}
	return database.RequireAffected(result, "trip place", id)
}

// NextOrder returns one past the highest order in the trip, or 0 when the
// trip has no entries.
func (r *RepositoryImpl) NextOrder(ctx context.Context, tripID int64) (int, error) {
	var next int
	query := `SELECT COALESCE(MAX("order") + 1, 0) FROM trip_places WHERE trip_id = ?`
	if err := r.db.GetContext(ctx, &next, query, tripID); err != nil {
		r.logger.Error("Failed to read next order", zap.Int64("tripID", tripID), zap.Error(err))
		return 0, fmt.Errorf("failed to read next order: %w", err)
	}
	return next, nil
}

// SwapOrder exchanges the order values of two entries atomically.
func (r *RepositoryImpl) SwapOrder(ctx context.Context, aID, bID int64) error {
	if aID == bID {
		return nil
	}

	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		orderOf := func(id int64) (int, error) {
			var order int
			if err := tx.GetContext(ctx, &order, `SELECT "order" FROM trip_places WHERE id = ?`, id); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return 0, fmt.Errorf("no trip place found with ID %d: %w", id, models.ErrNotFound)
				}
				return 0, err
			}
			return order, nil
		}

		aOrder, err := orderOf(aID)
		if err != nil {
			return err
		}
		bOrder, err := orderOf(bID)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `UPDATE trip_places SET "order" = ? WHERE id = ?`, bOrder, aID); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `UPDATE trip_places SET "order" = ? WHERE id = ?`, aOrder, bID)
		return err
	})
	if err != nil {
		r.logger.Error("Failed to swap order", zap.Int64("a", aID), zap.Int64("b", bID), zap.Error(err))
		return fmt.Errorf("failed to swap order: %w", err)
	}
	return nil
}
