package trips

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

var _ Repository = (*RepositoryImpl)(nil)

// Repository persists trips. Every write that can raise the current flag
// clears it on all other trips in the same transaction.
type Repository interface {
	ListTrips(ctx context.Context) ([]*models.Trip, error)
	GetTrip(ctx context.Context, id int64) (*models.Trip, error)
	GetCurrentTrip(ctx context.Context) (*models.Trip, error)
	CreateTrip(ctx context.Context, params models.CreateTripParams) (int64, error)
	UpdateTrip(ctx context.Context, id int64, params models.UpdateTripParams) error
	DeleteTrip(ctx context.Context, id int64) error
	SetCurrentTrip(ctx context.Context, id int64) error
	ClearCurrentTrip(ctx context.Context) error
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

const tripColumns = `id, title, description, start_date, end_date, current, created_at`

type tripRow struct {
	ID          int64  `db:"id"`
	Title       string `db:"title"`
	Description string `db:"description"`
	StartDate   string `db:"start_date"`
	EndDate     string `db:"end_date"`
	Current     bool   `db:"current"`
	CreatedAt   string `db:"created_at"`
}

func (r tripRow) toModel() *models.Trip {
	return &models.Trip{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Current:     r.Current,
		CreatedAt:   database.ParseTimestamp(r.CreatedAt),
	}
}

// ListTrips returns all trips, latest start date first
func (r *RepositoryImpl) ListTrips(ctx context.Context) ([]*models.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips ORDER BY start_date DESC, id DESC`

	var rows []tripRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		r.logger.Error("Failed to list trips", zap.Error(err))
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}

	trips := make([]*models.Trip, 0, len(rows))
	for _, row := range rows {
		trips = append(trips, row.toModel())
	}
	return trips, nil
}

func (r *RepositoryImpl) GetTrip(ctx context.Context, id int64) (*models.Trip, error) {
	return r.getOne(ctx, `SELECT `+tripColumns+` FROM trips WHERE id = ?`, id)
}

// GetCurrentTrip returns nil when no trip is flagged current
func (r *RepositoryImpl) GetCurrentTrip(ctx context.Context) (*models.Trip, error) {
	return r.getOne(ctx, `SELECT `+tripColumns+` FROM trips WHERE current = 1 LIMIT 1`)
}

func (r *RepositoryImpl) getOne(ctx context.Context, query string, args ...any) (*models.Trip, error) {
	var row tripRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get trip", zap.Error(err))
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return row.toModel(), nil
}

// CreateTrip inserts a trip and returns its id
func (r *RepositoryImpl) CreateTrip(ctx context.Context, params models.CreateTripParams) (int64, error) {
	query := `
        INSERT INTO trips (title, description, start_date, end_date, current)
        VALUES (?, ?, ?, ?, ?)
    `

	var id int64
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if params.Current {
			if err := clearCurrent(ctx, tx, 0); err != nil {
				return err
			}
		}
		result, err := tx.ExecContext(ctx, query,
			params.Title, params.Description, params.StartDate, params.EndDate, params.Current,
		)
		if err != nil {
			return database.ClassifyError(err)
		}
		id, err = result.LastInsertId()
		return err
	})
	if err != nil {
		r.logger.Error("Failed to create trip", zap.Error(err))
		return 0, fmt.Errorf("failed to create trip: %w", err)
	}
	return id, nil
}

// UpdateTrip writes only the fields set in params. An empty patch is a no-op.
func (r *RepositoryImpl) UpdateTrip(ctx context.Context, id int64, params models.UpdateTripParams) error {
	if params.IsEmpty() {
		return nil
	}

	builder := sq.Update("trips").Where(sq.Eq{"id": id})
	if params.Title != nil {
		builder = builder.Set("title", *params.Title)
	}
	if params.Description != nil {
		builder = builder.Set("description", *params.Description)
	}
	if params.StartDate != nil {
		builder = builder.Set("start_date", *params.StartDate)
	}
	if params.EndDate != nil {
		builder = builder.Set("end_date", *params.EndDate)
	}
	if params.Current != nil {
		builder = builder.Set("current", *params.Current)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build trip update: %w", err)
	}

	err = database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if params.Current != nil && *params.Current {
			if err := clearCurrent(ctx, tx, id); err != nil {
				return err
			}
		}
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return database.ClassifyError(err)
		}
		return database.RequireAffected(result, "trip", id)
	})
	if err != nil {
		r.logger.Error("Failed to update trip", zap.Int64("tripID", id), zap.Error(err))
		return fmt.Errorf("failed to update trip: %w", err)
	}
	return nil
}

// DeleteTrip removes a trip with its itinerary, stop photos and stop recordings
func (r *RepositoryImpl) DeleteTrip(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete trip", zap.Int64("tripID", id), zap.Error(err))
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	return database.RequireAffected(result, "trip", id)
}

// SetCurrentTrip makes id the only current trip
func (r *RepositoryImpl) SetCurrentTrip(ctx context.Context, id int64) error {
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := clearCurrent(ctx, tx, id); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, `UPDATE trips SET current = 1 WHERE id = ?`, id)
		if err != nil {
			return database.ClassifyError(err)
		}
		return database.RequireAffected(result, "trip", id)
	})
	if err != nil {
		r.logger.Error("Failed to set current trip", zap.Int64("tripID", id), zap.Error(err))
		return fmt.Errorf("failed to set current trip: %w", err)
	}
	return nil
}

// ClearCurrentTrip leaves no trip current
func (r *RepositoryImpl) ClearCurrentTrip(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE trips SET current = 0 WHERE current = 1`); err != nil {
		r.logger.Error("Failed to clear current trip", zap.Error(err))
		return fmt.Errorf("failed to clear current trip: %w", err)
	}
	return nil
}

// clearCurrent drops the flag from every trip except keepID.
func clearCurrent(ctx context.Context, tx *sqlx.Tx, keepID int64) error {
	if _, err := tx.ExecContext(ctx, `UPDATE trips SET current = 0 WHERE current = 1 AND id <> ?`, keepID); err != nil {
		return fmt.Errorf("failed to clear current flag: %w", err)
	}
	return nil
}
