package trips

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/FACorreiaa/gonext/internal/app/models"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	ListTrips(ctx context.Context) ([]*models.Trip, error)
	GetTrip(ctx context.Context, id int64) (*models.Trip, error)
	GetCurrentTrip(ctx context.Context) (*models.Trip, error)
	CreateTrip(ctx context.Context, params models.CreateTripParams) (int64, error)
	UpdateTrip(ctx context.Context, id int64, params models.UpdateTripParams) error
	DeleteTrip(ctx context.Context, id int64) error
	SetCurrentTrip(ctx context.Context, id int64) error
	ClearCurrentTrip(ctx context.Context) error
}

type ServiceImpl struct {
	logger         *zap.Logger
	tripRepository Repository
}

func NewService(repo Repository, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:         logger,
		tripRepository: repo,
	}
}

func (s *ServiceImpl) ListTrips(ctx context.Context) ([]*models.Trip, error) {
	ctx, span := otel.Tracer("TripService").Start(ctx, "ListTrips")
	defer span.End()

	trips, err := s.tripRepository.ListTrips(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list trips")
		return nil, err
	}
	span.SetAttributes(attribute.Int("trips.count", len(trips)))
	return trips, nil
}

func (s *ServiceImpl) GetTrip(ctx context.Context, id int64) (*models.Trip, error) {
	ctx, span := otel.Tracer("TripService").Start(ctx, "GetTrip", trace.WithAttributes(
		attribute.Int64("trip.id", id),
	))
	defer span.End()

	trip, err := s.tripRepository.GetTrip(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get trip")
		return nil, err
	}
	return trip, nil
}

func (s *ServiceImpl) GetCurrentTrip(ctx context.Context) (*models.Trip, error) {
	ctx, span := otel.Tracer("TripService").Start(ctx, "GetCurrentTrip")
	defer span.End()

	trip, err := s.tripRepository.GetCurrentTrip(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get current trip")
		return nil, err
	}
	return trip, nil
}

func (s *ServiceImpl) CreateTrip(ctx context.Context, params models.CreateTripParams) (int64, error) {
	ctx, span := otel.Tracer("TripService").Start(ctx, "CreateTrip", trace.WithAttributes(
		attribute.String("trip.title", params.Title),
		attribute.Bool("trip.current", params.Current),
	))
	defer span.End()

	l := s.logger.With(zap.String("method", "CreateTrip"))

	params.Title = strings.TrimSpace(params.Title)
	if params.Title == "" {
		span.SetStatus(codes.Error, "Invalid trip")
		return 0, models.NewValidationError("title", models.ReasonRequired)
	}
	if err := validateDates(params.StartDate, params.EndDate); err != nil {
		span.SetStatus(codes.Error, "Invalid trip dates")
		return 0, err
	}

	id, err := s.tripRepository.CreateTrip(ctx, params)
	if err != nil {
		l.Error("Failed to create trip", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create trip")
		return 0, err
	}

	l.Info("Trip created", zap.Int64("tripID", id), zap.Bool("current", params.Current))
	return id, nil
}

// UpdateTrip applies a patch. When only one of the dates changes, the other
// is read from the stored trip to keep start <= end.
func (s *ServiceImpl) UpdateTrip(ctx context.Context, id int64, params models.UpdateTripParams) error {
	ctx, span := otel.Tracer("TripService").Start(ctx, "UpdateTrip", trace.WithAttributes(
		attribute.Int64("trip.id", id),
	))
	defer span.End()

	l := s.logger.With(zap.String("method", "UpdateTrip"), zap.Int64("tripID", id))

	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			span.SetStatus(codes.Error, "Invalid trip")
			return models.NewValidationError("title", models.ReasonRequired)
		}
		params.Title = &title
	}

	if params.StartDate != nil || params.EndDate != nil {
		start, end, err := s.resolveDates(ctx, id, params)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Invalid trip dates")
			return err
		}
		if err := validateDates(start, end); err != nil {
			span.SetStatus(codes.Error, "Invalid trip dates")
			return err
		}
	}

	if err := s.tripRepository.UpdateTrip(ctx, id, params); err != nil {
		l.Error("Failed to update trip", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update trip")
		return err
	}

	l.Debug("Trip updated")
	return nil
}

func (s *ServiceImpl) resolveDates(ctx context.Context, id int64, params models.UpdateTripParams) (string, string, error) {
	if params.StartDate != nil && params.EndDate != nil {
		return *params.StartDate, *params.EndDate, nil
	}

	stored, err := s.tripRepository.GetTrip(ctx, id)
	if err != nil {
		return "", "", err
	}
	if stored == nil {
		return "", "", fmt.Errorf("no trip found with ID %d: %w", id, models.ErrNotFound)
	}

	start, end := stored.StartDate, stored.EndDate
	if params.StartDate != nil {
		start = *params.StartDate
	}
	if params.EndDate != nil {
		end = *params.EndDate
	}
	return start, end, nil
}

func (s *ServiceImpl) DeleteTrip(ctx context.Context, id int64) error {
	ctx, span := otel.Tracer("TripService").Start(ctx, "DeleteTrip", trace.WithAttributes(
		attribute.Int64("trip.id", id),
	))
	defer span.End()

	if err := s.tripRepository.DeleteTrip(ctx, id); err != nil {
		s.logger.Error("Failed to delete trip", zap.Int64("tripID", id), zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete trip")
		return err
	}

	s.logger.Info("Trip deleted", zap.Int64("tripID", id))
	return nil
}

func (s *ServiceImpl) SetCurrentTrip(ctx context.Context, id int64) error {
	ctx, span := otel.Tracer("TripService").Start(ctx, "SetCurrentTrip", trace.WithAttributes(
		attribute.Int64("trip.id", id),
	))
	defer span.End()

	if err := s.tripRepository.SetCurrentTrip(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to set current trip")
		return err
	}

	s.logger.Info("Current trip changed", zap.Int64("tripID", id))
	return nil
}

func (s *ServiceImpl) ClearCurrentTrip(ctx context.Context) error {
	ctx, span := otel.Tracer("TripService").Start(ctx, "ClearCurrentTrip")
	defer span.End()

	if err := s.tripRepository.ClearCurrentTrip(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to clear current trip")
		return err
	}
	return nil
}

func validateDates(start, end string) error {
	startDate, err := time.Parse(models.DateLayout, start)
	if err != nil {
		return models.NewValidationError("start_date", models.ReasonInvalidDate)
	}
	endDate, err := time.Parse(models.DateLayout, end)
	if err != nil {
		return models.NewValidationError("end_date", models.ReasonInvalidDate)
	}
	if startDate.After(endDate) {
		return models.NewValidationError("start_date", models.ReasonDateOrder)
	}
	return nil
}
