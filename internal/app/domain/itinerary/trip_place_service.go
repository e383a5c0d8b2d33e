package itinerary

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/gonext/internal/app/models"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	ListTripPlaces(ctx context.Context, tripID int64) ([]*models.TripPlace, error)
	ListTripPlacesWithDetails(ctx context.Context, tripID int64) ([]*models.TripPlaceWithDetails, error)
	GetTripPlace(ctx context.Context, id int64) (*models.TripPlace, error)
	CreateTripPlace(ctx context.Context, params models.CreateTripPlaceParams) (int64, error)
	AddPlaceToTrip(ctx context.Context, tripID, placeID int64) (int64, error)
	UpdateTripPlace(ctx context.Context, id int64, params models.UpdateTripPlaceParams) error
	DeleteTripPlace(ctx context.Context, id int64) error
	NextOrder(ctx context.Context, tripID int64) (int, error)
	SwapOrder(ctx context.Context, aID, bID int64) error
}

type PlaceGetter interface {
	GetPlace(ctx context.Context, id int64) (*models.Place, error)
}

type PhotoLister interface {
	ListTripPlacePhotos(ctx context.Context, tripPlaceID int64) ([]*models.TripPlacePhoto, error)
}

type RecordingLister interface {
	ListByTripPlace(ctx context.Context, tripPlaceID int64) ([]*models.Recording, error)
}

// detailsConcurrency bounds the lookups in flight while composing details.
const detailsConcurrency = 4

type ServiceImpl struct {
	logger              *zap.Logger
	tripPlaceRepository Repository
	places              PlaceGetter
	photos              PhotoLister
	recordings          RecordingLister
}

func NewService(repo Repository, places PlaceGetter, photos PhotoLister, recordings RecordingLister, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:              logger,
		tripPlaceRepository: repo,
		places:              places,
		photos:              photos,
		recordings:          recordings,
	}
}

func (s *ServiceImpl) ListTripPlaces(ctx context.Context, tripID int64) ([]*models.TripPlace, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "ListTripPlaces", trace.WithAttributes(
		attribute.Int64("trip.id", tripID),
	))
	defer span.End()

	entries, err := s.tripPlaceRepository.ListTripPlaces(ctx, tripID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list trip places")
		return nil, err
	}
	span.SetAttributes(attribute.Int("trip_places.count", len(entries)))
	return entries, nil
}

// ListTripPlacesWithDetails resolves each entry's place, photos and
// recordings. Entries keep itinerary order; a dangling place stays nil.
func (s *ServiceImpl) ListTripPlacesWithDetails(ctx context.Context, tripID int64) ([]*models.TripPlaceWithDetails, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "ListTripPlacesWithDetails", trace.WithAttributes(
		attribute.Int64("trip.id", tripID),
	))
	defer span.End()

	entries, err := s.tripPlaceRepository.ListTripPlaces(ctx, tripID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list trip places")
		return nil, err
	}

	details := make([]*models.TripPlaceWithDetails, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(detailsConcurrency)
	for i, entry := range entries {
		entry := entry
		detail :=&models.TripPlaceWithDetails{TripPlace: *entry}
		details[i] = detail

		g.Go(func() error {
			place, err := s.places.GetPlace(gctx, entry.PlaceID)
			if err != nil {
				return err
			}
			detail.Place = place
			return nil
		})
		g.Go(func() error {
			photos, err := s.photos.ListTripPlacePhotos(gctx, entry.ID)
			if err != nil {
				return err
			}
			detail.Photos = photos
			return nil
		})
		g.Go(func() error {
			recordings, err := s.recordings.ListByTripPlace(gctx, entry.ID)
			if err != nil {
				return err
			}
			detail.Recordings = recordings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to load itinerary details", zap.Int64("tripID", tripID), zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to load itinerary details")
		return nil, fmt.Errorf("failed to load details for trip %d: %w", tripID, err)
	}
	return details, nil
}

func (s *ServiceImpl) GetTripPlace(ctx context.Context, id int64) (*models.TripPlace, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GetTripPlace", trace.WithAttributes(
		attribute.Int64("trip_place.id", id),
	))
	defer span.End()

	entry, err := s.tripPlaceRepository.GetTripPlace(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get trip place")
		return nil, err
	}
	return entry, nil
}

func (s *ServiceImpl) CreateTripPlace(ctx context.Context, params models.CreateTripPlaceParams) (int64, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "CreateTripPlace", trace.WithAttributes(
		attribute.Int64("trip.id", params.TripID),
		attribute.Int64("place.id", params.PlaceID),
	))
	defer span.End()

	if params.VisitDate != nil {
		if err := validateVisitDate(*params.VisitDate); err != nil {
			span.SetStatus(codes.Error, "Invalid visit date")
			return 0, err
		}
	}

	id, err := s.tripPlaceRepository.CreateTripPlace(ctx, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create trip place")
		return 0, err
	}

	s.logger.Debug("Trip place created", zap.Int64("tripPlaceID", id), zap.Int("order", params.Order))
	return id, nil
}

// AddPlaceToTrip appends placeID at the end of the trip's itinerary.
func (s *ServiceImpl) AddPlaceToTrip(ctx context.Context, tripID, placeID int64) (int64, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "AddPlaceToTrip", trace.WithAttributes(
		attribute.Int64("trip.id", tripID),
		attribute.Int64("place.id", placeID),
	))
	defer span.End()

	order, err := s.tripPlaceRepository.NextOrder(ctx, tripID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to compute order")
		return 0, err
	}

	id, err := s.tripPlaceRepository.CreateTripPlace(ctx, models.CreateTripPlaceParams{
		TripID:  tripID,
		PlaceID: placeID,
		Order:   order,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to add place to trip")
		return 0, err
	}

	s.logger.Info("Place added to trip",
		zap.Int64("tripID", tripID), zap.Int64("placeID", placeID), zap.Int("order", order))
	return id, nil
}

func (s *ServiceImpl) UpdateTripPlace(ctx context.Context, id int64, params models.UpdateTripPlaceParams) error {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "UpdateTripPlace", trace.WithAttributes(
		attribute.Int64("trip_place.id", id),
	))
	defer span.End()

	if params.VisitDate != nil {
		if err := validateVisitDate(*params.VisitDate); err != nil {
			span.SetStatus(codes.Error, "Invalid visit date")
			return err
		}
	}

	if err := s.tripPlaceRepository.UpdateTripPlace(ctx, id, params); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update trip place")
		return err
	}
	return nil
}

func (s *ServiceImpl) DeleteTripPlace(ctx context.Context, id int64) error {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "DeleteTripPlace", trace.WithAttributes(
		attribute.Int64("trip_place.id", id),
	))
	defer span.End()

	if err := s.tripPlaceRepository.DeleteTripPlace(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete trip place")
		return err
	}
	return nil
}

func (s *ServiceImpl) NextOrder(ctx context.Context, tripID int64) (int, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "NextOrder", trace.WithAttributes(
		attribute.Int64("trip.id", tripID),
	))
	defer span.End()

	order, err := s.tripPlaceRepository.NextOrder(ctx, tripID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to compute order")
		return 0, err
	}
	return order, nil
}

func (s *ServiceImpl) SwapOrder(ctx context.Context, aID, bID int64) error {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "SwapOrder", trace.WithAttributes(
		attribute.Int64("trip_place.a", aID),
		attribute.Int64("trip_place.b", bID),
	))
	defer span.End()

	if err := s.tripPlaceRepository.SwapOrder(ctx, aID, bID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to swap order")
		return err
	}
	return nil
}

func validateVisitDate(date string) error {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return models.NewValidationError("visit_date", models.ReasonInvalidDate)
	}
	return nil
}
