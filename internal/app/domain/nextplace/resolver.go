// Package nextplace answers "where do I go next": the first unvisited stop
// of the current trip.
package nextplace

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/FACorreiaa/gonext/internal/app/models"
)

type CurrentTripGetter interface {
	GetCurrentTrip(ctx context.Context) (*models.Trip, error)
}

type ItineraryLister interface {
	ListTripPlaces(ctx context.Context, tripID int64) ([]*models.TripPlace, error)
}

type PlaceGetter interface {
	GetPlace(ctx context.Context, id int64) (*models.Place, error)
}

type Resolver struct {
	logger    *zap.Logger
	trips     CurrentTripGetter
	itinerary ItineraryLister
	places    PlaceGetter
}

func NewResolver(trips CurrentTripGetter, itinerary ItineraryLister, places PlaceGetter, logger *zap.Logger) *Resolver {
	return &Resolver{
		logger:    logger,
		trips:     trips,
		itinerary: itinerary,
		places:    places,
	}
}

// Resolve returns nil, nil when there is no current trip, every stop is
// visited, or the next stop's place no longer exists.
func (r *Resolver) Resolve(ctx context.Context) (*models.NextPlace, error) {
	ctx, span := otel.Tracer("NextPlaceService").Start(ctx, "Resolve")
	defer span.End()

	fail := func(msg string, err error) (*models.NextPlace, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, msg)
		return nil, err
	}

	trip, err := r.trips.GetCurrentTrip(ctx)
	if err != nil {
		return fail("Failed to get current trip", err)
	}
	if trip == nil {
		r.logger.Debug("No current trip")
		return nil, nil
	}
	span.SetAttributes(attribute.Int64("trip.id", trip.ID))

	entries, err := r.itinerary.ListTripPlaces(ctx, trip.ID)
	if err != nil {
		return fail("Failed to list itinerary", err)
	}

	var next *models.TripPlace
	for _, entry := range entries {
		if !entry.Visited {
			next = entry
			break
		}
	}
	if next == nil {
		r.logger.Debug("All stops visited", zap.Int64("tripID", trip.ID))
		return nil, nil
	}

	place, err := r.places.GetPlace(ctx, next.PlaceID)
	if err != nil {
		return fail("Failed to get place", err)
	}
	if place == nil {
		r.logger.Warn("Next stop references a missing place",
			zap.Int64("tripPlaceID", next.ID), zap.Int64("placeID", next.PlaceID))
		return nil, nil
	}

	span.SetAttributes(attribute.Int64("place.id", place.ID))
	return &models.NextPlace{Trip: trip, TripPlace: next, Place: place}, nil
}
