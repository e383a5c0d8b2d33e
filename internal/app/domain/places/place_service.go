package places

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/gonext/internal/app/models"
	"github.com/FACorreiaa/gonext/internal/pkg/coords"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	ListPlaces(ctx context.Context) ([]*models.Place, error)
	GetPlace(ctx context.Context, id int64) (*models.Place, error)
	GetPlaceWithMedia(ctx context.Context, id int64) (*models.PlaceWithMedia, error)
	CreatePlace(ctx context.Context, params models.CreatePlaceParams) (int64, error)
	UpdatePlace(ctx context.Context, id int64, params models.UpdatePlaceParams) error
	DeletePlace(ctx context.Context, id int64) error
}

// PhotoLister and RecordingLister load the memories attached to a place.
type PhotoLister interface {
	ListPlacePhotos(ctx context.Context, placeID int64) ([]*models.PlacePhoto, error)
}

type RecordingLister interface {
	ListByPlace(ctx context.Context, placeID int64) ([]*models.Recording, error)
}

type ServiceImpl struct {
	logger          *zap.Logger
	placeRepository Repository
	photos          PhotoLister
	recordings      RecordingLister
}

// NewService creates a new instance of ServiceImpl
func NewService(repo Repository, photos PhotoLister, recordings RecordingLister, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:          logger,
		placeRepository: repo,
		photos:          photos,
		recordings:      recordings,
	}
}

func (s *ServiceImpl) ListPlaces(ctx context.Context) ([]*models.Place, error) {
	ctx, span := otel.Tracer("PlaceService").Start(ctx, "ListPlaces")
	defer span.End()

	places, err := s.placeRepository.ListPlaces(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list places")
		return nil, err
	}
	span.SetAttributes(attribute.Int("places.count", len(places)))
	return places, nil
}

// GetPlace returns nil, nil when the place does not exist
func (s *ServiceImpl) GetPlace(ctx context.Context, id int64) (*models.Place, error) {
	ctx, span := otel.Tracer("PlaceService").Start(ctx, "GetPlace", trace.WithAttributes(
		attribute.Int64("place.id", id),
	))
	defer span.End()

	place, err := s.placeRepository.GetPlace(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get place")
		return nil, err
	}
	return place, nil
}

// GetPlaceWithMedia loads a place together with its photos and recordings.
func (s *ServiceImpl) GetPlaceWithMedia(ctx context.Context, id int64) (*models.PlaceWithMedia, error) {
	ctx, span := otel.Tracer("PlaceService").Start(ctx, "GetPlaceWithMedia", trace.WithAttributes(
		attribute.Int64("place.id", id),
	))
	defer span.End()

	place, err := s.placeRepository.GetPlace(ctx, id)
	if err != nil || place == nil {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to get place")
		}
		return nil, err
	}

	result := &models.PlaceWithMedia{Place: *place}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		photos, err := s.photos.ListPlacePhotos(gctx, id)
		result.Photos = photos
		return err
	})
	g.Go(func() error {
		recordings, err := s.recordings.ListByPlace(gctx, id)
		result.Recordings = recordings
		return err
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to load place media")
		return nil, fmt.Errorf("failed to load media for place %d: %w", id, err)
	}
	return result, nil
}

func (s *ServiceImpl) CreatePlace(ctx context.Context, params models.CreatePlaceParams) (int64, error) {
	ctx, span := otel.Tracer("PlaceService").Start(ctx, "CreatePlace", trace.WithAttributes(
		attribute.String("place.name", params.Name),
	))
	defer span.End()

	l := s.logger.With(zap.String("method", "CreatePlace"))

	params.Name = strings.TrimSpace(params.Name)
	if params.Name == "" {
		span.SetStatus(codes.Error, "Invalid place")
		return 0, models.NewValidationError("name", models.ReasonRequired)
	}
	if err := coords.Validate(params.Lat, params.Lon); err != nil {
		span.SetStatus(codes.Error, "Invalid coordinates")
		return 0, fmt.Errorf("%w: %w", models.ErrValidation, err)
	}

	id, err := s.placeRepository.CreatePlace(ctx, params)
	if err != nil {
		l.Error("Failed to create place", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create place")
		return 0, err
	}

	l.Info("Place created", zap.Int64("placeID", id))
	span.SetStatus(codes.Ok, "Place created")
	return id, nil
}

// UpdatePlace applies a patch; fields left nil keep their stored value
func (s *ServiceImpl) UpdatePlace(ctx context.Context, id int64, params models.UpdatePlaceParams) error {
	ctx, span := otel.Tracer("PlaceService").Start(ctx, "UpdatePlace", trace.WithAttributes(
		attribute.Int64("place.id", id),
	))
	defer span.End()

	l := s.logger.With(zap.String("method", "UpdatePlace"), zap.Int64("placeID", id))

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			span.SetStatus(codes.Error, "Invalid place")
			return models.NewValidationError("name", models.ReasonRequired)
		}
		params.Name = &name
	}
	if err := validatePatchCoordinates(params.Lat, params.Lon); err != nil {
		span.SetStatus(codes.Error, "Invalid coordinates")
		return err
	}

	if err := s.placeRepository.UpdatePlace(ctx, id, params); err != nil {
		l.Error("Failed to update place", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update place")
		return err
	}

	l.Debug("Place updated")
	return nil
}

func (s *ServiceImpl) DeletePlace(ctx context.Context, id int64) error {
	ctx, span := otel.Tracer("PlaceService").Start(ctx, "DeletePlace", trace.WithAttributes(
		attribute.Int64("place.id", id),
	))
	defer span.End()

	if err := s.placeRepository.DeletePlace(ctx, id); err != nil {
		s.logger.Error("Failed to delete place", zap.Int64("placeID", id), zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete place")
		return err
	}

	s.logger.Info("Place deleted", zap.Int64("placeID", id))
	return nil
}

// validatePatchCoordinates checks whichever of lat/lon the patch supplies.
func validatePatchCoordinates(lat, lon *float64) error {
	var err error
	switch {
	case lat != nil && lon != nil:
		err = coords.Validate(*lat, *lon)
	case lat != nil:
		err = coords.Validate(*lat, 0)
	case lon != nil:
		err = coords.Validate(0, *lon)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrValidation, err)
	}
	return nil
}
