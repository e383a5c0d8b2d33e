package photos

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/FACorreiaa/gonext/internal/app/models"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	ListPlacePhotos(ctx context.Context, placeID int64) ([]*models.PlacePhoto, error)
	AddPlacePhoto(ctx context.Context, placeID int64, fileURI string) (int64, error)
	ImportPlacePhoto(ctx context.Context, placeID int64, srcPath string) (int64, error)
	DeletePlacePhoto(ctx context.Context, id int64) error

	ListTripPlacePhotos(ctx context.Context, tripPlaceID int64) ([]*models.TripPlacePhoto, error)
	AddTripPlacePhoto(ctx context.Context, tripPlaceID int64, fileURI string) (int64, error)
	ImportTripPlacePhoto(ctx context.Context, tripPlaceID int64, srcPath string) (int64, error)
	DeleteTripPlacePhoto(ctx context.Context, id int64) error

	ListAllPhotos(ctx context.Context) ([]*models.PhotoItem, error)
}

// Importer copies a picked or captured image into app storage.
type Importer interface {
	ImportPhoto(src string) (string, error)
	Remove(uri string) error
}

type ServiceImpl struct {
	logger          *zap.Logger
	photoRepository Repository
	importer        Importer
}

func NewService(repo Repository, importer Importer, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:          logger,
		photoRepository: repo,
		importer:        importer,
	}
}

func (s *ServiceImpl) ListPlacePhotos(ctx context.Context, placeID int64) ([]*models.PlacePhoto, error) {
	ctx, span := otel.Tracer("PhotoService").Start(ctx, "ListPlacePhotos", trace.WithAttributes(
		attribute.Int64("place.id", placeID),
	))
	defer span.End()

	photos, err := s.photoRepository.ListPlacePhotos(ctx, placeID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list place photos")
		return nil, err
	}
	return photos, nil
}

// AddPlacePhoto attaches an already stored file. The URI is not checked
// beyond being non-empty.
func (s *ServiceImpl) AddPlacePhoto(ctx context.Context, placeID int64, fileURI string) (int64, error) {
	ctx, span := otel.Tracer("PhotoService").Start(ctx, "AddPlacePhoto", trace.WithAttributes(
		attribute.Int64("place.id", placeID),
	))
	defer span.End()

	if strings.TrimSpace(fileURI) == "" {
		span.SetStatus(codes.Error, "Invalid photo")
		return 0, models.NewValidationError("file_uri", models.ReasonRequired)
	}

	id, err := s.photoRepository.AddPlacePhoto(ctx, placeID, fileURI)
	if err != nil {
		s.logger.Error("Failed to add place photo", zap.Int64("placeID", placeID), zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to add place photo")
		return 0, err
	}
	return id, nil
}

// ImportPlacePhoto copies srcPath into app storage, then attaches it. The
// copy is removed again if the insert fails.
func (s *ServiceImpl) ImportPlacePhoto(ctx context.Context, placeID int64, srcPath string) (int64, error) {
	return s.importAndAdd(srcPath, func(uri string) (int64, error) {
		return s.AddPlacePhoto(ctx, placeID, uri)
	})
}

func (s *ServiceImpl) DeletePlacePhoto(ctx context.Context, id int64) error {
	ctx, span := otel.Tracer("PhotoService").Start(ctx, "DeletePlacePhoto", trace.WithAttributes(
		attribute.Int64("photo.id", id),
	))
	defer span.End()

	if err := s.photoRepository.DeletePlacePhoto(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete place photo")
		return err
	}
	return nil
}

func (s *ServiceImpl) ListTripPlacePhotos(ctx context.Context, tripPlaceID int64) ([]*models.TripPlacePhoto, error) {
	ctx, span := otel.Tracer("PhotoService").Start(ctx, "ListTripPlacePhotos", trace.WithAttributes(
		attribute.Int64("trip_place.id", tripPlaceID),
	))
	defer span.End()

	photos, err := s.photoRepository.ListTripPlacePhotos(ctx, tripPlaceID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list trip place photos")
		return nil, err
	}
	return photos, nil
}

func (s *ServiceImpl) AddTripPlacePhoto(ctx context.Context, tripPlaceID int64, fileURI string) (int64, error) {
	ctx, span := otel.Tracer("PhotoService").Start(ctx, "AddTripPlacePhoto", trace.WithAttributes(
		attribute.Int64("trip_place.id", tripPlaceID),
	))
	defer span.End()

	if strings.TrimSpace(fileURI) == "" {
		span.SetStatus(codes.Error, "Invalid photo")
		return 0, models.NewValidationError("file_uri", models.ReasonRequired)
	}

	id, err := s.photoRepository.AddTripPlacePhoto(ctx, tripPlaceID, fileURI)
	if err != nil {
		s.logger.Error("Failed to add trip place photo", zap.Int64("tripPlaceID", tripPlaceID), zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to add trip place photo")
		return 0, err
	}
	return id, nil
}

func (s *ServiceImpl) ImportTripPlacePhoto(ctx context.Context, tripPlaceID int64, srcPath string) (int64, error) {
	return s.importAndAdd(srcPath, func(uri string) (int64, error) {
		return s.AddTripPlacePhoto(ctx, tripPlaceID, uri)
	})
}

func (s *ServiceImpl) DeleteTripPlacePhoto(ctx context.Context, id int64) error {
	ctx, span := otel.Tracer("PhotoService").Start(ctx, "DeleteTripPlacePhoto", trace.WithAttributes(
		attribute.Int64("photo.id", id),
	))
	defer span.End()

	if err := s.photoRepository.DeleteTripPlacePhoto(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete trip place photo")
		return err
	}
	return nil
}

func (s *ServiceImpl) ListAllPhotos(ctx context.Context) ([]*models.PhotoItem, error) {
	ctx, span := otel.Tracer("PhotoService").Start(ctx, "ListAllPhotos")
	defer span.End()

	items, err := s.photoRepository.ListAllPhotos(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list photos")
		return nil, err
	}
	return items, nil
}

func (s *ServiceImpl) importAndAdd(srcPath string, add func(uri string) (int64, error)) (int64, error) {
	if s.importer == nil {
		return 0, fmt.Errorf("photo import is not configured")
	}

	uri, err := s.importer.ImportPhoto(srcPath)
	if err != nil {
		s.logger.Error("Failed to import photo", zap.String("source", srcPath), zap.Error(err))
		return 0, err
	}

	id, err := add(uri)
	if err != nil {
		if rmErr := s.importer.Remove(uri); rmErr != nil {
			s.logger.Warn("Failed to remove orphaned photo", zap.String("uri", uri), zap.Error(rmErr))
		}
		return 0, err
	}
	return id, nil
}
