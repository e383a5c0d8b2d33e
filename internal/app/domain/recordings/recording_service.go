package recordings

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
	ListByPlace(ctx context.Context, placeID int64) ([]*models.Recording, error)
	ListByTripPlace(ctx context.Context, tripPlaceID int64) ([]*models.Recording, error)
	CreateRecording(ctx context.Context, params models.CreateRecordingParams) (int64, error)
	ImportRecording(ctx context.Context, params models.CreateRecordingParams, srcPath string) (int64, error)
	UpdateTranscribedText(ctx context.Context, id int64, text string) error
	DeleteRecording(ctx context.Context, id int64) error
}

// Importer copies a captured clip into app storage.
type Importer interface {
	ImportRecording(src string) (string, error)
	Remove(uri string) error
}

type ServiceImpl struct {
	logger              *zap.Logger
	recordingRepository Repository
	importer            Importer
}

func NewService(repo Repository, importer Importer, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:              logger,
		recordingRepository: repo,
		importer:            importer,
	}
}

func (s *ServiceImpl) ListByPlace(ctx context.Context, placeID int64) ([]*models.Recording, error) {
	ctx, span := otel.Tracer("RecordingService").Start(ctx, "ListByPlace", trace.WithAttributes(
		attribute.Int64("place.id", placeID),
	))
	defer span.End()

	recordings, err := s.recordingRepository.ListByPlace(ctx, placeID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list place recordings")
		return nil, err
	}
	return recordings, nil
}

func (s *ServiceImpl) ListByTripPlace(ctx context.Context, tripPlaceID int64) ([]*models.Recording, error) {
	ctx, span := otel.Tracer("RecordingService").Start(ctx, "ListByTripPlace", trace.WithAttributes(
		attribute.Int64("trip_place.id", tripPlaceID),
	))
	defer span.End()

	recordings, err := s.recordingRepository.ListByTripPlace(ctx, tripPlaceID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list trip place recordings")
		return nil, err
	}
	return recordings, nil
}

// CreateRecording stores a clip that is already on disk. Exactly one of
// PlaceID and TripPlaceID must be set.
func (s *ServiceImpl) CreateRecording(ctx context.Context, params models.CreateRecordingParams) (int64, error) {
	ctx, span := otel.Tracer("RecordingService").Start(ctx, "CreateRecording")
	defer span.End()

	if err := validateCreate(params); err != nil {
		span.SetStatus(codes.Error, "Invalid recording")
		return 0, err
	}

	id, err := s.recordingRepository.CreateRecording(ctx, params)
	if err != nil {
		s.logger.Error("Failed to create recording", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create recording")
		return 0, err
	}
	span.SetAttributes(attribute.Int64("recording.id", id))
	return id, nil
}

// ImportRecording copies srcPath into app storage and stores the resulting
// URI in place of params.AudioURI.
func (s *ServiceImpl) ImportRecording(ctx context.Context, params models.CreateRecordingParams, srcPath string) (int64, error) {
	if s.importer == nil {
		return 0, fmt.Errorf("recording import is not configured")
	}
	if !params.HasSingleOwner() {
		return 0, models.NewValidationError("owner", models.ReasonSingleOwner)
	}

	uri, err := s.importer.ImportRecording(srcPath)
	if err != nil {
		s.logger.Error("Failed to import recording", zap.String("source", srcPath), zap.Error(err))
		return 0, err
	}

	params.AudioURI = uri
	id, err := s.CreateRecording(ctx, params)
	if err != nil {
		if rmErr := s.importer.Remove(uri); rmErr != nil {
			s.logger.Warn("Failed to remove orphaned recording", zap.String("uri", uri), zap.Error(rmErr))
		}
		return 0, err
	}
	return id, nil
}

func (s *ServiceImpl) UpdateTranscribedText(ctx context.Context, id int64, text string) error {
	ctx, span := otel.Tracer("RecordingService").Start(ctx, "UpdateTranscribedText", trace.WithAttributes(
		attribute.Int64("recording.id", id),
	))
	defer span.End()

	if err := s.recordingRepository.UpdateTranscribedText(ctx, id, text); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update transcription")
		return err
	}
	return nil
}

func (s *ServiceImpl) DeleteRecording(ctx context.Context, id int64) error {
	ctx, span := otel.Tracer("RecordingService").Start(ctx, "DeleteRecording", trace.WithAttributes(
		attribute.Int64("recording.id", id),
	))
	defer span.End()

	if err := s.recordingRepository.DeleteRecording(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete recording")
		return err
	}
	return nil
}

func validateCreate(params models.CreateRecordingParams) error {
	if strings.TrimSpace(params.AudioURI) == "" {
		return models.NewValidationError("audio_uri", models.ReasonRequired)
	}
	if !params.HasSingleOwner() {
		return models.NewValidationError("owner", models.ReasonSingleOwner)
	}
	return nil
}
