package photos

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/gonext/internal/app/models"
)

type MockPhotoRepository struct {
	mock.Mock
}

func (m *MockPhotoRepository) ListPlacePhotos(ctx context.Context, placeID int64) ([]*models.PlacePhoto, error) {
	args := m.Called(ctx, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PlacePhoto), args.Error(1)
}

func (m *MockPhotoRepository) AddPlacePhoto(ctx context.Context, placeID int64, fileURI string) (int64, error) {
	args := m.Called(ctx, placeID, fileURI)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPhotoRepository) DeletePlacePhoto(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPhotoRepository) ListTripPlacePhotos(ctx context.Context, tripPlaceID int64) ([]*models.TripPlacePhoto, error) {
	args := m.Called(ctx, tripPlaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TripPlacePhoto), args.Error(1)
}

func (m *MockPhotoRepository) AddTripPlacePhoto(ctx context.Context, tripPlaceID int64, fileURI string) (int64, error) {
	args := m.Called(ctx, tripPlaceID, fileURI)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPhotoRepository) DeleteTripPlacePhoto(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPhotoRepository) ListAllPhotos(ctx context.Context) ([]*models.PhotoItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PhotoItem), args.Error(1)
}

type MockImporter struct {
	mock.Mock
}

func (m *MockImporter) ImportPhoto(src string) (string, error) {
	args := m.Called(src)
	return args.String(0), args.Error(1)
}

func (m *MockImporter) Remove(uri string) error {
	return m.Called(uri).Error(0)
}

func TestAddPlacePhotoRequiresURI(t *testing.T) {
	repo := new(MockPhotoRepository)
	service := NewService(repo, nil, zap.NewNop())

	_, err := service.AddPlacePhoto(context.Background(), 1, "  ")
	assert.True(t, errors.Is(err, models.ErrValidation))

	_, err = service.AddTripPlacePhoto(context.Background(), 1, "")
	assert.True(t, errors.Is(err, models.ErrValidation))

	repo.AssertExpectations(t)
}

func TestImportPlacePhoto(t *testing.T) {
	const uri = "file:///media/photos/photo_1.jpg"

	tests := []struct {
		name       string
		setup      func(*MockPhotoRepository, *MockImporter)
		wantID     int64
		wantErr    bool
		wantRemove bool
	}{
		{
			name: "Success",
			setup: func(repo *MockPhotoRepository, imp *MockImporter) {
				imp.On("ImportPhoto", "/tmp/cam.jpg").Return(uri, nil).Once()
				repo.On("AddPlacePhoto", mock.Anything, int64(5), uri).Return(int64(11), nil).Once()
			},
			wantID: 11,
		},
		{
			name: "Insert fails removes copy",
			setup: func(repo *MockPhotoRepository, imp *MockImporter) {
				imp.On("ImportPhoto", "/tmp/cam.jpg").Return(uri, nil).Once()
				repo.On("AddPlacePhoto", mock.Anything, int64(5), uri).Return(int64(0), models.ErrConstraint).Once()
				imp.On("Remove", uri).Return(nil).Once()
			},
			wantErr:    true,
			wantRemove: true,
		},
		{
			name: "Import fails",
			setup: func(_ *MockPhotoRepository, imp *MockImporter) {
				imp.On("ImportPhoto", "/tmp/cam.jpg").Return("", errors.New("no such file")).Once()
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockPhotoRepository)
			imp := new(MockImporter)
			tc.setup(repo, imp)
			service := NewService(repo, imp, zap.NewNop())

			id, err := service.ImportPlacePhoto(context.Background(), 5, "/tmp/cam.jpg")
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.wantID, id)
			}
			if !tc.wantRemove {
				imp.AssertNotCalled(t, "Remove", mock.Anything)
			}
			repo.AssertExpectations(t)
			imp.AssertExpectations(t)
		})
	}
}

func TestImportWithoutImporter(t *testing.T) {
	service := NewService(new(MockPhotoRepository), nil, zap.NewNop())

	_, err := service.ImportTripPlacePhoto(context.Background(), 1, "/tmp/a.jpg")
	assert.Error(t, err)
}
