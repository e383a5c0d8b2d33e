// Package app wires the store, repositories and services into one value
// owned by the process entry point.
package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/FACorreiaa/gonext/internal/app/domain/itinerary"
	"github.com/FACorreiaa/gonext/internal/app/domain/nextplace"
	"github.com/FACorreiaa/gonext/internal/app/domain/photos"
	"github.com/FACorreiaa/gonext/internal/app/domain/places"
	"github.com/FACorreiaa/gonext/internal/app/domain/recordings"
	"github.com/FACorreiaa/gonext/internal/app/domain/trips"
	database "github.com/FACorreiaa/gonext/internal/db"
	"github.com/FACorreiaa/gonext/internal/pkg/config"
	"github.com/FACorreiaa/gonext/internal/pkg/media"
)

// App holds the dependencies shared for the process lifetime
type App struct {
	logger *zap.Logger
	db     *sqlx.DB

	Places     places.Service
	Trips      trips.Service
	Itinerary  itinerary.Service
	Photos     photos.Service
	Recordings recordings.Service
	NextPlace  *nextplace.Resolver
}

// New opens the store and builds every service on top of it
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	db, err := database.Open(ctx, cfg.Repositories.SQLite, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	store, err := media.NewStore(cfg.MediaDir, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := &App{logger: logger, db: db}
	a.wire(store)
	return a, nil
}

func (a *App) wire(store *media.Store) {
	placeRepo := places.NewRepository(a.db, a.logger)
	tripRepo := trips.NewRepository(a.db, a.logger)
	tripPlaceRepo := itinerary.NewRepository(a.db, a.logger)
	photoRepo := photos.NewRepository(a.db, a.logger)
	recordingRepo := recordings.NewRepository(a.db, a.logger)

	a.Photos = photos.NewService(photoRepo, store, a.logger)
	a.Recordings = recordings.NewService(recordingRepo, store, a.logger)
	a.Places = places.NewService(placeRepo, photoRepo, recordingRepo, a.logger)
	a.Trips = trips.NewService(tripRepo, a.logger)
	a.Itinerary = itinerary.NewService(tripPlaceRepo, placeRepo, photoRepo, recordingRepo, a.logger)
	a.NextPlace = nextplace.NewResolver(tripRepo, tripPlaceRepo, placeRepo, a.logger)
}

// Close releases the store handle
func (a *App) Close() error {
	a.logger.Info("Closing database")
	return a.db.Close()
}
