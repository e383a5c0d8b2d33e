package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/FACorreiaa/gonext/internal/app"
	"github.com/FACorreiaa/gonext/internal/pkg/config"
	"github.com/FACorreiaa/gonext/internal/pkg/coords"
	"github.com/FACorreiaa/gonext/internal/pkg/tracer"
	"github.com/FACorreiaa/gonext/pkg/logger"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.LogLevel, zap.String("service", "gonext")); err != nil {
		return err
	}
	defer func() { _ = logger.Log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := tracer.Init(ctx, "gonext", version, cfg.OTLPEndpoint, logger.Log)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Log.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
		}
	}()

	a, err := app.New(ctx, cfg, logger.Log)
	if err != nil {
		return err
	}
	defer a.Close()

	next, err := a.NextPlace.Resolve(ctx)
	if err != nil {
		return err
	}
	if next == nil {
		fmt.Println("Nothing to visit next.")
		return nil
	}

	fmt.Printf("Next in %q: %s\n", next.Trip.Title, next.Place.Name)
	if (coords.Point{Lat: next.Place.Lat, Lon: next.Place.Lon}).IsSet() {
		fmt.Println(coords.FormatDefault(next.Place.Lat, next.Place.Lon))
		label := coords.NavigationLabel(next.Place.Name, next.Place.Lat, next.Place.Lon)
		for _, u := range coords.NavigationURLs(next.Place.Lat, next.Place.Lon, label, coords.PlatformAndroid) {
			fmt.Println(u)
		}
	}
	return nil
}
