// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"wasel/internal/config"
	httptransport "wasel/internal/http"
	"wasel/internal/infra"
	"wasel/internal/log"
	"wasel/internal/maps"
	"wasel/internal/modules/draft"
	"wasel/internal/modules/location"
	"wasel/internal/modules/matching"
	"wasel/internal/modules/order"
	"wasel/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found, using environment variables")
	}
	log.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		logrus.Fatal(err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	defer redisClient.Close()

	repo := session.NewRepo(redisClient, cfg.Session.TTL)
	draftSvc := draft.NewService(repo)

	matchingStore := matching.NewStore(redisClient, dbPool)
	matchingSvc := matching.NewService(matchingStore, cfg.Matching)

	locationStore := location.NewStore(redisClient)
	locationSvc := location.NewService(locationStore)

	payments := order.NewSimulatedPayment(cfg.Payment.Delay)
	orderSvc := order.NewService(draftSvc, repo, matchingSvc, payments)

	var geocodeSvc *maps.GeocodeService
	var placesSvc *maps.PlacesService
	var routeSvc *maps.RouteService
	if cfg.Maps.APIKey != "" {
		if geocodeSvc, err = maps.NewGeocodeService(cfg.Maps.APIKey); err != nil {
			logrus.Fatalf("maps init: %v", err)
		}
		if placesSvc, err = maps.NewPlacesService(cfg.Maps.APIKey); err != nil {
			logrus.Fatalf("maps init: %v", err)
		}
		if routeSvc, err = maps.NewRouteService(cfg.Maps.APIKey); err != nil {
			logrus.Fatalf("maps init: %v", err)
		}
	} else {
		logrus.Warn("WASEL_MAPS_API_KEY not set; geocoding falls back to raw coordinates")
	}

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Drafts:   draftSvc,
		Orders:   orderSvc,
		Matching: matchingSvc,
		Location: locationSvc,
		Repo:     repo,
		Geocode:  geocodeSvc,
		Places:   placesSvc,
		Routes:   routeSvc,
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logrus.Infof("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logrus.Fatal(err)
	}
}
