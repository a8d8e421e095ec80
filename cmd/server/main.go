package main

import (
	"context"
	"database/sql"
	"delivery-tracking-bot/internal/adapters/cache"
	"delivery-tracking-bot/internal/adapters/location"
	"delivery-tracking-bot/internal/adapters/repositories"
	"delivery-tracking-bot/internal/api"
	"delivery-tracking-bot/internal/api/handlers"
	"delivery-tracking-bot/internal/config"
	"delivery-tracking-bot/internal/domain"
	"delivery-tracking-bot/internal/platform/db"
	"delivery-tracking-bot/internal/ports"
	"delivery-tracking-bot/internal/services"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jaswdr/faker"
)

// main is the application composition root.
// It wires concrete adapters (simulated tracking, Redis, Postgres) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.ProTrack.Configured() {
		log.Println("ProTrack credentials found; tracking integration is not enabled, using simulated locations")
	}

	ctx := context.Background()

	var provider ports.LocationProvider = location.NewSimulatedProvider(
		domain.Coordinates{Lat: cfg.ReferenceLat, Lon: cfg.ReferenceLon},
		cfg.Location,
		faker.New(),
	)

	// Snapshots are cached per sender so repeated questions see the same position.
	if cfg.RedisURL != "" {
		client, err := cache.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal(err)
		}
		defer client.Close()

		cached := location.NewCachedProvider(provider, cache.NewRedisSnapshotCache(client, cfg.SnapshotTTL))
		cached.FetchTimeout = cfg.LocationTimeout
		provider = cached
	}

	var messageLog ports.MessageLog
	if cfg.DatabaseURL != "" {
		conn, err := openMessageDB(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		messageLog = repositories.NewSQLMessageLog(conn)
	}

	estimator := services.NewSimulatedEtaEstimator(cfg.Location, faker.New())
	responder := services.NewResponder(provider, estimator, cfg.LocationTimeout)

	webhook := &handlers.WebhookHandler{
		Responder: responder,
		Log:       messageLog,
	}
	router := api.NewRouter(cfg.WebhookPath, webhook)

	log.Printf("Server listening addr=:%s webhook=%s", cfg.Port, cfg.WebhookPath)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
	webhook.Wait()
}

func openMessageDB(ctx context.Context, databaseURL string) (*sql.DB, error) {
	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := repositories.InitSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("open message db: %w", err)
	}

	return conn, nil
}
