package main

import (
	"context"
	"delivery-tracking-bot/internal/adapters/repositories"
	"delivery-tracking-bot/internal/config"
	"delivery-tracking-bot/internal/platform/db"
	"log"
	"time"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")
}
