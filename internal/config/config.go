package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// ProTrack holds the credentials reserved for the vehicle tracking provider.
// They are read so deployments can be prepared, but nothing consumes them yet.
type ProTrack struct {
	Username string
	Password string
	APIURL   string
}

func (p ProTrack) Configured() bool {
	return p.Username != "" && p.Password != "" && p.APIURL != ""
}

type Config struct {
	Port            string
	WebhookPath     string
	Location        *time.Location
	LocationTimeout time.Duration
	SnapshotTTL     time.Duration
	RedisURL        string
	DatabaseURL     string
	ReferenceLat    float64
	ReferenceLon    float64
	ProTrack        ProTrack
}

// Load reads an optional .env file and builds Config from the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	return FromEnv()
}

// FromEnv builds Config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:        Get("PORT", "8080"),
		WebhookPath: Get("WEBHOOK_PATH", "/webhook/whatsapp"),
		RedisURL:    strings.TrimSpace(os.Getenv("REDIS_URL")),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		ProTrack: ProTrack{
			Username: os.Getenv("PROTRACK_USERNAME"),
			Password: os.Getenv("PROTRACK_PASSWORD"),
			APIURL:   os.Getenv("PROTRACK_API_URL"),
		},
	}

	if !strings.HasPrefix(cfg.WebhookPath, "/") {
		return nil, fmt.Errorf("load config: WEBHOOK_PATH must start with '/': %q", cfg.WebhookPath)
	}

	tz := Get("TIMEZONE", "Asia/Kuala_Lumpur")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load config: TIMEZONE %q: %w", tz, err)
	}
	cfg.Location = loc

	if cfg.LocationTimeout, err = getDuration("LOCATION_TIMEOUT", 3*time.Second); err != nil {
		return nil, err
	}
	if cfg.SnapshotTTL, err = getDuration("SNAPSHOT_TTL", 2*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ReferenceLat, err = getFloat("REFERENCE_LAT", 3.1390); err != nil {
		return nil, err
	}
	if cfg.ReferenceLon, err = getFloat("REFERENCE_LON", 101.6869); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Get returns the value of an environment variable or fallback when unset.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("load config: %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("load config: %s must be positive, got %s", key, d)
	}
	return d, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("load config: %s: %w", key, err)
	}
	return f, nil
}
