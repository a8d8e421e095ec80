package location

import (
	"context"
	"delivery-tracking-bot/internal/domain"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/jaswdr/faker"
)

func TestSimulatedProviderFetchSnapshot(t *testing.T) {
	ref := domain.Coordinates{Lat: 3.1390, Lon: 101.6869}
	p := NewSimulatedProvider(ref, time.UTC, faker.NewWithSeed(rand.NewSource(7)))

	for i := 0; i < 200; i++ {
		snap, err := p.FetchSnapshot(context.Background(), "whatsapp:+60123456789")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !snap.HasLocation() {
			t.Fatal("expected coordinates")
		}

		if d := math.Abs(snap.Location.Lat - ref.Lat); d > 0.015+1e-9 {
			t.Fatalf("lat offset %v exceeds 0.015", d)
		}
		if d := math.Abs(snap.Location.Lon - ref.Lon); d > 0.015+1e-9 {
			t.Fatalf("lon offset %v exceeds 0.015", d)
		}
		if snap.SpeedKph < 40 || snap.SpeedKph > 69 {
			t.Fatalf("speed = %d, want [40,69]", snap.SpeedKph)
		}
		if snap.DriverName != SimulatedDriverName || snap.PhoneNumber != SimulatedDriverPhone {
			t.Fatalf("driver = %q %q", snap.DriverName, snap.PhoneNumber)
		}
	}
}

func TestSimulatedProviderStatusFollowsClock(t *testing.T) {
	p := NewSimulatedProvider(domain.Coordinates{}, time.UTC, faker.NewWithSeed(rand.NewSource(1)))

	tests := []struct {
		hour int
		want domain.DriverStatus
	}{
		{10, domain.StatusEnRoute},
		{18, domain.StatusFinalDelivery},
		{21, domain.StatusCompleted},
	}

	for _, tt := range tests {
		at := time.Date(2026, 3, 2, tt.hour, 15, 0, 0, time.UTC)
		p.Clock = func() time.Time { return at }

		snap, err := p.FetchSnapshot(context.Background(), "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if snap.Status != tt.want {
			t.Errorf("hour %d: status = %q, want %q", tt.hour, snap.Status, tt.want)
		}
		if !snap.CapturedAt.Equal(at) {
			t.Errorf("captured at = %v, want %v", snap.CapturedAt, at)
		}
	}
}

func TestSimulatedProviderHonorsCanceledContext(t *testing.T) {
	p := NewSimulatedProvider(domain.Coordinates{}, time.UTC, faker.New())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snap, err := p.FetchSnapshot(ctx, "+1")
	if err == nil || snap != nil {
		t.Fatalf("snap=%v err=%v, want canceled", snap, err)
	}
}
