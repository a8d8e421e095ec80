package services

import (
	"context"
	"delivery-tracking-bot/internal/domain"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/jaswdr/faker"
)

func TestEstimateFrom(t *testing.T) {
	// 17:00 is evening rush: multiplier 2.0
	now := time.Date(2026, 1, 1, 17, 0, 0, 0, time.UTC)

	eta, err := estimateFrom(now, etaDraw{DistanceKm: 10, SpeedKph: 60, BufferMinutes: 5, Confidence: 90})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if eta.TravelMinutes != 20 {
		t.Fatalf("travel = %d, want 20", eta.TravelMinutes)
	}
	if eta.TotalMinutes != 25 {
		t.Fatalf("total = %d, want 25", eta.TotalMinutes)
	}
	if eta.ArrivalTimeLabel != "05:25 PM (in 25 minutes)" {
		t.Fatalf("arrival = %q", eta.ArrivalTimeLabel)
	}
	if eta.Traffic != domain.TrafficHeavy {
		t.Fatalf("traffic = %q, want heavy", eta.Traffic)
	}
	if eta.DistanceLabel() != "10.0 km" {
		t.Fatalf("distance = %q", eta.DistanceLabel())
	}
	if eta.ConfidencePercent != 90 {
		t.Fatalf("confidence = %d", eta.ConfidencePercent)
	}
}

func TestEstimateFromRejectsInvalidDraws(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	draws := []etaDraw{
		{DistanceKm: 5, SpeedKph: 0, BufferMinutes: 5},
		{DistanceKm: -1, SpeedKph: 50, BufferMinutes: 5},
		{DistanceKm: 5, SpeedKph: 50, BufferMinutes: -1},
	}
	for _, d := range draws {
		if _, err := estimateFrom(now, d); err == nil {
			t.Errorf("estimateFrom(%+v): expected error", d)
		}
	}
}

func TestSimulatedEtaEstimatorBounds(t *testing.T) {
	est := NewSimulatedEtaEstimator(time.UTC, faker.NewWithSeed(rand.NewSource(42)))
	snap := &domain.DriverSnapshot{Location: &domain.Coordinates{Lat: 3.139, Lon: 101.6869}}

	for hour := 0; hour < 24; hour++ {
		at := time.Date(2026, 1, 1, hour, 30, 0, 0, time.UTC)
		est.Clock = func() time.Time { return at }

		eta, err := est.Estimate(context.Background(), snap)
		if err != nil {
			t.Fatalf("hour %d: unexpected error: %v", hour, err)
		}

		if eta.ConfidencePercent < 85 || eta.ConfidencePercent > 99 {
			t.Errorf("hour %d: confidence = %d, want [85,99]", hour, eta.ConfidencePercent)
		}
		if eta.DistanceKm < 3.5 || eta.DistanceKm > 11.5 {
			t.Errorf("hour %d: distance = %v, want [3.5,11.5]", hour, eta.DistanceKm)
		}
		if buffer := eta.TotalMinutes - eta.TravelMinutes; buffer < 5 || buffer > 14 {
			t.Errorf("hour %d: buffer = %d, want [5,14]", hour, buffer)
		}
		if want := domain.ConditionForMultiplier(domain.TrafficMultiplier(hour)); eta.Traffic != want {
			t.Errorf("hour %d: traffic = %q, want %q", hour, eta.Traffic, want)
		}
		if !strings.HasSuffix(eta.ArrivalTimeLabel, " minutes)") {
			t.Errorf("hour %d: arrival = %q", hour, eta.ArrivalTimeLabel)
		}
	}
}

func TestSimulatedEtaEstimatorNeedsLocation(t *testing.T) {
	est := NewSimulatedEtaEstimator(time.UTC, faker.New())

	if _, err := est.Estimate(context.Background(), &domain.DriverSnapshot{}); err == nil {
		t.Fatal("expected error without coordinates")
	}
}

type failingEstimator struct {
	err   error
	panic bool
}

func (f failingEstimator) Estimate(ctx context.Context, s *domain.DriverSnapshot) (domain.EtaEstimate, error) {
	if f.panic {
		panic("estimator exploded")
	}
	return domain.EtaEstimate{}, f.err
}

func TestEstimateOrFallback(t *testing.T) {
	snap := &domain.DriverSnapshot{Location: &domain.Coordinates{}}
	want := domain.FallbackEstimate()

	cases := map[string]failingEstimator{
		"error": {err: errors.New("boom")},
		"panic": {panic: true},
	}
	for name, est := range cases {
		if got := estimateOrFallback(context.Background(), est, snap); got != want {
			t.Errorf("%s: got %+v, want fallback", name, got)
		}
	}

	if got := estimateOrFallback(context.Background(), nil, snap); got != want {
		t.Errorf("nil estimator: got %+v, want fallback", got)
	}
}
