package services

import (
	"context"
	"delivery-tracking-bot/internal/domain"
	"delivery-tracking-bot/internal/platform/obs"
	"delivery-tracking-bot/internal/ports"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/jaswdr/faker"
)

// etaDraw holds the random inputs of one estimate.
type etaDraw struct {
	DistanceKm    float64
	SpeedKph      float64
	BufferMinutes int
	Confidence    int
}

// SimulatedEtaEstimator estimates arrival from a randomized distance/speed model
// scaled by the time-of-day traffic multiplier. The snapshot position is only
// checked for presence; no routing is performed.
type SimulatedEtaEstimator struct {
	Clock    func() time.Time
	Location *time.Location

	mu   sync.Mutex
	fake faker.Faker
}

func NewSimulatedEtaEstimator(loc *time.Location, fake faker.Faker) *SimulatedEtaEstimator {
	if loc == nil {
		loc = time.Local
	}

	return &SimulatedEtaEstimator{
		Clock:    time.Now,
		Location: loc,
		fake:     fake,
	}
}

func (e *SimulatedEtaEstimator) Estimate(
	ctx context.Context,
	snapshot *domain.DriverSnapshot,
) (_ domain.EtaEstimate, err error) {
	defer obs.Time(ctx, "eta.Estimate")(&err)

	if !snapshot.HasLocation() {
		return domain.EtaEstimate{}, fmt.Errorf("estimate eta: %w", ports.ErrSnapshotUnavailable)
	}

	e.mu.Lock()
	draw := etaDraw{
		DistanceKm:    3.5 + float64(e.fake.IntBetween(0, 8000))/1000,
		SpeedKph:      40 + float64(e.fake.IntBetween(0, 30000))/1000,
		BufferMinutes: e.fake.IntBetween(5, 14),
		Confidence:    e.fake.IntBetween(85, 99),
	}
	e.mu.Unlock()

	return estimateFrom(e.Clock().In(e.Location), draw)
}

// estimateFrom applies the ETA model to one set of random inputs.
func estimateFrom(now time.Time, d etaDraw) (domain.EtaEstimate, error) {
	if d.SpeedKph <= 0 || math.IsNaN(d.SpeedKph) || math.IsInf(d.SpeedKph, 0) {
		return domain.EtaEstimate{}, fmt.Errorf("estimate eta: invalid speed %v", d.SpeedKph)
	}
	if d.DistanceKm < 0 || math.IsNaN(d.DistanceKm) || math.IsInf(d.DistanceKm, 0) {
		return domain.EtaEstimate{}, fmt.Errorf("estimate eta: invalid distance %v", d.DistanceKm)
	}
	if d.BufferMinutes < 0 {
		return domain.EtaEstimate{}, fmt.Errorf("estimate eta: negative buffer %d", d.BufferMinutes)
	}

	multiplier := domain.TrafficMultiplier(now.Hour())
	travel := int(math.Round(d.DistanceKm / d.SpeedKph * 60 * multiplier))
	total := travel + d.BufferMinutes

	arrival := now.Add(time.Duration(total) * time.Minute)

	return domain.EtaEstimate{
		ArrivalTimeLabel:  fmt.Sprintf("%s (in %d minutes)", arrival.Format("03:04 PM"), total),
		DistanceKm:        d.DistanceKm,
		Traffic:           domain.ConditionForMultiplier(multiplier),
		ConfidencePercent: d.Confidence,
		TravelMinutes:     travel,
		TotalMinutes:      total,
	}, nil
}

// estimateOrFallback never fails: estimator errors and panics yield the fixed
// fallback estimate.
func estimateOrFallback(
	ctx context.Context,
	est ports.EtaEstimator,
	snapshot *domain.DriverSnapshot,
) (eta domain.EtaEstimate) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("req_id=%s eta estimate panicked: %v", obs.RequestID(ctx), r)
			eta = domain.FallbackEstimate()
		}
	}()

	if est == nil {
		return domain.FallbackEstimate()
	}

	eta, err := est.Estimate(ctx, snapshot)
	if err != nil {
		if !errors.Is(err, ports.ErrSnapshotUnavailable) {
			log.Printf("req_id=%s eta estimate failed: %v", obs.RequestID(ctx), err)
		}
		return domain.FallbackEstimate()
	}

	return eta
}
