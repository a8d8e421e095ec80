package location

import (
	"context"
	"delivery-tracking-bot/internal/domain"
	"delivery-tracking-bot/internal/ports"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jaswdr/faker"
)

const (
	SimulatedDriverName  = "Ahmad (Driver #007)"
	SimulatedDriverPhone = "+6012-345 6789"

	// Max perturbation of the reference point, in millionths of a degree.
	jitterMicroDegrees = 15000
)

// SimulatedProvider stands in for the vehicle tracking backend.
//
// Every call places the single driver near Reference with a random offset of up
// to ±0.015° per axis and a random speed; the status follows the local hour.
// The sender id is ignored.
type SimulatedProvider struct {
	Reference domain.Coordinates
	Clock     func() time.Time
	Location  *time.Location

	mu   sync.Mutex
	fake faker.Faker
}

func NewSimulatedProvider(reference domain.Coordinates, loc *time.Location, fake faker.Faker) *SimulatedProvider {
	if loc == nil {
		loc = time.Local
	}

	return &SimulatedProvider{
		Reference: reference,
		Clock:     time.Now,
		Location:  loc,
		fake:      fake,
	}
}

func (p *SimulatedProvider) FetchSnapshot(ctx context.Context, senderID string) (snap *domain.DriverSnapshot, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// A broken generator must degrade to "unavailable", never to a crash.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("simulated snapshot failed: %v", r)
			snap, err = nil, fmt.Errorf("simulated snapshot: %w", ports.ErrSnapshotUnavailable)
		}
	}()

	now := p.Clock().In(p.Location)

	p.mu.Lock()
	latJitter := p.fake.IntBetween(-jitterMicroDegrees, jitterMicroDegrees)
	lonJitter := p.fake.IntBetween(-jitterMicroDegrees, jitterMicroDegrees)
	speed := p.fake.IntBetween(40, 69)
	p.mu.Unlock()

	return &domain.DriverSnapshot{
		Location: &domain.Coordinates{
			Lat: p.Reference.Lat + float64(latJitter)/1e6,
			Lon: p.Reference.Lon + float64(lonJitter)/1e6,
		},
		DriverName:  SimulatedDriverName,
		Status:      domain.StatusForHour(now.Hour()),
		PhoneNumber: SimulatedDriverPhone,
		SpeedKph:    speed,
		CapturedAt:  now,
	}, nil
}
