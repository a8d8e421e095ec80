package ports

import (
	"context"
	"delivery-tracking-bot/internal/domain"
)

// Contract for estimating when the driver in a snapshot reaches the customer.
type EtaEstimator interface {
	Estimate(ctx context.Context, snapshot *domain.DriverSnapshot) (domain.EtaEstimate, error)
}
