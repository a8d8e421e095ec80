package domain

import "fmt"

type TrafficCondition string

const (
	TrafficClear    TrafficCondition = "clear"
	TrafficLight    TrafficCondition = "light"
	TrafficModerate TrafficCondition = "moderate"
	TrafficHeavy    TrafficCondition = "heavy"
)

func (t TrafficCondition) Label() string {
	switch t {
	case TrafficHeavy:
		return "🚦 Heavy Traffic"
	case TrafficModerate:
		return "🚦 Moderate Traffic"
	case TrafficLight:
		return "🚦 Light Traffic"
	default:
		return "✅ Clear Roads"
	}
}

// TrafficMultiplier returns the travel time multiplier for a local hour of day.
func TrafficMultiplier(hour int) float64 {
	switch {
	case hour >= 7 && hour <= 9:
		return 1.8
	case hour >= 17 && hour <= 19:
		return 2.0
	case hour >= 12 && hour <= 14:
		return 1.3
	case hour >= 20 || hour <= 6:
		return 1.0
	default:
		return 1.5
	}
}

// ConditionForMultiplier maps a traffic multiplier onto a condition bucket.
func ConditionForMultiplier(m float64) TrafficCondition {
	switch {
	case m >= 2.0:
		return TrafficHeavy
	case m >= 1.5:
		return TrafficModerate
	case m >= 1.2:
		return TrafficLight
	default:
		return TrafficClear
	}
}

// Estimated arrival of the driver, recomputed on every request.
// TravelMinutes and TotalMinutes are zero for the fallback estimate.
type EtaEstimate struct {
	ArrivalTimeLabel  string
	DistanceKm        float64
	Traffic           TrafficCondition
	ConfidencePercent int
	TravelMinutes     int
	TotalMinutes      int
}

func (e EtaEstimate) DistanceLabel() string {
	return fmt.Sprintf("%.1f km", e.DistanceKm)
}

func (e EtaEstimate) ConfidenceLabel() string {
	return fmt.Sprintf("%d%% accurate", e.ConfidencePercent)
}

// FallbackEstimate is answered whenever the estimate cannot be computed.
func FallbackEstimate() EtaEstimate {
	return EtaEstimate{
		ArrivalTimeLabel:  "15-25 minutes",
		DistanceKm:        4.2,
		Traffic:           TrafficModerate,
		ConfidencePercent: 85,
	}
}
