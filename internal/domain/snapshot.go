package domain

import "time"

type DriverStatus string

const (
	StatusEnRoute       DriverStatus = "en_route"
	StatusFinalDelivery DriverStatus = "final_delivery"
	StatusCompleted     DriverStatus = "completed"
)

// Label returns the customer facing wording of the status.
func (s DriverStatus) Label() string {
	switch s {
	case StatusFinalDelivery:
		return "Final delivery of the day"
	case StatusCompleted:
		return "Completed deliveries"
	default:
		return "En route to delivery"
	}
}

// StatusForHour derives the driver status from the local wall-clock hour.
func StatusForHour(hour int) DriverStatus {
	switch {
	case hour >= 20:
		return StatusCompleted
	case hour >= 18:
		return StatusFinalDelivery
	default:
		return StatusEnRoute
	}
}

// Point-in-time read of a driver's position and status.
// Location is nil when the provider could not place the driver.
type DriverSnapshot struct {
	Location    *Coordinates `json:"location,omitempty"`
	DriverName  string       `json:"driver_name"`
	Status      DriverStatus `json:"status"`
	PhoneNumber string       `json:"phone_number"`
	SpeedKph    int          `json:"speed_kph"`
	CapturedAt  time.Time    `json:"captured_at"`
}

// HasLocation reports whether the snapshot can be used for location replies.
func (s *DriverSnapshot) HasLocation() bool {
	return s != nil && s.Location != nil
}
