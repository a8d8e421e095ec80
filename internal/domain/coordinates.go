package domain

import "strconv"

// Immutable geographic coordinates (latitude, longitude) in degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Return coordinates as "lat,lon" for map query strings.
func (c Coordinates) QueryString() string {
	return formatDegrees(c.Lat) + "," + formatDegrees(c.Lon)
}

// Return coordinates as "lat, lon" for display.
func (c Coordinates) String() string {
	return formatDegrees(c.Lat) + ", " + formatDegrees(c.Lon)
}

func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
