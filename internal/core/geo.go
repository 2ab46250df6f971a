package core

// GeoPosition is a point on the Earth in decimal degrees.
// Longitude first, matching the (x, y) order used everywhere else.
type GeoPosition struct {
	Lon float64
	Lat float64
}

// GeoRect is an axis-aligned rectangle in degree space.
type GeoRect struct {
	MinLon, MinLat float64
	MaxLon, MaxLat float64
}

// Width returns the longitudinal extent in degrees.
func (r GeoRect) Width() float64 { return r.MaxLon - r.MinLon }

// Height returns the latitudinal extent in degrees.
func (r GeoRect) Height() float64 { return r.MaxLat - r.MinLat }

// Center returns the rectangle midpoint.
func (r GeoRect) Center() GeoPosition {
	return GeoPosition{
		Lon: (r.MinLon + r.MaxLon) / 2,
		Lat: (r.MinLat + r.MaxLat) / 2,
	}
}

// ManhattanTo returns |dLon| + |dLat| between two positions, the
// coordinate-sum distance used for anchor entry selection.
func (p GeoPosition) ManhattanTo(q GeoPosition) float64 {
	dLon := p.Lon - q.Lon
	if dLon < 0 {
		dLon = -dLon
	}
	dLat := p.Lat - q.Lat
	if dLat < 0 {
		dLat = -dLat
	}
	return dLon + dLat
}
