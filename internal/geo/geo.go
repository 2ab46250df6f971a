// Package geo provides the small set of WGS84 conversions the planners
// need: per-latitude degree/meter factors for flat local frames, ECEF
// coordinates for distance comparisons, and bearings between positions.
//
// All of the planning geometry works on local tangent planes: a path is
// generated in meters around some origin and converted back to degrees
// using the factors at that origin's latitude. The approximation is fine
// at mission scale (a few kilometers) and keeps the math cheap.
package geo

import (
	"math"

	"github.com/elektrokombinacija/uav-mission-research/internal/core"
)

// WGS84 ellipsoid.
const (
	wgs84A  = 6378137.0        // semi-major axis, meters
	wgs84E2 = 6.69437999014e-3 // first eccentricity squared
)

// DegreesLatPerMeter returns how many degrees of latitude one meter spans
// at the given latitude, using the standard series expansion for meridian
// arc length on the WGS84 ellipsoid.
func DegreesLatPerMeter(latDeg float64) float64 {
	latRad := latDeg * math.Pi / 180.0
	meters := 111132.954 - 559.822*math.Cos(2.0*latRad) + 1.175*math.Cos(4.0*latRad)
	return 1.0 / meters
}

// DegreesLonPerMeter returns how many degrees of longitude one meter spans
// at the given latitude.
func DegreesLonPerMeter(latDeg float64) float64 {
	latRad := latDeg * math.Pi / 180.0
	sin := math.Sin(latRad)
	meters := (math.Pi * wgs84A * math.Cos(latRad)) / (180.0 * math.Sqrt(1.0-wgs84E2*sin*sin))
	return 1.0 / meters
}

// ECEF converts a surface position (height zero) to Earth-centered,
// Earth-fixed Cartesian coordinates in meters.
func ECEF(p core.GeoPosition) (x, y, z float64) {
	latRad := p.Lat * math.Pi / 180.0
	lonRad := p.Lon * math.Pi / 180.0
	sinLat := math.Sin(latRad)
	cosLat := math.Cos(latRad)
	n := wgs84A / math.Sqrt(1.0-wgs84E2*sinLat*sinLat)
	x = n * cosLat * math.Cos(lonRad)
	y = n * cosLat * math.Sin(lonRad)
	z = n * (1.0 - wgs84E2) * sinLat
	return x, y, z
}

// ECEFDistanceSquared returns the squared straight-line (chord) distance
// between two surface positions in square meters. Useful when only the
// ordering of distances matters and the square root can be skipped.
func ECEFDistanceSquared(a, b core.GeoPosition) float64 {
	ax, ay, az := ECEF(a)
	bx, by, bz := ECEF(b)
	dx, dy, dz := ax-bx, ay-by, az-bz
	return dx*dx + dy*dy + dz*dz
}

// LocalMeters returns p's offset from origin in meters on the tangent
// plane at origin's latitude. X grows east, Y grows north.
func LocalMeters(origin, p core.GeoPosition) (x, y float64) {
	x = (p.Lon - origin.Lon) / DegreesLonPerMeter(origin.Lat)
	y = (p.Lat - origin.Lat) / DegreesLatPerMeter(origin.Lat)
	return x, y
}

// Offset moves p by the given meter offsets on the tangent plane at p's
// latitude. X grows east, Y grows north.
func Offset(p core.GeoPosition, xMeters, yMeters float64) core.GeoPosition {
	return core.GeoPosition{
		Lon: p.Lon + xMeters*DegreesLonPerMeter(p.Lat),
		Lat: p.Lat + yMeters*DegreesLatPerMeter(p.Lat),
	}
}

// Bearing returns the direction of travel from one position toward
// another, measured in the local meters frame at the midpoint latitude.
// Zero points east, angles grow counterclockwise.
func Bearing(from, to core.GeoPosition) core.Orientation {
	midLat := (from.Lat + to.Lat) / 2.0
	dx := (to.Lon - from.Lon) / DegreesLonPerMeter(midLat)
	dy := (to.Lat - from.Lat) / DegreesLatPerMeter(midLat)
	return core.NewOrientation(math.Atan2(dy, dx))
}

// DistanceMeters returns the great-circle distance between two positions
// using the haversine formula on a spherical Earth. Accurate to a fraction
// of a percent, which is plenty for mission-scale sanity checks.
func DistanceMeters(a, b core.GeoPosition) float64 {
	const r = 6371000.0
	lat1 := a.Lat * math.Pi / 180.0
	lat2 := b.Lat * math.Pi / 180.0
	dLat := lat2 - lat1
	dLon := (b.Lon - a.Lon) * math.Pi / 180.0
	s := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * r * math.Asin(math.Sqrt(s))
}
