// Package draw provides rendering functions for the mission visualizer.
package draw

import (
	"github.com/elektrokombinacija/uav-mission-research/internal/core"
	"github.com/elektrokombinacija/uav-mission-research/internal/geo"
)

// Projector maps geodetic positions into the flat world frame the camera
// works in: meters east of the mission origin on X, meters south on Y, so
// north renders up on screen.
type Projector struct {
	Origin core.GeoPosition
}

// World converts a geodetic position to world coordinates.
func (pr Projector) World(p core.GeoPosition) (x, y float64) {
	east, north := geo.LocalMeters(pr.Origin, p)
	return east, -north
}

// WorldPath converts a waypath to world coordinate pairs.
func (pr Projector) WorldPath(path core.Waypath) [][2]float64 {
	out := make([][2]float64, len(path))
	for i, p := range path {
		x, y := pr.World(p)
		out[i] = [2]float64{x, y}
	}
	return out
}
