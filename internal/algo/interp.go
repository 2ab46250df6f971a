package algo

import (
	"fmt"
	"math"

	"github.com/elektrokombinacija/uav-mission-research/internal/core"
	"github.com/elektrokombinacija/uav-mission-research/internal/geo"
)

// Sample is an interpolated configuration on a waypath. Extrapolated is set
// when the requested time lies beyond the path's modeled duration: the
// position is then projected past the final waypoint along the last
// segment's direction. Extrapolation is diagnostic, not an error; the
// scheduler routinely probes completed sub-flights at their full required
// time.
type Sample struct {
	Position     core.GeoPosition
	Orientation  core.Orientation
	Extrapolated bool
}

// Interpolator answers "where is the vehicle after flying this path for t
// seconds", assuming constant airspeed and one spacing interval per
// waypoint pair.
type Interpolator struct {
	Spacing  float64
	Airspeed float64
}

func NewInterpolator(p core.UAVParameters) Interpolator {
	return Interpolator{Spacing: p.WaypointSpacing, Airspeed: p.Airspeed}
}

// At interpolates the configuration reached after elapsed seconds on path.
// The orientation is the direction of the segment being flown; start is
// only used when the path has a single waypoint and no direction of its
// own. Negative times and empty paths are errors.
func (ip Interpolator) At(path core.Waypath, start core.Orientation, elapsed float64) (Sample, error) {
	if len(path) == 0 {
		return Sample{}, fmt.Errorf("%w: empty path", ErrInterpolation)
	}
	if elapsed < 0 {
		return Sample{}, fmt.Errorf("%w: negative time %f", ErrInterpolation, elapsed)
	}

	if len(path) == 1 {
		return Sample{
			Position:     path[0],
			Orientation:  start,
			Extrapolated: elapsed > 0,
		}, nil
	}

	distSoFar := 0.0
	timeSoFar := 0.0
	last := path[0]
	for i := 1; i < len(path); i++ {
		pos := path[i]
		distSoFar += ip.Spacing
		timeSoFar = distSoFar / ip.Airspeed

		if timeSoFar >= elapsed || i == len(path)-1 {
			lastTime := (distSoFar - ip.Spacing) / ip.Airspeed
			ratio := (elapsed - lastTime) / (timeSoFar - lastTime)

			lonPerMeter := geo.DegreesLonPerMeter(pos.Lat)
			latPerMeter := geo.DegreesLatPerMeter(pos.Lat)
			dx := (pos.Lon - last.Lon) / lonPerMeter
			dy := (pos.Lat - last.Lat) / latPerMeter
			if norm := math.Hypot(dx, dy); norm > 0 {
				dx /= norm
				dy /= norm
			}

			distToGo := ip.Spacing * ratio
			return Sample{
				Position: core.GeoPosition{
					Lon: last.Lon + dx*distToGo*lonPerMeter,
					Lat: last.Lat + dy*distToGo*latPerMeter,
				},
				Orientation:  core.NewOrientation(math.Atan2(dy, dx)),
				Extrapolated: timeSoFar < elapsed,
			}, nil
		}
		last = pos
	}

	// Unreachable: the loop always resolves at the final segment.
	return Sample{}, fmt.Errorf("%w: time %f beyond path", ErrInterpolation, elapsed)
}

// Duration returns the modeled time to traverse the path's segments. It is
// one spacing interval shorter than Waypath.TravelTime, which charges per
// waypoint rather than per segment; times past Duration extrapolate.
func (ip Interpolator) Duration(path core.Waypath) float64 {
	if len(path) < 2 {
		return 0
	}
	return float64(len(path)-1) * ip.Spacing / ip.Airspeed
}
