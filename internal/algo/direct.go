package algo

import (
	"math"

	"github.com/elektrokombinacija/uav-mission-research/internal/core"
	"github.com/elektrokombinacija/uav-mission-research/internal/geo"
)

// DirectPlanner connects two positions with a straight chord sampled at the
// waypoint spacing. Orientations and obstacles are ignored, so the paths it
// produces may demand turns the vehicle cannot fly; it exists as a cheap
// baseline against the Dubins planner.
type DirectPlanner struct {
	UAV core.UAVParameters
}

func NewDirectPlanner(p core.UAVParameters) *DirectPlanner {
	return &DirectPlanner{UAV: p}
}

func (dp *DirectPlanner) Name() string { return "Direct" }

func (dp *DirectPlanner) Plan(start core.GeoPosition, startO core.Orientation,
	end core.GeoPosition, endO core.Orientation,
	obstacles []core.GeoPolygon) (core.Waypath, error) {

	dx, dy := geo.LocalMeters(start, end)
	dist := math.Hypot(dx, dy)
	n := int(math.Round(dist / dp.UAV.WaypointSpacing))

	out := make(core.Waypath, 0, n+1)
	for i := 0; i < n; i++ {
		f := float64(i) * dp.UAV.WaypointSpacing / dist
		out = append(out, geo.Offset(start, dx*f, dy*f))
	}
	out = append(out, end)
	return out, nil
}
