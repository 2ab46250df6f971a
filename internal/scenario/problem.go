package scenario

import (
	"fmt"
	"math"

	"github.com/elektrokombinacija/uav-mission-research/internal/core"
	"github.com/elektrokombinacija/uav-mission-research/internal/geo"
)

// Problem converts an already validated scenario into a planning problem.
// Task IDs are assigned to schedulable areas in file order, starting at 0,
// which fixes the task indexing the scheduler uses.
func (s *Scenario) Problem() (*core.Problem, error) {
	prob := core.NewProblem()
	prob.UAV = core.UAVParameters{
		MinTurnRadius:   s.UAV.MinTurnRadiusM,
		WaypointSpacing: s.UAV.WaypointSpacingM,
		Airspeed:        s.UAV.AirspeedMps,
	}
	prob.Start = core.GeoPosition{Lon: s.Start.Lon, Lat: s.Start.Lat}
	prob.StartOrientation = core.NewOrientation(s.Start.HeadingDeg * math.Pi / 180)

	next := core.TaskID(0)
	for i, a := range s.Areas {
		kind, err := core.ParseTaskKind(a.Kind)
		if err != nil {
			return nil, fmt.Errorf("area %d: %w", i, err)
		}
		poly := make(core.GeoPolygon, len(a.Polygon))
		for j, pt := range a.Polygon {
			poly[j] = core.GeoPosition{Lon: pt.Lon, Lat: pt.Lat}
		}
		area := &core.TaskArea{Polygon: poly, Kind: kind}
		if !kind.IsObstacle() {
			name := a.Name
			if name == "" {
				name = fmt.Sprintf("task-%d", next)
			}
			area.Task = core.NewTask(next, name, kind)
			next++
		}
		prob.Areas = append(prob.Areas, area)
	}

	if err := prob.Validate(); err != nil {
		return nil, err
	}
	return prob, nil
}

// Demo returns the built-in demo mission: two survey fields two kilometers
// apart with a no-fly quarry between them, the vehicle starting southwest of
// both.
func Demo() *Scenario {
	origin := core.GeoPosition{Lon: 14.46, Lat: 45.33}
	start := geo.Offset(origin, -1500, -1500)
	return &Scenario{
		Name: "demo",
		UAV:  DefaultUAV(),
		Start: Start{
			Lon:        start.Lon,
			Lat:        start.Lat,
			HeadingDeg: 45,
		},
		Areas: []Area{
			{Name: "west field", Kind: "coverage", Polygon: square(origin, 600)},
			{Name: "east field", Kind: "coverage", Polygon: square(geo.Offset(origin, 2000, 0), 600)},
			{Name: "river crossing", Kind: "fly_through", Polygon: square(geo.Offset(origin, 1000, 900), 400)},
			{Name: "old quarry", Kind: "no_fly_zone", Polygon: square(geo.Offset(origin, 1000, -300), 300)},
		},
	}
}

// square builds an axis-aligned square of the given side length in meters,
// corners in counterclockwise order.
func square(center core.GeoPosition, side float64) []Point {
	h := side / 2
	corners := []core.GeoPosition{
		geo.Offset(center, -h, -h),
		geo.Offset(center, h, -h),
		geo.Offset(center, h, h),
		geo.Offset(center, -h, h),
	}
	out := make([]Point, len(corners))
	for i, c := range corners {
		out[i] = Point{Lon: c.Lon, Lat: c.Lat}
	}
	return out
}
