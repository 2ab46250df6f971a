package algo

import (
	"fmt"
	"math"

	"github.com/elektrokombinacija/uav-mission-research/internal/core"
	"github.com/elektrokombinacija/uav-mission-research/internal/geo"
)

// TransectPlanner is the built-in SubFlightPlanner: one straight pass from
// the entry anchor across the area to the far boundary, sampled at the
// waypoint spacing. Task kinds that want richer interior coverage plug in
// their own SubFlightPlanner; a transect is enough to exercise scheduling,
// and is the honest ideal flight for fly-through tasks.
type TransectPlanner struct {
	UAV core.UAVParameters
}

func NewTransectPlanner(p core.UAVParameters) *TransectPlanner {
	return &TransectPlanner{UAV: p}
}

func (tp *TransectPlanner) Plan(task *core.Task, area *core.TaskArea,
	entry core.GeoPosition, entryO core.Orientation) (core.Waypath, error) {

	// Cast a ray from the entry along the entry orientation in the local
	// meters frame and find where it last crosses the polygon boundary.
	dirX := math.Cos(entryO.Radians())
	dirY := math.Sin(entryO.Radians())

	far := 0.0
	n := len(area.Polygon)
	for i := 0; i < n; i++ {
		ax, ay := geo.LocalMeters(entry, area.Polygon[i])
		bx, by := geo.LocalMeters(entry, area.Polygon[(i+1)%n])
		ex, ey := bx-ax, by-ay

		det := dirX*ey - dirY*ex
		if math.Abs(det) < 1e-12 {
			continue // parallel edge
		}
		t := (ax*ey - ay*ex) / det
		u := (ax*dirY - ay*dirX) / det
		if t > 0 && u >= 0 && u <= 1 && t > far {
			far = t
		}
	}
	if far <= tp.UAV.WaypointSpacing*1e-6 {
		return nil, fmt.Errorf("transect for task %q never crosses its area", task.Name)
	}

	spacing := tp.UAV.WaypointSpacing
	count := int(math.Round(far / spacing))
	out := make(core.Waypath, 0, count+1)
	for i := 0; i < count; i++ {
		d := float64(i) * spacing
		out = append(out, geo.Offset(entry, dirX*d, dirY*d))
	}
	out = append(out, geo.Offset(entry, dirX*far, dirY*far))
	return out, nil
}
