package algo

import (
	"math"
	"testing"

	"github.com/elektrokombinacija/uav-mission-research/internal/core"
	"github.com/elektrokombinacija/uav-mission-research/internal/geo"
)

func TestDirectPlannerChord(t *testing.T) {
	uav := core.DefaultUAVParameters()
	dp := NewDirectPlanner(uav)

	start := core.GeoPosition{Lon: 14.46, Lat: 45.33}
	end := geo.Offset(start, 300, 400) // 500 m chord

	path, err := dp.Plan(start, core.NewOrientation(0), end, core.NewOrientation(0), nil)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if want := 18; len(path) != want { // round(500/30) samples plus the endpoint
		t.Errorf("Expected %d waypoints, got %d", want, len(path))
	}
	if path.First() != start {
		t.Errorf("Expected path to start at the start position, got %+v", path.First())
	}
	if path.Last() != end {
		t.Errorf("Expected path to end at the end position, got %+v", path.Last())
	}

	for i := 1; i < len(path)-1; i++ {
		d := geo.DistanceMeters(path[i-1], path[i])
		if math.Abs(d-uav.WaypointSpacing) > 0.5 {
			t.Errorf("Waypoints %d-%d are %.2f m apart, expected %.1f m",
				i-1, i, d, uav.WaypointSpacing)
		}
	}
}

func TestDirectPlannerCoincidentEndpoints(t *testing.T) {
	uav := core.DefaultUAVParameters()
	dp := NewDirectPlanner(uav)

	p := core.GeoPosition{Lon: 14.46, Lat: 45.33}
	path, err := dp.Plan(p, core.NewOrientation(0), p, core.NewOrientation(1), nil)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(path) != 1 || path[0] != p {
		t.Errorf("Expected the single endpoint, got %d waypoints", len(path))
	}
}
