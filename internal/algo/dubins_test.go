package algo

import (
	"math"
	"testing"

	"github.com/elektrokombinacija/uav-mission-research/internal/core"
	"github.com/elektrokombinacija/uav-mission-research/internal/geo"
)

func TestShortestDubinsEndpoints(t *testing.T) {
	cases := []struct {
		name   string
		q0, q1 [3]float64
		rho    float64
	}{
		{"straight east", [3]float64{0, 0, 0}, [3]float64{500, 0, 0}, 30},
		{"u-turn", [3]float64{0, 0, 0}, [3]float64{0, 100, math.Pi}, 30},
		{"crosswind", [3]float64{0, 0, math.Pi / 2}, [3]float64{400, -200, 0}, 50},
		{"short hop", [3]float64{0, 0, 1.0}, [3]float64{40, 30, 2.5}, 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path, ok := shortestDubins(tc.q0, tc.q1, tc.rho)
			if !ok {
				t.Fatal("Expected a dubins solution")
			}

			begin := path.at(0)
			if math.Hypot(begin[0]-tc.q0[0], begin[1]-tc.q0[1]) > 1e-6 {
				t.Errorf("Path begins at (%f, %f), expected (%f, %f)",
					begin[0], begin[1], tc.q0[0], tc.q0[1])
			}
			finish := path.at(path.length())
			if math.Hypot(finish[0]-tc.q1[0], finish[1]-tc.q1[1]) > 1e-6 {
				t.Errorf("Path ends at (%f, %f), expected (%f, %f)",
					finish[0], finish[1], tc.q1[0], tc.q1[1])
			}
			if diff := core.NewOrientation(finish[2]).DifferenceTo(core.NewOrientation(tc.q1[2])); diff > 1e-6 {
				t.Errorf("Final heading off by %f rad", diff)
			}

			direct := math.Hypot(tc.q1[0]-tc.q0[0], tc.q1[1]-tc.q0[1])
			if path.length() < direct-1e-6 {
				t.Errorf("Path length %f shorter than the straight-line distance %f",
					path.length(), direct)
			}
		})
	}
}

func TestShortestDubinsAngleGrid(t *testing.T) {
	// Every heading combination on a ring of goals must be solvable and at
	// least as long as the chord.
	rho := 30.0
	for a := 0; a < 8; a++ {
		for b := 0; b < 8; b++ {
			q0 := [3]float64{0, 0, float64(a) * math.Pi / 4}
			q1 := [3]float64{300 * math.Cos(float64(b)), 300 * math.Sin(float64(b)), float64(b) * math.Pi / 4}
			path, ok := shortestDubins(q0, q1, rho)
			if !ok {
				t.Fatalf("No solution for headings %d/%d", a, b)
			}
			if direct := math.Hypot(q1[0], q1[1]); path.length() < direct-1e-6 {
				t.Errorf("Headings %d/%d: length %f below chord %f", a, b, path.length(), direct)
			}
		}
	}
}

func TestDubinsPlannerColinear(t *testing.T) {
	// With both headings already aligned with the course and a vanishing
	// turn radius, the dubins path collapses to the straight chord.
	uav := core.DefaultUAVParameters()
	uav.MinTurnRadius = 0
	dp := NewDubinsPlanner(uav)

	start := core.GeoPosition{Lon: 14.46, Lat: 45.33}
	end := geo.Offset(start, 1000, 0)
	east := core.NewOrientation(0)

	path, err := dp.Plan(start, east, end, east, nil)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(path) == 0 {
		t.Fatal("Expected a non-empty path")
	}

	length := float64(len(path)-1) * uav.WaypointSpacing
	if math.Abs(length-1000) > uav.WaypointSpacing {
		t.Errorf("Expected ~1000 m of path, got %.1f m over %d waypoints", length, len(path))
	}
}

func TestDubinsPlannerEndpoints(t *testing.T) {
	uav := core.DefaultUAVParameters()
	dp := NewDubinsPlanner(uav)

	start := core.GeoPosition{Lon: 14.46, Lat: 45.33}
	end := geo.Offset(start, 800, 600)

	path, err := dp.Plan(start, core.NewOrientation(math.Pi/2), end, core.NewOrientation(0), nil)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if d := geo.DistanceMeters(path.First(), start); d > 1 {
		t.Errorf("Path starts %.2f m from the requested start", d)
	}
	if d := geo.DistanceMeters(path.Last(), end); d > 1 {
		t.Errorf("Path ends %.2f m from the requested end", d)
	}
}

func TestDubinsPlannerSpacing(t *testing.T) {
	uav := core.DefaultUAVParameters()
	dp := NewDubinsPlanner(uav)

	start := core.GeoPosition{Lon: 14.46, Lat: 45.33}
	end := geo.Offset(start, -900, 400)

	path, err := dp.Plan(start, core.NewOrientation(1), end, core.NewOrientation(4), nil)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	// Interior waypoints are spaced at the sampling interval measured along
	// the curve; adjacent samples can only be closer in a straight chord
	// sense, never farther.
	for i := 1; i < len(path)-1; i++ {
		d := geo.DistanceMeters(path[i-1], path[i])
		if d > uav.WaypointSpacing+1 {
			t.Errorf("Waypoints %d-%d are %.2f m apart, spacing is %.1f m",
				i-1, i, d, uav.WaypointSpacing)
		}
	}
}

func TestDubinsPlannerRespectsTurnRadius(t *testing.T) {
	// A goal directly behind the start forces arcs; with a large radius the
	// path must grow well beyond the chord.
	uav := core.DefaultUAVParameters()
	uav.MinTurnRadius = 200
	dp := NewDubinsPlanner(uav)

	start := core.GeoPosition{Lon: 14.46, Lat: 45.33}
	end := geo.Offset(start, -300, 0)
	east := core.NewOrientation(0)

	path, err := dp.Plan(start, east, end, east, nil)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	length := float64(len(path)-1) * uav.WaypointSpacing
	if length < 600 {
		t.Errorf("Expected a long turn-around path, got %.1f m", length)
	}
}
