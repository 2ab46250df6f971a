package algo

import (
	"math"
	"testing"

	"github.com/elektrokombinacija/uav-mission-research/internal/core"
	"github.com/elektrokombinacija/uav-mission-research/internal/geo"
)

// rowPath builds n waypoints spaced eastward at the vehicle's waypoint
// spacing, offset north by row meters so test paths do not overlap.
func rowPath(n int, row float64, p core.UAVParameters) core.Waypath {
	origin := core.GeoPosition{Lon: 14.46, Lat: 45.33}
	path := make(core.Waypath, n)
	for i := range path {
		path[i] = geo.Offset(origin, float64(i)*p.WaypointSpacing, row)
	}
	return path
}

// TestStitchWaypointAccounting hand-builds a pass and an interleaved
// schedule (half of task 0, all of task 1, back to finish task 0) and
// verifies the stitched path is exactly the concatenation of its pieces:
// start transition + work portions + switch transitions, nothing dropped,
// nothing repeated.
func TestStitchWaypointAccounting(t *testing.T) {
	uav := core.UAVParameters{MinTurnRadius: 0, WaypointSpacing: 10, Airspeed: 5}
	prob := core.NewProblem()
	prob.UAV = uav

	sf0 := rowPath(20, 0, uav)  // 40 s of work
	sf1 := rowPath(8, 500, uav) // 16 s of work
	start0 := rowPath(5, 1000, uav)
	sw01 := rowPath(3, 1500, uav)
	sw10 := rowPath(4, 2000, uav)

	s0 := schedState{0, 0}
	s1 := schedState{20, 0}
	s2 := schedState{20, 16}
	s3 := schedState{40, 16}

	p := &pass{
		prob:       prob,
		tasks:      []*core.Task{core.NewTask(0, "west", core.Coverage), core.NewTask(1, "east", core.Coverage)},
		startPaths: []core.Waypath{start0, rowPath(6, 2500, uav)},
		subFlights: []core.Waypath{sf0, sf1},
		required:   []float64{40, 16},
		lastTask:   map[string]int{s1.key(): 0, s2.key(): 1, s3.key(): 0},
		switches:   map[string]core.Waypath{s2.key(): sw01, s3.key(): sw10},
	}

	hp := &HierarchicalPlanner{}
	flight := hp.stitch(p, []schedState{s0, s1, s2, s3})

	wantKinds := []core.LegKind{
		core.LegTransit, core.LegWork, // out to task 0, first half
		core.LegSwitch, core.LegWork, // over to task 1, all of it
		core.LegSwitch, core.LegWork, // back to task 0, second half
	}
	if len(flight.Legs) != len(wantKinds) {
		t.Fatalf("Expected %d legs, got %d", len(wantKinds), len(flight.Legs))
	}
	for i, want := range wantKinds {
		if flight.Legs[i].Kind != want {
			t.Errorf("Leg %d: expected %v, got %v", i, want, flight.Legs[i].Kind)
		}
	}

	// Total count: the start transition, both sub-flights in full, and both
	// switch transitions, exactly once each.
	want := len(start0) + len(sf0) + len(sf1) + len(sw01) + len(sw10)
	if len(flight.Path) != want {
		t.Errorf("Stitched path has %d waypoints, expected %d", len(flight.Path), want)
	}

	// Legs tile the path with no gaps or overlap.
	next := 0
	for i, leg := range flight.Legs {
		if leg.First != next {
			t.Errorf("Leg %d starts at waypoint %d, expected %d", i, leg.First, next)
		}
		next += leg.Count
	}
	if next != len(flight.Path) {
		t.Errorf("Legs cover %d waypoints, path has %d", next, len(flight.Path))
	}

	// Task 0's two visits cover [0,20) then [20,40); the second visit resumes
	// at the exact waypoint where the first stopped.
	legs0 := flight.TaskLegs(0)
	if len(legs0) != 2 {
		t.Fatalf("Expected 2 work legs for task 0, got %d", len(legs0))
	}
	if legs0[0].WorkFrom != 0 || legs0[0].WorkTo != 20 {
		t.Errorf("First visit covers [%.0f, %.0f)s, expected [0, 20)s", legs0[0].WorkFrom, legs0[0].WorkTo)
	}
	if legs0[1].WorkFrom != 20 || legs0[1].WorkTo != 40 {
		t.Errorf("Second visit covers [%.0f, %.0f)s, expected [20, 40)s", legs0[1].WorkFrom, legs0[1].WorkTo)
	}
	if legs0[0].Count+legs0[1].Count != len(sf0) {
		t.Errorf("Task 0 work legs carry %d waypoints, sub-flight has %d",
			legs0[0].Count+legs0[1].Count, len(sf0))
	}

	// The stitched work waypoints are the sub-flight's own, in order.
	stitched := append(core.Waypath{}, flight.Path[legs0[0].First:legs0[0].First+legs0[0].Count]...)
	stitched = append(stitched, flight.Path[legs0[1].First:legs0[1].First+legs0[1].Count]...)
	for i, wp := range stitched {
		if wp != sf0[i] {
			t.Fatalf("Task 0 work waypoint %d differs from its sub-flight", i)
		}
	}

	wantDuration := float64(want) * uav.WaypointSpacing / uav.Airspeed
	if math.Abs(flight.Duration-wantDuration) > 1e-9 {
		t.Errorf("Duration %.3fs, expected %.3fs", flight.Duration, wantDuration)
	}
}

// TestStitchSingleStep covers the smallest schedule: one step that finishes
// one task entirely. Only the start transition and one work leg appear.
func TestStitchSingleStep(t *testing.T) {
	uav := core.UAVParameters{MinTurnRadius: 0, WaypointSpacing: 10, Airspeed: 5}
	prob := core.NewProblem()
	prob.UAV = uav

	sf := rowPath(12, 0, uav)
	start := rowPath(7, 500, uav)

	s0 := schedState{0}
	s1 := schedState{24}
	p := &pass{
		prob:       prob,
		tasks:      []*core.Task{core.NewTask(0, "only", core.Coverage)},
		startPaths: []core.Waypath{start},
		subFlights: []core.Waypath{sf},
		required:   []float64{24},
		lastTask:   map[string]int{s1.key(): 0},
		switches:   map[string]core.Waypath{},
	}

	flight := (&HierarchicalPlanner{}).stitch(p, []schedState{s0, s1})

	if got := len(flight.Path); got != len(start)+len(sf) {
		t.Errorf("Stitched path has %d waypoints, expected %d", got, len(start)+len(sf))
	}
	if got := flight.CountLegs(core.LegSwitch); got != 0 {
		t.Errorf("Expected no switch legs, got %d", got)
	}
	if got := flight.WorkTime(0); math.Abs(got-24) > 1e-9 {
		t.Errorf("Work time %.3fs, expected 24s", got)
	}
}
