package algo

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/elektrokombinacija/uav-mission-research/internal/core"
	"github.com/elektrokombinacija/uav-mission-research/internal/geo"
)

// squareArea builds a square task area of the given side length centered at
// center, with corners in counterclockwise order.
func squareArea(id core.TaskID, name string, center core.GeoPosition, sideMeters float64, kind core.TaskKind) *core.TaskArea {
	h := sideMeters / 2
	poly := core.GeoPolygon{
		geo.Offset(center, -h, -h),
		geo.Offset(center, h, -h),
		geo.Offset(center, h, h),
		geo.Offset(center, -h, h),
	}
	if kind.IsObstacle() {
		return &core.TaskArea{Polygon: poly, Kind: kind}
	}
	return &core.TaskArea{Polygon: poly, Kind: kind, Task: core.NewTask(id, name, kind)}
}

// createTestProblem builds a two-task problem: two 600 m survey squares
// about 2 km apart, with the start position southwest of both. The vehicle
// can point-turn (zero minimum radius).
func createTestProblem() *core.Problem {
	origin := core.GeoPosition{Lon: 14.46, Lat: 45.33}
	prob := core.NewProblem()
	prob.UAV.MinTurnRadius = 0
	prob.Start = geo.Offset(origin, -1500, -1500)
	prob.StartOrientation = core.NewOrientation(math.Pi / 4)
	prob.Areas = []*core.TaskArea{
		squareArea(0, "west-field", origin, 600, core.Coverage),
		squareArea(1, "east-field", geo.Offset(origin, 2000, 0), 600, core.Coverage),
	}
	return prob
}

func newTestPlanner(prob *core.Problem) *HierarchicalPlanner {
	trans := NewMemoPlanner(NewDubinsPlanner(prob.UAV), 0)
	return NewHierarchicalPlanner(trans, NewTransectPlanner(prob.UAV))
}

func TestHierarchicalSingleTask(t *testing.T) {
	prob := createTestProblem()
	prob.Areas = prob.Areas[:1]

	hp := newTestPlanner(prob)
	flight, err := hp.Plan(prob)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if got := flight.CountLegs(core.LegSwitch); got != 0 {
		t.Errorf("Expected 0 switch legs for a single task, got %d", got)
	}
	if got := flight.CountLegs(core.LegTransit); got != 1 {
		t.Errorf("Expected 1 transit leg, got %d", got)
	}
	if len(flight.Legs) < 2 {
		t.Fatalf("Expected transit plus work legs, got %d legs", len(flight.Legs))
	}
	if flight.Legs[0].Kind != core.LegTransit {
		t.Errorf("Expected first leg to be transit, got %v", flight.Legs[0].Kind)
	}
	for _, leg := range flight.Legs[1:] {
		if leg.Kind != core.LegWork {
			t.Errorf("Expected only work legs after the transit, got %v", leg.Kind)
		}
	}
}

func TestHierarchicalTwoTasksOneSwitch(t *testing.T) {
	prob := createTestProblem()
	hp := newTestPlanner(prob)
	flight, err := hp.Plan(prob)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	// Continuing a task never costs extra, so the greedy search finishes a
	// task before leaving it: two tasks means exactly one switch.
	if got := flight.CountLegs(core.LegSwitch); got != 1 {
		t.Errorf("Expected exactly 1 switch leg, got %d", got)
	}

	// The flight must pass through both area entries.
	anchors, err := SelectAnchors(prob.TaskAreas())
	if err != nil {
		t.Fatalf("SelectAnchors failed: %v", err)
	}
	for i, anchor := range anchors {
		closest := math.Inf(1)
		for _, wp := range flight.Path {
			if d := geo.DistanceMeters(wp, anchor.Entry); d < closest {
				closest = d
			}
		}
		if closest > prob.UAV.WaypointSpacing {
			t.Errorf("Task %d: flight never passes its entry anchor (closest %.1f m)", i, closest)
		}
	}

	stats := hp.LastStats()
	if stats.Tasks != 2 {
		t.Errorf("Expected stats for 2 tasks, got %d", stats.Tasks)
	}
	if stats.Switches != 1 {
		t.Errorf("Expected 1 switch in stats, got %d", stats.Switches)
	}
	if stats.Expansions == 0 || stats.Generated == 0 {
		t.Error("Expected non-zero search statistics")
	}
}

func TestHierarchicalWorkCoverage(t *testing.T) {
	prob := createTestProblem()
	hp := newTestPlanner(prob)
	flight, err := hp.Plan(prob)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	// Derive each task's required work independently and check the work
	// legs cover [0, required] exactly once, in order, with no gaps.
	areas := prob.TaskAreas()
	anchors, err := SelectAnchors(areas)
	if err != nil {
		t.Fatalf("SelectAnchors failed: %v", err)
	}
	tp := NewTransectPlanner(prob.UAV)
	for i, area := range areas {
		sf, err := tp.Plan(area.Task, area, anchors[i].Entry, anchors[i].Orientation)
		if err != nil {
			t.Fatalf("Transect for task %d failed: %v", i, err)
		}
		required := sf.TravelTime(prob.UAV)

		legs := flight.TaskLegs(area.Task.ID)
		if len(legs) == 0 {
			t.Fatalf("Task %d has no work legs", i)
		}
		at := 0.0
		waypoints := 0
		for _, leg := range legs {
			if math.Abs(leg.WorkFrom-at) > 1e-9 {
				t.Errorf("Task %d: work resumed at %.3fs, expected %.3fs", i, leg.WorkFrom, at)
			}
			if leg.WorkTo <= leg.WorkFrom {
				t.Errorf("Task %d: empty work interval [%f, %f]", i, leg.WorkFrom, leg.WorkTo)
			}
			at = leg.WorkTo
			waypoints += leg.Count
		}
		if math.Abs(at-required) > 1e-9 {
			t.Errorf("Task %d: work covered [0, %.3f]s, required %.3fs", i, at, required)
		}
		if waypoints != len(sf) {
			t.Errorf("Task %d: work legs carry %d waypoints, sub-flight has %d", i, waypoints, len(sf))
		}
		if got := flight.WorkTime(area.Task.ID); math.Abs(got-required) > 1e-9 {
			t.Errorf("Task %d: WorkTime %.3fs, expected %.3fs", i, got, required)
		}
	}
}

func TestHierarchicalLegContiguity(t *testing.T) {
	prob := createTestProblem()
	flight, err := newTestPlanner(prob).Plan(prob)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	next := 0
	at := 0.0
	for i, leg := range flight.Legs {
		if leg.First != next {
			t.Errorf("Leg %d starts at waypoint %d, expected %d", i, leg.First, next)
		}
		if math.Abs(leg.From-at) > 1e-9 {
			t.Errorf("Leg %d starts at %.3fs, expected %.3fs", i, leg.From, at)
		}
		next = leg.First + leg.Count
		at = leg.To
	}
	if next != len(flight.Path) {
		t.Errorf("Legs cover %d waypoints, path has %d", next, len(flight.Path))
	}
	if math.Abs(at-flight.Duration) > 1e-9 {
		t.Errorf("Legs end at %.3fs, flight duration %.3fs", at, flight.Duration)
	}
}

func TestHierarchicalDeterministic(t *testing.T) {
	prob := createTestProblem()

	first, err := newTestPlanner(prob).Plan(prob)
	if err != nil {
		t.Fatalf("First plan failed: %v", err)
	}
	second, err := newTestPlanner(prob).Plan(prob)
	if err != nil {
		t.Fatalf("Second plan failed: %v", err)
	}

	if len(first.Legs) != len(second.Legs) {
		t.Fatalf("Plans differ: %d vs %d legs", len(first.Legs), len(second.Legs))
	}
	for i := range first.Legs {
		a, b := first.Legs[i], second.Legs[i]
		if a.Kind != b.Kind || a.Task != b.Task || a.Count != b.Count {
			t.Errorf("Leg %d differs: %+v vs %+v", i, a, b)
		}
	}
	if len(first.Path) != len(second.Path) {
		t.Errorf("Paths differ: %d vs %d waypoints", len(first.Path), len(second.Path))
	}
}

func TestHierarchicalTimesliceControlsSteps(t *testing.T) {
	prob := createTestProblem()
	prob.Areas = prob.Areas[:1]

	coarse := newTestPlanner(prob)
	coarse.Timeslice = 60
	coarseFlight, err := coarse.Plan(prob)
	if err != nil {
		t.Fatalf("Coarse plan failed: %v", err)
	}

	fine := newTestPlanner(prob)
	fine.Timeslice = 5
	fineFlight, err := fine.Plan(prob)
	if err != nil {
		t.Fatalf("Fine plan failed: %v", err)
	}

	if coarseN, fineN := len(coarseFlight.TaskLegs(0)), len(fineFlight.TaskLegs(0)); coarseN >= fineN {
		t.Errorf("Expected coarser timeslice to produce fewer work legs: %d vs %d", coarseN, fineN)
	}
	// Both cover the same work regardless of slicing.
	if c, f := coarseFlight.WorkTime(0), fineFlight.WorkTime(0); math.Abs(c-f) > 1e-9 {
		t.Errorf("Work time depends on timeslice: %.3f vs %.3f", c, f)
	}
}

func TestHierarchicalNoTasks(t *testing.T) {
	prob := core.NewProblem()
	prob.Areas = []*core.TaskArea{
		squareArea(0, "", core.GeoPosition{Lon: 14.46, Lat: 45.33}, 400, core.NoFlyZone),
	}
	_, err := newTestPlanner(prob).Plan(prob)
	if err == nil {
		t.Fatal("Expected an error for a problem with no schedulable tasks")
	}
}

// failAfterPlanner delegates to an inner planner for the first n calls and
// then fails with ErrNoTransition.
type failAfterPlanner struct {
	inner TransitionPlanner
	left  int
}

func (f *failAfterPlanner) Name() string { return "FailAfter" }

func (f *failAfterPlanner) Plan(start core.GeoPosition, startO core.Orientation,
	end core.GeoPosition, endO core.Orientation,
	obstacles []core.GeoPolygon) (core.Waypath, error) {
	if f.left <= 0 {
		return nil, fmt.Errorf("%w: budget exhausted", ErrNoTransition)
	}
	f.left--
	return f.inner.Plan(start, startO, end, endO, obstacles)
}

func TestHierarchicalTransitionFailureAborts(t *testing.T) {
	prob := createTestProblem()

	// Two start transitions succeed; the first context switch fails.
	trans := &failAfterPlanner{inner: NewDirectPlanner(prob.UAV), left: 2}
	hp := NewHierarchicalPlanner(trans, NewTransectPlanner(prob.UAV))
	_, err := hp.Plan(prob)
	if err == nil {
		t.Fatal("Expected plan to fail when a switch transition cannot be planned")
	}
	if !errors.Is(err, ErrNoTransition) {
		t.Errorf("Expected error to wrap ErrNoTransition, got %v", err)
	}
}

func TestHierarchicalStartTransitionFailureAborts(t *testing.T) {
	prob := createTestProblem()

	trans := &failAfterPlanner{inner: NewDirectPlanner(prob.UAV), left: 0}
	hp := NewHierarchicalPlanner(trans, NewTransectPlanner(prob.UAV))
	_, err := hp.Plan(prob)
	if !errors.Is(err, ErrNoTransition) {
		t.Errorf("Expected error to wrap ErrNoTransition, got %v", err)
	}
}

// emptySubFlightPlanner always returns an empty path.
type emptySubFlightPlanner struct{}

func (emptySubFlightPlanner) Plan(task *core.Task, area *core.TaskArea,
	entry core.GeoPosition, entryO core.Orientation) (core.Waypath, error) {
	return core.Waypath{}, nil
}

func TestHierarchicalRejectsEmptySubFlight(t *testing.T) {
	prob := createTestProblem()
	hp := NewHierarchicalPlanner(NewDirectPlanner(prob.UAV), emptySubFlightPlanner{})
	_, err := hp.Plan(prob)
	if err == nil {
		t.Fatal("Expected plan to reject an empty sub-flight")
	}
}

func TestPathPortionRounding(t *testing.T) {
	uav := core.DefaultUAVParameters()
	origin := core.GeoPosition{Lon: 14.46, Lat: 45.33}
	path := make(core.Waypath, 29)
	for i := range path {
		path[i] = geo.Offset(origin, float64(i)*uav.WaypointSpacing, 0)
	}
	required := path.TravelTime(uav)

	// Slicing at timeslice boundaries must tile the path exactly.
	covered := 0
	at := 0.0
	for at < required {
		next := math.Min(required, at+DefaultTimeslice)
		covered += len(pathPortion(path, at, next, uav))
		at = next
	}
	if covered != len(path) {
		t.Errorf("Portions cover %d waypoints, path has %d", covered, len(path))
	}
}
