package algo

import (
	"errors"
	"math"
	"testing"

	"github.com/elektrokombinacija/uav-mission-research/internal/core"
)

func newSequentialTestPlanner(prob *core.Problem) *SequentialPlanner {
	trans := NewMemoPlanner(NewDubinsPlanner(prob.UAV), 0)
	return NewSequentialPlanner(trans, NewTransectPlanner(prob.UAV))
}

func TestSequentialVisitsNearestFirst(t *testing.T) {
	prob := createTestProblem()
	flight, err := newSequentialTestPlanner(prob).Plan(prob)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	// The start is southwest of the west field, so it is served first:
	// transit, work, switch, work.
	if len(flight.Legs) != 4 {
		t.Fatalf("Expected 4 legs, got %d", len(flight.Legs))
	}
	wantKinds := []core.LegKind{core.LegTransit, core.LegWork, core.LegSwitch, core.LegWork}
	for i, want := range wantKinds {
		if flight.Legs[i].Kind != want {
			t.Errorf("Leg %d: expected %v, got %v", i, want, flight.Legs[i].Kind)
		}
	}
	if flight.Legs[1].Task != 0 {
		t.Errorf("Expected the west field (task 0) first, got task %d", flight.Legs[1].Task)
	}
	if flight.Legs[3].Task != 1 {
		t.Errorf("Expected the east field (task 1) second, got task %d", flight.Legs[3].Task)
	}
}

func TestSequentialSingleVisitPerTask(t *testing.T) {
	prob := createTestProblem()
	flight, err := newSequentialTestPlanner(prob).Plan(prob)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

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
		if len(legs) != 1 {
			t.Fatalf("Task %d: expected exactly one work leg, got %d", i, len(legs))
		}
		if legs[0].WorkFrom != 0 {
			t.Errorf("Task %d: work starts at %.3fs, expected 0", i, legs[0].WorkFrom)
		}
		if math.Abs(legs[0].WorkTo-required) > 1e-9 {
			t.Errorf("Task %d: work ends at %.3fs, required %.3fs", i, legs[0].WorkTo, required)
		}
		if legs[0].Count != len(sf) {
			t.Errorf("Task %d: work leg carries %d waypoints, sub-flight has %d", i, legs[0].Count, len(sf))
		}
	}
}

func TestSequentialLegContiguity(t *testing.T) {
	prob := createTestProblem()
	flight, err := newSequentialTestPlanner(prob).Plan(prob)
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
}

func TestSequentialAndHierarchicalSameWork(t *testing.T) {
	prob := createTestProblem()

	seq, err := newSequentialTestPlanner(prob).Plan(prob)
	if err != nil {
		t.Fatalf("Sequential plan failed: %v", err)
	}
	hier, err := newTestPlanner(prob).Plan(prob)
	if err != nil {
		t.Fatalf("Hierarchical plan failed: %v", err)
	}

	// Both planners share the pass machinery, so the work delivered per task
	// is identical; only the interleaving differs.
	for _, area := range prob.TaskAreas() {
		s, h := seq.WorkTime(area.Task.ID), hier.WorkTime(area.Task.ID)
		if math.Abs(s-h) > 1e-9 {
			t.Errorf("Task %d: sequential works %.3fs, hierarchical %.3fs", area.Task.ID, s, h)
		}
	}
}

func TestSequentialTransitionFailureAborts(t *testing.T) {
	prob := createTestProblem()

	// Both start transitions succeed; the switch to the second task fails.
	trans := &failAfterPlanner{inner: NewDirectPlanner(prob.UAV), left: 2}
	_, err := NewSequentialPlanner(trans, NewTransectPlanner(prob.UAV)).Plan(prob)
	if !errors.Is(err, ErrNoTransition) {
		t.Errorf("Expected error to wrap ErrNoTransition, got %v", err)
	}
}
