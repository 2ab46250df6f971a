// Package state manages the visualization state.
package state

import (
	"fmt"
	"math"

	"github.com/elektrokombinacija/uav-mission-research/internal/algo"
	"github.com/elektrokombinacija/uav-mission-research/internal/core"
)

// State holds everything the visualizer shows: the mission problem, the
// anchors the planners fly through, the planned flight, and the replay clock.
type State struct {
	Problem  *core.Problem
	Anchors  []algo.Anchor
	Flight   *core.Flight
	Planners []algo.MissionPlanner
	Active   int    // index of the planner that produced Flight
	PlanErr  string // last replan failure, empty when Flight is current
	Playback *PlaybackState

	interp algo.Interpolator
}

// NewState selects anchors, plans the problem with the first planner, and
// prepares a paused replay.
func NewState(prob *core.Problem, planners []algo.MissionPlanner) (*State, error) {
	if len(planners) == 0 {
		return nil, fmt.Errorf("no planners configured")
	}
	anchors, err := algo.SelectAnchors(prob.TaskAreas())
	if err != nil {
		return nil, fmt.Errorf("anchor selection: %w", err)
	}

	flight, err := planners[0].Plan(prob)
	if err != nil {
		return nil, fmt.Errorf("%s planner: %w", planners[0].Name(), err)
	}

	return &State{
		Problem:  prob,
		Anchors:  anchors,
		Flight:   flight,
		Planners: planners,
		Playback: NewPlaybackState(flight.Duration),
		interp:   algo.NewInterpolator(prob.UAV),
	}, nil
}

// Replan runs the active planner again. On failure the previous flight stays
// on screen and PlanErr carries the reason.
func (s *State) Replan() {
	flight, err := s.Planners[s.Active].Plan(s.Problem)
	if err != nil {
		s.PlanErr = err.Error()
		return
	}
	s.Flight = flight
	s.PlanErr = ""
	s.Playback.Retarget(flight.Duration)
}

// CyclePlanner switches to the next configured planner and replans.
func (s *State) CyclePlanner() {
	s.Active = (s.Active + 1) % len(s.Planners)
	s.Replan()
}

// PlannerName returns the active planner's name.
func (s *State) PlannerName() string {
	return s.Planners[s.Active].Name()
}

// VehicleSample returns the vehicle's interpolated position and heading at
// the current replay time. The flight charges one spacing interval per
// waypoint, so its duration runs one interval past the final segment; the
// time is clamped so the vehicle parks on the last waypoint instead of
// extrapolating beyond it.
func (s *State) VehicleSample() (algo.Sample, bool) {
	if s.Flight == nil || len(s.Flight.Path) == 0 {
		return algo.Sample{}, false
	}
	t := math.Min(s.Playback.CurrentTime, s.interp.Duration(s.Flight.Path))
	sample, err := s.interp.At(s.Flight.Path, s.Problem.StartOrientation, t)
	if err != nil {
		return algo.Sample{}, false
	}
	return sample, true
}

// Trail returns the waypoints flown so far plus the current interpolated
// position, for drawing the vehicle's track.
func (s *State) Trail() []core.GeoPosition {
	sample, ok := s.VehicleSample()
	if !ok {
		return nil
	}
	p := s.Problem.UAV
	k := int(s.Playback.CurrentTime * p.Airspeed / p.WaypointSpacing)
	if k >= len(s.Flight.Path) {
		k = len(s.Flight.Path) - 1
	}
	trail := make([]core.GeoPosition, 0, k+2)
	trail = append(trail, s.Flight.Path[:k+1]...)
	return append(trail, sample.Position)
}

// ActiveLeg returns the flight leg being replayed, or nil before planning.
func (s *State) ActiveLeg() *core.Leg {
	if s.Flight == nil {
		return nil
	}
	return s.Flight.LegAt(s.Playback.CurrentTime)
}

// TaskName resolves a task id to its scenario name.
func (s *State) TaskName(id core.TaskID) string {
	if a := s.Problem.AreaByTask(id); a != nil && a.Task != nil {
		return a.Task.Name
	}
	return ""
}
