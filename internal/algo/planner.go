// Package algo implements the UAV mission planning algorithms: anchor
// selection on task areas, transition path generation, sub-flight
// interpolation, and the hierarchical task scheduler that stitches
// everything into a single flight.
package algo

import (
	"errors"

	"github.com/elektrokombinacija/uav-mission-research/internal/core"
)

// Planning failure categories. Planners wrap these with context so callers
// can both classify and report failures.
var (
	// ErrAnchorSearch means an area's entry/exit anchors could not be
	// located, usually because the ray march failed to leave the polygon.
	ErrAnchorSearch = errors.New("anchor search failed")

	// ErrNoTransition means a transition planner could not produce a path
	// between two oriented configurations.
	ErrNoTransition = errors.New("no transition path")

	// ErrScheduleExhausted means the scheduler drained its worklist without
	// reaching the goal state.
	ErrScheduleExhausted = errors.New("schedule search exhausted")

	// ErrInterpolation means a position could not be interpolated on a
	// sub-flight.
	ErrInterpolation = errors.New("interpolation failed")
)

// TransitionPlanner produces a flyable path connecting two oriented
// configurations while respecting the vehicle's kinematics. Obstacle
// polygons are advisory: a planner may route around them or ignore them.
type TransitionPlanner interface {
	// Plan returns a path from start to end. The returned path is non-empty,
	// begins near start, and ends near end. Returns an error wrapping
	// ErrNoTransition when no path exists for the vehicle.
	Plan(start core.GeoPosition, startO core.Orientation,
		end core.GeoPosition, endO core.Orientation,
		obstacles []core.GeoPolygon) (core.Waypath, error)

	// Name returns the planner name for configuration and reporting.
	Name() string
}

// SubFlightPlanner produces the ideal interior path for one task: the
// flight the vehicle would fly if the task were the mission's only one.
// The path must start at the given entry configuration.
type SubFlightPlanner interface {
	Plan(task *core.Task, area *core.TaskArea,
		entry core.GeoPosition, entryO core.Orientation) (core.Waypath, error)
}

// MissionPlanner turns a whole problem into a flight.
type MissionPlanner interface {
	// Plan attempts to produce a flight serving every schedulable task.
	// Returns an error if any planning stage fails; a returned flight is
	// always complete.
	Plan(prob *core.Problem) (*core.Flight, error)

	// Name returns the planner name.
	Name() string
}
