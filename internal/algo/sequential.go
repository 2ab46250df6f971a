package algo

import (
	"github.com/elektrokombinacija/uav-mission-research/internal/core"
	"github.com/elektrokombinacija/uav-mission-research/internal/geo"
	"github.com/elektrokombinacija/uav-mission-research/internal/logging"
)

// SequentialPlanner is the baseline mission planner: it visits every task
// exactly once in greedy nearest-entry order and flies each sub-flight to
// completion before moving on. It never splits a task, so comparing it
// against the hierarchical planner isolates what time multiplexing buys.
// Anchors, sub-flights, and transitions come from the same pass machinery
// the hierarchical planner uses.
type SequentialPlanner struct {
	Transitions TransitionPlanner
	SubFlights  SubFlightPlanner
	Log         *logging.Logger
}

func NewSequentialPlanner(transitions TransitionPlanner, subFlights SubFlightPlanner) *SequentialPlanner {
	return &SequentialPlanner{Transitions: transitions, SubFlights: subFlights}
}

func (sp *SequentialPlanner) Name() string { return "Sequential" }

func (sp *SequentialPlanner) Plan(prob *core.Problem) (*core.Flight, error) {
	if err := prob.Validate(); err != nil {
		return nil, err
	}
	p, err := newPass(prob, sp.Transitions, sp.SubFlights, sp.Log)
	if err != nil {
		return nil, err
	}

	flight := &core.Flight{}
	uav := prob.UAV
	pos := prob.Start
	remaining := make([]bool, len(p.tasks))
	for i := range remaining {
		remaining[i] = true
	}

	for visited := 0; visited < len(p.tasks); visited++ {
		// Nearest unvisited entry; ties go to the lower task index.
		next := -1
		best := 0.0
		for i, open := range remaining {
			if !open {
				continue
			}
			d := geo.ECEFDistanceSquared(pos, p.anchors[i].Entry)
			if next < 0 || d < best {
				next, best = i, d
			}
		}
		remaining[next] = false
		task := p.tasks[next].ID

		if visited == 0 {
			flight.AppendLeg(core.LegTransit, task, p.startPaths[next], uav)
		} else {
			trans, err := sp.Transitions.Plan(pos, sp.endOrientation(p, flight),
				p.anchors[next].Entry, p.anchors[next].Orientation, p.obstacles)
			if err != nil {
				return nil, err
			}
			flight.AppendLeg(core.LegSwitch, task, trans, uav)
		}

		flight.AppendWork(task, p.subFlights[next], uav, 0, p.required[next])
		pos = p.subFlights[next].Last()
	}

	sp.Log.Info("plan complete",
		"tasks", len(p.tasks),
		"waypoints", len(flight.Path),
		"duration_s", flight.Duration)
	return flight, nil
}

// endOrientation is the direction of the last flown segment, used as the
// departure heading when leaving a finished task.
func (sp *SequentialPlanner) endOrientation(p *pass, flight *core.Flight) core.Orientation {
	n := len(flight.Path)
	if n < 2 {
		return p.prob.StartOrientation
	}
	return geo.Bearing(flight.Path[n-2], flight.Path[n-1])
}
