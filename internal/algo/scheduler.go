package algo

import (
	"container/heap"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/elektrokombinacija/uav-mission-research/internal/core"
	"github.com/elektrokombinacija/uav-mission-research/internal/logging"
)

// DefaultTimeslice is how many seconds of task work one schedule step
// represents. Coarser slices plan faster; finer slices allow tighter
// interleaving.
const DefaultTimeslice = 15.0

// HierarchicalPlanner plans a mission in two layers: a state-space search
// decides when the vehicle works on which task in Timeslice quanta, and
// the transition planner fills in the flying between those decisions.
//
// The search is greedy, not optimal: each state's priority is its remaining
// Manhattan work distance to the goal plus the transition penalty paid on
// the step that produced it, and a state is closed the moment it is first
// generated. The planner therefore strongly prefers finishing the current
// task before switching, which is the behavior wanted from a survey
// aircraft, and it reaches the goal after a number of expansions roughly
// linear in total work time.
type HierarchicalPlanner struct {
	Timeslice   float64
	Transitions TransitionPlanner
	SubFlights  SubFlightPlanner
	Log         *logging.Logger

	stats PlanStats
}

// PlanStats summarizes the most recent planning pass. Valid after Plan
// returns; a planner must not run concurrent passes.
type PlanStats struct {
	Tasks      int
	Expansions int // states popped from the worklist
	Generated  int // successor states pushed
	Switches   int // context switches in the final schedule
}

func NewHierarchicalPlanner(transitions TransitionPlanner, subFlights SubFlightPlanner) *HierarchicalPlanner {
	return &HierarchicalPlanner{
		Timeslice:   DefaultTimeslice,
		Transitions: transitions,
		SubFlights:  subFlights,
	}
}

func (hp *HierarchicalPlanner) Name() string { return "Hierarchical" }

// LastStats returns statistics from the most recent Plan call.
func (hp *HierarchicalPlanner) LastStats() PlanStats { return hp.stats }

// Plan derives anchors, start transitions, and ideal sub-flights for every
// task, searches for a work schedule, and stitches the result into one
// flight.
func (hp *HierarchicalPlanner) Plan(prob *core.Problem) (*core.Flight, error) {
	if err := prob.Validate(); err != nil {
		return nil, err
	}
	p, err := newPass(prob, hp.Transitions, hp.SubFlights, hp.Log)
	if err != nil {
		return nil, err
	}
	schedule, err := hp.search(p)
	if err != nil {
		return nil, err
	}
	flight := hp.stitch(p, schedule)

	hp.stats = PlanStats{
		Tasks:      len(p.tasks),
		Expansions: p.expansions,
		Generated:  p.generated,
		Switches:   flight.CountLegs(core.LegSwitch),
	}
	hp.Log.Info("plan complete",
		"tasks", hp.stats.Tasks,
		"expansions", hp.stats.Expansions,
		"switches", hp.stats.Switches,
		"waypoints", len(flight.Path),
		"duration_s", flight.Duration)
	return flight, nil
}

// schedState is a vector of cumulative seconds of work done per task,
// indexed by the pass's task order. All components are sums of whole
// timeslices clamped at the task's required time, so equal progress always
// produces bit-identical values and states can be keyed exactly.
type schedState []float64

func (s schedState) key() string {
	b := make([]byte, 8*len(s))
	for i, v := range s {
		binary.BigEndian.PutUint64(b[i*8:], math.Float64bits(v))
	}
	return string(b)
}

func (s schedState) clone() schedState {
	c := make(schedState, len(s))
	copy(c, s)
	return c
}

// manhattanTo returns the summed per-task work remaining between s and goal.
func (s schedState) manhattanTo(goal schedState) float64 {
	sum := 0.0
	for i := range s {
		sum += math.Abs(goal[i] - s[i])
	}
	return sum
}

// schedNode for the worklist.
type schedNode struct {
	state schedState
	cost  float64
	seq   int // insertion order; breaks cost ties first-in first-out
	index int // heap index
}

// schedHeap implements heap.Interface.
type schedHeap []*schedNode

func (h schedHeap) Len() int { return len(h) }
func (h schedHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	return h[i].seq < h[j].seq
}
func (h schedHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *schedHeap) Push(x any) {
	n := x.(*schedNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *schedHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

// pass holds everything one planning run derives up front and the search
// bookkeeping it accumulates. A fresh pass is built per Plan call, so a
// planner value can be reused across problems.
type pass struct {
	prob      *core.Problem
	areas     []*core.TaskArea
	tasks     []*core.Task
	obstacles []core.GeoPolygon
	anchors   []Anchor
	interp    Interpolator

	startPaths []core.Waypath // start transition per task
	subFlights []core.Waypath // ideal sub-flight per task
	required   []float64      // seconds of work to finish each task

	parent   map[string]schedState
	lastTask map[string]int          // task worked on the step reaching a state
	switches map[string]core.Waypath // transition flown to reach a state, when it switched tasks

	expansions int
	generated  int
}

// newPass selects anchors and plans the start transition and ideal
// sub-flight for every task. Any failure here aborts the whole pass.
// Both mission planners build their passes here, so they agree on anchors,
// sub-flights, and required work times.
func newPass(prob *core.Problem, transitions TransitionPlanner,
	subFlights SubFlightPlanner, log *logging.Logger) (*pass, error) {

	areas := prob.TaskAreas()
	if len(areas) == 0 {
		return nil, errors.New("problem has no schedulable task areas")
	}

	p := &pass{
		prob:      prob,
		areas:     areas,
		obstacles: prob.Obstacles(),
		interp:    NewInterpolator(prob.UAV),
		parent:    make(map[string]schedState),
		lastTask:  make(map[string]int),
		switches:  make(map[string]core.Waypath),
	}
	for _, a := range areas {
		p.tasks = append(p.tasks, a.Task)
	}

	anchors, err := SelectAnchors(areas)
	if err != nil {
		return nil, err
	}
	p.anchors = anchors

	p.startPaths = make([]core.Waypath, len(areas))
	p.subFlights = make([]core.Waypath, len(areas))
	p.required = make([]float64, len(areas))
	for i, area := range areas {
		task := p.tasks[i]
		anchor := anchors[i]

		sp, err := transitions.Plan(prob.Start, prob.StartOrientation,
			anchor.Entry, anchor.Orientation, p.obstacles)
		if err != nil {
			return nil, fmt.Errorf("start transition to task %q: %w", task.Name, err)
		}
		p.startPaths[i] = sp

		sf, err := subFlights.Plan(task, area, anchor.Entry, anchor.Orientation)
		if err != nil {
			return nil, fmt.Errorf("sub-flight for task %q: %w", task.Name, err)
		}
		if len(sf) == 0 {
			return nil, fmt.Errorf("sub-flight for task %q is empty", task.Name)
		}
		p.subFlights[i] = sf
		p.required[i] = sf.TravelTime(prob.UAV)

		log.Debug("task prepared",
			"task", task.Name,
			"subflight_waypoints", len(sf),
			"required_s", p.required[i],
			"start_transition_waypoints", len(sp))
	}
	return p, nil
}

// search runs the greedy best-first schedule search and returns the state
// sequence from the all-zero start to the goal.
func (hp *HierarchicalPlanner) search(p *pass) ([]schedState, error) {
	n := len(p.tasks)
	start := make(schedState, n)
	goal := schedState(p.required)
	startKey := start.key()
	goalKey := goal.key()

	timeslice := hp.Timeslice
	if timeslice <= 0 {
		timeslice = DefaultTimeslice
	}

	worklist := &schedHeap{}
	heap.Init(worklist)
	heap.Push(worklist, &schedNode{state: start, cost: start.manhattanTo(goal)})
	// States close at generation: the first step to produce a state owns its
	// parent link, and later routes to the same state are discarded even if
	// they would be cheaper. Deliberately non-optimal; it keeps the worklist
	// from exploding with permutations of the same progress vector.
	closed := map[string]bool{startKey: true}
	seq := 0

	for worklist.Len() > 0 {
		node := heap.Pop(worklist).(*schedNode)
		state := node.state
		stateKey := state.key()
		p.expansions++
		hp.Log.Debug("expanding schedule state", "state", []float64(state), "cost", node.cost)

		if stateKey == goalKey {
			return p.traceback(state, startKey), nil
		}

		for i := 0; i < n; i++ {
			succ := state.clone()
			succ[i] = math.Min(p.required[i], succ[i]+timeslice)
			succKey := succ.key()
			if closed[succKey] {
				continue
			}
			closed[succKey] = true
			p.parent[succKey] = state
			p.lastTask[succKey] = i

			cost := succ.manhattanTo(goal)
			switch {
			case stateKey == startKey:
				// First step of the mission pays for flying out to the task.
				cost += p.startPaths[i].TravelTime(p.prob.UAV)
			case p.lastTask[stateKey] == i:
				// Continuing the same task needs no transition.
			default:
				trans, err := hp.transitionBetween(p, state, p.lastTask[stateKey], i)
				if err != nil {
					return nil, err
				}
				p.switches[succKey] = trans
				cost += trans.TravelTime(p.prob.UAV)
			}

			seq++
			heap.Push(worklist, &schedNode{state: succ, cost: cost, seq: seq})
			p.generated++
		}
	}
	return nil, fmt.Errorf("%w after %d expansions", ErrScheduleExhausted, p.expansions)
}

// transitionBetween plans the context-switch flight from the vehicle's
// position on the task it was working to where work resumes on the next
// task, both interpolated at the parent state's progress times.
func (hp *HierarchicalPlanner) transitionBetween(p *pass, state schedState, prev, next int) (core.Waypath, error) {
	from, err := p.interp.At(p.subFlights[prev], p.anchors[prev].Orientation, state[prev])
	if err != nil {
		return nil, fmt.Errorf("interpolate task %q at %.1fs: %w", p.tasks[prev].Name, state[prev], err)
	}
	to, err := p.interp.At(p.subFlights[next], p.anchors[next].Orientation, state[next])
	if err != nil {
		return nil, fmt.Errorf("interpolate task %q at %.1fs: %w", p.tasks[next].Name, state[next], err)
	}
	if from.Extrapolated || to.Extrapolated {
		hp.Log.Debug("switch endpoints extrapolated past sub-flight end",
			"from_task", p.tasks[prev].Name, "to_task", p.tasks[next].Name)
	}
	trans, err := hp.Transitions.Plan(from.Position, from.Orientation,
		to.Position, to.Orientation, p.obstacles)
	if err != nil {
		return nil, fmt.Errorf("switch %q to %q: %w", p.tasks[prev].Name, p.tasks[next].Name, err)
	}
	return trans, nil
}

// traceback rebuilds the schedule by following parent links from the goal
// back to the start state.
func (p *pass) traceback(goal schedState, startKey string) []schedState {
	schedule := []schedState{goal}
	for cur := goal; cur.key() != startKey; {
		cur = p.parent[cur.key()]
		schedule = append([]schedState{cur}, schedule...)
	}
	return schedule
}
