package core

// LegKind classifies a contiguous stretch of the final flight path.
type LegKind int

const (
	// LegTransit is the transition from the start position to the first task.
	LegTransit LegKind = iota
	// LegWork is a slice of a task's sub-flight flown during one pass.
	LegWork
	// LegSwitch is a generated transition between two different tasks.
	LegSwitch
)

func (k LegKind) String() string {
	switch k {
	case LegTransit:
		return "transit"
	case LegWork:
		return "work"
	case LegSwitch:
		return "switch"
	default:
		return "unknown"
	}
}

// Leg annotates a half-open waypoint range [First, First+Count) of the
// flight path. From and To are cumulative flight times in seconds at the
// leg boundaries. For work legs, WorkFrom and WorkTo record the task-local
// interval of the sub-flight covered by this leg, in seconds of work time.
type Leg struct {
	Kind     LegKind
	Task     TaskID // task served; meaningful for LegWork and LegSwitch
	First    int
	Count    int
	From     float64
	To       float64
	WorkFrom float64
	WorkTo   float64
}

// Flight is the planner's final product: a single stitched waypoint path
// covering every task, with per-leg annotations for analysis and replay.
type Flight struct {
	Path     Waypath
	Legs     []Leg
	Duration float64
}

// AppendLeg extends the flight with a transit or switch segment and records
// its annotation. Empty segments are recorded with a zero count so the leg
// sequence still reflects the visit order.
func (f *Flight) AppendLeg(kind LegKind, task TaskID, segment Waypath, p UAVParameters) {
	f.append(Leg{Kind: kind, Task: task}, segment, p)
}

// AppendWork extends the flight with a slice of a task's sub-flight covering
// the task-local interval [from, to) seconds.
func (f *Flight) AppendWork(task TaskID, segment Waypath, p UAVParameters, from, to float64) {
	f.append(Leg{Kind: LegWork, Task: task, WorkFrom: from, WorkTo: to}, segment, p)
}

func (f *Flight) append(leg Leg, segment Waypath, p UAVParameters) {
	leg.First = len(f.Path)
	leg.Count = len(segment)
	leg.From = f.Duration
	leg.To = f.Duration + segment.TravelTime(p)

	f.Path = append(f.Path, segment...)
	f.Legs = append(f.Legs, leg)
	f.Duration = leg.To
}

// TaskLegs returns the work legs that serve the given task, in flight order.
func (f *Flight) TaskLegs(id TaskID) []Leg {
	var out []Leg
	for _, leg := range f.Legs {
		if leg.Kind == LegWork && leg.Task == id {
			out = append(out, leg)
		}
	}
	return out
}

// WorkTime returns the total seconds of on-task work for the given task,
// measured in the task's own sub-flight time.
func (f *Flight) WorkTime(id TaskID) float64 {
	total := 0.0
	for _, leg := range f.TaskLegs(id) {
		total += leg.WorkTo - leg.WorkFrom
	}
	return total
}

// CountLegs returns how many legs of the given kind the flight contains.
func (f *Flight) CountLegs(kind LegKind) int {
	n := 0
	for _, leg := range f.Legs {
		if leg.Kind == kind {
			n++
		}
	}
	return n
}

// LegAt returns the leg being flown at the given cumulative flight time,
// or nil if the time falls outside every leg. A time at or past the end of
// the flight resolves to the final leg so replay consumers stay on a leg.
func (f *Flight) LegAt(t float64) *Leg {
	for i := range f.Legs {
		if t >= f.Legs[i].From && t < f.Legs[i].To {
			return &f.Legs[i]
		}
	}
	if n := len(f.Legs); n > 0 && t >= f.Duration {
		return &f.Legs[n-1]
	}
	return nil
}
