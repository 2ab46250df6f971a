package core

import "fmt"

// Problem represents one mission planning problem: the task areas to serve,
// the vehicle's starting configuration, and the vehicle itself. It owns the
// areas and tasks; planning passes reference them and keep no copies.
type Problem struct {
	Areas            []*TaskArea
	Start            GeoPosition
	StartOrientation Orientation
	UAV              UAVParameters
}

// NewProblem creates an empty problem with the default vehicle.
func NewProblem() *Problem {
	return &Problem{UAV: DefaultUAVParameters()}
}

// Validate checks problem consistency.
func (p *Problem) Validate() error {
	if !p.UAV.Valid() {
		return fmt.Errorf("invalid UAV parameters: %+v", p.UAV)
	}
	ids := make(map[TaskID]bool)
	for i, area := range p.Areas {
		if len(area.Polygon) < 3 {
			return fmt.Errorf("area %d: polygon has %d vertices, need at least 3", i, len(area.Polygon))
		}
		if area.Kind.IsObstacle() {
			if area.Task != nil {
				return fmt.Errorf("area %d: obstacle area must not carry a task", i)
			}
			continue
		}
		if area.Task == nil {
			return fmt.Errorf("area %d: non-obstacle area missing its task", i)
		}
		if ids[area.Task.ID] {
			return fmt.Errorf("area %d: duplicate task id %d", i, area.Task.ID)
		}
		ids[area.Task.ID] = true
	}
	return nil
}

// TaskAreas returns the schedulable areas in declaration order. The order
// fixes the task indexing used by the scheduler's state vectors.
func (p *Problem) TaskAreas() []*TaskArea {
	var out []*TaskArea
	for _, a := range p.Areas {
		if a.Schedulable() {
			out = append(out, a)
		}
	}
	return out
}

// Obstacles returns the polygons of all obstacle areas.
func (p *Problem) Obstacles() []GeoPolygon {
	var out []GeoPolygon
	for _, a := range p.Areas {
		if a.Kind.IsObstacle() {
			out = append(out, a.Polygon)
		}
	}
	return out
}

// AreaByTask returns the area carrying the given task, or nil.
func (p *Problem) AreaByTask(id TaskID) *TaskArea {
	for _, a := range p.Areas {
		if a.Task != nil && a.Task.ID == id {
			return a
		}
	}
	return nil
}
