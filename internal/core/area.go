package core

// TaskArea is a bounded polygon designated for one flight task or, when its
// kind marks it as an obstacle, for exclusion from flight. Areas are owned
// by the Problem; the planner references them and never copies.
type TaskArea struct {
	Polygon GeoPolygon
	Kind    TaskKind
	Task    *Task // nil for obstacle areas
}

// Schedulable reports whether the area carries a task the scheduler must
// plan for.
func (a *TaskArea) Schedulable() bool {
	return !a.Kind.IsObstacle() && a.Task != nil
}
