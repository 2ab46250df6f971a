// Package core defines domain models for UAV mission planning.
package core

import "fmt"

// TaskKind classifies what the vehicle does inside a task area.
type TaskKind int

const (
	Coverage   TaskKind = iota // Sweep the whole area (imaging, spraying)
	Sampling                   // Visit sample points inside the area
	FlyThrough                 // Cross the area once
	NoFlyZone                  // Obstacle: contributes its polygon only
)

func (k TaskKind) String() string {
	return [...]string{"Coverage", "Sampling", "FlyThrough", "NoFlyZone"}[k]
}

// IsObstacle reports whether areas of this kind are excluded from
// scheduling and treated purely as no-fly polygons.
func (k TaskKind) IsObstacle() bool {
	return k == NoFlyZone
}

// ParseTaskKind maps a scenario-file name to a TaskKind.
func ParseTaskKind(s string) (TaskKind, error) {
	switch s {
	case "coverage":
		return Coverage, nil
	case "sampling":
		return Sampling, nil
	case "fly_through":
		return FlyThrough, nil
	case "no_fly_zone":
		return NoFlyZone, nil
	default:
		return 0, fmt.Errorf("unknown task kind %q", s)
	}
}

// ScenarioName returns the scenario-file spelling of k.
func (k TaskKind) ScenarioName() string {
	return [...]string{"coverage", "sampling", "fly_through", "no_fly_zone"}[k]
}
