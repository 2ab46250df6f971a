// Package mission runs one planning pass over a problem and collects the
// metrics benchmarks and the CLI report on.
package mission

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/elektrokombinacija/uav-mission-research/internal/algo"
	"github.com/elektrokombinacija/uav-mission-research/internal/core"
	"github.com/elektrokombinacija/uav-mission-research/internal/logging"
)

// Config configures one mission run.
type Config struct {
	// Scenario name, carried through to reports.
	Scenario string

	// Problem to plan.
	Problem *core.Problem

	// Planner to run.
	Planner algo.MissionPlanner

	// Optional logger.
	Log *logging.Logger
}

// Metrics collects measurements from one planning run.
type Metrics struct {
	PlanningMs     float64 `json:"planning_ms"`
	Tasks          int     `json:"tasks"`
	Waypoints      int     `json:"waypoints"`
	Legs           int     `json:"legs"`
	Switches       int     `json:"switches"`
	Expansions     int     `json:"expansions,omitempty"`
	Generated      int     `json:"generated,omitempty"`
	FlightSeconds  float64 `json:"flight_seconds"`
	WorkSeconds    float64 `json:"work_seconds"`
	TransitSeconds float64 `json:"transit_seconds"`
	SwitchSeconds  float64 `json:"switch_seconds"`
}

// Result is the final output of a mission run. The flight itself is kept
// for callers and exported separately from the metrics.
type Result struct {
	Scenario string  `json:"scenario"`
	Planner  string  `json:"planner"`
	Success  bool    `json:"success"`
	Error    string  `json:"error,omitempty"`
	Metrics  Metrics `json:"metrics"`

	Flight *core.Flight `json:"-"`
}

// searchStats is implemented by planners that expose search statistics.
type searchStats interface {
	LastStats() algo.PlanStats
}

// Run plans the configured mission, measures the pass, and returns the
// result. The result is populated even when planning fails.
func Run(cfg Config) (*Result, error) {
	if cfg.Problem == nil {
		return nil, errors.New("mission: no problem configured")
	}
	if cfg.Planner == nil {
		return nil, errors.New("mission: no planner configured")
	}

	result := &Result{
		Scenario: cfg.Scenario,
		Planner:  cfg.Planner.Name(),
	}
	result.Metrics.Tasks = len(cfg.Problem.TaskAreas())

	start := time.Now()
	flight, err := cfg.Planner.Plan(cfg.Problem)
	result.Metrics.PlanningMs = float64(time.Since(start).Microseconds()) / 1000.0

	if err != nil {
		result.Error = err.Error()
		cfg.Log.Error("mission planning failed",
			"scenario", cfg.Scenario, "planner", result.Planner, "error", err)
		return result, err
	}

	result.Success = true
	result.Flight = flight
	result.Metrics.Waypoints = len(flight.Path)
	result.Metrics.Legs = len(flight.Legs)
	result.Metrics.Switches = flight.CountLegs(core.LegSwitch)
	result.Metrics.FlightSeconds = flight.Duration
	for _, leg := range flight.Legs {
		d := leg.To - leg.From
		switch leg.Kind {
		case core.LegWork:
			result.Metrics.WorkSeconds += d
		case core.LegTransit:
			result.Metrics.TransitSeconds += d
		case core.LegSwitch:
			result.Metrics.SwitchSeconds += d
		}
	}
	if s, ok := cfg.Planner.(searchStats); ok {
		stats := s.LastStats()
		result.Metrics.Expansions = stats.Expansions
		result.Metrics.Generated = stats.Generated
	}

	cfg.Log.Info("mission planned",
		"scenario", cfg.Scenario,
		"planner", result.Planner,
		"planning_ms", result.Metrics.PlanningMs,
		"waypoints", result.Metrics.Waypoints,
		"switches", result.Metrics.Switches,
		"flight_s", result.Metrics.FlightSeconds)
	return result, nil
}

// ExportJSON writes the result to a JSON file.
func ExportJSON(result *Result, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ExportFlight writes the planned flight, waypoints and legs, to a JSON
// file for downstream consumers.
func ExportFlight(flight *core.Flight, path string) error {
	if flight == nil {
		return fmt.Errorf("no flight to export")
	}
	data, err := json.MarshalIndent(flight, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
