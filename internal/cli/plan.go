package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/uav-mission-research/internal/algo"
	"github.com/elektrokombinacija/uav-mission-research/internal/core"
	"github.com/elektrokombinacija/uav-mission-research/internal/logging"
	"github.com/elektrokombinacija/uav-mission-research/internal/mission"
	"github.com/elektrokombinacija/uav-mission-research/internal/scenario"
)

var (
	planScenario   string
	planPlanner    string
	planTransition string
	planTimeslice  float64
	planMemoSize   int
	planOut        string
	planFlight     string
	planLogLevel   string
	planLogDir     string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan a mission for one scenario",
	Long: `Loads a scenario file, plans the mission with the selected planner, and
prints a summary of the resulting flight.

Planners:
  hierarchical  greedy search over interleaved work schedules (default)
  sequential    visit each area once, nearest entry first

Transitions:
  dubins  turn-radius-feasible paths between areas (default)
  direct  straight connecting legs, ignoring the turn radius

Examples:
  uavmission plan --scenario survey.yaml
  uavmission plan -s survey.yaml -p sequential -t direct
  uavmission plan -s survey.yaml --out result.json --flight flight.json`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planScenario, "scenario", "s", "", "scenario YAML file")
	planCmd.Flags().StringVarP(&planPlanner, "planner", "p", "hierarchical", "mission planner: hierarchical or sequential")
	planCmd.Flags().StringVarP(&planTransition, "transition", "t", "dubins", "transition planner: dubins or direct")
	planCmd.Flags().Float64Var(&planTimeslice, "timeslice", algo.DefaultTimeslice, "seconds of area work per schedule step")
	planCmd.Flags().IntVar(&planMemoSize, "memo-size", algo.DefaultMemoSize, "transition cache entries")
	planCmd.Flags().StringVarP(&planOut, "out", "o", "", "write run metrics to a JSON file")
	planCmd.Flags().StringVar(&planFlight, "flight", "", "write the planned flight to a JSON file")
	planCmd.Flags().StringVar(&planLogLevel, "log-level", "info", "log level: debug, info, warn, or error")
	planCmd.Flags().StringVar(&planLogDir, "log-dir", "", "log directory (logs to stderr when empty)")
	planCmd.MarkFlagRequired("scenario")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	s, err := scenario.Load(planScenario)
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}
	prob, err := s.Problem()
	if err != nil {
		return fmt.Errorf("invalid scenario %q: %w", s.Name, err)
	}

	log := logging.New(planLogLevel, planLogDir)

	transitions, err := buildTransition(planTransition, prob.UAV, planMemoSize)
	if err != nil {
		return err
	}
	planner, err := buildPlanner(planPlanner, transitions, algo.NewTransectPlanner(prob.UAV), planTimeslice, log)
	if err != nil {
		return err
	}

	fmt.Printf("Scenario: %s (%d areas, %d obstacles)\n",
		s.Name, len(prob.TaskAreas()), len(prob.Obstacles()))

	result, err := mission.Run(mission.Config{
		Scenario: s.Name,
		Problem:  prob,
		Planner:  planner,
		Log:      log,
	})
	if err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}

	printResult(result)

	if planOut != "" {
		if err := mission.ExportJSON(result, planOut); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		fmt.Printf("Metrics written to %s\n", planOut)
	}
	if planFlight != "" {
		if err := mission.ExportFlight(result.Flight, planFlight); err != nil {
			return fmt.Errorf("failed to write flight: %w", err)
		}
		fmt.Printf("Flight written to %s\n", planFlight)
	}
	return nil
}

// buildTransition constructs the named transition planner wrapped in a
// memoizing cache.
func buildTransition(name string, p core.UAVParameters, memoSize int) (algo.TransitionPlanner, error) {
	var inner algo.TransitionPlanner
	switch name {
	case "dubins":
		inner = algo.NewDubinsPlanner(p)
	case "direct":
		inner = algo.NewDirectPlanner(p)
	default:
		return nil, fmt.Errorf("unknown transition planner %q (want dubins or direct)", name)
	}
	return algo.NewMemoPlanner(inner, memoSize), nil
}

// buildPlanner constructs the named mission planner.
func buildPlanner(name string, transitions algo.TransitionPlanner, subFlights algo.SubFlightPlanner, timeslice float64, log *logging.Logger) (algo.MissionPlanner, error) {
	switch name {
	case "hierarchical":
		hp := algo.NewHierarchicalPlanner(transitions, subFlights)
		hp.Log = log
		if timeslice > 0 {
			hp.Timeslice = timeslice
		}
		return hp, nil
	case "sequential":
		sp := algo.NewSequentialPlanner(transitions, subFlights)
		sp.Log = log
		return sp, nil
	default:
		return nil, fmt.Errorf("unknown planner %q (want hierarchical or sequential)", name)
	}
}

func printResult(r *mission.Result) {
	m := r.Metrics
	fmt.Printf("Planner: %s, Time=%.1fms\n", r.Planner, m.PlanningMs)
	fmt.Printf("Flight: %.1fs over %d waypoints, %d legs\n",
		m.FlightSeconds, m.Waypoints, m.Legs)
	fmt.Printf("  work %.1fs, transit %.1fs, switch %.1fs (%d switches)\n",
		m.WorkSeconds, m.TransitSeconds, m.SwitchSeconds, m.Switches)
	if m.Expansions > 0 {
		fmt.Printf("  search: %d expanded, %d generated\n", m.Expansions, m.Generated)
	}
}
