package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/uav-mission-research/internal/algo"
	"github.com/elektrokombinacija/uav-mission-research/internal/logging"
	"github.com/elektrokombinacija/uav-mission-research/internal/mission"
	"github.com/elektrokombinacija/uav-mission-research/internal/scenario"
)

var (
	demoScenario string
	demoOut      string
	demoLogLevel string
	demoLogDir   string
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Compare every planner over one scenario",
	Long: `Plans the same mission with every planner and transition combination and
prints one summary line per run. Uses a built-in demo scenario unless
--scenario names a file.

Examples:
  uavmission demo
  uavmission demo --scenario survey.yaml --out matrix.json`,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().StringVarP(&demoScenario, "scenario", "s", "", "scenario YAML file (built-in demo when empty)")
	demoCmd.Flags().StringVarP(&demoOut, "out", "o", "", "write all run metrics to a JSON file")
	demoCmd.Flags().StringVar(&demoLogLevel, "log-level", "warn", "log level: debug, info, warn, or error")
	demoCmd.Flags().StringVar(&demoLogDir, "log-dir", "", "log directory (logs to stderr when empty)")
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	s := scenario.Demo()
	if demoScenario != "" {
		loaded, err := scenario.Load(demoScenario)
		if err != nil {
			return fmt.Errorf("failed to load scenario: %w", err)
		}
		s = loaded
	}
	prob, err := s.Problem()
	if err != nil {
		return fmt.Errorf("invalid scenario %q: %w", s.Name, err)
	}

	log := logging.New(demoLogLevel, demoLogDir)

	fmt.Printf("Scenario: %s (%d areas, %d obstacles)\n",
		s.Name, len(prob.TaskAreas()), len(prob.Obstacles()))

	var results []*mission.Result
	for _, transition := range []string{"dubins", "direct"} {
		for _, plannerName := range []string{"hierarchical", "sequential"} {
			transitions, err := buildTransition(transition, prob.UAV, 0)
			if err != nil {
				return err
			}
			planner, err := buildPlanner(plannerName, transitions, algo.NewTransectPlanner(prob.UAV), 0, log)
			if err != nil {
				return err
			}

			label := fmt.Sprintf("%s/%s", planner.Name(), transitions.Name())
			fmt.Printf("\n  %s: ", label)

			result, runErr := mission.Run(mission.Config{
				Scenario: s.Name,
				Problem:  prob,
				Planner:  planner,
				Log:      log,
			})
			result.Planner = label
			results = append(results, result)

			if runErr != nil {
				fmt.Printf("failed: %v", runErr)
				continue
			}
			m := result.Metrics
			fmt.Printf("Flight=%.1fs, Waypoints=%d, Switches=%d, Time=%.1fms",
				m.FlightSeconds, m.Waypoints, m.Switches, m.PlanningMs)
		}
	}
	fmt.Println()

	if demoOut != "" {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(demoOut, data, 0644); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
		fmt.Printf("Results written to %s\n", demoOut)
	}
	return nil
}
