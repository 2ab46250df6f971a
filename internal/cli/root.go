package cli

import (
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "uavmission",
	Short: "Hierarchical mission planning for a fixed-wing UAV",
	Long: `uavmission plans survey missions for a single fixed-wing UAV. A mission
scenario names task areas (coverage, sampling, fly-through) and no-fly
zones; the planner schedules work across the areas, connects them with
turn-radius-feasible Dubins transitions, and stitches the result into
one geodetic waypoint path.`,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("uavmission version {{.Version}}\n")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
