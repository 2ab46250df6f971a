package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/uav-mission-research/internal/scenario"
)

var (
	initOut   string
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter scenario file",
	Long: `Writes the built-in demo scenario to a YAML file as a starting point for
editing. The file carries the vehicle parameters, the start position,
and the task areas.

Examples:
  uavmission init
  uavmission init --out survey.yaml --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVarP(&initOut, "out", "o", "scenario.yaml", "output file")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if !initForce {
		if _, err := os.Stat(initOut); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", initOut)
		}
	}
	if err := scenario.Save(scenario.Demo(), initOut); err != nil {
		return fmt.Errorf("failed to write scenario: %w", err)
	}
	fmt.Printf("Wrote demo scenario to %s\n", initOut)
	return nil
}
