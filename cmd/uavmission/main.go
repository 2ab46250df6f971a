// Command uavmission plans UAV survey missions from scenario files.
package main

import (
	"fmt"
	"os"

	"github.com/elektrokombinacija/uav-mission-research/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
