// Command uavmissionvis provides a GUI replay of planned UAV missions.
package main

import (
	"flag"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/elektrokombinacija/uav-mission-research/internal/scenario"
	"github.com/elektrokombinacija/uav-mission-research/internal/vis"
)

func main() {
	scenarioPath := flag.String("scenario", "", "scenario YAML file (built-in demo when empty)")
	flag.Parse()

	s := scenario.Demo()
	if *scenarioPath != "" {
		loaded, err := scenario.Load(*scenarioPath)
		if err != nil {
			log.Fatal(err)
		}
		s = loaded
	}

	prob, err := s.Problem()
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title("UAV Mission Visualizer - "+s.Name),
			app.Size(unit.Dp(1400), unit.Dp(900)),
		)

		application, err := vis.NewApp(prob)
		if err != nil {
			log.Fatal(err)
		}
		if err := application.Run(window); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}
