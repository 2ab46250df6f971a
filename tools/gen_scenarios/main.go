// Command gen_scenarios generates randomized mission scenarios for
// benchmarks. Generation is deterministic for a given seed.
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/elektrokombinacija/uav-mission-research/internal/core"
	"github.com/elektrokombinacija/uav-mission-research/internal/geo"
	"github.com/elektrokombinacija/uav-mission-research/internal/scenario"
)

// ScenarioParams defines parameters for scenario generation.
type ScenarioParams struct {
	Seed        int64
	Areas       int     // schedulable task areas
	Obstacles   int     // no-fly zones
	ExtentM     float64 // side of the square area of operations
	MinSideM    float64 // smallest area side
	MaxSideM    float64 // largest area side
	SamplingPct float64 // fraction of areas that are sampling runs
	FlyThruPct  float64 // fraction of areas that are fly-through gates
	OriginLon   float64
	OriginLat   float64
	UAV         scenario.UAV
}

// placement tracks an already placed area so later areas keep clear of it.
type placement struct {
	center core.GeoPosition
	radius float64
}

// generateScenario builds one random scenario. Task areas are rotated
// rectangles scattered over the extent square, kept from overlapping by
// rejection sampling; the vehicle starts southwest of the whole extent.
func generateScenario(params ScenarioParams) *scenario.Scenario {
	rng := rand.New(rand.NewSource(params.Seed))
	origin := core.GeoPosition{Lon: params.OriginLon, Lat: params.OriginLat}

	s := &scenario.Scenario{
		Name: fmt.Sprintf("mission_%da_%.0fm_%d", params.Areas, params.ExtentM, params.Seed),
		UAV:  params.UAV,
	}

	start := geo.Offset(origin, -params.ExtentM*0.55, -params.ExtentM*0.55)
	s.Start = scenario.Start{Lon: start.Lon, Lat: start.Lat, HeadingDeg: 45}

	var placed []placement
	place := func(radius float64) (core.GeoPosition, bool) {
		half := params.ExtentM / 2
		for attempt := 0; attempt < 100; attempt++ {
			c := geo.Offset(origin,
				-half+rng.Float64()*params.ExtentM,
				-half+rng.Float64()*params.ExtentM)
			clear := true
			for _, p := range placed {
				if geo.DistanceMeters(c, p.center) < (radius+p.radius)*1.25 {
					clear = false
					break
				}
			}
			if clear {
				placed = append(placed, placement{center: c, radius: radius})
				return c, true
			}
		}
		return core.GeoPosition{}, false
	}

	for i := 0; i < params.Areas; i++ {
		w := params.MinSideM + rng.Float64()*(params.MaxSideM-params.MinSideM)
		h := w * (0.6 + rng.Float64()*0.4)
		angle := rng.Float64() * math.Pi
		center, ok := place(math.Hypot(w, h) / 2)
		if !ok {
			// Extent too crowded; skip rather than overlap.
			continue
		}

		kind := "coverage"
		switch roll := rng.Float64(); {
		case roll < params.SamplingPct:
			kind = "sampling"
		case roll < params.SamplingPct+params.FlyThruPct:
			kind = "fly_through"
		}

		s.Areas = append(s.Areas, scenario.Area{
			Name:    fmt.Sprintf("area-%d", i),
			Kind:    kind,
			Polygon: rotatedRect(center, w, h, angle),
		})
	}

	for i := 0; i < params.Obstacles; i++ {
		side := params.MinSideM * (0.4 + rng.Float64()*0.4)
		angle := rng.Float64() * math.Pi
		center, ok := place(side * math.Sqrt2 / 2)
		if !ok {
			continue
		}
		s.Areas = append(s.Areas, scenario.Area{
			Name:    fmt.Sprintf("nofly-%d", i),
			Kind:    "no_fly_zone",
			Polygon: rotatedRect(center, side, side, angle),
		})
	}

	return s
}

// rotatedRect builds a w-by-h rectangle around center, rotated by angle
// radians, corners in counterclockwise order.
func rotatedRect(center core.GeoPosition, w, h, angle float64) []scenario.Point {
	sin, cos := math.Sin(angle), math.Cos(angle)
	corners := [][2]float64{
		{-w / 2, -h / 2}, {w / 2, -h / 2}, {w / 2, h / 2}, {-w / 2, h / 2},
	}
	out := make([]scenario.Point, len(corners))
	for i, c := range corners {
		p := geo.Offset(center, c[0]*cos-c[1]*sin, c[0]*sin+c[1]*cos)
		out[i] = scenario.Point{Lon: p.Lon, Lat: p.Lat}
	}
	return out
}

func main() {
	seed := flag.Int64("seed", 42, "random seed for deterministic generation")
	areas := flag.Int("areas", 6, "number of task areas")
	obstacles := flag.Int("obstacles", 2, "number of no-fly zones")
	extent := flag.Float64("extent", 5000, "side of the square area of operations (meters)")
	minSide := flag.Float64("min-side", 300, "smallest area side (meters)")
	maxSide := flag.Float64("max-side", 800, "largest area side (meters)")
	sampling := flag.Float64("sampling", 0.25, "fraction of areas that are sampling runs")
	flyThru := flag.Float64("fly-through", 0.15, "fraction of areas that are fly-through gates")
	originLon := flag.Float64("lon", 14.46, "origin longitude (degrees)")
	originLat := flag.Float64("lat", 45.33, "origin latitude (degrees)")
	turnRadius := flag.Float64("turn-radius", 0, "minimum turn radius (meters, 0 = default)")
	spacing := flag.Float64("spacing", 0, "waypoint spacing (meters, 0 = default)")
	airspeed := flag.Float64("airspeed", 0, "airspeed (m/s, 0 = default)")
	outputDir := flag.String("output", "testdata", "output directory")
	scaling := flag.Bool("scaling", false, "generate a scaling suite (2 to 16 areas)")

	flag.Parse()

	uav := scenario.DefaultUAV()
	if *turnRadius > 0 {
		uav.MinTurnRadiusM = *turnRadius
	}
	if *spacing > 0 {
		uav.WaypointSpacingM = *spacing
	}
	if *airspeed > 0 {
		uav.AirspeedMps = *airspeed
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	base := ScenarioParams{
		Seed:        *seed,
		Areas:       *areas,
		Obstacles:   *obstacles,
		ExtentM:     *extent,
		MinSideM:    *minSide,
		MaxSideM:    *maxSide,
		SamplingPct: *sampling,
		FlyThruPct:  *flyThru,
		OriginLon:   *originLon,
		OriginLat:   *originLat,
		UAV:         uav,
	}

	var all []ScenarioParams
	if *scaling {
		for _, n := range []int{2, 4, 8, 12, 16} {
			p := base
			p.Areas = n
			p.Obstacles = n / 4
			// Extent grows with the square root of the area count so the
			// area density stays roughly constant.
			p.ExtentM = math.Sqrt(float64(n)) * 2500
			all = append(all, p)
		}
	} else {
		all = append(all, base)
	}

	for _, params := range all {
		s := generateScenario(params)
		filename := filepath.Join(*outputDir, s.Name+".yaml")
		if err := scenario.Save(s, filename); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing scenario %s: %v\n", filename, err)
			continue
		}

		tasks := 0
		for _, a := range s.Areas {
			if a.Kind != "no_fly_zone" {
				tasks++
			}
		}
		fmt.Printf("Generated: %s (%d task areas, %d obstacles, %.0fm extent)\n",
			filename, tasks, len(s.Areas)-tasks, params.ExtentM)
	}
}
