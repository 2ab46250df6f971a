// Command run_benchmarks runs every planner over a directory of scenario
// files and collects metrics.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/elektrokombinacija/uav-mission-research/internal/algo"
	"github.com/elektrokombinacija/uav-mission-research/internal/core"
	"github.com/elektrokombinacija/uav-mission-research/internal/logging"
	"github.com/elektrokombinacija/uav-mission-research/internal/mission"
	"github.com/elektrokombinacija/uav-mission-research/internal/scenario"
)

// BenchmarkResult stores results from a single planning run.
type BenchmarkResult struct {
	Timestamp  string
	CommitHash string
	GoVersion  string
	OS         string
	Arch       string
	Scenario   string
	Tasks      int
	Planner    string
	Transition string
	PlanningMs float64
	Success    bool
	FlightS    float64
	WorkS      float64
	TransitS   float64
	SwitchS    float64
	Switches   int
	Waypoints  int
	Expansions int
	Generated  int
}

// plannerMetrics holds per-planner aggregated metrics.
type plannerMetrics struct {
	Name          string
	TotalRuns     int
	Successes     int
	TotalMs       float64
	TotalFlightS  float64
	TotalSwitches int
}

// combo is one planner and transition pairing to benchmark.
type combo struct {
	planner    string
	transition string
}

var combos = []combo{
	{"hierarchical", "dubins"},
	{"hierarchical", "direct"},
	{"sequential", "dubins"},
	{"sequential", "direct"},
}

func gitCommit() string {
	cmd := exec.Command("git", "rev-parse", "--short", "HEAD")
	output, err := cmd.Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(output))
}

func newTransition(name string, p core.UAVParameters) (algo.TransitionPlanner, error) {
	switch name {
	case "dubins":
		return algo.NewMemoPlanner(algo.NewDubinsPlanner(p), 0), nil
	case "direct":
		return algo.NewMemoPlanner(algo.NewDirectPlanner(p), 0), nil
	}
	return nil, fmt.Errorf("unknown transition planner %q", name)
}

func newPlanner(name string, transitions algo.TransitionPlanner, subFlights algo.SubFlightPlanner, timeslice float64, log *logging.Logger) (algo.MissionPlanner, error) {
	switch name {
	case "hierarchical":
		hp := algo.NewHierarchicalPlanner(transitions, subFlights)
		hp.Log = log
		if timeslice > 0 {
			hp.Timeslice = timeslice
		}
		return hp, nil
	case "sequential":
		return algo.NewSequentialPlanner(transitions, subFlights), nil
	}
	return nil, fmt.Errorf("unknown planner %q", name)
}

// runOne plans one scenario with one planner combination and collects the
// run's metrics. Failed runs return a result with Success false.
func runOne(s *scenario.Scenario, prob *core.Problem, c combo, commit string, timeslice float64, log *logging.Logger) *BenchmarkResult {
	result := &BenchmarkResult{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		CommitHash: commit,
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		Scenario:   s.Name,
		Tasks:      len(prob.TaskAreas()),
		Planner:    c.planner,
		Transition: c.transition,
	}

	transitions, err := newTransition(c.transition, prob.UAV)
	if err != nil {
		return result
	}
	planner, err := newPlanner(c.planner, transitions, algo.NewTransectPlanner(prob.UAV), timeslice, log)
	if err != nil {
		return result
	}

	run, err := mission.Run(mission.Config{
		Scenario: s.Name,
		Problem:  prob,
		Planner:  planner,
		Log:      log,
	})
	result.PlanningMs = run.Metrics.PlanningMs
	if err != nil {
		return result
	}

	result.Success = true
	result.FlightS = run.Metrics.FlightSeconds
	result.WorkS = run.Metrics.WorkSeconds
	result.TransitS = run.Metrics.TransitSeconds
	result.SwitchS = run.Metrics.SwitchSeconds
	result.Switches = run.Metrics.Switches
	result.Waypoints = run.Metrics.Waypoints
	result.Expansions = run.Metrics.Expansions
	result.Generated = run.Metrics.Generated
	return result
}

func writeCSV(results []*BenchmarkResult, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"timestamp", "commit_hash", "go_version", "os", "arch",
		"scenario", "tasks", "planner", "transition",
		"planning_ms", "success", "flight_s", "work_s", "transit_s", "switch_s",
		"switches", "waypoints", "expansions", "generated",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{
			r.Timestamp, r.CommitHash, r.GoVersion, r.OS, r.Arch,
			r.Scenario, fmt.Sprintf("%d", r.Tasks), r.Planner, r.Transition,
			fmt.Sprintf("%.3f", r.PlanningMs), fmt.Sprintf("%t", r.Success),
			fmt.Sprintf("%.3f", r.FlightS), fmt.Sprintf("%.3f", r.WorkS),
			fmt.Sprintf("%.3f", r.TransitS), fmt.Sprintf("%.3f", r.SwitchS),
			fmt.Sprintf("%d", r.Switches), fmt.Sprintf("%d", r.Waypoints),
			fmt.Sprintf("%d", r.Expansions), fmt.Sprintf("%d", r.Generated),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func printSummary(results []*BenchmarkResult) {
	metrics := make(map[string]*plannerMetrics)
	for _, r := range results {
		name := r.Planner + "/" + r.Transition
		m, ok := metrics[name]
		if !ok {
			m = &plannerMetrics{Name: name}
			metrics[name] = m
		}
		m.TotalRuns++
		if r.Success {
			m.Successes++
			m.TotalMs += r.PlanningMs
			m.TotalFlightS += r.FlightS
			m.TotalSwitches += r.Switches
		}
	}

	fmt.Println("\n=== BENCHMARK SUMMARY ===")
	fmt.Printf("%-24s %6s %8s %13s %14s %11s\n",
		"Planner", "Runs", "Success", "Avg Time(ms)", "Avg Flight(s)", "Avg Switch")
	fmt.Println(strings.Repeat("-", 80))

	var names []string
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		m := metrics[name]
		avgMs := 0.0
		avgFlight := 0.0
		avgSwitches := 0.0
		if m.Successes > 0 {
			avgMs = m.TotalMs / float64(m.Successes)
			avgFlight = m.TotalFlightS / float64(m.Successes)
			avgSwitches = float64(m.TotalSwitches) / float64(m.Successes)
		}
		fmt.Printf("%-24s %6d %8d %13.2f %14.1f %11.2f\n",
			m.Name, m.TotalRuns, m.Successes, avgMs, avgFlight, avgSwitches)
	}
}

func main() {
	inputDir := flag.String("input", "testdata", "Directory containing scenario YAML files")
	outputFile := flag.String("output", "evidence/benchmark_results.csv", "Output CSV file")
	plannerFilter := flag.String("planner", "", "Run only specific planners (comma-separated)")
	transitionFilter := flag.String("transition", "", "Run only specific transitions (comma-separated)")
	timeslice := flag.Float64("timeslice", 0, "Scheduler timeslice in seconds (0 = default)")
	verbose := flag.Bool("verbose", false, "Verbose output")

	flag.Parse()

	outputDir := filepath.Dir(*outputFile)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	files, err := filepath.Glob(filepath.Join(*inputDir, "*.yaml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error finding scenario files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "No scenario files found in %s\n", *inputDir)
		fmt.Fprintf(os.Stderr, "Run gen_scenarios first: go run ./tools/gen_scenarios -scaling -output testdata\n")
		os.Exit(1)
	}

	active := combos
	if *plannerFilter != "" || *transitionFilter != "" {
		active = filterCombos(combos, *plannerFilter, *transitionFilter)
	}
	if len(active) == 0 {
		fmt.Fprintf(os.Stderr, "No planner combination matches the filters\n")
		os.Exit(1)
	}

	commit := gitCommit()
	log := logging.New("error", "")

	var results []*BenchmarkResult
	totalRuns := len(files) * len(active)
	currentRun := 0

	fmt.Printf("Running benchmarks: %d scenarios x %d planners = %d runs\n",
		len(files), len(active), totalRuns)
	fmt.Println()

	for _, file := range files {
		s, err := scenario.Load(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", file, err)
			continue
		}
		prob, err := s.Problem()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error converting %s: %v\n", file, err)
			continue
		}

		for _, c := range active {
			currentRun++
			if *verbose {
				fmt.Printf("[%d/%d] %s / %s/%s ... ", currentRun, totalRuns, s.Name, c.planner, c.transition)
			} else {
				fmt.Printf("\r[%d/%d] Running...", currentRun, totalRuns)
			}

			result := runOne(s, prob, c, commit, *timeslice, log)
			results = append(results, result)

			if *verbose {
				if result.Success {
					fmt.Printf("OK (%.1fms, flight=%.1fs, switches=%d)\n",
						result.PlanningMs, result.FlightS, result.Switches)
				} else {
					fmt.Printf("FAILED\n")
				}
			}
		}
	}

	fmt.Println()

	if err := writeCSV(results, *outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing results: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Results written to: %s\n", *outputFile)

	printSummary(results)
}

// filterCombos keeps combinations whose planner and transition both appear
// in the respective comma-separated filter. An empty filter matches all.
func filterCombos(all []combo, planners, transitions string) []combo {
	match := func(filter, name string) bool {
		if filter == "" {
			return true
		}
		for _, f := range strings.Split(filter, ",") {
			if strings.TrimSpace(f) == name {
				return true
			}
		}
		return false
	}

	var out []combo
	for _, c := range all {
		if match(planners, c.planner) && match(transitions, c.transition) {
			out = append(out, c)
		}
	}
	return out
}
