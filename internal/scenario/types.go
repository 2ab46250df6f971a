// Package scenario defines the YAML mission scenario format and its
// conversion into a planning problem.
package scenario

// UAV configures the vehicle a scenario is planned for. Zero-valued fields
// fall back to the defaults in DefaultUAV.
type UAV struct {
	MinTurnRadiusM   float64 `yaml:"min_turn_radius_m"`
	WaypointSpacingM float64 `yaml:"waypoint_spacing_m"`
	AirspeedMps      float64 `yaml:"airspeed_mps"`
}

// Start is the vehicle's initial configuration. HeadingDeg is measured in
// degrees counterclockwise from due east.
type Start struct {
	Lon        float64 `yaml:"lon"`
	Lat        float64 `yaml:"lat"`
	HeadingDeg float64 `yaml:"heading_deg"`
}

// Point is one polygon vertex in degrees.
type Point struct {
	Lon float64 `yaml:"lon"`
	Lat float64 `yaml:"lat"`
}

// Area is one task area or no-fly zone. Kind is a scenario-file task kind
// name: coverage, sampling, fly_through, or no_fly_zone.
type Area struct {
	Name    string  `yaml:"name,omitempty"`
	Kind    string  `yaml:"kind"`
	Polygon []Point `yaml:"polygon"`
}

// Scenario represents one mission scenario file.
type Scenario struct {
	Name  string `yaml:"name"`
	UAV   UAV    `yaml:"uav"`
	Start Start  `yaml:"start"`
	Areas []Area `yaml:"areas"`
}
