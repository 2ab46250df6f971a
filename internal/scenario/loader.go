package scenario

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/elektrokombinacija/uav-mission-research/internal/core"
)

// DefaultUAV returns the stock vehicle in scenario-file form.
func DefaultUAV() UAV {
	return UAV{
		MinTurnRadiusM:   core.DefaultMinTurnRadius,
		WaypointSpacingM: core.DefaultWaypointSpacing,
		AirspeedMps:      core.DefaultAirspeed,
	}
}

// ValidationError represents a scenario validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// Load reads and parses a scenario file. Missing UAV fields keep their
// defaults; everything else must be present and valid.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return Parse(data)
}

// Parse parses scenario YAML, applies UAV defaults, and validates.
func Parse(data []byte) (*Scenario, error) {
	s := Scenario{UAV: DefaultUAV()}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file: %w", err)
	}
	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that all scenario values are valid.
func Validate(s *Scenario) error {
	if s.Name == "" {
		return ValidationError{Field: "name", Message: "required field is empty"}
	}
	if s.UAV.WaypointSpacingM <= 0 {
		return ValidationError{Field: "uav.waypoint_spacing_m", Message: "must be positive"}
	}
	if s.UAV.AirspeedMps <= 0 {
		return ValidationError{Field: "uav.airspeed_mps", Message: "must be positive"}
	}
	if s.UAV.MinTurnRadiusM < 0 {
		return ValidationError{Field: "uav.min_turn_radius_m", Message: "must be non-negative"}
	}
	if s.Start.Lon < -180 || s.Start.Lon > 180 {
		return ValidationError{Field: "start.lon", Message: "must be between -180 and 180"}
	}
	if s.Start.Lat < -90 || s.Start.Lat > 90 {
		return ValidationError{Field: "start.lat", Message: "must be between -90 and 90"}
	}
	if len(s.Areas) == 0 {
		return ValidationError{Field: "areas", Message: "at least one area is required"}
	}

	tasks := 0
	for i, a := range s.Areas {
		kind, err := core.ParseTaskKind(a.Kind)
		if err != nil {
			return ValidationError{Field: fmt.Sprintf("areas[%d].kind", i), Message: err.Error()}
		}
		if len(a.Polygon) < 3 {
			return ValidationError{
				Field:   fmt.Sprintf("areas[%d].polygon", i),
				Message: fmt.Sprintf("has %d points, need at least 3", len(a.Polygon)),
			}
		}
		if !kind.IsObstacle() {
			tasks++
		}
	}
	if tasks == 0 {
		return ValidationError{Field: "areas", Message: "at least one schedulable task area is required"}
	}
	return nil
}

// Save writes the scenario as YAML.
func Save(s *Scenario, path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode scenario: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
