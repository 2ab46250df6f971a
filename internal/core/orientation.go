package core

import "math"

// Orientation is a vehicle yaw angle in radians, wrapped to [0, 2π).
// Angles follow the math convention: 0 points east (+lon), counterclockwise
// is positive. All planner components share this convention.
type Orientation struct {
	rad float64
}

// NewOrientation wraps rad into the canonical range.
func NewOrientation(rad float64) Orientation {
	r := math.Mod(rad, 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	return Orientation{rad: r}
}

// Radians returns the canonical angle in [0, 2π).
func (o Orientation) Radians() float64 { return o.rad }

// Degrees returns the canonical angle in [0, 360).
func (o Orientation) Degrees() float64 { return o.rad * 180 / math.Pi }

// DifferenceTo returns the minimum absolute angular separation to other,
// in [0, π].
func (o Orientation) DifferenceTo(other Orientation) float64 {
	d := math.Abs(o.rad - other.rad)
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}
