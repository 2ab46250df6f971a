package core

// Default vehicle parameters for a small fixed-wing survey aircraft.
const (
	DefaultWaypointSpacing = 30.0 // meters between consecutive waypoints
	DefaultAirspeed        = 14.0 // meters per second, held constant
	DefaultMinTurnRadius   = 30.0 // meters
)

// UAVParameters describes the vehicle the mission is planned for.
type UAVParameters struct {
	MinTurnRadius   float64 // minimum turning radius in meters
	WaypointSpacing float64 // arc length between waypoint samples in meters
	Airspeed        float64 // constant airspeed in meters per second
}

// DefaultUAVParameters returns the stock vehicle.
func DefaultUAVParameters() UAVParameters {
	return UAVParameters{
		MinTurnRadius:   DefaultMinTurnRadius,
		WaypointSpacing: DefaultWaypointSpacing,
		Airspeed:        DefaultAirspeed,
	}
}

// Valid reports whether all parameters are physically meaningful.
// The turning radius may be zero (a point-turn capable vehicle).
func (p UAVParameters) Valid() bool {
	return p.WaypointSpacing > 0 && p.Airspeed > 0 && p.MinTurnRadius >= 0
}
