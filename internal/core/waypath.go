package core

// Waypath is an ordered sequence of positions describing a flyable path
// segment. Consecutive waypoints are nominally UAVParameters.WaypointSpacing
// meters apart; spacing at segment boundaries may deviate. A Waypath is
// immutable once produced.
type Waypath []GeoPosition

// TravelTime estimates the seconds needed to fly the path at the vehicle's
// airspeed. The estimate charges one full spacing interval per waypoint,
// matching the cost model used by the scheduler.
func (w Waypath) TravelTime(p UAVParameters) float64 {
	return float64(len(w)) * p.WaypointSpacing / p.Airspeed
}

// First returns the initial waypoint. Panics on an empty path.
func (w Waypath) First() GeoPosition { return w[0] }

// Last returns the final waypoint. Panics on an empty path.
func (w Waypath) Last() GeoPosition { return w[len(w)-1] }

// Concat returns a new Waypath with the segments appended in order.
// No deduplication is performed at seams.
func Concat(segments ...Waypath) Waypath {
	n := 0
	for _, s := range segments {
		n += len(s)
	}
	out := make(Waypath, 0, n)
	for _, s := range segments {
		out = append(out, s...)
	}
	return out
}
