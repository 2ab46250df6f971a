package algo

import (
	"fmt"
	"math"

	"github.com/elektrokombinacija/uav-mission-research/internal/core"
	"github.com/elektrokombinacija/uav-mission-research/internal/geo"
)

// A Dubins path is the shortest curve between two oriented points for a
// vehicle with a bounded turning radius, composed of at most three segments
// drawn from {left arc, straight, right arc}. The six candidate words are
// solved in closed form and the cheapest feasible one wins.

type dubinsWord int

const (
	wordLSL dubinsWord = iota
	wordLSR
	wordRSL
	wordRSR
	wordRLR
	wordLRL
)

func (w dubinsWord) String() string {
	return [...]string{"LSL", "LSR", "RSL", "RSR", "RLR", "LRL"}[w]
}

// segment letters per word, indexed by dubinsWord
var wordSegments = [...][3]byte{
	{'L', 'S', 'L'},
	{'L', 'S', 'R'},
	{'R', 'S', 'L'},
	{'R', 'S', 'R'},
	{'R', 'L', 'R'},
	{'L', 'R', 'L'},
}

// dubinsPath is a solved path: the initial configuration (x, y, heading),
// the turning radius, the word, and the three segment lengths normalized
// by the radius.
type dubinsPath struct {
	q0   [3]float64
	rho  float64
	word dubinsWord
	seg  [3]float64
}

// length returns the total path length in meters.
func (p dubinsPath) length() float64 {
	return (p.seg[0] + p.seg[1] + p.seg[2]) * p.rho
}

// at samples the configuration at arc length s from the path start.
// s is clamped to [0, length].
func (p dubinsPath) at(s float64) [3]float64 {
	t := s / p.rho
	if total := p.seg[0] + p.seg[1] + p.seg[2]; t > total {
		t = total
	}
	if t < 0 {
		t = 0
	}

	letters := wordSegments[p.word]
	q := [3]float64{0, 0, p.q0[2]}
	for i := 0; i < 3; i++ {
		if t <= p.seg[i] || i == 2 {
			q = dubinsSegment(t, q, letters[i])
			break
		}
		q = dubinsSegment(p.seg[i], q, letters[i])
		t -= p.seg[i]
	}
	q[0] = q[0]*p.rho + p.q0[0]
	q[1] = q[1]*p.rho + p.q0[1]
	q[2] = mod2pi(q[2])
	return q
}

// dubinsSegment advances a normalized configuration by arc length t along
// one segment type.
func dubinsSegment(t float64, qi [3]float64, letter byte) [3]float64 {
	st, ct := math.Sin(qi[2]), math.Cos(qi[2])
	var q [3]float64
	switch letter {
	case 'L':
		q[0] = math.Sin(qi[2]+t) - st
		q[1] = -math.Cos(qi[2]+t) + ct
		q[2] = t
	case 'R':
		q[0] = -math.Sin(qi[2]-t) + st
		q[1] = math.Cos(qi[2]-t) - ct
		q[2] = -t
	default: // 'S'
		q[0] = ct * t
		q[1] = st * t
	}
	q[0] += qi[0]
	q[1] += qi[1]
	q[2] += qi[2]
	return q
}

func mod2pi(theta float64) float64 {
	r := math.Mod(theta, 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	return r
}

// shortestDubins solves all six words between two configurations in meters
// and returns the shortest feasible path. ok is false when no word admits
// a solution.
func shortestDubins(q0, q1 [3]float64, rho float64) (dubinsPath, bool) {
	dx := q1[0] - q0[0]
	dy := q1[1] - q0[1]
	dist := math.Hypot(dx, dy)
	d := dist / rho
	theta := 0.0
	if dist > 0 {
		theta = mod2pi(math.Atan2(dy, dx))
	}
	alpha := mod2pi(q0[2] - theta)
	beta := mod2pi(q1[2] - theta)

	best := dubinsPath{q0: q0, rho: rho}
	bestLen := math.Inf(1)
	found := false
	for w := wordLSL; w <= wordLRL; w++ {
		seg, ok := solveWord(w, alpha, beta, d)
		if !ok {
			continue
		}
		if l := seg[0] + seg[1] + seg[2]; l < bestLen {
			bestLen = l
			best.word = w
			best.seg = seg
			found = true
		}
	}
	return best, found
}

// solveWord computes the normalized segment lengths for one word, following
// the standard closed-form construction with angles taken relative to the
// start-to-goal direction.
func solveWord(w dubinsWord, alpha, beta, d float64) ([3]float64, bool) {
	sa, ca := math.Sin(alpha), math.Cos(alpha)
	sb, cb := math.Sin(beta), math.Cos(beta)
	cab := math.Cos(alpha - beta)

	switch w {
	case wordLSL:
		pSq := 2 + d*d - 2*cab + 2*d*(sa-sb)
		if pSq < 0 {
			return [3]float64{}, false
		}
		tmp := math.Atan2(cb-ca, d+sa-sb)
		return [3]float64{mod2pi(tmp - alpha), math.Sqrt(pSq), mod2pi(beta - tmp)}, true

	case wordRSR:
		pSq := 2 + d*d - 2*cab + 2*d*(sb-sa)
		if pSq < 0 {
			return [3]float64{}, false
		}
		tmp := math.Atan2(ca-cb, d-sa+sb)
		return [3]float64{mod2pi(alpha - tmp), math.Sqrt(pSq), mod2pi(tmp - beta)}, true

	case wordLSR:
		pSq := -2 + d*d + 2*cab + 2*d*(sa+sb)
		if pSq < 0 {
			return [3]float64{}, false
		}
		p := math.Sqrt(pSq)
		tmp := math.Atan2(-ca-cb, d+sa+sb) - math.Atan2(-2.0, p)
		return [3]float64{mod2pi(tmp - alpha), p, mod2pi(tmp - mod2pi(beta))}, true

	case wordRSL:
		pSq := d*d - 2 + 2*cab - 2*d*(sa+sb)
		if pSq < 0 {
			return [3]float64{}, false
		}
		p := math.Sqrt(pSq)
		tmp := math.Atan2(ca+cb, d-sa-sb) - math.Atan2(2.0, p)
		return [3]float64{mod2pi(alpha - tmp), p, mod2pi(beta - tmp)}, true

	case wordRLR:
		tmp := (6 - d*d + 2*cab + 2*d*(sa-sb)) / 8
		if math.Abs(tmp) >= 1 {
			return [3]float64{}, false
		}
		p := mod2pi(2*math.Pi - math.Acos(tmp))
		t := mod2pi(alpha - math.Atan2(ca-cb, d-sa+sb) + mod2pi(p/2))
		return [3]float64{t, p, mod2pi(alpha - beta - t + mod2pi(p))}, true

	case wordLRL:
		tmp := (6 - d*d + 2*cab + 2*d*(sb-sa)) / 8
		if math.Abs(tmp) >= 1 {
			return [3]float64{}, false
		}
		p := mod2pi(2*math.Pi - math.Acos(tmp))
		t := mod2pi(-alpha - math.Atan2(ca-cb, d+sa-sb) + p/2)
		return [3]float64{t, p, mod2pi(mod2pi(beta) - alpha - t + mod2pi(p))}, true
	}
	return [3]float64{}, false
}

// Planning with a literal zero radius would divide by zero; a millimeter
// radius makes arcs vanish against the waypoint spacing, which is the
// point-turn behavior a zero radius asks for.
const minDubinsRadius = 1e-3

// DubinsPlanner generates transition paths as Dubins curves on the local
// tangent plane between the two endpoints. Obstacles are ignored: missions
// are expected to keep transition corridors clear.
type DubinsPlanner struct {
	UAV core.UAVParameters
}

func NewDubinsPlanner(p core.UAVParameters) *DubinsPlanner {
	return &DubinsPlanner{UAV: p}
}

func (dp *DubinsPlanner) Name() string { return "Dubins" }

// Plan solves the Dubins problem in a meters frame at the midpoint
// latitude, samples the curve at the waypoint spacing, and converts the
// samples back to degrees.
func (dp *DubinsPlanner) Plan(start core.GeoPosition, startO core.Orientation,
	end core.GeoPosition, endO core.Orientation,
	obstacles []core.GeoPolygon) (core.Waypath, error) {

	avgLat := (start.Lat + end.Lat) / 2
	lonPerMeter := geo.DegreesLonPerMeter(avgLat)
	latPerMeter := geo.DegreesLatPerMeter(avgLat)

	// The slight offset keeps the solver off exact-zero configurations.
	q0 := [3]float64{1e-4, 1e-4, startO.Radians()}
	q1 := [3]float64{
		q0[0] + (end.Lon-start.Lon)/lonPerMeter,
		q0[1] + (end.Lat-start.Lat)/latPerMeter,
		endO.Radians(),
	}

	rho := math.Max(dp.UAV.MinTurnRadius, minDubinsRadius)
	path, ok := shortestDubins(q0, q1, rho)
	if !ok {
		return nil, fmt.Errorf("%w: no dubins word solves rho=%.1fm d=%.1fm",
			ErrNoTransition, rho, math.Hypot(q1[0]-q0[0], q1[1]-q0[1]))
	}

	interval := dp.UAV.WaypointSpacing
	length := path.length()
	n := int(math.Round(length / interval))
	out := make(core.Waypath, 0, n+1)
	for i := 0; i < n; i++ {
		q := path.at(float64(i) * interval)
		out = append(out, core.GeoPosition{
			Lon: start.Lon + q[0]*lonPerMeter,
			Lat: start.Lat + q[1]*latPerMeter,
		})
	}
	// Terminal configuration, so the path always reaches the goal even when
	// the sample grid stops short.
	q := path.at(length)
	out = append(out, core.GeoPosition{
		Lon: start.Lon + q[0]*lonPerMeter,
		Lat: start.Lat + q[1]*latPerMeter,
	})
	return out, nil
}
