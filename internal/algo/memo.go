package algo

import (
	"math"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/elektrokombinacija/uav-mission-research/internal/core"
)

// transitionKey quantizes a transition request for cache lookup.
// Positions are keyed at nanodegree resolution (about 0.1 mm) and
// orientations at a ten-thousandth of a radian, so requests that differ
// only by floating-point noise share an entry.
type transitionKey struct {
	startLon, startLat int64
	endLon, endLat     int64
	startO, endO       int32
}

func makeTransitionKey(start core.GeoPosition, startO core.Orientation,
	end core.GeoPosition, endO core.Orientation) transitionKey {
	return transitionKey{
		startLon: int64(math.Round(start.Lon * 1e9)),
		startLat: int64(math.Round(start.Lat * 1e9)),
		endLon:   int64(math.Round(end.Lon * 1e9)),
		endLat:   int64(math.Round(end.Lat * 1e9)),
		startO:   int32(math.Round(startO.Radians() * 1e4)),
		endO:     int32(math.Round(endO.Radians() * 1e4)),
	}
}

// MemoPlanner caches the results of a wrapped TransitionPlanner. The
// scheduler asks for the same start transitions and context switches many
// times across a search; memoizing them keeps the pass cheap. Failures are
// not cached. Cached paths are shared, relying on Waypath immutability.
//
// The cache ignores the obstacle set: within one planning pass obstacles
// are fixed, and a MemoPlanner must not outlive the pass it serves.
type MemoPlanner struct {
	inner TransitionPlanner
	cache *lru.Cache[transitionKey, core.Waypath]
}

// DefaultMemoSize bounds the per-pass transition cache.
const DefaultMemoSize = 4096

// NewMemoPlanner wraps inner with an LRU of the given size. Sizes below 1
// fall back to DefaultMemoSize.
func NewMemoPlanner(inner TransitionPlanner, size int) *MemoPlanner {
	if size < 1 {
		size = DefaultMemoSize
	}
	cache, err := lru.New[transitionKey, core.Waypath](size)
	if err != nil {
		// Only reachable with a non-positive size, which we just excluded.
		panic(err)
	}
	return &MemoPlanner{inner: inner, cache: cache}
}

// Name reports the wrapped planner's name: memoization is transparent.
func (m *MemoPlanner) Name() string { return m.inner.Name() }

func (m *MemoPlanner) Plan(start core.GeoPosition, startO core.Orientation,
	end core.GeoPosition, endO core.Orientation,
	obstacles []core.GeoPolygon) (core.Waypath, error) {

	key := makeTransitionKey(start, startO, end, endO)
	if path, ok := m.cache.Get(key); ok {
		return path, nil
	}
	path, err := m.inner.Plan(start, startO, end, endO, obstacles)
	if err != nil {
		return nil, err
	}
	m.cache.Add(key, path)
	return path, nil
}
