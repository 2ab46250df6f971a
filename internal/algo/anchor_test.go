package algo

import (
	"errors"
	"math"
	"testing"

	"github.com/elektrokombinacija/uav-mission-research/internal/core"
	"github.com/elektrokombinacija/uav-mission-research/internal/geo"
)

func TestSelectAnchorsSquare(t *testing.T) {
	center := core.GeoPosition{Lon: 14.46, Lat: 45.33}
	area := squareArea(0, "field", center, 500, core.Coverage)

	anchors, err := SelectAnchors([]*core.TaskArea{area})
	if err != nil {
		t.Fatalf("SelectAnchors failed: %v", err)
	}
	if len(anchors) != 1 {
		t.Fatalf("Expected 1 anchor, got %d", len(anchors))
	}
	a := anchors[0]

	// Entry and exit are the first probes outside the polygon, so they sit
	// just past the boundary: outside, but within one march step of it.
	step := math.Max(area.Polygon.BoundingRect().Width(), area.Polygon.BoundingRect().Height()) / 100
	stepMeters := step / geo.DegreesLatPerMeter(center.Lat)
	for name, pos := range map[string]core.GeoPosition{"entry": a.Entry, "exit": a.Exit} {
		if area.Polygon.ContainsPoint(pos) {
			t.Errorf("Expected %s to lie outside the polygon", name)
		}
		// Within the bounding rect inflated by two steps.
		if d := geo.DistanceMeters(center, pos); d > 250*math.Sqrt2+2*stepMeters {
			t.Errorf("Expected %s near the polygon, got %.1f m from center", name, d)
		}
	}

	if a.Entry == a.Exit {
		t.Error("Expected distinct entry and exit points")
	}

	// The chosen pair should span roughly the square's diagonal.
	if d := geo.DistanceMeters(a.Entry, a.Exit); d < 500 {
		t.Errorf("Expected the anchor diameter to exceed the side length, got %.1f m", d)
	}

	if got := a.Orientation; got.DifferenceTo(geo.Bearing(a.Entry, a.Exit)) > 1e-9 {
		t.Errorf("Expected orientation to be the entry-to-exit bearing, got %f", got.Radians())
	}
}

func TestSelectAnchorsEntriesFaceEachOther(t *testing.T) {
	west := core.GeoPosition{Lon: 14.46, Lat: 45.33}
	east := geo.Offset(west, 3000, 0)
	areas := []*core.TaskArea{
		squareArea(0, "west", west, 500, core.Coverage),
		squareArea(1, "east", east, 500, core.Coverage),
	}

	anchors, err := SelectAnchors(areas)
	if err != nil {
		t.Fatalf("SelectAnchors failed: %v", err)
	}

	// Each entry is the diameter endpoint nearer the mission's mean center,
	// so the two entries face each other across the gap.
	if anchors[0].Entry.Lon <= west.Lon {
		t.Errorf("Expected west area's entry on its eastern side, got lon %f (center %f)",
			anchors[0].Entry.Lon, west.Lon)
	}
	if anchors[1].Entry.Lon >= east.Lon {
		t.Errorf("Expected east area's entry on its western side, got lon %f (center %f)",
			anchors[1].Entry.Lon, east.Lon)
	}
}

func TestSelectAnchorsDeterministic(t *testing.T) {
	areas := createTestProblem().TaskAreas()
	first, err := SelectAnchors(areas)
	if err != nil {
		t.Fatalf("SelectAnchors failed: %v", err)
	}
	second, err := SelectAnchors(areas)
	if err != nil {
		t.Fatalf("SelectAnchors failed: %v", err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Anchor %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestSelectAnchorsDegenerateInput(t *testing.T) {
	// A zero-extent polygon must not hang the ray march. Completing with a
	// degenerate anchor is fine; failing must report ErrAnchorSearch.
	p := core.GeoPosition{Lon: 14.46, Lat: 45.33}
	area := &core.TaskArea{
		Polygon: core.GeoPolygon{p, p, p},
		Kind:    core.Coverage,
		Task:    core.NewTask(0, "degenerate", core.Coverage),
	}
	if _, err := SelectAnchors([]*core.TaskArea{area}); err != nil {
		if !errors.Is(err, ErrAnchorSearch) {
			t.Errorf("Expected ErrAnchorSearch, got %v", err)
		}
	}
}
