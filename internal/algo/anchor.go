package algo

import (
	"fmt"
	"math"

	"github.com/elektrokombinacija/uav-mission-research/internal/core"
	"github.com/elektrokombinacija/uav-mission-research/internal/geo"
)

// Anchor fixes where a task's sub-flight enters and leaves its area.
// Orientation is the direction of travel at the entry point, aimed at the
// exit.
type Anchor struct {
	Entry       core.GeoPosition
	Exit        core.GeoPosition
	Orientation core.Orientation
}

// Each ray marches at most this many steps from the rectangle center.
// A hundred steps span the larger bounding dimension, so any point of the
// polygon is reached well within the cap; hitting it means the polygon is
// degenerate.
const maxRaySteps = 1000

// SelectAnchors picks an entry/exit anchor pair for every schedulable area.
// The returned slice is parallel to areas.
//
// For each area the selector probes 179 one-degree directions from the
// bounding-rectangle center, marching both ways along each direction in
// steps of a hundredth of the larger bounding dimension until the polygon
// is left. The probe pair with the greatest straight-line separation
// (compared in ECEF space) becomes the area's diameter; the endpoint nearer
// the mean of all areas' centers becomes the entry.
func SelectAnchors(areas []*core.TaskArea) ([]Anchor, error) {
	if len(areas) == 0 {
		return nil, nil
	}

	// Mean of the bounding centers of every area, used to pick which
	// diameter endpoint faces the rest of the mission.
	var mean core.GeoPosition
	for _, area := range areas {
		c := area.Polygon.BoundingRect().Center()
		mean.Lon += c.Lon
		mean.Lat += c.Lat
	}
	mean.Lon /= float64(len(areas))
	mean.Lat /= float64(len(areas))

	anchors := make([]Anchor, len(areas))
	for i, area := range areas {
		a, err := selectAnchor(area, mean)
		if err != nil {
			return nil, fmt.Errorf("area %d (%s): %w", i, areaName(area), err)
		}
		anchors[i] = a
	}
	return anchors, nil
}

func selectAnchor(area *core.TaskArea, mean core.GeoPosition) (Anchor, error) {
	rect := area.Polygon.BoundingRect()
	center := rect.Center()
	step := math.Max(rect.Width(), rect.Height()) / 100.0

	var bestA, bestB core.GeoPosition
	bestSep := -1.0
	for angleDeg := 0; angleDeg < 179; angleDeg++ {
		rad := float64(angleDeg) * math.Pi / 180.0
		dLon := math.Cos(rad) * step
		dLat := math.Sin(rad) * step

		pos, ok := marchToExit(area.Polygon, center, dLon, dLat)
		if !ok {
			return Anchor{}, fmt.Errorf("%w: ray at %d deg never left the polygon", ErrAnchorSearch, angleDeg)
		}
		neg, ok := marchToExit(area.Polygon, center, -dLon, -dLat)
		if !ok {
			return Anchor{}, fmt.Errorf("%w: ray at %d deg never left the polygon", ErrAnchorSearch, angleDeg+180)
		}

		if sep := geo.ECEFDistanceSquared(pos, neg); sep > bestSep {
			bestSep = sep
			bestA, bestB = pos, neg
		}
	}

	entry, exit := bestA, bestB
	if bestB.ManhattanTo(mean) < bestA.ManhattanTo(mean) {
		entry, exit = bestB, bestA
	}
	return Anchor{
		Entry:       entry,
		Exit:        exit,
		Orientation: geo.Bearing(entry, exit),
	}, nil
}

// marchToExit walks from the center in fixed degree-space steps and returns
// the first sample outside the polygon.
func marchToExit(poly core.GeoPolygon, center core.GeoPosition, dLon, dLat float64) (core.GeoPosition, bool) {
	for count := 0; count <= maxRaySteps; count++ {
		trial := core.GeoPosition{
			Lon: center.Lon + dLon*float64(count),
			Lat: center.Lat + dLat*float64(count),
		}
		if !poly.ContainsPoint(trial) {
			return trial, true
		}
	}
	return core.GeoPosition{}, false
}

func areaName(area *core.TaskArea) string {
	if area.Task != nil {
		return area.Task.Name
	}
	return area.Kind.String()
}
