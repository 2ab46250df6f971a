package algo

import (
	"math"

	"github.com/elektrokombinacija/uav-mission-research/internal/core"
)

// stitch converts a schedule into the final flight: the start transition
// to the first task, then for every schedule step the cached switch
// transition (when the step changed tasks) and the slice of the sub-flight
// covering the work done in that step.
func (hp *HierarchicalPlanner) stitch(p *pass, schedule []schedState) *core.Flight {
	flight := &core.Flight{}
	uav := p.prob.UAV
	startKey := schedule[0].key()

	prev := schedule[0]
	prevKey := startKey
	for _, cur := range schedule[1:] {
		curKey := cur.key()
		i := p.lastTask[curKey]
		task := p.tasks[i].ID

		if prevKey == startKey {
			flight.AppendLeg(core.LegTransit, task, p.startPaths[i], uav)
		} else if p.lastTask[prevKey] != i {
			flight.AppendLeg(core.LegSwitch, task, p.switches[curKey], uav)
		}

		portion := pathPortion(p.subFlights[i], prev[i], cur[i], uav)
		flight.AppendWork(task, portion, uav, prev[i], cur[i])

		prev, prevKey = cur, curKey
	}
	return flight
}

// pathPortion slices the sub-flight waypoints covering the work interval
// [from, to) seconds.
func pathPortion(path core.Waypath, from, to float64, p core.UAVParameters) core.Waypath {
	lo := portionIndex(path, from, p)
	hi := portionIndex(path, to, p)
	if lo > hi {
		lo = hi
	}
	return path[lo:hi]
}

// portionIndex maps a work time to a waypoint index. Rounding, rather than
// truncating, keeps consecutive portions exactly adjacent: the index where
// one portion ends is bit-for-bit where the next begins, so stitched legs
// neither skip nor repeat waypoints even when the final timeslice of a task
// is clamped short.
func portionIndex(path core.Waypath, t float64, p core.UAVParameters) int {
	idx := int(math.Round(t * p.Airspeed / p.WaypointSpacing))
	if idx < 0 {
		idx = 0
	}
	if idx > len(path) {
		idx = len(path)
	}
	return idx
}
