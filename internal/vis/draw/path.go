package draw

import (
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/uav-mission-research/internal/core"
	"github.com/elektrokombinacija/uav-mission-research/internal/vis/interact"
)

// Colors for flight legs by kind
var (
	ColorLegTransit = color.NRGBA{R: 150, G: 160, B: 175, A: 255}
	ColorLegWork    = color.NRGBA{R: 90, G: 200, B: 120, A: 255}
	ColorLegSwitch  = color.NRGBA{R: 255, G: 165, B: 70, A: 255}
	ColorTrail      = color.NRGBA{R: 250, G: 250, B: 250, A: 255}
)

// LegColor returns the display color for a leg kind.
func LegColor(kind core.LegKind) color.NRGBA {
	switch kind {
	case core.LegWork:
		return ColorLegWork
	case core.LegSwitch:
		return ColorLegSwitch
	default:
		return ColorLegTransit
	}
}

// DrawFlight renders the planned flight, one polyline per leg in the leg's
// color, dimmed so the live trail reads on top.
func DrawFlight(gtx layout.Context, flight *core.Flight, pr Projector, camera *interact.Camera) {
	if flight == nil {
		return
	}
	for _, leg := range flight.Legs {
		if leg.Count == 0 {
			continue
		}
		col := LegColor(leg.Kind)
		col.A = 110

		// Start one waypoint early so consecutive legs connect without
		// gaps.
		first := leg.First
		if first > 0 {
			first--
		}
		DrawGeoPath(gtx, flight.Path[first:leg.First+leg.Count], pr, camera, col, 2)
	}
}

// DrawGeoPath draws a waypoint sequence as a polyline of constant pixel
// width.
func DrawGeoPath(gtx layout.Context, path []core.GeoPosition, pr Projector, camera *interact.Camera, col color.NRGBA, width float32) {
	if len(path) < 2 {
		return
	}
	x1, y1 := toScreen(pr, camera, path[0])
	for i := 1; i < len(path); i++ {
		x2, y2 := toScreen(pr, camera, path[i])
		drawPathSegment(gtx, x1, y1, x2, y2, width, col)
		x1, y1 = x2, y2
	}
}

// DrawTrail draws the flown track, fading toward its oldest point.
func DrawTrail(gtx layout.Context, trail []core.GeoPosition, pr Projector, camera *interact.Camera, baseColor color.NRGBA, maxWidth float32) {
	if len(trail) < 2 {
		return
	}
	n := len(trail)
	x1, y1 := toScreen(pr, camera, trail[0])
	for i := 1; i < n; i++ {
		x2, y2 := toScreen(pr, camera, trail[i])

		// Alpha and width both fade toward the tail
		col := baseColor
		col.A = uint8(50 + float64(i)/float64(n)*150)
		w := maxWidth * (0.3 + 0.7*float32(i)/float32(n))

		drawPathSegment(gtx, x1, y1, x2, y2, w, col)
		x1, y1 = x2, y2
	}
}

func drawPathSegment(gtx layout.Context, x1, y1, x2, y2, width float32, col color.NRGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length < 0.1 {
		return
	}

	dx /= length
	dy /= length
	px := -dy * width / 2
	py := dx * width / 2

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(x1+px, y1+py))
	path.LineTo(f32.Pt(x2+px, y2+py))
	path.LineTo(f32.Pt(x2-px, y2-py))
	path.LineTo(f32.Pt(x1-px, y1-py))
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

// drawArrow draws a screen-space arrowhead at (x, y) pointing along
// (dirX, dirY), which must be unit length.
func drawArrow(gtx layout.Context, x, y, dirX, dirY, size float32, col color.NRGBA) {
	tipX := x + dirX*size
	tipY := y + dirY*size

	perpX := -dirY * size * 0.5
	perpY := dirX * size * 0.5

	baseX := x - dirX*size*0.3
	baseY := y - dirY*size*0.3

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(tipX, tipY))
	path.LineTo(f32.Pt(baseX+perpX, baseY+perpY))
	path.LineTo(f32.Pt(baseX-perpX, baseY-perpY))
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}
