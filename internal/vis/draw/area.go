package draw

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/uav-mission-research/internal/algo"
	"github.com/elektrokombinacija/uav-mission-research/internal/core"
	"github.com/elektrokombinacija/uav-mission-research/internal/vis/interact"
)

// Colors for mission areas by task kind
var (
	ColorCoverage   = color.NRGBA{R: 80, G: 180, B: 100, A: 255}
	ColorSampling   = color.NRGBA{R: 100, G: 140, B: 220, A: 255}
	ColorFlyThrough = color.NRGBA{R: 100, G: 200, B: 200, A: 255}
	ColorNoFly      = color.NRGBA{R: 220, G: 90, B: 80, A: 255}
	ColorAnchor     = color.NRGBA{R: 255, G: 200, B: 80, A: 255}
	ColorGrid       = color.NRGBA{R: 44, G: 48, B: 54, A: 255}
)

// AreaColor returns the display color for a task kind.
func AreaColor(kind core.TaskKind) color.NRGBA {
	switch kind {
	case core.Coverage:
		return ColorCoverage
	case core.Sampling:
		return ColorSampling
	case core.FlyThrough:
		return ColorFlyThrough
	case core.NoFlyZone:
		return ColorNoFly
	default:
		return ColorCoverage
	}
}

// DrawAreas renders every mission area as a translucent fill with an outline
// in its kind's color.
func DrawAreas(gtx layout.Context, areas []*core.TaskArea, pr Projector, camera *interact.Camera) {
	for _, a := range areas {
		col := AreaColor(a.Kind)
		fill := col
		fill.A = 55
		fillPolygon(gtx, a.Polygon, pr, camera, fill)
		outlinePolygon(gtx, a.Polygon, pr, camera, col, 1.5)
	}
}

// DrawAnchors marks each task's entry point (filled, with a heading arrow
// toward the exit) and exit point (ring).
func DrawAnchors(gtx layout.Context, anchors []algo.Anchor, pr Projector, camera *interact.Camera) {
	for _, a := range anchors {
		ex, ey := toScreen(pr, camera, a.Entry)
		drawFilledCircle(gtx, ex, ey, 5, ColorAnchor)

		theta := a.Orientation.Radians()
		dirX := float32(math.Cos(theta))
		dirY := float32(-math.Sin(theta))
		drawArrow(gtx, ex+dirX*12, ey+dirY*12, dirX, dirY, 7, ColorAnchor)

		xx, xy := toScreen(pr, camera, a.Exit)
		drawRing(gtx, xx, xy, 5, ColorAnchor, 1.5)
	}
}

// DrawGrid draws a background grid in world meters. The pitch adapts to the
// zoom so lines stay legible across the whole camera range.
func DrawGrid(gtx layout.Context, camera *interact.Camera, col color.NRGBA) {
	bounds := gtx.Constraints.Max
	pitch := gridPitch(camera.Zoom)

	minX, minY := camera.ScreenToWorld(0, 0)
	maxX, maxY := camera.ScreenToWorld(float32(bounds.X), float32(bounds.Y))

	for x := math.Floor(minX/pitch) * pitch; x <= maxX; x += pitch {
		sx, _ := camera.WorldToScreen(x, 0)
		paint.FillShape(gtx.Ops, col, clip.Rect(image.Rect(int(sx), 0, int(sx)+1, bounds.Y)).Op())
	}
	for y := math.Floor(minY/pitch) * pitch; y <= maxY; y += pitch {
		_, sy := camera.WorldToScreen(0, y)
		paint.FillShape(gtx.Ops, col, clip.Rect(image.Rect(0, int(sy), bounds.X, int(sy)+1)).Op())
	}
}

// gridPitch picks the smallest power-of-ten-ish pitch whose lines land at
// least 50 pixels apart.
func gridPitch(zoom float32) float64 {
	for _, pitch := range []float64{100, 250, 500, 1000, 2500, 5000, 10000} {
		if pitch*float64(zoom) >= 50 {
			return pitch
		}
	}
	return 25000
}

func toScreen(pr Projector, camera *interact.Camera, p core.GeoPosition) (float32, float32) {
	wx, wy := pr.World(p)
	return camera.WorldToScreen(wx, wy)
}

func fillPolygon(gtx layout.Context, poly core.GeoPolygon, pr Projector, camera *interact.Camera, col color.NRGBA) {
	if len(poly) < 3 {
		return
	}
	var path clip.Path
	path.Begin(gtx.Ops)
	for i, v := range poly {
		sx, sy := toScreen(pr, camera, v)
		if i == 0 {
			path.MoveTo(f32.Pt(sx, sy))
		} else {
			path.LineTo(f32.Pt(sx, sy))
		}
	}
	path.Close()
	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

func outlinePolygon(gtx layout.Context, poly core.GeoPolygon, pr Projector, camera *interact.Camera, col color.NRGBA, width float32) {
	if len(poly) < 2 {
		return
	}
	x1, y1 := toScreen(pr, camera, poly[len(poly)-1])
	for _, v := range poly {
		x2, y2 := toScreen(pr, camera, v)
		drawPathSegment(gtx, x1, y1, x2, y2, width, col)
		x1, y1 = x2, y2
	}
}

// drawRing draws a circle outline of the given stroke width.
func drawRing(gtx layout.Context, cx, cy, radius float32, col color.NRGBA, strokeWidth float32) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.Move(f32.Pt(cx+radius, cy))

	segments := 24
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		x := cx + radius*float32(math.Cos(angle))
		y := cy + radius*float32(math.Sin(angle))
		path.Line(f32.Pt(x-path.Pos().X, y-path.Pos().Y))
	}
	path.Close()

	// Inner circle wound the other way so the hole survives the non-zero
	// fill rule.
	innerR := radius - strokeWidth
	if innerR < 0 {
		innerR = 0
	}
	path.Move(f32.Pt(cx+innerR-path.Pos().X, cy-path.Pos().Y))
	for i := segments - 1; i >= 0; i-- {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		x := cx + innerR*float32(math.Cos(angle))
		y := cy + innerR*float32(math.Sin(angle))
		path.Line(f32.Pt(x-path.Pos().X, y-path.Pos().Y))
	}
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}
