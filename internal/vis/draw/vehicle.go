package draw

import (
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

// Vehicle colors
var (
	ColorVehicle      = color.NRGBA{R: 255, G: 230, B: 90, A: 255}
	ColorVehicleCoast = color.NRGBA{R: 255, G: 230, B: 90, A: 140} // sample past the modeled path
	ColorStart        = color.NRGBA{R: 200, G: 120, B: 255, A: 255}
)

// DrawVehicle draws the aircraft as an arrowhead along its heading, at a
// fixed pixel size so it stays legible at any zoom.
func DrawVehicle(gtx layout.Context, sample algo.Sample, pr Projector, camera *interact.Camera) {
	cx, cy := toScreen(pr, camera, sample.Position)

	// Headings grow counterclockwise from east; screen Y points down.
	theta := sample.Orientation.Radians()
	dirX := float32(math.Cos(theta))
	dirY := float32(-math.Sin(theta))
	perpX := -dirY
	perpY := dirX

	col := ColorVehicle
	if sample.Extrapolated {
		col = ColorVehicleCoast
	}

	const size = float32(12)
	nose := f32.Pt(cx+dirX*size, cy+dirY*size)
	left := f32.Pt(cx-dirX*size*0.6+perpX*size*0.55, cy-dirY*size*0.6+perpY*size*0.55)
	notch := f32.Pt(cx-dirX*size*0.25, cy-dirY*size*0.25)
	right := f32.Pt(cx-dirX*size*0.6-perpX*size*0.55, cy-dirY*size*0.6-perpY*size*0.55)

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(nose)
	path.LineTo(left)
	path.LineTo(notch)
	path.LineTo(right)
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

// DrawStart marks the launch position and initial heading.
func DrawStart(gtx layout.Context, pos core.GeoPosition, o core.Orientation, pr Projector, camera *interact.Camera) {
	cx, cy := toScreen(pr, camera, pos)
	drawRing(gtx, cx, cy, 8, ColorStart, 2)

	theta := o.Radians()
	dirX := float32(math.Cos(theta))
	dirY := float32(-math.Sin(theta))
	drawArrow(gtx, cx+dirX*15, cy+dirY*15, dirX, dirY, 7, ColorStart)
}

func drawFilledCircle(gtx layout.Context, cx, cy, radius float32, col color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.Move(f32.Pt(cx+radius, cy))

	segments := 12
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		x := cx + radius*float32(math.Cos(angle))
		y := cy + radius*float32(math.Sin(angle))
		path.Line(f32.Pt(x-path.Pos().X, y-path.Pos().Y))
	}
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}
