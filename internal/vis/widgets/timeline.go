package widgets

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/uav-mission-research/internal/core"
	"github.com/elektrokombinacija/uav-mission-research/internal/vis/draw"
	"github.com/elektrokombinacija/uav-mission-research/internal/vis/state"
)

// Timeline is a time scrubber. The track is painted as one band per flight
// leg in the leg's color, so the work/switch/transit structure of the plan
// is visible at a glance.
type Timeline struct {
	state    *state.State
	dragging bool
}

// NewTimeline creates a new timeline widget.
func NewTimeline(st *state.State) *Timeline {
	return &Timeline{state: st}
}

// Layout renders the timeline.
func (t *Timeline) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	height := 60

	rect := image.Rect(0, 0, gtx.Constraints.Max.X, height)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 35, G: 38, B: 42, A: 255}, clip.Rect(rect).Op())

	t.handlePointerEvents(gtx, height)

	margin := 20
	trackY := height / 2
	trackHeight := 8
	trackWidth := gtx.Constraints.Max.X - 2*margin

	// Track background, visible where the flight has no legs yet
	trackRect := image.Rect(margin, trackY-trackHeight/2, margin+trackWidth, trackY+trackHeight/2)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 60, G: 65, B: 70, A: 255}, clip.Rect(trackRect).Op())

	t.drawLegBands(gtx, margin, trackY, trackHeight, trackWidth)

	// Dim the part of the flight not yet replayed
	progress := t.state.Playback.Progress()
	playheadX := margin + int(float64(trackWidth)*progress)
	if playheadX < margin+trackWidth {
		restRect := image.Rect(playheadX, trackY-trackHeight/2, margin+trackWidth, trackY+trackHeight/2)
		paint.FillShape(gtx.Ops, color.NRGBA{R: 20, G: 22, B: 25, A: 140}, clip.Rect(restRect).Op())
	}

	// Playhead
	playheadSize := 12
	playheadRect := image.Rect(playheadX-playheadSize/2, trackY-playheadSize/2, playheadX+playheadSize/2, trackY+playheadSize/2)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, clip.Rect(playheadRect).Op())

	t.drawLabels(gtx, th)

	return layout.Dimensions{Size: image.Point{X: gtx.Constraints.Max.X, Y: height}}
}

// drawLegBands tiles the track with one colored band per leg. Legs partition
// the flight, so the bands cover the track exactly.
func (t *Timeline) drawLegBands(gtx layout.Context, margin, trackY, trackHeight, trackWidth int) {
	flight := t.state.Flight
	if flight == nil || flight.Duration <= 0 {
		return
	}
	for _, leg := range flight.Legs {
		x1 := margin + int(float64(trackWidth)*leg.From/flight.Duration)
		x2 := margin + int(float64(trackWidth)*leg.To/flight.Duration)
		if x2 <= x1 {
			continue
		}
		col := draw.LegColor(leg.Kind)
		col.A = 220
		bandRect := image.Rect(x1, trackY-trackHeight/2, x2, trackY+trackHeight/2)
		paint.FillShape(gtx.Ops, col, clip.Rect(bandRect).Op())
	}
}

func (t *Timeline) drawLabels(gtx layout.Context, th *material.Theme) {
	currentLabel := material.Label(th, 12, formatClock(t.state.Playback.CurrentTime))
	currentLabel.Color = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	currentLabel.Alignment = text.Start

	maxLabel := material.Label(th, 12, formatClock(t.state.Playback.MaxTime))
	maxLabel.Color = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
	maxLabel.Alignment = text.End

	summary := ""
	if f := t.state.Flight; f != nil {
		summary = fmt.Sprintf("%d legs, %d switches", len(f.Legs), f.CountLegs(core.LegSwitch))
	}
	summaryLabel := material.Label(th, 12, summary)
	summaryLabel.Color = color.NRGBA{R: 150, G: 180, B: 200, A: 255}

	layout.Inset{Top: unit.Dp(4), Left: unit.Dp(20), Right: unit.Dp(20)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return currentLabel.Layout(gtx)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return summaryLabel.Layout(gtx)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return maxLabel.Layout(gtx)
			}),
		)
	})
}

func (t *Timeline) handlePointerEvents(gtx layout.Context, height int) {
	margin := 20
	trackWidth := gtx.Constraints.Max.X - 2*margin

	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, height)).Push(gtx.Ops)
	event.Op(gtx.Ops, t)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: t,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release,
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			switch pe.Kind {
			case pointer.Press:
				t.dragging = true
				t.seekToPosition(pe.Position.X, margin, trackWidth)

			case pointer.Drag:
				if t.dragging {
					t.seekToPosition(pe.Position.X, margin, trackWidth)
				}

			case pointer.Release:
				t.dragging = false
			}
		}
	}
}

func (t *Timeline) seekToPosition(screenX float32, margin, trackWidth int) {
	x := float64(screenX) - float64(margin)
	progress := x / float64(trackWidth)

	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	t.state.Playback.SetTime(progress * t.state.Playback.MaxTime)
}
