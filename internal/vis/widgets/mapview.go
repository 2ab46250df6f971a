// Package widgets provides Gio UI widgets for the visualizer.
package widgets

import (
	"image"
	"image/color"
	"math"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/uav-mission-research/internal/core"
	"github.com/elektrokombinacija/uav-mission-research/internal/vis/draw"
	"github.com/elektrokombinacija/uav-mission-research/internal/vis/interact"
	"github.com/elektrokombinacija/uav-mission-research/internal/vis/state"
)

// MapView is the main map area showing the mission and the flight replay.
type MapView struct {
	state     *state.State
	camera    *interact.Camera
	projector draw.Projector
	fitted    bool
}

// NewMapView creates the map widget. The world frame is anchored at the
// mission's start position.
func NewMapView(st *state.State, camera *interact.Camera) *MapView {
	return &MapView{
		state:     st,
		camera:    camera,
		projector: draw.Projector{Origin: st.Problem.Start},
	}
}

// Layout renders the map.
func (m *MapView) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	bounds := gtx.Constraints.Max
	defer clip.Rect(image.Rect(0, 0, bounds.X, bounds.Y)).Push(gtx.Ops).Pop()

	paint.Fill(gtx.Ops, color.NRGBA{R: 25, G: 28, B: 32, A: 255})

	// Frame the mission once the widget knows its size
	if !m.fitted {
		m.Fit(gtx)
		m.fitted = true
	}

	m.handlePointerEvents(gtx)

	draw.DrawGrid(gtx, m.camera, draw.ColorGrid)
	draw.DrawAreas(gtx, m.state.Problem.Areas, m.projector, m.camera)
	draw.DrawAnchors(gtx, m.state.Anchors, m.projector, m.camera)
	draw.DrawFlight(gtx, m.state.Flight, m.projector, m.camera)

	if trail := m.state.Trail(); len(trail) > 1 {
		draw.DrawTrail(gtx, trail, m.projector, m.camera, draw.ColorTrail, 3)
	}

	draw.DrawStart(gtx, m.state.Problem.Start, m.state.Problem.StartOrientation, m.projector, m.camera)

	if sample, ok := m.state.VehicleSample(); ok {
		draw.DrawVehicle(gtx, sample, m.projector, m.camera)
	}

	return layout.Dimensions{Size: bounds}
}

// Fit frames the whole mission: every area, the start, and the flight.
func (m *MapView) Fit(gtx layout.Context) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	include := func(p core.GeoPosition) {
		x, y := m.projector.World(p)
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}

	include(m.state.Problem.Start)
	for _, a := range m.state.Problem.Areas {
		for _, v := range a.Polygon {
			include(v)
		}
	}
	if m.state.Flight != nil {
		for _, p := range m.state.Flight.Path {
			include(p)
		}
	}

	if minX > maxX {
		return
	}
	b := gtx.Constraints.Max
	m.camera.FitBounds(minX, minY, maxX, maxY, float32(b.X), float32(b.Y), 60)
}

func (m *MapView) handlePointerEvents(gtx layout.Context) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Push(gtx.Ops)
	event.Op(gtx.Ops, m)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: m,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Scroll,
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			m.camera.HandleEvent(gtx, pe)
		}
	}
}
