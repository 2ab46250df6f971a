// Package vis implements a Gio-based visualization for planned missions:
// the task areas, the stitched flight path, and a replay of the vehicle
// flying it.
package vis

import (
	"image/color"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/uav-mission-research/internal/algo"
	"github.com/elektrokombinacija/uav-mission-research/internal/core"
	"github.com/elektrokombinacija/uav-mission-research/internal/vis/interact"
	"github.com/elektrokombinacija/uav-mission-research/internal/vis/state"
	"github.com/elektrokombinacija/uav-mission-research/internal/vis/widgets"
)

// App is the main visualization application.
type App struct {
	state    *state.State
	theme    *material.Theme
	mapView  *widgets.MapView
	timeline *widgets.Timeline
	toolbar  *widgets.Toolbar
	camera   *interact.Camera
}

// NewApp plans the problem and builds the UI around the result. The toolbar
// cycles between the hierarchical and sequential planners; both share one
// memoized Dubins transition planner.
func NewApp(prob *core.Problem) (*App, error) {
	transitions := algo.NewMemoPlanner(algo.NewDubinsPlanner(prob.UAV), 0)
	subFlights := algo.NewTransectPlanner(prob.UAV)

	planners := []algo.MissionPlanner{
		algo.NewHierarchicalPlanner(transitions, subFlights),
		algo.NewSequentialPlanner(transitions, subFlights),
	}

	st, err := state.NewState(prob, planners)
	if err != nil {
		return nil, err
	}

	camera := interact.NewCamera()
	return &App{
		state:    st,
		theme:    material.NewTheme(),
		mapView:  widgets.NewMapView(st, camera),
		timeline: widgets.NewTimeline(st),
		toolbar:  widgets.NewToolbar(st),
		camera:   camera,
	}, nil
}

// Run starts the application event loop.
func (a *App) Run(w *app.Window) error {
	var ops op.Ops

	// Event filter tag for keyboard input
	tag := new(int)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			for {
				ev, ok := gtx.Event(key.Filter{Focus: tag, Optional: key.ModCtrl | key.ModShift})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKeyEvent(ke)
				}
			}

			// Request focus for keyboard input
			event.Op(gtx.Ops, tag)

			a.layout(gtx)
			e.Frame(gtx.Ops)

			// Keep redrawing while the replay runs
			if a.state.Playback.Playing {
				a.state.Playback.Advance()
				w.Invalidate()
			}
		}
	}
}

func (a *App) handleKeyEvent(e key.Event) {
	switch e.Name {
	case key.NameSpace:
		a.state.Playback.TogglePlay()
	case key.NameLeftArrow:
		a.state.Playback.StepBack()
	case key.NameRightArrow:
		a.state.Playback.StepForward()
	case key.NameUpArrow:
		a.state.Playback.SetSpeed(a.state.Playback.Speed * 1.5)
	case key.NameDownArrow:
		a.state.Playback.SetSpeed(a.state.Playback.Speed / 1.5)
	case key.NameHome:
		a.state.Playback.Reset()
	case "R":
		a.camera.Reset()
	case "P":
		a.state.CyclePlanner()
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, color.NRGBA{R: 30, G: 30, B: 35, A: 255})

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.toolbar.Layout(gtx, a.theme)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return a.mapView.Layout(gtx, a.theme)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.timeline.Layout(gtx, a.theme)
		}),
	)
}
