// Package interact handles user interactions like pan and zoom.
package interact

import (
	"gioui.org/io/pointer"
	"gioui.org/layout"
)

// Zoom is pixels per meter. Missions span kilometers, so the useful range
// runs from a whole region on screen down to individual waypoint spacing.
const (
	minZoom     = 0.01
	maxZoom     = 20.0
	defaultZoom = 0.2
)

// Camera manages the view transformation (pan and zoom) between world
// meters and screen pixels.
type Camera struct {
	OffsetX float32 // Pan offset in screen pixels
	OffsetY float32
	Zoom    float32 // Pixels per world meter

	// Home view restored by Reset, remembered by FitBounds
	homeX, homeY float32
	homeZoom     float32

	dragging bool
	lastX    float32
	lastY    float32
}

// NewCamera creates a camera at the default view.
func NewCamera() *Camera {
	return &Camera{
		OffsetX: 100, OffsetY: 100, Zoom: defaultZoom,
		homeX: 100, homeY: 100, homeZoom: defaultZoom,
	}
}

// Reset restores the last fitted view.
func (c *Camera) Reset() {
	c.OffsetX = c.homeX
	c.OffsetY = c.homeY
	c.Zoom = c.homeZoom
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(worldX, worldY float64) (screenX, screenY float32) {
	screenX = float32(worldX)*c.Zoom + c.OffsetX
	screenY = float32(worldY)*c.Zoom + c.OffsetY
	return
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(screenX, screenY float32) (worldX, worldY float64) {
	worldX = float64((screenX - c.OffsetX) / c.Zoom)
	worldY = float64((screenY - c.OffsetY) / c.Zoom)
	return
}

// HandleEvent processes pointer events for pan and zoom.
func (c *Camera) HandleEvent(gtx layout.Context, ev pointer.Event) {
	switch ev.Kind {
	case pointer.Press:
		// Any button pans; the map has nothing to select.
		c.dragging = ev.Buttons != 0
		c.lastX = ev.Position.X
		c.lastY = ev.Position.Y

	case pointer.Drag:
		if c.dragging {
			c.OffsetX += ev.Position.X - c.lastX
			c.OffsetY += ev.Position.Y - c.lastY
		}
		c.lastX = ev.Position.X
		c.lastY = ev.Position.Y

	case pointer.Release:
		c.dragging = false

	case pointer.Scroll:
		// Zoom centered on the cursor
		if ev.Scroll.Y == 0 {
			return
		}
		worldX, worldY := c.ScreenToWorld(ev.Position.X, ev.Position.Y)

		if ev.Scroll.Y > 0 {
			c.Zoom /= 1.1
		} else {
			c.Zoom *= 1.1
		}
		c.Zoom = clampZoom(c.Zoom)

		// Keep the world point under the cursor fixed
		newScreenX, newScreenY := c.WorldToScreen(worldX, worldY)
		c.OffsetX += ev.Position.X - newScreenX
		c.OffsetY += ev.Position.Y - newScreenY
	}
}

// CenterOn centers the camera on a world position.
func (c *Camera) CenterOn(worldX, worldY float64, screenWidth, screenHeight float32) {
	c.OffsetX = screenWidth/2 - float32(worldX)*c.Zoom
	c.OffsetY = screenHeight/2 - float32(worldY)*c.Zoom
}

// FitBounds frames the given world bounds and remembers the result as the
// home view for Reset.
func (c *Camera) FitBounds(minX, minY, maxX, maxY float64, screenWidth, screenHeight float32, margin float32) {
	worldW := maxX - minX
	worldH := maxY - minY
	if worldW <= 0 || worldH <= 0 {
		return
	}

	availW := screenWidth - 2*margin
	availH := screenHeight - 2*margin

	zoomX := availW / float32(worldW)
	zoomY := availH / float32(worldH)

	c.Zoom = zoomX
	if zoomY < zoomX {
		c.Zoom = zoomY
	}
	c.Zoom = clampZoom(c.Zoom)

	c.CenterOn((minX+maxX)/2, (minY+maxY)/2, screenWidth, screenHeight)

	c.homeX = c.OffsetX
	c.homeY = c.OffsetY
	c.homeZoom = c.Zoom
}

func clampZoom(z float32) float32 {
	if z < minZoom {
		return minZoom
	}
	if z > maxZoom {
		return maxZoom
	}
	return z
}
