// Package app wires the globe viewer, the overlay and the raylib window together.
package app

import (
	"monster-globe/internal/overlay"
)

// Globe is the part of globe.Viewer the router drives.
type Globe interface {
	PointerDown(x, y float32)
	PointerMove(x, y float32)
	PointerUp(x, y float32)
	Click(x, y float32)
	Wheel(deltaY float32)
}

// Router sends pointer input either to the mission panel or to the globe. While the panel is
// visible it receives every click and the globe sees nothing; a press that started on the globe
// stays with the globe until release.
type Router struct {
	globe     Globe
	overlay   *overlay.State
	layout    overlay.Layout
	wheelStep float32

	overlayPress bool
}

// NewRouter returns a router. wheelStep is the pixel delta one wheel notch stands for.
func NewRouter(g Globe, s *overlay.State, wheelStep float32) *Router {
	return &Router{globe: g, overlay: s, wheelStep: wheelStep}
}

// SetLayout updates the panel geometry used for overlay clicks.
func (r *Router) SetLayout(l overlay.Layout) {
	r.layout = l
}

// Press handles the primary button going down.
func (r *Router) Press(x, y float32) {
	if r.overlay.Visible() {
		r.overlayPress = true
		return
	}
	r.globe.PointerDown(x, y)
}

// Move handles pointer motion.
func (r *Router) Move(x, y float32) {
	if r.overlayPress {
		return
	}
	r.globe.PointerMove(x, y)
}

// Release handles the primary button going up: it ends the drag and, on the globe, is a click.
func (r *Router) Release(x, y float32) overlay.Action {
	if r.overlayPress {
		r.overlayPress = false
		return r.overlay.HandleClick(int(x), int(y), r.layout)
	}
	r.globe.PointerUp(x, y)
	r.globe.Click(x, y)
	return overlay.Pass
}

// Wheel zooms by notches (positive scrolls up, which brings the camera closer). Ignored while
// the panel is visible.
func (r *Router) Wheel(notches float32) {
	if notches == 0 || r.overlay.Visible() {
		return
	}
	r.globe.Wheel(-notches * r.wheelStep)
}

// Escape closes the panel.
func (r *Router) Escape() {
	r.overlay.Clear()
}
