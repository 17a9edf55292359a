package corlena

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// minViewScale floors scale and pixel ratio during conversion so a degenerate
// view never divides by zero.
const minViewScale = 1e-4

// View maps screen pixels to world coordinates:
//
//	world = (screen / PixelRatio - Pan) / Scale
type View struct {
	Scale      float64
	PanX, PanY float64
	PixelRatio float64
}

// DefaultView is the identity view.
var DefaultView = View{Scale: 1, PixelRatio: 1}

func (v View) safeScale() float64 {
	if !(v.Scale >= minViewScale) {
		return minViewScale
	}
	return v.Scale
}

func (v View) safeRatio() float64 {
	if !(v.PixelRatio >= minViewScale) {
		return minViewScale
	}
	return v.PixelRatio
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (v View) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	s, pr := v.safeScale(), v.safeRatio()
	wx = (sx/pr - v.PanX) / s
	wy = (sy/pr - v.PanY) / s
	return
}

// WorldToScreen converts world coordinates to screen coordinates.
func (v View) WorldToScreen(wx, wy float64) (sx, sy float64) {
	s, pr := v.safeScale(), v.safeRatio()
	sx = (wx*s + v.PanX) * pr
	sy = (wy*s + v.PanY) * pr
	return
}

// sanitizeView replaces non-positive or NaN scale and pixel ratio with 1 and
// NaN pans with 0.
func sanitizeView(v View) View {
	if !(v.Scale > 0) || math.IsInf(v.Scale, 0) {
		v.Scale = 1
	}
	if !(v.PixelRatio > 0) || math.IsInf(v.PixelRatio, 0) {
		v.PixelRatio = 1
	}
	v.PanX = finiteOr(v.PanX, 0)
	v.PanY = finiteOr(v.PanY, 0)
	return v
}

// viewAnim holds the active view tweens.
type viewAnim struct {
	scale, panX, panY *gween.Tween
	done              [3]bool
}

// SetView sets the view transform immediately, cancelling any view animation.
func (e *Engine) SetView(scale, panX, panY, pixelRatio float64) {
	e.viewTween = nil
	e.view = sanitizeView(View{Scale: scale, PanX: panX, PanY: panY, PixelRatio: pixelRatio})
}

// View returns the current view transform.
func (e *Engine) View() View {
	return e.view
}

// AnimateView tweens scale and pan to the given values over duration
// seconds. The tween advances at the start of each ProcessFrame, before
// pending input is applied. A nil easeFn uses linear easing.
func (e *Engine) AnimateView(scale, panX, panY float64, duration float32, easeFn ease.TweenFunc) {
	target := sanitizeView(View{Scale: scale, PanX: panX, PanY: panY, PixelRatio: e.view.PixelRatio})
	if duration <= 0 {
		e.viewTween = nil
		e.view = target
		return
	}
	if easeFn == nil {
		easeFn = ease.Linear
	}
	e.viewTween = &viewAnim{
		scale: gween.New(float32(e.view.Scale), float32(target.Scale), duration, easeFn),
		panX:  gween.New(float32(e.view.PanX), float32(target.PanX), duration, easeFn),
		panY:  gween.New(float32(e.view.PanY), float32(target.PanY), duration, easeFn),
	}
}

// ViewAnimating reports whether a view animation is in progress.
func (e *Engine) ViewAnimating() bool {
	return e.viewTween != nil
}

// advanceView steps the view animation by dt seconds.
func (e *Engine) advanceView(dt float64) {
	a := e.viewTween
	if a == nil {
		return
	}
	step := float32(dt)
	if !a.done[0] {
		val, done := a.scale.Update(step)
		e.view.Scale = float64(val)
		a.done[0] = done
	}
	if !a.done[1] {
		val, done := a.panX.Update(step)
		e.view.PanX = float64(val)
		a.done[1] = done
	}
	if !a.done[2] {
		val, done := a.panY.Update(step)
		e.view.PanY = float64(val)
		a.done[2] = done
	}
	e.view = sanitizeView(e.view)
	if a.done[0] && a.done[1] && a.done[2] {
		e.viewTween = nil
	}
}
