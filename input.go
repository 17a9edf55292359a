package corlena

import "math"

// TapParams are the thresholds that classify a press/release pair as a tap
// and pair taps into double taps. Durations are in seconds, MoveTolerance in
// world units.
type TapParams struct {
	MaxDuration    float64 // longest press that still counts as a tap
	MoveTolerance  float64 // largest pointer travel during the press
	DoubleTapGap   float64 // longest gap between two taps that pairs them
	SingleTapDelay float64 // how long a single tap waits for a second one
}

// DefaultTapParams are the tap thresholds of a fresh engine.
var DefaultTapParams = TapParams{
	MaxDuration:    0.28,
	MoveTolerance:  6,
	DoubleTapGap:   0.3,
	SingleTapDelay: 0.3,
}

// SetTapParams decodes a tap parameter buffer (stride TapParamsStride). When
// the buffer holds several records the last one wins. Negative values clamp
// to zero; NaN keeps the default.
func (e *Engine) SetTapParams(buf []float32) Result {
	res := checkStride(len(buf), TapParamsStride)
	if res != ResultApplied {
		e.noteIgnored("tap params", res, len(buf))
		return res
	}
	r := lastRecord(buf, TapParamsStride)
	e.tap = TapParams{
		MaxDuration:    math.Max(0, finiteOr(r[0], DefaultTapParams.MaxDuration)),
		MoveTolerance:  math.Max(0, finiteOr(r[1], DefaultTapParams.MoveTolerance)),
		DoubleTapGap:   math.Max(0, finiteOr(r[2], DefaultTapParams.DoubleTapGap)),
		SingleTapDelay: math.Max(0, finiteOr(r[3], DefaultTapParams.SingleTapDelay)),
	}
	return ResultApplied
}

// TapParams returns the current tap thresholds.
func (e *Engine) TapParams() TapParams {
	return e.tap
}

// ApplyPointers decodes a stride-4 pointer buffer [id, sx, sy, buttons] and
// runs each sample through the gesture state machine in order.
func (e *Engine) ApplyPointers(buf []float32) Result {
	return e.applyPointerBuffer(buf, PointerStride)
}

// ApplyPressurePointers is ApplyPointers for stride-5 buffers
// [id, sx, sy, pressure, buttons].
func (e *Engine) ApplyPressurePointers(buf []float32) Result {
	return e.applyPointerBuffer(buf, PressurePointerStride)
}

func (e *Engine) applyPointerBuffer(buf []float32, stride int) Result {
	res := checkStride(len(buf), stride)
	if res != ResultApplied {
		e.noteIgnored("pointers", res, len(buf))
		return res
	}
	e.pointerBuf = decodePointers(buf, stride, e.pointerBuf[:0])
	for i := range e.pointerBuf {
		e.applySample(e.pointerBuf[i])
	}
	return ResultApplied
}

// applySample runs the per-node Idle/Grabbing state machine for one sample.
// Samples for unknown ids are ignored.
func (e *Engine) applySample(s PointerSample) {
	n := e.nodes.get(s.ID)
	if n == nil {
		return
	}
	wx, wy := e.view.ScreenToWorld(s.ScreenX, s.ScreenY)
	now := e.clock

	if s.Buttons > 0 {
		if !n.grabbing {
			// Press: capture the grab offset and start the tap timers.
			n.grabbing = true
			n.grabDX = n.X - wx
			n.grabDY = n.Y - wy
			n.pressTime = now
			n.pressX = wx
			n.pressY = wy
			n.maxDisplace = 0
			e.emit(Event{Type: EventDragStart, A: n.ID})
		}
		n.X = wx + n.grabDX
		n.Y = wy + n.grabDY
		n.VX, n.VY = 0, 0
		if d := math.Hypot(wx-n.pressX, wy-n.pressY); d > n.maxDisplace {
			n.maxDisplace = d
		}
		return
	}

	if !n.grabbing {
		// Hover sample on an idle node.
		return
	}
	n.grabbing = false
	e.emit(Event{Type: EventDragEnd, A: n.ID})
	e.classifyRelease(n, now)
}

// classifyRelease decides whether a finished press was a tap and, if so,
// either pairs it with the previous tap or schedules a single tap.
func (e *Engine) classifyRelease(n *Node, now float64) {
	if now-n.pressTime > e.tap.MaxDuration || n.maxDisplace > e.tap.MoveTolerance {
		return
	}
	if now-n.lastTapTime <= e.tap.DoubleTapGap {
		n.pending = pendingTap{}
		n.lastTapTime = noTap
		e.emit(Event{Type: EventDoubleTap, A: n.ID, B: 2})
		return
	}
	n.pending = pendingTap{active: true, readyAt: now + e.tap.SingleTapDelay}
	n.lastTapTime = now
}

// emitDueTaps emits every pending single tap whose time has come.
func (e *Engine) emitDueTaps() {
	for i := range e.nodes.nodes {
		n := &e.nodes.nodes[i]
		if n.pending.active && n.pending.readyAt <= e.clock {
			n.pending = pendingTap{}
			e.emit(Event{Type: EventTap, A: n.ID, B: 1})
		}
	}
}
