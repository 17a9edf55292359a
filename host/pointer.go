package host

import (
	"github.com/phanxgames/corlena"
)

// maxPointers is the number of pointer slots: slot 0 is the mouse, 1-9 are
// touches.
const maxPointers = 10

// pointerState is the host-side capture state of one pointer slot.
type pointerState struct {
	down    bool
	node    int32 // captured node id, valid while down and !stroke
	stroke  int32 // draw path id, valid while down and drawing
	drawing bool
	lastX   float64
	lastY   float64
}

// pointerTracker turns raw pressed/released pointer positions into engine
// pointer samples. A press on a node captures it until release; a press on
// empty space records a draw path instead.
type pointerTracker struct {
	pointers   [maxPointers]pointerState
	nextStroke int32
	strokeRGBA uint32
	strokeW    float64
}

func newPointerTracker() *pointerTracker {
	return &pointerTracker{nextStroke: 1, strokeRGBA: 0xf2e9d8ff, strokeW: 3}
}

// track feeds one pointer slot's state for this tick and appends any engine
// pointer sample to buf.
func (pt *pointerTracker) track(e *corlena.Engine, transforms []float32, buf []float32, slot int, sx, sy float64, pressed bool) []float32 {
	ps := &pt.pointers[slot]
	wx, wy := e.View().ScreenToWorld(sx, sy)

	switch {
	case pressed && !ps.down:
		ps.down = true
		if id, ok := HitTest(e, transforms, wx, wy); ok {
			ps.node = id
			ps.drawing = false
			buf = corlena.EncodePointer(buf, id, sx, sy, 1)
		} else {
			ps.drawing = true
			ps.stroke = pt.nextStroke
			pt.nextStroke++
			e.StartPath(ps.stroke, wx, wy, 1, pt.strokeRGBA, pt.strokeW)
		}
	case pressed:
		if ps.drawing {
			if sx != ps.lastX || sy != ps.lastY {
				e.AddPoint(ps.stroke, wx, wy, 1)
			}
		} else {
			buf = corlena.EncodePointer(buf, ps.node, sx, sy, 1)
		}
	case ps.down:
		ps.down = false
		if ps.drawing {
			e.FinishPath(ps.stroke, false)
			ps.drawing = false
		} else {
			buf = corlena.EncodePointer(buf, ps.node, sx, sy, 0)
		}
	}
	ps.lastX, ps.lastY = sx, sy
	return buf
}

// release ends whatever slot is doing at its last known position.
func (pt *pointerTracker) release(e *corlena.Engine, buf []float32, slot int) []float32 {
	ps := &pt.pointers[slot]
	if !ps.down {
		return buf
	}
	return pt.track(e, nil, buf, slot, ps.lastX, ps.lastY, false)
}

// HitTest returns the topmost node under world point (wx, wy) using the
// positions in a transforms buffer and the sizes of the engine's nodes. Nodes
// later in the buffer are drawn on top, so it is searched back to front.
func HitTest(e *corlena.Engine, transforms []float32, wx, wy float64) (int32, bool) {
	for i := len(transforms) - corlena.TransformStride; i >= 0; i -= corlena.TransformStride {
		id := int32(transforms[i])
		n, ok := e.Node(id)
		if !ok {
			continue
		}
		x, y := float64(transforms[i+1]), float64(transforms[i+2])
		if wx >= x && wx < x+n.W && wy >= y && wy < y+n.H {
			return id, true
		}
	}
	return 0, false
}
