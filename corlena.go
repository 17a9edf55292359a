package corlena

import "math"

// Vec2 is a 2D vector used for positions, offsets, sizes, and velocities
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Bounds is the movement region nodes are clamped into. Any edge may be
// infinite; an infinite far edge imposes no clamp on that axis.
type Bounds struct {
	Left, Top, Right, Bottom float64
}

// Unbounded is the default Bounds: origin at (0,0), no far edges.
var Unbounded = Bounds{Left: 0, Top: 0, Right: math.Inf(1), Bottom: math.Inf(1)}

// Finite reports whether both far edges are finite.
func (b Bounds) Finite() bool {
	return !math.IsInf(b.Right, 0) && !math.IsInf(b.Bottom, 0)
}

// clampAxis clamps pos so that [pos, pos+extent] stays in [near, far].
// When far is infinite the axis is left alone. A far edge closer than the
// extent pins pos to near.
func clampAxis(pos, extent, near, far float64) float64 {
	if math.IsInf(far, 0) || math.IsNaN(far) {
		return pos
	}
	var hi float64
	if math.IsInf(near, 0) {
		hi = far - extent
	} else {
		hi = near + math.Max(far-near-extent, 0)
		if pos < near {
			pos = near
		}
	}
	if pos > hi {
		pos = hi
	}
	return pos
}

// Result reports what a buffer-taking call did with its input.
type Result uint8

const (
	ResultApplied          Result = iota // input decoded and applied
	ResultEmpty                          // zero-length input, nothing to do
	ResultIgnoredMalformed               // length not a multiple of the stride; nothing applied
)

// String returns a short name for the result.
func (r Result) String() string {
	switch r {
	case ResultApplied:
		return "applied"
	case ResultEmpty:
		return "empty"
	case ResultIgnoredMalformed:
		return "ignored-malformed-input"
	default:
		return "unknown"
	}
}

// EventType identifies a gesture notification. Values match the wire codes
// written to the events buffer.
type EventType int32

const (
	EventDragStart EventType = 1  // pointer pressed on a node
	EventDragEnd   EventType = 2  // pointer released after a press
	EventTap       EventType = 10 // single tap, emitted after the single-tap delay
	EventDoubleTap EventType = 11 // second tap within the double-tap gap
)

// String returns the event name used in logs.
func (t EventType) String() string {
	switch t {
	case EventDragStart:
		return "drag_start"
	case EventDragEnd:
		return "drag_end"
	case EventTap:
		return "tap"
	case EventDoubleTap:
		return "double_tap"
	default:
		return "unknown"
	}
}

// Event is a single gesture notification. A is the node id; B is the tap
// count for tap events and zero otherwise.
type Event struct {
	Type EventType
	A, B int32
}

// finiteOr returns v unless it is NaN, in which case it returns def.
func finiteOr(v, def float64) float64 {
	if math.IsNaN(v) {
		return def
	}
	return v
}

// clamp01 clamps v into [0, 1]. NaN maps to def.
func clamp01(v, def float64) float64 {
	if math.IsNaN(v) {
		return def
	}
	return math.Max(0, math.Min(1, v))
}
