package corlena

import (
	"math"
	"time"
)

// EventSink receives every gesture event as it is queued. Set one with
// Engine.SetEventSink to forward events to another system.
type EventSink interface {
	EmitEvent(event Event)
}

// Frame holds the output buffers of one ProcessFrame call. The slices are
// owned by the engine and are only valid until the next ProcessFrame.
type Frame struct {
	Transforms []float32 // TransformStride per node, arena order
	Particles  []float32 // ParticleOutStride per live particle
	DrawPaths  []float32 // variable length, ascending path id
	Events     []int32   // EventStride per event, in emission order
}

const defaultNodeCapacity = 256

// Engine is a single simulation: nodes, gestures, physics, particles, draw
// paths, and stored images. It is not safe for concurrent use; callers
// serialize access. The intended per-frame protocol is: UpsertNodes, then
// ApplyPointers, then ProcessFrame, then read the returned Frame.
type Engine struct {
	nodes       registry
	view        View
	viewTween   *viewAnim
	constraints Constraints
	tap         TapParams
	particles   particleSystem
	paths       map[int32]*DrawPath
	images      map[int32]*storedImage
	clock       float64
	capacity    int

	events []Event
	sink   EventSink
	debug  bool

	// Pending input
	injectQueue []syntheticSample
	script      *Script

	// Scratch buffers reused across calls
	nodeBuf    []NodeRecord
	pointerBuf []PointerSample
	spawnBuf   []ParticleRecord
	pathIDs    []int32

	// Output buffers reused across frames
	frame Frame
}

// NewEngine creates an engine with room for capacity nodes. A non-positive
// capacity uses a default.
func NewEngine(capacity int) *Engine {
	if capacity <= 0 {
		capacity = defaultNodeCapacity
	}
	e := &Engine{
		nodes:    newRegistry(capacity),
		paths:    make(map[int32]*DrawPath),
		images:   make(map[int32]*storedImage),
		capacity: capacity,
	}
	e.restoreDefaults()
	return e
}

// restoreDefaults resets every parameter to its default value.
func (e *Engine) restoreDefaults() {
	e.view = DefaultView
	e.viewTween = nil
	e.constraints = DefaultConstraints
	e.tap = DefaultTapParams
	e.particles.params = DefaultParticleParams
}

// Reset clears nodes, particles, paths, images, queued input and events,
// rewinds the clock to zero, and restores default parameters. The event sink
// and debug mode are kept.
func (e *Engine) Reset() {
	e.nodes.reset()
	e.particles.reset()
	clear(e.paths)
	clear(e.images)
	e.events = e.events[:0]
	e.injectQueue = e.injectQueue[:0]
	e.script = nil
	e.clock = 0
	e.restoreDefaults()
}

// Clock returns the simulation time in seconds.
func (e *Engine) Clock() float64 {
	return e.clock
}

// SetEventSink sets the optional event forwarder. Pass nil to remove it.
func (e *Engine) SetEventSink(sink EventSink) {
	e.sink = sink
}

// SetDebugMode enables or disables debug mode. When enabled, per-frame
// timing stats and ignored-input warnings are written to stderr.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
}

// QueuedEvents returns the number of events waiting for the next frame.
func (e *Engine) QueuedEvents() int {
	return len(e.events)
}

// emit queues an event and forwards it to the sink.
func (e *Engine) emit(ev Event) {
	e.events = append(e.events, ev)
	if e.sink != nil {
		e.sink.EmitEvent(ev)
	}
}

// sanitizeDT maps NaN, negative, and infinite steps to zero.
func sanitizeDT(dt float64) float64 {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return 0
	}
	return dt
}

// ProcessFrame advances the simulation by dt seconds and returns the output
// buffers. The order is fixed: view animation, pending input, node physics,
// particles, due taps, serialization, then the event queue is drained.
func (e *Engine) ProcessFrame(dt float64) Frame {
	dt = sanitizeDT(dt)

	var stats debugStats
	var t0 time.Time
	if e.debug {
		t0 = time.Now()
	}

	e.advanceView(dt)
	if e.script != nil {
		e.script.step(e)
	}
	e.applyPendingInput()

	if e.debug {
		stats.inputTime = time.Since(t0)
		t0 = time.Now()
	}

	e.clock += dt
	e.integrateNodes(dt)

	if e.debug {
		stats.physicsTime = time.Since(t0)
		t0 = time.Now()
	}

	e.particles.update(dt, e.constraints.Bounds)

	if e.debug {
		stats.particleTime = time.Since(t0)
		t0 = time.Now()
	}

	e.emitDueTaps()

	f := &e.frame
	f.Transforms = e.writeTransforms(f.Transforms[:0])
	f.Particles = e.writeParticles(f.Particles[:0])
	f.DrawPaths = e.writePaths(f.DrawPaths[:0])
	f.Events = e.writeEvents(f.Events[:0])
	e.events = e.events[:0]

	if e.debug {
		stats.serializeTime = time.Since(t0)
		stats.nodeCount = len(e.nodes.nodes)
		stats.particleCount = len(e.particles.particles)
		stats.pathCount = len(e.paths)
		stats.eventCount = len(f.Events) / EventStride
		e.debugLog(stats)
	}
	return *f
}

// writeTransforms serializes nodes as id, x, y, angle, scaleX, scaleY,
// reserved. Scale carries the view scale.
func (e *Engine) writeTransforms(out []float32) []float32 {
	s := float32(math.Max(e.view.Scale, minViewScale))
	for i := range e.nodes.nodes {
		n := &e.nodes.nodes[i]
		out = append(out, float32(n.ID), float32(n.X), float32(n.Y), 0, s, s, 0)
	}
	return out
}

func (e *Engine) writeParticles(out []float32) []float32 {
	for i := range e.particles.particles {
		p := &e.particles.particles[i]
		out = append(out, float32(p.x), float32(p.y), float32(p.vx), float32(p.vy),
			float32(p.radius), float32(p.life))
	}
	return out
}

func (e *Engine) writeEvents(out []int32) []int32 {
	for _, ev := range e.events {
		out = append(out, int32(ev.Type), ev.A, ev.B, 0)
	}
	return out
}
