// Package corlena is a deterministic, single-threaded 2D interaction and
// simulation engine for canvas-style editors.
//
// An [Engine] tracks positioned rectangular nodes, turns raw pointer samples
// into drag, tap, and double-tap gestures, integrates simple node physics
// (inertia, damping, grid snap, bounds), runs an independent particle system,
// records freehand draw paths, and resamples stored RGBA images. All inputs
// and outputs at the boundary are flat numeric buffers with fixed strides, so
// the engine can sit behind any transport.
//
// # Frame protocol
//
// A host drives the engine once per animation frame:
//
//	e := corlena.NewEngine(256)
//	e.UpsertNodes(nodes)      // [id, x, y, w, h, vx, vy, flags] * N
//	e.ApplyPointers(pointers) // [id, screenX, screenY, buttons] * P
//	f := e.ProcessFrame(dt)
//	paint(f.Transforms, f.Particles, f.DrawPaths)
//	dispatch(corlena.DecodeEvents(f.Events))
//
// Pointer samples name the node they target; hit testing belongs to the host.
// Screen coordinates are mapped to world space with the current [View].
//
// # Gestures
//
// A press on a node grabs it and emits [EventDragStart]; the node then follows
// the pointer at a constant offset. A release emits [EventDragEnd]. A short,
// still press is a tap: a second tap within [TapParams.DoubleTapGap] emits
// [EventDoubleTap] at once, otherwise an [EventTap] is emitted from
// ProcessFrame after [TapParams.SingleTapDelay], giving a second tap the
// chance to upgrade it.
//
// # Malformed input
//
// A buffer whose length is not a multiple of its stride is ignored in full.
// Setters report this with [ResultIgnoredMalformed] rather than applying a
// partial update.
//
// Subpackages: config loads engine settings with viper, host runs an engine
// inside an Ebitengine window, and the separate ecs module forwards gesture
// events into a Donburi world.
package corlena
