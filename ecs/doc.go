// Package ecs provides ECS adapters for corlena engines.
//
// [NewDonburiSink] bridges engine gesture events (drag start/end, tap,
// double tap) into a [Donburi] world as typed events. Subscribe to
// [GestureEventType] in your ECS systems to receive them.
//
// [Mirror] keeps one Donburi entity per engine node, carrying a
// [NodeTransform] component refreshed from each frame's transforms buffer.
//
// Usage:
//
//	engine.SetEventSink(ecs.NewDonburiSink(world))
//	mirror := ecs.NewMirror(world)
//	...
//	frame := engine.ProcessFrame(dt)
//	mirror.Sync(frame.Transforms)
//	ecs.GestureEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
