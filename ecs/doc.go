// Package ecs connects animated props and native offload to a [Donburi]
// world.
//
// [NewPropsSink] is an animated.HostSink that writes each flushed props map
// into the [Props] component of the entity passed as host reference, and
// publishes a [PropsApplied] event for systems that react to changes:
//
//	sink := ecs.NewPropsSink(world)
//	entity := world.Create(ecs.Props)
//	animated.NewProps(map[string]any{"opacity": fade}, sink, entity)
//
// [NewBridge] is an animated.NativeAPI that mirrors offloaded nodes as
// entities carrying a [NativeNode] component. Host-side value changes are
// published with [Bridge.Emit] and delivered to the graph when the world's
// events are processed.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
