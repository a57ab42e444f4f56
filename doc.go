// Package animated is a declarative animation graph: values, derived
// nodes and host-bound props kept consistent under partial updates, with
// drivers that advance values over time on an injected frame source.
//
// Hosts render with [Ebitengine] through the ebitenhost adapter, or with
// [Donburi] entities through the ecs module. The core only talks to the
// host through [HostSink], [FrameSource], [InteractionRegistry] and the
// optional [NativeAPI].
//
// # Quick start
//
//	opacity := animated.NewValue(0)
//	props := animated.NewProps(map[string]any{
//		"style": map[string]any{"opacity": opacity},
//	}, sink, view)
//
//	opacity.Animate(animated.NewTiming(animated.TimingConfig{
//		ToValue:  1,
//		Duration: 300 * time.Millisecond,
//	}), nil)
//
//	loop := animated.Frames().(*animated.FrameLoop)
//	for loop.Pending() > 0 {
//		loop.Step() // sink.ApplyProps(view, {"style": {"opacity": ...}})
//	}
//
// # Graph
//
// A [Value] holds a number plus an additive offset. Derived nodes
// ([Interpolation], [Add], [Multiply], [NewDiffClamp], ...) read their
// inputs on demand. [Style] and [Transform] aggregate nodes into
// structured values; [Props] binds them to a host target.
//
// When a Value changes with flushing enabled, every [Props] (and
// [Tracking]) reachable from it is recomputed exactly once and pushed to
// its sink. Listeners added with [Value.AddListener] are notified after
// the flush.
//
// # Drivers
//
// [NewTiming] eases with [gween] functions, [NewSpring] runs a damped
// spring, [NewDecay] coasts with decaying velocity. [Sequence],
// [Parallel], [Stagger], [Delay] and [Loop] compose them.
//
// # Process-wide state
//
// The default frame source, interaction registry, native API, observer and
// ID counters are package state. Tests call [ResetState] between cases.
// The graph is single-threaded: all calls must come from the goroutine
// that advances the frame source.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package animated
