package animated

import "strconv"

// listenerIDCounter feeds listener IDs. IDs are unique across all values.
var listenerIDCounter uint64

func nextListenerID() string {
	listenerIDCounter++
	return strconv.FormatUint(listenerIDCounter, 10)
}

type listener struct {
	id      string
	fn      func(float64)
	removed bool
}

// run is one Animate call: the driver, the caller's callback and the
// interaction handle held for its lifetime.
type run struct {
	driver    Driver
	cb        func(Result)
	registry  InteractionRegistry
	handle    Handle
	hasHandle bool
	silent    bool // superseded by a newer Animate; cb is not invoked
}

// Value is the standard leaf for driving animations. One Value can drive
// several properties in sync, but it is driven by one mechanism at a time:
// starting a driver, installing tracking or calling SetValue stops the
// previous one.
//
// The resolved value is value+offset. Offsets support gesture hand-off:
// SetOffset at gesture start, then FlattenOffset when it ends.
type Value struct {
	graphNode

	value         float64
	offset        float64
	startingValue float64

	run       *run
	tracking  *Tracking
	listeners []*listener

	nativeCancel func()
}

// NewValue creates a value node holding v.
func NewValue(v float64) *Value {
	n := &Value{value: v, startingValue: v}
	n.init(n, KindValue)
	return n
}

// Float returns the resolved value (value + offset).
func (v *Value) Float() float64 {
	return v.value + v.offset
}

// Resolve returns the resolved value as a float64.
func (v *Value) Resolve() any {
	return v.Float()
}

// Base returns the value without its offset.
func (v *Value) Base() float64 { return v.value }

// Offset returns the additive offset.
func (v *Value) Offset() float64 { return v.offset }

// IsAnimating reports whether a driver is currently running on the value.
func (v *Value) IsAnimating() bool { return v.run != nil }

// SetValue stops any running driver and sets the base value. The offset is
// not touched. Bound props are flushed unless the value is offloaded, in
// which case the host flushes.
func (v *Value) SetValue(x float64) {
	if v.detached {
		debugCheckDetached(&v.graphNode, "SetValue")
		return
	}
	v.stopRun()
	switch v.mode {
	case modeOffloaded:
		v.updateValue(x, false)
		if api := nativeAPI(); api != nil {
			api.SetAnimatedNodeValue(v.tag, x)
		}
	default:
		v.updateValue(x, true)
	}
}

// SetOffset sets an offset applied on top of the base value, whether the
// base comes from SetValue, a driver or an event.
func (v *Value) SetOffset(o float64) {
	if v.detached {
		debugCheckDetached(&v.graphNode, "SetOffset")
		return
	}
	v.offset = o
	if v.mode == modeOffloaded {
		if api := nativeAPI(); api != nil {
			api.SetAnimatedNodeOffset(v.tag, o)
		}
	}
}

// FlattenOffset merges the offset into the base value and resets the offset
// to zero. The resolved value is unchanged.
func (v *Value) FlattenOffset() {
	if v.detached {
		debugCheckDetached(&v.graphNode, "FlattenOffset")
		return
	}
	v.value += v.offset
	v.offset = 0
	if v.mode == modeOffloaded {
		if api := nativeAPI(); api != nil {
			api.FlattenAnimatedNodeOffset(v.tag)
		}
	}
}

// ExtractOffset moves the base value into the offset and resets the base
// to zero. The resolved value is unchanged.
func (v *Value) ExtractOffset() {
	if v.detached {
		debugCheckDetached(&v.graphNode, "ExtractOffset")
		return
	}
	v.offset += v.value
	v.value = 0
	if v.mode == modeOffloaded {
		if api := nativeAPI(); api != nil {
			api.ExtractAnimatedNodeOffset(v.tag)
		}
	}
}

// AddListener registers fn to receive the resolved value on every update,
// flushed or not. Listeners run in registration order. Returns the ID to
// pass to RemoveListener.
func (v *Value) AddListener(fn func(float64)) string {
	id := nextListenerID()
	v.listeners = append(v.listeners, &listener{id: id, fn: fn})
	if v.mode == modeOffloaded {
		v.startListeningNative()
	}
	return id
}

// RemoveListener unregisters the listener with the given ID. Unknown IDs
// are ignored.
func (v *Value) RemoveListener(id string) {
	for i, l := range v.listeners {
		if l.id != id {
			continue
		}
		l.removed = true
		copy(v.listeners[i:], v.listeners[i+1:])
		v.listeners[len(v.listeners)-1] = nil
		v.listeners = v.listeners[:len(v.listeners)-1]
		break
	}
	if v.mode == modeOffloaded && len(v.listeners) == 0 {
		v.stopListeningNative()
	}
}

// RemoveAllListeners unregisters every listener.
func (v *Value) RemoveAllListeners() {
	for _, l := range v.listeners {
		l.removed = true
	}
	v.listeners = nil
	if v.mode == modeOffloaded {
		v.stopListeningNative()
	}
}

// HasListeners reports whether at least one listener is registered.
func (v *Value) HasListeners() bool {
	return len(v.listeners) > 0
}

// StopAnimation stops tracking and any running driver, then calls cb with
// the final resolved value. Safe to call when nothing is running.
func (v *Value) StopAnimation(cb func(float64)) {
	v.StopTracking()
	v.stopRun()
	if cb != nil {
		cb(v.Float())
	}
}

// ResetAnimation stops like StopAnimation, then restores the base value
// the node was created with. The offset is untouched.
func (v *Value) ResetAnimation(cb func(float64)) {
	v.StopAnimation(cb)
	v.value = v.startingValue
	if v.mode == modeOffloaded {
		if api := nativeAPI(); api != nil {
			api.SetAnimatedNodeValue(v.tag, v.startingValue)
		}
	}
}

// Animate starts d on the value. A driver already running is stopped and
// its caller is not notified; cb receives the result of d. While d runs an
// interaction handle is held if d is interaction-sensitive.
func (v *Value) Animate(d Driver, cb func(Result)) {
	if d == nil {
		panic("animated: Animate with nil driver")
	}
	if v.detached {
		debugCheckDetached(&v.graphNode, "Animate")
		if cb != nil {
			cb(Result{Finished: false})
		}
		return
	}

	r := &run{driver: d, cb: cb}
	if d.IsInteraction() {
		r.registry = interactions
		r.handle = r.registry.CreateInteractionHandle()
		r.hasHandle = true
	}

	var previous Driver
	if prev := v.run; prev != nil {
		previous = prev.driver
		prev.silent = true
		v.run = nil
		prev.driver.Stop()
	}

	v.run = r
	kind := d.Kind()
	observer.DriverStarted(kind)
	d.Start(v.value, func(x float64) {
		if v.run != r {
			return
		}
		if v.detached {
			debugCheckDetached(&v.graphNode, "driver tick")
			return
		}
		v.updateValue(x, true)
	}, func(res Result) {
		if v.run == r {
			v.run = nil
		}
		if r.hasHandle {
			r.registry.ClearInteractionHandle(r.handle)
		}
		observer.DriverEnded(kind, res.Finished)
		if !r.silent && r.cb != nil {
			r.cb(res)
		}
	}, previous, v)
}

// Track installs t as the value's tracking source, detaching the previous
// one, and starts the first run towards the followed node.
func (v *Value) Track(t *Tracking) {
	v.StopTracking()
	v.tracking = t
	if t != nil {
		t.update()
	}
}

// StopTracking detaches the current tracking source, if any.
func (v *Value) StopTracking() {
	if v.tracking == nil {
		return
	}
	t := v.tracking
	v.tracking = nil
	t.Detach()
}

// Interpolate builds an interpolation node driven by this value.
func (v *Value) Interpolate(cfg InterpolationConfig) (*Interpolation, error) {
	return NewInterpolation(v, cfg)
}

// Detach stops any driver and tracking, then releases the node. A detached
// value ignores mutations and in-flight driver ticks until it is attached
// again.
func (v *Value) Detach() {
	if v.detached {
		return
	}
	v.StopAnimation(nil)
	v.stopListeningNative()
	v.graphNode.Detach()
}

// lastChildRemoved stops the value when nothing reads it any more. The
// value itself stays usable.
func (v *Value) lastChildRemoved() {
	v.StopAnimation(nil)
}

func (v *Value) nativeConfig() map[string]any {
	return map[string]any{
		"type":   KindValue.String(),
		"value":  v.value,
		"offset": v.offset,
	}
}

// stopRun stops the active driver; its caller is notified with
// Finished=false.
func (v *Value) stopRun() {
	r := v.run
	if r == nil {
		return
	}
	v.run = nil
	r.driver.Stop()
}

// updateValue writes the base value, flushes bound leaves when asked and
// then notifies listeners.
func (v *Value) updateValue(x float64, flush bool) {
	v.value = x
	if flush {
		flushFrom(v)
	}
	v.notify()
}

func (v *Value) notify() {
	if len(v.listeners) == 0 {
		return
	}
	resolved := v.Float()
	snapshot := make([]*listener, len(v.listeners))
	copy(snapshot, v.listeners)
	for _, l := range snapshot {
		if !l.removed {
			l.fn(resolved)
		}
	}
}

// HandleNativeEvent applies a host value event addressed to this node.
// Native updates never flush: the host already applied them.
func (v *Value) HandleNativeEvent(e NativeValueEvent) {
	if v.mode != modeOffloaded || e.Tag != v.tag {
		return
	}
	if v.detached {
		debugCheckDetached(&v.graphNode, "native event")
		return
	}
	v.updateValue(e.Value, false)
}

func (v *Value) startListeningNative() {
	if v.nativeCancel != nil {
		return
	}
	api := nativeAPI()
	if api == nil {
		return
	}
	api.StartListeningToAnimatedNodeValue(v.tag)
	v.nativeCancel = api.OnValueUpdate(v.HandleNativeEvent)
}

func (v *Value) stopListeningNative() {
	if v.nativeCancel == nil {
		return
	}
	v.nativeCancel()
	v.nativeCancel = nil
	if api := nativeAPI(); api != nil {
		api.StopListeningToAnimatedNodeValue(v.tag)
	}
}
