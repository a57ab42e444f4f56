package animated

import "time"

// Driver advances a Value over time. A Driver is owned by the Value it
// animates for the duration of one run.
//
// onEnd is invoked exactly once per Start: with Finished=true on natural
// completion, or Finished=false when Stop (or a new Start) preempts it.
// Stop is synchronous: no tick runs after it returns and onEnd has already
// fired.
type Driver interface {
	Start(from float64, onUpdate func(float64), onEnd func(Result), previous Driver, value *Value)
	Stop()
	// IsInteraction reports whether the run holds an interaction handle.
	IsInteraction() bool
	// Kind names the driver for observers and logs ("timing", "spring",
	// "decay").
	Kind() string
}

// driverBase holds the bookkeeping shared by the concrete drivers: the
// debounced end callback, the pending frame and the native run.
type driverBase struct {
	kind        string
	interaction bool
	useNative   bool
	delay       time.Duration
	frames      FrameSource

	active   bool
	onUpdate func(float64)
	onEnd    func(Result)

	frameID  FrameID
	hasFrame bool

	nativeID int // 0 when running locally
}

func newDriverBase(kind string, disableInteraction, useNative bool, delay time.Duration, fs FrameSource) driverBase {
	return driverBase{
		kind:        kind,
		interaction: !disableInteraction,
		useNative:   useNative,
		delay:       delay,
		frames:      fs,
	}
}

// Kind returns the driver name.
func (d *driverBase) Kind() string { return d.kind }

// IsInteraction reports whether the run holds an interaction handle.
func (d *driverBase) IsInteraction() bool { return d.interaction }

// IsActive reports whether the driver is running.
func (d *driverBase) IsActive() bool { return d.active }

// begin resets the run state. A run still in flight is ended with
// Finished=false first so each Start gets exactly one onEnd.
func (d *driverBase) begin(onUpdate func(float64), onEnd func(Result)) {
	if d.active {
		d.end(Result{Finished: false})
	}
	d.active = true
	d.onUpdate = onUpdate
	d.onEnd = onEnd
}

// end fires onEnd at most once per run and releases the pending frame.
func (d *driverBase) end(res Result) {
	d.active = false
	d.cancelFrame()
	cb := d.onEnd
	d.onEnd = nil
	if cb != nil {
		cb(res)
	}
}

func (d *driverBase) source() FrameSource {
	return frameSourceOr(d.frames)
}

func (d *driverBase) requestFrame(fn func(now time.Duration)) {
	d.frameID = d.source().RequestFrame(fn)
	d.hasFrame = true
}

func (d *driverBase) cancelFrame() {
	if !d.hasFrame {
		return
	}
	d.hasFrame = false
	d.source().CancelFrame(d.frameID)
}

// afterDelay runs start once the configured delay has elapsed, waiting on
// frames. Without delay start runs immediately.
func (d *driverBase) afterDelay(start func()) {
	if d.delay <= 0 {
		start()
		return
	}
	due := d.source().Now() + d.delay
	var wait func(now time.Duration)
	wait = func(now time.Duration) {
		d.hasFrame = false
		if !d.active {
			return
		}
		if now < due {
			d.requestFrame(wait)
			return
		}
		start()
	}
	d.requestFrame(wait)
}

// startNative offloads value and runs the animation on the host. It
// reports false when no native API is installed; the caller then runs
// locally.
func (d *driverBase) startNative(value *Value, config map[string]any) bool {
	api := nativeAPI()
	if api == nil || value == nil || !value.makeNative() {
		debugf("native driver requested for %s without a native API, running locally", d.kind)
		return false
	}
	d.nativeID = nextNativeAnimationID()
	id := d.nativeID
	api.StartAnimatingNode(id, value.tag, config, func(res Result) {
		if d.nativeID != id {
			return
		}
		d.nativeID = 0
		d.end(res)
	})
	return true
}

// Stop ends the run with Finished=false. Stopping an idle driver is a
// no-op.
func (d *driverBase) Stop() {
	if !d.active {
		return
	}
	if id := d.nativeID; id != 0 {
		d.nativeID = 0
		if api := nativeAPI(); api != nil {
			api.StopAnimation(id)
		}
	}
	d.end(Result{Finished: false})
}
