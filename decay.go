package animated

import (
	"math"
	"time"
)

// DecayConfig configures a DecayDriver.
type DecayConfig struct {
	// Velocity is the initial velocity in units per millisecond.
	Velocity float64
	// Deceleration is the per-millisecond velocity retention factor.
	// Default 0.998.
	Deceleration float64

	Delay              time.Duration
	DisableInteraction bool
	UseNativeDriver    bool
	Frames             FrameSource
}

// DecayDriver coasts a value with exponentially decaying velocity, as for
// a fling. It finishes when the change over one frame drops under 0.1.
type DecayDriver struct {
	driverBase
	velocity     float64
	deceleration float64

	from      float64
	lastValue float64
	startTime time.Duration
}

// NewDecay creates a decay driver.
func NewDecay(cfg DecayConfig) *DecayDriver {
	return &DecayDriver{
		driverBase:   newDriverBase("decay", cfg.DisableInteraction, cfg.UseNativeDriver, cfg.Delay, cfg.Frames),
		velocity:     cfg.Velocity,
		deceleration: orDefault(cfg.Deceleration, 0.998),
	}
}

// Start begins coasting from `from`. previous is ignored.
func (d *DecayDriver) Start(from float64, onUpdate func(float64), onEnd func(Result), previous Driver, value *Value) {
	d.begin(onUpdate, onEnd)
	d.from = from
	d.lastValue = from
	d.afterDelay(func() {
		if d.useNative && d.startNative(value, d.nativeConfig()) {
			return
		}
		d.startTime = d.source().Now()
		d.requestFrame(d.tick)
	})
}

// At returns the position t after the start.
func (d *DecayDriver) At(t time.Duration) float64 {
	ms := float64(t) / float64(time.Millisecond)
	k := 1 - d.deceleration
	return d.from + (d.velocity/k)*(1-math.Exp(-k*ms))
}

func (d *DecayDriver) tick(now time.Duration) {
	d.hasFrame = false
	if !d.active {
		return
	}
	value := d.At(now - d.startTime)
	d.onUpdate(value)
	if !d.active {
		return
	}
	if math.Abs(d.lastValue-value) < 0.1 {
		d.end(Result{Finished: true})
		return
	}
	d.lastValue = value
	d.requestFrame(d.tick)
}

func (d *DecayDriver) nativeConfig() map[string]any {
	return map[string]any{
		"type":         "decay",
		"velocity":     d.velocity,
		"deceleration": d.deceleration,
		"iterations":   1,
	}
}
