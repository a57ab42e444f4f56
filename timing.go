package animated

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultTimingDuration is the duration used by scenario scripts and the
// Timing composition helpers when none is given.
const DefaultTimingDuration = 500 * time.Millisecond

// TimingConfig configures a TimingDriver.
type TimingConfig struct {
	ToValue float64
	// ToNode makes Timing follow another node instead of ToValue; used by
	// the Timing composition only.
	ToNode Scalar
	// Duration of the run. Zero jumps to ToValue on the first frame.
	Duration time.Duration
	// Easing applied to progress. Nil means ease.InOutQuad.
	Easing ease.TweenFunc
	Delay  time.Duration

	DisableInteraction bool
	UseNativeDriver    bool
	// Frames overrides the process-wide frame source.
	Frames FrameSource
}

// TimingDriver eases a value from its start to ToValue over Duration. The
// last frame always lands exactly on ToValue.
type TimingDriver struct {
	driverBase
	cfg TimingConfig

	from  float64
	tween *gween.Tween
	last  time.Duration
}

// NewTiming creates a timing driver.
func NewTiming(cfg TimingConfig) *TimingDriver {
	if cfg.Easing == nil {
		cfg.Easing = ease.InOutQuad
	}
	return &TimingDriver{
		driverBase: newDriverBase("timing", cfg.DisableInteraction, cfg.UseNativeDriver, cfg.Delay, cfg.Frames),
		cfg:        cfg,
	}
}

// Start begins easing from `from`. previous is ignored.
func (d *TimingDriver) Start(from float64, onUpdate func(float64), onEnd func(Result), previous Driver, value *Value) {
	d.begin(onUpdate, onEnd)
	d.from = from
	d.afterDelay(func() {
		if d.useNative && d.startNative(value, d.nativeConfig()) {
			return
		}
		d.last = d.source().Now()
		if d.cfg.Duration > 0 {
			// Progress tween: 0 to 1, scaled onto [from, ToValue] so that
			// float32 precision does not leak into large values.
			d.tween = gween.New(0, 1, float32(d.cfg.Duration.Seconds()), d.cfg.Easing)
		}
		d.requestFrame(d.tick)
	})
}

func (d *TimingDriver) tick(now time.Duration) {
	d.hasFrame = false
	if !d.active {
		return
	}
	if d.tween == nil {
		d.onUpdate(d.cfg.ToValue)
		if d.active {
			d.end(Result{Finished: true})
		}
		return
	}

	dt := now - d.last
	d.last = now
	p, finished := d.tween.Update(float32(dt.Seconds()))
	if finished {
		d.onUpdate(d.cfg.ToValue)
		if d.active {
			d.end(Result{Finished: true})
		}
		return
	}
	d.onUpdate(d.from + (d.cfg.ToValue-d.from)*float64(p))
	if d.active {
		d.requestFrame(d.tick)
	}
}

// nativeConfig samples the eased progress at 60 fps for the host.
func (d *TimingDriver) nativeConfig() map[string]any {
	var frames []float64
	if d.cfg.Duration > 0 {
		tw := gween.New(0, 1, float32(d.cfg.Duration.Seconds()), d.cfg.Easing)
		step := float32(DefaultFrameInterval.Seconds())
		for {
			p, done := tw.Update(step)
			if done {
				break
			}
			frames = append(frames, float64(p))
		}
	}
	frames = append(frames, 1)
	return map[string]any{
		"type":       "frames",
		"frames":     frames,
		"toValue":    d.cfg.ToValue,
		"iterations": 1,
	}
}
