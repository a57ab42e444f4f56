package animated

import (
	"math"
	"time"
)

// maxSpringStep caps the simulated time per frame so that a long stall
// does not make the spring jump.
const maxSpringStep = 64 * time.Millisecond

// SpringConfig configures a SpringDriver. The physical parameters can be
// given in one of three ways, checked in order: Stiffness/Damping/Mass,
// Bounciness/Speed, or Tension/Friction. Zero fields take the defaults of
// the chosen group.
type SpringConfig struct {
	ToValue float64
	// ToNode makes Spring follow another node; used by the Spring
	// composition only.
	ToNode Scalar

	Stiffness float64 // default 100
	Damping   float64 // default 10
	Mass      float64 // default 1

	Bounciness float64 // default 8
	Speed      float64 // default 12

	Tension  float64 // default 40
	Friction float64 // default 7

	// Velocity is the initial velocity in units per second.
	Velocity          float64
	OvershootClamping bool

	RestDisplacementThreshold float64 // default 0.001
	RestSpeedThreshold        float64 // default 0.001

	Delay              time.Duration
	DisableInteraction bool
	UseNativeDriver    bool
	Frames             FrameSource
}

// SpringDriver runs a damped harmonic oscillator towards ToValue using the
// closed-form solution. It finishes when both displacement and speed are
// under their rest thresholds, or on the first overshoot when clamping.
type SpringDriver struct {
	driverBase

	toValue           float64
	stiffness         float64
	damping           float64
	mass              float64
	initialVelocity   float64
	overshootClamping bool
	restDisplacement  float64
	restSpeed         float64

	startPosition float64
	lastPosition  float64
	lastVelocity  float64
	lastTime      time.Duration
	frameTime     float64 // seconds since start
}

// NewSpring creates a spring driver.
func NewSpring(cfg SpringConfig) *SpringDriver {
	d := &SpringDriver{
		driverBase:        newDriverBase("spring", cfg.DisableInteraction, cfg.UseNativeDriver, cfg.Delay, cfg.Frames),
		toValue:           cfg.ToValue,
		initialVelocity:   cfg.Velocity,
		overshootClamping: cfg.OvershootClamping,
		restDisplacement:  orDefault(cfg.RestDisplacementThreshold, 0.001),
		restSpeed:         orDefault(cfg.RestSpeedThreshold, 0.001),
	}
	switch {
	case cfg.Stiffness != 0 || cfg.Damping != 0 || cfg.Mass != 0:
		d.stiffness = orDefault(cfg.Stiffness, 100)
		d.damping = orDefault(cfg.Damping, 10)
		d.mass = orDefault(cfg.Mass, 1)
	case cfg.Bounciness != 0 || cfg.Speed != 0:
		d.stiffness, d.damping = springFromBouncinessAndSpeed(orDefault(cfg.Bounciness, 8), orDefault(cfg.Speed, 12))
		d.mass = 1
	default:
		d.stiffness, d.damping = springFromTensionAndFriction(orDefault(cfg.Tension, 40), orDefault(cfg.Friction, 7))
		d.mass = 1
	}
	return d
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// Stiffness, Damping and Mass return the resolved physical parameters.
func (d *SpringDriver) Stiffness() float64 { return d.stiffness }
func (d *SpringDriver) Damping() float64   { return d.damping }
func (d *SpringDriver) Mass() float64      { return d.mass }

// Velocity returns the last computed velocity in units per second.
func (d *SpringDriver) Velocity() float64 { return d.lastVelocity }

// Start begins the simulation at `from`. When previous is a spring, its
// position, velocity and clock are carried over so a retargeted spring
// keeps its momentum.
func (d *SpringDriver) Start(from float64, onUpdate func(float64), onEnd func(Result), previous Driver, value *Value) {
	d.begin(onUpdate, onEnd)
	d.startPosition = from
	d.lastPosition = from
	d.lastVelocity = d.initialVelocity
	d.frameTime = 0
	d.afterDelay(func() {
		d.lastTime = d.source().Now()
		if prev, ok := previous.(*SpringDriver); ok && prev != d {
			d.lastPosition = prev.lastPosition
			d.lastVelocity = prev.lastVelocity
			d.initialVelocity = prev.lastVelocity
			d.lastTime = prev.lastTime
		}
		if d.useNative && d.startNative(value, d.nativeConfig()) {
			return
		}
		d.requestFrame(d.tick)
	})
}

func (d *SpringDriver) tick(now time.Duration) {
	d.hasFrame = false
	if !d.active {
		return
	}
	if now > d.lastTime+maxSpringStep {
		now = d.lastTime + maxSpringStep
	}
	d.frameTime += (now - d.lastTime).Seconds()
	d.lastTime = now

	position, velocity := d.solve(d.frameTime)
	d.lastPosition = position
	d.lastVelocity = velocity

	d.onUpdate(position)
	if !d.active {
		return
	}

	overshooting := false
	if d.overshootClamping && d.stiffness != 0 {
		if d.startPosition < d.toValue {
			overshooting = position > d.toValue
		} else {
			overshooting = position < d.toValue
		}
	}
	atRestSpeed := math.Abs(velocity) <= d.restSpeed
	atRestDisplacement := true
	if d.stiffness != 0 {
		atRestDisplacement = math.Abs(d.toValue-position) <= d.restDisplacement
	}

	if overshooting || (atRestSpeed && atRestDisplacement) {
		if d.stiffness != 0 {
			d.lastPosition = d.toValue
			d.lastVelocity = 0
			d.onUpdate(d.toValue)
		}
		if d.active {
			d.end(Result{Finished: true})
		}
		return
	}
	d.requestFrame(d.tick)
}

// solve returns position and velocity t seconds after the start.
func (d *SpringDriver) solve(t float64) (position, velocity float64) {
	c, m, k := d.damping, d.mass, d.stiffness
	v0 := -d.initialVelocity
	zeta := c / (2 * math.Sqrt(k*m))
	omega0 := math.Sqrt(k / m)
	x0 := d.toValue - d.startPosition

	if zeta < 1 {
		// Under-damped.
		omega1 := omega0 * math.Sqrt(1-zeta*zeta)
		envelope := math.Exp(-zeta * omega0 * t)
		sin, cos := math.Sincos(omega1 * t)
		a := (v0 + zeta*omega0*x0) / omega1
		position = d.toValue - envelope*(a*sin+x0*cos)
		velocity = zeta*omega0*envelope*(sin*a+x0*cos) -
			envelope*(cos*(v0+zeta*omega0*x0)-omega1*x0*sin)
		return position, velocity
	}
	// Critically damped.
	envelope := math.Exp(-omega0 * t)
	position = d.toValue - envelope*(x0+(v0+omega0*x0)*t)
	velocity = envelope * (v0*(t*omega0-1) + t*x0*omega0*omega0)
	return position, velocity
}

func (d *SpringDriver) nativeConfig() map[string]any {
	return map[string]any{
		"type":                      "spring",
		"toValue":                   d.toValue,
		"stiffness":                 d.stiffness,
		"damping":                   d.damping,
		"mass":                      d.mass,
		"initialVelocity":           d.initialVelocity,
		"overshootClamping":         d.overshootClamping,
		"restDisplacementThreshold": d.restDisplacement,
		"restSpeedThreshold":        d.restSpeed,
		"iterations":                1,
	}
}

// --- Origami conversions ---

func stiffnessFromOrigami(v float64) float64 { return (v-30)*3.62 + 194 }
func dampingFromOrigami(v float64) float64   { return (v-8)*3 + 25 }

func springFromTensionAndFriction(tension, friction float64) (stiffness, damping float64) {
	return stiffnessFromOrigami(tension), dampingFromOrigami(friction)
}

func springFromBouncinessAndSpeed(bounciness, speed float64) (stiffness, damping float64) {
	normalize := func(v, start, end float64) float64 { return (v - start) / (end - start) }
	project := func(n, start, end float64) float64 { return start + n*(end-start) }
	lerp := func(t, start, end float64) float64 { return t*end + (1-t)*start }
	quadOut := func(t, start, end float64) float64 { return lerp(2*t-t*t, start, end) }

	noBounce := func(tension float64) float64 {
		switch {
		case tension <= 18:
			return 0.0007*math.Pow(tension, 3) - 0.031*math.Pow(tension, 2) + 0.64*tension + 1.28
		case tension <= 44:
			return 0.000044*math.Pow(tension, 3) - 0.006*math.Pow(tension, 2) + 0.36*tension + 2
		default:
			return 0.00000045*math.Pow(tension, 3) - 0.000332*math.Pow(tension, 2) + 0.1078*tension + 5.84
		}
	}

	b := project(normalize(bounciness/1.7, 0, 20), 0, 0.8)
	s := normalize(speed/1.7, 0, 20)
	tension := project(s, 0.5, 200)
	friction := quadOut(b, noBounce(tension), 0.01)
	return stiffnessFromOrigami(tension), dampingFromOrigami(friction)
}
