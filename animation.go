package animated

import "time"

// Animation is a startable unit: a driver bound to a value, or a
// composition of other animations.
type Animation interface {
	// Start runs the animation. cb, if non-nil, is called once with the
	// overall result.
	Start(cb func(Result))
	// Stop ends the animation early; its callback gets Finished=false.
	Stop()
	// Reset stops the animation and restores its values' starting state.
	Reset()
}

// valueAnimation binds a driver to one value.
type valueAnimation struct {
	value *Value
	start func(cb func(Result))
}

func (a *valueAnimation) Start(cb func(Result)) { a.start(cb) }
func (a *valueAnimation) Stop()                 { a.value.StopAnimation(nil) }
func (a *valueAnimation) Reset()                { a.value.ResetAnimation(nil) }

// Timing animates v with a TimingDriver. When cfg.ToNode is set, v tracks
// that node instead: each change of ToNode restarts the timing towards it.
func Timing(v *Value, cfg TimingConfig) Animation {
	return &valueAnimation{value: v, start: func(cb func(Result)) {
		if cfg.ToNode != nil {
			v.Track(NewTracking(v, cfg.ToNode, func(to float64) Driver {
				c := cfg
				c.ToNode = nil
				c.ToValue = to
				return NewTiming(c)
			}, cb))
			return
		}
		v.Animate(NewTiming(cfg), cb)
	}}
}

// Spring animates v with a SpringDriver. cfg.ToNode installs tracking like
// Timing does.
func Spring(v *Value, cfg SpringConfig) Animation {
	return &valueAnimation{value: v, start: func(cb func(Result)) {
		if cfg.ToNode != nil {
			v.Track(NewTracking(v, cfg.ToNode, func(to float64) Driver {
				c := cfg
				c.ToNode = nil
				c.ToValue = to
				return NewSpring(c)
			}, cb))
			return
		}
		v.Animate(NewSpring(cfg), cb)
	}}
}

// Decay animates v with a DecayDriver.
func Decay(v *Value, cfg DecayConfig) Animation {
	return &valueAnimation{value: v, start: func(cb func(Result)) {
		v.Animate(NewDecay(cfg), cb)
	}}
}

// TimingXY animates both components of xy to `to`. The two runs stop
// independently.
func TimingXY(xy *ValueXY, to Vec2, cfg TimingConfig) Animation {
	cx, cy := cfg, cfg
	cx.ToValue, cy.ToValue = to.X, to.Y
	return ParallelWith([]Animation{Timing(xy.X, cx), Timing(xy.Y, cy)}, ParallelConfig{KeepRunning: true})
}

// SpringXY springs both components of xy to `to`. velocity is the initial
// velocity per axis.
func SpringXY(xy *ValueXY, to, velocity Vec2, cfg SpringConfig) Animation {
	cx, cy := cfg, cfg
	cx.ToValue, cy.ToValue = to.X, to.Y
	cx.Velocity, cy.Velocity = velocity.X, velocity.Y
	return ParallelWith([]Animation{Spring(xy.X, cx), Spring(xy.Y, cy)}, ParallelConfig{KeepRunning: true})
}

// --- Sequence ---

type sequence struct {
	anims   []Animation
	current int
}

// Sequence runs anims one after another. A run that does not finish stops
// the sequence and is reported to the caller.
func Sequence(anims ...Animation) Animation {
	return &sequence{anims: anims}
}

func (s *sequence) Start(cb func(Result)) {
	if len(s.anims) == 0 {
		notify(cb, Result{Finished: true})
		return
	}
	if s.current >= len(s.anims) {
		s.current = 0
	}
	var onComplete func(Result)
	onComplete = func(res Result) {
		if !res.Finished {
			notify(cb, res)
			return
		}
		s.current++
		if s.current == len(s.anims) {
			notify(cb, res)
			return
		}
		s.anims[s.current].Start(onComplete)
	}
	s.anims[s.current].Start(onComplete)
}

func (s *sequence) Stop() {
	if s.current < len(s.anims) {
		s.anims[s.current].Stop()
	}
}

func (s *sequence) Reset() {
	for i, a := range s.anims {
		if i <= s.current {
			a.Reset()
		}
	}
	s.current = 0
}

// --- Parallel ---

// ParallelConfig configures Parallel.
type ParallelConfig struct {
	// KeepRunning lets the remaining animations continue when one of them
	// is stopped. By default stopping one stops them all.
	KeepRunning bool
}

type parallel struct {
	anims []Animation
	cfg   ParallelConfig
	ended []bool
	done  int
}

// Parallel starts anims together and reports once all of them have ended.
func Parallel(anims ...Animation) Animation {
	return ParallelWith(anims, ParallelConfig{})
}

// ParallelWith is Parallel with options.
func ParallelWith(anims []Animation, cfg ParallelConfig) Animation {
	return &parallel{anims: anims, cfg: cfg, ended: make([]bool, len(anims))}
}

func (p *parallel) Start(cb func(Result)) {
	if len(p.anims) == 0 {
		notify(cb, Result{Finished: true})
		return
	}
	p.done = 0
	for i := range p.ended {
		p.ended[i] = false
	}
	for i, a := range p.anims {
		a.Start(func(res Result) {
			p.ended[i] = true
			p.done++
			if p.done == len(p.anims) {
				p.done = 0
				notify(cb, res)
				return
			}
			if !res.Finished && !p.cfg.KeepRunning {
				p.Stop()
			}
		})
	}
}

func (p *parallel) Stop() {
	for i, a := range p.anims {
		if !p.ended[i] {
			p.ended[i] = true
			a.Stop()
		}
	}
}

func (p *parallel) Reset() {
	for i, a := range p.anims {
		a.Reset()
		p.ended[i] = false
	}
	p.done = 0
}

// --- Delay, Stagger, Loop ---

// Delay returns an animation that finishes after d. It does not hold an
// interaction handle.
func Delay(d time.Duration) Animation {
	return Timing(NewValue(0), TimingConfig{Delay: d, DisableInteraction: true})
}

// Stagger starts anims in parallel, each delayed by step more than the
// previous one.
func Stagger(step time.Duration, anims ...Animation) Animation {
	staggered := make([]Animation, len(anims))
	for i, a := range anims {
		staggered[i] = Sequence(Delay(step*time.Duration(i)), a)
	}
	return Parallel(staggered...)
}

// LoopConfig configures Loop.
type LoopConfig struct {
	// Iterations is the number of runs; negative loops until stopped and
	// zero finishes immediately.
	Iterations int
	// KeepState skips the Reset before each iteration.
	KeepState bool
}

type loop struct {
	anim    Animation
	cfg     LoopConfig
	stopped bool
	started int
}

// Loop repeats anim. Iterations < 0 loops until stopped.
func Loop(anim Animation, cfg LoopConfig) Animation {
	return &loop{anim: anim, cfg: cfg}
}

func (l *loop) Start(cb func(Result)) {
	if l.cfg.Iterations == 0 {
		notify(cb, Result{Finished: true})
		return
	}
	l.started = 0
	l.stopped = false
	var restart func(Result)
	restart = func(res Result) {
		if l.stopped || l.started == l.cfg.Iterations || !res.Finished {
			notify(cb, res)
			return
		}
		l.started++
		if !l.cfg.KeepState {
			l.anim.Reset()
		}
		l.anim.Start(restart)
	}
	restart(Result{Finished: true})
}

func (l *loop) Stop() {
	l.stopped = true
	l.anim.Stop()
}

func (l *loop) Reset() {
	l.started = 0
	l.stopped = false
	l.anim.Reset()
}

func notify(cb func(Result), res Result) {
	if cb != nil {
		cb(res)
	}
}
