package animated

import (
	"math"
	"testing"
	"time"
)

func TestSpringConverges(t *testing.T) {
	loop := setup(t)
	v := NewValue(0)
	var res Result
	calls := 0
	v.Animate(NewSpring(SpringConfig{ToValue: 1, Stiffness: 100, Damping: 10, Mass: 1}), func(r Result) {
		res = r
		calls++
	})

	loop.RunUntilIdle(1000)
	if calls != 1 || !res.Finished {
		t.Fatalf("onEnd calls = %d, result %v", calls, res)
	}
	if v.Float() != 1 {
		t.Errorf("final = %v, want exactly 1", v.Float())
	}
}

func TestSpringUnderdampedOvershoots(t *testing.T) {
	loop := setup(t)
	v := NewValue(0)
	peak := 0.0
	v.AddListener(func(x float64) { peak = math.Max(peak, x) })
	v.Animate(NewSpring(SpringConfig{ToValue: 1, Stiffness: 100, Damping: 5}), nil)
	loop.RunUntilIdle(1000)

	if peak <= 1 {
		t.Errorf("peak = %v, want an overshoot above 1", peak)
	}
}

func TestSpringOvershootClampingStopsEarly(t *testing.T) {
	loop := setup(t)
	free := NewValue(0)
	free.Animate(NewSpring(SpringConfig{ToValue: 1, Stiffness: 100, Damping: 5}), nil)
	freeSteps := loop.RunUntilIdle(1000)

	clamped := NewValue(0)
	var res Result
	clamped.Animate(NewSpring(SpringConfig{ToValue: 1, Stiffness: 100, Damping: 5, OvershootClamping: true}), func(r Result) { res = r })
	clampedSteps := loop.RunUntilIdle(1000)

	if !res.Finished || clamped.Float() != 1 {
		t.Errorf("clamped result = %v, value %v", res, clamped.Float())
	}
	if clampedSteps >= freeSteps {
		t.Errorf("clamped took %d steps, free %d; clamping should end at the first overshoot", clampedSteps, freeSteps)
	}
}

func TestSpringParameterDefaults(t *testing.T) {
	tests := []struct {
		name               string
		cfg                SpringConfig
		stiffness, damping float64
	}{
		{"tension friction defaults", SpringConfig{}, 230.2, 22},
		{"tension friction", SpringConfig{Tension: 30, Friction: 8}, 194, 25},
		{"physical defaults", SpringConfig{Mass: 2}, 100, 10},
		{"physical", SpringConfig{Stiffness: 50, Damping: 3}, 50, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewSpring(tt.cfg)
			assertNear(t, "stiffness", d.Stiffness(), tt.stiffness)
			assertNear(t, "damping", d.Damping(), tt.damping)
		})
	}

	d := NewSpring(SpringConfig{Bounciness: 8, Speed: 12})
	if d.Stiffness() <= 0 || d.Damping() <= 0 || d.Mass() != 1 {
		t.Errorf("bounciness/speed spring = k %v c %v m %v", d.Stiffness(), d.Damping(), d.Mass())
	}
}

func TestSpringVelocityHandOff(t *testing.T) {
	loop := setup(t)
	v := NewValue(0)
	first := NewSpring(SpringConfig{ToValue: 100})
	v.Animate(first, nil)
	for range 5 {
		loop.Step()
	}
	moving := first.Velocity()
	if moving == 0 {
		t.Fatal("first spring should be moving")
	}

	second := NewSpring(SpringConfig{ToValue: 0})
	v.Animate(second, nil)
	if second.Velocity() != moving {
		t.Errorf("handed-off velocity = %v, want %v", second.Velocity(), moving)
	}
	loop.RunUntilIdle(2000)
	if v.Float() != 0 {
		t.Errorf("final = %v, want 0", v.Float())
	}
}

func TestSpringStepIsCapped(t *testing.T) {
	loop := setup(t)
	v := NewValue(0)
	d := NewSpring(SpringConfig{ToValue: 1})
	v.Animate(d, nil)
	loop.Advance(time.Second)
	if d.frameTime > maxSpringStep.Seconds()+epsilon {
		t.Errorf("simulated %vs in one frame, want at most %v", d.frameTime, maxSpringStep)
	}
}

func TestSpringAtRestFinishesImmediately(t *testing.T) {
	loop := setup(t)
	v := NewValue(1)
	var res Result
	v.Animate(NewSpring(SpringConfig{ToValue: 1}), func(r Result) { res = r })
	loop.Step()
	if !res.Finished {
		t.Error("spring already at rest should finish on the first tick")
	}
}
