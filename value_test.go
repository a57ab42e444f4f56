package animated

import (
	"testing"
)

func TestSetValueNotifiesListeners(t *testing.T) {
	setup(t)
	v := NewValue(0)
	var got []float64
	v.AddListener(func(x float64) { got = append(got, x) })
	v.AddListener(func(x float64) { got = append(got, x*10) })

	v.SetValue(5)

	assertNear(t, "Float", v.Float(), 5)
	if len(got) != 2 || got[0] != 5 || got[1] != 50 {
		t.Errorf("listener calls = %v, want [5 50] in registration order", got)
	}
}

func TestSetValueKeepsOffset(t *testing.T) {
	setup(t)
	v := NewValue(0)
	v.SetOffset(10)
	v.SetValue(5)
	assertNear(t, "resolved", v.Float(), 15)
	assertNear(t, "offset", v.Offset(), 10)
}

func TestOffsetRoundTrips(t *testing.T) {
	tests := []struct {
		name          string
		value, offset float64
	}{
		{"zero", 0, 0},
		{"positive", 5, 10},
		{"negative offset", 5, -12.5},
		{"negative value", -3, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup(t)
			v := NewValue(tt.value)
			v.SetOffset(tt.offset)
			before := v.Float()

			v.FlattenOffset()
			assertNear(t, "after flatten", v.Float(), before)
			assertNear(t, "offset after flatten", v.Offset(), 0)

			v.SetOffset(tt.offset)
			before = v.Float()
			v.ExtractOffset()
			assertNear(t, "after extract", v.Float(), before)
			assertNear(t, "base after extract", v.Base(), 0)
		})
	}
}

func TestOffsetOperationsDoNotFlush(t *testing.T) {
	setup(t)
	sink := &recordingSink{}
	v := NewValue(1)
	NewProps(map[string]any{"x": v}, sink, nil)

	v.SetOffset(3)
	v.FlattenOffset()
	v.ExtractOffset()

	if len(sink.props) != 0 {
		t.Errorf("offset operations flushed %d times, want 0", len(sink.props))
	}
}

func TestListenerIDsIncreaseAcrossValues(t *testing.T) {
	setup(t)
	a, b := NewValue(0), NewValue(0)
	id1 := a.AddListener(func(float64) {})
	id2 := b.AddListener(func(float64) {})
	if id1 != "1" || id2 != "2" {
		t.Errorf("ids = %q, %q, want \"1\", \"2\"", id1, id2)
	}
}

func TestRemovedListenerNotNotified(t *testing.T) {
	setup(t)
	v := NewValue(0)
	calls := 0
	id := v.AddListener(func(float64) { calls++ })
	v.RemoveListener(id)
	v.SetValue(1)
	v.SetValue(2)
	if calls != 0 {
		t.Errorf("removed listener called %d times", calls)
	}
	if v.HasListeners() {
		t.Error("HasListeners should be false")
	}
}

func TestRemoveUnknownListenerIsNoop(t *testing.T) {
	setup(t)
	v := NewValue(0)
	calls := 0
	v.AddListener(func(float64) { calls++ })
	v.RemoveListener("does-not-exist")
	v.SetValue(1)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRemoveListenerDuringNotification(t *testing.T) {
	setup(t)
	v := NewValue(0)
	var second string
	secondCalls := 0
	v.AddListener(func(float64) { v.RemoveListener(second) })
	second = v.AddListener(func(float64) { secondCalls++ })

	v.SetValue(1)
	if secondCalls != 0 {
		t.Errorf("listener removed mid-notification was called %d times", secondCalls)
	}
}

func TestRemoveAllListeners(t *testing.T) {
	setup(t)
	v := NewValue(0)
	calls := 0
	v.AddListener(func(float64) { calls++ })
	v.AddListener(func(float64) { calls++ })
	v.RemoveAllListeners()
	v.SetValue(1)
	if calls != 0 || v.HasListeners() {
		t.Errorf("calls = %d, HasListeners = %v after RemoveAllListeners", calls, v.HasListeners())
	}
}

func TestStopAnimationIdempotent(t *testing.T) {
	loop := setup(t)
	v := NewValue(0)
	var results []Result
	v.Animate(NewTiming(TimingConfig{ToValue: 10, Duration: DefaultTimingDuration}), func(r Result) {
		results = append(results, r)
	})
	loop.Step()

	var stoppedAt []float64
	v.StopAnimation(func(x float64) { stoppedAt = append(stoppedAt, x) })
	v.StopAnimation(func(x float64) { stoppedAt = append(stoppedAt, x) })

	if len(results) != 1 || results[0].Finished {
		t.Errorf("results = %v, want exactly one unfinished", results)
	}
	if len(stoppedAt) != 2 || stoppedAt[0] != stoppedAt[1] {
		t.Errorf("stop callbacks = %v, want two equal values", stoppedAt)
	}
	if loop.Pending() != 0 {
		t.Errorf("pending = %d after stop", loop.Pending())
	}
}

func TestStopAnimationWithoutDriver(t *testing.T) {
	setup(t)
	v := NewValue(4)
	got := -1.0
	v.StopAnimation(func(x float64) { got = x })
	assertNear(t, "callback value", got, 4)
}

func TestResetAnimationRestoresStartingValue(t *testing.T) {
	loop := setup(t)
	v := NewValue(2)
	v.SetOffset(1)
	v.Animate(NewTiming(TimingConfig{ToValue: 10, Duration: DefaultTimingDuration}), nil)
	loop.Step()
	loop.Step()

	v.ResetAnimation(nil)
	assertNear(t, "base", v.Base(), 2)
	assertNear(t, "offset", v.Offset(), 1)
	if v.IsAnimating() {
		t.Error("still animating after reset")
	}
}

func TestSetValueStopsDriver(t *testing.T) {
	loop := setup(t)
	v := NewValue(0)
	var results []Result
	v.Animate(NewTiming(TimingConfig{ToValue: 10, Duration: DefaultTimingDuration}), func(r Result) {
		results = append(results, r)
	})
	loop.Step()
	v.SetValue(-1)

	if len(results) != 1 || results[0].Finished {
		t.Fatalf("results = %v, want one unfinished", results)
	}
	loop.Step()
	assertNear(t, "value", v.Float(), -1)
}

func TestAnimateReplacesDriverSilently(t *testing.T) {
	loop := setup(t)
	v := NewValue(0)
	firstCalls, secondCalls := 0, 0
	var second Result

	v.Animate(NewTiming(TimingConfig{ToValue: 10, Duration: DefaultTimingDuration}), func(Result) { firstCalls++ })
	loop.Step()
	v.Animate(NewTiming(TimingConfig{ToValue: 20}), func(r Result) {
		secondCalls++
		second = r
	})
	loop.RunUntilIdle(100)

	if firstCalls != 0 {
		t.Errorf("replaced driver callback called %d times, want 0", firstCalls)
	}
	if secondCalls != 1 || !second.Finished {
		t.Errorf("second callback = %d calls, %v", secondCalls, second)
	}
	assertNear(t, "value", v.Float(), 20)
	if n := Interactions().(*InteractionManager).Active(); n != 0 {
		t.Errorf("active handles = %d, want 0", n)
	}
}

func TestUpdateOrderWriteFlushListeners(t *testing.T) {
	setup(t)
	var order []string
	v := NewValue(0)
	NewProps(map[string]any{"x": v}, HostSinkFunc(func(_ any, p map[string]any) {
		order = append(order, "flush")
	}), nil)
	v.AddListener(func(x float64) {
		if x != v.Float() {
			t.Errorf("listener saw %v before write", x)
		}
		order = append(order, "listener")
	})

	v.SetValue(1)
	if len(order) != 2 || order[0] != "flush" || order[1] != "listener" {
		t.Errorf("order = %v, want [flush listener]", order)
	}
}

func TestDetachedValueIgnoresMutations(t *testing.T) {
	setup(t)
	v := NewValue(1)
	v.Detach()

	v.SetValue(5)
	v.SetOffset(2)
	v.FlattenOffset()
	v.ExtractOffset()
	assertNear(t, "value", v.Float(), 1)

	var res *Result
	v.Animate(NewTiming(TimingConfig{ToValue: 3}), func(r Result) { res = &r })
	if res == nil || res.Finished {
		t.Errorf("Animate on detached value = %v, want immediate unfinished result", res)
	}
}

func TestDetachStopsDriverAndTracking(t *testing.T) {
	loop := setup(t)
	leader := NewValue(0)
	v := NewValue(0)
	v.Track(NewTracking(v, leader, func(to float64) Driver {
		return NewTiming(TimingConfig{ToValue: to})
	}, nil))
	v.Animate(NewTiming(TimingConfig{ToValue: 10, Duration: DefaultTimingDuration}), nil)
	loop.Step()

	v.Detach()
	if v.IsAnimating() {
		t.Error("driver still running after Detach")
	}
	if len(leader.Children()) != 0 {
		t.Error("tracking should be detached from its leader")
	}
	if loop.Pending() != 0 {
		t.Errorf("pending frames = %d", loop.Pending())
	}
}

func TestInterpolateConvenience(t *testing.T) {
	setup(t)
	v := NewValue(0.5)
	i, err := v.Interpolate(InterpolationConfig{InputRange: []float64{0, 1}, OutputRange: []float64{0, 100}})
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, "interpolated", i.Float(), 50)
}
