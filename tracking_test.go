package animated

import "testing"

func TestTrackingFollowsLeader(t *testing.T) {
	loop := setup(t)
	leader := NewValue(0)
	follower := NewValue(5)
	Timing(follower, TimingConfig{ToNode: leader}).Start(nil)

	if !follower.IsAnimating() {
		t.Fatal("tracking did not start a run towards the leader")
	}
	loop.RunUntilIdle(10)
	assertNear(t, "initial", follower.Float(), 0)

	leader.SetValue(10)
	loop.RunUntilIdle(10)
	assertNear(t, "after leader moved", follower.Float(), 10)
}

func TestTrackingWithSpring(t *testing.T) {
	loop := setup(t)
	leader := NewValue(0)
	follower := NewValue(0)
	Spring(follower, SpringConfig{ToNode: leader, Stiffness: 200, Damping: 30}).Start(nil)

	leader.SetValue(50)
	loop.RunUntilIdle(1000)
	assertNear(t, "spring follower", follower.Float(), 50)
}

func TestStopTrackingDetachesLeaf(t *testing.T) {
	loop := setup(t)
	leader := NewValue(0)
	follower := NewValue(0)
	Timing(follower, TimingConfig{ToNode: leader}).Start(nil)
	leader.SetValue(10)
	loop.RunUntilIdle(10)

	if len(leader.Children()) != 1 || leader.Children()[0].Kind() != KindTracking {
		t.Fatalf("leader children = %v", leader.Children())
	}
	follower.StopAnimation(nil)
	if len(leader.Children()) != 0 {
		t.Errorf("tracking still attached: %v", leader.Children())
	}

	leader.SetValue(20)
	loop.RunUntilIdle(10)
	assertNear(t, "follower after stop", follower.Float(), 10)
}

func TestTrackingResolvesToLeader(t *testing.T) {
	setup(t)
	leader := NewValue(3)
	follower := NewValue(0)
	tr := NewTracking(follower, leader, func(to float64) Driver {
		return NewTiming(TimingConfig{ToValue: to})
	}, nil)
	if tr.Resolve() != 3.0 || tr.Value() != follower {
		t.Errorf("Resolve = %v", tr.Resolve())
	}
}

func TestNewTrackingPanicsWithoutFactory(t *testing.T) {
	setup(t)
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewTracking(NewValue(0), NewValue(0), nil, nil)
}
