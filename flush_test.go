package animated

import (
	"reflect"
	"testing"
)

type countingObserver struct {
	flushes     []int
	started     []string
	ended       []bool
	interaction []int
}

func (o *countingObserver) FlushCompleted(n int)           { o.flushes = append(o.flushes, n) }
func (o *countingObserver) DriverStarted(kind string)      { o.started = append(o.started, kind) }
func (o *countingObserver) DriverEnded(_ string, fin bool) { o.ended = append(o.ended, fin) }
func (o *countingObserver) InteractionsActive(n int)       { o.interaction = append(o.interaction, n) }

func TestFlushDiamondUpdatesLeafOnce(t *testing.T) {
	setup(t)
	obs := &countingObserver{}
	SetObserver(obs)

	sink := &recordingSink{}
	v := NewValue(0)
	scale := MustInterpolate(v, InterpolationConfig{InputRange: []float64{0, 1}, OutputRange: []float64{1, 2}})
	opacity := MustInterpolate(v, InterpolationConfig{InputRange: []float64{0, 1}, OutputRange: []float64{0, 1}})
	left := NewStyle(map[string]any{"scale": scale})
	right := NewStyle(map[string]any{"opacity": opacity})
	NewProps(map[string]any{"left": left, "right": right}, sink, "view")

	v.SetValue(1)

	if len(sink.props) != 1 {
		t.Fatalf("ApplyProps called %d times, want 1", len(sink.props))
	}
	want := map[string]any{
		"left":  map[string]any{"scale": 2.0},
		"right": map[string]any{"opacity": 1.0},
	}
	if !reflect.DeepEqual(sink.last(), want) {
		t.Errorf("props = %v, want %v", sink.last(), want)
	}
	if sink.refs[0] != "view" {
		t.Errorf("host ref = %v, want view", sink.refs[0])
	}
	if len(obs.flushes) != 1 || obs.flushes[0] != 1 {
		t.Errorf("observer flushes = %v, want [1]", obs.flushes)
	}
}

func TestFlushReachesEveryLeafInAttachOrder(t *testing.T) {
	setup(t)
	var order []string
	v := NewValue(0)
	for _, name := range []string{"a", "b", "c"} {
		NewProps(map[string]any{"x": v}, HostSinkFunc(func(any, map[string]any) {
			order = append(order, name)
		}), nil)
	}

	if n := Flush(v); n != 3 {
		t.Errorf("Flush = %d leaves, want 3", n)
	}
	if !reflect.DeepEqual(order, []string{"a", "b", "c"}) {
		t.Errorf("order = %v", order)
	}
}

func TestFlushThroughArithmetic(t *testing.T) {
	setup(t)
	sink := &recordingSink{}
	a, b := NewValue(1), NewValue(2)
	NewProps(map[string]any{"sum": Add(a, b), "static": "keep"}, sink, nil)

	a.SetValue(10)
	want := map[string]any{"sum": 12.0, "static": "keep"}
	if !reflect.DeepEqual(sink.last(), want) {
		t.Errorf("props = %v, want %v", sink.last(), want)
	}
}

func TestFlushSkipsUnrelatedLeaves(t *testing.T) {
	setup(t)
	s1, s2 := &recordingSink{}, &recordingSink{}
	a, b := NewValue(0), NewValue(0)
	NewProps(map[string]any{"x": a}, s1, nil)
	NewProps(map[string]any{"x": b}, s2, nil)

	a.SetValue(1)
	if len(s1.props) != 1 || len(s2.props) != 0 {
		t.Errorf("updates = %d, %d, want 1, 0", len(s1.props), len(s2.props))
	}
}

func TestPropsAnimatedValuesAndSetHost(t *testing.T) {
	setup(t)
	v := NewValue(3)
	p := NewProps(map[string]any{"x": v, "label": "hi"}, nil, nil)

	if got := p.AnimatedValues(); !reflect.DeepEqual(got, map[string]any{"x": 3.0}) {
		t.Errorf("AnimatedValues = %v", got)
	}

	v.SetValue(4) // no sink yet: dropped

	sink := &recordingSink{}
	p.SetHost(sink, 42)
	v.SetValue(5)
	if len(sink.props) != 1 || sink.refs[0] != 42 {
		t.Errorf("after SetHost: %d updates, refs %v", len(sink.props), sink.refs)
	}
	if p.HostRef() != 42 {
		t.Errorf("HostRef = %v", p.HostRef())
	}
}

func TestPropsWrapsStyleMap(t *testing.T) {
	setup(t)
	v := NewValue(10)
	p := NewProps(map[string]any{
		"style": map[string]any{
			"opacity":   v,
			"color":     "red",
			"transform": []map[string]any{{"translateY": v}},
		},
	}, nil, nil)

	want := map[string]any{
		"style": map[string]any{
			"opacity":   10.0,
			"color":     "red",
			"transform": []map[string]any{{"translateY": 10.0}},
		},
	}
	if got := p.Resolve(); !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve = %v, want %v", got, want)
	}
	if len(v.Children()) != 2 {
		t.Errorf("value children = %d, want 2 (style and transform)", len(v.Children()))
	}
}
