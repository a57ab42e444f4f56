package script

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/phanxgames/animated/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRunner(t *testing.T, src string) *Runner {
	t.Helper()
	s, err := Parse([]byte(src))
	require.NoError(t, err)
	r, err := NewRunner(s)
	require.NoError(t, err)
	return r
}

func lastOf(records []Record, kind string) (Record, bool) {
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].Kind == kind {
			return records[i], true
		}
	}
	return Record{}, false
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"bad yaml", "steps: [", "parse script"},
		{"no steps", "values: {x: 0}", "no steps"},
		{"unknown action", "steps: [{action: jump}]", `unknown action "jump"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fade.yaml")
	require.NoError(t, os.WriteFile(path, []byte("values: {x: 1}\nsteps: [{action: set, value: x, to: 2}]\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.Values["x"])
	require.Len(t, s.Steps, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "load script")
}

func TestSetRecordsPropsThenListener(t *testing.T) {
	r := mustRunner(t, `
values: {x: 0}
props:
  box: {left: x, top: 4}
listen: [x]
steps:
  - {action: set, value: x, to: 5}
`)
	require.NoError(t, r.Run(context.Background()))
	require.Len(t, r.Records(), 2)

	props, listener := r.Records()[0], r.Records()[1]
	assert.Equal(t, KindProps, props.Kind)
	assert.Equal(t, "box", props.Target)
	assert.Equal(t, map[string]any{"left": 5.0, "top": 4}, props.Values)
	assert.Equal(t, KindListener, listener.Kind)
	assert.Equal(t, 5.0, listener.Values["value"])
}

func TestTimingRunsToTarget(t *testing.T) {
	r := mustRunner(t, `
values: {x: 0}
props:
  box: {left: x}
steps:
  - action: animate
    value: x
    driver: timing
    config: {toValue: 100, duration: 100ms, easing: linear}
  - action: idle
`)
	require.NoError(t, r.Run(context.Background()))

	props, ok := lastOf(r.Records(), KindProps)
	require.True(t, ok)
	assert.Equal(t, 100.0, props.Values["left"])

	end, ok := lastOf(r.Records(), KindEnd)
	require.True(t, ok)
	assert.Equal(t, "x", end.Target)
	assert.Equal(t, true, end.Values["finished"])
	assert.Greater(t, r.Frame(), 1)
}

func TestTimingDefaultDuration(t *testing.T) {
	r := mustRunner(t, `
values: {x: 0}
steps:
  - {action: animate, value: x, driver: timing, config: {toValue: 1}}
  - {action: advance, frames: 15}
`)
	require.NoError(t, r.Run(context.Background()))
	v, _ := r.Value("x")
	assert.Greater(t, v.Float(), 0.0)
	assert.Less(t, v.Float(), 1.0)
	assert.True(t, v.IsAnimating())
}

func TestStopReportsUnfinished(t *testing.T) {
	r := mustRunner(t, `
values: {x: 0}
steps:
  - {action: animate, value: x, driver: spring, config: {toValue: 1, stiffness: 100, damping: 10}}
  - {action: advance, frames: 2, dt: 20ms}
  - {action: stop, value: x}
`)
	require.NoError(t, r.Run(context.Background()))
	end, ok := lastOf(r.Records(), KindEnd)
	require.True(t, ok)
	assert.Equal(t, false, end.Values["finished"])
	assert.Equal(t, 2, r.Frame())
}

func TestInterpolatedStyle(t *testing.T) {
	r := mustRunner(t, `
values: {progress: 0}
interpolations:
  - name: fade
    input: progress
    inputRange: [0, 1]
    outputRange: [0, 1]
    extrapolate: clamp
  - name: spin
    input: progress
    inputRange: [0, 1]
    outputStrings: ["0deg", "90deg"]
operations:
  - {name: doubled, op: multiply, a: progress, b: fade}
props:
  card:
    style:
      opacity: fade
      transform:
        - {rotate: spin}
steps:
  - {action: set, value: progress, to: 2}
`)
	require.NoError(t, r.Run(context.Background()))

	fade, ok := r.Node("fade")
	require.True(t, ok)
	assert.Equal(t, 1.0, fade.Float())
	doubled, _ := r.Node("doubled")
	assert.Equal(t, 2.0, doubled.Float())

	props, ok := lastOf(r.Records(), KindProps)
	require.True(t, ok)
	style, ok := props.Values["style"].(map[string]any)
	require.True(t, ok, "style = %T", props.Values["style"])
	assert.Equal(t, 1.0, style["opacity"])
	assert.Equal(t, []map[string]any{{"rotate": "180deg"}}, style["transform"])
}

func TestDragDrivesMappedValue(t *testing.T) {
	r := mustRunner(t, `
values: {x: 0}
events:
  pan: {dx: x}
listen: [x]
steps:
  - {action: drag, event: pan, fromXY: [0, 0], toXY: [10, 0], frames: 3}
`)
	require.NoError(t, r.Run(context.Background()))
	v, _ := r.Value("x")
	assert.Equal(t, 10.0, v.Float())
	assert.Equal(t, 3, r.Frame())

	var seen []any
	for _, rec := range r.Records() {
		seen = append(seen, rec.Values["value"])
	}
	assert.Equal(t, []any{0.0, 5.0, 10.0}, seen)
}

func TestOffsets(t *testing.T) {
	r := mustRunner(t, `
values: {x: 3}
steps:
  - {action: offset, value: x, to: 2}
  - {action: flatten, value: x}
  - {action: extract, value: x}
`)
	require.NoError(t, r.Run(context.Background()))
	v, _ := r.Value("x")
	assert.Equal(t, 0.0, v.Base())
	assert.Equal(t, 5.0, v.Offset())
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown input", "interpolations: [{name: i, input: nope, inputRange: [0, 1], outputRange: [0, 1]}]\nsteps: [{action: idle}]", `unknown node "nope"`},
		{"bad range", "values: {x: 0}\ninterpolations: [{name: i, input: x, inputRange: [0], outputRange: [0]}]\nsteps: [{action: idle}]", `interpolation "i"`},
		{"bad op", "values: {x: 0}\noperations: [{name: o, op: pow, a: x, b: x}]\nsteps: [{action: idle}]", `unknown op "pow"`},
		{"unknown listen", "listen: [y]\nsteps: [{action: idle}]", `unknown value "y"`},
		{"bad transform", "values: {x: 0}\nprops: {p: {transform: x}}\nsteps: [{action: idle}]", "transform must be a list"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse([]byte(tt.src))
			require.NoError(t, err)
			_, err = NewRunner(s)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestStepErrors(t *testing.T) {
	tests := []struct {
		name string
		step string
		want string
	}{
		{"unknown value", "{action: set, value: y}", `unknown value "y"`},
		{"unknown driver", "{action: animate, value: x, driver: bounce}", `unknown driver "bounce"`},
		{"unknown key", "{action: animate, value: x, driver: timing, config: {toValue: 1, length: 3}}", "driver config"},
		{"bad easing", "{action: animate, value: x, driver: timing, config: {easing: wobble}}", `unknown easing "wobble"`},
		{"unknown event", "{action: drag, event: swipe}", `unknown event "swipe"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustRunner(t, "values: {x: 0}\nsteps: ["+tt.step+"]")
			done, err := r.Step()
			assert.False(t, done)
			assert.ErrorContains(t, err, "step 1")
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestRunHonorsContext(t *testing.T) {
	r := mustRunner(t, "values: {x: 0}\nsteps: [{action: set, value: x, to: 1}]")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, r.Run(ctx), context.Canceled)
	assert.False(t, r.Done())
}

func TestTrackingToNode(t *testing.T) {
	r := mustRunner(t, `
values: {leader: 0, follower: 0}
steps:
  - {action: animate, value: follower, driver: timing, config: {toNode: leader, duration: 0s}}
  - {action: set, value: leader, to: 8}
  - {action: idle}
`)
	require.NoError(t, r.Run(context.Background()))
	v, _ := r.Value("follower")
	assert.Equal(t, 8.0, v.Float())
}

func TestRunnerLogsSteps(t *testing.T) {
	s, err := Parse([]byte("values: {x: 0}\nsteps: [{action: set, value: x, to: 1}]"))
	require.NoError(t, err)

	quiet, err := NewRunner(s)
	require.NoError(t, err)
	require.NoError(t, quiet.Run(context.Background()))

	var buf bytes.Buffer
	r, err := NewRunner(s, WithLogger(logging.NewWriter(&buf, slog.LevelDebug)))
	require.NoError(t, err)
	require.NoError(t, r.Run(context.Background()))
	assert.Contains(t, buf.String(), "action=set")
}
