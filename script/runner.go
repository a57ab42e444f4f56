package script

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/phanxgames/animated"
	"github.com/phanxgames/animated/internal/logging"
)

// maxIdleFrames bounds the idle action so a looping animation cannot hang
// a run.
const maxIdleFrames = 10000

// Record kinds.
const (
	KindProps    = "props"
	KindListener = "listener"
	KindEnd      = "end"
)

// Record is one observable effect of a run: a props write, a listener
// call or the end of an animate step.
type Record struct {
	Frame  int            `json:"frame"`
	Kind   string         `json:"kind"`
	Target string         `json:"target"`
	Values map[string]any `json:"values"`
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for step tracing.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// Runner builds the graph a Script declares and executes its steps on a
// private frame loop.
type Runner struct {
	script *Script
	loop   *animated.FrameLoop
	logger *slog.Logger

	values  map[string]*animated.Value
	scalars map[string]animated.Scalar
	props   map[string]*animated.Props
	events  map[string]*animated.Event

	cursor  int
	frame   int
	done    bool
	records []Record
}

// NewRunner builds the graph of s. Unknown node references and invalid
// interpolation configs are reported as errors.
func NewRunner(s *Script, opts ...Option) (*Runner, error) {
	r := &Runner{
		script:  s,
		loop:    animated.NewFrameLoop(),
		logger:  logging.NewNop(),
		values:  map[string]*animated.Value{},
		scalars: map[string]animated.Scalar{},
		props:   map[string]*animated.Props{},
		events:  map[string]*animated.Event{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.build(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Runner) build() error {
	for _, name := range slices.Sorted(maps.Keys(r.script.Values)) {
		v := animated.NewValue(r.script.Values[name])
		r.values[name] = v
		r.scalars[name] = v
	}

	for _, in := range r.script.Interpolations {
		parent, err := r.scalar(in.Input)
		if err != nil {
			return fmt.Errorf("interpolation %q: %w", in.Name, err)
		}
		cfg := animated.InterpolationConfig{
			InputRange:    in.InputRange,
			OutputRange:   in.OutputRange,
			OutputStrings: in.OutputStrings,
		}
		if cfg.Extrapolate, err = animated.ParseExtrapolation(in.Extrapolate); err != nil {
			return fmt.Errorf("interpolation %q: %w", in.Name, err)
		}
		if in.Easing != "" {
			fn, ok := animated.EasingByName(in.Easing)
			if !ok {
				return fmt.Errorf("interpolation %q: unknown easing %q", in.Name, in.Easing)
			}
			cfg.Easing = animated.EaseCurve(fn)
		}
		n, err := animated.NewInterpolation(parent, cfg)
		if err != nil {
			return fmt.Errorf("interpolation %q: %w", in.Name, err)
		}
		r.scalars[in.Name] = n
	}

	for _, op := range r.script.Operations {
		n, err := r.operation(op)
		if err != nil {
			return fmt.Errorf("operation %q: %w", op.Name, err)
		}
		r.scalars[op.Name] = n
	}

	for _, name := range slices.Sorted(maps.Keys(r.script.Props)) {
		entries, err := r.bindMap(r.script.Props[name])
		if err != nil {
			return fmt.Errorf("props %q: %w", name, err)
		}
		r.props[name] = animated.NewProps(entries, animated.HostSinkFunc(r.applyProps), name)
	}

	for _, name := range r.script.Listen {
		v, ok := r.values[name]
		if !ok {
			return fmt.Errorf("listen: unknown value %q", name)
		}
		v.AddListener(func(x float64) {
			r.record(KindListener, name, map[string]any{"value": x})
		})
	}

	for _, name := range slices.Sorted(maps.Keys(r.script.Events)) {
		mapping := map[string]*animated.Value{}
		for path, target := range r.script.Events[name] {
			v, ok := r.values[target]
			if !ok {
				return fmt.Errorf("event %q: unknown value %q", name, target)
			}
			mapping[path] = v
		}
		r.events[name] = animated.NewEvent(mapping, nil)
	}
	return nil
}

func (r *Runner) operation(op Operation) (animated.Scalar, error) {
	a, err := r.scalar(op.A)
	if err != nil {
		return nil, err
	}
	switch op.Op {
	case "modulo":
		return animated.Modulo(a, op.Modulus), nil
	case "diffclamp":
		return animated.NewDiffClamp(a, op.Min, op.Max), nil
	}
	b, err := r.scalar(op.B)
	if err != nil {
		return nil, err
	}
	switch op.Op {
	case "add":
		return animated.Add(a, b), nil
	case "subtract":
		return animated.Subtract(a, b), nil
	case "multiply":
		return animated.Multiply(a, b), nil
	case "divide":
		return animated.Divide(a, b), nil
	}
	return nil, fmt.Errorf("unknown op %q", op.Op)
}

func (r *Runner) scalar(name string) (animated.Scalar, error) {
	n, ok := r.scalars[name]
	if !ok {
		return nil, fmt.Errorf("unknown node %q", name)
	}
	return n, nil
}

// bindMap replaces strings naming a node with the node itself, recursing
// into nested maps and transform lists.
func (r *Runner) bindMap(m map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if k == "transform" {
			list, ok := v.([]any)
			if !ok {
				return nil, fmt.Errorf("transform must be a list")
			}
			ops := make([]map[string]any, 0, len(list))
			for _, item := range list {
				op, ok := item.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("transform entries must be maps")
				}
				bound, err := r.bindMap(op)
				if err != nil {
					return nil, err
				}
				ops = append(ops, bound)
			}
			out[k] = ops
			continue
		}
		switch v := v.(type) {
		case string:
			if n, ok := r.scalars[v]; ok {
				out[k] = n
			} else {
				out[k] = v
			}
		case map[string]any:
			bound, err := r.bindMap(v)
			if err != nil {
				return nil, err
			}
			out[k] = bound
		default:
			out[k] = v
		}
	}
	return out, nil
}

func (r *Runner) applyProps(ref any, props map[string]any) {
	r.record(KindProps, ref.(string), props)
}

func (r *Runner) record(kind, target string, values map[string]any) {
	r.records = append(r.records, Record{Frame: r.frame, Kind: kind, Target: target, Values: maps.Clone(values)})
}

// Loop returns the runner's frame loop.
func (r *Runner) Loop() *animated.FrameLoop { return r.loop }

// Frame returns the number of frames advanced so far.
func (r *Runner) Frame() int { return r.frame }

// Records returns everything observed so far, in order.
func (r *Runner) Records() []Record { return r.records }

// Value returns the named value node.
func (r *Runner) Value(name string) (*animated.Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Node returns any named scalar node.
func (r *Runner) Node(name string) (animated.Scalar, bool) {
	n, ok := r.scalars[name]
	return n, ok
}

// Done reports whether every step has run.
func (r *Runner) Done() bool { return r.done }

// Step runs the next step and reports whether the script is finished.
func (r *Runner) Step() (bool, error) {
	if r.done {
		return true, nil
	}
	st := r.script.Steps[r.cursor]
	r.cursor++
	r.logger.Debug("step", "n", r.cursor, "action", st.Action, "frame", r.frame)
	if err := r.exec(st); err != nil {
		return false, fmt.Errorf("step %d (%s): %w", r.cursor, st.Action, err)
	}
	if r.cursor >= len(r.script.Steps) {
		r.done = true
	}
	return r.done, nil
}

// Run executes the remaining steps. It stops early when ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	for !r.done {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := r.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) exec(st Step) error {
	switch st.Action {
	case "advance":
		frames := max(st.Frames, 1)
		for range frames {
			r.advance(st.DT)
		}
		return nil
	case "idle":
		for i := 0; i < maxIdleFrames && r.loop.Pending() > 0; i++ {
			r.advance(0)
		}
		if r.loop.Pending() > 0 {
			r.logger.Warn("still animating after idle limit", "frames", maxIdleFrames)
		}
		return nil
	case "drag":
		e, ok := r.events[st.Event]
		if !ok {
			return fmt.Errorf("unknown event %q", st.Event)
		}
		e.InjectDrag(r.loop, animated.Vec2{X: st.From[0], Y: st.From[1]}, animated.Vec2{X: st.ToXY[0], Y: st.ToXY[1]}, st.Frames)
		for e.Pending() > 0 {
			r.advance(st.DT)
		}
		return nil
	}

	v, ok := r.values[st.Value]
	if !ok {
		return fmt.Errorf("unknown value %q", st.Value)
	}
	switch st.Action {
	case "set":
		v.SetValue(st.To)
	case "offset":
		v.SetOffset(st.To)
	case "flatten":
		v.FlattenOffset()
	case "extract":
		v.ExtractOffset()
	case "stop":
		v.StopAnimation(nil)
	case "reset":
		v.ResetAnimation(nil)
	case "animate":
		return r.animate(v, st)
	}
	return nil
}

func (r *Runner) animate(v *animated.Value, st Step) error {
	cfg, err := decodeDriverConfig(st.Config)
	if err != nil {
		return err
	}
	if _, ok := st.Config["duration"]; !ok {
		cfg.Duration = animated.DefaultTimingDuration
	}
	anim, err := r.animation(v, st.Driver, cfg)
	if err != nil {
		return err
	}
	name := st.Value
	anim.Start(func(res animated.Result) {
		r.record(KindEnd, name, map[string]any{"finished": res.Finished, "value": v.Float()})
	})
	return nil
}

func (r *Runner) advance(dt time.Duration) {
	if dt <= 0 {
		dt = animated.DefaultFrameInterval
	}
	r.frame++
	r.loop.Advance(dt)
}
