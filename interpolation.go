package animated

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// InterpolationConfig maps an input range onto an output range. Exactly
// one of OutputRange and OutputStrings must be set.
type InterpolationConfig struct {
	InputRange  []float64
	OutputRange []float64
	// OutputStrings interpolates the numbers embedded in strings such as
	// "45deg", "rgba(0, 0, 255, 0.5)" or a color name. Colors are
	// normalized to rgba() first.
	OutputStrings []string

	// Easing is applied to the progress within each segment. Nil means
	// linear.
	Easing Curve

	// Extrapolate sets both sides; ExtrapolateLeft and ExtrapolateRight
	// override it per side. The default is ExtrapolateExtend.
	Extrapolate      Extrapolation
	ExtrapolateLeft  Extrapolation
	ExtrapolateRight Extrapolation
}

// Interpolation is a derived node mapping its parent's value through a
// piecewise mapping. It holds no mutable state: the mapping is evaluated
// on every read.
type Interpolation struct {
	graphNode

	parent Scalar
	cfg    InterpolationConfig
	left   Extrapolation
	right  Extrapolation

	// String outputs: per-slot numeric outputs and the template they are
	// written back into.
	template []string
	slots    [][]float64
	round    bool
}

// NewInterpolation builds an interpolation of parent. Invalid configs are
// rejected with a *ConfigError.
func NewInterpolation(parent Scalar, cfg InterpolationConfig) (*Interpolation, error) {
	if parent == nil {
		panic("animated: nil input node for interpolation")
	}
	n := &Interpolation{parent: parent}
	if err := n.configure(cfg); err != nil {
		return nil, err
	}
	n.init(n, KindInterpolation, parent)
	return n, nil
}

// MustInterpolate is like NewInterpolation but panics on an invalid config.
func MustInterpolate(parent Scalar, cfg InterpolationConfig) *Interpolation {
	n, err := NewInterpolation(parent, cfg)
	if err != nil {
		panic(err)
	}
	return n
}

func (n *Interpolation) configure(cfg InterpolationConfig) error {
	in := cfg.InputRange
	if len(in) < 2 {
		return configErr("interpolate: inputRange", ErrRangeTooShort)
	}
	for i := 1; i < len(in); i++ {
		if in[i] < in[i-1] {
			return configErr("interpolate: inputRange", ErrNonMonotonic)
		}
	}
	if isFullRange(in) {
		return configErr("interpolate: inputRange", ErrInfiniteRange)
	}

	hasNums, hasStrings := len(cfg.OutputRange) > 0, len(cfg.OutputStrings) > 0
	switch {
	case hasNums && hasStrings:
		return configErr("interpolate: outputRange", ErrMixedOutput)
	case hasStrings:
		if err := n.compileStrings(cfg.OutputStrings); err != nil {
			return err
		}
		if len(cfg.OutputStrings) != len(in) {
			return configErr("interpolate: outputRange", ErrRangeLength)
		}
	default:
		if len(cfg.OutputRange) < 2 {
			return configErr("interpolate: outputRange", ErrRangeTooShort)
		}
		if len(cfg.OutputRange) != len(in) {
			return configErr("interpolate: outputRange", ErrRangeLength)
		}
		if isFullRange(cfg.OutputRange) {
			return configErr("interpolate: outputRange", ErrInfiniteRange)
		}
	}

	n.left, n.right = cfg.Extrapolate, cfg.Extrapolate
	if cfg.ExtrapolateLeft != extrapolateUnset {
		n.left = cfg.ExtrapolateLeft
	}
	if cfg.ExtrapolateRight != extrapolateUnset {
		n.right = cfg.ExtrapolateRight
	}
	if cfg.Easing == nil {
		cfg.Easing = Linear
	}
	cfg.InputRange = slices.Clone(cfg.InputRange)
	cfg.OutputRange = slices.Clone(cfg.OutputRange)
	cfg.OutputStrings = slices.Clone(cfg.OutputStrings)
	n.cfg = cfg
	return nil
}

func isFullRange(r []float64) bool {
	return math.IsInf(r[0], -1) && math.IsInf(r[len(r)-1], 1)
}

var numberPattern = regexp.MustCompile(`[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// compileStrings splits each output into a shared template and per-slot
// numbers.
func (n *Interpolation) compileStrings(outputs []string) error {
	if len(outputs) < 2 {
		return configErr("interpolate: outputRange", ErrRangeTooShort)
	}
	normalized := make([]string, len(outputs))
	for i, s := range outputs {
		if c, err := ParseColor(s); err == nil {
			normalized[i] = c.CSS()
		} else {
			normalized[i] = s
		}
	}

	shape := numberPattern.ReplaceAllString(normalized[0], "")
	first := numberPattern.FindAllStringIndex(normalized[0], -1)
	slots := make([][]float64, len(first))
	for _, s := range normalized {
		if numberPattern.ReplaceAllString(s, "") != shape {
			return configErr("interpolate: outputRange", ErrPatternMismatch)
		}
		nums := numberPattern.FindAllString(s, -1)
		if len(nums) != len(first) {
			return configErr("interpolate: outputRange", ErrPatternMismatch)
		}
		for i, num := range nums {
			f, err := strconv.ParseFloat(num, 64)
			if err != nil {
				return configErr("interpolate: outputRange", ErrPatternMismatch)
			}
			slots[i] = append(slots[i], f)
		}
	}

	// Template pieces around each number of the first output.
	template := make([]string, 0, len(first)+1)
	prev := 0
	for _, loc := range first {
		template = append(template, normalized[0][prev:loc[0]])
		prev = loc[1]
	}
	template = append(template, normalized[0][prev:])

	n.template = template
	n.slots = slots
	n.round = strings.HasPrefix(normalized[0], "rgb")
	return nil
}

// Parent returns the input node.
func (n *Interpolation) Parent() Scalar { return n.parent }

// IsString reports whether the outputs are strings.
func (n *Interpolation) IsString() bool { return n.template != nil }

// Float returns the numeric output for the parent's current value, or NaN
// for string outputs.
func (n *Interpolation) Float() float64 {
	if n.IsString() {
		return math.NaN()
	}
	return n.at(n.parent.Float(), n.cfg.OutputRange)
}

// String returns the string output, or the formatted number for numeric
// outputs.
func (n *Interpolation) String() string {
	if !n.IsString() {
		return formatNumber(n.Float())
	}
	input := n.parent.Float()
	var b strings.Builder
	for i, out := range n.slots {
		b.WriteString(n.template[i])
		v := n.at(input, out)
		switch {
		case n.round && i < 3:
			v = math.Round(v)
		case n.round:
			v = math.Round(v*1000) / 1000
		}
		b.WriteString(formatNumber(v))
	}
	b.WriteString(n.template[len(n.template)-1])
	return b.String()
}

// Resolve returns a float64 or, for string outputs, a string.
func (n *Interpolation) Resolve() any {
	if n.IsString() {
		return n.String()
	}
	return n.Float()
}

// Interpolate chains another interpolation on this node's numeric output.
func (n *Interpolation) Interpolate(cfg InterpolationConfig) (*Interpolation, error) {
	return NewInterpolation(n, cfg)
}

func (n *Interpolation) nativeConfig() map[string]any {
	cfg := map[string]any{
		"type":             KindInterpolation.String(),
		"inputRange":       n.cfg.InputRange,
		"extrapolateLeft":  n.left.String(),
		"extrapolateRight": n.right.String(),
	}
	if n.IsString() {
		cfg["outputType"] = "string"
		cfg["outputRange"] = n.cfg.OutputStrings
	} else {
		cfg["outputRange"] = n.cfg.OutputRange
	}
	return cfg
}

func (n *Interpolation) at(input float64, out []float64) float64 {
	in := n.cfg.InputRange
	i := findRange(input, in)
	return interpolateSegment(input, in[i], in[i+1], out[i], out[i+1], n.cfg.Easing, n.left, n.right)
}

// findRange returns the index of the segment containing input. Inputs
// outside the range map to the first or last segment.
func findRange(input float64, in []float64) int {
	i := 1
	for ; i < len(in)-1; i++ {
		if in[i] >= input {
			break
		}
	}
	return i - 1
}

func interpolateSegment(input, inMin, inMax, outMin, outMax float64, easing Curve, left, right Extrapolation) float64 {
	result := input

	if result < inMin {
		switch left {
		case ExtrapolateIdentity:
			return result
		case ExtrapolateClamp:
			result = inMin
		}
	}
	if result > inMax {
		switch right {
		case ExtrapolateIdentity:
			return result
		case ExtrapolateClamp:
			result = inMax
		}
	}

	if outMin == outMax {
		return outMin
	}
	if inMin == inMax {
		if input <= inMin {
			return outMin
		}
		return outMax
	}

	switch {
	case math.IsInf(inMin, -1):
		result = -result
	case math.IsInf(inMax, 1):
		result -= inMin
	default:
		result = (result - inMin) / (inMax - inMin)
	}

	result = easing(result)

	switch {
	case math.IsInf(outMin, -1):
		result = -result
	case math.IsInf(outMax, 1):
		result += outMin
	default:
		result = result*(outMax-outMin) + outMin
	}
	return result
}

func formatNumber(v float64) string {
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
