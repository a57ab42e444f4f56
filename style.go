package animated

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// --- Style ---

// Style aggregates a keyed set of nodes and static values. A "transform"
// entry given as []map[string]any is wrapped in a Transform node. Style is
// a composite, not a flush leaf: it is resolved by the Props that own it.
type Style struct {
	graphNode
	entries map[string]any
	keys    []string
}

// NewStyle builds a style from entries. Node entries become inputs.
func NewStyle(entries map[string]any) *Style {
	s := &Style{entries: make(map[string]any, len(entries))}
	for k, v := range entries {
		if k == "transform" {
			if list, ok := v.([]map[string]any); ok {
				v = NewTransform(list)
			}
		}
		s.entries[k] = v
		s.keys = append(s.keys, k)
	}
	sort.Strings(s.keys)
	s.init(s, KindStyle, nodeEntries(s.keys, s.entries)...)
	return s
}

// Resolve returns a fresh map of every entry's resolved value.
func (s *Style) Resolve() any {
	return resolveEntries(s.keys, s.entries, false)
}

// Get returns the raw entry for key.
func (s *Style) Get(key string) (any, bool) {
	v, ok := s.entries[key]
	return v, ok
}

// AnimatedValues returns the resolved values of the node entries only.
func (s *Style) AnimatedValues() map[string]any {
	return resolveEntries(s.keys, s.entries, true)
}

func (s *Style) nativeConfig() map[string]any {
	tags := map[string]any{}
	for _, k := range s.keys {
		if n, ok := s.entries[k].(Node); ok {
			tags[k] = n.graph().tag
		}
	}
	return map[string]any{"type": KindStyle.String(), "style": tags}
}

// --- Transform ---

// Transform is an ordered list of single-key transform operations, such as
// {"translateX": v} or {"rotate": "45deg"}, whose values may be nodes.
type Transform struct {
	graphNode
	ops []transformOp
}

type transformOp struct {
	property string
	value    any
}

// NewTransform builds a transform from a list of single-key maps. Maps
// with more than one key contribute their keys in sorted order.
func NewTransform(list []map[string]any) *Transform {
	t := &Transform{}
	var inputs []Node
	for _, m := range list {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			t.ops = append(t.ops, transformOp{property: k, value: m[k]})
			if n, ok := m[k].(Node); ok {
				inputs = appendUnique(inputs, n)
			}
		}
	}
	t.init(t, KindTransform, inputs...)
	return t
}

// Resolve returns the operations as a []map[string]any with resolved
// values, in order.
func (t *Transform) Resolve() any {
	out := make([]map[string]any, len(t.ops))
	for i, op := range t.ops {
		out[i] = map[string]any{op.property: resolveEntry(op.value)}
	}
	return out
}

// Matrix composes the resolved operations into a 2D affine matrix
// [a, b, c, d, tx, ty]. Unknown properties are skipped.
func (t *Transform) Matrix() [6]float64 {
	m := identityMatrix
	for _, op := range t.ops {
		m = applyTransformOp(m, op.property, resolveEntry(op.value))
	}
	return m
}

// ComposeTransform composes an already resolved transform list, as found
// in a flushed "transform" prop, into an affine matrix.
func ComposeTransform(list []map[string]any) [6]float64 {
	m := identityMatrix
	for _, entry := range list {
		keys := make([]string, 0, len(entry))
		for k := range entry {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			m = applyTransformOp(m, k, entry[k])
		}
	}
	return m
}

func applyTransformOp(m [6]float64, property string, v any) [6]float64 {
	var step [6]float64
	switch property {
	case "translateX":
		step = [6]float64{1, 0, 0, 1, toFloat(v), 0}
	case "translateY":
		step = [6]float64{1, 0, 0, 1, 0, toFloat(v)}
	case "scale":
		s := toFloat(v)
		step = [6]float64{s, 0, 0, s, 0, 0}
	case "scaleX":
		step = [6]float64{toFloat(v), 0, 0, 1, 0, 0}
	case "scaleY":
		step = [6]float64{1, 0, 0, toFloat(v), 0, 0}
	case "rotate", "rotateZ":
		sin, cos := math.Sincos(toAngle(v))
		step = [6]float64{cos, sin, -sin, cos, 0, 0}
	case "skewX":
		step = [6]float64{1, 0, math.Tan(toAngle(v)), 1, 0, 0}
	case "skewY":
		step = [6]float64{1, math.Tan(toAngle(v)), 0, 1, 0, 0}
	default:
		return m
	}
	return multiplyAffine(m, step)
}

// Apply maps a point through Matrix.
func (t *Transform) Apply(p Vec2) Vec2 {
	x, y := transformPoint(t.Matrix(), p.X, p.Y)
	return Vec2{x, y}
}

func (t *Transform) nativeConfig() map[string]any {
	ops := make([]map[string]any, len(t.ops))
	for i, op := range t.ops {
		if n, ok := op.value.(Node); ok {
			ops[i] = map[string]any{"type": "animated", "property": op.property, "nodeTag": n.graph().tag}
		} else {
			ops[i] = map[string]any{"type": "static", "property": op.property, "value": op.value}
		}
	}
	return map[string]any{"type": KindTransform.String(), "transforms": ops}
}

// --- Affine helpers ---

var identityMatrix = [6]float64{1, 0, 0, 1, 0, 0}

// multiplyAffine multiplies two 2D affine matrices: result = p * c.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// toFloat converts a resolved value to a number. Strings are parsed up to
// their unit suffix ("12px" is 12). Anything else is 0.
func toFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int:
		return float64(x)
	case string:
		f, _ := leadingNumber(x)
		return f
	}
	return 0
}

// toAngle converts a number (radians) or a "deg"/"rad" string to radians.
func toAngle(v any) float64 {
	s, ok := v.(string)
	if !ok {
		return toFloat(v)
	}
	f, unit := leadingNumber(s)
	if strings.TrimSpace(unit) == "deg" {
		return f * math.Pi / 180
	}
	return f
}

func leadingNumber(s string) (float64, string) {
	s = strings.TrimSpace(s)
	loc := numberPattern.FindStringIndex(s)
	if loc == nil || loc[0] != 0 {
		return 0, s
	}
	f, err := strconv.ParseFloat(s[:loc[1]], 64)
	if err != nil {
		return 0, s
	}
	return f, s[loc[1]:]
}

// --- Entry helpers shared by Style and Props ---

func resolveEntry(v any) any {
	if n, ok := v.(Node); ok {
		return n.Resolve()
	}
	return v
}

func resolveEntries(keys []string, entries map[string]any, animatedOnly bool) map[string]any {
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		v := entries[k]
		if _, ok := v.(Node); !ok && animatedOnly {
			continue
		}
		out[k] = resolveEntry(v)
	}
	return out
}

// nodeEntries returns the node-valued entries in key order.
func nodeEntries(keys []string, entries map[string]any) []Node {
	var nodes []Node
	for _, k := range keys {
		if n, ok := entries[k].(Node); ok {
			nodes = appendUnique(nodes, n)
		}
	}
	return nodes
}
